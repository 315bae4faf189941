package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/nao1215/wikigraph/internal/graph"
)

// errEndOfInput ends the interactive session.
var errEndOfInput = errors.New("end of input")

// NewPathCmd creates the path command.
func NewPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path <graph>",
		Short: "Find the shortest chain of links between two pages",
		Long: heredoc.Doc(`
			Path loads a stored graph and finds the shortest chain of links from one
			page to another. <graph> is a graph directory or a seed name resolved
			below --data-dir.

			Without --from and --to, path prompts for a start and an end page until
			standard input is closed. Unknown page names are asked for again.
		`),
		Example: heredoc.Doc(`
			# Interactive session on the graph crawled from Berlin
			$ wikigraph path Berlin
			Start: Berlin
			End: Hamburg
			Berlin -> Deutschland -> Hamburg

			# Single query
			$ wikigraph path data/Berlin --from Berlin --to Hamburg
		`),
		Args: cobra.ExactArgs(1),
		RunE: runPathCmd,
	}

	addDataDirFlag(cmd)
	cmd.Flags().String("from", "", "Start page (requires --to)")
	cmd.Flags().String("to", "", "End page (requires --from)")
	cmd.MarkFlagsRequiredTogether("from", "to")

	return cmd
}

func runPathCmd(cmd *cobra.Command, args []string) error {
	setupLogger(cmd)

	g, _, err := loadGraph(cmd, args[0])
	if err != nil {
		return err
	}

	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("from") {
		path, err := g.ShortestPath(from, to)
		if err != nil {
			return err
		}
		printPath(cmd.OutOrStdout(), from, to, path)
		return nil
	}

	return runPathREPL(cmd.InOrStdin(), cmd.OutOrStdout(), g)
}

// runPathREPL answers path queries read from in until it is exhausted.
func runPathREPL(in io.Reader, out io.Writer, g *graph.Graph) error {
	scanner := bufio.NewScanner(in)

	for {
		start, err := promptVertex(scanner, out, g, "Start: ")
		if err != nil {
			return endOfSession(out, err)
		}
		end, err := promptVertex(scanner, out, g, "End: ")
		if err != nil {
			return endOfSession(out, err)
		}

		path, err := g.ShortestPath(start, end)
		if err != nil {
			return err
		}
		printPath(out, start, end, path)
	}
}

// promptVertex asks until the answer names a vertex of g.
func promptVertex(scanner *bufio.Scanner, out io.Writer, g *graph.Graph, prompt string) (string, error) {
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read input: %w", err)
			}
			return "", errEndOfInput
		}

		name := strings.TrimSpace(scanner.Text())
		switch {
		case name == "":
			continue
		case !g.Contains(name):
			fmt.Fprintf(out, "unknown page: %s\n", name)
			continue
		}
		return name, nil
	}
}

func endOfSession(out io.Writer, err error) error {
	if errors.Is(err, errEndOfInput) {
		fmt.Fprintln(out)
		return nil
	}
	return err
}

func printPath(out io.Writer, start, end string, path []string) {
	if len(path) == 0 {
		fmt.Fprintf(out, "no path from %s to %s\n", start, end)
		return
	}
	fmt.Fprintln(out, strings.Join(path, " -> "))
}
