package main

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

// NewNeighborsCmd creates the neighbors command.
func NewNeighborsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "neighbors <graph> <page>",
		Short: "List the pages a page links to and the pages linking to it",
		Example: heredoc.Doc(`
			$ wikigraph neighbors Berlin Spree
		`),
		Args: cobra.ExactArgs(2),
		RunE: runNeighborsCmd,
	}

	addDataDirFlag(cmd)
	return cmd
}

func runNeighborsCmd(cmd *cobra.Command, args []string) error {
	setupLogger(cmd)

	g, _, err := loadGraph(cmd, args[0])
	if err != nil {
		return err
	}

	page := args[1]
	children, err := g.Children(page)
	if err != nil {
		return err
	}
	parents, err := g.Parents(page)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printNeighbors(out, "Links from", page, children)
	printNeighbors(out, "Links to", page, parents)
	return nil
}

func printNeighbors(out io.Writer, title, page string, pages []string) {
	fmt.Fprintf(out, "%s %s (%d):\n", title, page, len(pages))
	for _, p := range pages {
		fmt.Fprintf(out, "  %s\n", p)
	}
}
