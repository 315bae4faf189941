package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/wikigraph/internal/model"
	"github.com/nao1215/wikigraph/internal/store"
)

// executeCmd runs the root command with args and stdin. An empty
// configuration file is passed so that a user's own .wikigraph never leaks
// into the test.
func executeCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(cfgPath, []byte("{}\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "-c", cfgPath))

	err := cmd.Execute()
	return out.String(), err
}

// writeTestGraph stores a small graph and returns its directory.
//
//	Berlin -> Spree, Deutschland
//	Deutschland -> Hamburg, Berlin
//	Hamburg -> Elbe (dropped, not a vertex)
//	Insel (no links in or out)
func writeTestGraph(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "Berlin")
	vertices := model.NewVertexSet("Berlin", "Spree", "Deutschland", "Hamburg", "Insel")
	edges := []model.EdgeRecord{
		{Source: "Berlin", Links: []string{"Spree", "Deutschland"}},
		{Source: "Spree", Links: []string{}},
		{Source: "Deutschland", Links: []string{"Hamburg", "Berlin"}},
		{Source: "Hamburg", Links: []string{"Elbe"}},
		{Source: "Insel", Links: []string{}},
	}
	if err := store.Save(dir, vertices, edges); err != nil {
		t.Fatalf("failed to save graph: %v", err)
	}
	return dir
}
