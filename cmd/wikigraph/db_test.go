package main

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/nao1215/wikigraph/internal/database"
)

// TestDBCmd tests export, list and restore against one archive.
func TestDBCmd(t *testing.T) {
	t.Parallel()

	dir := writeTestGraph(t)
	dbDir := t.TempDir()

	out, err := executeCmd(t, "", "db", "list", "--db-dir", dbDir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "No archived crawls") {
		t.Errorf("expected empty archive message, got %q", out)
	}

	out, err = executeCmd(t, "", "db", "export", dir, "--db-dir", dbDir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	id := regexp.MustCompile(`as (\S+)\n`).FindStringSubmatch(out)
	if id == nil {
		t.Fatalf("expected crawl id in output, got %q", out)
	}

	out, err = executeCmd(t, "", "db", "list", "--db-dir", dbDir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, id[1]) || !strings.Contains(out, "Berlin") {
		t.Errorf("expected crawl %s in listing, got:\n%s", id[1], out)
	}

	restored := filepath.Join(t.TempDir(), "restored")
	if _, err := executeCmd(t, "", "db", "restore", id[1], restored, "--db-dir", dbDir); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	for _, name := range []string{"vertices.txt", "edges.txt"} {
		want, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("failed to read original %s: %v", name, err)
		}
		got, err := os.ReadFile(filepath.Join(restored, name))
		if err != nil {
			t.Fatalf("failed to read restored %s: %v", name, err)
		}
		if string(got) != string(want) {
			t.Errorf("%s differs after restore:\ngot:\n%s\nwant:\n%s", name, got, want)
		}
	}

	t.Run("unknown crawl id", func(t *testing.T) {
		_, err := executeCmd(t, "", "db", "restore", "no-such-id", t.TempDir(), "--db-dir", dbDir)
		if !errors.Is(err, database.ErrCrawlNotFound) {
			t.Errorf("expected ErrCrawlNotFound, got %v", err)
		}
	})
}
