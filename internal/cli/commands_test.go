package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pedtower/pkg/io"
	"github.com/matzehuels/pedtower/pkg/layout"
)

const testPED = "famid\tid\tfid\tmid\tsex\n" +
	"F1\t1\t0\t0\t1\n" +
	"F1\t2\t0\t0\t2\n" +
	"F1\t3\t1\t2\t1\n" +
	"F2\tA\t0\t0\t1\n" +
	"F2\tB\tA\t0\t1\n" +
	"F2\tE\tB\t0\t2\n"

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	old := stdout
	stdout = &out
	t.Cleanup(func() { stdout = old })

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writePED(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cohort.ped")
	if err := os.WriteFile(path, []byte(testPED), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSelectCommand(t *testing.T) {
	ped := writePED(t)
	output := filepath.Join(t.TempDir(), "annotated.ped")

	out, err := runCLI(t, "select", ped, "-o", output)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !strings.Contains(out, "Selected 4 of 6 individuals in 2 families") {
		t.Errorf("unexpected output:\n%s", out)
	}

	table, err := io.ImportPED(output, io.DefaultColumns())
	if err != nil {
		t.Fatalf("read annotated PED: %v", err)
	}
	if got := table.Header[len(table.Header)-1]; got != "selection_status" {
		t.Errorf("last column = %q, want selection_status", got)
	}
	selected := 0
	for _, rec := range table.Records() {
		if rec.Classifier.IsSelected() {
			selected++
		}
	}
	if selected != 4 {
		t.Errorf("annotated PED marks %d selected, want 4", selected)
	}
}

func TestSelectCommandMissingFile(t *testing.T) {
	_, err := runCLI(t, "select", filepath.Join(t.TempDir(), "missing.ped"))
	if err == nil {
		t.Fatal("select should fail on a missing file")
	}
}

func TestRenderCommand(t *testing.T) {
	ped := writePED(t)
	results := t.TempDir()

	out, err := runCLI(t, "render", ped, "-o", results, "-f", "dot,json", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, name := range []string{
		selectionFile,
		"pedigree_family_F1.gv",
		"pedigree_family_F1.json",
		"pedigree_family_F2.gv",
		"pedigree_family_F2.json",
	} {
		if _, err := os.Stat(filepath.Join(results, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
		if !strings.Contains(out, name) {
			t.Errorf("output does not list %s:\n%s", name, out)
		}
	}

	l, err := layout.ReadLayoutFile(filepath.Join(results, "pedigree_family_F2.json"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Family != "F2" || len(l.Generations) != 3 {
		t.Errorf("F2 layout = family %s, %d generations; want F2, 3", l.Family, len(l.Generations))
	}
}

func TestRenderCommandFamilyFilter(t *testing.T) {
	ped := writePED(t)
	results := t.TempDir()

	if _, err := runCLI(t, "render", ped, "-o", results, "-f", "dot", "--family", "F2"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(results, "pedigree_family_F1.gv")); !os.IsNotExist(err) {
		t.Error("F1 should not be drawn")
	}
	if _, err := os.Stat(filepath.Join(results, "pedigree_family_F2.gv")); err != nil {
		t.Error("F2 should be drawn")
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	if _, err := runCLI(t, "render", writePED(t), "-f", "gif"); err == nil {
		t.Error("render should reject unknown formats")
	}
}

func TestLineagesCommand(t *testing.T) {
	out, err := runCLI(t, "lineages", writePED(t))
	if err != nil {
		t.Fatalf("lineages: %v", err)
	}
	for _, want := range []string{"Family F2", "A", "B", "E", "Lineages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Family F1") {
		t.Errorf("F1 has no redundant lineage:\n%s", out)
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCacheClearCommand(t *testing.T) {
	ped := writePED(t)
	cacheHome := t.TempDir()

	run := func(args ...string) string {
		t.Helper()
		t.Setenv("XDG_CACHE_HOME", cacheHome)
		var out bytes.Buffer
		old := stdout
		stdout = &out
		defer func() { stdout = old }()

		root := New(&bytes.Buffer{}, LogInfo).RootCommand()
		root.SetArgs(append(args, "--config", writeConfig(t, "")))
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	run("render", ped, "-o", t.TempDir(), "-f", "dot")
	if out := run("cache", "clear"); !strings.Contains(out, "Cleared 4 cached entries") {
		t.Errorf("cache clear output:\n%s", out)
	}
}
