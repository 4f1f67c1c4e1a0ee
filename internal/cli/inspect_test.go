package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/lennartvogt/treedom/pkg/errors"
)

func TestRunInspect(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "p4.ntd", p4Decomposition)

	err := quietCLI().runInspect(context.Background(), path, "", "", "")
	if err != nil {
		t.Fatalf("runInspect() error: %v", err)
	}
}

func TestRunInspectWritesDOT(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "p4.ntd", p4Decomposition)
	dotPath := filepath.Join(dir, "tree.dot")

	err := quietCLI().runInspect(context.Background(), path, dotPath, "", "")
	if err != nil {
		t.Fatalf("runInspect() error: %v", err)
	}

	data, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatalf("read DOT file: %v", err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Error("DOT output should contain a digraph declaration")
	}
}

func TestRunInspectInvalidTree(t *testing.T) {
	// Decodes but violates the root shape rule: the root's child holds two
	// vertices.
	badTree := `(0,{}) f [(1,{1,2})] []
(1,{1,2}) i [(0,{}),(2,{1})] []
(2,{1}) i [(1,{1,2}),(3,{})] []
(3,{}) l [(2,{1})] []
`
	path := writeFixture(t, t.TempDir(), "bad.ntd", badTree)

	err := quietCLI().runInspect(context.Background(), path, "", "", "")
	if err == nil {
		t.Fatal("runInspect() should fail on an invalid tree")
	}
	if code := apperrors.GetCode(err); code != apperrors.ErrCodeInvalidTree {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeInvalidTree)
	}
}

func TestBagTypeTable(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "p4.ntd", p4Decomposition)

	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	runner, err := quietCLI().newRunner(true)
	if err != nil {
		t.Fatalf("newRunner: %v", err)
	}
	defer runner.Close()

	tree, err := runner.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out := bagTypeTable(tree.Stats())
	for _, want := range []string{"leaf", "introduce", "forget", "join"} {
		if !strings.Contains(out, want) {
			t.Errorf("bag type table should list %q:\n%s", want, out)
		}
	}
}

func TestInspectCommandFlags(t *testing.T) {
	cmd := quietCLI().inspectCommand()

	for _, flag := range []string{"dot", "svg", "png"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("inspect command should define --%s", flag)
		}
	}
}
