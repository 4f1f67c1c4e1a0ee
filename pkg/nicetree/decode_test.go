package nicetree

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const p4Input = `(0,{}) f [(1,{1})] []
(1,{1}) f [(0,{}),(2,{1,2})] []
(2,{1,2}) i [(1,{1}),(3,{2})] [(1,2)]
(3,{2}) f [(2,{1,2}),(4,{2,3})] []
(4,{2,3}) i [(3,{2}),(5,{3})] [(2,3)]
(5,{3}) f [(4,{2,3}),(6,{3,4})] []
(6,{3,4}) i [(5,{3}),(7,{4})] [(3,4)]
(7,{4}) i [(6,{3,4}),(8,{})] []
(8,{}) l [(7,{4})] []
`

func TestDecode(t *testing.T) {
	tree, err := Decode(strings.NewReader(p4Input))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if tree.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", tree.Len())
	}

	root, ok := tree.Root()
	if !ok {
		t.Fatal("Root() not found")
	}
	if root.ID != 0 || root.Type != Forget || root.Size() != 0 {
		t.Errorf("root = %s, want empty forget bag 0", root)
	}

	b2, ok := tree.Bag(2)
	if !ok {
		t.Fatal("Bag(2) not found")
	}
	if b2.Type != IntroduceVertex {
		t.Errorf("bag 2 type = %v, want introduce", b2.Type)
	}
	if !slices.Equal(b2.Vertices, []int{1, 2}) {
		t.Errorf("bag 2 vertices = %v, want [1 2]", b2.Vertices)
	}
	if b2.Parent != 1 {
		t.Errorf("bag 2 parent = %d, want 1", b2.Parent)
	}
	if len(b2.Edges) != 1 || b2.Edges[0] != (Edge{U: 1, V: 2}) {
		t.Errorf("bag 2 edges = %v, want [(1,2)]", b2.Edges)
	}

	// Decode links the tree.
	if got := tree.Postorder(); len(got) != 9 || got[len(got)-1] != 0 {
		t.Errorf("Postorder() = %v, want 9 bags ending in root 0", got)
	}

	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestDecodeWordTypes(t *testing.T) {
	input := `(0,{}) forget [(1,{3})] []
(1,{3}) forget [(0,{}),(2,{3,4})] []
(2,{3,4}) intro [(1,{3})] [(3,4)]
(3,{4}) intro [(2,{3,4})] []
(4,{}) leaf [(3,{4})] []
`
	tree, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	b, _ := tree.Bag(2)
	if b.Type != IntroduceVertex {
		t.Errorf("bag 2 type = %v, want introduce", b.Type)
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestDecodeSkipsCommentsAndBlanks(t *testing.T) {
	input := "c produced by decomposition tooling\n\n(0,{}) f [(1,{9})] []\n(1,{9}) i [(0,{})] []\nc trailing note\n(2,{}) l [(1,{9})] []\n"
	tree, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if tree.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tree.Len())
	}

	b1, _ := tree.Bag(1)
	if b1.Type != IntroduceVertex || !slices.Equal(b1.Vertices, []int{9}) {
		t.Errorf("bag 1 = %s, want (1,{9}) introduce", b1)
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestDecodeMultipleEdges(t *testing.T) {
	input := `(0,{}) f [(1,{1})] []
(1,{1}) f [(0,{})] []
(2,{1,2}) f [(1,{1})] []
(3,{1,2,3}) i [(2,{1,2})] [(1,3),(2,3)]
(4,{1,2}) i [(3,{1,2,3})] [(1,2)]
(5,{1}) i [(4,{1,2})] []
(6,{}) l [(5,{1})] []
`
	tree, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	b3, _ := tree.Bag(3)
	want := []Edge{{U: 1, V: 3}, {U: 2, V: 3}}
	if !slices.Equal(b3.Edges, want) {
		t.Errorf("bag 3 edges = %v, want %v", b3.Edges, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty input", "", ErrEmptyInput},
		{"only comments", "c nothing here\n", ErrEmptyInput},
		{"garbage line", "hello world\n", ErrBadLine},
		{"bad bag field", "0,{1} f [(1,{})] []\n", ErrBadLine},
		{"bad vertex", "(0,{a,b}) f [(1,{})] []\n", ErrBadLine},
		{"repeated vertex", "(0,{1,1}) f [(1,{})] []\n", ErrBadLine},
		{"bad type", "(0,{}) x [(1,{})] []\n", ErrBadLine},
		{"missing fields", "(0,{})\n", ErrBadLine},
		{
			"missing parent group",
			"(0,{}) f [(1,{1})] []\n(1,{1}) f\n",
			ErrBadLine,
		},
		{
			"duplicate bag",
			"(0,{}) f [(1,{1})] []\n(0,{1}) f [(0,{})] []\n",
			ErrDuplicateBag,
		},
		{
			"unknown parent",
			"(0,{}) f [(1,{1})] []\n(1,{1}) f [(9,{})] []\n",
			ErrUnknownParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p4.ntd")
	if err := os.WriteFile(path, []byte(p4Input), 0o644); err != nil {
		t.Fatal(err)
	}

	tree, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error: %v", err)
	}
	if tree.Len() != 9 {
		t.Errorf("Len() = %d, want 9", tree.Len())
	}

	if _, err := DecodeFile(filepath.Join(dir, "missing.ntd")); err == nil {
		t.Error("DecodeFile() on missing file succeeded, want error")
	}
}
