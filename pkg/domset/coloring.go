package domset

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
)

// Coloring assigns a colour to every vertex of one bag. Atoms are kept
// sorted by vertex id, which makes the sequence canonical: two colourings
// of the same vertex set are equal exactly when their keys are.
type Coloring []Atom

// NewColoring builds a colouring from atoms minted by in, sorted by
// vertex. Each vertex may appear at most once; a duplicate makes the
// colouring ambiguous.
func NewColoring(in *Interner, atoms ...Atom) Coloring {
	f := Coloring(slices.Clone(atoms))
	slices.SortFunc(f, func(a, b Atom) int {
		return cmp.Compare(in.Vertex(a), in.Vertex(b))
	})
	return f
}

// Key returns the canonical byte-string form of the colouring, usable as
// a map key. It is the little-endian atom ids in vertex order.
func (f Coloring) Key() string {
	buf := make([]byte, 4*len(f))
	for i, a := range f {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(a))
	}
	return string(buf)
}

// ColorOf returns the colour assigned to the vertex, or false when the
// vertex is not part of the colouring.
func (f Coloring) ColorOf(in *Interner, vertex int) (Color, bool) {
	i, ok := f.search(in, vertex)
	if !ok {
		return 0, false
	}
	return in.Color(f[i]), true
}

// Without returns a copy of the colouring with the vertex removed.
func (f Coloring) Without(in *Interner, vertex int) Coloring {
	out := make(Coloring, 0, len(f))
	for _, a := range f {
		if in.Vertex(a) != vertex {
			out = append(out, a)
		}
	}
	return out
}

// With returns a copy of the colouring extended by (vertex, c), keeping
// the vertex order. The vertex must not already be coloured.
func (f Coloring) With(in *Interner, vertex int, c Color) Coloring {
	i, _ := f.search(in, vertex)
	out := make(Coloring, 0, len(f)+1)
	out = append(out, f[:i]...)
	out = append(out, in.Intern(vertex, c))
	out = append(out, f[i:]...)
	return out
}

// Recolored returns a copy of the colouring with the vertex assigned a new
// colour. The vertex must be part of the colouring; otherwise an unchanged
// copy is returned.
func (f Coloring) Recolored(in *Interner, vertex int, c Color) Coloring {
	out := slices.Clone(f)
	if i, ok := f.search(in, vertex); ok {
		out[i] = in.Intern(vertex, c)
	}
	return out
}

// CountBlack returns the number of Black atoms in the colouring.
func (f Coloring) CountBlack(in *Interner) int {
	n := 0
	for _, a := range f {
		if in.Color(a) == Black {
			n++
		}
	}
	return n
}

// Format renders the colouring like "{1:B,4:W}" for logs and table dumps.
func (f Coloring) Format(in *Interner) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, a := range f {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d:%s", in.Vertex(a), in.Color(a).Short())
	}
	sb.WriteByte('}')
	return sb.String()
}

func (f Coloring) search(in *Interner, vertex int) (int, bool) {
	return slices.BinarySearchFunc(f, vertex, func(a Atom, v int) int {
		return cmp.Compare(in.Vertex(a), v)
	})
}

// enumerateColorings lists every colouring of the vertex set, 3^k entries
// for k vertices. Vertices must be sorted ascending; the result keeps the
// first vertex varying slowest, so the order is deterministic.
func enumerateColorings(in *Interner, vertices []int) []Coloring {
	var out []Coloring
	cur := make(Coloring, len(vertices))
	var walk func(i int)
	walk = func(i int) {
		if i == len(vertices) {
			out = append(out, slices.Clone(cur))
			return
		}
		for _, c := range colors {
			cur[i] = in.Intern(vertices[i], c)
			walk(i + 1)
		}
	}
	walk(0)
	return out
}

// joinTriple is one admissible combination of a join-bag colouring with
// matching colourings of its two children.
type joinTriple struct {
	parent, left, right Coloring
}

// enumerateTriples lists every consistent triple over the vertex set, 4^k
// entries for k vertices, one per choice of consistency row per vertex.
// Vertices must be sorted ascending.
func enumerateTriples(in *Interner, vertices []int) []joinTriple {
	var out []joinTriple
	parent := make(Coloring, len(vertices))
	left := make(Coloring, len(vertices))
	right := make(Coloring, len(vertices))
	var walk func(i int)
	walk = func(i int) {
		if i == len(vertices) {
			out = append(out, joinTriple{
				parent: slices.Clone(parent),
				left:   slices.Clone(left),
				right:  slices.Clone(right),
			})
			return
		}
		v := vertices[i]
		for _, row := range consistencyRows {
			parent[i] = in.Intern(v, row.parent)
			left[i] = in.Intern(v, row.left)
			right[i] = in.Intern(v, row.right)
			walk(i + 1)
		}
	}
	walk(0)
	return out
}
