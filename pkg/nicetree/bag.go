package nicetree

import (
	"fmt"
	"slices"
	"strings"
)

// NoParent marks a bag without a parent. Exactly one bag per tree, the root,
// carries it.
const NoParent = -1

// noChild marks an unused child slot. Slots are filled by [Tree.Link].
const noChild = -1

// BagType identifies the structural transition a bag performs relative to
// its children.
type BagType int

const (
	// Leaf is an empty bag with no children.
	Leaf BagType = iota
	// IntroduceVertex adds exactly one vertex to its child's vertex set.
	IntroduceVertex
	// Forget removes exactly one vertex from its child's vertex set.
	Forget
	// Join merges two children that carry identical vertex sets.
	Join
)

// String returns the lowercase name of the bag type.
func (t BagType) String() string {
	switch t {
	case Leaf:
		return "leaf"
	case IntroduceVertex:
		return "introduce"
	case Forget:
		return "forget"
	case Join:
		return "join"
	default:
		return fmt.Sprintf("BagType(%d)", int(t))
	}
}

// ParseBagType maps a type token to its BagType. Tokens are matched on their
// first letter, so both the single-letter form ("f") and the word form
// ("forget") decode.
func ParseBagType(s string) (BagType, error) {
	if s == "" {
		return 0, fmt.Errorf("empty bag type")
	}
	switch s[0] {
	case 'l', 'L':
		return Leaf, nil
	case 'i', 'I':
		return IntroduceVertex, nil
	case 'f', 'F':
		return Forget, nil
	case 'j', 'J':
		return Join, nil
	default:
		return 0, fmt.Errorf("unknown bag type %q", s)
	}
}

// Edge is a graph edge introduced at a bag. Both endpoints must be members
// of the bag's vertex set.
type Edge struct {
	U, V int
}

// String formats the edge as "(u,v)".
func (e Edge) String() string { return fmt.Sprintf("(%d,%d)", e.U, e.V) }

// Bag is one node of a nice tree decomposition.
//
// Vertices are kept sorted ascending; [Tree.Add] normalizes them. Edges are
// the graph edges introduced at this bag, applied in order after the bag's
// structural transition. Child slots are derived from Parent references by
// [Tree.Link] and queried through [Bag.Children].
type Bag struct {
	ID       int     // unique numeric identifier
	Type     BagType // structural transition
	Parent   int     // parent bag ID, NoParent for the root
	Vertices []int   // sorted member vertices
	Edges    []Edge  // edges introduced at this bag

	child1, child2 int
}

// Size returns the number of vertices in the bag.
func (b *Bag) Size() int { return len(b.Vertices) }

// HasParent reports whether the bag names a parent.
func (b *Bag) HasParent() bool { return b.Parent != NoParent }

// Children returns the IDs of the bag's children in registration order.
// The result is empty until [Tree.Link] has run.
func (b *Bag) Children() []int {
	switch {
	case b.child1 == noChild:
		return nil
	case b.child2 == noChild:
		return []int{b.child1}
	default:
		return []int{b.child1, b.child2}
	}
}

// Contains reports whether the vertex is a member of the bag.
func (b *Bag) Contains(vertex int) bool {
	_, ok := slices.BinarySearch(b.Vertices, vertex)
	return ok
}

// Introduced returns the single vertex present in the bag but not in the
// child, and true when exactly one such vertex exists. It identifies the
// vertex added by an [IntroduceVertex] bag.
func (b *Bag) Introduced(child *Bag) (int, bool) {
	return diffOne(b.Vertices, child.Vertices)
}

// Forgotten returns the single vertex present in the child but not in the
// bag, and true when exactly one such vertex exists. It identifies the
// vertex dropped by a [Forget] bag.
func (b *Bag) Forgotten(child *Bag) (int, bool) {
	return diffOne(child.Vertices, b.Vertices)
}

// String formats the bag as "(id,{v1,v2}) type" for diagnostics.
func (b *Bag) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d,{", b.ID)
	for i, v := range b.Vertices {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	fmt.Fprintf(&sb, "}) %s", b.Type)
	return sb.String()
}

// diffOne returns the single element of super missing from sub, requiring
// sub to be a subset of super with exactly one fewer element. Both slices
// must be sorted ascending.
func diffOne(super, sub []int) (int, bool) {
	if len(super) != len(sub)+1 {
		return 0, false
	}
	extra := 0
	found := false
	i, j := 0, 0
	for i < len(super) {
		if j < len(sub) && super[i] == sub[j] {
			i++
			j++
			continue
		}
		if found {
			return 0, false
		}
		extra = super[i]
		found = true
		i++
	}
	if j != len(sub) {
		return 0, false
	}
	return extra, found
}
