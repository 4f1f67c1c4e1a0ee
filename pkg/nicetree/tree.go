package nicetree

import (
	"errors"
	"slices"
)

var (
	// ErrDuplicateBag is returned by [Tree.Add] when a bag with the same ID
	// already exists in the tree. Bag IDs must be unique.
	ErrDuplicateBag = errors.New("duplicate bag id")

	// ErrMultipleRoots is returned by [Tree.Add] when a second bag without a
	// parent is added. A decomposition has exactly one root.
	ErrMultipleRoots = errors.New("multiple root bags")

	// ErrUnknownParent is returned by [Tree.Link] when a bag names a parent
	// that does not exist in the tree.
	ErrUnknownParent = errors.New("unknown parent bag")

	// ErrTooManyChildren is returned by [Tree.Link] when more than two bags
	// name the same parent. Join bags take two children, all others one.
	ErrTooManyChildren = errors.New("bag has more than two children")
)

// Tree is a nice tree decomposition under construction or ready for
// evaluation. Bags are stored by ID; insertion order is preserved for
// deterministic iteration and child registration.
//
// The zero value is not usable - use New.
type Tree struct {
	bags    map[int]*Bag
	order   []int
	root    int
	hasRoot bool
	linked  bool
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{bags: make(map[int]*Bag)}
}

// Add inserts a bag into the tree. The bag's vertices are sorted in place
// and its child slots reset; child pointers are derived later by [Link].
// Returns ErrDuplicateBag for a reused ID and ErrMultipleRoots for a second
// parentless bag.
func (t *Tree) Add(b Bag) error {
	if _, exists := t.bags[b.ID]; exists {
		return ErrDuplicateBag
	}
	if !b.HasParent() {
		if t.hasRoot {
			return ErrMultipleRoots
		}
		t.root = b.ID
		t.hasRoot = true
	}
	slices.Sort(b.Vertices)
	b.child1, b.child2 = noChild, noChild
	bag := &b
	t.bags[bag.ID] = bag
	t.order = append(t.order, bag.ID)
	t.linked = false
	return nil
}

// Bag returns the bag with the given ID and true, or nil and false.
func (t *Tree) Bag(id int) (*Bag, bool) {
	b, ok := t.bags[id]
	return b, ok
}

// Root returns the parentless bag and true, or nil and false when no root
// has been added.
func (t *Tree) Root() (*Bag, bool) {
	if !t.hasRoot {
		return nil, false
	}
	return t.bags[t.root], true
}

// Bags returns all bags in insertion order. The returned slice contains
// pointers to the actual bag structs.
func (t *Tree) Bags() []*Bag {
	bags := make([]*Bag, 0, len(t.order))
	for _, id := range t.order {
		bags = append(bags, t.bags[id])
	}
	return bags
}

// Len returns the number of bags in the tree.
func (t *Tree) Len() int { return len(t.bags) }

// Width returns the width of the decomposition: the maximum bag size minus
// one. A tree whose bags are all empty has width -1.
func (t *Tree) Width() int {
	maxSize := 0
	for _, b := range t.bags {
		if b.Size() > maxSize {
			maxSize = b.Size()
		}
	}
	return maxSize - 1
}

// Link derives child slots from Parent references. Children register with
// their parent in insertion order: the first child fills slot one, the
// second slot two. Link is idempotent and must be called again after any
// Add. Returns ErrUnknownParent or ErrTooManyChildren on structural
// violations.
func (t *Tree) Link() error {
	for _, id := range t.order {
		b := t.bags[id]
		b.child1, b.child2 = noChild, noChild
	}
	for _, id := range t.order {
		b := t.bags[id]
		if !b.HasParent() {
			continue
		}
		parent, ok := t.bags[b.Parent]
		if !ok {
			return wrapBagErr(ErrUnknownParent, b.ID, "parent %d", b.Parent)
		}
		switch {
		case parent.child1 == noChild:
			parent.child1 = b.ID
		case parent.child2 == noChild:
			parent.child2 = b.ID
		default:
			return wrapBagErr(ErrTooManyChildren, parent.ID, "third child %d", b.ID)
		}
	}
	t.linked = true
	return nil
}

// Postorder returns bag IDs in bottom-up evaluation order: each bag appears
// after all of its children, with the root last. The traversal is iterative
// and visits first-registered children first.
//
// Postorder requires a prior successful [Link]; it returns nil when the tree
// is unlinked or has no root.
func (t *Tree) Postorder() []int {
	if !t.linked || !t.hasRoot {
		return nil
	}

	type frame struct {
		id       int
		expanded bool
	}
	order := make([]int, 0, len(t.bags))
	stack := []frame{{id: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.expanded {
			order = append(order, f.id)
			continue
		}
		stack = append(stack, frame{id: f.id, expanded: true})
		children := t.bags[f.id].Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{id: children[i]})
		}
	}
	return order
}

// Stats summarizes a decomposition for reporting.
type Stats struct {
	Bags     int             // total bag count
	Width    int             // max bag size minus one
	Depth    int             // longest root-to-leaf chain, in bags
	Vertices int             // distinct vertices across all bags
	Edges    int             // introduced edges total
	ByType   map[BagType]int // bag count per type
}

// Stats computes summary statistics over the tree. It walks parent chains,
// so it works on unlinked trees; chains longer than the bag count (a parent
// cycle) stop counting early.
func (t *Tree) Stats() Stats {
	s := Stats{
		Bags:   len(t.bags),
		Width:  t.Width(),
		ByType: make(map[BagType]int),
	}
	seen := make(map[int]struct{})
	for _, id := range t.order {
		b := t.bags[id]
		s.ByType[b.Type]++
		s.Edges += len(b.Edges)
		for _, v := range b.Vertices {
			seen[v] = struct{}{}
		}

		depth := 1
		for cur := b; cur.HasParent() && depth <= len(t.bags); depth++ {
			parent, ok := t.bags[cur.Parent]
			if !ok {
				break
			}
			cur = parent
		}
		if depth > s.Depth {
			s.Depth = depth
		}
	}
	s.Vertices = len(seen)
	return s
}
