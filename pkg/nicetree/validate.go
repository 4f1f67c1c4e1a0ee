package nicetree

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoRoot is returned by [Tree.Validate] when no parentless bag exists.
	ErrNoRoot = errors.New("decomposition has no root bag")

	// ErrRootShape is returned by [Tree.Validate] when the root is not an
	// empty Forget bag, or when its unique child does not hold exactly one
	// vertex. Solvers read their answer off that child.
	ErrRootShape = errors.New("root must be an empty forget bag over a single-vertex child")

	// ErrBagShape is returned by [Tree.Validate] when a bag's children or
	// vertex set do not match its type: leaves must be empty and childless,
	// introduce and forget bags must differ from their one child by exactly
	// one vertex, and join bags must have two children carrying the bag's
	// own vertex set.
	ErrBagShape = errors.New("bag violates its transition shape")

	// ErrEdgePlacement is returned by [Tree.Validate] when an introduced
	// edge has an endpoint outside its bag, or when a leaf carries edges.
	ErrEdgePlacement = errors.New("introduced edge outside its bag")

	// ErrDisconnected is returned by [Tree.Validate] when some bag is not
	// reachable from the root, which means the parent references do not form
	// a single tree.
	ErrDisconnected = errors.New("bag not reachable from the root")
)

// wrapBagErr attaches a bag ID and detail to a sentinel error.
func wrapBagErr(sentinel error, bagID int, format string, args ...any) error {
	return fmt.Errorf("%w: bag %d: %s", sentinel, bagID, fmt.Sprintf(format, args...))
}

// Validate checks the nice decomposition shape rules and returns nil if the
// tree is well formed. It links the tree first (so a standalone Link call is
// not required) and then verifies:
//
//  1. A root exists: an empty Forget bag whose unique child has one vertex.
//  2. Every bag matches its type's shape (see [ErrBagShape]).
//  3. Introduced edges sit on non-leaf bags with both endpoints in the bag.
//  4. All bags are reachable from the root.
//
// Validation says nothing about the decomposed graph itself; producers are
// trusted to hand over decompositions of the graph they claim.
func (t *Tree) Validate() error {
	if !t.hasRoot {
		return ErrNoRoot
	}
	if err := t.Link(); err != nil {
		return err
	}

	root := t.bags[t.root]
	if err := t.validateRoot(root); err != nil {
		return err
	}

	for _, id := range t.order {
		b := t.bags[id]
		if err := t.validateShape(b); err != nil {
			return err
		}
		if err := t.validateEdges(b); err != nil {
			return err
		}
	}

	return t.validateReachability()
}

func (t *Tree) validateRoot(root *Bag) error {
	if root.Type != Forget || root.Size() != 0 {
		return wrapBagErr(ErrRootShape, root.ID, "got %s with %d vertices", root.Type, root.Size())
	}
	children := root.Children()
	if len(children) != 1 {
		return wrapBagErr(ErrRootShape, root.ID, "got %d children", len(children))
	}
	child := t.bags[children[0]]
	if child.Size() != 1 {
		return wrapBagErr(ErrRootShape, root.ID, "child %d has %d vertices", child.ID, child.Size())
	}
	return nil
}

func (t *Tree) validateShape(b *Bag) error {
	children := b.Children()
	switch b.Type {
	case Leaf:
		if len(children) != 0 {
			return wrapBagErr(ErrBagShape, b.ID, "leaf with %d children", len(children))
		}
		if b.Size() != 0 {
			return wrapBagErr(ErrBagShape, b.ID, "leaf with %d vertices", b.Size())
		}

	case IntroduceVertex:
		if len(children) != 1 {
			return wrapBagErr(ErrBagShape, b.ID, "introduce with %d children", len(children))
		}
		child := t.bags[children[0]]
		if _, ok := b.Introduced(child); !ok {
			return wrapBagErr(ErrBagShape, b.ID, "introduce does not extend child %d by one vertex", child.ID)
		}

	case Forget:
		if len(children) != 1 {
			return wrapBagErr(ErrBagShape, b.ID, "forget with %d children", len(children))
		}
		child := t.bags[children[0]]
		if _, ok := b.Forgotten(child); !ok {
			return wrapBagErr(ErrBagShape, b.ID, "forget does not shrink child %d by one vertex", child.ID)
		}

	case Join:
		if len(children) != 2 {
			return wrapBagErr(ErrBagShape, b.ID, "join with %d children", len(children))
		}
		for _, id := range children {
			child := t.bags[id]
			if !slices.Equal(b.Vertices, child.Vertices) {
				return wrapBagErr(ErrBagShape, b.ID, "join child %d carries a different vertex set", id)
			}
		}

	default:
		return wrapBagErr(ErrBagShape, b.ID, "unknown type %d", int(b.Type))
	}
	return nil
}

func (t *Tree) validateEdges(b *Bag) error {
	if len(b.Edges) == 0 {
		return nil
	}
	if b.Type == Leaf {
		return wrapBagErr(ErrEdgePlacement, b.ID, "leaf introduces %d edges", len(b.Edges))
	}
	for _, e := range b.Edges {
		if !b.Contains(e.U) || !b.Contains(e.V) {
			return wrapBagErr(ErrEdgePlacement, b.ID, "edge %s has an endpoint outside the bag", e)
		}
	}
	return nil
}

func (t *Tree) validateReachability() error {
	visited := make(map[int]struct{}, len(t.bags))
	stack := []int{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		stack = append(stack, t.bags[id].Children()...)
	}
	if len(visited) != len(t.bags) {
		for _, id := range t.order {
			if _, ok := visited[id]; !ok {
				return wrapBagErr(ErrDisconnected, id, "parent chain does not lead to root %d", t.root)
			}
		}
	}
	return nil
}
