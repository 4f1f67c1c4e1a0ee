package domset

import (
	"fmt"

	"github.com/lennartvogt/treedom/pkg/nicetree"
)

// solveBag runs the bag's structural transition and then applies its
// introduce-edges in order.
func (s *Solver) solveBag(st *bagState) error {
	var err error
	switch st.bag.Type {
	case nicetree.Leaf:
		s.applyLeaf(st)
	case nicetree.IntroduceVertex:
		err = s.applyIntroduce(st)
	case nicetree.Forget:
		err = s.applyForget(st)
	case nicetree.Join:
		err = s.applyJoin(st)
	default:
		err = fmt.Errorf("%w: bag %d has unknown type %d", ErrInconsistent, st.bag.ID, int(st.bag.Type))
	}
	if err != nil {
		return err
	}
	for _, e := range st.bag.Edges {
		if err := s.applyEdge(st, e); err != nil {
			return err
		}
	}
	return nil
}

// childState resolves the i-th child's evaluation state.
func (s *Solver) childState(b *nicetree.Bag, i int) (*bagState, error) {
	children := b.Children()
	if i >= len(children) {
		return nil, fmt.Errorf("%w: bag %d has no child %d", ErrInconsistent, b.ID, i)
	}
	st, ok := s.states[children[i]]
	if !ok {
		return nil, fmt.Errorf("%w: bag %d evaluated before child %d", ErrInconsistent, b.ID, children[i])
	}
	return st, nil
}

// applyLeaf seeds the single empty colouring at cost zero.
func (s *Solver) applyLeaf(st *bagState) {
	st.table.set(Coloring{}, 0)
}

// applyIntroduce fills the table of a bag that adds one vertex v over its
// child. White entries stay Infinity because v has no introduced edges yet
// and cannot be dominated. Grey entries copy the child value and Black
// entries pay one for v itself.
func (s *Solver) applyIntroduce(st *bagState) error {
	child, err := s.childState(st.bag, 0)
	if err != nil {
		return err
	}
	v, ok := st.bag.Introduced(child.bag)
	if !ok {
		return fmt.Errorf("%w: bag %d does not introduce over bag %d", ErrInconsistent, st.bag.ID, child.bag.ID)
	}
	for _, f := range st.table.Domain() {
		c, ok := f.ColorOf(s.in, v)
		if !ok {
			return fmt.Errorf("%w: bag %d colouring misses vertex %d", ErrInconsistent, st.bag.ID, v)
		}
		if c == White {
			continue
		}
		value, ok := child.table.Get(f.Without(s.in, v))
		if !ok {
			return fmt.Errorf("%w: child %d misses restriction of %s", ErrInconsistent, child.bag.ID, f.Format(s.in))
		}
		if c == Black {
			value = addCosts(value, 1)
		}
		st.table.set(f, value)
	}
	return nil
}

// applyForget fills the table of a bag that drops one vertex w from its
// child. The vertex may leave as Black or as White, where a finite White
// means it is already dominated; the Grey extension would let it escape
// domination and is never consulted.
func (s *Solver) applyForget(st *bagState) error {
	child, err := s.childState(st.bag, 0)
	if err != nil {
		return err
	}
	w, ok := st.bag.Forgotten(child.bag)
	if !ok {
		return fmt.Errorf("%w: bag %d does not forget over bag %d", ErrInconsistent, st.bag.ID, child.bag.ID)
	}
	for _, f := range st.table.Domain() {
		asBlack, ok := child.table.Get(f.With(s.in, w, Black))
		if !ok {
			return fmt.Errorf("%w: child %d misses Black extension of %s", ErrInconsistent, child.bag.ID, f.Format(s.in))
		}
		asWhite, ok := child.table.Get(f.With(s.in, w, White))
		if !ok {
			return fmt.Errorf("%w: child %d misses White extension of %s", ErrInconsistent, child.bag.ID, f.Format(s.in))
		}
		st.table.set(f, min(asBlack, asWhite))
	}
	return nil
}

// applyJoin merges two children carrying the bag's own vertex set. Every
// consistent triple contributes the sum of the child values minus the
// number of Black vertices, which both children counted; the table keeps
// the minimum per target colouring.
func (s *Solver) applyJoin(st *bagState) error {
	left, err := s.childState(st.bag, 0)
	if err != nil {
		return err
	}
	right, err := s.childState(st.bag, 1)
	if err != nil {
		return err
	}
	for _, tr := range st.triples {
		v1, ok := left.table.Get(tr.left)
		if !ok {
			return fmt.Errorf("%w: child %d misses entry %s", ErrInconsistent, left.bag.ID, tr.left.Format(s.in))
		}
		v2, ok := right.table.Get(tr.right)
		if !ok {
			return fmt.Errorf("%w: child %d misses entry %s", ErrInconsistent, right.bag.ID, tr.right.Format(s.in))
		}
		cur, ok := st.table.Get(tr.parent)
		if !ok {
			return fmt.Errorf("%w: bag %d misses entry %s", ErrInconsistent, st.bag.ID, tr.parent.Format(s.in))
		}

		candidate := Infinity
		if v1 != Infinity && v2 != Infinity {
			candidate = v1 + v2 - tr.parent.CountBlack(s.in)
		}
		if candidate < cur {
			st.table.set(tr.parent, candidate)
		}
	}
	return nil
}

// applyEdge rewrites the bag's table in place for one introduced edge. An
// entry colouring one endpoint Black and the other White inherits the
// value of the same colouring with the White endpoint turned Grey: that
// vertex is now dominated, so its requirement is discharged. Entries the
// rewrite reads colour the endpoint Grey and never match the trigger
// pattern themselves, so iteration order within one edge does not matter.
// Successive edges observe each other's rewrites.
func (s *Solver) applyEdge(st *bagState, e nicetree.Edge) error {
	for _, f := range st.table.Domain() {
		cu, ok := f.ColorOf(s.in, e.U)
		if !ok {
			return fmt.Errorf("%w: bag %d: edge %s endpoint %d outside bag", ErrInconsistent, st.bag.ID, e, e.U)
		}
		cv, ok := f.ColorOf(s.in, e.V)
		if !ok {
			return fmt.Errorf("%w: bag %d: edge %s endpoint %d outside bag", ErrInconsistent, st.bag.ID, e, e.V)
		}

		var relaxed Coloring
		switch {
		case cu == Black && cv == White:
			relaxed = f.Recolored(s.in, e.V, Grey)
		case cu == White && cv == Black:
			relaxed = f.Recolored(s.in, e.U, Grey)
		default:
			continue
		}
		value, ok := st.table.Get(relaxed)
		if !ok {
			return fmt.Errorf("%w: bag %d misses entry %s", ErrInconsistent, st.bag.ID, relaxed.Format(s.in))
		}
		st.table.set(f, value)
	}
	return nil
}
