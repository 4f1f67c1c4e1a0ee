package domset

import "math"

// Infinity is the sentinel value of an infeasible table entry. Arithmetic
// on table values goes through addCosts so the sentinel absorbs instead of
// overflowing.
const Infinity = math.MaxInt

// addCosts adds two table values with Infinity absorbing.
func addCosts(a, b int) int {
	if a == Infinity || b == Infinity {
		return Infinity
	}
	return a + b
}

// Table maps every colouring of one bag's vertex set to the minimum number
// of Black vertices over the matching partial solutions. Entries start at
// Infinity and are written by the bag's transition.
type Table struct {
	domain []Coloring
	values map[string]int
}

// newTable allocates a table over the domain with every entry Infinity.
func newTable(domain []Coloring) *Table {
	values := make(map[string]int, len(domain))
	for _, f := range domain {
		values[f.Key()] = Infinity
	}
	return &Table{domain: domain, values: values}
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.values) }

// Domain returns the table's colourings in enumeration order. The slice is
// shared with the table; callers must not modify it.
func (t *Table) Domain() []Coloring { return t.domain }

// Get returns the value stored for the colouring, or false when the
// colouring is outside the table's domain.
func (t *Table) Get(f Coloring) (int, bool) {
	v, ok := t.values[f.Key()]
	return v, ok
}

// Min returns the smallest value in the table, or Infinity for an empty or
// fully infeasible table.
func (t *Table) Min() int {
	m := Infinity
	for _, v := range t.values {
		if v < m {
			m = v
		}
	}
	return m
}

func (t *Table) set(f Coloring, v int) {
	t.values[f.Key()] = v
}
