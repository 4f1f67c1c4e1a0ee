package domset

import "fmt"

// Color is the role a bag vertex plays in a partial solution.
type Color uint8

const (
	// White marks a vertex outside the dominating set that must be
	// dominated. White entries stay infeasible until an introduced edge
	// connects the vertex to a Black neighbour, so a finite White entry
	// always describes a vertex that is already dominated.
	White Color = iota
	// Black marks a vertex inside the dominating set.
	Black
	// Grey marks a vertex outside the dominating set that carries no
	// domination requirement.
	Grey
)

// String returns the lowercase colour name.
func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	case Grey:
		return "grey"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Short returns the single-letter form used in table dumps.
func (c Color) Short() string {
	switch c {
	case White:
		return "W"
	case Black:
		return "B"
	case Grey:
		return "G"
	default:
		return "?"
	}
}

// colors lists all colours in enumeration order.
var colors = [...]Color{White, Black, Grey}

// consistencyRow is one admissible per-vertex colour combination at a
// join bag: the parent's colour against the same vertex in the left and
// right child.
type consistencyRow struct {
	parent, left, right Color
}

// consistencyRows spans the combinations under which two child solutions
// merge without losing domination coverage. Black vertices are Black on
// both sides and Grey vertices stay Grey. A White vertex carries its
// domination requirement into exactly one child and is Grey in the other.
var consistencyRows = [...]consistencyRow{
	{parent: Black, left: Black, right: Black},
	{parent: White, left: White, right: Grey},
	{parent: White, left: Grey, right: White},
	{parent: Grey, left: Grey, right: Grey},
}
