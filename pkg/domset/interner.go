package domset

// Atom is an interned (vertex, colour) pair carried as a dense id. Atoms
// minted by the same Interner are equal exactly when vertex and colour
// match, so colourings compare and hash by id alone.
type Atom int32

type atomKey struct {
	vertex int
	color  Color
}

// Interner deduplicates (vertex, colour) pairs into Atoms. Every Solver
// owns one; atoms from different interners must not be mixed.
//
// An Interner is not safe for concurrent use. The zero value is not
// usable - use NewInterner.
type Interner struct {
	ids   map[atomKey]Atom
	pairs []atomKey
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[atomKey]Atom)}
}

// Intern returns the Atom for the pair, minting a new id on first use.
// Interning an already known pair returns the identical Atom.
func (in *Interner) Intern(vertex int, c Color) Atom {
	key := atomKey{vertex: vertex, color: c}
	if id, ok := in.ids[key]; ok {
		return id
	}
	id := Atom(len(in.pairs))
	in.ids[key] = id
	in.pairs = append(in.pairs, key)
	return id
}

// Vertex returns the vertex of an atom minted by this interner.
func (in *Interner) Vertex(a Atom) int { return in.pairs[a].vertex }

// Color returns the colour of an atom minted by this interner.
func (in *Interner) Color(a Atom) Color { return in.pairs[a].color }

// Len returns the number of distinct atoms minted so far.
func (in *Interner) Len() int { return len(in.pairs) }
