// Package nicetree models nice tree decompositions with edge introduction,
// the input structure for dynamic programming over bounded-treewidth graphs.
//
// # Overview
//
// A tree decomposition assigns every graph vertex to one or more bags arranged
// in a tree, such that each edge lives in some bag and each vertex occupies a
// connected subtree of bags. A nice decomposition restricts the tree to four
// bag shapes that differ from their children in exactly one controlled way:
//
//   - [Leaf]: an empty bag with no children
//   - [IntroduceVertex]: one child, whose vertex set grows by one vertex
//   - [Forget]: one child, whose vertex set shrinks by one vertex
//   - [Join]: two children, both carrying the same vertex set as the bag
//
// On top of the vertex shapes, every non-leaf bag may carry a list of graph
// edges that are introduced at that bag, immediately after its structural
// transition. Every endpoint of an introduced edge must be present in the
// bag, and every graph edge is introduced exactly once across the tree.
//
// The root is a distinguished empty [Forget] bag whose unique child holds
// exactly one vertex. Solvers walk the tree bottom-up and read their final
// result off that child.
//
// # Basic Usage
//
// Build a tree with [New] and [Tree.Add], then derive child pointers with
// [Tree.Link] and check the shape rules with [Tree.Validate]:
//
//	t := nicetree.New()
//	t.Add(nicetree.Bag{ID: 0, Type: nicetree.Forget, Parent: nicetree.NoParent})
//	t.Add(nicetree.Bag{ID: 1, Type: nicetree.IntroduceVertex, Parent: 0, Vertices: []int{4}})
//	t.Add(nicetree.Bag{ID: 2, Type: nicetree.Leaf, Parent: 1})
//	if err := t.Link(); err != nil { ... }
//	if err := t.Validate(); err != nil { ... }
//
// [Decode] reads the textual interchange format produced by decomposition
// tooling and returns a linked tree. [Tree.Postorder] yields a bottom-up
// evaluation order. [ToDOT] and [RenderSVG] draw the bag tree for inspection.
//
// # Scope
//
// This package describes and checks decompositions; it does not compute them.
// Producing a tree decomposition, making it nice, and verifying it against the
// original graph are the producer's responsibility. [Tree.Validate] checks the
// tree-shape rules above and nothing about the underlying graph.
//
// # Concurrency
//
// Tree instances are not safe for concurrent mutation. A fully built tree is
// read-only for all methods except Add and Link and may be shared between
// goroutines.
package nicetree
