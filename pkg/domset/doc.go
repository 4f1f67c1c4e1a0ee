// Package domset computes minimum dominating set sizes from nice tree
// decompositions.
//
// # Overview
//
// A dominating set of a graph is a vertex subset D such that every vertex
// outside D has a neighbour in D. Finding a minimum dominating set is
// NP-hard in general but tractable on graphs of small treewidth: over a
// nice tree decomposition the answer follows from a bottom-up dynamic
// program whose per-bag tables assign one of three colours to every bag
// vertex.
//
//   - Black: the vertex is in the dominating set.
//   - White: the vertex is outside the set and must be dominated.
//   - Grey: the vertex is outside the set and exempt from domination.
//
// Each bag owns one table entry per colouring of its vertex set (3^k for a
// bag of k vertices) holding the minimum number of Black vertices over all
// partial solutions of the subtree below the bag that agree with the
// colouring. Leaf, introduce, forget and join bags each derive their table
// from their children by a fixed rule; graph edges activate at designated
// bags and rewrite the table in place. The answer is the single entry of
// the root, an empty forget bag.
//
// # Basic Usage
//
//	tree, err := nicetree.DecodeFile("graph.ntd")
//	if err != nil {
//		return err
//	}
//	res, err := domset.Solve(ctx, tree, domset.Options{MaxWidth: 12})
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Answer)
//
// # Complexity
//
// Runtime and memory are exponential in the decomposition width: a bag of
// k vertices owns a table of 3^k entries and a join bag additionally walks
// 4^k consistent colouring triples. Options.MaxWidth rejects decompositions
// beyond a caller-chosen bound before any table is allocated.
//
// # Concurrency
//
// A Solver is single-threaded and not safe for concurrent use. Concurrent
// solves need separate Solver values; they share nothing.
package domset
