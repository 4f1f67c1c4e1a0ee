package nicetree_test

import (
	"fmt"
	"strings"

	"github.com/lennartvogt/treedom/pkg/nicetree"
)

// Example decodes the interchange format for a single-edge graph and walks
// the tree bottom-up.
func Example() {
	input := `(0,{}) f [(1,{1})] []
(1,{1}) f [(0,{}),(2,{1,2})] []
(2,{1,2}) i [(1,{1}),(3,{2})] [(1,2)]
(3,{2}) i [(2,{1,2}),(4,{})] []
(4,{}) l [(3,{2})] []
`
	tree, err := nicetree.Decode(strings.NewReader(input))
	if err != nil {
		panic(err)
	}
	if err := tree.Validate(); err != nil {
		panic(err)
	}

	for _, id := range tree.Postorder() {
		bag, _ := tree.Bag(id)
		fmt.Println(bag)
	}

	// Output:
	// (4,{}) leaf
	// (3,{2}) introduce
	// (2,{1,2}) introduce
	// (1,{1}) forget
	// (0,{}) forget
}

// ExampleTree_Stats summarizes a decomposition before solving it.
func ExampleTree_Stats() {
	t := nicetree.New()
	for _, b := range []nicetree.Bag{
		{ID: 0, Type: nicetree.Forget, Parent: nicetree.NoParent},
		{ID: 1, Type: nicetree.IntroduceVertex, Parent: 0, Vertices: []int{1}},
		{ID: 2, Type: nicetree.Leaf, Parent: 1},
	} {
		if err := t.Add(b); err != nil {
			panic(err)
		}
	}
	if err := t.Validate(); err != nil {
		panic(err)
	}

	s := t.Stats()
	fmt.Printf("bags=%d width=%d depth=%d\n", s.Bags, s.Width, s.Depth)

	// Output:
	// bags=3 width=0 depth=3
}
