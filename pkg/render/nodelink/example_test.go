package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/pedtower/pkg/layout"
	"github.com/matzehuels/pedtower/pkg/pedigree"
	"github.com/matzehuels/pedtower/pkg/render/nodelink"
)

func ExampleToDOT() {
	l := &layout.Layout{
		Family: "F1",
		Generations: []layout.Generation{{
			Level: 0,
			Nodes: []layout.Node{
				{Kind: layout.KindIndividual, ID: "1", Sex: pedigree.Male, Classifier: pedigree.Selected},
			},
		}},
	}

	dot := nodelink.ToDOT(l, nodelink.Options{})

	fmt.Println(strings.Contains(dot, `"1" [label="1", shape=box, color=green];`))
	// Output:
	// true
}
