package layout

import (
	"fmt"

	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// EdgeKind tells what an [Edge] connects.
type EdgeKind string

const (
	// EdgePartner joins a partner to the couple connector.
	EdgePartner EdgeKind = "partner"
	// EdgeDescent joins a couple connector or a sole parent to its descent.
	EdgeDescent EdgeKind = "descent"
	// EdgeChild joins a descent to a child in the next generation.
	EdgeChild EdgeKind = "child"
)

// Edge is an undirected link between two graph node names.
type Edge struct {
	Kind EdgeKind
	From string
	To   string
}

// Mismatch is a child whose parents match no connector of the generation
// above it.
type Mismatch struct {
	Child   pedigree.ID
	Parents []pedigree.ID
	Level   int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("individual %s at generation %d: parents %v match no connector above", m.Child, m.Level, m.Parents)
}

// Edges derives every link of the diagram in generation order. Within a
// generation, partner links come first, then descent links, then the links
// from the generation above into its individuals. The top generation has no
// incoming child links.
//
// A child with one parent hangs from that parent's descent. A child with two
// parents hangs from the descent of the couple connector naming them, in
// either order. Children that cannot be attached are returned as mismatches.
func (l *Layout) Edges() ([]Edge, []Mismatch) {
	var edges []Edge
	var mismatches []Mismatch
	for i, g := range l.Generations {
		for _, n := range g.Nodes {
			if n.IsConnector() {
				name := n.Name()
				edges = append(edges,
					Edge{Kind: EdgePartner, From: string(n.A), To: name},
					Edge{Kind: EdgePartner, From: name, To: string(n.B)},
				)
			}
		}
		for _, d := range g.Descents {
			edges = append(edges, Edge{Kind: EdgeDescent, From: d.Source(), To: d.Name()})
		}
		if i == 0 {
			continue
		}
		above := l.Generations[i-1]
		for _, n := range g.Nodes {
			if n.IsConnector() || len(n.Parents) == 0 {
				continue
			}
			d, ok := above.descentOf(n.Parents)
			if !ok {
				mismatches = append(mismatches, Mismatch{Child: n.ID, Parents: n.Parents, Level: g.Level})
				continue
			}
			edges = append(edges, Edge{Kind: EdgeChild, From: d.Name(), To: n.Name()})
		}
	}
	return edges, mismatches
}

func (g Generation) descentOf(parents []pedigree.ID) (Descent, bool) {
	switch len(parents) {
	case 1:
		want := Descent{A: parents[0]}
		for _, d := range g.Descents {
			if d == want {
				return d, true
			}
		}
	case 2:
		for _, n := range g.Nodes {
			if n.Joins(parents[0], parents[1]) {
				return Descent{A: n.A, B: n.B}, true
			}
		}
	}
	return Descent{}, false
}
