package layout

import (
	"slices"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// Build assembles the layout of f from its relations and generation levels.
// Every member of f must have a level.
//
// Generations run from the smallest to the largest level with no gaps. A
// couple whose partners sit on different levels gets its connector on the
// upper one.
func Build(f *pedigree.Family, rel *pedigree.Relations, levels map[pedigree.ID]int) (*Layout, error) {
	members := f.Members()
	l := &Layout{Family: f.ID}
	if len(members) == 0 {
		return l, nil
	}

	byLevel := make(map[int][]pedigree.Individual)
	for _, m := range members {
		lvl, ok := levels[m.ID]
		if !ok {
			return nil, perrors.New(perrors.ErrCodeUnexpectedValue,
				"family %s: individual %s has no generation level", f.ID, m.ID)
		}
		byLevel[lvl] = append(byLevel[lvl], m)
	}

	// Members that are the only registered parent of some child.
	soleParent := make(map[pedigree.ID]bool)
	for _, m := range members {
		if asc := rel.Ascendants(m.ID); len(asc) == 1 {
			soleParent[asc[0]] = true
		}
	}

	depths := make([]int, 0, len(byLevel))
	for lvl := range byLevel {
		depths = append(depths, lvl)
	}
	slices.Sort(depths)

	seen := make(map[[2]pedigree.ID]bool)
	for lvl := depths[0]; lvl <= depths[len(depths)-1]; lvl++ {
		g := Generation{Level: lvl, Nodes: []Node{}}
		for _, m := range byLevel[lvl] {
			g.Nodes = append(g.Nodes, Node{
				Kind:       KindIndividual,
				ID:         m.ID,
				Sex:        m.Sex,
				Classifier: m.Classifier,
				Parents:    slices.Clone(rel.Ascendants(m.ID)),
			})
			for _, p := range rel.Partners(m.ID) {
				key := pairKey(m.ID, p)
				if seen[key] {
					continue
				}
				seen[key] = true
				g.Nodes = append(g.Nodes, Node{Kind: KindPartner, A: m.ID, B: p})
				g.Descents = append(g.Descents, Descent{A: m.ID, B: p})
			}
			if soleParent[m.ID] {
				g.Descents = append(g.Descents, Descent{A: m.ID})
			}
		}
		l.Generations = append(l.Generations, g)
	}
	return l, nil
}

func pairKey(a, b pedigree.ID) [2]pedigree.ID {
	if b < a {
		a, b = b, a
	}
	return [2]pedigree.ID{a, b}
}
