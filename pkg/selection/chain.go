package selection

import (
	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// Chain returns the redundancy lineage of a one-ascendant individual,
// ordered from the topmost ancestor down to id itself.
//
// The walk follows the single known parent while it is itself one-ascendant.
// A founder parent is appended as the terminus. Any other parent (a
// two-ascendant member or an identifier without a record) ends the walk
// without being appended. A revisited identifier also ends the walk; cyclic
// references are not validated.
func Chain(c *pedigree.Classification, id pedigree.ID) ([]pedigree.ID, error) {
	pp, err := c.Parents(id)
	if err != nil {
		return nil, err
	}

	up := []pedigree.ID{id}
	seen := map[pedigree.ID]bool{id: true}
	for {
		parent, ok := pp.Known()
		if !ok || seen[parent] {
			break
		}
		if c.IsFounder(parent) {
			up = append(up, parent)
			break
		}
		if !c.IsOneAscendant(parent) {
			break
		}
		up = append(up, parent)
		seen[parent] = true
		if pp, err = c.Parents(parent); err != nil {
			return nil, err
		}
	}

	chain := make([]pedigree.ID, len(up))
	for i, v := range up {
		chain[len(up)-1-i] = v
	}
	return chain, nil
}
