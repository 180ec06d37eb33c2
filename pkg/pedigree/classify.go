package pedigree

import (
	perrors "github.com/matzehuels/pedtower/pkg/errors"
)

// Classification groups the members of one family by the number of known
// parent references. It is immutable once built.
type Classification struct {
	Family FamilyID

	founders   []ID
	founderSet map[ID]struct{}
	oneOrder   []ID
	one        map[ID]ParentPair
	two        []ID
}

// Classify classifies every family of p.
func Classify(p *Pedigree) map[FamilyID]*Classification {
	out := make(map[FamilyID]*Classification, len(p.order))
	for _, id := range p.order {
		out[id] = ClassifyFamily(p.families[id])
	}
	return out
}

// ClassifyFamily classifies the members of f in record order.
func ClassifyFamily(f *Family) *Classification {
	c := &Classification{
		Family:     f.ID,
		founderSet: make(map[ID]struct{}),
		one:        make(map[ID]ParentPair),
	}
	for _, ind := range f.members {
		switch ind.KnownParents() {
		case 0:
			c.founders = append(c.founders, ind.ID)
			c.founderSet[ind.ID] = struct{}{}
		case 1:
			c.oneOrder = append(c.oneOrder, ind.ID)
			c.one[ind.ID] = ind.Parents()
		default:
			c.two = append(c.two, ind.ID)
		}
	}
	return c
}

// Lookup returns the classification of fam, failing with a lookup error if
// the family bucket does not exist.
func Lookup(classes map[FamilyID]*Classification, fam FamilyID) (*Classification, error) {
	c, ok := classes[fam]
	if !ok {
		return nil, perrors.New(perrors.ErrCodeFamilyNotFound, "no classification for family %q", fam)
	}
	return c, nil
}

// Founders returns the no-ascendant members in record order.
func (c *Classification) Founders() []ID { return append([]ID(nil), c.founders...) }

// OneAscendants returns the one-ascendant members in record order.
func (c *Classification) OneAscendants() []ID { return append([]ID(nil), c.oneOrder...) }

// TwoAscendants returns the two-ascendant members in record order.
func (c *Classification) TwoAscendants() []ID { return append([]ID(nil), c.two...) }

// IsFounder reports whether id is a no-ascendant member.
func (c *Classification) IsFounder(id ID) bool {
	_, ok := c.founderSet[id]
	return ok
}

// IsOneAscendant reports whether id is a one-ascendant member.
func (c *Classification) IsOneAscendant(id ID) bool {
	_, ok := c.one[id]
	return ok
}

// Parents returns the (father, mother) pair of a one-ascendant member.
func (c *Classification) Parents(id ID) (ParentPair, error) {
	pp, ok := c.one[id]
	if !ok {
		return ParentPair{}, perrors.New(perrors.ErrCodeIndividualNotFound,
			"individual %q is not a one-ascendant member of family %q", id, c.Family)
	}
	return pp, nil
}
