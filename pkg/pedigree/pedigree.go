package pedigree

import (
	perrors "github.com/matzehuels/pedtower/pkg/errors"
)

// Pedigree is a fully materialised record set grouped into families.
// Families keep the order in which they were first seen; members keep record
// order. Both orders drive every deterministic iteration downstream.
type Pedigree struct {
	order    []FamilyID
	families map[FamilyID]*Family
}

// Family is the set of records sharing a family identifier. It is not
// necessarily a connected graph.
type Family struct {
	ID      FamilyID
	members []Individual
	index   map[ID]int
}

// New groups records into families. An unseen family identifier creates its
// bucket implicitly. A repeated identifier within a family keeps the first
// record; later duplicates are dropped and returned.
func New(records []Individual) (*Pedigree, []Individual) {
	p := &Pedigree{families: make(map[FamilyID]*Family)}
	var dups []Individual
	for _, rec := range records {
		f, ok := p.families[rec.Family]
		if !ok {
			f = &Family{ID: rec.Family, index: make(map[ID]int)}
			p.families[rec.Family] = f
			p.order = append(p.order, rec.Family)
		}
		if _, seen := f.index[rec.ID]; seen {
			dups = append(dups, rec)
			continue
		}
		f.index[rec.ID] = len(f.members)
		f.members = append(f.members, rec)
	}
	return p, dups
}

// Families returns family identifiers in first-seen order.
func (p *Pedigree) Families() []FamilyID {
	return append([]FamilyID(nil), p.order...)
}

// FamilyCount returns the number of families.
func (p *Pedigree) FamilyCount() int { return len(p.order) }

// Size returns the total number of individuals.
func (p *Pedigree) Size() int {
	n := 0
	for _, f := range p.families {
		n += len(f.members)
	}
	return n
}

// Family returns the family with the given identifier.
func (p *Pedigree) Family(id FamilyID) (*Family, error) {
	f, ok := p.families[id]
	if !ok {
		return nil, perrors.New(perrors.ErrCodeFamilyNotFound, "family %q", id)
	}
	return f, nil
}

// SetClassifier overwrites the classifier of one individual.
func (p *Pedigree) SetClassifier(fam FamilyID, id ID, c Classifier) error {
	f, err := p.Family(fam)
	if err != nil {
		return err
	}
	i, ok := f.index[id]
	if !ok {
		return perrors.New(perrors.ErrCodeIndividualNotFound, "individual %q in family %q", id, fam)
	}
	f.members[i].Classifier = c
	return nil
}

// Members returns a copy of the family's records in record order.
func (f *Family) Members() []Individual {
	return append([]Individual(nil), f.members...)
}

// Len returns the number of members.
func (f *Family) Len() int { return len(f.members) }

// Has reports whether id is a member of the family.
func (f *Family) Has(id ID) bool {
	_, ok := f.index[id]
	return ok
}

// Member returns the record of id.
func (f *Family) Member(id ID) (Individual, error) {
	i, ok := f.index[id]
	if !ok {
		return Individual{}, perrors.New(perrors.ErrCodeIndividualNotFound, "individual %q in family %q", id, f.ID)
	}
	return f.members[i], nil
}

// Position returns the record-order index of id, or -1.
func (f *Family) Position(id ID) int {
	if i, ok := f.index[id]; ok {
		return i
	}
	return -1
}
