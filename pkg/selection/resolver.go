package selection

import (
	"math/rand/v2"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// Source picks an index in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Resolver selects unrelated individuals using an injected random source.
// A Resolver is not safe for concurrent use; the source advances on every
// lineage it resolves.
type Resolver struct {
	src Source
}

// NewResolver returns a resolver drawing from src.
func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// NewSeeded returns a resolver backed by a PCG generator so that runs with
// the same seed are reproducible.
func NewSeeded(seed uint64) *Resolver {
	return NewResolver(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)))
}

// Selection is the resolved unrelated set of one family.
type Selection struct {
	Family pedigree.FamilyID

	// Entries is the merged candidate list the selection was drawn from.
	Entries []Entry

	chosen   []pedigree.ID
	lineage  []pedigree.ID
	selected map[pedigree.ID]bool
}

// Resolve selects the unrelated set of one family.
func (r *Resolver) Resolve(c *pedigree.Classification) (*Selection, error) {
	entries, err := Candidates(c)
	if err != nil {
		return nil, err
	}

	s := &Selection{
		Family:   c.Family,
		Entries:  entries,
		selected: make(map[pedigree.ID]bool),
	}
	for _, e := range entries {
		pick := e.IDs[0]
		if e.Kind == KindLineage {
			pick = e.IDs[r.src.IntN(len(e.IDs))]
			s.lineage = append(s.lineage, pick)
		}
		s.add(pick)
	}
	for _, id := range c.TwoAscendants() {
		s.add(id)
	}
	return s, nil
}

func (s *Selection) add(id pedigree.ID) {
	if s.selected[id] {
		return
	}
	s.selected[id] = true
	s.chosen = append(s.chosen, id)
}

// ResolveAll resolves every family of p in first-seen order, so a seeded
// resolver yields the same result on every run.
func (r *Resolver) ResolveAll(p *pedigree.Pedigree, classes map[pedigree.FamilyID]*pedigree.Classification) (map[pedigree.FamilyID]*Selection, error) {
	out := make(map[pedigree.FamilyID]*Selection, p.FamilyCount())
	for _, fam := range p.Families() {
		c, err := pedigree.Lookup(classes, fam)
		if err != nil {
			return nil, err
		}
		s, err := r.Resolve(c)
		if err != nil {
			return nil, err
		}
		out[fam] = s
	}
	return out, nil
}

// Selected returns the selected identifiers: candidates in entry order, then
// two-ascendant members in record order.
func (s *Selection) Selected() []pedigree.ID {
	return append([]pedigree.ID(nil), s.chosen...)
}

// IsSelected reports whether id was selected.
func (s *Selection) IsSelected(id pedigree.ID) bool { return s.selected[id] }

// Len returns the number of selected individuals.
func (s *Selection) Len() int { return len(s.chosen) }

// Lineages returns the merged redundant lineages (length > 1).
func (s *Selection) Lineages() [][]pedigree.ID {
	var out [][]pedigree.ID
	for _, e := range s.Entries {
		if e.Kind == KindLineage {
			out = append(out, append([]pedigree.ID(nil), e.IDs...))
		}
	}
	return out
}

// Representatives returns the member chosen from each lineage, in the order
// of [Selection.Lineages].
func (s *Selection) Representatives() []pedigree.ID {
	return append([]pedigree.ID(nil), s.lineage...)
}

// Annotate writes the selection back into p: [pedigree.Selected] for selected
// members, [pedigree.NotSelected] for everyone else. A family without a
// selection is a lookup failure.
func Annotate(p *pedigree.Pedigree, selections map[pedigree.FamilyID]*Selection) error {
	for _, fam := range p.Families() {
		s, ok := selections[fam]
		if !ok {
			return perrors.New(perrors.ErrCodeFamilyNotFound, "no selection for family %q", fam)
		}
		f, err := p.Family(fam)
		if err != nil {
			return err
		}
		for _, m := range f.Members() {
			c := pedigree.NotSelected
			if s.IsSelected(m.ID) {
				c = pedigree.Selected
			}
			if err := p.SetClassifier(fam, m.ID, c); err != nil {
				return err
			}
		}
	}
	return nil
}
