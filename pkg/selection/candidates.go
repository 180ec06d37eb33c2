package selection

import (
	"slices"

	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// Kind tags a candidate entry.
type Kind int

const (
	// KindSingle is a one-ascendant individual whose chain has length one.
	KindSingle Kind = iota
	// KindLineage is a merged redundant lineage of length > 1.
	KindLineage
	// KindFounder is a founder not absorbed by any lineage.
	KindFounder
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindLineage:
		return "lineage"
	case KindFounder:
		return "founder"
	}
	return "unknown"
}

// Entry is one slot of the candidate arena. Single and founder entries hold
// exactly one identifier.
type Entry struct {
	Kind Kind
	IDs  []pedigree.ID
}

// Contains reports whether id is a member of the entry.
func (e Entry) Contains(id pedigree.ID) bool { return slices.Contains(e.IDs, id) }

type arena struct {
	slots   []Entry
	retired []bool
}

func (a *arena) live(fn func(i int, e Entry)) {
	for i, e := range a.slots {
		if !a.retired[i] {
			fn(i, e)
		}
	}
}

func (a *arena) push(e Entry) {
	a.slots = append(a.slots, e)
	a.retired = append(a.retired, false)
}

func (a *arena) contains(id pedigree.ID) bool {
	found := false
	a.live(func(_ int, e Entry) {
		if !found && e.Contains(id) {
			found = true
		}
	})
	return found
}

// merge folds a freshly computed chain into the arena.
func (a *arena) merge(chain []pedigree.ID) {
	members := make(map[pedigree.ID]bool, len(chain))
	for _, id := range chain {
		members[id] = true
	}

	var overlaps []int
	absorbed := false
	a.live(func(i int, e Entry) {
		hit := false
		for _, id := range e.IDs {
			if members[id] {
				hit = true
				break
			}
		}
		if !hit {
			return
		}
		if e.Kind == KindLineage && len(e.IDs) >= len(chain) {
			absorbed = true
		}
		overlaps = append(overlaps, i)
	})
	if absorbed {
		return
	}

	entry := Entry{Kind: KindLineage, IDs: chain}
	if len(chain) == 1 {
		entry.Kind = KindSingle
	}
	if len(overlaps) == 0 {
		a.push(entry)
		return
	}
	a.slots[overlaps[0]] = entry
	for _, i := range overlaps[1:] {
		a.retired[i] = true
	}
}

func (a *arena) entries() []Entry {
	var out []Entry
	a.live(func(_ int, e Entry) { out = append(out, e) })
	return out
}

// Candidates builds the merged candidate list of one family: chains of all
// one-ascendant members in record order, then every founder that no retained
// entry contains.
func Candidates(c *pedigree.Classification) ([]Entry, error) {
	var a arena
	for _, id := range c.OneAscendants() {
		chain, err := Chain(c, id)
		if err != nil {
			return nil, err
		}
		a.merge(chain)
	}
	for _, id := range c.Founders() {
		if !a.contains(id) {
			a.push(Entry{Kind: KindFounder, IDs: []pedigree.ID{id}})
		}
	}
	return a.entries(), nil
}
