package stratify

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// EdgeKind is the relation a level constraint comes from.
type EdgeKind int

const (
	// ParentChild requires the child one level below the parent.
	ParentChild EdgeKind = iota
	// Sibling requires equal levels.
	Sibling
	// Partner requires equal levels.
	Partner
)

func (k EdgeKind) String() string {
	switch k {
	case ParentChild:
		return "parent-child"
	case Sibling:
		return "sibling"
	case Partner:
		return "partner"
	}
	return "unknown"
}

// Conflict is a relation whose level constraint could not be satisfied.
// For [ParentChild], A is the parent and B the child.
type Conflict struct {
	Kind   EdgeKind
	A, B   pedigree.ID
	LevelA int
	LevelB int
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s %s(%d) %s(%d)", c.Kind, c.A, c.LevelA, c.B, c.LevelB)
}

// Result holds the generation level of every member of one family.
type Result struct {
	Family pedigree.FamilyID

	// Conflicts lists violated relations in record order.
	Conflicts []Conflict

	// Groups is the number of disconnected groups seeded independently.
	Groups int

	order  []pedigree.ID
	levels map[pedigree.ID]int
}

type edge struct {
	to  pedigree.ID
	off int
}

// Assign computes generation levels for the family indexed by rel.
func Assign(rel *pedigree.Relations) *Result {
	f := rel.Family()
	members := f.Members()
	res := &Result{
		Family: f.ID,
		order:  make([]pedigree.ID, len(members)),
		levels: make(map[pedigree.ID]int, len(members)),
	}

	descent := make(map[pedigree.ID][]edge, len(members))
	lateral := make(map[pedigree.ID][]edge, len(members))
	for i, m := range members {
		res.order[i] = m.ID
		for _, a := range rel.Ascendants(m.ID) {
			descent[m.ID] = append(descent[m.ID], edge{a, -1})
			descent[a] = append(descent[a], edge{m.ID, +1})
		}
		for _, s := range rel.Siblings(m.ID) {
			lateral[m.ID] = append(lateral[m.ID], edge{s, 0})
		}
		for _, p := range rel.Partners(m.ID) {
			lateral[m.ID] = append(lateral[m.ID], edge{p, 0})
			lateral[p] = append(lateral[p], edge{m.ID, 0})
		}
	}

	group := make(map[pedigree.ID]int, len(members))
	var tops []int
	for _, seed := range res.order {
		if _, ok := group[seed]; ok {
			continue
		}
		g := len(tops)
		tops = append(tops, 0)
		group[seed], res.levels[seed] = g, 0
		queue := []pedigree.ID{seed}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, edges := range [][]edge{descent[cur], lateral[cur]} {
				for _, e := range edges {
					if _, ok := group[e.to]; ok {
						continue
					}
					lvl := res.levels[cur] + e.off
					group[e.to], res.levels[e.to] = g, lvl
					tops[g] = min(tops[g], lvl)
					queue = append(queue, e.to)
				}
			}
		}
	}
	res.Groups = len(tops)

	for _, id := range res.order {
		res.levels[id] -= tops[group[id]]
	}
	res.Conflicts = res.check(rel, f)
	return res
}

func (r *Result) check(rel *pedigree.Relations, f *pedigree.Family) []Conflict {
	var out []Conflict
	for _, id := range r.order {
		lvl := r.levels[id]
		for _, a := range rel.Ascendants(id) {
			if r.levels[a]+1 != lvl {
				out = append(out, Conflict{Kind: ParentChild, A: a, B: id, LevelA: r.levels[a], LevelB: lvl})
			}
		}
		pos := f.Position(id)
		for _, s := range rel.Siblings(id) {
			if f.Position(s) > pos && r.levels[s] != lvl {
				out = append(out, Conflict{Kind: Sibling, A: id, B: s, LevelA: lvl, LevelB: r.levels[s]})
			}
		}
		for _, p := range rel.Partners(id) {
			if f.Position(p) > pos && r.levels[p] != lvl {
				out = append(out, Conflict{Kind: Partner, A: id, B: p, LevelA: lvl, LevelB: r.levels[p]})
			}
		}
	}
	return out
}

// Level returns the generation of id.
func (r *Result) Level(id pedigree.ID) (int, bool) {
	l, ok := r.levels[id]
	return l, ok
}

// Levels returns a copy of the level map.
func (r *Result) Levels() map[pedigree.ID]int { return maps.Clone(r.levels) }

// Generations returns the members of each level in record order.
func (r *Result) Generations() map[int][]pedigree.ID {
	out := make(map[int][]pedigree.ID)
	for _, id := range r.order {
		l := r.levels[id]
		out[l] = append(out[l], id)
	}
	return out
}

// Depths returns the distinct levels in ascending order.
func (r *Result) Depths() []int {
	return slices.Sorted(maps.Keys(r.Generations()))
}
