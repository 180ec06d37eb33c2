package pedigree

// Relations is the adjacency index of one family. Every list holds family
// members only and is ordered by record order or first discovery, so all
// consumers iterate deterministically.
type Relations struct {
	family *Family

	ascendants  map[ID][]ID
	descendants map[ID][]ID
	partners    map[ID][]ID
	siblings    map[ID][]ID
	unexpected  []ID
}

// BuildRelations derives parent/child, partner and sibling adjacency for f.
//
// Descendants are split by the individual's sex: a male owns the children
// whose father reference names him, a female those whose mother reference
// names her. Members with a sex code outside {1, 2} get no descendants or
// partners and are listed by [Relations.UnexpectedSex]; their children still
// reach them through [Relations.Ascendants].
func BuildRelations(f *Family) *Relations {
	r := &Relations{
		family:      f,
		ascendants:  make(map[ID][]ID, len(f.members)),
		descendants: make(map[ID][]ID),
		partners:    make(map[ID][]ID),
		siblings:    make(map[ID][]ID),
	}

	byFather := make(map[ID][]int)
	byMother := make(map[ID][]int)
	for i, ind := range f.members {
		if ind.Father.IsKnown() {
			byFather[ind.Father] = append(byFather[ind.Father], i)
		}
		if ind.Mother.IsKnown() {
			byMother[ind.Mother] = append(byMother[ind.Mother], i)
		}
	}

	for _, ind := range f.members {
		self := ind.ID

		var asc []ID
		for _, p := range []ID{ind.Father, ind.Mother} {
			if p.IsKnown() && p != self && f.Has(p) {
				asc = append(asc, p)
			}
		}
		r.ascendants[self] = asc

		var children []int
		switch ind.Sex {
		case Male:
			children = byFather[self]
		case Female:
			children = byMother[self]
		default:
			r.unexpected = append(r.unexpected, self)
		}
		seenPartner := make(map[ID]bool)
		for _, ci := range children {
			child := f.members[ci]
			if child.ID == self {
				continue
			}
			r.descendants[self] = append(r.descendants[self], child.ID)

			other := child.Mother
			if ind.Sex == Female {
				other = child.Father
			}
			if other.IsKnown() && other != self && f.Has(other) && !seenPartner[other] {
				seenPartner[other] = true
				r.partners[self] = append(r.partners[self], other)
			}
		}

		r.siblings[self] = mergeSiblings(f, self, byFather[ind.Father], byMother[ind.Mother])
	}
	return r
}

// mergeSiblings merges the children of self's father and mother. Unknown
// references are never indexed, so their lists are empty.
func mergeSiblings(f *Family, self ID, viaFather, viaMother []int) []ID {
	// Both index lists are ascending, so a merge keeps record order.
	var out []ID
	i, j := 0, 0
	last := -1
	for i < len(viaFather) || j < len(viaMother) {
		var next int
		switch {
		case j >= len(viaMother) || (i < len(viaFather) && viaFather[i] <= viaMother[j]):
			next = viaFather[i]
			i++
		default:
			next = viaMother[j]
			j++
		}
		if next == last {
			continue
		}
		last = next
		if id := f.members[next].ID; id != self {
			out = append(out, id)
		}
	}
	return out
}

// Family returns the family the index was built for.
func (r *Relations) Family() *Family { return r.family }

// Ascendants returns the member parents of id (father first).
func (r *Relations) Ascendants(id ID) []ID { return r.ascendants[id] }

// Descendants returns the children of id in record order.
func (r *Relations) Descendants(id ID) []ID { return r.descendants[id] }

// Partners returns the other member parent of each child of id, deduplicated.
func (r *Relations) Partners(id ID) []ID { return r.partners[id] }

// Siblings returns members sharing a father or a mother reference with id.
func (r *Relations) Siblings(id ID) []ID { return r.siblings[id] }

// UnexpectedSex returns members whose sex code is outside {1, 2}.
func (r *Relations) UnexpectedSex() []ID { return append([]ID(nil), r.unexpected...) }

// IsChildOf reports whether child lists parent as father or mother.
func (r *Relations) IsChildOf(child, parent ID) bool {
	for _, p := range r.ascendants[child] {
		if p == parent {
			return true
		}
	}
	return false
}
