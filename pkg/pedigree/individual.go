package pedigree

import "strconv"

// ID identifies an individual within its family.
type ID string

// FamilyID identifies a family.
type FamilyID string

// Unknown is the parent reference used for unknown or unregistered parents.
const Unknown ID = "0"

// IsKnown reports whether the reference names a parent. Both "0" and the
// empty string mean unknown.
func (id ID) IsKnown() bool { return id != Unknown && id != "" }

// Sex is the categorical sex code of a PED record.
type Sex int

const (
	// UnknownSex is any code outside {1, 2}. It is carried through but
	// reported as unexpected.
	UnknownSex Sex = 0
	// Male is PED sex code 1.
	Male Sex = 1
	// Female is PED sex code 2.
	Female Sex = 2
)

// ParseSex converts a PED sex code. The second result is false for codes
// outside {1, 2}; the returned Sex is then [UnknownSex].
func ParseSex(code int) (Sex, bool) {
	switch Sex(code) {
	case Male, Female:
		return Sex(code), true
	}
	return UnknownSex, false
}

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	}
	return "unknown"
}

// Classifier is the selection status written back into the PED table.
type Classifier int

const (
	// NotSelected marks individuals left out of the unrelated set.
	NotSelected Classifier = 0
	// Selected marks individuals in the unrelated set.
	Selected Classifier = 2
)

// IsSelected reports whether c is [Selected].
func (c Classifier) IsSelected() bool { return c == Selected }

func (c Classifier) String() string { return strconv.Itoa(int(c)) }

// Individual is one PED record.
type Individual struct {
	Family     FamilyID
	ID         ID
	Father     ID
	Mother     ID
	Sex        Sex
	Classifier Classifier
}

// KnownParents returns the number of known parent references (0, 1 or 2).
func (ind Individual) KnownParents() int {
	n := 0
	if ind.Father.IsKnown() {
		n++
	}
	if ind.Mother.IsKnown() {
		n++
	}
	return n
}

// Parents returns the parent reference pair.
func (ind Individual) Parents() ParentPair {
	return ParentPair{Father: ind.Father, Mother: ind.Mother}
}

// ParentPair holds the father and mother references of an individual.
type ParentPair struct {
	Father ID
	Mother ID
}

// Known returns the single known reference of a one-ascendant pair.
// It returns false when zero or two references are known.
func (p ParentPair) Known() (ID, bool) {
	switch {
	case p.Father.IsKnown() && !p.Mother.IsKnown():
		return p.Father, true
	case p.Mother.IsKnown() && !p.Father.IsKnown():
		return p.Mother, true
	}
	return "", false
}
