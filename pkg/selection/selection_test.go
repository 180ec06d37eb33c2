package selection

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// fixedSource always picks the same index (modulo n).
type fixedSource int

func (f fixedSource) IntN(n int) int { return int(f) % n }

func rec(id, father, mother string) pedigree.Individual {
	return pedigree.Individual{Family: "f", ID: pedigree.ID(id), Father: pedigree.ID(father), Mother: pedigree.ID(mother), Sex: pedigree.Male}
}

func classify(t *testing.T, records ...pedigree.Individual) (*pedigree.Pedigree, *pedigree.Classification) {
	t.Helper()
	p, _ := pedigree.New(records)
	c, err := pedigree.Lookup(pedigree.Classify(p), records[0].Family)
	if err != nil {
		t.Fatal(err)
	}
	return p, c
}

func ids(s ...string) []pedigree.ID {
	out := make([]pedigree.ID, len(s))
	for i, v := range s {
		out[i] = pedigree.ID(v)
	}
	return out
}

func TestChain(t *testing.T) {
	_, c := classify(t,
		rec("A", "0", "0"),
		rec("B", "A", "0"),
		rec("E", "B", "0"),
		rec("P", "0", "0"),
		rec("Q", "0", "0"),
		rec("C", "P", "Q"),
		rec("D", "C", "0"),
		rec("X", "0", "77"),
		rec("Y", "0", "X"),
	)

	tests := []struct {
		id   string
		want []pedigree.ID
	}{
		{"B", ids("A", "B")},
		{"E", ids("A", "B", "E")},
		{"D", ids("D")},      // parent is two-ascendant
		{"X", ids("X")},      // parent has no record
		{"Y", ids("X", "Y")}, // stops at X's missing parent
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := Chain(c, pedigree.ID(tt.id))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Chain(%s) mismatch (-want +got):\n%s", tt.id, diff)
			}
		})
	}

	if _, err := Chain(c, "C"); !perrors.Is(err, perrors.ErrCodeIndividualNotFound) {
		t.Errorf("Chain(two-ascendant) error = %v, want INDIVIDUAL_NOT_FOUND", err)
	}
}

func TestChainCycleTerminates(t *testing.T) {
	_, c := classify(t,
		rec("X", "Y", "0"),
		rec("Y", "X", "0"),
	)
	got, err := Chain(c, "X")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ids("Y", "X"), got); diff != "" {
		t.Errorf("Chain mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFoundersChildAndSingleParentGrandchild(t *testing.T) {
	p, c := classify(t,
		rec("A", "0", "0"),
		rec("B", "0", "0"),
		rec("C", "A", "B"),
		rec("D", "C", "0"),
	)
	s, err := NewResolver(fixedSource(0)).Resolve(c)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(ids("D", "A", "B", "C"), s.Selected()); diff != "" {
		t.Errorf("Selected mismatch (-want +got):\n%s", diff)
	}
	want := []Entry{
		{Kind: KindSingle, IDs: ids("D")},
		{Kind: KindFounder, IDs: ids("A")},
		{Kind: KindFounder, IDs: ids("B")},
	}
	if diff := cmp.Diff(want, s.Entries); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}

	sels := map[pedigree.FamilyID]*Selection{"f": s}
	if err := Annotate(p, sels); err != nil {
		t.Fatal(err)
	}
	f, _ := p.Family("f")
	for _, m := range f.Members() {
		if !m.Classifier.IsSelected() {
			t.Errorf("%s classifier = %v, want selected", m.ID, m.Classifier)
		}
	}
}

func TestResolveMonoparentalLineage(t *testing.T) {
	_, c := classify(t,
		rec("A", "0", "0"),
		rec("B", "A", "0"),
		rec("E", "B", "0"),
	)

	for pick, want := range []pedigree.ID{"A", "B", "E"} {
		s, err := NewResolver(fixedSource(pick)).Resolve(c)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]pedigree.ID{want}, s.Selected()); diff != "" {
			t.Errorf("pick %d: Selected mismatch (-want +got):\n%s", pick, diff)
		}
		if diff := cmp.Diff([][]pedigree.ID{ids("A", "B", "E")}, s.Lineages()); diff != "" {
			t.Errorf("Lineages mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]pedigree.ID{want}, s.Representatives()); diff != "" {
			t.Errorf("Representatives mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestResolveLongerChainSupersedesRegardlessOfOrder(t *testing.T) {
	// E is recorded before its parent B.
	_, c := classify(t,
		rec("A", "0", "0"),
		rec("E", "B", "0"),
		rec("B", "A", "0"),
	)
	entries, err := Candidates(c)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{Kind: KindLineage, IDs: ids("A", "B", "E")}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveEqualLengthTieKeepsFirstDiscovered(t *testing.T) {
	_, c := classify(t,
		rec("A", "0", "0"),
		rec("B", "A", "0"),
		rec("C", "A", "0"),
	)
	entries, err := Candidates(c)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{Kind: KindLineage, IDs: ids("A", "B")}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}

	for seed := range uint64(20) {
		s, err := NewSeeded(seed).Resolve(c)
		if err != nil {
			t.Fatal(err)
		}
		if s.IsSelected("C") {
			t.Fatalf("seed %d: C belongs to the discarded tie and must not be selected", seed)
		}
	}
}

func TestResolveSingleSupersededByChain(t *testing.T) {
	_, c := classify(t,
		rec("X", "0", "77"),
		rec("Y", "0", "X"),
		rec("Z", "0", "0"),
	)
	entries, err := Candidates(c)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{
		{Kind: KindLineage, IDs: ids("X", "Y")},
		{Kind: KindFounder, IDs: ids("Z")},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveTwoAscendantsAlwaysSelected(t *testing.T) {
	_, c := classify(t,
		rec("A", "0", "0"),
		rec("B", "A", "0"),
		rec("M", "0", "0"),
		rec("K", "B", "M"),
	)
	for seed := range uint64(10) {
		s, err := NewSeeded(seed).Resolve(c)
		if err != nil {
			t.Fatal(err)
		}
		if !s.IsSelected("K") {
			t.Errorf("seed %d: two-ascendant K not selected", seed)
		}
		if !s.IsSelected("M") {
			t.Errorf("seed %d: free founder M not selected", seed)
		}
		n := 0
		for _, id := range ids("A", "B") {
			if s.IsSelected(id) {
				n++
			}
		}
		if n != 1 {
			t.Errorf("seed %d: %d members of lineage [A B] selected, want 1", seed, n)
		}
	}
}

func TestResolveAllIsReproducible(t *testing.T) {
	var records []pedigree.Individual
	for _, fam := range []pedigree.FamilyID{"f1", "f2", "f3"} {
		for _, r := range []pedigree.Individual{
			rec("A", "0", "0"),
			rec("B", "A", "0"),
			rec("C", "B", "0"),
			rec("D", "C", "0"),
			rec("E", "0", "0"),
			rec("F", "E", "0"),
		} {
			r.Family = fam
			records = append(records, r)
		}
	}
	p, _ := pedigree.New(records)
	classes := pedigree.Classify(p)

	run := func() map[pedigree.FamilyID][]pedigree.ID {
		sels, err := NewSeeded(42).ResolveAll(p, classes)
		if err != nil {
			t.Fatal(err)
		}
		out := make(map[pedigree.FamilyID][]pedigree.ID)
		for fam, s := range sels {
			out[fam] = s.Selected()
		}
		return out
	}

	first, second := run(), run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed produced different selections (-first +second):\n%s", diff)
	}
	for fam, sel := range first {
		if len(sel) != 2 {
			t.Errorf("family %s: selected %v, want one per lineage", fam, sel)
		}
	}
}

func TestResolveAllMissingClassification(t *testing.T) {
	p, _ := pedigree.New([]pedigree.Individual{rec("A", "0", "0")})
	_, err := NewSeeded(1).ResolveAll(p, map[pedigree.FamilyID]*pedigree.Classification{})
	if !perrors.Is(err, perrors.ErrCodeFamilyNotFound) {
		t.Errorf("error = %v, want FAMILY_NOT_FOUND", err)
	}
}

func TestAnnotateMissingSelection(t *testing.T) {
	p, _ := pedigree.New([]pedigree.Individual{rec("A", "0", "0")})
	if err := Annotate(p, nil); !perrors.IsLookup(err) {
		t.Errorf("Annotate error = %v, want lookup error", err)
	}
}
