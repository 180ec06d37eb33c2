package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/pedigree"
	"github.com/matzehuels/pedtower/pkg/stratify"
)

func rec(id, father, mother string, sex pedigree.Sex, c pedigree.Classifier) pedigree.Individual {
	return pedigree.Individual{
		Family:     "f",
		ID:         pedigree.ID(id),
		Father:     pedigree.ID(father),
		Mother:     pedigree.ID(mother),
		Sex:        sex,
		Classifier: c,
	}
}

func build(t *testing.T, records ...pedigree.Individual) *Layout {
	t.Helper()
	p, _ := pedigree.New(records)
	f, err := p.Family("f")
	if err != nil {
		t.Fatal(err)
	}
	rel := pedigree.BuildRelations(f)
	l, err := Build(f, rel, stratify.Assign(rel).Levels())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return l
}

func nuclear(t *testing.T) *Layout {
	return build(t,
		rec("1", "0", "0", pedigree.Male, pedigree.Selected),
		rec("2", "0", "0", pedigree.Female, pedigree.Selected),
		rec("3", "1", "2", pedigree.Male, pedigree.NotSelected),
		rec("4", "1", "2", pedigree.Female, pedigree.Selected),
		rec("5", "3", "0", pedigree.Female, pedigree.Selected),
	)
}

func TestBuildNuclear(t *testing.T) {
	l := nuclear(t)

	want := &Layout{
		Family: "f",
		Generations: []Generation{
			{
				Level: 0,
				Nodes: []Node{
					{Kind: KindIndividual, ID: "1", Sex: pedigree.Male, Classifier: pedigree.Selected},
					{Kind: KindPartner, A: "1", B: "2"},
					{Kind: KindIndividual, ID: "2", Sex: pedigree.Female, Classifier: pedigree.Selected},
				},
				Descents: []Descent{{A: "1", B: "2"}},
			},
			{
				Level: 1,
				Nodes: []Node{
					{Kind: KindIndividual, ID: "3", Sex: pedigree.Male, Parents: []pedigree.ID{"1", "2"}},
					{Kind: KindIndividual, ID: "4", Sex: pedigree.Female, Classifier: pedigree.Selected, Parents: []pedigree.ID{"1", "2"}},
				},
				Descents: []Descent{{A: "3"}},
			},
			{
				Level: 2,
				Nodes: []Node{
					{Kind: KindIndividual, ID: "5", Sex: pedigree.Female, Classifier: pedigree.Selected, Parents: []pedigree.ID{"3"}},
				},
			},
		},
	}
	if diff := cmp.Diff(want, l, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
	if l.Size() != 5 {
		t.Errorf("Size = %d, want 5", l.Size())
	}
}

func TestEdgesNuclear(t *testing.T) {
	edges, mismatches := nuclear(t).Edges()

	want := []Edge{
		{Kind: EdgePartner, From: "1", To: "1_2"},
		{Kind: EdgePartner, From: "1_2", To: "2"},
		{Kind: EdgeDescent, From: "1_2", To: "1_2_desc"},
		{Kind: EdgeDescent, From: "3", To: "3_desc"},
		{Kind: EdgeChild, From: "1_2_desc", To: "3"},
		{Kind: EdgeChild, From: "1_2_desc", To: "4"},
		{Kind: EdgeChild, From: "3_desc", To: "5"},
	}
	if diff := cmp.Diff(want, edges); diff != "" {
		t.Errorf("Edges mismatch (-want +got):\n%s", diff)
	}
	if len(mismatches) != 0 {
		t.Errorf("unexpected mismatches: %v", mismatches)
	}
}

func TestEdgesMatchReversedCouple(t *testing.T) {
	// The couple is first seen from the mother, so the connector is 2_1
	// while the child lists its parents father first.
	l := build(t,
		rec("2", "0", "0", pedigree.Female, pedigree.Selected),
		rec("1", "0", "0", pedigree.Male, pedigree.Selected),
		rec("3", "1", "2", pedigree.Male, pedigree.Selected),
	)
	edges, mismatches := l.Edges()
	if len(mismatches) != 0 {
		t.Fatalf("unexpected mismatches: %v", mismatches)
	}
	last := edges[len(edges)-1]
	if last != (Edge{Kind: EdgeChild, From: "2_1_desc", To: "3"}) {
		t.Errorf("last edge = %+v, want child link from 2_1_desc", last)
	}
}

func TestEdgesReportMismatch(t *testing.T) {
	// Neither parent has a usable sex, so no couple connector exists.
	l := build(t,
		rec("P", "0", "0", pedigree.UnknownSex, pedigree.Selected),
		rec("Q", "0", "0", pedigree.UnknownSex, pedigree.Selected),
		rec("C", "P", "Q", pedigree.Male, pedigree.Selected),
	)
	_, mismatches := l.Edges()
	want := []Mismatch{{Child: "C", Parents: []pedigree.ID{"P", "Q"}, Level: 1}}
	if diff := cmp.Diff(want, mismatches); diff != "" {
		t.Errorf("mismatches (-want +got):\n%s", diff)
	}
}

func TestBuildSplitCouple(t *testing.T) {
	// Z is the child of X and of X's daughter Y; the couple X-Y spans two
	// levels and gets its connector on the upper one.
	l := build(t,
		rec("X", "0", "0", pedigree.Male, pedigree.Selected),
		rec("Y", "X", "0", pedigree.Female, pedigree.NotSelected),
		rec("Z", "X", "Y", pedigree.Male, pedigree.Selected),
	)
	top, ok := l.Generation(0)
	if !ok {
		t.Fatal("missing generation 0")
	}
	if diff := cmp.Diff([]Descent{{A: "X", B: "Y"}, {A: "X"}}, top.Descents); diff != "" {
		t.Errorf("top descents (-want +got):\n%s", diff)
	}
	edges, mismatches := l.Edges()
	if len(mismatches) != 0 {
		t.Errorf("unexpected mismatches: %v", mismatches)
	}
	wantChild := []Edge{
		{Kind: EdgeChild, From: "X_desc", To: "Y"},
		{Kind: EdgeChild, From: "X_Y_desc", To: "Z"},
	}
	var gotChild []Edge
	for _, e := range edges {
		if e.Kind == EdgeChild {
			gotChild = append(gotChild, e)
		}
	}
	if diff := cmp.Diff(wantChild, gotChild); diff != "" {
		t.Errorf("child edges (-want +got):\n%s", diff)
	}
}

func TestBuildCompleteness(t *testing.T) {
	records := []pedigree.Individual{
		rec("G1", "0", "0", pedigree.Male, pedigree.Selected),
		rec("G2", "0", "0", pedigree.Female, pedigree.Selected),
		rec("S1", "G1", "G2", pedigree.Male, pedigree.Selected),
		rec("S2", "G1", "G2", pedigree.Female, pedigree.Selected),
		rec("W1", "0", "0", pedigree.Female, pedigree.Selected),
		rec("H2", "0", "0", pedigree.Male, pedigree.Selected),
		rec("C1", "S1", "W1", pedigree.Female, pedigree.Selected),
		rec("C2", "H2", "S2", pedigree.Male, pedigree.Selected),
		rec("D1", "C2", "0", pedigree.Female, pedigree.NotSelected),
		rec("L", "0", "0", pedigree.Male, pedigree.Selected),
	}
	l := build(t, records...)

	count := make(map[pedigree.ID]int)
	for _, g := range l.Generations {
		names := make(map[string]bool)
		for _, n := range g.Nodes {
			names[n.Name()] = true
			if !n.IsConnector() {
				count[n.ID]++
			}
		}
		for _, d := range g.Descents {
			if !names[d.Source()] {
				t.Errorf("generation %d: descent %s hangs from missing node %s", g.Level, d.Name(), d.Source())
			}
		}
	}
	for _, r := range records {
		if count[r.ID] != 1 {
			t.Errorf("individual %s appears %d times", r.ID, count[r.ID])
		}
	}
	if _, mismatches := l.Edges(); len(mismatches) != 0 {
		t.Errorf("unexpected mismatches: %v", mismatches)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 3}, l.Levels()); diff != "" {
		t.Errorf("Levels (-want +got):\n%s", diff)
	}
}

func TestBuildMissingLevel(t *testing.T) {
	p, _ := pedigree.New([]pedigree.Individual{rec("1", "0", "0", pedigree.Male, 0)})
	f, _ := p.Family("f")
	_, err := Build(f, pedigree.BuildRelations(f), map[pedigree.ID]int{})
	if !perrors.Is(err, perrors.ErrCodeUnexpectedValue) {
		t.Errorf("Build error = %v, want UNEXPECTED_VALUE", err)
	}
}

func TestMarshalLayoutRoundTrip(t *testing.T) {
	l := nuclear(t)
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(l, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestUnmarshalLayoutRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"family":`},
		{"no family", `{"generations":[]}`},
		{"bad kind", `{"family":"f","generations":[{"level":0,"nodes":[{"kind":"ghost"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
