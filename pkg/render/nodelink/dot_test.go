package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/pedtower/pkg/layout"
	"github.com/matzehuels/pedtower/pkg/pedigree"
)

func family() *layout.Layout {
	return &layout.Layout{
		Family: "F1",
		Generations: []layout.Generation{
			{
				Level: 0,
				Nodes: []layout.Node{
					{Kind: layout.KindIndividual, ID: "1", Sex: pedigree.Male, Classifier: pedigree.Selected},
					{Kind: layout.KindPartner, A: "1", B: "2"},
					{Kind: layout.KindIndividual, ID: "2", Sex: pedigree.Female, Classifier: pedigree.NotSelected},
				},
				Descents: []layout.Descent{{A: "1", B: "2"}},
			},
			{
				Level: 1,
				Nodes: []layout.Node{
					{Kind: layout.KindIndividual, ID: "3", Sex: pedigree.UnknownSex, Classifier: pedigree.Selected, Parents: []pedigree.ID{"2", "1"}},
				},
			},
		},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(family(), Options{})

	for _, want := range []string{
		`strict graph "ped_F1"`,
		"splines=ortho;",
		"concentrate=true;",
		"rank=same;",
		`"1" [label="1", shape=box, color=green];`,
		`"2" [label="2", shape=ellipse, color=red];`,
		`"3" [label="3", shape=diamond, color=green];`,
		`"1_2" [shape=point];`,
		`"1_2_desc" [shape=point];`,
		`"1" -- "1_2";`,
		`"1_2" -- "2";`,
		`"1_2" -- "1_2_desc";`,
		`"1_2_desc" -- "3";`,
		`"Family ID: F1" [shape=box, style=solid];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s\n%s", want, dot)
		}
	}
}

func TestToDOT_OneSubgraphPerGeneration(t *testing.T) {
	dot := ToDOT(family(), Options{})

	if got := strings.Count(dot, "rank=same;"); got != 2 {
		t.Errorf("rank=same count = %d, want 2", got)
	}
	if !strings.Contains(dot, `subgraph "gen_0.5"`) {
		t.Error("ToDOT() missing descent subgraph below generation 0")
	}
	if strings.Contains(dot, `subgraph "gen_1.5"`) {
		t.Error("ToDOT() emitted an empty descent subgraph")
	}
}

func TestToDOT_SkipsUnmatchedChild(t *testing.T) {
	l := family()
	l.Generations[1].Nodes[0].Parents = []pedigree.ID{"1", "9"}

	dot := ToDOT(l, Options{})
	if strings.Contains(dot, `-- "3"`) {
		t.Error("ToDOT() attached a child whose parents match no connector")
	}
	if !strings.Contains(dot, `"3" [`) {
		t.Error("ToDOT() dropped the unattached child node")
	}
}

func TestFmtLabel(t *testing.T) {
	n := layout.Node{Kind: layout.KindIndividual, ID: "7", Sex: pedigree.Female, Classifier: pedigree.Selected}

	if got := fmtLabel(n, 2, false); got != "7" {
		t.Errorf("fmtLabel() simple = %q, want %q", got, "7")
	}
	got := fmtLabel(n, 2, true)
	if !strings.HasPrefix(got, "7\n") {
		t.Errorf("fmtLabel() detailed should start with ID: %q", got)
	}
	for _, want := range []string{"female", "selected", "generation: 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("fmtLabel() detailed missing %q: %q", want, got)
		}
	}
}

func TestFmtAttrs(t *testing.T) {
	tests := []struct {
		sex   pedigree.Sex
		c     pedigree.Classifier
		shape string
		color string
	}{
		{pedigree.Male, pedigree.Selected, "shape=box", "color=green"},
		{pedigree.Female, pedigree.NotSelected, "shape=ellipse", "color=red"},
		{pedigree.UnknownSex, pedigree.NotSelected, "shape=diamond", "color=red"},
	}
	for _, tt := range tests {
		attrs := fmtAttrs(layout.Node{ID: "x", Sex: tt.sex, Classifier: tt.c}, "x")
		joined := strings.Join(attrs, " ")
		if !strings.Contains(joined, tt.shape) || !strings.Contains(joined, tt.color) {
			t.Errorf("fmtAttrs(%s, %s) = %v, want %s and %s", tt.sex, tt.c, attrs, tt.shape, tt.color)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}
