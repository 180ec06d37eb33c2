package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// =============================================================================
// Nodes
// =============================================================================

// NodeKind discriminates the node variants of a generation.
type NodeKind string

const (
	// KindIndividual is a pedigree member.
	KindIndividual NodeKind = "individual"
	// KindPartner is the connector joining two partners.
	KindPartner NodeKind = "partner"
)

// Node is an entry of a generation. Individual nodes populate ID, Sex,
// Classifier and Parents; partner connectors populate A and B.
type Node struct {
	Kind NodeKind `json:"kind"`

	ID         pedigree.ID         `json:"id,omitempty"`
	Sex        pedigree.Sex        `json:"sex,omitempty"`
	Classifier pedigree.Classifier `json:"classifier,omitempty"`
	Parents    []pedigree.ID       `json:"parents,omitempty"`

	A pedigree.ID `json:"a,omitempty"`
	B pedigree.ID `json:"b,omitempty"`
}

// IsConnector reports whether n is a partner connector.
func (n Node) IsConnector() bool { return n.Kind == KindPartner }

// Name returns the graph node name: the identifier for individuals, "A_B"
// for partner connectors.
func (n Node) Name() string {
	if n.IsConnector() {
		return coupleName(n.A, n.B)
	}
	return string(n.ID)
}

// Joins reports whether the connector joins a and b in either order.
func (n Node) Joins(a, b pedigree.ID) bool {
	if !n.IsConnector() {
		return false
	}
	return (n.A == a && n.B == b) || (n.A == b && n.B == a)
}

// Descent is a descent connector below a generation. A couple descent sets
// both A and B; a single-parent descent sets A only.
type Descent struct {
	A pedigree.ID `json:"a"`
	B pedigree.ID `json:"b,omitempty"`
}

// IsCouple reports whether d hangs from a partner connector.
func (d Descent) IsCouple() bool { return d.B != "" }

// Source returns the name of the node the descent hangs from.
func (d Descent) Source() string {
	if d.IsCouple() {
		return coupleName(d.A, d.B)
	}
	return string(d.A)
}

// Name returns the graph node name of the descent connector.
func (d Descent) Name() string { return d.Source() + "_desc" }

func coupleName(a, b pedigree.ID) string { return string(a) + "_" + string(b) }

// =============================================================================
// Layout
// =============================================================================

// Generation is one level of the diagram and the descents below it.
type Generation struct {
	Level    int       `json:"level"`
	Nodes    []Node    `json:"nodes"`
	Descents []Descent `json:"descents,omitempty"`
}

// Individuals returns the individual nodes of g in order.
func (g Generation) Individuals() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if !n.IsConnector() {
			out = append(out, n)
		}
	}
	return out
}

// Layout is the layered structure of one family, top generation first.
type Layout struct {
	Family      pedigree.FamilyID `json:"family"`
	Generations []Generation      `json:"generations"`
}

// Generation returns the generation at level.
func (l *Layout) Generation(level int) (Generation, bool) {
	for _, g := range l.Generations {
		if g.Level == level {
			return g, true
		}
	}
	return Generation{}, false
}

// Levels returns the levels in top-down order.
func (l *Layout) Levels() []int {
	out := make([]int, len(l.Generations))
	for i, g := range l.Generations {
		out[i] = g.Level
	}
	return out
}

// Size returns the number of individual nodes.
func (l *Layout) Size() int {
	n := 0
	for _, g := range l.Generations {
		n += len(g.Individuals())
	}
	return n
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l *Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Family == "" {
		return nil, fmt.Errorf("layout must name a family")
	}
	for _, g := range l.Generations {
		for _, n := range g.Nodes {
			switch n.Kind {
			case KindIndividual, KindPartner:
			default:
				return nil, fmt.Errorf("generation %d: unknown node kind %q", g.Level, n.Kind)
			}
		}
	}
	return &l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l *Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
