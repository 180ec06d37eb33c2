// Package layout builds the layered node structure of a family diagram.
//
// A [Layout] holds one [Generation] per level. Each generation lists an
// individual node for every member at that level, in record order, and a
// partner connector for each couple the first time the couple is seen.
// Descent connectors hang below a generation (its half level): one per
// couple and one per member that is the only registered parent of a child.
//
// The structure is purely descriptive. No coordinates are computed; the
// renderer in [github.com/matzehuels/pedtower/pkg/render/nodelink] turns it
// into a layered Graphviz graph. [Layout.Edges] derives the links between
// nodes, matching each child's parents against the connectors of the
// generation above. A child whose parents match no connector is reported as
// a [Mismatch] rather than failing the build.
//
// Layouts serialise to JSON with [MarshalLayout] so they can be cached and
// rendered later:
//
//	l, err := layout.Build(fam, rel, levels.Levels())
//	if err != nil {
//	    return err
//	}
//	data, _ := layout.MarshalLayout(l)
package layout
