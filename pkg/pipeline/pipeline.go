// Package pipeline runs the select → stratify → lay out → render pipeline
// over a PED record set.
//
// By centralizing the stages here, every command of the CLI behaves the same
// way: families are classified and resolved in record order with one seeded
// random source, then laid out and rendered in parallel.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Select: classify every family and pick its unrelated set, then write
//     the classifiers back into the pedigree
//  2. Layout: derive relations, assign generation levels and build the
//     layered node structure of each family
//  3. Render: emit DOT, SVG, PDF, PNG or JSON per family
//
// Layouts and artifacts are cached; see [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, table.Records(), pipeline.Options{
//	    Seed:    42,
//	    Formats: []render.Format{render.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, fam := range result.Families {
//	    svg := fam.Artifacts[render.FormatSVG]
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pedtower/pkg/cache"
	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/layout"
	"github.com/matzehuels/pedtower/pkg/pedigree"
	"github.com/matzehuels/pedtower/pkg/render"
	"github.com/matzehuels/pedtower/pkg/selection"
	"github.com/matzehuels/pedtower/pkg/stratify"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Library Callers
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducible selections.
	DefaultSeed = uint64(42)

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Selection options
	Seed uint64 `json:"seed,omitempty"`

	// Families restricts layout and rendering to the named families.
	// Selection always covers the whole record set.
	Families []pedigree.FamilyID `json:"families,omitempty"`

	// Render options
	Formats  []render.Format `json:"formats,omitempty"`
	Detailed bool            `json:"detailed,omitempty"`
	Scale    float64         `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Refresh     bool        `json:"-"` // Ignore cached entries and overwrite them
	Concurrency int         `json:"-"` // Families processed at once; 0 means unlimited
	Logger      *log.Logger `json:"-"`
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []render.Format{render.DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. It does not apply defaults.
func (o *Options) Validate() error {
	for _, f := range o.Formats {
		if _, err := render.ParseFormats(string(f)); err != nil {
			return err
		}
	}
	if o.Scale < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Concurrency < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "concurrency must not be negative, got %d", o.Concurrency)
	}
	return nil
}

// LayoutKeyOpts returns cache key options for a family layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Seed: o.Seed}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format render.Format) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: string(format), Detailed: o.Detailed}
	if format == render.FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func (o *Options) wants(fam pedigree.FamilyID) bool {
	if len(o.Families) == 0 {
		return true
	}
	for _, f := range o.Families {
		if f == fam {
			return true
		}
	}
	return false
}

// =============================================================================
// Results
// =============================================================================

// Selection is the outcome of the select stage.
type Selection struct {
	// Pedigree carries the written-back classifiers.
	Pedigree *pedigree.Pedigree

	// Families maps each family to its resolved selection.
	Families map[pedigree.FamilyID]*selection.Selection

	// Duplicates lists records dropped because their identifier repeats
	// within the family.
	Duplicates []pedigree.Individual

	// Selected is the total number of selected individuals.
	Selected int
}

// FamilyLayout is the layout stage outcome of one family.
type FamilyLayout struct {
	Layout *layout.Layout `json:"layout"`

	// Conflicts lists relations whose level constraint could not be met.
	Conflicts []stratify.Conflict `json:"conflicts,omitempty"`

	// UnexpectedSex lists members whose sex code is outside {1, 2}.
	UnexpectedSex []pedigree.ID `json:"unexpected_sex,omitempty"`

	// Groups is the number of disconnected groups in the family.
	Groups int `json:"groups"`
}

// FamilyResult holds the outputs of one family.
type FamilyResult struct {
	FamilyLayout

	Family     pedigree.FamilyID
	Mismatches []layout.Mismatch
	Artifacts  map[render.Format][]byte
	CacheInfo  CacheInfo
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Selection *Selection

	// Families holds per-family outputs in first-seen order.
	Families []FamilyResult

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Families    int
	Individuals int
	Selected    int
	SelectTime  time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each stage of one family.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}
