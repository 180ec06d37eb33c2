package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/pedtower/pkg/cache"
	"github.com/matzehuels/pedtower/pkg/layout"
	"github.com/matzehuels/pedtower/pkg/observability"
	"github.com/matzehuels/pedtower/pkg/pedigree"
	"github.com/matzehuels/pedtower/pkg/render"
	"github.com/matzehuels/pedtower/pkg/selection"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete select → layout → render pipeline with caching.
//
// Selection runs sequentially over every family in first-seen order so the
// seeded source is consumed deterministically. Layout and rendering then run
// per family in parallel; results keep first-seen order.
func (r *Runner) Execute(ctx context.Context, records []pedigree.Individual, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	opts.SetDefaults()

	start := time.Now()
	sel, err := r.Select(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	result := &Result{Selection: sel}
	result.Stats.SelectTime = time.Since(start)
	result.Stats.Families = sel.Pedigree.FamilyCount()
	result.Stats.Individuals = sel.Pedigree.Size()
	result.Stats.Selected = sel.Selected

	opts.Logger.Info("selected unrelated individuals",
		"families", result.Stats.Families,
		"individuals", result.Stats.Individuals,
		"selected", sel.Selected,
		"duration", result.Stats.SelectTime)

	for _, fam := range opts.Families {
		if _, err := sel.Pedigree.Family(fam); err != nil {
			return nil, err
		}
	}
	var fams []*pedigree.Family
	for _, id := range sel.Pedigree.Families() {
		if opts.wants(id) {
			f, _ := sel.Pedigree.Family(id)
			fams = append(fams, f)
		}
	}

	result.Families = make([]FamilyResult, len(fams))
	var layoutTime, renderTime atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, f := range fams {
		g.Go(func() error {
			t0 := time.Now()
			fl, layoutHit, err := r.LayoutWithCacheInfo(gctx, f, opts)
			if err != nil {
				return fmt.Errorf("family %s: layout: %w", f.ID, err)
			}
			layoutTime.Add(int64(time.Since(t0)))

			_, mismatches := fl.Layout.Edges()
			report(opts.Logger, f.ID, fl, mismatches)

			t1 := time.Now()
			artifacts, renderHit, err := r.RenderWithCacheInfo(gctx, fl.Layout, opts)
			if err != nil {
				return fmt.Errorf("family %s: render: %w", f.ID, err)
			}
			renderTime.Add(int64(time.Since(t1)))

			result.Families[i] = FamilyResult{
				FamilyLayout: *fl,
				Family:       f.ID,
				Mismatches:   mismatches,
				Artifacts:    artifacts,
				CacheInfo:    CacheInfo{LayoutHit: layoutHit, RenderHit: renderHit},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Stats.LayoutTime = time.Duration(layoutTime.Load())
	result.Stats.RenderTime = time.Duration(renderTime.Load())

	opts.Logger.Info("rendered families",
		"families", len(fams),
		"formats", opts.Formats,
		"layout", result.Stats.LayoutTime,
		"render", result.Stats.RenderTime)

	return result, nil
}

// Select groups records into families, resolves each family's unrelated
// set and writes the classifiers back into the pedigree.
func (r *Runner) Select(ctx context.Context, records []pedigree.Individual, opts Options) (*Selection, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()

	p, dups := pedigree.New(records)
	hooks := observability.Pipeline()
	hooks.OnSelectStart(ctx, p.FamilyCount(), p.Size())
	start := time.Now()

	for _, d := range dups {
		opts.Logger.Warn("duplicate individual dropped", "family", d.Family, "id", d.ID)
	}

	sels, err := selection.NewSeeded(opts.Seed).ResolveAll(p, pedigree.Classify(p))
	if err == nil {
		err = selection.Annotate(p, sels)
	}
	if err != nil {
		hooks.OnSelectComplete(ctx, 0, time.Since(start), err)
		return nil, err
	}

	out := &Selection{Pedigree: p, Families: sels, Duplicates: dups}
	for _, fam := range p.Families() {
		s := sels[fam]
		out.Selected += s.Len()
		opts.Logger.Debug("resolved family",
			"family", fam,
			"selected", s.Len(),
			"lineages", len(s.Lineages()))
	}
	hooks.OnSelectComplete(ctx, out.Selected, time.Since(start), nil)
	return out, nil
}

// LayoutWithCacheInfo lays out one family with caching and returns cache hit info.
// The cache key covers the family's records, classifiers included.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, f *pedigree.Family, opts Options) (*FamilyLayout, bool, error) {
	opts.SetDefaults()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(f.ID), f.Len())
	start := time.Now()

	familyHash, err := cache.HashJSON(f.Members())
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(familyHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached FamilyLayout
			if err := json.Unmarshal(data, &cached); err == nil && cached.Layout != nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				hooks.OnLayoutComplete(ctx, string(f.ID), time.Since(start), nil)
				return &cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	fl, err := Layout(f)
	hooks.OnLayoutComplete(ctx, string(f.ID), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(fl); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return fl, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, f *pedigree.Family, opts Options) (*FamilyLayout, error) {
	fl, _, err := r.LayoutWithCacheInfo(ctx, f, opts)
	return fl, err
}

// RenderWithCacheInfo renders a layout in every requested format with
// caching and returns whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, opts Options) (map[render.Format][]byte, bool, error) {
	opts.SetDefaults()

	layoutData, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	if !opts.Refresh {
		artifacts := make(map[render.Format][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	formats := formatNames(opts.Formats)
	hooks.OnRenderStart(ctx, string(l.Family), formats)
	start := time.Now()
	rendered, err := RenderLayout(ctx, l, opts)
	hooks.OnRenderComplete(ctx, string(l.Family), formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, opts Options) (map[render.Format][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// report logs the non-fatal findings of one family.
func report(logger *log.Logger, fam pedigree.FamilyID, fl *FamilyLayout, mismatches []layout.Mismatch) {
	for _, id := range fl.UnexpectedSex {
		logger.Warn("unexpected sex code", "family", fam, "id", id)
	}
	for _, c := range fl.Conflicts {
		logger.Warn("generation conflict", "family", fam, "relation", c.Kind, "a", c.A, "b", c.B,
			"level_a", c.LevelA, "level_b", c.LevelB)
	}
	for _, m := range mismatches {
		logger.Warn("unexpected input", "family", fam, "id", m.Child, "parents", m.Parents, "generation", m.Level)
	}
	if fl.Groups > 1 {
		logger.Debug("family has disconnected groups", "family", fam, "groups", fl.Groups)
	}
}

func formatNames(formats []render.Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out
}
