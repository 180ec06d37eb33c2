// Package pkg provides the libraries behind pedtower.
//
// # Overview
//
// pedtower picks, per family of a pedigree, a maximal set of individuals
// that are genetically unrelated to each other, writes the choice back to
// the PED table and draws each family as a diagram of generations. The pkg
// directory is organized as follows:
//
//  1. [pedigree] - Records, families, ascendant classes and relations
//  2. [selection] - Redundant lineages and the seeded resolver
//  3. [stratify] - Generation levels per family
//  4. [layout] - Layered node structure and its edges
//  5. [render] - Output formats; [render/nodelink] draws Graphviz diagrams
//  6. [io] - PED table reading and annotated writing
//  7. [pipeline] - Orchestration (select → layout → render) with caching
//  8. [cache] - File, Redis and null cache backends
//
// # Architecture
//
// The typical data flow:
//
//	PED file
//	    ↓
//	[io] package (records)
//	    ↓
//	[pedigree] + [selection] packages (classify, resolve, annotate)
//	    ↓
//	[stratify] + [layout] packages (levels, nodes, connectors)
//	    ↓
//	[render/nodelink] package (DOT → SVG/PDF/PNG)
//
// # Quick Start
//
//	table, _ := io.ImportPED("cohort.ped", io.DefaultColumns())
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, _ := runner.Execute(ctx, table.Records(), pipeline.Options{})
//	_ = io.ExportPED("pedigree_selection.ped", table, result.Selection.Pedigree)
package pkg
