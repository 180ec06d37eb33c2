// Package selection chooses, per family, a maximal set of individuals that
// are unrelated as far as parent references can tell.
//
// # Lineage Chains
//
// An individual with exactly one known parent cannot be told apart from the
// rest of that parent's line: its unknown side could connect it to anyone.
// [Chain] walks up through single-known-parent ancestors and returns the
// whole monoparental lineage, ancestor first:
//
//	founder A ── B (father A) ── E (father B)
//	Chain(E) = [A B E]
//
// Only one member of such a lineage may be treated as independent.
//
// # Candidate Merging
//
// [Candidates] accumulates tagged entries in an arena: bare identifiers
// (chains of length one and, later, free founders) and lineages. A new chain
// supersedes every bare identifier it contains and every overlapping lineage
// that is strictly shorter. When an overlapping lineage is at least as long,
// the lineage discovered first is kept and the new chain is dropped, which
// makes equal-length ties deterministic in record order.
//
// # Representatives
//
// [Resolver.Resolve] picks one member per lineage uniformly at random from an
// injected [Source]. Bare entries pass through. Two-ascendant individuals are
// never part of a chain and are always selected.
//
// Two resolvers built with the same seed produce identical selections for the
// same input.
package selection
