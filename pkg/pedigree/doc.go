// Package pedigree models a family-pedigree record set.
//
// # Overview
//
// A pedigree is a flat list of [Individual] records. Each record names its
// family, its own identifier and the identifiers of its father and mother,
// where "0" means the parent is unknown or not registered. Relations between
// individuals are never stored on the records; they are derived from the
// parent references:
//
//   - parent → child: a record's father or mother reference
//   - sibling: two records sharing an identical non-zero father or mother
//   - partner: the two parents of a common child
//
// # Classification
//
// [Classify] sorts every individual of every family into one of three groups:
//
//   - no-ascendant (founders): both parent references are unknown
//   - one-ascendant: exactly one parent reference is known
//   - two-ascendant: both parent references are known
//
// The classification is the input of the lineage resolver in
// [github.com/matzehuels/pedtower/pkg/selection].
//
// # Relations
//
// [BuildRelations] precomputes an adjacency index for one family (ascendants,
// descendants, partners and siblings per member) so that the generation
// stratifier and the layout builder can look neighbours up in O(1).
//
// # Referential Integrity
//
// Parent references are not validated. A referenced parent that has no record
// of its own is an opaque terminal identifier: it can be a chain terminus or a
// sibling link, but it never becomes a node of the family.
//
// # Concurrency
//
// A [Pedigree] is immutable after [New] except for [Pedigree.SetClassifier],
// which is the single write-back used to annotate the selection. Reading
// distinct families from multiple goroutines is safe once annotation is done.
package pedigree
