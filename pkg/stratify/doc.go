// Package stratify assigns every member of a family a relative generation
// level such that a child sits exactly one level below each parent and
// siblings and partners share a level.
//
// # Algorithm
//
// [Assign] runs a worklist relaxation. The first unassigned member in record
// order is seeded at level 0 and levels are propagated over parent/child
// (±1), sibling (0) and partner (0) edges until the queue drains. Every
// disconnected group is seeded the same way and finally shifted so that its
// top generation is 0.
//
// Parent/child edges of a member are relaxed before its sibling and partner
// edges, so when the relations contradict each other the descent structure
// wins.
//
// # Conflicts
//
// Pedigree consistency is not validated. When the relations cannot all be
// satisfied (for example a partner pair whose lines place them one generation
// apart) the first assignment wins and every violated edge is reported as a
// [Conflict]. Conflicts are never fatal.
package stratify
