// Package io reads and writes pedigree tables in PED format.
//
// # Format
//
// A PED table is tab-separated text with a header row. Five columns are
// required; their default names are:
//
//	famid	id	fid	mid	sex
//	F1	1	0	0	1
//	F1	2	0	0	2
//	F1	3	1	2	1
//
//   - famid: family identifier
//   - id: individual identifier, unique within the family
//   - fid, mid: father and mother identifiers; "0" or empty means unknown
//   - sex: 1 for male, 2 for female; any other value is kept as unknown
//
// Column names are configurable through [Columns]. Extra columns are kept
// and written back untouched.
//
// # Import
//
// Use [ImportPED] to read a file, or [ReadPED] to read from any io.Reader:
//
//	t, err := io.ImportPED("cohort.ped", io.DefaultColumns())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, dups := pedigree.New(t.Records())
//
// Rows with too few fields or without a family or individual identifier
// fail with an INVALID_RECORD error naming the line.
//
// # Export
//
// [WritePED] and [ExportPED] write the table back with a selection column
// (selection_status by default) holding 2 for selected individuals and 0
// otherwise. An existing selection column is overwritten in place.
package io
