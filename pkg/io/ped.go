package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/pedigree"
)

// Columns names the PED columns.
type Columns struct {
	Family string `toml:"family"`
	ID     string `toml:"id"`
	Father string `toml:"father"`
	Mother string `toml:"mother"`
	Sex    string `toml:"sex"`
	Status string `toml:"status"`
}

// DefaultColumns returns the conventional PED column names.
func DefaultColumns() Columns {
	return Columns{
		Family: "famid",
		ID:     "id",
		Father: "fid",
		Mother: "mid",
		Sex:    "sex",
		Status: "selection_status",
	}
}

// WithDefaults fills blank names from [DefaultColumns].
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	c.Family = orDefault(c.Family, d.Family)
	c.ID = orDefault(c.ID, d.ID)
	c.Father = orDefault(c.Father, d.Father)
	c.Mother = orDefault(c.Mother, d.Mother)
	c.Sex = orDefault(c.Sex, d.Sex)
	c.Status = orDefault(c.Status, d.Status)
	return c
}

func orDefault(name, def string) string {
	if strings.TrimSpace(name) == "" {
		return def
	}
	return name
}

// Validate checks that every name is usable as a header cell.
func (c Columns) Validate() error {
	for _, name := range []string{c.Family, c.ID, c.Father, c.Mother, c.Sex, c.Status} {
		if err := perrors.ValidateColumnName(name); err != nil {
			return err
		}
	}
	return nil
}

// Table is a PED table as read, plus the records decoded from it.
type Table struct {
	Header []string
	Rows   [][]string

	cols    Columns
	index   map[string]int
	records []pedigree.Individual
	lines   []int
}

// Records returns the decoded records in row order.
func (t *Table) Records() []pedigree.Individual {
	return append([]pedigree.Individual(nil), t.records...)
}

// Columns returns the column names the table was read with.
func (t *Table) Columns() Columns { return t.cols }

// Line returns the input line of row i (1-based, header is line 1).
func (t *Table) Line(i int) int { return t.lines[i] }

// ReadPED decodes a tab-separated PED table from r.
//
// ReadPED returns an error if:
//   - The header lacks a required column (INVALID_FORMAT)
//   - A row has fewer fields than the header (INVALID_RECORD)
//   - A row has an empty family or individual identifier (INVALID_RECORD)
//
// Non-numeric sex codes decode as [pedigree.UnknownSex]. An integer in an
// existing selection column is carried into the record's classifier.
// ReadPED does not close r.
func ReadPED(r io.Reader, cols Columns) (*Table, error) {
	cols = cols.WithDefaults()
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, perrors.New(perrors.ErrCodeInvalidFormat, "empty PED table")
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "read header")
	}

	t := &Table{cols: cols, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.Header = append(t.Header, h)
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	for _, name := range []string{cols.Family, cols.ID, cols.Father, cols.Mother, cols.Sex} {
		if _, ok := t.index[name]; !ok {
			return nil, perrors.New(perrors.ErrCodeInvalidFormat, "missing required column %q", name)
		}
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidRecord, err, "read row")
		}
		line, _ := cr.FieldPos(0)
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		rec, err := t.decode(row)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidRecord, err, "line %d", line)
		}
		t.Rows = append(t.Rows, row)
		t.records = append(t.records, rec)
		t.lines = append(t.lines, line)
	}
	return t, nil
}

func (t *Table) decode(row []string) (pedigree.Individual, error) {
	if len(row) < len(t.Header) {
		return pedigree.Individual{}, fmt.Errorf("%d fields, header has %d", len(row), len(t.Header))
	}
	field := func(name string) string { return strings.TrimSpace(row[t.index[name]]) }

	ind := pedigree.Individual{
		Family: pedigree.FamilyID(field(t.cols.Family)),
		ID:     pedigree.ID(field(t.cols.ID)),
		Father: pedigree.ID(field(t.cols.Father)),
		Mother: pedigree.ID(field(t.cols.Mother)),
	}
	if ind.Family == "" {
		return ind, fmt.Errorf("empty %s", t.cols.Family)
	}
	if ind.ID == "" {
		return ind, fmt.Errorf("empty %s", t.cols.ID)
	}
	if code, err := strconv.Atoi(field(t.cols.Sex)); err == nil {
		ind.Sex, _ = pedigree.ParseSex(code)
	}
	if i, ok := t.index[t.cols.Status]; ok {
		if c, err := strconv.Atoi(strings.TrimSpace(row[i])); err == nil {
			ind.Classifier = pedigree.Classifier(c)
		}
	}
	return ind, nil
}

// ImportPED reads a PED file at path.
//
// ImportPED returns FILE_NOT_FOUND when the file does not exist and the
// same errors as [ReadPED] otherwise.
func ImportPED(path string, cols Columns) (*Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadPED(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WritePED writes t to w with the selection column set from the
// classifiers in p. Rows whose individual is missing from p are written
// as not selected. The table itself is not modified.
func WritePED(w io.Writer, t *Table, p *pedigree.Pedigree) error {
	status, ok := t.index[t.cols.Status]
	header := t.Header
	if !ok {
		status = len(header)
		header = append(append([]string(nil), header...), t.cols.Status)
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range t.Rows {
		out := append([]string(nil), row...)
		for len(out) <= status {
			out = append(out, "")
		}
		out[status] = classifierOf(p, t.records[i]).String()
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("write line %d: %w", t.lines[i], err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func classifierOf(p *pedigree.Pedigree, rec pedigree.Individual) pedigree.Classifier {
	f, err := p.Family(rec.Family)
	if err != nil {
		return pedigree.NotSelected
	}
	m, err := f.Member(rec.ID)
	if err != nil || !m.Classifier.IsSelected() {
		return pedigree.NotSelected
	}
	return pedigree.Selected
}

// ExportPED writes the annotated table to a file at path.
// This is a convenience wrapper around [WritePED] for file-based output.
func ExportPED(path string, t *Table, p *pedigree.Pedigree) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePED(f, t, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
