package model

import "sort"

// Column names of the bug-report dataset schema. The loader keeps every
// column it finds; these are the ones the pipeline knows how to use.
const (
	ColSeverity    = "priority.name"
	ColPriorityID  = "priority.id"
	ColStatus      = "status.name"
	ColProject     = "project.name"
	ColIssueType   = "issuetype.name"
	ColSummary     = "summary"
	ColDescription = "description"
)

// LabelCount is one entry of a frequency count over a categorical column.
type LabelCount struct {
	Label string
	Count int
}

// Dataset holds the raw rows read from a source, before any cleaning.
// Rows are aligned to Columns; short rows are padded with empty fields
// on access.
type Dataset struct {
	Source  string
	Columns []string
	Rows    [][]string

	// Skipped counts malformed rows dropped while reading.
	Skipped int
}

// Len returns the number of loaded rows
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of the named column
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for i, col := range d.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn checks if the named column exists
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.ColumnIndex(name)
	return ok
}

// Field returns the value of the given column in a row. Cells beyond the
// end of a short row read as empty.
func (d *Dataset) Field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Head returns up to n leading rows
func (d *Dataset) Head(n int) [][]string {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// MissingCount returns how many rows have an empty value in the named
// column. Unknown columns count as fully missing.
func (d *Dataset) MissingCount(name string) int {
	idx, ok := d.ColumnIndex(name)
	if !ok {
		return len(d.Rows)
	}

	missing := 0
	for _, row := range d.Rows {
		if d.Field(row, idx) == "" {
			missing++
		}
	}
	return missing
}

// ValueCounts returns the frequency of each non-empty value in the named
// column, most frequent first. Ties are broken by label so the result is
// deterministic.
func (d *Dataset) ValueCounts(name string) []LabelCount {
	idx, ok := d.ColumnIndex(name)
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	for _, row := range d.Rows {
		if v := d.Field(row, idx); v != "" {
			counts[v]++
		}
	}

	return sortCounts(counts)
}

func sortCounts(counts map[string]int) []LabelCount {
	result := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		result = append(result, LabelCount{Label: label, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return result
}
