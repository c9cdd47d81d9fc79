package model

import (
	"sort"

	"github.com/ebse-lab/sevscope/pkg/domain/types"
)

// DistEntry is one row of a severity distribution.
type DistEntry struct {
	Label      types.SeverityLabel
	Count      int
	Percentage float64
}

// Distribution is a frequency table over severity labels, ordered by label.
type Distribution struct {
	Entries []DistEntry
	Total   int
}

// CountFor returns the count for the given label, zero when the label does
// not appear in the distribution.
func (d *Distribution) CountFor(label types.SeverityLabel) int {
	for _, e := range d.Entries {
		if e.Label == label {
			return e.Count
		}
	}
	return 0
}

// CrossTab is a two-dimensional frequency count of one categorical column
// against another. Cells is indexed as [row][col] aligned to RowNames and
// ColNames. It is built once and never mutated.
type CrossTab struct {
	RowLabel string
	ColLabel string
	RowNames []string
	ColNames []string
	Cells    [][]int
}

// Cell returns the count for a (row, column) pair, zero when either name
// is absent.
func (c *CrossTab) Cell(row, col string) int {
	i := indexOf(c.RowNames, row)
	j := indexOf(c.ColNames, col)
	if i < 0 || j < 0 {
		return 0
	}
	return c.Cells[i][j]
}

// RowTotal returns the sum of the i-th row
func (c *CrossTab) RowTotal(i int) int {
	total := 0
	for _, v := range c.Cells[i] {
		total += v
	}
	return total
}

// ColTotal returns the sum of the j-th column
func (c *CrossTab) ColTotal(j int) int {
	total := 0
	for i := range c.Cells {
		total += c.Cells[i][j]
	}
	return total
}

// Total returns the sum of all cells
func (c *CrossTab) Total() int {
	total := 0
	for i := range c.Cells {
		total += c.RowTotal(i)
	}
	return total
}

// ColumnsByTotal returns the column names ordered by descending total
// count, ties broken by name.
func (c *CrossTab) ColumnsByTotal() []string {
	type colTotal struct {
		name  string
		total int
	}
	totals := make([]colTotal, len(c.ColNames))
	for j, name := range c.ColNames {
		totals[j] = colTotal{name: name, total: c.ColTotal(j)}
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].total != totals[j].total {
			return totals[i].total > totals[j].total
		}
		return totals[i].name < totals[j].name
	})

	names := make([]string, len(totals))
	for i, t := range totals {
		names[i] = t.name
	}
	return names
}

// Select returns a new cross-tabulation containing only the named columns,
// in the given order. Unknown names produce zero-filled columns.
func (c *CrossTab) Select(cols []string) *CrossTab {
	cells := make([][]int, len(c.RowNames))
	for i, row := range c.RowNames {
		cells[i] = make([]int, len(cols))
		for j, col := range cols {
			cells[i][j] = c.Cell(row, col)
		}
	}
	return &CrossTab{
		RowLabel: c.RowLabel,
		ColLabel: c.ColLabel,
		RowNames: c.RowNames,
		ColNames: cols,
		Cells:    cells,
	}
}

// TopColumns returns a new cross-tabulation restricted to the k columns
// with the largest totals.
func (c *CrossTab) TopColumns(k int) *CrossTab {
	cols := c.ColumnsByTotal()
	if k < len(cols) {
		cols = cols[:k]
	}
	return c.Select(cols)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// LengthStat summarizes the text length of one severity group.
type LengthStat struct {
	Label  types.SeverityLabel
	Count  int
	Mean   float64
	Median float64
	StdDev float64
}

// LengthSample holds the raw text lengths of one severity group, in row
// order. Boxplots are drawn from these rather than from the summary stats.
type LengthSample struct {
	Label  types.SeverityLabel
	Values []float64
}

// Aggregates bundles every statistic computed from one cleaned table. A nil
// field means the source dataset lacked the column the statistic needs.
type Aggregates struct {
	Severity      *Distribution
	ByStatus      *CrossTab
	ByProject     *CrossTab
	ByIssueType   *CrossTab
	DescLength    []LengthStat
	LengthSamples []LengthSample
}
