package model

// HeadRows is how many leading rows an inspection samples for display.
const HeadRows = 5

// ColumnMissing reports the missing values of one column.
type ColumnMissing struct {
	Column  string
	Count   int
	Percent float64
}

// ColumnProfile is the value distribution of one key column, truncated to
// the most frequent values at build time.
type ColumnProfile struct {
	Column string

	// Title describes the column's role, e.g. "Severity field".
	Title string

	Values []LabelCount
}

// Inspection is the first-look summary of a raw dataset: its shape, a head
// sample, missing-value counts, and the distributions of the key columns.
type Inspection struct {
	Source   string
	RowCount int
	Columns  []string
	Skipped  int

	Head [][]string

	// Missing lists only columns with at least one missing value, most
	// affected first.
	Missing []ColumnMissing

	Profiles []ColumnProfile
}
