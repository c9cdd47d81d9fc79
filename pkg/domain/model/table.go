package model

// Labels used when a categorical value is filled in during cleaning.
const (
	// LabelUnknown replaces a missing status or issue type.
	LabelUnknown = "Unknown"

	// LabelOther collapses projects outside the top set.
	LabelOther = "Other"
)

// TopProjectCount is how many of the most frequent projects keep their own
// label; everything else is grouped under LabelOther.
const TopProjectCount = 10

// Table is the cleaned, analysis-ready collection of issues. The Has flags
// record which optional columns the source actually had, so downstream
// stages can skip statistics whose inputs are absent.
type Table struct {
	Issues []Issue

	HasStatus    bool
	HasProject   bool
	HasIssueType bool
	HasSummary   bool

	// TextColumn names the column DescLength was derived from, either
	// ColDescription or ColSummary. Empty when the source had neither.
	TextColumn string
}

// Len returns the number of cleaned rows
func (t *Table) Len() int {
	return len(t.Issues)
}

// Columns lists the columns of the cleaned table, derived fields included
func (t *Table) Columns() []string {
	cols := []string{"severity"}
	if t.HasStatus {
		cols = append(cols, ColStatus)
	}
	if t.HasProject {
		cols = append(cols, ColProject)
	}
	if t.HasIssueType {
		cols = append(cols, ColIssueType)
	}
	if t.HasSummary {
		cols = append(cols, ColSummary)
	}
	if t.TextColumn == ColDescription {
		cols = append(cols, ColDescription)
	}
	if t.TextColumn != "" {
		cols = append(cols, "desc_length")
	}
	if t.HasProject {
		cols = append(cols, "project_grouped")
	}
	return cols
}

// CleanStats reports what cleaning did to the dataset. It is informational
// output for the console, not part of the data contract.
type CleanStats struct {
	InitialRows int

	// AfterSeverityDrop is the row count once rows with a missing
	// severity are removed.
	AfterSeverityDrop int

	// Standardized is the label distribution after trimming and
	// title-casing, before unrecognized labels are filtered out,
	// ordered by label.
	Standardized []LabelCount

	// AfterFilter is the row count once unrecognized labels are removed.
	AfterFilter int

	DescLengthMean   float64
	DescLengthMedian float64

	// TopProjects is the set of projects that kept their own group label.
	TopProjects []string

	FinalRows    int
	FinalColumns int
}

// Dropped returns the total number of rows removed by cleaning
func (s *CleanStats) Dropped() int {
	return s.InitialRows - s.FinalRows
}
