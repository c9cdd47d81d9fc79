package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	bannerWidth = 60

	// Wide cells and datasets with many columns are trimmed so the head
	// sample stays readable on a terminal.
	maxHeadColumns = 6
	maxCellWidth   = 40
)

// Writer renders the human-readable analysis report. The output is
// informational text for a person reading the run, not a machine format.
type Writer struct {
	out      io.Writer
	printer  *message.Printer
	bannered bool
}

// NewWriter creates a report writer on top of the given output
func NewWriter(out io.Writer) *Writer {
	return &Writer{
		out:     out,
		printer: message.NewPrinter(language.English),
	}
}

// Banner prints a section banner. Every banner after the first is preceded
// by a blank line.
func (w *Writer) Banner(title string) {
	rule := strings.Repeat("=", bannerWidth)
	if w.bannered {
		fmt.Fprintln(w.out)
	}
	w.bannered = true
	fmt.Fprintln(w.out, rule)
	fmt.Fprintln(w.out, title)
	fmt.Fprintln(w.out, rule)
}

// Loading announces which dataset is being read
func (w *Writer) Loading(name string) {
	fmt.Fprintf(w.out, "\nLoading dataset: %s\n", name)
}

// Loaded reports how many rows the sample holds
func (w *Writer) Loaded(rows int) {
	w.printer.Fprintf(w.out, "Loaded %d rows for analysis\n", rows)
}

// Generating announces one figure before it is drawn
func (w *Writer) Generating(n int, name string) {
	fmt.Fprintf(w.out, "\nGenerating Figure %d: %s\n", n, name)
}

// Saved reports a written artifact path
func (w *Writer) Saved(path string) {
	fmt.Fprintf(w.out, "Saved: %s\n", path)
}

// Inspection renders the first-look summary of a raw dataset
func (w *Writer) Inspection(insp *model.Inspection) {
	w.printer.Fprintf(w.out, "\nDataset shape: %d rows × %d columns\n", insp.RowCount, len(insp.Columns))
	if insp.Skipped > 0 {
		w.printer.Fprintf(w.out, "Skipped %d malformed rows while reading\n", insp.Skipped)
	}

	fmt.Fprintf(w.out, "\nColumn names:\n")
	for i, col := range insp.Columns {
		fmt.Fprintf(w.out, "  %2d. %s\n", i+1, col)
	}

	w.Banner(fmt.Sprintf("Data Sample (first %d rows):", len(insp.Head)))
	w.headTable(insp)

	w.Banner("Missing Values Summary:")
	if len(insp.Missing) == 0 {
		fmt.Fprintln(w.out, "No missing values found")
	} else {
		tw := w.newTable()
		fmt.Fprintf(tw, "Column\tMissing Count\tMissing %%\n")
		for _, m := range insp.Missing {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", m.Column, m.Count, m.Percent)
		}
		tw.Flush()
	}

	w.Banner("Identifying Key Columns:")
	for _, p := range insp.Profiles {
		fmt.Fprintf(w.out, "\n%s: %s\n", p.Title, p.Column)
		tw := w.newTable()
		for _, v := range p.Values {
			fmt.Fprintf(tw, "  %s\t%d\n", v.Label, v.Count)
		}
		tw.Flush()
	}
}

// CleanReport renders what cleaning did to the dataset
func (w *Writer) CleanReport(stats *model.CleanStats, table *model.Table) {
	w.printer.Fprintf(w.out, "\nInitial row count: %d\n", stats.InitialRows)
	w.printer.Fprintf(w.out, "After removing missing priority: %d rows (%d removed)\n",
		stats.AfterSeverityDrop, stats.InitialRows-stats.AfterSeverityDrop)

	fmt.Fprintf(w.out, "\nSeverity distribution after standardization:\n")
	tw := w.newTable()
	for _, lc := range stats.Standardized {
		fmt.Fprintf(tw, "  %s\t%d\n", lc.Label, lc.Count)
	}
	tw.Flush()

	fmt.Fprintf(w.out, "\nNumber of unique severity levels: %d\n", len(stats.Standardized))
	w.printer.Fprintf(w.out, "After filtering to known severities: %d rows\n", stats.AfterFilter)

	fmt.Fprintf(w.out, "\nCreating derived fields...\n")
	switch table.TextColumn {
	case model.ColDescription:
		fmt.Fprintf(w.out, "Created desc_length: mean=%.1f, median=%.1f\n",
			stats.DescLengthMean, stats.DescLengthMedian)
	case model.ColSummary:
		fmt.Fprintf(w.out, "Created desc_length from summary: mean=%.1f, median=%.1f\n",
			stats.DescLengthMean, stats.DescLengthMedian)
	}
	if len(stats.TopProjects) > 0 {
		fmt.Fprintf(w.out, "Created project_grouped: top %d projects + %q\n",
			len(stats.TopProjects), model.LabelOther)
	}

	w.printer.Fprintf(w.out, "\nFinal cleaned dataset: %d rows × %d columns\n",
		stats.FinalRows, stats.FinalColumns)
}

// AggregateReport renders the computed statistics. Section headings are
// fixed; a section whose statistic is missing stays empty.
func (w *Writer) AggregateReport(agg *model.Aggregates) {
	fmt.Fprintf(w.out, "\n1. Severity Distribution:\n")
	tw := w.newTable()
	fmt.Fprintf(tw, "Severity\tCount\tPercentage\n")
	for _, e := range agg.Severity.Entries {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", e.Label, e.Count, e.Percentage)
	}
	tw.Flush()

	fmt.Fprintf(w.out, "\n2. Severity vs Status (Cross-tabulation):\n")
	if agg.ByStatus != nil {
		w.crossTab(agg.ByStatus, true)
	}

	fmt.Fprintf(w.out, "\n3. Severity vs Project (Top Projects):\n")
	if agg.ByProject != nil {
		w.crossTab(agg.ByProject, false)
	}

	fmt.Fprintf(w.out, "\n4. Severity vs Issue Type:\n")
	if agg.ByIssueType != nil {
		w.crossTab(agg.ByIssueType, false)
	}

	fmt.Fprintf(w.out, "\n5. Description Length by Severity:\n")
	if agg.DescLength != nil {
		tw := w.newTable()
		fmt.Fprintf(tw, "Severity\tCount\tMean\tMedian\tStd\n")
		for _, s := range agg.DescLength {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.2f\n",
				s.Label, s.Count, s.Mean, s.Median, s.StdDev)
		}
		tw.Flush()
	}
}

// Summary renders the closing statistics of a run
func (w *Writer) Summary(table *model.Table, agg *model.Aggregates, figuresDir string) {
	w.Banner("Analysis Complete!")

	fmt.Fprintf(w.out, "\nSummary Statistics:\n")
	w.printer.Fprintf(w.out, "  - Total issues analyzed: %d\n", table.Len())
	fmt.Fprintf(w.out, "  - Severity levels: %d\n", len(agg.Severity.Entries))
	if table.HasProject {
		w.printer.Fprintf(w.out, "  - Unique projects: %d\n", countProjects(table))
	} else {
		fmt.Fprintf(w.out, "  - Unique projects: N/A\n")
	}

	if figuresDir != "" {
		fmt.Fprintf(w.out, "\nFigures saved to: %s\n", figuresDir)
	}
}

func (w *Writer) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(w.out, 0, 4, 2, ' ', 0)
}

// headTable prints the leading rows, trimming wide datasets and long cells
func (w *Writer) headTable(insp *model.Inspection) {
	cols := insp.Columns
	trimmed := false
	if len(cols) > maxHeadColumns {
		cols = cols[:maxHeadColumns]
		trimmed = true
	}

	tw := w.newTable()
	header := strings.Join(cols, "\t")
	if trimmed {
		header += "\t..."
	}
	fmt.Fprintln(tw, header)

	for _, row := range insp.Head {
		cells := make([]string, len(cols))
		for i := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = cellValue(cell)
		}
		line := strings.Join(cells, "\t")
		if trimmed {
			line += "\t..."
		}
		fmt.Fprintln(tw, line)
	}
	tw.Flush()
}

// crossTab prints a cross-tabulation, optionally with row and column totals
func (w *Writer) crossTab(ct *model.CrossTab, margins bool) {
	tw := w.newTable()

	header := ct.RowLabel
	for _, col := range ct.ColNames {
		header += "\t" + col
	}
	if margins {
		header += "\tAll"
	}
	fmt.Fprintln(tw, header)

	for i, row := range ct.RowNames {
		line := row
		for j := range ct.ColNames {
			line += "\t" + fmt.Sprintf("%d", ct.Cells[i][j])
		}
		if margins {
			line += "\t" + fmt.Sprintf("%d", ct.RowTotal(i))
		}
		fmt.Fprintln(tw, line)
	}

	if margins {
		line := "All"
		for j := range ct.ColNames {
			line += "\t" + fmt.Sprintf("%d", ct.ColTotal(j))
		}
		line += "\t" + fmt.Sprintf("%d", ct.Total())
		fmt.Fprintln(tw, line)
	}
	tw.Flush()
}

func cellValue(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	runes := []rune(s)
	if len(runes) > maxCellWidth {
		return string(runes[:maxCellWidth-3]) + "..."
	}
	return s
}

// countProjects counts the distinct non-empty project values
func countProjects(table *model.Table) int {
	seen := make(map[string]bool)
	for _, issue := range table.Issues {
		if issue.Project != "" {
			seen[issue.Project] = true
		}
	}
	return len(seen)
}
