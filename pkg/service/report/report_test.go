package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/ebse-lab/sevscope/pkg/service/report"
	"github.com/m-mizutani/gt"
)

func render(fn func(w *report.Writer)) string {
	var buf bytes.Buffer
	fn(report.NewWriter(&buf))
	return buf.String()
}

func TestBannerSpacing(t *testing.T) {
	out := render(func(w *report.Writer) {
		w.Banner("first")
		w.Banner("second")
	})

	rule := strings.Repeat("=", 60)
	want := rule + "\nfirst\n" + rule + "\n" +
		"\n" + rule + "\nsecond\n" + rule + "\n"
	gt.Equal(t, out, want)
}

func TestLoadedGroupsThousands(t *testing.T) {
	out := render(func(w *report.Writer) {
		w.Loaded(123456)
	})
	gt.S(t, out).Contains("Loaded 123,456 rows for analysis")
}

func TestInspectionReport(t *testing.T) {
	t.Run("full inspection", func(t *testing.T) {
		insp := &model.Inspection{
			Source:   "issues.csv",
			RowCount: 3,
			Columns:  []string{"priority.name", "summary"},
			Skipped:  1,
			Head: [][]string{
				{"Major", "first"},
				{"Minor", "line1\nline2"},
			},
			Missing: []model.ColumnMissing{
				{Column: "summary", Count: 1, Percent: 100.0 / 3},
			},
			Profiles: []model.ColumnProfile{
				{
					Column: "priority.name",
					Title:  "Severity field",
					Values: []model.LabelCount{
						{Label: "Major", Count: 2},
						{Label: "Minor", Count: 1},
					},
				},
			},
		}

		out := render(func(w *report.Writer) { w.Inspection(insp) })

		gt.S(t, out).Contains("Dataset shape: 3 rows × 2 columns")
		gt.S(t, out).Contains("Skipped 1 malformed rows while reading")
		gt.S(t, out).Contains("1. priority.name")
		gt.S(t, out).Contains("2. summary")
		gt.S(t, out).Contains("Data Sample (first 2 rows):")
		gt.S(t, out).Contains("line1 line2")
		gt.S(t, out).Contains("Missing Values Summary:")
		gt.S(t, out).Contains("33.33")
		gt.S(t, out).Contains("Identifying Key Columns:")
		gt.S(t, out).Contains("Severity field: priority.name")
	})

	t.Run("nothing missing", func(t *testing.T) {
		insp := &model.Inspection{
			RowCount: 1,
			Columns:  []string{"priority.name"},
			Head:     [][]string{{"Major"}},
		}
		out := render(func(w *report.Writer) { w.Inspection(insp) })
		gt.S(t, out).Contains("No missing values found")
		gt.S(t, out).NotContains("Skipped")
	})

	t.Run("wide dataset trims columns", func(t *testing.T) {
		insp := &model.Inspection{
			RowCount: 1,
			Columns:  []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"},
			Head:     [][]string{{"a", "b", "c", "d", "e", "f", "g"}},
		}
		out := render(func(w *report.Writer) { w.Inspection(insp) })

		// The column list names every column; only the head table trims.
		lines := strings.Split(out, "\n")
		var header string
		for _, line := range lines {
			if strings.HasPrefix(line, "c1") {
				header = line
				break
			}
		}
		gt.S(t, header).Contains("c6")
		gt.S(t, header).Contains("...")
		gt.S(t, header).NotContains("c7")
	})

	t.Run("long cells truncated", func(t *testing.T) {
		insp := &model.Inspection{
			RowCount: 1,
			Columns:  []string{"description"},
			Head:     [][]string{{strings.Repeat("x", 45)}},
		}
		out := render(func(w *report.Writer) { w.Inspection(insp) })
		gt.S(t, out).Contains(strings.Repeat("x", 37) + "...")
		gt.S(t, out).NotContains(strings.Repeat("x", 38))
	})
}

func TestCleanReport(t *testing.T) {
	stats := &model.CleanStats{
		InitialRows:       1200,
		AfterSeverityDrop: 1100,
		Standardized: []model.LabelCount{
			{Label: "Critical", Count: 300},
			{Label: "Major", Count: 800},
		},
		AfterFilter:      1100,
		DescLengthMean:   120.5,
		DescLengthMedian: 88,
		TopProjects:      []string{"core", "ui"},
		FinalRows:        1100,
		FinalColumns:     8,
	}

	t.Run("description column", func(t *testing.T) {
		table := &model.Table{TextColumn: model.ColDescription}
		out := render(func(w *report.Writer) { w.CleanReport(stats, table) })

		gt.S(t, out).Contains("Initial row count: 1,200")
		gt.S(t, out).Contains("After removing missing priority: 1,100 rows (100 removed)")
		gt.S(t, out).Contains("Severity distribution after standardization:")
		gt.S(t, out).Contains("Number of unique severity levels: 2")
		gt.S(t, out).Contains("After filtering to known severities: 1,100 rows")
		gt.S(t, out).Contains("Created desc_length: mean=120.5, median=88.0")
		gt.S(t, out).Contains(`Created project_grouped: top 2 projects + "Other"`)
		gt.S(t, out).Contains("Final cleaned dataset: 1,100 rows × 8 columns")
	})

	t.Run("summary fallback", func(t *testing.T) {
		table := &model.Table{TextColumn: model.ColSummary}
		out := render(func(w *report.Writer) { w.CleanReport(stats, table) })
		gt.S(t, out).Contains("Created desc_length from summary: mean=120.5, median=88.0")
	})

	t.Run("no text column", func(t *testing.T) {
		bare := &model.CleanStats{InitialRows: 10, AfterSeverityDrop: 10, AfterFilter: 10, FinalRows: 10, FinalColumns: 1}
		table := &model.Table{}
		out := render(func(w *report.Writer) { w.CleanReport(bare, table) })
		gt.S(t, out).NotContains("Created desc_length")
		gt.S(t, out).NotContains("Created project_grouped")
	})
}

func TestAggregateReport(t *testing.T) {
	t.Run("all sections", func(t *testing.T) {
		agg := &model.Aggregates{
			Severity: &model.Distribution{
				Entries: []model.DistEntry{
					{Label: "Critical", Count: 2, Percentage: 40},
					{Label: "Major", Count: 3, Percentage: 60},
				},
				Total: 5,
			},
			ByStatus: &model.CrossTab{
				RowLabel: "severity", ColLabel: "status.name",
				RowNames: []string{"Critical", "Major"},
				ColNames: []string{"Closed", "Open"},
				Cells:    [][]int{{1, 1}, {0, 3}},
			},
			ByProject: &model.CrossTab{
				RowLabel: "severity", ColLabel: "project_grouped",
				RowNames: []string{"Critical", "Major"},
				ColNames: []string{"core", "ui"},
				Cells:    [][]int{{2, 0}, {1, 2}},
			},
			DescLength: []model.LengthStat{
				{Label: "Critical", Count: 2, Mean: 45, Median: 45, StdDev: 7.07},
			},
		}

		out := render(func(w *report.Writer) { w.AggregateReport(agg) })

		gt.S(t, out).Contains("1. Severity Distribution:")
		gt.S(t, out).Contains("40.00")
		gt.S(t, out).Contains("60.00")
		gt.S(t, out).Contains("2. Severity vs Status (Cross-tabulation):")
		gt.S(t, out).Contains("All")
		gt.S(t, out).Contains("3. Severity vs Project (Top Projects):")
		gt.S(t, out).Contains("4. Severity vs Issue Type:")
		gt.S(t, out).Contains("5. Description Length by Severity:")
		gt.S(t, out).Contains("45.00")
		gt.S(t, out).Contains("7.07")
	})

	t.Run("totals only on the status table", func(t *testing.T) {
		agg := &model.Aggregates{
			Severity: &model.Distribution{},
			ByProject: &model.CrossTab{
				RowLabel: "severity", ColLabel: "project_grouped",
				RowNames: []string{"Major"},
				ColNames: []string{"core"},
				Cells:    [][]int{{3}},
			},
		}
		out := render(func(w *report.Writer) { w.AggregateReport(agg) })
		gt.S(t, out).NotContains("All")
	})

	t.Run("headings survive missing statistics", func(t *testing.T) {
		agg := &model.Aggregates{Severity: &model.Distribution{}}
		out := render(func(w *report.Writer) { w.AggregateReport(agg) })
		gt.S(t, out).Contains("2. Severity vs Status (Cross-tabulation):")
		gt.S(t, out).Contains("3. Severity vs Project (Top Projects):")
		gt.S(t, out).Contains("4. Severity vs Issue Type:")
		gt.S(t, out).Contains("5. Description Length by Severity:")
	})
}

func TestSummary(t *testing.T) {
	agg := &model.Aggregates{
		Severity: &model.Distribution{
			Entries: []model.DistEntry{{Label: "Major", Count: 3, Percentage: 100}},
			Total:   3,
		},
	}

	t.Run("with projects and figures", func(t *testing.T) {
		table := &model.Table{
			Issues: []model.Issue{
				{Project: "core"}, {Project: "core"}, {Project: "ui"},
			},
			HasProject: true,
		}
		out := render(func(w *report.Writer) { w.Summary(table, agg, "out/figures") })

		gt.S(t, out).Contains("Analysis Complete!")
		gt.S(t, out).Contains("- Total issues analyzed: 3")
		gt.S(t, out).Contains("- Severity levels: 1")
		gt.S(t, out).Contains("- Unique projects: 2")
		gt.S(t, out).Contains("Figures saved to: out/figures")
	})

	t.Run("without projects or figures", func(t *testing.T) {
		table := &model.Table{Issues: []model.Issue{{}, {}, {}}}
		out := render(func(w *report.Writer) { w.Summary(table, agg, "") })

		gt.S(t, out).Contains("- Unique projects: N/A")
		gt.S(t, out).NotContains("Figures saved to:")
	})
}
