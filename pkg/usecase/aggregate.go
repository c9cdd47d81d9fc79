package usecase

import (
	"context"
	"math"
	"sort"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/ebse-lab/sevscope/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"gonum.org/v1/gonum/stat"
)

// Aggregate computes every statistic the pipeline reports from a cleaned
// table: the severity distribution, the cross-tabulations, and the text
// length summary. It has no side effects and is deterministic for a given
// table. Statistics whose source column is absent come back nil.
func Aggregate(ctx context.Context, table *model.Table) *model.Aggregates {
	agg := &model.Aggregates{
		Severity: severityDistribution(table),
	}

	if table.HasStatus {
		agg.ByStatus = crossTab("severity", model.ColStatus, table.Issues,
			func(i model.Issue) string { return i.Status })
	}
	if table.HasProject {
		agg.ByProject = crossTab("severity", "project_grouped", table.Issues,
			func(i model.Issue) string { return i.ProjectGroup })
	}
	if table.HasIssueType {
		agg.ByIssueType = crossTab("severity", model.ColIssueType, table.Issues,
			func(i model.Issue) string { return i.IssueType })
	}
	if table.TextColumn != "" {
		agg.DescLength, agg.LengthSamples = lengthStats(table.Issues)
	}

	ctxlog.From(ctx).Info("Aggregated cleaned table",
		"rows", table.Len(),
		"severities", len(agg.Severity.Entries),
		"hasStatus", table.HasStatus,
		"hasProject", table.HasProject,
		"hasIssueType", table.HasIssueType,
		"textColumn", table.TextColumn)

	return agg
}

// severityDistribution counts rows per severity label, ordered by label
func severityDistribution(table *model.Table) *model.Distribution {
	counts := make(map[types.SeverityLabel]int)
	for _, issue := range table.Issues {
		counts[issue.Severity]++
	}

	dist := &model.Distribution{Total: table.Len()}
	for label, count := range counts {
		entry := model.DistEntry{Label: label, Count: count}
		if dist.Total > 0 {
			entry.Percentage = float64(count) / float64(dist.Total) * 100
		}
		dist.Entries = append(dist.Entries, entry)
	}
	sort.Slice(dist.Entries, func(i, j int) bool {
		return dist.Entries[i].Label < dist.Entries[j].Label
	})

	return dist
}

// crossTab counts rows for every (severity, column value) pair. Both axes
// are ordered by name.
func crossTab(rowLabel, colLabel string, issues []model.Issue, colVal func(model.Issue) string) *model.CrossTab {
	counts := make(map[string]map[string]int)
	colSet := make(map[string]bool)
	for _, issue := range issues {
		row := string(issue.Severity)
		col := colVal(issue)
		if counts[row] == nil {
			counts[row] = make(map[string]int)
		}
		counts[row][col]++
		colSet[col] = true
	}

	rows := make([]string, 0, len(counts))
	for row := range counts {
		rows = append(rows, row)
	}
	sort.Strings(rows)

	cols := make([]string, 0, len(colSet))
	for col := range colSet {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	cells := make([][]int, len(rows))
	for i, row := range rows {
		cells[i] = make([]int, len(cols))
		for j, col := range cols {
			cells[i][j] = counts[row][col]
		}
	}

	return &model.CrossTab{
		RowLabel: rowLabel,
		ColLabel: colLabel,
		RowNames: rows,
		ColNames: cols,
		Cells:    cells,
	}
}

// lengthStats summarizes DescLength per severity group. The returned
// samples keep row order; the stats use the sample standard deviation, so
// a single-row group has no deviation to report.
func lengthStats(issues []model.Issue) ([]model.LengthStat, []model.LengthSample) {
	groups := make(map[types.SeverityLabel][]float64)
	for _, issue := range issues {
		groups[issue.Severity] = append(groups[issue.Severity], float64(issue.DescLength))
	}

	labels := make([]types.SeverityLabel, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	stats := make([]model.LengthStat, 0, len(labels))
	samples := make([]model.LengthSample, 0, len(labels))
	for _, label := range labels {
		values := groups[label]
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		stats = append(stats, model.LengthStat{
			Label:  label,
			Count:  len(values),
			Mean:   stat.Mean(sorted, nil),
			Median: quantile(sorted, 0.5),
			StdDev: stat.StdDev(sorted, nil),
		})
		samples = append(samples, model.LengthSample{Label: label, Values: values})
	}

	return stats, samples
}

// quantile interpolates the q-th quantile of a sorted sample between the
// two closest order statistics. At q=0.5 an even-sized sample yields the
// midpoint of the two middle values, the conventional median.
// gonum's stat.Quantile offers only the empirical and ECDF-interpolated
// kinds, which land on a different value.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
