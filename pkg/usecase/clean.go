package usecase

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"gonum.org/v1/gonum/stat"
)

// Clean turns a raw dataset into the analysis-ready table. Operations are
// applied in a fixed order:
//
//  1. drop rows with a missing severity
//  2. trim and title-case the severity label
//  3. drop rows whose label is not in the taxonomy
//  4. project to the analysis columns
//  5. derive the text length, preferring description over summary
//  6. group projects into the top set plus "Other"
//  7. fill missing status and issue type with "Unknown"
//
// The severity column is required; every other column is optional and its
// absence just narrows the cleaned table.
func Clean(ctx context.Context, ds *model.Dataset, severities *model.SeverityConfig) (*model.Table, *model.CleanStats, error) {
	sevIdx, ok := ds.ColumnIndex(model.ColSeverity)
	if !ok {
		return nil, nil, goerr.Wrap(model.ErrColumnMissing, "severity column not found",
			goerr.V("column", model.ColSeverity),
			goerr.V("columns", ds.Columns))
	}

	statusIdx, hasStatus := ds.ColumnIndex(model.ColStatus)
	projectIdx, hasProject := ds.ColumnIndex(model.ColProject)
	issueTypeIdx, hasIssueType := ds.ColumnIndex(model.ColIssueType)
	summaryIdx, hasSummary := ds.ColumnIndex(model.ColSummary)
	descIdx, hasDesc := ds.ColumnIndex(model.ColDescription)

	textColumn := ""
	textIdx := 0
	switch {
	case hasDesc:
		textColumn, textIdx = model.ColDescription, descIdx
	case hasSummary:
		textColumn, textIdx = model.ColSummary, summaryIdx
	}

	stats := &model.CleanStats{InitialRows: ds.Len()}
	standardized := make(map[string]int)

	table := &model.Table{
		HasStatus:    hasStatus,
		HasProject:   hasProject,
		HasIssueType: hasIssueType,
		HasSummary:   hasSummary,
		TextColumn:   textColumn,
	}

	for _, row := range ds.Rows {
		raw := ds.Field(row, sevIdx)
		if raw == "" {
			continue
		}
		stats.AfterSeverityDrop++

		label, recognized := severities.Normalize(raw)
		standardized[string(label)]++
		if !recognized {
			continue
		}

		issue := model.Issue{Severity: label}
		if hasStatus {
			issue.Status = ds.Field(row, statusIdx)
			if issue.Status == "" {
				issue.Status = model.LabelUnknown
			}
		}
		if hasProject {
			issue.Project = ds.Field(row, projectIdx)
		}
		if hasIssueType {
			issue.IssueType = ds.Field(row, issueTypeIdx)
			if issue.IssueType == "" {
				issue.IssueType = model.LabelUnknown
			}
		}
		if hasSummary {
			issue.Summary = ds.Field(row, summaryIdx)
		}
		if hasDesc {
			issue.Description = ds.Field(row, descIdx)
		}
		if textColumn != "" {
			issue.DescLength = utf8.RuneCountInString(ds.Field(row, textIdx))
		}
		table.Issues = append(table.Issues, issue)
	}

	stats.AfterFilter = len(table.Issues)

	for label, count := range standardized {
		stats.Standardized = append(stats.Standardized, model.LabelCount{Label: label, Count: count})
	}
	sort.Slice(stats.Standardized, func(i, j int) bool {
		return stats.Standardized[i].Label < stats.Standardized[j].Label
	})

	if hasProject {
		groupProjects(table, stats)
	}

	if textColumn != "" && len(table.Issues) > 0 {
		lengths := make([]float64, len(table.Issues))
		for i, issue := range table.Issues {
			lengths[i] = float64(issue.DescLength)
		}
		sort.Float64s(lengths)
		stats.DescLengthMean = stat.Mean(lengths, nil)
		stats.DescLengthMedian = quantile(lengths, 0.5)
	}

	stats.FinalRows = len(table.Issues)
	stats.FinalColumns = len(table.Columns())

	ctxlog.From(ctx).Info("Cleaned dataset",
		"initial", stats.InitialRows,
		"missingSeverity", stats.InitialRows-stats.AfterSeverityDrop,
		"unrecognized", stats.AfterSeverityDrop-stats.AfterFilter,
		"final", stats.FinalRows,
		"textColumn", textColumn)

	return table, stats, nil
}

// groupProjects finds the most frequent projects in the cleaned rows and
// relabels every other project, missing ones included, as LabelOther.
func groupProjects(table *model.Table, stats *model.CleanStats) {
	counts := make(map[string]int)
	for _, issue := range table.Issues {
		if issue.Project != "" {
			counts[issue.Project]++
		}
	}

	ranked := make([]model.LabelCount, 0, len(counts))
	for label, count := range counts {
		ranked = append(ranked, model.LabelCount{Label: label, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Label < ranked[j].Label
	})
	if len(ranked) > model.TopProjectCount {
		ranked = ranked[:model.TopProjectCount]
	}

	top := make(map[string]bool, len(ranked))
	for _, lc := range ranked {
		top[lc.Label] = true
		stats.TopProjects = append(stats.TopProjects, lc.Label)
	}

	for i := range table.Issues {
		if top[table.Issues[i].Project] {
			table.Issues[i].ProjectGroup = table.Issues[i].Project
		} else {
			table.Issues[i].ProjectGroup = model.LabelOther
		}
	}
}
