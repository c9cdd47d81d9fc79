package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/ebse-lab/sevscope/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newDataset(columns []string, rows ...[]string) *model.Dataset {
	return &model.Dataset{
		Source:  "test",
		Columns: columns,
		Rows:    rows,
	}
}

func defaultSeverities(t *testing.T) *model.SeverityConfig {
	t.Helper()
	return gt.R1(model.DefaultSeverities()).NoError(t)
}

func TestCleanNormalizesSeverity(t *testing.T) {
	ds := newDataset([]string{"priority.name"},
		[]string{"critical"},
		[]string{" Major "},
		[]string{""},
	)

	table, stats, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
	gt.NoError(t, err)

	gt.Equal(t, table.Len(), 2)
	gt.Equal(t, table.Issues[0].Severity, "Critical")
	gt.Equal(t, table.Issues[1].Severity, "Major")

	gt.Equal(t, stats.InitialRows, 3)
	gt.Equal(t, stats.AfterSeverityDrop, 2)
	gt.Equal(t, stats.AfterFilter, 2)
	gt.Equal(t, stats.Dropped(), 1)
}

func TestCleanDropsUnrecognizedLabels(t *testing.T) {
	ds := newDataset([]string{"priority.name"},
		[]string{"Blocker"},
		[]string{"urgent"},
		[]string{"URGENT"},
		[]string{"Trivial"},
	)

	table, stats, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
	gt.NoError(t, err)

	gt.Equal(t, table.Len(), 2)
	for _, issue := range table.Issues {
		gt.True(t, defaultSeverities(t).Contains(issue.Severity))
	}

	t.Run("standardized distribution includes dropped labels", func(t *testing.T) {
		gt.Equal(t, stats.Standardized, []model.LabelCount{
			{Label: "Blocker", Count: 1},
			{Label: "Trivial", Count: 1},
			{Label: "Urgent", Count: 2},
		})
	})
}

func TestCleanSeverityColumnRequired(t *testing.T) {
	ds := newDataset([]string{"status.name"}, []string{"Open"})

	_, _, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrColumnMissing))
}

func TestCleanDescLength(t *testing.T) {
	t.Run("from description", func(t *testing.T) {
		ds := newDataset([]string{"priority.name", "summary", "description"},
			[]string{"Major", "short", "abc"},
			[]string{"Minor", "has summary", ""},
		)

		table, _, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
		gt.NoError(t, err)

		gt.Equal(t, table.TextColumn, model.ColDescription)
		gt.Equal(t, table.Issues[0].DescLength, 3)
		gt.Equal(t, table.Issues[1].DescLength, 0)
	})

	t.Run("falls back to summary", func(t *testing.T) {
		ds := newDataset([]string{"priority.name", "summary"},
			[]string{"Major", "hello"},
		)

		table, _, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
		gt.NoError(t, err)

		gt.Equal(t, table.TextColumn, model.ColSummary)
		gt.Equal(t, table.Issues[0].DescLength, 5)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		ds := newDataset([]string{"priority.name", "description"},
			[]string{"Major", "héllo"},
		)

		table, _, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
		gt.NoError(t, err)
		gt.Equal(t, table.Issues[0].DescLength, 5)
	})

	t.Run("absent without text columns", func(t *testing.T) {
		ds := newDataset([]string{"priority.name"},
			[]string{"Major"},
		)

		table, _, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
		gt.NoError(t, err)
		gt.Equal(t, table.TextColumn, "")
	})
}

func TestCleanFillsUnknown(t *testing.T) {
	ds := newDataset([]string{"priority.name", "status.name", "issuetype.name"},
		[]string{"Major", "", ""},
		[]string{"Minor", "Open", "Bug"},
	)

	table, _, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
	gt.NoError(t, err)

	gt.Equal(t, table.Issues[0].Status, model.LabelUnknown)
	gt.Equal(t, table.Issues[0].IssueType, model.LabelUnknown)
	gt.Equal(t, table.Issues[1].Status, "Open")
	gt.Equal(t, table.Issues[1].IssueType, "Bug")
}

func TestCleanGroupsProjects(t *testing.T) {
	columns := []string{"priority.name", "project.name"}
	rows := make([][]string, 0)

	// 12 projects with distinct frequencies plus one row without a project
	for i := 0; i < 12; i++ {
		for n := 0; n <= i; n++ {
			rows = append(rows, []string{"Major", fmt.Sprintf("proj-%02d", i)})
		}
	}
	rows = append(rows, []string{"Major", ""})

	table, stats, err := usecase.Clean(context.Background(), newDataset(columns, rows...), defaultSeverities(t))
	gt.NoError(t, err)

	gt.Equal(t, len(stats.TopProjects), model.TopProjectCount)
	gt.Equal(t, stats.TopProjects[0], "proj-11")

	groups := make(map[string]bool)
	for _, issue := range table.Issues {
		gt.True(t, issue.ProjectGroup != "")
		groups[issue.ProjectGroup] = true
	}

	t.Run("at most eleven distinct groups", func(t *testing.T) {
		gt.True(t, len(groups) <= model.TopProjectCount+1)
		gt.True(t, groups[model.LabelOther])
	})

	t.Run("rare and missing projects fold into Other", func(t *testing.T) {
		for _, issue := range table.Issues {
			if issue.Project == "" || issue.Project == "proj-00" || issue.Project == "proj-01" {
				gt.Equal(t, issue.ProjectGroup, model.LabelOther)
			}
		}
	})
}

func TestCleanRowCountNeverGrows(t *testing.T) {
	ds := newDataset([]string{"priority.name"},
		[]string{"Major"},
		[]string{"bogus"},
		[]string{""},
		[]string{"minor"},
	)

	table, stats, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
	gt.NoError(t, err)

	gt.True(t, table.Len() <= ds.Len())
	gt.Equal(t, stats.FinalRows, table.Len())
	gt.True(t, stats.AfterSeverityDrop <= stats.InitialRows)
	gt.True(t, stats.AfterFilter <= stats.AfterSeverityDrop)
}

func TestCleanColumnCount(t *testing.T) {
	ds := newDataset([]string{"priority.name", "status.name", "project.name", "issuetype.name", "summary", "description", "reporter"},
		[]string{"Major", "Open", "core", "Bug", "sum", "desc", "alice"},
	)

	table, stats, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
	gt.NoError(t, err)

	// severity, status, project, issuetype, summary, description,
	// desc_length, project_grouped
	gt.Equal(t, stats.FinalColumns, 8)
	gt.Equal(t, len(table.Columns()), 8)
}

func TestCleanDeterministic(t *testing.T) {
	columns := []string{"priority.name", "project.name", "description"}
	rows := make([][]string, 0)
	for i := 0; i < 30; i++ {
		rows = append(rows, []string{"Major", fmt.Sprintf("proj-%d", i%12), "text"})
	}

	first, firstStats, err := usecase.Clean(context.Background(), newDataset(columns, rows...), defaultSeverities(t))
	gt.NoError(t, err)
	second, secondStats, err := usecase.Clean(context.Background(), newDataset(columns, rows...), defaultSeverities(t))
	gt.NoError(t, err)

	gt.Equal(t, first, second)
	gt.Equal(t, firstStats.TopProjects, secondStats.TopProjects)
}

func TestCleanMeanAndMedianLength(t *testing.T) {
	ds := newDataset([]string{"priority.name", "description"},
		[]string{"Major", "aa"},
		[]string{"Major", "aaaa"},
		[]string{"Major", "aaaaaaaaa"},
	)

	_, stats, err := usecase.Clean(context.Background(), ds, defaultSeverities(t))
	gt.NoError(t, err)

	gt.Equal(t, stats.DescLengthMean, 5.0)
	gt.Equal(t, stats.DescLengthMedian, 4.0)
}
