package usecase_test

import (
	"fmt"
	"testing"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/ebse-lab/sevscope/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestInspectShape(t *testing.T) {
	ds := newDataset([]string{"priority.name", "status.name", "description"},
		[]string{"Major", "Open", "text"},
		[]string{"Minor", "", "text"},
		[]string{"", "Open", ""},
	)

	insp := usecase.Inspect(ds)

	gt.Equal(t, insp.Source, "test")
	gt.Equal(t, insp.RowCount, 3)
	gt.Equal(t, insp.Columns, ds.Columns)
	gt.Equal(t, len(insp.Head), 3)
}

func TestInspectHeadCapped(t *testing.T) {
	rows := make([][]string, 0, 8)
	for i := 0; i < 8; i++ {
		rows = append(rows, []string{"Major"})
	}
	ds := newDataset([]string{"priority.name"}, rows...)

	insp := usecase.Inspect(ds)
	gt.Equal(t, len(insp.Head), model.HeadRows)
}

func TestInspectMissingValues(t *testing.T) {
	ds := newDataset([]string{"priority.name", "status.name", "description"},
		[]string{"Major", "Open", ""},
		[]string{"Minor", "", ""},
		[]string{"", "Open", ""},
	)

	insp := usecase.Inspect(ds)

	gt.Equal(t, insp.Missing, []model.ColumnMissing{
		{Column: "description", Count: 3, Percent: 100},
		{Column: "priority.name", Count: 1, Percent: float64(1) / 3 * 100},
		{Column: "status.name", Count: 1, Percent: float64(1) / 3 * 100},
	})
}

func TestInspectProfiles(t *testing.T) {
	ds := newDataset([]string{"priority.name", "status.name"},
		[]string{"Major", "Open"},
		[]string{"Major", "Closed"},
		[]string{"Minor", "Open"},
	)

	insp := usecase.Inspect(ds)

	gt.Equal(t, len(insp.Profiles), 2)
	gt.Equal(t, insp.Profiles[0].Column, model.ColSeverity)
	gt.Equal(t, insp.Profiles[0].Title, "Severity field")
	gt.Equal(t, insp.Profiles[0].Values, []model.LabelCount{
		{Label: "Major", Count: 2},
		{Label: "Minor", Count: 1},
	})
	gt.Equal(t, insp.Profiles[1].Column, model.ColStatus)
}

func TestInspectProfileTruncation(t *testing.T) {
	columns := []string{"priority.name", "project.name"}
	rows := make([][]string, 0)
	for i := 0; i < 15; i++ {
		rows = append(rows, []string{"Major", fmt.Sprintf("proj-%02d", i)})
	}

	insp := usecase.Inspect(newDataset(columns, rows...))

	gt.Equal(t, len(insp.Profiles), 2)
	project := insp.Profiles[1]
	gt.Equal(t, project.Title, "Project field")
	gt.Equal(t, len(project.Values), 10)
}
