package usecase

import (
	"context"
	"sort"

	"github.com/ebse-lab/sevscope/pkg/domain/interfaces"
	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/ebse-lab/sevscope/pkg/service/report"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Limits for the key column profiles. Fields with a long tail are truncated
// to their most frequent values; the small categorical ones are shown whole.
const profileTopValues = 10

// Inspect summarizes a raw dataset: shape, head sample, missing values,
// and the value distributions of the key columns. It is a pure function
// of the dataset.
func Inspect(ds *model.Dataset) *model.Inspection {
	insp := &model.Inspection{
		Source:   ds.Source,
		RowCount: ds.Len(),
		Columns:  ds.Columns,
		Skipped:  ds.Skipped,
		Head:     ds.Head(model.HeadRows),
	}

	for _, col := range ds.Columns {
		count := ds.MissingCount(col)
		if count == 0 {
			continue
		}
		percent := 0.0
		if ds.Len() > 0 {
			percent = float64(count) / float64(ds.Len()) * 100
		}
		insp.Missing = append(insp.Missing, model.ColumnMissing{
			Column:  col,
			Count:   count,
			Percent: percent,
		})
	}
	sort.Slice(insp.Missing, func(i, j int) bool {
		if insp.Missing[i].Count != insp.Missing[j].Count {
			return insp.Missing[i].Count > insp.Missing[j].Count
		}
		return insp.Missing[i].Column < insp.Missing[j].Column
	})

	profiles := []struct {
		column string
		title  string
		limit  int
	}{
		{column: model.ColSeverity, title: "Severity field"},
		{column: model.ColPriorityID, title: "Priority IDs"},
		{column: model.ColStatus, title: "Status field", limit: profileTopValues},
		{column: model.ColProject, title: "Project field", limit: profileTopValues},
		{column: model.ColIssueType, title: "Issue Type field"},
	}
	for _, p := range profiles {
		if !ds.HasColumn(p.column) {
			continue
		}
		values := ds.ValueCounts(p.column)
		if p.limit > 0 && len(values) > p.limit {
			values = values[:p.limit]
		}
		insp.Profiles = append(insp.Profiles, model.ColumnProfile{
			Column: p.column,
			Title:  p.title,
			Values: values,
		})
	}

	return insp
}

// InspectUseCase loads a dataset and reports its first-look summary
type InspectUseCase struct {
	source  interfaces.DatasetSource
	console *report.Writer
}

// NewInspectUseCase creates a new InspectUseCase instance
func NewInspectUseCase(source interfaces.DatasetSource, console *report.Writer) *InspectUseCase {
	return &InspectUseCase{
		source:  source,
		console: console,
	}
}

// Run loads the dataset and writes the observation report
func (uc *InspectUseCase) Run(ctx context.Context) (*model.Inspection, error) {
	uc.console.Banner("STEP 1: Locate & Observe the Dataset")
	uc.console.Loading(uc.source.Name())

	ds, err := uc.source.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset",
			goerr.V("source", uc.source.Name()))
	}
	ctxlog.From(ctx).Info("Dataset loaded",
		"source", uc.source.Name(),
		"rows", ds.Len(),
		"columns", len(ds.Columns),
		"skipped", ds.Skipped)
	uc.console.Loaded(ds.Len())

	insp := Inspect(ds)
	uc.console.Inspection(insp)

	return insp, nil
}
