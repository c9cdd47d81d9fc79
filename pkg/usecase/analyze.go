package usecase

import (
	"context"
	"time"

	"github.com/ebse-lab/sevscope/pkg/domain/interfaces"
	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/ebse-lab/sevscope/pkg/domain/types"
	"github.com/ebse-lab/sevscope/pkg/service/report"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// AnalyzeUseCase runs the whole pipeline: load, inspect, clean, aggregate,
// render, and write the run artifacts.
type AnalyzeUseCase struct {
	source     interfaces.DatasetSource
	severities *model.SeverityConfig
	renderer   ChartRenderer
	console    *report.Writer

	tablesDir    string
	manifestPath string
}

// NewAnalyzeUseCase creates a new AnalyzeUseCase instance. A nil renderer
// disables figure generation; empty tablesDir or manifestPath disable the
// corresponding artifact.
func NewAnalyzeUseCase(source interfaces.DatasetSource, severities *model.SeverityConfig, renderer ChartRenderer, console *report.Writer, tablesDir, manifestPath string) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		source:       source,
		severities:   severities,
		renderer:     renderer,
		console:      console,
		tablesDir:    tablesDir,
		manifestPath: manifestPath,
	}
}

// Run executes the four pipeline stages in order and returns the manifest
// of what the run produced.
func (uc *AnalyzeUseCase) Run(ctx context.Context) (*model.Manifest, error) {
	started := time.Now()

	// STEP 1: load and observe
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
	uc.console.Inspection(Inspect(ds))

	// STEP 2: clean
	uc.console.Banner("STEP 2: Clean & Prepare the Data")
	table, stats, err := Clean(ctx, ds, uc.severities)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to clean dataset")
	}
	uc.console.CleanReport(stats, table)

	if table.Len() == 0 {
		return nil, goerr.Wrap(model.ErrEmptyTable, "nothing to analyze",
			goerr.V("initialRows", stats.InitialRows))
	}

	// STEP 3: aggregate
	uc.console.Banner("STEP 3: Analysis (Create Evidence)")
	agg := Aggregate(ctx, table)
	uc.console.AggregateReport(agg)

	// STEP 4: render figures and export artifacts
	uc.console.Banner("STEP 4: Generate Graphs")

	var figures []string
	if uc.renderer != nil {
		figures, err = uc.renderFigures(ctx, agg)
		if err != nil {
			return nil, err
		}
	} else {
		ctxlog.From(ctx).Info("Chart rendering disabled")
	}

	var tables []string
	if uc.tablesDir != "" {
		tables, err = report.ExportTables(uc.tablesDir, agg)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to export tables",
				goerr.V("dir", uc.tablesDir))
		}
		for _, path := range tables {
			uc.console.Saved(path)
		}
	}

	figuresDir := ""
	if uc.renderer != nil && len(figures) > 0 {
		figuresDir = uc.renderer.Dir()
	}
	uc.console.Summary(table, agg, figuresDir)

	levels := make([]string, 0, len(agg.Severity.Entries))
	for _, e := range agg.Severity.Entries {
		levels = append(levels, string(e.Label))
	}

	manifest := &model.Manifest{
		RunID:       types.NewRunID(),
		Input:       uc.source.Name(),
		StartedAt:   started,
		FinishedAt:  time.Now(),
		RowsLoaded:  ds.Len(),
		RowsCleaned: table.Len(),
		RowsDropped: stats.Dropped(),
		Severities:  levels,
		Figures:     figures,
		Tables:      tables,
	}
	if uc.manifestPath != "" {
		if err := report.WriteManifest(uc.manifestPath, manifest); err != nil {
			return nil, goerr.Wrap(err, "failed to write run manifest",
				goerr.V("path", uc.manifestPath))
		}
		ctxlog.From(ctx).Info("Run manifest written",
			"path", uc.manifestPath,
			"runID", manifest.RunID)
	}

	return manifest, nil
}

// renderFigures draws each figure whose source statistic exists. A missing
// statistic skips its figure without console output, matching how absent
// columns degrade everywhere else.
func (uc *AnalyzeUseCase) renderFigures(ctx context.Context, agg *model.Aggregates) ([]string, error) {
	logger := ctxlog.From(ctx)
	var figures []string

	uc.console.Generating(1, model.FigureSeverityDistribution)
	path, err := uc.renderer.SeverityDistribution(ctx, agg.Severity)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to render severity distribution")
	}
	uc.console.Saved(path)
	figures = append(figures, path)

	if agg.ByStatus != nil {
		uc.console.Generating(2, model.FigureSeverityVsStatus)
		path, err := uc.renderer.SeverityByStatus(ctx, agg.ByStatus)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to render severity by status")
		}
		uc.console.Saved(path)
		figures = append(figures, path)
	} else {
		logger.Debug("Skipping figure, no status column", "figure", model.FigureSeverityVsStatus)
	}

	if agg.ByProject != nil {
		uc.console.Generating(3, model.FigureSeverityVsProject)
		path, err := uc.renderer.SeverityByProject(ctx, agg.ByProject)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to render severity by project")
		}
		uc.console.Saved(path)
		figures = append(figures, path)
	} else {
		logger.Debug("Skipping figure, no project column", "figure", model.FigureSeverityVsProject)
	}

	if len(agg.LengthSamples) > 0 {
		uc.console.Generating(4, model.FigureDescLength)
		path, err := uc.renderer.DescLengthBox(ctx, agg.LengthSamples)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to render length boxplot")
		}
		uc.console.Saved(path)
		figures = append(figures, path)
	} else {
		logger.Debug("Skipping figure, no text column", "figure", model.FigureDescLength)
	}

	return figures, nil
}
