package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/ebse-lab/sevscope/pkg/cli/config"
	"github.com/ebse-lab/sevscope/pkg/service/chart"
	"github.com/ebse-lab/sevscope/pkg/service/report"
	"github.com/ebse-lab/sevscope/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var (
		datasetCfg config.Dataset
		outputCfg  config.Output
	)

	flags := append(datasetCfg.Flags(), outputCfg.Flags()...)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Run the severity analysis pipeline and write figures, tables and the run manifest",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting analysis",
				slog.Any("dataset", datasetCfg),
				slog.Any("output", outputCfg),
			)

			severities, err := datasetCfg.ConfigureSeverities()
			if err != nil {
				return err
			}

			var renderer usecase.ChartRenderer
			if !outputCfg.NoCharts {
				renderer = chart.NewRenderer(outputCfg.FiguresDir(), severities)
			}

			uc := usecase.NewAnalyzeUseCase(
				datasetCfg.Configure(),
				severities,
				renderer,
				report.NewWriter(os.Stdout),
				outputCfg.TablesDir(),
				outputCfg.ManifestPath(),
			)

			manifest, err := uc.Run(ctx)
			if err != nil {
				return goerr.Wrap(err, "analysis failed")
			}

			logger.Info("Analysis finished",
				slog.String("runID", manifest.RunID.String()),
				slog.Int("rowsLoaded", manifest.RowsLoaded),
				slog.Int("rowsCleaned", manifest.RowsCleaned),
				slog.Int("figures", len(manifest.Figures)),
				slog.Int("tables", len(manifest.Tables)),
			)

			return nil
		},
	}
}
