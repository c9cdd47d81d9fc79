package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/ebse-lab/sevscope/pkg/cli/config"
	"github.com/ebse-lab/sevscope/pkg/service/report"
	"github.com/ebse-lab/sevscope/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdInspect() *cli.Command {
	var datasetCfg config.Dataset

	return &cli.Command{
		Name:  "inspect",
		Usage: "Load a dataset and print its first-look summary without analyzing it",
		Flags: datasetCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			ctxlog.From(ctx).Info("Starting inspection",
				slog.Any("dataset", datasetCfg),
			)

			uc := usecase.NewInspectUseCase(
				datasetCfg.Configure(),
				report.NewWriter(os.Stdout),
			)

			if _, err := uc.Run(ctx); err != nil {
				return goerr.Wrap(err, "inspection failed")
			}

			return nil
		},
	}
}
