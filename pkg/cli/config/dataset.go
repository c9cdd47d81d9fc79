package config

import (
	"log/slog"
	"os"

	"github.com/ebse-lab/sevscope/pkg/domain/interfaces"
	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/ebse-lab/sevscope/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Dataset holds dataset source configuration
type Dataset struct {
	Input      string
	MaxRows    int
	Severities string
}

// Flags returns CLI flags for Dataset configuration
func (d *Dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to the issue tracker CSV export",
			Category:    "Dataset",
			Value:       "issues.csv",
			Sources:     cli.EnvVars("SEVSCOPE_INPUT"),
			Destination: &d.Input,
		},
		&cli.IntFlag{
			Name:        "max-rows",
			Usage:       "Maximum number of data rows to read from the head of the file (0 reads everything)",
			Category:    "Dataset",
			Value:       100000,
			Sources:     cli.EnvVars("SEVSCOPE_MAX_ROWS"),
			Destination: &d.MaxRows,
		},
		&cli.StringFlag{
			Name:        "severities",
			Usage:       "Path to a custom severity taxonomy YAML (uses the built-in taxonomy when omitted)",
			Category:    "Dataset",
			Sources:     cli.EnvVars("SEVSCOPE_SEVERITIES"),
			Destination: &d.Severities,
		},
	}
}

// Configure creates the dataset source for the configured input file
func (d *Dataset) Configure() interfaces.DatasetSource {
	return repository.NewCSV(d.Input, d.MaxRows)
}

// ConfigureSeverities loads the severity taxonomy, built-in unless a custom
// file is configured
func (d *Dataset) ConfigureSeverities() (*model.SeverityConfig, error) {
	if d.Severities == "" {
		return model.DefaultSeverities()
	}

	data, err := os.ReadFile(d.Severities)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read severity taxonomy",
			goerr.V("path", d.Severities))
	}

	return model.ParseSeverityConfig(data)
}

// LogValue returns structured log value
func (d Dataset) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("input", d.Input),
		slog.Int("maxRows", d.MaxRows),
		slog.String("severities", d.Severities),
	)
}
