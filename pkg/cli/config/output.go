package config

import (
	"log/slog"
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// Output holds output artifact configuration. Figures, tables and the run
// manifest all live under one output directory.
type Output struct {
	Dir      string
	NoCharts bool
}

// Flags returns CLI flags for Output configuration
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "out-dir",
			Aliases:     []string{"o"},
			Usage:       "Directory for generated figures, tables and the run manifest",
			Category:    "Output",
			Value:       ".",
			Sources:     cli.EnvVars("SEVSCOPE_OUT_DIR"),
			Destination: &o.Dir,
		},
		&cli.BoolFlag{
			Name:        "no-charts",
			Usage:       "Skip PNG figure generation",
			Category:    "Output",
			Sources:     cli.EnvVars("SEVSCOPE_NO_CHARTS"),
			Destination: &o.NoCharts,
		},
	}
}

// FiguresDir returns the directory PNG figures are written to
func (o *Output) FiguresDir() string {
	return filepath.Join(o.Dir, "figures")
}

// TablesDir returns the directory CSV tables are written to
func (o *Output) TablesDir() string {
	return filepath.Join(o.Dir, "tables")
}

// ManifestPath returns where the run manifest is written
func (o *Output) ManifestPath() string {
	return filepath.Join(o.Dir, "run.yml")
}

// LogValue returns structured log value
func (o Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", o.Dir),
		slog.Bool("noCharts", o.NoCharts),
	)
}
