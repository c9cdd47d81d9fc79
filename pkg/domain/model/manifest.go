package model

import (
	"time"

	"github.com/ebse-lab/sevscope/pkg/domain/types"
)

// Manifest records what one analysis run did and produced. It is written
// next to the generated artifacts so a run can be traced afterwards.
type Manifest struct {
	RunID      types.RunID `yaml:"run_id"`
	Input      string      `yaml:"input"`
	StartedAt  time.Time   `yaml:"started_at"`
	FinishedAt time.Time   `yaml:"finished_at"`

	RowsLoaded  int `yaml:"rows_loaded"`
	RowsCleaned int `yaml:"rows_cleaned"`
	RowsDropped int `yaml:"rows_dropped"`

	// Severities lists the levels present in the cleaned data, by label.
	Severities []string `yaml:"severities"`

	Figures []string `yaml:"figures,omitempty"`
	Tables  []string `yaml:"tables,omitempty"`
}
