package usecase

import (
	"context"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
)

// ChartRenderer defines the interface for figure generation. Each method
// draws one figure and returns the path it was written to.
type ChartRenderer interface {
	// Dir returns the directory figures are written to
	Dir() string

	// SeverityDistribution draws the severity frequency bar chart
	SeverityDistribution(ctx context.Context, dist *model.Distribution) (string, error)

	// SeverityByStatus draws the grouped bar chart of severity against
	// the most frequent statuses
	SeverityByStatus(ctx context.Context, ct *model.CrossTab) (string, error)

	// SeverityByProject draws the grouped bar chart of severity against
	// the grouped projects
	SeverityByProject(ctx context.Context, ct *model.CrossTab) (string, error)

	// DescLengthBox draws the text length boxplot per severity
	DescLengthBox(ctx context.Context, samples []model.LengthSample) (string, error)
}
