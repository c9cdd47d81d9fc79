package interfaces

import (
	"context"

	"github.com/ebse-lab/sevscope/pkg/domain/model"
)

// DatasetSource loads raw issue rows into memory. Implementations read a
// bounded prefix of their backing data; loading is all-or-nothing apart
// from malformed rows, which are counted and skipped.
type DatasetSource interface {
	// Load reads the dataset. It fails when the source cannot be opened
	// or its header cannot be parsed.
	Load(ctx context.Context) (*model.Dataset, error)

	// Name identifies the source for logs and reports.
	Name() string
}
