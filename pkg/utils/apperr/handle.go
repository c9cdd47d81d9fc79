package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Handle reports a fatal application error through the contextual logger.
// Values attached via goerr are logged as attributes so the JSON format
// keeps the diagnostic context.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)

	if values := goerr.Values(err); len(values) > 0 {
		logger.Error("application error", "error", err, "values", values)
		return
	}
	logger.Error("application error", "error", err)
}
