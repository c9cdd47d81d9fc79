package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/ebse-lab/sevscope/pkg/domain/interfaces"
	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// CSV implements DatasetSource by reading a prefix of a CSV file. The read
// is strictly in file order; it is a prefix sample, not a random one.
type CSV struct {
	path    string
	maxRows int
}

// NewCSV creates a CSV dataset source. maxRows bounds how many data rows
// are read; zero or negative reads the whole file.
func NewCSV(path string, maxRows int) interfaces.DatasetSource {
	return &CSV{
		path:    path,
		maxRows: maxRows,
	}
}

// Name returns the file path of the source
func (c *CSV) Name() string {
	return c.path
}

// Load reads the header and up to maxRows data rows. Rows that fail to
// parse are counted and skipped; open and header failures abort the load.
func (c *CSV) Load(ctx context.Context) (*model.Dataset, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, goerr.Wrap(model.ErrDatasetOpen, err.Error(),
			goerr.V("path", c.path))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, goerr.Wrap(model.ErrHeaderParse, err.Error(),
			goerr.V("path", c.path))
	}

	ds := &model.Dataset{
		Source:  c.path,
		Columns: header,
	}

	for c.maxRows <= 0 || len(ds.Rows) < c.maxRows {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "dataset load interrupted",
				goerr.V("path", c.path),
				goerr.V("rows", len(ds.Rows)))
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		// Parse errors consume the offending line, so skipping is safe.
		// Any other error would repeat forever and aborts the load.
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			ds.Skipped++
			continue
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read dataset row",
				goerr.V("path", c.path),
				goerr.V("row", len(ds.Rows)+ds.Skipped))
		}
		ds.Rows = append(ds.Rows, record)
	}

	if ds.Skipped > 0 {
		ctxlog.From(ctx).Warn("Skipped malformed rows while loading",
			"path", c.path,
			"skipped", ds.Skipped)
	}

	return ds, nil
}
