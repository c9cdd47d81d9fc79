package repository

import (
	"context"

	"github.com/ebse-lab/sevscope/pkg/domain/interfaces"
	"github.com/ebse-lab/sevscope/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements DatasetSource with rows held in memory. It serves
// tests and embedded fixtures.
type Memory struct {
	name    string
	columns []string
	rows    [][]string
	maxRows int
}

// NewMemory creates a memory dataset source over the given columns and rows
func NewMemory(name string, columns []string, rows [][]string) interfaces.DatasetSource {
	return &Memory{
		name:    name,
		columns: columns,
		rows:    rows,
	}
}

// NewMemoryLimit creates a memory source that loads at most maxRows rows
func NewMemoryLimit(name string, columns []string, rows [][]string, maxRows int) interfaces.DatasetSource {
	return &Memory{
		name:    name,
		columns: columns,
		rows:    rows,
		maxRows: maxRows,
	}
}

// Name returns the source name
func (m *Memory) Name() string {
	return m.name
}

// Load copies the held rows into a dataset so callers cannot mutate the
// source through the result.
func (m *Memory) Load(ctx context.Context) (*model.Dataset, error) {
	if len(m.columns) == 0 {
		return nil, goerr.Wrap(model.ErrHeaderParse, "memory source has no columns",
			goerr.V("name", m.name))
	}

	rows := m.rows
	if m.maxRows > 0 && len(rows) > m.maxRows {
		rows = rows[:m.maxRows]
	}

	ds := &model.Dataset{
		Source:  m.name,
		Columns: append([]string(nil), m.columns...),
		Rows:    make([][]string, len(rows)),
	}
	for i, row := range rows {
		ds.Rows[i] = append([]string(nil), row...)
	}

	return ds, nil
}
