package types

import (
	"github.com/google/uuid"
)

// SeverityLabel represents a normalized severity label on a cleaned row
type SeverityLabel string

// String returns the string representation
func (l SeverityLabel) String() string {
	return string(l)
}

// RunID represents a single analysis run identifier
type RunID string

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// NewRunID creates a new RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}
