package model

import "github.com/ebse-lab/sevscope/pkg/domain/types"

// Issue is one cleaned bug report. Only the fields backed by a column in
// the source dataset carry meaning; the cleaned Table records which ones
// those are.
type Issue struct {
	Severity     types.SeverityLabel
	Status       string
	Project      string
	ProjectGroup string
	IssueType    string
	Summary      string
	Description  string

	// DescLength is the character count of the chosen text column,
	// zero when the text is missing.
	DescLength int
}
