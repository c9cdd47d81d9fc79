package model

import "github.com/m-mizutani/goerr/v2"

// Dataset loading errors
var (
	ErrDatasetOpen   = goerr.New("failed to open dataset")
	ErrHeaderParse   = goerr.New("failed to parse dataset header")
	ErrColumnMissing = goerr.New("required column is missing")
)

// Analysis errors
var (
	ErrEmptyTable = goerr.New("no rows left after cleaning")
)
