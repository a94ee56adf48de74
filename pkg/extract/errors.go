package extract

import "errors"

var (
	// ErrTableNotFound is returned when neither the configured table
	// index nor the header fallback scan matches any table on the page.
	ErrTableNotFound = errors.New("no table matching configured columns")

	// ErrNoTables is returned when the fetched page contains no tables at all.
	ErrNoTables = errors.New("page contains no tables")
)
