package registry

import "errors"

// ErrTableFull is returned by Register when a table's capacity (spec.md
// §4.1's default 32 slots) is exhausted.
var ErrTableFull = errors.New("registry: table is full")
