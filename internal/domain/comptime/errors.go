package comptime

import "errors"

var (
	ErrEntryNotFound = errors.New("Comp-time entry not found")
)
