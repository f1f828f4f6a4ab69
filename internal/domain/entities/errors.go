package entities

import "errors"

// Sentinel errors returned by repositories. Use cases translate them
// into transport errors with errors.Is.
var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrSummaryConflict    = errors.New("interview summary already exists")
	ErrShareTokenNotFound = errors.New("share token not found")
)
