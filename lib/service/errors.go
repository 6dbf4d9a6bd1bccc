package service

import "errors"

// Error kinds surfaced by the ledger. All are recoverable at the caller:
// the request fails with no partial state change.
var (
	ErrDuplicateCode             = errors.New("code already exists")
	ErrNotFound                  = errors.New("record not found")
	ErrUnbalancedEntry           = errors.New("entry is not balanced")
	ErrInvalidPrefix             = errors.New("code does not start with the reserved tier prefix")
	ErrNoOpenFiscalYear          = errors.New("no open fiscal year")
	ErrConcurrentPostingConflict = errors.New("concurrent validation on the same journal")
)
