package application

import "errors"

var (
	// ErrNullRepoManager ...
	ErrNullRepoManager = errors.New("repo manager must not be null")
	// ErrMissingLedgerKey ...
	ErrMissingLedgerKey = errors.New("ledger key must not be empty")
)
