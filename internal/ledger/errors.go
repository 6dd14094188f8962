package ledger

import "errors"

// Every failure the engine reports is one of these sentinels (possibly
// wrapped with detail). Callers branch with errors.Is; the API layer maps
// them to HTTP statuses.
var (
	ErrValidation           = errors.New("invalid input")
	ErrNoPriceAvailable     = errors.New("no gold price available")
	ErrInsufficientFunds    = errors.New("insufficient balance")
	ErrInsufficientHoldings = errors.New("insufficient gold holdings")
	ErrForbidden            = errors.New("admin access required")
	ErrInvalidState         = errors.New("request is not pending")
	ErrNotFound             = errors.New("record not found")
)
