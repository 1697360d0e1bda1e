package usecase

import "errors"

// Sentinels carried out of transaction closures so the caller can map them to
// the right HTTP error without string matching.
var (
	errAlreadyProcessed    = errors.New("receipt already processed")
	errInsufficientBalance = errors.New("insufficient balance")
)
