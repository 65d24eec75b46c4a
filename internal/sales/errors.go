package sales

import "errors"

var (
	// ErrInvalidInput is returned when any of the input collections is missing or empty.
	ErrInvalidInput = errors.New("incorrect input data")
	// ErrMissingOptions is returned when no options were supplied to Analyze.
	ErrMissingOptions = errors.New("options not provided or malformed")
	// ErrMissingStrategy is returned when the revenue or bonus strategy is absent.
	ErrMissingStrategy = errors.New("revenue or bonus strategy not provided")
	// ErrInvalidStrategyType is returned when a named strategy does not resolve to a known implementation.
	ErrInvalidStrategyType = errors.New("supplied strategy is not callable")
)
