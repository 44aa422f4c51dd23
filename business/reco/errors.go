package reco

import "errors"

var (
	// ErrInvalidWeights is a configuration error: a weight table is malformed
	// or does not sum to 1.0. Fatal, surfaced immediately, never worked around.
	ErrInvalidWeights = errors.New("scoring weights are invalid")

	// ErrOrchidNotFound is returned by similarity lookups for unknown IDs.
	ErrOrchidNotFound = errors.New("orchid not found")
)
