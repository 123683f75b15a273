package signature

import "errors"

var (
	ErrAttestationNotFound = errors.New("signature attestation not found")

	// ErrAlreadyCaptured fires when a distinct signature is submitted after
	// one of the same approval type was already recorded. Resubmitting the
	// identical image by the same actor is accepted idempotently instead.
	ErrAlreadyCaptured = errors.New("a signature of this approval type is already recorded")
)
