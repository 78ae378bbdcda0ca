package facematch

import (
	"context"
	"errors"
)

// Verification failure reasons. The caller distinguishes user errors
// (no face, multiple faces, below threshold) from configuration errors
// (reference unavailable).
var (
	ErrNoFace               = errors.New("no face detected in candidate photo")
	ErrMultipleFaces        = errors.New("multiple faces detected in candidate photo")
	ErrReferenceUnavailable = errors.New("reference photo missing or has no detectable face")
)

// Match is the outcome of a 1:1 verification.
type Match struct {
	Matched    bool
	Confidence float64
	Reason     string
}

// Verifier compares a candidate photo against the single stored reference
// photo. This is 1:1 verification, never 1:N identification.
type Verifier interface {
	Name() string
	Verify(ctx context.Context, candidate, reference []byte) (Match, error)
}
