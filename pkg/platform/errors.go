package platform

import "github.com/cockroachdb/errors"

// Sentinel errors for platform operations.
var (
	// ErrDisposed is returned when operating on a disposed element.
	ErrDisposed = errors.New("platform: element disposed")

	// ErrSourceAttached is returned when a media element already has a source.
	ErrSourceAttached = errors.New("platform: source already attached")
)
