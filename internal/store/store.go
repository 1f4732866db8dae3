// Package store holds the error contract shared by every record-store
// implementation (PostgreSQL, MongoDB). Repositories wrap backend failures in
// these sentinels so the application layer stays store-agnostic.
package store

import "errors"

// ErrUnavailable means the record store could not be reached or the
// operation failed for a non-domain reason. Surfaced as a server error;
// the core never retries on its own. Not-found conditions stay with each
// context's own sentinel.
var ErrUnavailable = errors.New("record store unavailable")
