package cache

import "errors"

// ErrInvalidConfiguration is returned by New when capacity is not positive.
var ErrInvalidConfiguration = errors.New("cache: capacity must be greater than 0")

// ErrSnapshotIO is returned by SaveSnapshot when the sink cannot be opened
// or a write fails. It is also the error logged (never raised) on a
// failed auto-save during Close.
var ErrSnapshotIO = errors.New("cache: snapshot io error")

// ErrNoLoader is returned by GetOrLoad when no loader function is supplied
// and the key is absent.
var ErrNoLoader = errors.New("cache: no loader provided")
