package store

import "errors"

// ErrNotFound reports that no row matched the requested id or tracking id.
var ErrNotFound = errors.New("store: not found")

// ErrTrackingTaken reports that another document already carries the
// requested tracking id.
var ErrTrackingTaken = errors.New("store: tracking id already assigned")
