package repositories

import "errors"

// ErrNotFound is returned (wrapped) by every repository when the requested
// record does not exist, so services can translate it without depending on
// the storage driver.
var ErrNotFound = errors.New("record not found")
