package repositories

import "errors"

// ErrNotFound is wrapped by every repository when an identifier does not
// resolve to a stored document.
var ErrNotFound = errors.New("not found")
