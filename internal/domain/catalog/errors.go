package catalog

import "errors"

// ErrDuplicateID is returned when two events share an id.
var ErrDuplicateID = errors.New("duplicate event id")
