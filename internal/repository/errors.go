package repository

import "errors"

// ErrDuplicate is returned when a profile already owns an item with the same term.
var ErrDuplicate = errors.New("duplicate vocabulary term")
