package dbmodel

import (
	"errors"
)

var (
	// ErrNotAStruct is returned when the converter prototype is not a struct or pointer to struct.
	ErrNotAStruct = errors.New("prototype must be a struct or a pointer to a struct")

	// ErrInvalidJoin is returned when a join names a field that is not a relationship.
	ErrInvalidJoin = errors.New("join does not name a relationship field")
)
