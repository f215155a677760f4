package observable

import (
	"errors"
)

var (
	// ErrIndexOutOfRange is returned when an index-based access or removal names an invalid position.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrItemNotFound is returned when removal by value finds no matching item.
	ErrItemNotFound = errors.New("item not found")

	// ErrKeyNotFound is returned when a key-based removal names an absent key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmptyContainer is returned when an arbitrary-element removal is attempted on an empty container.
	ErrEmptyContainer = errors.New("container is empty")

	// ErrInvalidObserver is returned when a zero-value or nil-func observer is registered.
	ErrInvalidObserver = errors.New("observer has no callback, use OnChange, OnNewValue or OnTransition")

	// ErrNilLogger is returned when a nil logger is supplied via an option.
	ErrNilLogger = errors.New("nil logger supplied")
)
