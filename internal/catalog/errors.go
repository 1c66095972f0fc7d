package catalog

import (
	"errors"
	"fmt"
)

// Catalog errors.
var (
	// ErrNotFound is returned when a game or view entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrIndexOutOfRange is returned by index accessors when the view has
	// shrunk since it was rendered.
	ErrIndexOutOfRange = fmt.Errorf("index out of range: %w", ErrNotFound)
	// ErrMalformedInput is returned for input that cannot be applied, such
	// as an unparseable rating or an empty query.
	ErrMalformedInput = errors.New("malformed input")
)
