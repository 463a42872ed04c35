package steps

import "errors"

var (
	// ErrInsufficientSpace is returned by the capacity check when the
	// approved directories do not fit in the available free space.
	ErrInsufficientSpace = errors.New("insufficient space")

	// ErrAlreadyRelocated is returned when the source of a relocation is
	// already a symbolic link, meaning a previous run moved it.
	ErrAlreadyRelocated = errors.New("directory already relocated")
)
