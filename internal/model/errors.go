package model

import "errors"

var (
	// ErrInvalidBlock is returned when a block has no points or uses a reserved name.
	ErrInvalidBlock = errors.New("invalid block")

	// ErrDuplicateName is returned when two blocks share the same name.
	ErrDuplicateName = errors.New("duplicate block name")

	// ErrEmptyInput is returned when fitting is requested for zero blocks.
	ErrEmptyInput = errors.New("no blocks were given")

	// ErrTooManyPoints is returned when the blocks hold more points than the grid has cells.
	ErrTooManyPoints = errors.New("the blocks are too big to fit the grid")

	// ErrInvalidGridSize is returned for a grid side length below one.
	ErrInvalidGridSize = errors.New("invalid grid size")
)
