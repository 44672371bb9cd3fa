package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnOutOfRange is returned when a command names a column the widget does not have.
	ErrColumnOutOfRange = errors.New("column out of range")

	// ErrUnknownOption is returned when a toggle names a value or date node that is not indexed.
	ErrUnknownOption = errors.New("unknown option")

	// ErrNotDateColumn is returned when a date-only command targets a categorical column.
	ErrNotDateColumn = errors.New("not a date column")

	// ErrUnknownCommand is returned for unrecognised command ops or textual commands.
	ErrUnknownCommand = errors.New("unknown command")
)

// CommandError wraps a failure of a single widget command.
type CommandError struct {
	Op     Op
	Column int
	Err    error
}

func (e *CommandError) Error() string {
	if e.Column >= 0 {
		return fmt.Sprintf("%s column %d: %v", e.Op, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
