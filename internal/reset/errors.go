package reset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument matches every request rejected before any side effect.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError lists what was wrong with a reset request.
type InvalidArgumentError struct {
	Unsupported   []string
	Supported     []string
	InvalidTables []string
}

func (e *InvalidArgumentError) Error() string {
	var lines []string
	if len(e.Unsupported) > 0 {
		lines = append(lines,
			fmt.Sprintf("The following requested entities are not supported: %s.", strings.Join(e.Unsupported, ", ")),
			"Supported types: "+strings.Join(e.Supported, ", "),
		)
	}
	if len(e.InvalidTables) > 0 {
		lines = append(lines, fmt.Sprintf("The following extra tables are not valid table names: %s.", strings.Join(e.InvalidTables, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }
