package stations

import (
	"errors"
	"fmt"
)

// ErrInputFormat is matched by every InputFormatError.
var ErrInputFormat = errors.New("input format error")

// InputFormatError reports a malformed or incomplete station record.
// Row is 1-based; zero means the error is not tied to a single row.
type InputFormatError struct {
	Row    int
	Field  string
	Reason string
}

func (e *InputFormatError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputFormatError) Is(target error) bool {
	return target == ErrInputFormat
}

func formatError(row int, field, format string, args ...any) error {
	return &InputFormatError{Row: row, Field: field, Reason: fmt.Sprintf(format, args...)}
}
