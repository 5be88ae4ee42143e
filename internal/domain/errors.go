package domain

import (
	"errors"
	"fmt"
)

// ErrUsage is the parent of every invalid-argument error raised by the query engine
var ErrUsage = errors.New("usage error")

var (
	ErrInvalidBucket     = fmt.Errorf("%w: maturity value must be either one of s, m or l", ErrUsage)
	ErrInvalidSortKey    = fmt.Errorf("%w: sort must be one of length, maturity, score, yield or risk", ErrUsage)
	ErrInvalidDirection  = fmt.Errorf("%w: direction must be asc or desc", ErrUsage)
	ErrInvalidGrade      = fmt.Errorf("%w: grade must be investment or high-yield", ErrUsage)
	ErrInvalidOutputMode = fmt.Errorf("%w: output must be one of table, ticker or company", ErrUsage)
)

// FormatError reports a raw field that could not be parsed into its typed form
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
