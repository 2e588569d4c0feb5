package convert

import (
	"errors"
	"fmt"
)

// ErrSpec signals an invalid plan document.
var ErrSpec = errors.New("invalid plan document")

type ErrParse = error

func NewParseError(err error) ErrParse {
	return fmt.Errorf("%w: %w", ErrSpec, err)
}

type ErrConvert = error

func NewSpecError(detail string) ErrConvert {
	return fmt.Errorf("%w: %s", ErrSpec, detail)
}

func NewSpecErrorAt(idx int, err error) ErrConvert {
	return fmt.Errorf("%w: op %d: %w", ErrSpec, idx, err)
}
