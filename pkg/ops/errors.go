package ops

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrArityMismatch signals paired operator arguments of unequal length.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrInvalidParameter signals an operator parameter outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidLiteral signals an inserted value that is not a plain
	// serializable literal.
	ErrInvalidLiteral = errors.New("invalid literal")
)

type ErrArity = error

func NewArityMismatchError(op string, want, got int) ErrArity {
	return fmt.Errorf("%w in %s: %d fields vs %d values", ErrArityMismatch, op, want, got)
}

type ErrParameter = error

func NewInvalidParameterError(op, detail string) ErrParameter {
	return fmt.Errorf("%w in %s: %s", ErrInvalidParameter, op, detail)
}

func checkLiteral(v any) error {
	if _, err := json.Marshal(v); err != nil {
		return fmt.Errorf("%w: %v: %v", ErrInvalidLiteral, v, err)
	}
	return nil
}
