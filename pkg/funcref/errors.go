package funcref

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCallableSpec signals a callable argument that is neither a
	// bare top-level function nor a sequence led by one.
	ErrInvalidCallableSpec = errors.New("invalid callable spec")
	// ErrUnresolvedReference signals a ref whose path/name pair is not
	// registered at the materialization site. This is a cross-process
	// configuration error: the worker binary lacks a Register call for the
	// function, and nothing local can recover it.
	ErrUnresolvedReference = errors.New("unresolved function reference")
)

type ErrInvalidCallable = error

func NewInvalidCallableSpecError(detail string) ErrInvalidCallable {
	return fmt.Errorf("%w: %s", ErrInvalidCallableSpec, detail)
}

type ErrUnresolved = error

func NewUnresolvedReferenceError(path, name string) ErrUnresolved {
	return fmt.Errorf("%w: %s.%s not registered at materialization site",
		ErrUnresolvedReference, path, name)
}
