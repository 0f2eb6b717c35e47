// Package options implements generic functional options.
package options

import (
	"errors"
	"fmt"

	"github.com/istem/hashpack/errs"
)

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func is an Option backed by a function.
type Func[T any] struct {
	name      string
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// Name returns the label the option was created with.
func (f *Func[T]) Name() string {
	return f.name
}

// New creates an option from a function that may reject its argument.
// The name labels errors returned by Apply.
func New[T any](name string, fn func(T) error) *Func[T] {
	return &Func[T]{name: name, applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](name string, fn func(T)) *Func[T] {
	return &Func[T]{
		name: name,
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first failure.
//
// Nil options are skipped. Errors are wrapped with errs.ErrInvalidConfig unless
// they already match it.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt.apply(target)
		if err == nil {
			continue
		}

		name := "option"
		if named, ok := opt.(interface{ Name() string }); ok && named.Name() != "" {
			name = named.Name()
		}
		if errors.Is(err, errs.ErrInvalidConfig) {
			return fmt.Errorf("%s: %w", name, err)
		}

		return fmt.Errorf("%w: %s: %w", errs.ErrInvalidConfig, name, err)
	}

	return nil
}
