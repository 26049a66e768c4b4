package dbfixtures

import (
	"context"
	"fmt"

	"github.com/kbukum/dbfixtures/errors"
)

// Driver is the capability every backend implements.
type Driver interface {
	// Truncate wipes all data stored under each name. Names without data
	// are not an error.
	Truncate(ctx context.Context, names []string) error

	// InsertFixtures writes fixtures under name. An empty slice issues no
	// backend call.
	InsertFixtures(ctx context.Context, name string, fixtures []any) error

	// Close releases every resource owned by the driver.
	Close() error
}

// TypedDriver is a driver whose fixture payload type is fixed per instance.
// Use Adapt to register one with DbFixtures.
type TypedDriver[T any] interface {
	Truncate(ctx context.Context, names []string) error
	Insert(ctx context.Context, name string, fixtures []T) error
	Close() error
}

// Adapt exposes a TypedDriver as a Driver. Each fixture must be a T or a
// non-nil *T; anything else fails before the backend is touched.
func Adapt[T any](d TypedDriver[T]) Driver {
	return &typedAdapter[T]{driver: d}
}

type typedAdapter[T any] struct {
	driver TypedDriver[T]
}

func (a *typedAdapter[T]) Truncate(ctx context.Context, names []string) error {
	return a.driver.Truncate(ctx, names)
}

func (a *typedAdapter[T]) InsertFixtures(ctx context.Context, name string, fixtures []any) error {
	if len(fixtures) == 0 {
		return nil
	}
	typed, err := CastFixtures[T](name, fixtures)
	if err != nil {
		return err
	}
	return a.driver.Insert(ctx, name, typed)
}

func (a *typedAdapter[T]) Close() error {
	return a.driver.Close()
}

// Name reports the adapted driver's name, or its type when it has none.
func (a *typedAdapter[T]) Name() string {
	if n, ok := a.driver.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", a.driver)
}

// Unwrap returns the adapted driver.
func (a *typedAdapter[T]) Unwrap() TypedDriver[T] {
	return a.driver
}

// CastFixtures converts untyped fixtures for name into []T.
func CastFixtures[T any](name string, fixtures []any) ([]T, error) {
	typed := make([]T, 0, len(fixtures))
	for i, f := range fixtures {
		switch v := f.(type) {
		case T:
			typed = append(typed, v)
		case *T:
			if v == nil {
				return nil, errors.InvalidFixture(name, i, "nil pointer")
			}
			typed = append(typed, *v)
		default:
			var zero T
			return nil, errors.InvalidFixture(name, i, fmt.Sprintf("expected %T, got %T", zero, f))
		}
	}
	return typed, nil
}
