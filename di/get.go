package di

import "reflect"

// Get resolves clue and returns it typed as T.
//
// It returns the resolution error from Container.Get, or WrongTypeError if the
// component is not a T.
func Get[T any](c *Container, clue Clue, opts Options) (T, error) {
	var zero T

	raw, err := c.Get(clue, opts)
	if err != nil {
		return zero, err
	}
	v, ok := raw.(T)
	if !ok {
		return zero, WrongTypeError{
			Clue:     clue,
			GotType:  reflect.TypeOf(raw).String(),
			WantType: reflect.TypeOf((*T)(nil)).Elem().String(),
		}
	}
	return v, nil
}

// GetNamed resolves the component registered under name with default options.
//
//	svc, err := di.GetNamed[*Service](c, "service")
func GetNamed[T any](c *Container, name string) (T, error) {
	return Get[T](c, ByName(name), nil)
}

// GetByType resolves the single component of type t (or a subtype) with default
// options.
func GetByType[T any](c *Container, t *Type) (T, error) {
	return Get[T](c, ByType(t), nil)
}

// MustGet is like Get but panics on error.
func MustGet[T any](c *Container, clue Clue, opts Options) T {
	v, err := Get[T](c, clue, opts)
	if err != nil {
		panic(err)
	}
	return v
}
