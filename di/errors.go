package di

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrAlreadyWired is returned when Autowire is invoked more than once on the
	// same Container.
	ErrAlreadyWired = errors.New("di: container already wired")

	// ErrNilType is returned when a nil *Type is scanned or when the zero Clue,
	// such as ByType(nil), is resolved.
	ErrNilType = errors.New("di: nil type")

	// ErrNotConstructible is returned when an abstract type (one defined without a
	// constructor) has to be instantiated.
	ErrNotConstructible = errors.New("di: type is not constructible")

	// ErrNilInstance is returned when a constructor yields a nil instance,
	// including a typed nil pointer, map, func or channel.
	ErrNilInstance = errors.New("di: constructor returned nil")
)

// DuplicateComponentError is returned when two registrations share a component name.
type DuplicateComponentError struct{ Name string }

// Error implements the error interface.
func (e DuplicateComponentError) Error() string {
	// Example: di: duplicate component name "logger"
	return "di: duplicate component name " + strconv.Quote(e.Name)
}

// ComponentNotResolvedError is returned when no registry entry matches a requested
// name or type.
type ComponentNotResolvedError struct{ Clue Clue }

// Error implements the error interface.
func (e ComponentNotResolvedError) Error() string {
	// Example: di: can not resolve component "service"
	return "di: can not resolve component " + e.Clue.String()
}

// AmbiguousComponentError is returned when more than one registered component's
// type matches a requested base type. Names lists every matched component so the
// caller can switch to a name-based lookup.
type AmbiguousComponentError struct {
	Type  string
	Names []string
}

// Error implements the error interface.
func (e AmbiguousComponentError) Error() string {
	// Example: di: multiple components found for type "Store": "mem", "redis"
	quoted := make([]string, len(e.Names))
	for i, n := range e.Names {
		quoted[i] = strconv.Quote(n)
	}
	return "di: multiple components found for type " + strconv.Quote(e.Type) + ": " + strings.Join(quoted, ", ")
}

// CircularDependencyError is returned when a construction chain revisits a
// component that is still being constructed.
type CircularDependencyError struct {
	Name string

	// Chain is the construction chain that led back to Name, outermost first.
	Chain []string
}

// Error implements the error interface.
func (e CircularDependencyError) Error() string {
	// Example: di: circular dependency detected for "a": a -> b -> a
	msg := "di: circular dependency detected for " + strconv.Quote(e.Name)
	if len(e.Chain) > 0 {
		msg += ": " + strings.Join(append(append([]string(nil), e.Chain...), e.Name), " -> ")
	}
	return msg
}

// ConstructError wraps an error returned by a component constructor.
type ConstructError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e ConstructError) Error() string {
	return "di: constructing " + strconv.Quote(e.Name) + ": " + e.Err.Error()
}

// Unwrap returns the constructor error.
func (e ConstructError) Unwrap() error { return e.Err }

// FieldError reports a failure to resolve or assign one autowire point.
type FieldError struct {
	Component string
	Field     string
	Err       error
}

// Error implements the error interface.
func (e FieldError) Error() string {
	// Example: di: autowiring "service".Log: di: can not resolve component "logger"
	return "di: autowiring " + strconv.Quote(e.Component) + "." + e.Field + ": " + e.Err.Error()
}

// Unwrap returns the underlying resolution or assignment error.
func (e FieldError) Unwrap() error { return e.Err }

// AssignError is returned when a resolved value can not be stored in an autowire
// field by reflection.
type AssignError struct {
	Field string

	// Target is the Go type of the instance being wired.
	Target string

	Reason string
}

// Error implements the error interface.
func (e AssignError) Error() string {
	// Example: di: can not set field "Log" of *mypkg.Service: field is unexported
	return "di: can not set field " + strconv.Quote(e.Field) + " of " + e.Target + ": " + e.Reason
}

// WrongTypeError is returned by the generic helpers when the resolved component is
// not of the requested Go type.
type WrongTypeError struct {
	Clue Clue

	// GotType is reflect.TypeOf(value).String() for the resolved value.
	GotType string

	// WantType is the requested Go type.
	WantType string
}

// Error implements the error interface.
func (e WrongTypeError) Error() string {
	// Example: di: component "db" has wrong type (*mypkg.Logger), want *mypkg.DB
	return "di: component " + e.Clue.String() + " has wrong type (" + e.GotType + "), want " + e.WantType
}

// NilComponentError is returned when a built-in component is registered with a nil
// instance.
type NilComponentError struct{ Name string }

// Error implements the error interface.
func (e NilComponentError) Error() string {
	return "di: nil instance for built-in component " + strconv.Quote(e.Name)
}

// ScanError wraps an error returned by a discovery Source.
type ScanError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e ScanError) Error() string {
	return "di: scan #" + strconv.Itoa(e.Index) + ": " + e.Err.Error()
}

// Unwrap returns the source error.
func (e ScanError) Unwrap() error { return e.Err }
