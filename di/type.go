package di

import "reflect"

// Options is an opaque bag of construction options handed to a component
// constructor.
type Options map[string]any

// Constructor builds a new instance of a component from construction options.
type Constructor func(opts Options) (any, error)

// Func adapts an infallible constructor to a Constructor.
func Func[T any](fn func(Options) T) Constructor {
	return func(opts Options) (any, error) {
		return fn(opts), nil
	}
}

// FuncE adapts a fallible constructor to a Constructor.
func FuncE[T any](fn func(Options) (T, error)) Constructor {
	return func(opts Options) (any, error) {
		v, err := fn(opts)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Type is a nominal type token.
//
// Identity is pointer identity: two tokens with the same name are different types.
// A Type optionally extends a single parent (the declared "is-a" relation), may carry
// a constructor, and may carry component declaration metadata (name, lifetime and
// default construction options).
//
// Types are immutable after DefineType returns.
type Type struct {
	name   string
	parent *Type
	ctor   Constructor

	component     bool
	componentName string
	lifetime      Lifetime
	options       Options
}

// TypeOption configures a Type during DefineType.
type TypeOption func(*Type)

// Extends declares parent as the direct supertype.
func Extends(parent *Type) TypeOption {
	return func(t *Type) { t.parent = parent }
}

// Component marks the type as a component using its own name and the default
// Singleton lifetime.
func Component() TypeOption {
	return func(t *Type) { t.component = true }
}

// Named marks the type as a component registered under name.
func Named(name string) TypeOption {
	return func(t *Type) {
		t.component = true
		t.componentName = name
	}
}

// WithLifetime marks the type as a component with the given Lifetime.
func WithLifetime(l Lifetime) TypeOption {
	return func(t *Type) {
		t.component = true
		t.lifetime = l
	}
}

// WithOptions marks the type as a component and sets its default construction
// options.
func WithOptions(opts Options) TypeOption {
	return func(t *Type) {
		t.component = true
		t.options = opts
	}
}

// DefineType creates a new nominal type token.
//
// ctor may be nil for abstract types; such types can still be used as clues and as
// parents, but resolving one that is registered as a component fails with
// ErrNotConstructible.
func DefineType(name string, ctor Constructor, opts ...TypeOption) *Type {
	t := &Type{name: name, ctor: ctor}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the type's own identifier.
func (t *Type) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

// Parent returns the declared supertype, or nil.
func (t *Type) Parent() *Type { return t.parent }

// IsComponent reports whether the type carries component declaration metadata.
func (t *Type) IsComponent() bool { return t != nil && t.component }

// ComponentName returns the declared component name, falling back to Name.
func (t *Type) ComponentName() string {
	if t.componentName != "" {
		return t.componentName
	}
	return t.name
}

// Lifetime returns the declared component lifetime.
func (t *Type) Lifetime() Lifetime { return t.lifetime }

// Options returns the declared default construction options (may be nil).
func (t *Type) Options() Options { return t.options }

// Constructible reports whether the type has a constructor.
func (t *Type) Constructible() bool { return t != nil && t.ctor != nil }

// New constructs a new instance with opts.
func (t *Type) New(opts Options) (any, error) {
	if !t.Constructible() {
		return nil, ErrNotConstructible
	}
	v, err := t.ctor(opts)
	if err != nil {
		return nil, err
	}
	if isNil(v) {
		return nil, ErrNilInstance
	}
	return v, nil
}

// isNil also catches typed nils such as a (*T)(nil) stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// IsSubtypeOf reports whether t is base or declares base somewhere up its parent
// chain. Only declared inheritance counts.
func (t *Type) IsSubtypeOf(base *Type) bool {
	if base == nil {
		return false
	}
	for cur := t; cur != nil; cur = cur.parent {
		if cur == base {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (t *Type) String() string { return t.Name() }

// Typed is implemented by built-in instances that want to take part in type-based
// lookups.
type Typed interface {
	DIType() *Type
}
