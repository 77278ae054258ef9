package di

// Origin records where a registry entry came from. It is informational only.
type Origin int

const (
	// BuiltIn entries are ready-made instances supplied to Autowire.
	BuiltIn Origin = iota

	// Discovered entries come from component types yielded by a Source.
	Discovered
)

// String returns the human-readable name of the origin.
func (o Origin) String() string {
	switch o {
	case BuiltIn:
		return "built-in"
	case Discovered:
		return "discovered"
	default:
		return "unknown"
	}
}

// Entry is one declared component.
//
// Type is nil for built-in instances that do not implement Typed. Singleton holds
// the shared instance for singleton components and is nil for transient ones.
type Entry struct {
	Name      string
	Type      *Type
	Options   Options
	Singleton any
	Origin    Origin
}

// IsSingleton reports whether the entry always returns the same instance.
func (e *Entry) IsSingleton() bool { return e.Singleton != nil }

// Registry maps component names to entries.
//
// It is append-only while a Container is being wired and read-only afterwards, so
// it carries no lock of its own.
type Registry struct {
	entries map[string]*Entry
	order   []*Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]*Entry{}}
}

// Register inserts e, failing with DuplicateComponentError if the name is taken.
func (r *Registry) Register(e *Entry) error {
	if _, exists := r.entries[e.Name]; exists {
		return DuplicateComponentError{Name: e.Name}
	}
	r.entries[e.Name] = e
	r.order = append(r.order, e)
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Entries returns all entries in registration order. The slice is shared; callers
// must not modify it.
func (r *Registry) Entries() []*Entry { return r.order }

// Len returns the number of registered entries.
func (r *Registry) Len() int { return len(r.order) }

// MatchType returns the single entry whose type is t or a declared subtype of t.
//
// It returns (nil, nil) when nothing matches and AmbiguousComponentError when more
// than one entry matches. Entries without a type (plain built-ins) never match.
func (r *Registry) MatchType(t *Type) (*Entry, error) {
	if t == nil {
		return nil, ErrNilType
	}

	var (
		matched []string
		found   *Entry
	)
	for _, e := range r.order {
		if e.Type == nil || !e.Type.IsSubtypeOf(t) {
			continue
		}
		matched = append(matched, e.Name)
		found = e
	}

	if len(matched) > 1 {
		return nil, AmbiguousComponentError{Type: t.Name(), Names: matched}
	}
	return found, nil
}
