package di

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Container is a dependency injection engine instance.
//
// A Container is wired exactly once with Autowire, from a single goroutine. After
// Autowire returns, Get may be called concurrently: the registry is read-only and
// the resolved cache is guarded by its own lock.
type Container struct {
	registry *Registry

	resolvedMu sync.RWMutex
	resolved   map[string]*Entry

	wireMu sync.Mutex
	wired  atomic.Bool

	logger *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for debug events. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an empty, unwired Container.
func New(opts ...Option) *Container {
	c := &Container{
		registry: NewRegistry(),
		resolved: map[string]*Entry{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wired reports whether Autowire has been invoked.
func (c *Container) Wired() bool { return c.wired.Load() }

// Has reports whether a component is registered under name.
func (c *Container) Has(name string) bool { return c.registry.Has(name) }

// Entries returns a snapshot of all registry entries in registration order.
func (c *Container) Entries() []Entry {
	out := make([]Entry, 0, c.registry.Len())
	for _, e := range c.registry.Entries() {
		out = append(out, *e)
	}
	return out
}

// Get resolves clue to a component instance.
//
// Singletons are returned as-is. Transient components are constructed with opts, or
// with their default construction options when opts is nil, and their autowire
// points are resolved recursively. Get fails with ComponentNotResolvedError,
// AmbiguousComponentError or CircularDependencyError (possibly wrapped in
// FieldError); a failed Get leaves previously cached state intact.
func (c *Container) Get(clue Clue, opts Options) (any, error) {
	return c.get(clue, opts, nil)
}

func (c *Container) get(clue Clue, opts Options, guard *cycleGuard) (any, error) {
	entry, err := c.lookup(clue)
	if err != nil {
		return nil, err
	}

	if entry.Singleton != nil {
		return entry.Singleton, nil
	}

	if opts == nil {
		opts = entry.Options
	}
	instance, err := entry.Type.New(opts)
	if err != nil {
		return nil, ConstructError{Name: entry.Name, Err: err}
	}

	specs := autowireSpecs(instance)
	if len(specs) == 0 {
		return instance, nil
	}

	if guard == nil {
		guard = newCycleGuard()
	}
	if err := guard.enter(entry.Name); err != nil {
		return nil, err
	}
	defer guard.leave(entry.Name)

	if err := c.inject(entry.Name, instance, specs, guard); err != nil {
		return nil, err
	}
	return instance, nil
}

// lookup finds the entry for clue: resolved cache, then registry by name, then type
// matching. The result is cached under the clue's key.
func (c *Container) lookup(clue Clue) (*Entry, error) {
	if clue == (Clue{}) {
		return nil, ErrNilType
	}
	key := clue.Key()

	c.resolvedMu.RLock()
	entry, ok := c.resolved[key]
	c.resolvedMu.RUnlock()
	if ok {
		return entry, nil
	}

	via := "registry"
	entry, ok = c.registry.Lookup(key)
	if !ok && clue.IsType() {
		matched, err := c.registry.MatchType(clue.Type())
		if err != nil {
			return nil, err
		}
		entry, ok = matched, matched != nil
		via = "type"
	}
	if !ok {
		return nil, ComponentNotResolvedError{Clue: clue}
	}

	c.resolvedMu.Lock()
	c.resolved[key] = entry
	c.resolvedMu.Unlock()

	c.logger.Debug("component resolved",
		zap.String("key", key),
		zap.String("component", entry.Name),
		zap.String("via", via),
	)
	return entry, nil
}

// inject resolves every autowire point with the shared guard and assigns the results.
func (c *Container) inject(name string, instance any, specs []fieldSpec, guard *cycleGuard) error {
	for _, spec := range specs {
		dep, err := c.get(spec.Clue, spec.Options, guard)
		if err != nil {
			return FieldError{Component: name, Field: spec.Field, Err: err}
		}
		if err := assignField(instance, spec.Field, dep); err != nil {
			return FieldError{Component: name, Field: spec.Field, Err: err}
		}
	}
	return nil
}
