package di

import (
	"sort"

	"go.uber.org/zap"
)

// Source yields candidate types for discovery. Types without component metadata
// are ignored by Autowire.
type Source interface {
	Scan() ([]*Type, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() ([]*Type, error)

// Scan implements Source.
func (f SourceFunc) Scan() ([]*Type, error) { return f() }

// Types is a static Source.
type Types []*Type

// Scan implements Source.
func (t Types) Scan() ([]*Type, error) { return t, nil }

// AutowireOptions tells Autowire what to register.
type AutowireOptions struct {
	// Components are ready-made instances registered as singletons under their map
	// key.
	Components map[string]any

	// Scans are discovery sources, registered in order.
	Scans []Source

	// Config optionally overrides lifetimes and construction options of discovered
	// components by component name.
	Config *Config
}

// Autowire populates the registry and wires every singleton. It may be invoked once
// per Container; later calls fail with ErrAlreadyWired, even if the first failed.
//
// Steps:
//
//   - built-in Components are registered (sorted by name) as singletons
//   - every component type yielded by Scans is registered; singletons are
//     constructed with their default options, not yet wired
//   - the autowire points of every singleton are resolved with Get and assigned
//
// Any DuplicateComponentError, resolution or construction error aborts Autowire.
func (c *Container) Autowire(opts AutowireOptions) error {
	c.wireMu.Lock()
	defer c.wireMu.Unlock()

	if c.wired.Load() {
		return ErrAlreadyWired
	}
	c.wired.Store(true)

	if err := c.registerBuiltIns(opts.Components); err != nil {
		return err
	}
	for i, src := range opts.Scans {
		if err := c.registerScan(i, src, opts.Config); err != nil {
			return err
		}
	}
	if err := c.wireSingletons(); err != nil {
		return err
	}

	c.logger.Debug("autowire completed", zap.Int("components", c.registry.Len()))
	return nil
}

func (c *Container) registerBuiltIns(components map[string]any) error {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		instance := components[name]
		if instance == nil {
			return NilComponentError{Name: name}
		}

		entry := &Entry{Name: name, Singleton: instance, Origin: BuiltIn}
		if typed, ok := instance.(Typed); ok {
			entry.Type = typed.DIType()
		}
		if err := c.registry.Register(entry); err != nil {
			return err
		}
		c.logger.Debug("component registered",
			zap.String("component", name),
			zap.Stringer("origin", BuiltIn),
		)
	}
	return nil
}

func (c *Container) registerScan(index int, src Source, cfg *Config) error {
	types, err := src.Scan()
	if err != nil {
		return ScanError{Index: index, Err: err}
	}

	for _, t := range types {
		if t == nil {
			return ScanError{Index: index, Err: ErrNilType}
		}
		if !t.IsComponent() {
			continue
		}

		name := t.ComponentName()
		if c.registry.Has(name) {
			return DuplicateComponentError{Name: name}
		}

		lifetime, options := cfg.apply(name, t.Lifetime(), t.Options())
		entry := &Entry{Name: name, Type: t, Options: options, Origin: Discovered}
		if lifetime == Singleton {
			instance, err := t.New(options)
			if err != nil {
				return ConstructError{Name: name, Err: err}
			}
			entry.Singleton = instance
		}

		if err := c.registry.Register(entry); err != nil {
			return err
		}
		c.logger.Debug("component registered",
			zap.String("component", name),
			zap.String("type", t.Name()),
			zap.Stringer("origin", Discovered),
			zap.Stringer("lifetime", lifetime),
		)
	}
	return nil
}

// wireSingletons assigns the autowire points of every singleton. Each field is
// resolved by an independent Get; singletons referencing each other never recurse
// because Get returns a singleton without wiring it.
func (c *Container) wireSingletons() error {
	for _, entry := range c.registry.Entries() {
		if entry.Singleton == nil {
			continue
		}
		for _, spec := range autowireSpecs(entry.Singleton) {
			dep, err := c.Get(spec.Clue, spec.Options)
			if err != nil {
				return FieldError{Component: entry.Name, Field: spec.Field, Err: err}
			}
			if err := assignField(entry.Singleton, spec.Field, dep); err != nil {
				return FieldError{Component: entry.Name, Field: spec.Field, Err: err}
			}
		}
	}
	return nil
}
