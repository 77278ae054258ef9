// Package di is the root of the smartdi repository: a small dependency injection
// engine that wires named components into a fully-built object graph.
//
// The repository is organised as:
//
//   - di: the resolution engine (registry, type matching, singleton/transient policy,
//     recursive autowiring and circular dependency detection)
//   - cmd/discover: a code generator that turns //di: directives on struct types into
//     a discovery source the engine can scan
//   - examples/*: runnable wiring examples
//
// Start with the package documentation of di and the examples for end-to-end usage.
package di
