package di

import (
	"fmt"
	"strings"
)

// Lifetime controls how many instances of a component the container creates.
type Lifetime int

const (
	// Singleton is the default lifetime. The component is constructed once during
	// Container.Autowire and the same instance is returned by every resolution.
	Singleton Lifetime = iota

	// Transient means a new, independently wired instance is constructed on every
	// resolution.
	Transient
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// ParseLifetime parses "singleton" or "transient" (case-insensitive).
func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "singleton":
		return Singleton, nil
	case "transient":
		return Transient, nil
	default:
		return Singleton, fmt.Errorf("di: unknown lifetime %q", s)
	}
}
