package di

import "strconv"

// Clue is the lookup key for a resolution: either a component name or a type token.
//
// Build one with ByName or ByType. The zero Clue, which is also what ByName("")
// and ByType(nil) produce, fails resolution with ErrNilType.
type Clue struct {
	name string
	typ  *Type
}

// ByName returns a clue that looks a component up by its registered name.
func ByName(name string) Clue { return Clue{name: name} }

// ByType returns a clue that looks a component up by type: first by the type's own
// name, then by scanning for the single component whose type is t or a subtype of it.
func ByType(t *Type) Clue { return Clue{typ: t} }

// Type returns the type token for type clues, or nil for name clues.
func (c Clue) Type() *Type { return c.typ }

// IsType reports whether the clue is a type clue.
func (c Clue) IsType() bool { return c.typ != nil }

// Key returns the resolution key: the name for name clues, the type's own name for
// type clues.
func (c Clue) Key() string {
	if c.typ != nil {
		return c.typ.Name()
	}
	return c.name
}

// String returns a human-readable form: "name" or type "Name".
func (c Clue) String() string {
	if c.typ != nil {
		return "type " + strconv.Quote(c.typ.Name())
	}
	return strconv.Quote(c.name)
}
