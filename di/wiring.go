package di

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// TagName is the struct tag key used to declare name-based autowire points:
//
//	type Service struct {
//		Log *zap.Logger `di:"logger"`
//	}
const TagName = "di"

// Autowire describes one injection point: what to resolve and, if the resolved
// component is transient, which options to construct it with.
type Autowire struct {
	Clue    Clue
	Options Options
}

// Wiring maps field names to their autowire points.
type Wiring map[string]Autowire

// Wired is implemented by components that declare autowire points explicitly.
// Declarations returned by Wiring override struct tags for the same field.
type Wired interface {
	Wiring() Wiring
}

// FieldSetter is implemented by components that assign injected values themselves
// instead of having exported fields set through reflection.
type FieldSetter interface {
	SetField(name string, value any) error
}

// fieldSpec is an Autowire bound to its field, in processing order.
type fieldSpec struct {
	Field string
	Autowire
}

// autowireSpecs collects the autowire points declared on instance, sorted by field
// name. It returns nil when the instance declares none.
func autowireSpecs(instance any) []fieldSpec {
	merged := Wiring{}

	if rv := reflect.ValueOf(instance); rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		rt := rv.Elem().Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			tag := strings.TrimSpace(field.Tag.Get(TagName))
			if tag == "" || tag == "-" {
				continue
			}
			merged[field.Name] = Autowire{Clue: ByName(tag)}
		}
	}

	if w, ok := instance.(Wired); ok {
		for field, aw := range w.Wiring() {
			merged[field] = aw
		}
	}

	if len(merged) == 0 {
		return nil
	}

	specs := make([]fieldSpec, 0, len(merged))
	for field, aw := range merged {
		specs = append(specs, fieldSpec{Field: field, Autowire: aw})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Field < specs[j].Field })
	return specs
}

// assignField stores value into the named field of instance.
func assignField(instance any, field string, value any) error {
	if setter, ok := instance.(FieldSetter); ok {
		return setter.SetField(field, value)
	}

	fail := func(reason string) error {
		return AssignError{Field: field, Target: fmt.Sprintf("%T", instance), Reason: reason}
	}

	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fail("instance is not a struct pointer")
	}

	target := rv.Elem().FieldByName(field)
	if !target.IsValid() {
		return fail("no such field")
	}
	if !target.CanSet() {
		return fail("field is unexported")
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fail("value is nil")
	}
	if !val.Type().AssignableTo(target.Type()) {
		return fail(val.Type().String() + " is not assignable to " + target.Type().String())
	}
	target.Set(val)
	return nil
}
