package structproxy

import (
	"fmt"
	"reflect"
)

const noMethod = -1

// BindingError is the failure to satisfy a structural shape with a
// concrete type.  It is a distinct type so supervising code can classify
// binding failures apart from ordinary hook faults.
type BindingError struct {
	// Shape is the name of the shape that could not be bound.
	Shape string

	// Type is the concrete runtime type that failed to satisfy the shape.
	Type reflect.Type

	// Reason describes the offending member.
	Reason string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("structural shape %q cannot bind to %s: %s", e.Shape, e.Type, e.Reason)
}

// accessor is the resolved access path for one shape member against a
// concrete type:  either a struct field index path or a zero-argument
// getter method.
type accessor struct {
	member Member
	field  []int
	getter int
}

// binding is the cached accessor set for one (shape, concrete type) pair.
// Bindings are immutable after creation and hold no per-call data, so a
// single binding is shared by every caller matching that pair.
type binding struct {
	shape     *Shape
	typ       reflect.Type
	accessors map[string]accessor
}

// structOf unwraps pointer types down to the underlying struct type, if any.
func structOf(typ reflect.Type) (reflect.Type, bool) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	return typ, typ.Kind() == reflect.Struct
}

// newBinding resolves each declared member of the shape against the
// concrete type's fields and methods.  Any member that cannot be
// satisfied fails the whole binding with an error naming the shape,
// the concrete type, and the offending member.  Nothing is ever
// silently defaulted.
func newBinding(shape *Shape, typ reflect.Type) (*binding, error) {
	structType, isStruct := structOf(typ)
	b := &binding{
		shape:     shape,
		typ:       typ,
		accessors: make(map[string]accessor, len(shape.members)),
	}

	for _, m := range shape.members {
		a, err := resolveMember(shape, typ, structType, isStruct, m)
		if err != nil {
			return nil, err
		}

		b.accessors[m.Name] = a
	}

	return b, nil
}

func resolveMember(shape *Shape, typ, structType reflect.Type, isStruct bool, m Member) (accessor, error) {
	fail := func(format string, args ...interface{}) (accessor, error) {
		return accessor{}, &BindingError{
			Shape:  shape.name,
			Type:   typ,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	if isStruct {
		if field, ok := structType.FieldByName(m.Name); ok && field.IsExported() {
			if !field.Type.AssignableTo(m.Type) {
				return fail("member %q has type %s, shape declares %s", m.Name, field.Type, m.Type)
			}

			if m.Writable {
				if typ.Kind() != reflect.Ptr {
					return fail("writable member %q requires a pointer type", m.Name)
				}

				if !m.Type.AssignableTo(field.Type) {
					return fail("member %q of type %s cannot accept writes of %s", m.Name, field.Type, m.Type)
				}
			}

			return accessor{member: m, field: field.Index, getter: noMethod}, nil
		}
	}

	// no field: a zero-argument, single-result method acts as a
	// read-only property getter
	if method, ok := typ.MethodByName(m.Name); ok && !m.Writable {
		if method.Type.NumIn() == 1 && method.Type.NumOut() == 1 && method.Type.Out(0).AssignableTo(m.Type) {
			return accessor{member: m, getter: method.Index}, nil
		}

		return fail("method %q does not match getter signature for %s", m.Name, m.Type)
	}

	return fail("no member %q", m.Name)
}

// read extracts the member's current value from the given instance.
func (a accessor) read(instance reflect.Value) interface{} {
	if a.getter != noMethod {
		return instance.Method(a.getter).Call(nil)[0].Interface()
	}

	for instance.Kind() == reflect.Ptr {
		instance = instance.Elem()
	}

	return instance.FieldByIndex(a.field).Interface()
}

// write assigns the member on the given instance, which the binding has
// already verified to be a pointer to struct.  A nil value clears the
// member to its zero value.
func (a accessor) write(instance reflect.Value, value interface{}) error {
	for instance.Kind() == reflect.Ptr {
		instance = instance.Elem()
	}

	field := instance.FieldByIndex(a.field)
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("value of type %s is not assignable to member %q of type %s",
			v.Type(), a.member.Name, field.Type())
	}

	field.Set(v)
	return nil
}
