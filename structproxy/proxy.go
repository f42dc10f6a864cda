package structproxy

import (
	"fmt"
	"reflect"
)

// Proxy is a live view over a concrete instance through a structural
// shape.  Every Get and Set calls through to the underlying instance,
// so mutations made elsewhere are visible and writes take effect on
// the real object.  A Proxy retains a reference to its instance; use
// a Snapshot when the source must not be retained.
type Proxy struct {
	binding  *binding
	instance reflect.Value
}

// Shape returns the shape this proxy was created for.
func (p *Proxy) Shape() *Shape {
	return p.binding.shape
}

// Get reads the named member from the underlying instance.
func (p *Proxy) Get(member string) (interface{}, error) {
	a, ok := p.binding.accessors[member]
	if !ok {
		return nil, fmt.Errorf("shape %q declares no member %q", p.binding.shape.name, member)
	}

	return a.read(p.instance), nil
}

// Set writes the named member on the underlying instance.  The member
// must have been declared Writable in the shape.
func (p *Proxy) Set(member string, value interface{}) error {
	a, ok := p.binding.accessors[member]
	if !ok {
		return fmt.Errorf("shape %q declares no member %q", p.binding.shape.name, member)
	}

	if !a.member.Writable {
		return fmt.Errorf("member %q of shape %q is not writable", member, p.binding.shape.name)
	}

	return a.write(p.instance, value)
}

// Snapshot is a one-time, by-value copy of every declared member, taken
// at creation.  It holds no reference to the source object and is meant
// for small, read-mostly value shapes captured cheaply at hook time.
type Snapshot struct {
	shape  *Shape
	values map[string]interface{}
}

// Shape returns the shape this snapshot was created for.
func (s *Snapshot) Shape() *Shape {
	return s.shape
}

// Get returns the member value captured at snapshot creation.  The bool
// result is false only for member names the shape does not declare.
func (s *Snapshot) Get(member string) (interface{}, bool) {
	value, ok := s.values[member]
	return value, ok
}

func newSnapshot(b *binding, instance reflect.Value) *Snapshot {
	s := &Snapshot{
		shape:  b.shape,
		values: make(map[string]interface{}, len(b.accessors)),
	}

	for name, a := range b.accessors {
		s.values[name] = a.read(instance)
	}

	return s
}
