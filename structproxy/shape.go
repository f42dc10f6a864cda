package structproxy

import "reflect"

// Member declares one expected member of a structural shape:  an exact,
// case-sensitive name together with the type the integration expects to
// read.  A Writable member additionally supports assignment through a
// view proxy.
type Member struct {
	Name     string
	Type     reflect.Type
	Writable bool
}

// MemberOf builds a read-only Member whose declared type is T.  It exists
// so shape tables can declare pointer and interface member types without
// the reflect.TypeOf((*T)(nil)).Elem() incantation.
func MemberOf[T any](name string) Member {
	return Member{
		Name: name,
		Type: reflect.TypeOf((*T)(nil)).Elem(),
	}
}

// Shape is a declared set of members an integration expects from some
// unknown concrete type.  Shapes are stateless descriptors, created once
// as package variables and shared by every proxy of that shape.  Shape
// identity is pointer identity; the proxy cache keys on it.
type Shape struct {
	name    string
	members []Member
}

// NewShape constructs a Shape.  Shapes are static declarations, so a
// nameless or empty shape is a programming error and panics.
func NewShape(name string, members ...Member) *Shape {
	if len(name) == 0 {
		panic("a structural shape requires a name")
	}

	if len(members) == 0 {
		panic("a structural shape requires at least one member")
	}

	for _, m := range members {
		if len(m.Name) == 0 || m.Type == nil {
			panic("every shape member requires a name and a type")
		}
	}

	return &Shape{
		name:    name,
		members: members,
	}
}

// Name is the diagnostic name of this shape, used in binding errors.
func (s *Shape) Name() string {
	return s.name
}

// Members returns the declared members.  Callers must not modify the
// returned slice.
func (s *Shape) Members() []Member {
	return s.members
}
