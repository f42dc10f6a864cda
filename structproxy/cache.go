package structproxy

import (
	"errors"
	"reflect"
	"sync"
)

var (
	// ErrNilInstance occurs when a proxy is requested over a nil
	// instance, whether an untyped nil or a typed nil pointer.
	ErrNilInstance = errors.New("cannot proxy a nil instance")
)

type bindingKey struct {
	shape *Shape
	typ   reflect.Type
}

// Cache generates and retains one binding per (shape, concrete type)
// pair.  Entries are immutable, reads are lock-free, and a race to build
// the same binding retains exactly one result:  losers of the race have
// their freshly built binding discarded, never merged.  Failed bindings
// are not cached, so a transiently requested bad pairing costs nothing
// once callers stop asking.
type Cache struct {
	bindings sync.Map
}

// NewCache constructs an empty binding cache.  Most callers should use
// the package-level GetProxy and GetSnapshot instead, since bindings are
// pure functions of their key and benefit from process-wide sharing.
func NewCache() *Cache {
	return new(Cache)
}

func (c *Cache) bindingFor(shape *Shape, instance interface{}) (*binding, reflect.Value, error) {
	if instance == nil {
		return nil, reflect.Value{}, ErrNilInstance
	}

	value := reflect.ValueOf(instance)

	// a typed nil pointer passes the interface check above but has no
	// members to access
	if value.Kind() == reflect.Ptr && value.IsNil() {
		return nil, reflect.Value{}, ErrNilInstance
	}

	key := bindingKey{shape: shape, typ: value.Type()}

	if cached, ok := c.bindings.Load(key); ok {
		return cached.(*binding), value, nil
	}

	b, err := newBinding(shape, value.Type())
	if err != nil {
		return nil, reflect.Value{}, err
	}

	actual, _ := c.bindings.LoadOrStore(key, b)
	return actual.(*binding), value, nil
}

// GetProxy returns a live view proxy exposing shape over the given
// instance.  The binding is built on first use for this (shape, type)
// pair and reused afterward.
func (c *Cache) GetProxy(shape *Shape, instance interface{}) (*Proxy, error) {
	b, value, err := c.bindingFor(shape, instance)
	if err != nil {
		return nil, err
	}

	return &Proxy{binding: b, instance: value}, nil
}

// GetSnapshot captures a by-value copy of the shape's members from the
// given instance, without retaining the instance.
func (c *Cache) GetSnapshot(shape *Shape, instance interface{}) (*Snapshot, error) {
	b, value, err := c.bindingFor(shape, instance)
	if err != nil {
		return nil, err
	}

	return newSnapshot(b, value), nil
}

// defaultCache is the process-wide cache behind the package-level
// functions.  It is append-only and never torn down.
var defaultCache Cache

// GetProxy returns a view proxy from the process-wide cache.
func GetProxy(shape *Shape, instance interface{}) (*Proxy, error) {
	return defaultCache.GetProxy(shape, instance)
}

// GetSnapshot returns a snapshot from the process-wide cache.
func GetSnapshot(shape *Shape, instance interface{}) (*Snapshot, error) {
	return defaultCache.GetSnapshot(shape, instance)
}
