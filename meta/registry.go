package meta

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Observer receives synchronous notifications when metaclasses or enums
// are registered or torn down. Callbacks run on the goroutine performing
// the mutation, before the mutating call returns, in observer
// subscription order.
type Observer interface {
	ClassAdded(c *Class)
	ClassRemoved(c *Class)
	EnumAdded(e *Enum)
	EnumRemoved(e *Enum)
}

// Registry is the store and lookup index for all registered metaclasses
// and enums. It is the sole place metaclasses are created or destroyed.
//
// Every entity is indexed twice: by unique name, and by bound native type
// (one native type may carry several metaclasses declared under different
// names). Registration order is preserved and observable through the
// index-based enumeration.
//
// A Registry is explicitly constructed and owned by the host; the
// package-level DefaultRegistry covers hosts that want the conventional
// process-wide instance. Lookups take a read lock, so concurrent reads
// are always safe; the declaration phase is still expected to complete
// before heavy concurrent use begins.
type Registry struct {
	mu          sync.RWMutex
	classOrder  []*Class
	classByName map[string]*Class
	classByType map[reflect.Type][]*Class
	enumOrder   []*Enum
	enumByName  map[string]*Enum
	enumByType  map[reflect.Type][]*Enum
	observers   []Observer
	logger      *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger makes the registry log registrations, removals and teardown
// through the given logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		classByName: make(map[string]*Class),
		classByType: make(map[reflect.Type][]*Class),
		enumByName:  make(map[string]*Enum),
		enumByType:  make(map[reflect.Type][]*Enum),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the process-wide registry, created on first
// use. It lives until process exit; hosts that need teardown
// notifications call Close on it explicitly.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// RegisterClass creates and indexes an empty metaclass under a unique
// name, bound to the given native type, notifies observers, and returns
// it for population. It fails with an already-exists error when the name
// is taken; the earlier registration is left untouched.
//
// This is the entry point for every metaclass creation; Declare wraps it
// with a typed builder.
func (r *Registry) RegisterClass(name string, typ reflect.Type) (*Class, error) {
	r.mu.Lock()
	if _, exists := r.classByName[name]; exists {
		r.mu.Unlock()
		return nil, errDuplicate("class", name)
	}
	c := newClass(name, typ)
	r.classByName[name] = c
	r.classByType[typ] = append(r.classByType[typ], c)
	r.classOrder = append(r.classOrder, c)
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	r.logger.Debug("registered metaclass",
		zap.String("name", name),
		zap.Stringer("type", typ))
	for _, o := range observers {
		o.ClassAdded(c)
	}
	return c, nil
}

// ClassByName returns the metaclass registered under name, failing with
// an unknown-class error when absent.
func (r *Registry) ClassByName(name string) (*Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classByName[name]
	if !ok {
		return nil, errUnknownClass(name)
	}
	return c, nil
}

// ClassByType returns the index-th metaclass bound to the given native
// type, in registration order. It fails with an unknown-class error when
// the type has no metaclass, and with an out-of-range error when index
// exceeds the type's metaclass count.
func (r *Registry) ClassByType(typ reflect.Type, index int) (*Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	classes, ok := r.classByType[typ]
	if !ok || len(classes) == 0 {
		return nil, errUnknownClass(typ.String())
	}
	if index < 0 || index >= len(classes) {
		return nil, errIndexOutOfRange("class", index, len(classes))
	}
	return classes[index], nil
}

// ClassTypeCount returns the number of metaclasses bound to the given
// native type.
func (r *Registry) ClassTypeCount(typ reflect.Type) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classByType[typ])
}

// HasClassFor reports whether the given native type has at least one
// metaclass. It never fails.
func (r *Registry) HasClassFor(typ reflect.Type) bool {
	return r.ClassTypeCount(typ) > 0
}

// ClassCount returns the total number of registered metaclasses.
func (r *Registry) ClassCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.classOrder)
}

// ClassAt returns the index-th metaclass in global registration order.
// Together with ClassCount it enumerates every registered metaclass.
func (r *Registry) ClassAt(index int) (*Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.classOrder) {
		return nil, errIndexOutOfRange("class", index, len(r.classOrder))
	}
	return r.classOrder[index], nil
}

// RegisterEnum creates and indexes an empty enum under a unique name,
// bound to the given native type, notifies observers, and returns it for
// population.
func (r *Registry) RegisterEnum(name string, typ reflect.Type) (*Enum, error) {
	r.mu.Lock()
	if _, exists := r.enumByName[name]; exists {
		r.mu.Unlock()
		return nil, errDuplicate("enum", name)
	}
	e := newEnum(name, typ)
	r.enumByName[name] = e
	r.enumByType[typ] = append(r.enumByType[typ], e)
	r.enumOrder = append(r.enumOrder, e)
	observers := append([]Observer(nil), r.observers...)
	r.mu.Unlock()

	r.logger.Debug("registered enum",
		zap.String("name", name),
		zap.Stringer("type", typ))
	for _, o := range observers {
		o.EnumAdded(e)
	}
	return e, nil
}

// EnumByName returns the enum registered under name.
func (r *Registry) EnumByName(name string) (*Enum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.enumByName[name]
	if !ok {
		return nil, errUnknownEnum(name)
	}
	return e, nil
}

// EnumByType returns the index-th enum bound to the given native type, in
// registration order.
func (r *Registry) EnumByType(typ reflect.Type, index int) (*Enum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	enums, ok := r.enumByType[typ]
	if !ok || len(enums) == 0 {
		return nil, errUnknownEnum(typ.String())
	}
	if index < 0 || index >= len(enums) {
		return nil, errIndexOutOfRange("enum", index, len(enums))
	}
	return enums[index], nil
}

// HasEnumFor reports whether the given native type has at least one enum.
func (r *Registry) HasEnumFor(typ reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.enumByType[typ]) > 0
}

// EnumCount returns the total number of registered enums.
func (r *Registry) EnumCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.enumOrder)
}

// EnumAt returns the index-th enum in global registration order.
func (r *Registry) EnumAt(index int) (*Enum, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index < 0 || index >= len(r.enumOrder) {
		return nil, errIndexOutOfRange("enum", index, len(r.enumOrder))
	}
	return r.enumOrder[index], nil
}

// AddObserver subscribes an observer. Observers are notified in
// subscription order.
func (r *Registry) AddObserver(o Observer) {
	if o == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// RemoveObserver unsubscribes an observer previously passed to
// AddObserver.
func (r *Registry) RemoveObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.observers {
		if existing == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Close tears the registry down: every metaclass and enum is
// unregistered, and observers receive one removal notification per
// destroyed entity, in registration order, before Close returns.
// Subsequent lookups fail with unknown-class/unknown-enum errors; the
// registry may be reused for fresh registrations.
func (r *Registry) Close() {
	r.mu.Lock()
	classes := r.classOrder
	enums := r.enumOrder
	observers := append([]Observer(nil), r.observers...)
	r.classOrder = nil
	r.classByName = make(map[string]*Class)
	r.classByType = make(map[reflect.Type][]*Class)
	r.enumOrder = nil
	r.enumByName = make(map[string]*Enum)
	r.enumByType = make(map[reflect.Type][]*Enum)
	r.mu.Unlock()

	for _, c := range classes {
		r.logger.Debug("unregistered metaclass", zap.String("name", c.Name()))
		for _, o := range observers {
			o.ClassRemoved(c)
		}
	}
	for _, e := range enums {
		r.logger.Debug("unregistered enum", zap.String("name", e.Name()))
		for _, o := range observers {
			o.EnumRemoved(e)
		}
	}
	r.logger.Info("registry closed",
		zap.Int("classes", len(classes)),
		zap.Int("enums", len(enums)))
}
