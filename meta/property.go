package meta

import "fmt"

// AccessorFunc is a per-instance predicate used as a readable or writable
// gate. A nil accessor means always true. An accessor returning an error
// is treated as evidence the handle no longer denotes a coherent instance
// and is reported as an invalid-object error.
type AccessorFunc func(obj UserObject) (bool, error)

// GetterFunc reads a property's value from an instance.
type GetterFunc func(obj UserObject) (Value, error)

// SetterFunc writes an already-coerced value into an instance.
type SetterFunc func(obj UserObject, value Value) error

// Property is a named, typed, gated accessor exposed by a metaclass.
//
// The boolean gate (Readable/Writable) is separate from the access itself
// (Get/Set) so that eligibility can depend on live instance state and be
// probed without side effects. Get and Set re-check the gate, so callers
// that skip the probe still cannot bypass it.
type Property interface {
	Tagged

	// Name returns the property's name, unique within its metaclass.
	Name() string

	// Kind returns the declared kind of the property's value.
	Kind() Kind

	// Readable reports whether the property can currently be read for
	// the given object. Fails with an invalid-object error if the
	// handle is invalid.
	Readable(obj UserObject) (bool, error)

	// Writable reports whether the property can currently be written
	// for the given object. Always false through a read-only handle.
	Writable(obj UserObject) (bool, error)

	// Get returns the property's current value. Fails with
	// invalid-object or not-readable as applicable.
	Get(obj UserObject) (Value, error)

	// Set assigns a new value, coercing it to the property's declared
	// kind first. Fails with invalid-object, not-writable or
	// invalid-value as applicable.
	Set(obj UserObject, value Value) error

	// Accept dispatches to the visitor callback matching the property's
	// concrete kind.
	Accept(v ClassVisitor)
}

// propertyBase carries the state and gate logic shared by every property
// kind. Concrete kinds embed it and supply the kind-specific marshalling.
type propertyBase struct {
	TagHolder
	name     string
	kind     Kind
	canRead  bool // a getter was declared
	canWrite bool // a setter was declared
	readable AccessorFunc
	writable AccessorFunc
}

func (p *propertyBase) Name() string { return p.name }

func (p *propertyBase) Kind() Kind { return p.kind }

func (p *propertyBase) Readable(obj UserObject) (bool, error) {
	if !obj.Valid() {
		return false, fmt.Errorf("property %q: %w", p.name, ErrInvalidObject)
	}
	if !p.canRead {
		return false, nil
	}
	if p.readable == nil {
		return true, nil
	}
	ok, err := p.readable(obj)
	if err != nil {
		return false, fmt.Errorf("property %q: readable accessor failed: %v: %w", p.name, err, ErrInvalidObject)
	}
	return ok, nil
}

func (p *propertyBase) Writable(obj UserObject) (bool, error) {
	if !obj.Valid() {
		return false, fmt.Errorf("property %q: %w", p.name, ErrInvalidObject)
	}
	if !p.canWrite || obj.ReadOnly() {
		return false, nil
	}
	if p.writable == nil {
		return true, nil
	}
	ok, err := p.writable(obj)
	if err != nil {
		return false, fmt.Errorf("property %q: writable accessor failed: %v: %w", p.name, err, ErrInvalidObject)
	}
	return ok, nil
}

// getThrough runs the read gate, then the kind-specific read.
func (p *propertyBase) getThrough(obj UserObject, impl GetterFunc) (Value, error) {
	ok, err := p.Readable(obj)
	if err != nil {
		return NoValue, err
	}
	if !ok {
		return NoValue, fmt.Errorf("property %q: %w", p.name, ErrNotReadable)
	}
	return impl(obj)
}

// setThrough runs the write gate, the kind-specific coercion, then the
// kind-specific write.
func (p *propertyBase) setThrough(obj UserObject, value Value, coerce func(Value) (Value, error), impl SetterFunc) error {
	ok, err := p.Writable(obj)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("property %q: %w", p.name, ErrNotWritable)
	}
	coerced, err := coerce(value)
	if err != nil {
		return fmt.Errorf("property %q: %w", p.name, err)
	}
	return impl(obj, coerced)
}

// SimpleProperty is a scalar property (bool, int, real or string).
type SimpleProperty struct {
	propertyBase
	getter GetterFunc
	setter SetterFunc
}

// Get returns the property's current value.
func (p *SimpleProperty) Get(obj UserObject) (Value, error) {
	return p.getThrough(obj, p.getter)
}

// Set coerces value to the declared kind and writes it.
func (p *SimpleProperty) Set(obj UserObject, value Value) error {
	return p.setThrough(obj, value, func(v Value) (Value, error) {
		return v.ConvertTo(p.kind)
	}, p.setter)
}

// Accept dispatches to VisitSimpleProperty.
func (p *SimpleProperty) Accept(v ClassVisitor) { v.VisitSimpleProperty(p) }
