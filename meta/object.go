package meta

import (
	"fmt"
	"reflect"
)

// UserObject is a non-owning handle pairing a native instance with the
// metaclass through which it is currently viewed. The referenced instance
// must outlive every handle derived from it; constructing or converting a
// handle never copies the instance.
//
// The zero UserObject is invalid: every operation through it reports an
// invalid-object error. Class.Construct returns the zero handle when no
// constructor matches, which callers distinguish with Valid.
type UserObject struct {
	ptr      any
	class    *Class
	readOnly bool
}

// NewUserObject wraps a native instance, viewed through the given
// metaclass. instance must be a non-nil pointer to the class's bound
// native type (or the handle is invalid).
func NewUserObject(class *Class, instance any) UserObject {
	return UserObject{ptr: instance, class: class}
}

// NewReadOnlyUserObject wraps a native instance as NewUserObject does, but
// the resulting handle rejects every write: properties report not-writable
// through it regardless of their own gate.
func NewReadOnlyUserObject(class *Class, instance any) UserObject {
	return UserObject{ptr: instance, class: class, readOnly: true}
}

// Valid reports whether the handle denotes a live, correctly typed
// instance. A handle whose pointer does not match its class's bound
// native type (for example after the instance was replaced or the handle
// was forged) is invalid.
func (o UserObject) Valid() bool {
	if o.ptr == nil || o.class == nil {
		return false
	}
	rv := reflect.ValueOf(o.ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	if t := o.class.NativeType(); t != nil && rv.Type().Elem() != t {
		return false
	}
	return true
}

// Pointer returns the underlying native reference, adjusted for the
// current class view.
func (o UserObject) Pointer() any { return o.ptr }

// Class returns the metaclass the instance is currently viewed as.
func (o UserObject) Class() *Class { return o.class }

// ReadOnly reports whether the handle carries the read-only capability.
func (o UserObject) ReadOnly() bool { return o.readOnly }

// ConvertTo re-views the handle through target, which must be the current
// class itself or one of its bases, direct or transitive. The returned
// handle's reference is adjusted by the per-base layout adjustment
// recorded at declaration time; adjustments compose across multi-level
// base chains. Converting toward a derived class is not supported.
func (o UserObject) ConvertTo(target *Class) (UserObject, error) {
	if !o.Valid() {
		return UserObject{}, fmt.Errorf("convert: %w", ErrInvalidObject)
	}
	if target == nil {
		return UserObject{}, fmt.Errorf("convert: nil target class: %w", ErrInvalidConversion)
	}
	if o.class.Equal(target) {
		return o, nil
	}
	adjusted, ok := o.class.castToBase(o.ptr, target)
	if !ok {
		return UserObject{}, fmt.Errorf("cannot view %q as %q: %w", o.class.Name(), target.Name(), ErrInvalidConversion)
	}
	return UserObject{ptr: adjusted, class: target, readOnly: o.readOnly}, nil
}

// Instance extracts the typed native pointer from a handle. It fails with
// an invalid-object error when the handle is invalid or its instance is
// not a *T. Declaration-layer accessors use it to regain static typing.
func Instance[T any](obj UserObject) (*T, error) {
	if !obj.Valid() {
		return nil, fmt.Errorf("instance: %w", ErrInvalidObject)
	}
	p, ok := obj.ptr.(*T)
	if !ok {
		want := reflect.TypeOf((*T)(nil)).Elem()
		return nil, fmt.Errorf("instance is %T, not *%s: %w", obj.ptr, want, ErrInvalidObject)
	}
	return p, nil
}
