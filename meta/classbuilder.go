package meta

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"
)

// PropertyOption configures a declared property.
type PropertyOption func(*propertySettings)

type propertySettings struct {
	readable AccessorFunc
	writable AccessorFunc
	tags     []tagPair
}

// ReadableIf gates reads of the property behind a per-instance predicate.
func ReadableIf(fn AccessorFunc) PropertyOption {
	return func(s *propertySettings) { s.readable = fn }
}

// WritableIf gates writes of the property behind a per-instance
// predicate.
func WritableIf(fn AccessorFunc) PropertyOption {
	return func(s *propertySettings) { s.writable = fn }
}

// PropertyTag attaches an annotation to the declared property.
func PropertyTag(key, value Value) PropertyOption {
	return func(s *propertySettings) { s.tags = append(s.tags, tagPair{key: key, value: value}) }
}

// Declare registers a new metaclass named name in the registry, bound to
// the native type T, and returns a builder to populate it. It fails with
// an already-exists error when the name is taken.
func Declare[T any](r *Registry, name string) (*ClassBuilder[T], error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	c, err := r.RegisterClass(name, typ)
	if err != nil {
		return nil, err
	}
	return &ClassBuilder[T]{class: c}, nil
}

// ClassBuilder is the fluent population surface of a freshly registered
// metaclass. Declaration mistakes (duplicate member names, missing
// accessors) do not interrupt the chain; they accumulate and surface from
// Err, which must be checked once the declaration is complete.
type ClassBuilder[T any] struct {
	class *Class
	err   error
}

// Class returns the metaclass under construction. Callers should check
// Err before using it.
func (b *ClassBuilder[T]) Class() *Class { return b.class }

// Err returns the accumulated declaration errors, or nil.
func (b *ClassBuilder[T]) Err() error { return b.err }

func (b *ClassBuilder[T]) fail(err error) *ClassBuilder[T] {
	b.err = multierr.Append(b.err, err)
	return b
}

// Base declares base as a base metaclass of the class under
// construction. upcast adjusts an instance reference to the base's
// native layout, typically by returning a pointer to the embedded base
// field. A nil upcast is only valid when the base shares the instance's
// layout (Go embedding at offset zero).
func (b *ClassBuilder[T]) Base(base *Class, upcast func(*T) any) *ClassBuilder[T] {
	var adjust func(any) any
	if upcast != nil {
		adjust = func(ptr any) any { return upcast(ptr.(*T)) }
	}
	if err := b.class.addBase(base, adjust); err != nil {
		return b.fail(err)
	}
	return b
}

// Constructor declares one way to build an instance. paramKinds declares
// the parameter list (nil for a default constructor); create receives
// arguments already coerced to those kinds and returns the new instance.
// Constructors are tried in declaration order, first match wins.
func (b *ClassBuilder[T]) Constructor(paramKinds []Kind, create func(args []Value) *T) *ClassBuilder[T] {
	if create == nil {
		return b.fail(fmt.Errorf("class %q: constructor requires a create function", b.class.name))
	}
	kinds := append([]Kind(nil), paramKinds...)
	b.class.addConstructor(&Constructor{
		paramKinds: kinds,
		create: func(args []Value) any {
			inst := create(args)
			if inst == nil {
				return nil
			}
			return inst
		},
	})
	return b
}

// Finalizer declares the teardown run by Class.Destroy.
func (b *ClassBuilder[T]) Finalizer(fn func(*T)) *ClassBuilder[T] {
	if fn == nil {
		return b
	}
	b.class.finalizer = func(ptr any) { fn(ptr.(*T)) }
	return b
}

// Tag attaches an annotation to the class itself.
func (b *ClassBuilder[T]) Tag(key, value Value) *ClassBuilder[T] {
	b.class.SetTag(key, value)
	return b
}

// Property declares a scalar property. get is required; a nil set makes
// the property read-only. set receives values already coerced to kind.
func (b *ClassBuilder[T]) Property(name string, kind Kind, get func(*T) Value, set func(*T, Value), opts ...PropertyOption) *ClassBuilder[T] {
	if kind != KindBool && kind != KindInt && kind != KindReal && kind != KindString {
		return b.fail(fmt.Errorf("class %q property %q: kind %s is not scalar", b.class.name, name, kind))
	}
	base, getter, setter, err := b.member(name, kind, get, set, opts)
	if err != nil {
		return b.fail(err)
	}
	return b.add(&SimpleProperty{propertyBase: base, getter: getter, setter: setter})
}

// ArrayProperty declares a property holding an ordered sequence of
// elemKind values. dynamic declares whether the native sequence can
// change size. get returns the current elements; set receives elements
// already coerced to elemKind.
func (b *ClassBuilder[T]) ArrayProperty(name string, elemKind Kind, dynamic bool, get func(*T) []Value, set func(*T, []Value), opts ...PropertyOption) *ClassBuilder[T] {
	wrapGet := func(inst *T) Value { return Array(get(inst)...) }
	var wrapSet func(*T, Value)
	if set != nil {
		wrapSet = func(inst *T, v Value) {
			elems, _ := v.ToArray()
			set(inst, elems)
		}
	}
	if get == nil {
		wrapGet = nil
	}
	base, getter, setter, err := b.member(name, KindArray, wrapGet, wrapSet, opts)
	if err != nil {
		return b.fail(err)
	}
	return b.add(&ArrayProperty{propertyBase: base, elemKind: elemKind, dynamic: dynamic, getter: getter, setter: setter})
}

// EnumProperty declares a property whose value is an enumerator of enum.
// get returns the current numeric value, which must be one of the enum's
// registered values; set receives the numeric value of the coerced
// enumerator.
func (b *ClassBuilder[T]) EnumProperty(name string, enum *Enum, get func(*T) int64, set func(*T, int64), opts ...PropertyOption) *ClassBuilder[T] {
	if enum == nil {
		return b.fail(fmt.Errorf("class %q property %q: nil enum", b.class.name, name))
	}
	var getter GetterFunc
	if get != nil {
		getter = func(obj UserObject) (Value, error) {
			inst, err := Instance[T](obj)
			if err != nil {
				return NoValue, err
			}
			return enum.ValueFor(get(inst))
		}
	}
	var setter SetterFunc
	if set != nil {
		setter = func(obj UserObject, v Value) error {
			inst, err := Instance[T](obj)
			if err != nil {
				return err
			}
			_, value, err := v.ToEnum()
			if err != nil {
				return err
			}
			set(inst, value)
			return nil
		}
	}
	base, err := b.memberBase(name, KindEnum, getter != nil, setter != nil, opts)
	if err != nil {
		return b.fail(err)
	}
	return b.add(&EnumProperty{propertyBase: base, enum: enum, getter: getter, setter: setter})
}

// UserProperty declares a property referencing instances of another
// metaclass. get returns the current handle; set receives a handle
// already re-viewed through class.
func (b *ClassBuilder[T]) UserProperty(name string, class *Class, get func(*T) UserObject, set func(*T, UserObject), opts ...PropertyOption) *ClassBuilder[T] {
	if class == nil {
		return b.fail(fmt.Errorf("class %q property %q: nil class", b.class.name, name))
	}
	wrapGet := func(inst *T) Value { return Object(get(inst)) }
	var wrapSet func(*T, Value)
	if set != nil {
		wrapSet = func(inst *T, v Value) {
			handle, _ := v.ToUser()
			set(inst, handle)
		}
	}
	if get == nil {
		wrapGet = nil
	}
	base, getter, setter, err := b.member(name, KindUser, wrapGet, wrapSet, opts)
	if err != nil {
		return b.fail(err)
	}
	return b.add(&UserProperty{propertyBase: base, class: class, getter: getter, setter: setter})
}

// Function declares a named callable. paramKinds declares the parameter
// list; call receives a typed instance and arguments already coerced to
// those kinds.
func (b *ClassBuilder[T]) Function(name string, returnKind Kind, paramKinds []Kind, call func(inst *T, args []Value) (Value, error)) *ClassBuilder[T] {
	if call == nil {
		return b.fail(fmt.Errorf("class %q function %q: nil implementation", b.class.name, name))
	}
	f := &Function{
		name:       name,
		returnKind: returnKind,
		paramKinds: append([]Kind(nil), paramKinds...),
		call: func(obj UserObject, args []Value) (Value, error) {
			inst, err := Instance[T](obj)
			if err != nil {
				return NoValue, err
			}
			return call(inst, args)
		},
	}
	if err := b.class.addFunction(f); err != nil {
		return b.fail(err)
	}
	return b
}

// member builds the shared property state plus wrapped typed accessors
// for the kinds whose native accessor trades in Value directly.
func (b *ClassBuilder[T]) member(name string, kind Kind, get func(*T) Value, set func(*T, Value), opts []PropertyOption) (propertyBase, GetterFunc, SetterFunc, error) {
	var getter GetterFunc
	if get != nil {
		getter = func(obj UserObject) (Value, error) {
			inst, err := Instance[T](obj)
			if err != nil {
				return NoValue, err
			}
			return get(inst), nil
		}
	}
	var setter SetterFunc
	if set != nil {
		setter = func(obj UserObject, v Value) error {
			inst, err := Instance[T](obj)
			if err != nil {
				return err
			}
			set(inst, v)
			return nil
		}
	}
	base, err := b.memberBase(name, kind, getter != nil, setter != nil, opts)
	return base, getter, setter, err
}

func (b *ClassBuilder[T]) memberBase(name string, kind Kind, canRead, canWrite bool, opts []PropertyOption) (propertyBase, error) {
	if !canRead && !canWrite {
		return propertyBase{}, fmt.Errorf("class %q property %q: requires a getter or a setter", b.class.name, name)
	}
	var settings propertySettings
	for _, opt := range opts {
		opt(&settings)
	}
	base := propertyBase{
		name:     name,
		kind:     kind,
		canRead:  canRead,
		canWrite: canWrite,
		readable: settings.readable,
		writable: settings.writable,
	}
	for _, tag := range settings.tags {
		base.SetTag(tag.key, tag.value)
	}
	return base, nil
}

func (b *ClassBuilder[T]) add(p Property) *ClassBuilder[T] {
	if err := b.class.addProperty(p); err != nil {
		return b.fail(err)
	}
	return b
}
