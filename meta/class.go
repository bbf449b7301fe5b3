package meta

import (
	"fmt"
	"reflect"
)

// baseInfo records one direct base of a class together with the layout
// adjustment needed to re-view an instance reference as a reference to
// the base's native layout. In Go the adjustment is a stored upcast
// function (typically returning a pointer to an embedded field) rather
// than a numeric offset; a nil upcast is the identity.
type baseInfo struct {
	class  *Class
	upcast func(any) any
}

// Class is a metaclass: a named, registered description of a native Go
// type's properties, functions, constructors and bases. Classes are
// created only through Registry.RegisterClass (usually via Declare) and
// are never copied; two classes are equal iff their names are equal.
//
// Member tables preserve insertion order for index-based iteration and
// enforce name uniqueness. A class is mutable only through its builder
// during the declaration phase.
type Class struct {
	TagHolder
	name      string
	typ       reflect.Type
	bases     []baseInfo
	propOrder []string
	props     map[string]Property
	funcOrder []string
	funcs     map[string]*Function
	ctors     []*Constructor
	finalizer func(any)
}

func newClass(name string, typ reflect.Type) *Class {
	return &Class{
		name:  name,
		typ:   typ,
		props: make(map[string]Property),
		funcs: make(map[string]*Function),
	}
}

// Name returns the metaclass's unique name.
func (c *Class) Name() string { return c.name }

// NativeType returns the native Go type the metaclass is bound to.
func (c *Class) NativeType() reflect.Type { return c.typ }

// Equal reports whether two metaclasses are the same. Names are the sole
// identity key.
func (c *Class) Equal(other *Class) bool {
	return other != nil && c.name == other.name
}

// BaseCount returns the number of direct base metaclasses.
func (c *Class) BaseCount() int { return len(c.bases) }

// Base returns the index-th direct base metaclass.
func (c *Class) Base(index int) (*Class, error) {
	if index < 0 || index >= len(c.bases) {
		return nil, errIndexOutOfRange("base", index, len(c.bases))
	}
	return c.bases[index].class, nil
}

// Derives reports whether target is this class or one of its bases,
// direct or transitive.
func (c *Class) Derives(target *Class) bool {
	if target == nil {
		return false
	}
	if c.Equal(target) {
		return true
	}
	for _, b := range c.bases {
		if b.class.Derives(target) {
			return true
		}
	}
	return false
}

// castToBase adjusts an instance reference so it is valid for target,
// composing per-base adjustments along the first base chain that reaches
// it. Returns false if target is not reachable.
func (c *Class) castToBase(ptr any, target *Class) (any, bool) {
	if c.Equal(target) {
		return ptr, true
	}
	for _, b := range c.bases {
		adjusted := ptr
		if b.upcast != nil {
			adjusted = b.upcast(ptr)
		}
		if out, ok := b.class.castToBase(adjusted, target); ok {
			return out, true
		}
	}
	return nil, false
}

// PropertyCount returns the number of properties.
func (c *Class) PropertyCount() int { return len(c.propOrder) }

// HasProperty reports whether the metaclass contains the named property.
func (c *Class) HasProperty(name string) bool {
	_, ok := c.props[name]
	return ok
}

// Property returns the named property, failing with an unknown-property
// error when absent.
func (c *Class) Property(name string) (Property, error) {
	p, ok := c.props[name]
	if !ok {
		return nil, errUnknownProperty(c.name, name)
	}
	return p, nil
}

// PropertyAt returns the index-th property in declaration order.
func (c *Class) PropertyAt(index int) (Property, error) {
	if index < 0 || index >= len(c.propOrder) {
		return nil, errIndexOutOfRange("property", index, len(c.propOrder))
	}
	return c.props[c.propOrder[index]], nil
}

// FunctionCount returns the number of functions.
func (c *Class) FunctionCount() int { return len(c.funcOrder) }

// HasFunction reports whether the metaclass contains the named function.
func (c *Class) HasFunction(name string) bool {
	_, ok := c.funcs[name]
	return ok
}

// Function returns the named function, failing with an unknown-function
// error when absent.
func (c *Class) Function(name string) (*Function, error) {
	f, ok := c.funcs[name]
	if !ok {
		return nil, errUnknownFunction(c.name, name)
	}
	return f, nil
}

// FunctionAt returns the index-th function in declaration order.
func (c *Class) FunctionAt(index int) (*Function, error) {
	if index < 0 || index >= len(c.funcOrder) {
		return nil, errIndexOutOfRange("function", index, len(c.funcOrder))
	}
	return c.funcs[c.funcOrder[index]], nil
}

// ConstructorCount returns the number of registered constructors.
func (c *Class) ConstructorCount() int { return len(c.ctors) }

// Construct allocates a new instance of the bound native type, dispatched
// to the first registered constructor whose parameter list accepts the
// arguments, and returns it viewed as this class.
//
// Absence of a matching constructor is a normal, checked outcome: the
// returned handle is invalid (Valid() == false), no error is raised.
func (c *Class) Construct(args ...Value) UserObject {
	for _, ctor := range c.ctors {
		if !ctor.Matches(args) {
			continue
		}
		inst := ctor.construct(args)
		if inst == nil {
			continue
		}
		return UserObject{ptr: inst, class: c}
	}
	return UserObject{}
}

// ConstructAs constructs like Construct and re-views the result as
// target, which must be this class or one of its bases. The returned
// handle is invalid when no constructor matches or the result cannot be
// viewed as target.
func (c *Class) ConstructAs(target *Class, args ...Value) UserObject {
	obj := c.Construct(args...)
	if !obj.Valid() {
		return UserObject{}
	}
	viewed, err := obj.ConvertTo(target)
	if err != nil {
		return UserObject{}
	}
	return viewed
}

// Destroy runs the bound type's declared teardown on an instance created
// by Construct. The handle must be viewed as this exact class: a base or
// foreign view does not know the concrete teardown. Instances without a
// declared finalizer are reclaimed by the garbage collector; Destroy is
// then a validity check only.
func (c *Class) Destroy(obj UserObject) error {
	if !obj.Valid() {
		return fmt.Errorf("destroy: %w", ErrInvalidObject)
	}
	if !obj.Class().Equal(c) {
		return fmt.Errorf("destroy: object viewed as %q, not %q: %w", obj.Class().Name(), c.name, ErrInvalidConversion)
	}
	if c.finalizer != nil {
		c.finalizer(obj.Pointer())
	}
	return nil
}

// Visit walks the metaclass with a visitor: the class itself first, then
// every property and function in declaration order, each dispatched to
// the callback matching its concrete kind.
func (c *Class) Visit(v ClassVisitor) {
	v.VisitClass(c)
	for _, name := range c.propOrder {
		c.props[name].Accept(v)
	}
	for _, name := range c.funcOrder {
		c.funcs[name].Accept(v)
	}
}

// addProperty appends a property, enforcing name uniqueness. Called by
// the class builder during declaration.
func (c *Class) addProperty(p Property) error {
	if _, exists := c.props[p.Name()]; exists {
		return errDuplicate("property", c.name+"."+p.Name())
	}
	c.props[p.Name()] = p
	c.propOrder = append(c.propOrder, p.Name())
	return nil
}

func (c *Class) addFunction(f *Function) error {
	if _, exists := c.funcs[f.name]; exists {
		return errDuplicate("function", c.name+"."+f.name)
	}
	c.funcs[f.name] = f
	c.funcOrder = append(c.funcOrder, f.name)
	return nil
}

func (c *Class) addConstructor(ctor *Constructor) {
	c.ctors = append(c.ctors, ctor)
}

func (c *Class) addBase(base *Class, upcast func(any) any) error {
	if base == nil {
		return fmt.Errorf("class %q: nil base: %w", c.name, ErrInvalidConversion)
	}
	for _, b := range c.bases {
		if b.class.Equal(base) {
			return errDuplicate("base", c.name+" base "+base.name)
		}
	}
	c.bases = append(c.bases, baseInfo{class: base, upcast: upcast})
	return nil
}
