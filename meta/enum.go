package meta

import (
	"fmt"
	"reflect"

	"github.com/containerd/errdefs"
)

// EnumPair is one (name, value) entry of an Enum.
type EnumPair struct {
	Name  string
	Value int64
}

// Enum is the metadata of a named enumeration: an ordered list of
// enumerator pairs, unique in both name and value, registered and indexed
// by the Registry exactly like classes. Two enums are equal iff their
// names are equal.
type Enum struct {
	TagHolder
	name    string
	typ     reflect.Type
	pairs   []EnumPair
	byName  map[string]int64
	byValue map[int64]string
}

func newEnum(name string, typ reflect.Type) *Enum {
	return &Enum{
		name:    name,
		typ:     typ,
		byName:  make(map[string]int64),
		byValue: make(map[int64]string),
	}
}

// Name returns the enum's unique name.
func (e *Enum) Name() string { return e.name }

// NativeType returns the native Go type the enum is bound to.
func (e *Enum) NativeType() reflect.Type { return e.typ }

// Equal reports whether two enums are the same, by name.
func (e *Enum) Equal(other *Enum) bool {
	return other != nil && e.name == other.name
}

// Size returns the number of enumerator pairs.
func (e *Enum) Size() int { return len(e.pairs) }

// Pair returns the index-th enumerator pair in declaration order.
func (e *Enum) Pair(index int) (EnumPair, error) {
	if index < 0 || index >= len(e.pairs) {
		return EnumPair{}, errIndexOutOfRange("enumerator", index, len(e.pairs))
	}
	return e.pairs[index], nil
}

// HasName reports whether an enumerator with the given name exists.
func (e *Enum) HasName(name string) bool {
	_, ok := e.byName[name]
	return ok
}

// HasValue reports whether an enumerator with the given value exists.
func (e *Enum) HasValue(value int64) bool {
	_, ok := e.byValue[value]
	return ok
}

// Value returns the numeric value of the named enumerator.
func (e *Enum) Value(name string) (int64, error) {
	v, ok := e.byName[name]
	if !ok {
		return 0, fmt.Errorf("enum %q has no enumerator %q: %w", e.name, name, errdefs.ErrNotFound)
	}
	return v, nil
}

// NameOf returns the name of the enumerator with the given value.
func (e *Enum) NameOf(value int64) (string, error) {
	n, ok := e.byValue[value]
	if !ok {
		return "", fmt.Errorf("enum %q has no enumerator with value %d: %w", e.name, value, errdefs.ErrNotFound)
	}
	return n, nil
}

// ValueOf returns the enumerator Value named name.
func (e *Enum) ValueOf(name string) (Value, error) {
	v, err := e.Value(name)
	if err != nil {
		return NoValue, err
	}
	return Value{kind: KindEnum, data: enumerator{enum: e, value: v}}, nil
}

// ValueFor returns the enumerator Value with the given numeric value.
func (e *Enum) ValueFor(value int64) (Value, error) {
	if !e.HasValue(value) {
		return NoValue, errNotConvertible(KindInt, "enum "+e.name)
	}
	return Value{kind: KindEnum, data: enumerator{enum: e, value: value}}, nil
}

// Coerce converts a Value toward this enum: enumerators of this enum pass
// through, strings resolve by enumerator name, integers by enumerator
// value. Anything else, including enumerators of a different enum, is an
// invalid-value error.
func (e *Enum) Coerce(v Value) (Value, error) {
	switch v.Kind() {
	case KindEnum:
		en := v.data.(enumerator)
		if !en.enum.Equal(e) {
			return NoValue, errNotConvertible(KindEnum, "enum "+e.name)
		}
		return v, nil
	case KindString:
		name := v.data.(string)
		ev, err := e.ValueOf(name)
		if err != nil {
			return NoValue, errNotConvertible(KindString, "enum "+e.name)
		}
		return ev, nil
	case KindInt:
		return e.ValueFor(v.data.(int64))
	default:
		return NoValue, errNotConvertible(v.Kind(), "enum "+e.name)
	}
}

// Accept dispatches to VisitEnum.
func (e *Enum) Accept(v ClassVisitor) { v.VisitEnum(e) }

// addPair appends an enumerator, enforcing uniqueness of both name and
// value. Called by the enum builder during declaration.
func (e *Enum) addPair(name string, value int64) error {
	if e.HasName(name) {
		return errDuplicate("enumerator", e.name+"."+name)
	}
	if e.HasValue(value) {
		return errDuplicate("enumerator value", fmt.Sprintf("%s=%d", e.name, value))
	}
	e.pairs = append(e.pairs, EnumPair{Name: name, Value: value})
	e.byName[name] = value
	e.byValue[value] = name
	return nil
}
