package meta

import (
	"reflect"

	"go.uber.org/multierr"
)

// DeclareEnum registers a new enum named name in the registry, bound to
// the native type T, and returns a builder to populate it.
func DeclareEnum[T any](r *Registry, name string) (*EnumBuilder, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	e, err := r.RegisterEnum(name, typ)
	if err != nil {
		return nil, err
	}
	return &EnumBuilder{enum: e}, nil
}

// EnumBuilder is the fluent population surface of a freshly registered
// enum. Duplicate enumerator names or values accumulate into Err rather
// than interrupting the chain.
type EnumBuilder struct {
	enum *Enum
	err  error
}

// Value declares one enumerator pair. Both the name and the numeric
// value must be unique within the enum.
func (b *EnumBuilder) Value(name string, value int64) *EnumBuilder {
	if err := b.enum.addPair(name, value); err != nil {
		b.err = multierr.Append(b.err, err)
	}
	return b
}

// Tag attaches an annotation to the enum.
func (b *EnumBuilder) Tag(key, value Value) *EnumBuilder {
	b.enum.SetTag(key, value)
	return b
}

// Enum returns the enum under construction. Callers should check Err
// before using it.
func (b *EnumBuilder) Enum() *Enum { return b.enum }

// Err returns the accumulated declaration errors, or nil.
func (b *EnumBuilder) Err() error { return b.err }
