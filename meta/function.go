package meta

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// CallFunc is the stored call adapter of a Function. It receives a valid
// handle and arguments already coerced to the declared parameter kinds.
type CallFunc func(obj UserObject, args []Value) (Value, error)

// Function is a named callable member of a metaclass, declaring its
// return kind and parameter kinds. The actual invocation machinery is a
// stored adapter supplied by the declaration layer.
type Function struct {
	TagHolder
	name       string
	returnKind Kind
	paramKinds []Kind
	call       CallFunc
}

// Name returns the function's name, unique within its metaclass.
func (f *Function) Name() string { return f.name }

// ReturnKind returns the declared kind of the function's result.
// KindNone declares no result.
func (f *Function) ReturnKind() Kind { return f.returnKind }

// ParamCount returns the number of declared parameters.
func (f *Function) ParamCount() int { return len(f.paramKinds) }

// ParamKind returns the declared kind of the index-th parameter.
func (f *Function) ParamKind(index int) (Kind, error) {
	if index < 0 || index >= len(f.paramKinds) {
		return KindNone, errIndexOutOfRange("parameter", index, len(f.paramKinds))
	}
	return f.paramKinds[index], nil
}

// Call invokes the function on the given object. The handle must be
// valid, non-read-only handles are required only by functions that mutate
// (the adapter decides), the argument count must match the declared
// arity, and every argument is coerced to its declared kind before the
// adapter runs.
func (f *Function) Call(obj UserObject, args ...Value) (Value, error) {
	if !obj.Valid() {
		return NoValue, fmt.Errorf("function %q: %w", f.name, ErrInvalidObject)
	}
	if len(args) != len(f.paramKinds) {
		return NoValue, fmt.Errorf("function %q expects %d arguments, got %d: %w",
			f.name, len(f.paramKinds), len(args), errdefs.ErrInvalidArgument)
	}
	coerced := make([]Value, len(args))
	for i, a := range args {
		v, err := a.ConvertTo(f.paramKinds[i])
		if err != nil {
			return NoValue, fmt.Errorf("function %q argument %d: %w", f.name, i, err)
		}
		coerced[i] = v
	}
	return f.call(obj, coerced)
}

// Accept dispatches to VisitFunction.
func (f *Function) Accept(v ClassVisitor) { v.VisitFunction(f) }
