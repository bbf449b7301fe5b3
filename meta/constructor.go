package meta

// ConstructFunc allocates a new native instance from arguments already
// coerced to the constructor's declared parameter kinds. It returns a
// pointer to the new instance.
type ConstructFunc func(args []Value) any

// Constructor describes one way to build an instance of a metaclass's
// bound native type. Constructors are tried in registration order during
// Class.Construct; the first whose arity and parameter kinds accept the
// arguments wins.
type Constructor struct {
	paramKinds []Kind
	create     ConstructFunc
}

// ParamCount returns the number of declared parameters.
func (c *Constructor) ParamCount() int { return len(c.paramKinds) }

// ParamKind returns the declared kind of the index-th parameter.
func (c *Constructor) ParamKind(index int) (Kind, error) {
	if index < 0 || index >= len(c.paramKinds) {
		return KindNone, errIndexOutOfRange("parameter", index, len(c.paramKinds))
	}
	return c.paramKinds[index], nil
}

// Matches reports whether the arguments satisfy the constructor's arity
// and are coercible to its parameter kinds.
func (c *Constructor) Matches(args []Value) bool {
	if len(args) != len(c.paramKinds) {
		return false
	}
	for i, a := range args {
		if !a.ConvertibleTo(c.paramKinds[i]) {
			return false
		}
	}
	return true
}

// construct coerces the arguments and allocates. The caller has already
// checked Matches, so coercion cannot fail here.
func (c *Constructor) construct(args []Value) any {
	coerced := make([]Value, len(args))
	for i, a := range args {
		v, err := a.ConvertTo(c.paramKinds[i])
		if err != nil {
			return nil
		}
		coerced[i] = v
	}
	return c.create(coerced)
}
