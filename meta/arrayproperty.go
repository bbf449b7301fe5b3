package meta

import "fmt"

// ArrayProperty is a property holding an ordered sequence of values of a
// single declared element kind. Assigned arrays are coerced elementwise;
// an element that cannot be coerced rejects the whole write.
type ArrayProperty struct {
	propertyBase
	elemKind Kind
	dynamic  bool
	getter   GetterFunc
	setter   SetterFunc
}

// ElementKind returns the declared kind of the array's elements.
func (p *ArrayProperty) ElementKind() Kind { return p.elemKind }

// Dynamic reports whether the underlying native sequence can change size.
func (p *ArrayProperty) Dynamic() bool { return p.dynamic }

// Get returns the property's current value as an array Value.
func (p *ArrayProperty) Get(obj UserObject) (Value, error) {
	return p.getThrough(obj, p.getter)
}

// Set coerces value to an array of the declared element kind and writes
// it.
func (p *ArrayProperty) Set(obj UserObject, value Value) error {
	return p.setThrough(obj, value, p.coerce, p.setter)
}

func (p *ArrayProperty) coerce(value Value) (Value, error) {
	elems, err := value.ToArray()
	if err != nil {
		return NoValue, err
	}
	for i, e := range elems {
		conv, err := e.ConvertTo(p.elemKind)
		if err != nil {
			return NoValue, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = conv
	}
	return Value{kind: KindArray, data: elems}, nil
}

// Accept dispatches to VisitArrayProperty.
func (p *ArrayProperty) Accept(v ClassVisitor) { v.VisitArrayProperty(p) }
