package meta

// EnumProperty is a property whose value is an enumerator of a bound
// Enum. Assigned strings are resolved by enumerator name, integers by
// enumerator value; anything else is an invalid-value error.
type EnumProperty struct {
	propertyBase
	enum   *Enum
	getter GetterFunc
	setter SetterFunc
}

// Enum returns the enum metadata the property is bound to.
func (p *EnumProperty) Enum() *Enum { return p.enum }

// Get returns the property's current value as an enumerator Value.
func (p *EnumProperty) Get(obj UserObject) (Value, error) {
	return p.getThrough(obj, p.getter)
}

// Set coerces value to an enumerator of the bound enum and writes it.
func (p *EnumProperty) Set(obj UserObject, value Value) error {
	return p.setThrough(obj, value, p.enum.Coerce, p.setter)
}

// Accept dispatches to VisitEnumProperty.
func (p *EnumProperty) Accept(v ClassVisitor) { v.VisitEnumProperty(p) }
