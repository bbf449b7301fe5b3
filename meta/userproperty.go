package meta

// UserProperty is a property whose value is a reference to an instance of
// another metaclass. Assigned handles viewed as a derived class are
// re-viewed through the declared class; a handle that cannot be re-viewed
// is an invalid-value error.
type UserProperty struct {
	propertyBase
	class  *Class
	getter GetterFunc
	setter SetterFunc
}

// Class returns the metaclass of the referenced instances.
func (p *UserProperty) Class() *Class { return p.class }

// Get returns the property's current value as an object-reference Value.
func (p *UserProperty) Get(obj UserObject) (Value, error) {
	return p.getThrough(obj, p.getter)
}

// Set coerces value to a handle of the declared class and writes it.
func (p *UserProperty) Set(obj UserObject, value Value) error {
	return p.setThrough(obj, value, p.coerce, p.setter)
}

func (p *UserProperty) coerce(value Value) (Value, error) {
	handle, err := value.ToUser()
	if err != nil {
		return NoValue, err
	}
	viewed, err := handle.ConvertTo(p.class)
	if err != nil {
		return NoValue, errNotConvertible(KindUser, "class "+p.class.Name())
	}
	return Object(viewed), nil
}

// Accept dispatches to VisitUserProperty.
func (p *UserProperty) Accept(v ClassVisitor) { v.VisitUserProperty(p) }
