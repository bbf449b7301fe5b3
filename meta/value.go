package meta

import (
	"fmt"
	"strconv"
)

// Value is an immutable tagged container for any value exchanged through
// the metaobject layer. The payload's runtime shape always matches the
// kind; the zero Value has KindNone and no payload.
//
// Conversion between kinds follows a fixed coercion table: booleans,
// integers, reals, strings and enumerators convert between each other
// where a lossless or conventional rule exists (integer widening to real,
// numeric strings to numbers, enumerator name/value round-trips); arrays
// and object references never coerce to another kind. A failed coercion
// is reported as an invalid-value error, never as a silent zero.
type Value struct {
	kind Kind
	data any
}

// enumerator is the payload of a KindEnum value. The value is always one
// of the enum's registered pairs.
type enumerator struct {
	enum  *Enum
	value int64
}

// NoValue is the empty value. It is the result of failed getters and the
// payload of unset tags.
var NoValue = Value{}

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, data: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, data: i} }

// Real returns a floating-point Value.
func Real(f float64) Value { return Value{kind: KindReal, data: f} }

// String returns a text Value.
func String(s string) Value { return Value{kind: KindString, data: s} }

// Array returns an array Value holding the given elements. The elements
// are copied, so later mutation of the argument slice is not observed.
func Array(elems ...Value) Value {
	copied := make([]Value, len(elems))
	copy(copied, elems)
	return Value{kind: KindArray, data: copied}
}

// Object returns a Value referencing a native instance through its handle.
func Object(obj UserObject) Value { return Value{kind: KindUser, data: obj} }

// NewValue wraps a native Go value. Booleans, integers of any width,
// floats, strings, Values, []Value and UserObject are supported; nil maps
// to NoValue. Unsupported types are reported as an invalid-value error.
func NewValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NoValue, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case float32:
		return Real(float64(x)), nil
	case float64:
		return Real(x), nil
	case string:
		return String(x), nil
	case []Value:
		return Array(x...), nil
	case UserObject:
		return Object(x), nil
	default:
		return NoValue, fmt.Errorf("unsupported native type %T: %w", v, errNotConvertible(KindNone, "value"))
	}
}

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether the value is empty.
func (v Value) IsNone() bool { return v.kind == KindNone }

// ToBool converts the value to a boolean.
func (v Value) ToBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.data.(bool), nil
	case KindInt:
		return v.data.(int64) != 0, nil
	case KindReal:
		return v.data.(float64) != 0, nil
	case KindString:
		b, err := strconv.ParseBool(v.data.(string))
		if err != nil {
			return false, errNotConvertible(v.kind, KindBool.String())
		}
		return b, nil
	case KindEnum:
		return v.data.(enumerator).value != 0, nil
	default:
		return false, errNotConvertible(v.kind, KindBool.String())
	}
}

// ToInt converts the value to an integer. Reals are truncated; strings
// must parse as base-10 integers; enumerators yield their numeric value.
func (v Value) ToInt() (int64, error) {
	switch v.kind {
	case KindBool:
		if v.data.(bool) {
			return 1, nil
		}
		return 0, nil
	case KindInt:
		return v.data.(int64), nil
	case KindReal:
		return int64(v.data.(float64)), nil
	case KindString:
		i, err := strconv.ParseInt(v.data.(string), 10, 64)
		if err != nil {
			return 0, errNotConvertible(v.kind, KindInt.String())
		}
		return i, nil
	case KindEnum:
		return v.data.(enumerator).value, nil
	default:
		return 0, errNotConvertible(v.kind, KindInt.String())
	}
}

// ToReal converts the value to a floating-point number.
func (v Value) ToReal() (float64, error) {
	switch v.kind {
	case KindBool:
		if v.data.(bool) {
			return 1, nil
		}
		return 0, nil
	case KindInt:
		return float64(v.data.(int64)), nil
	case KindReal:
		return v.data.(float64), nil
	case KindString:
		f, err := strconv.ParseFloat(v.data.(string), 64)
		if err != nil {
			return 0, errNotConvertible(v.kind, KindReal.String())
		}
		return f, nil
	case KindEnum:
		return float64(v.data.(enumerator).value), nil
	default:
		return 0, errNotConvertible(v.kind, KindReal.String())
	}
}

// ToString converts the value to text. Enumerators yield their name.
func (v Value) ToString() (string, error) {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.data.(bool)), nil
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10), nil
	case KindReal:
		return strconv.FormatFloat(v.data.(float64), 'g', -1, 64), nil
	case KindString:
		return v.data.(string), nil
	case KindEnum:
		e := v.data.(enumerator)
		name, err := e.enum.NameOf(e.value)
		if err != nil {
			return "", errNotConvertible(v.kind, KindString.String())
		}
		return name, nil
	default:
		return "", errNotConvertible(v.kind, KindString.String())
	}
}

// ToArray returns the element sequence of an array value. No other kind
// coerces to an array.
func (v Value) ToArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, errNotConvertible(v.kind, KindArray.String())
	}
	elems := v.data.([]Value)
	copied := make([]Value, len(elems))
	copy(copied, elems)
	return copied, nil
}

// ToUser returns the instance handle of an object-reference value. No
// other kind coerces to an object reference.
func (v Value) ToUser() (UserObject, error) {
	if v.kind != KindUser {
		return UserObject{}, errNotConvertible(v.kind, KindUser.String())
	}
	return v.data.(UserObject), nil
}

// ToEnum returns the enum metadata and numeric value of an enumerator
// value. Coercion of strings and integers toward an enum requires the
// target Enum and is performed by Enum.Coerce.
func (v Value) ToEnum() (*Enum, int64, error) {
	if v.kind != KindEnum {
		return nil, 0, errNotConvertible(v.kind, KindEnum.String())
	}
	e := v.data.(enumerator)
	return e.enum, e.value, nil
}

// ConvertibleTo reports whether the value can be coerced to the given
// kind.
func (v Value) ConvertibleTo(k Kind) bool {
	_, err := v.ConvertTo(k)
	return err == nil
}

// ConvertTo coerces the value to the given kind, reporting an
// invalid-value error when no coercion rule applies.
func (v Value) ConvertTo(k Kind) (Value, error) {
	if v.kind == k {
		return v, nil
	}
	switch k {
	case KindBool:
		b, err := v.ToBool()
		if err != nil {
			return NoValue, err
		}
		return Bool(b), nil
	case KindInt:
		i, err := v.ToInt()
		if err != nil {
			return NoValue, err
		}
		return Int(i), nil
	case KindReal:
		f, err := v.ToReal()
		if err != nil {
			return NoValue, err
		}
		return Real(f), nil
	case KindString:
		s, err := v.ToString()
		if err != nil {
			return NoValue, err
		}
		return String(s), nil
	default:
		// none, enum, array and user accept no cross-kind coercion;
		// enum coercion with a known target goes through Enum.Coerce.
		return NoValue, errNotConvertible(v.kind, k.String())
	}
}

// Equal compares two values. Values of different kinds are compared after
// coercing the other operand to the receiver's kind (or the reverse);
// values of incompatible kinds are an error, not a silent false.
func (v Value) Equal(o Value) (bool, error) {
	if v.kind == o.kind {
		return v.sameAs(o), nil
	}
	if conv, err := o.ConvertTo(v.kind); err == nil {
		return v.sameAs(conv), nil
	}
	if conv, err := v.ConvertTo(o.kind); err == nil {
		return o.sameAs(conv), nil
	}
	return false, fmt.Errorf("cannot compare %s with %s: %w", v.kind, o.kind, errNotConvertible(v.kind, o.kind.String()))
}

// sameAs is strict same-kind equality. Arrays compare elementwise, object
// references compare pointer and class view.
func (v Value) sameAs(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindArray:
		a, b := v.data.([]Value), o.data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].sameAs(b[i]) {
				return false
			}
		}
		return true
	case KindUser:
		a, b := v.data.(UserObject), o.data.(UserObject)
		return a.ptr == b.ptr && a.class == b.class
	case KindEnum:
		a, b := v.data.(enumerator), o.data.(enumerator)
		return a.enum.Equal(b.enum) && a.value == b.value
	default:
		return v.data == o.data
	}
}

// String implements fmt.Stringer with a best-effort display form. It is
// for diagnostics only; use ToString for the checked text coercion.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "<none>"
	case KindArray:
		return fmt.Sprintf("array(%d)", len(v.data.([]Value)))
	case KindUser:
		obj := v.data.(UserObject)
		if obj.class != nil {
			return fmt.Sprintf("object(%s)", obj.class.Name())
		}
		return "object(?)"
	default:
		s, err := v.ToString()
		if err != nil {
			return "<invalid>"
		}
		return s
	}
}
