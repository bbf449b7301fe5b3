package meta

import "fmt"

// Kind identifies the type of the payload carried by a Value.
type Kind int

const (
	// KindNone is the kind of the zero Value, which carries no payload.
	KindNone Kind = iota

	// KindBool is a boolean value.
	KindBool

	// KindInt is a signed 64-bit integer value.
	KindInt

	// KindReal is a 64-bit floating-point value.
	KindReal

	// KindString is a text value.
	KindString

	// KindEnum is an enumerator of a registered Enum.
	KindEnum

	// KindArray is an ordered sequence of Values.
	KindArray

	// KindUser is a reference to a native instance, carried as a UserObject.
	KindUser
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindUser:
		return "user"
	default:
		return "unknown"
	}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "none":
		return KindNone, nil
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "real":
		return KindReal, nil
	case "string":
		return KindString, nil
	case "enum":
		return KindEnum, nil
	case "array":
		return KindArray, nil
	case "user":
		return KindUser, nil
	default:
		return 0, fmt.Errorf("unknown kind: %s", s)
	}
}
