package meta

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

// Sentinel errors for the conditions specific to the metaobject layer.
// Lookup, range and coercion failures reuse the errdefs classification
// sentinels and are checked with the Is* helpers below.
var (
	// ErrInvalidObject reports an operation attempted through an invalid
	// or incompatible instance handle.
	ErrInvalidObject = errors.New("invalid object")

	// ErrInvalidAccess reports a property access rejected by its
	// readable/writable gate. ErrNotReadable and ErrNotWritable both
	// match it.
	ErrInvalidAccess = errors.New("invalid access")

	// ErrNotReadable reports a read attempted while the property is not
	// readable for the given object.
	ErrNotReadable = fmt.Errorf("not readable: %w", ErrInvalidAccess)

	// ErrNotWritable reports a write attempted while the property is not
	// writable for the given object.
	ErrNotWritable = fmt.Errorf("not writable: %w", ErrInvalidAccess)

	// ErrInvalidConversion reports an instance handle re-typing to a
	// metaclass that is not a base of the handle's current view.
	ErrInvalidConversion = errors.New("invalid conversion")
)

// IsInvalidObject reports whether err is an invalid-object error.
func IsInvalidObject(err error) bool { return errors.Is(err, ErrInvalidObject) }

// IsInvalidAccess reports whether err is a not-readable or not-writable
// error.
func IsInvalidAccess(err error) bool { return errors.Is(err, ErrInvalidAccess) }

// IsInvalidConversion reports whether err is a handle re-typing error.
func IsInvalidConversion(err error) bool { return errors.Is(err, ErrInvalidConversion) }

// IsInvalidValue reports whether err is a value-coercion failure.
func IsInvalidValue(err error) bool { return errdefs.IsInvalidArgument(err) }

// IsNotFound reports whether err is a name-based lookup miss (unknown
// class, property, function or enumerator).
func IsNotFound(err error) bool { return errdefs.IsNotFound(err) }

// IsOutOfRange reports whether err is an index-based lookup failure.
func IsOutOfRange(err error) bool { return errdefs.IsOutOfRange(err) }

// IsAlreadyExists reports whether err is a duplicate registration.
func IsAlreadyExists(err error) bool { return errdefs.IsAlreadyExists(err) }

func errUnknownClass(name string) error {
	return fmt.Errorf("unknown class %q: %w", name, errdefs.ErrNotFound)
}

func errUnknownEnum(name string) error {
	return fmt.Errorf("unknown enum %q: %w", name, errdefs.ErrNotFound)
}

func errUnknownProperty(class, name string) error {
	return fmt.Errorf("class %q has no property %q: %w", class, name, errdefs.ErrNotFound)
}

func errUnknownFunction(class, name string) error {
	return fmt.Errorf("class %q has no function %q: %w", class, name, errdefs.ErrNotFound)
}

func errDuplicate(what, name string) error {
	return fmt.Errorf("%s %q already registered: %w", what, name, errdefs.ErrAlreadyExists)
}

func errIndexOutOfRange(what string, index, size int) error {
	return fmt.Errorf("%s index %d out of range [0, %d): %w", what, index, size, errdefs.ErrOutOfRange)
}

func errNotConvertible(from Kind, to string) error {
	return fmt.Errorf("value of kind %s not convertible to %s: %w", from, to, errdefs.ErrInvalidArgument)
}
