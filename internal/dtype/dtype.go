// Package dtype models the element datatypes handled by the array
// interface: fixed-point integers, IEEE floats, and fixed-length strings.
//
// A Datatype is a small value type; it carries no storage-format details
// beyond class, width, and signedness. Byte order is always little-endian.
package dtype

import (
	"fmt"
	"reflect"
)

// Class represents the class of a datatype.
type Class uint8

const (
	ClassFixedPoint Class = 0 // Integers
	ClassFloatPoint Class = 1 // Floating-point
	ClassString     Class = 3 // Fixed-length strings
)

// String returns the display name of a datatype class.
func (c Class) String() string {
	switch c {
	case ClassFixedPoint:
		return "fixed-point"
	case ClassFloatPoint:
		return "float-point"
	case ClassString:
		return "string"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Datatype describes one element of an array: its class, its width in
// bytes, and (for fixed-point types) its signedness.
type Datatype struct {
	Class  Class
	Size   int  // element width in bytes
	Signed bool // fixed-point only
}

// Predefined numeric datatypes.
var (
	Int8    = Datatype{Class: ClassFixedPoint, Size: 1, Signed: true}
	Int16   = Datatype{Class: ClassFixedPoint, Size: 2, Signed: true}
	Int32   = Datatype{Class: ClassFixedPoint, Size: 4, Signed: true}
	Int64   = Datatype{Class: ClassFixedPoint, Size: 8, Signed: true}
	Uint8   = Datatype{Class: ClassFixedPoint, Size: 1, Signed: false}
	Uint16  = Datatype{Class: ClassFixedPoint, Size: 2, Signed: false}
	Uint32  = Datatype{Class: ClassFixedPoint, Size: 4, Signed: false}
	Uint64  = Datatype{Class: ClassFixedPoint, Size: 8, Signed: false}
	Float32 = Datatype{Class: ClassFloatPoint, Size: 4}
	Float64 = Datatype{Class: ClassFloatPoint, Size: 8}
)

// String returns a fixed-length string datatype of n bytes.
func String(n int) Datatype {
	return Datatype{Class: ClassString, Size: n}
}

// Equal reports whether two datatypes are exactly the same type.
func Equal(a, b Datatype) bool {
	return a == b
}

// SameClass reports whether two datatypes belong to the same class.
func SameClass(a, b Datatype) bool {
	return a.Class == b.Class
}

// Name returns the display name of a datatype, e.g. "int32", "float64",
// "string[4]". Used in error messages and diagnostics.
func (dt Datatype) Name() string {
	switch dt.Class {
	case ClassFixedPoint:
		if dt.Signed {
			return fmt.Sprintf("int%d", dt.Size*8)
		}
		return fmt.Sprintf("uint%d", dt.Size*8)
	case ClassFloatPoint:
		return fmt.Sprintf("float%d", dt.Size*8)
	case ClassString:
		return fmt.Sprintf("string[%d]", dt.Size)
	default:
		return dt.Class.String()
	}
}

// Valid reports whether the datatype has a recognized class and a
// positive element width.
func (dt Datatype) Valid() bool {
	if dt.Size <= 0 {
		return false
	}
	switch dt.Class {
	case ClassFixedPoint:
		return dt.Size == 1 || dt.Size == 2 || dt.Size == 4 || dt.Size == 8
	case ClassFloatPoint:
		return dt.Size == 4 || dt.Size == 8
	case ClassString:
		return true
	default:
		return false
	}
}

// FromKind returns the datatype corresponding to a Go numeric kind.
// Complex kinds map to the component float type; the caller is
// responsible for doubling the innermost extent and tagging the view.
func FromKind(k reflect.Kind) (Datatype, error) {
	switch k {
	case reflect.Int8:
		return Int8, nil
	case reflect.Int16:
		return Int16, nil
	case reflect.Int32:
		return Int32, nil
	case reflect.Int64, reflect.Int:
		return Int64, nil
	case reflect.Uint8:
		return Uint8, nil
	case reflect.Uint16:
		return Uint16, nil
	case reflect.Uint32:
		return Uint32, nil
	case reflect.Uint64, reflect.Uint:
		return Uint64, nil
	case reflect.Float32:
		return Float32, nil
	case reflect.Float64:
		return Float64, nil
	case reflect.Complex64:
		return Float32, nil
	case reflect.Complex128:
		return Float64, nil
	default:
		return Datatype{}, fmt.Errorf("unsupported element kind: %v", k)
	}
}

// GoType returns the Go reflect.Type that corresponds to the datatype.
func (dt Datatype) GoType() (reflect.Type, error) {
	switch dt.Class {
	case ClassFixedPoint:
		switch dt.Size {
		case 1:
			if dt.Signed {
				return reflect.TypeOf(int8(0)), nil
			}
			return reflect.TypeOf(uint8(0)), nil
		case 2:
			if dt.Signed {
				return reflect.TypeOf(int16(0)), nil
			}
			return reflect.TypeOf(uint16(0)), nil
		case 4:
			if dt.Signed {
				return reflect.TypeOf(int32(0)), nil
			}
			return reflect.TypeOf(uint32(0)), nil
		case 8:
			if dt.Signed {
				return reflect.TypeOf(int64(0)), nil
			}
			return reflect.TypeOf(uint64(0)), nil
		default:
			return nil, fmt.Errorf("unsupported fixed-point size: %d", dt.Size)
		}
	case ClassFloatPoint:
		switch dt.Size {
		case 4:
			return reflect.TypeOf(float32(0)), nil
		case 8:
			return reflect.TypeOf(float64(0)), nil
		default:
			return nil, fmt.Errorf("unsupported float size: %d", dt.Size)
		}
	case ClassString:
		return reflect.TypeOf(""), nil
	default:
		return nil, fmt.Errorf("unsupported datatype class: %d", dt.Class)
	}
}
