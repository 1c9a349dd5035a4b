package h5

import (
	"github.com/mmorale3/h5/internal/dspace"
	"github.com/mmorale3/h5/internal/dtype"
)

// Datatype identifies the element representation of a view or a stored
// entry.
type Datatype = dtype.Datatype

// Dataspace describes a set of addressable element locations in memory
// or storage.
type Dataspace = dspace.Dataspace

// Predefined element datatypes.
var (
	Int8    = dtype.Int8
	Int16   = dtype.Int16
	Int32   = dtype.Int32
	Int64   = dtype.Int64
	Uint8   = dtype.Uint8
	Uint16  = dtype.Uint16
	Uint32  = dtype.Uint32
	Uint64  = dtype.Uint64
	Float32 = dtype.Float32
	Float64 = dtype.Float64
)

// StringType returns a fixed-length string datatype of n bytes.
func StringType(n int) Datatype {
	return dtype.String(n)
}
