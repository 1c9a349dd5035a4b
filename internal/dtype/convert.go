package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Convert re-encodes n elements of raw little-endian data from one
// datatype to another. When the types are equal the input is returned
// unchanged. Fixed-point values convert through int64/uint64, floats
// through float64; narrowing conversions truncate the way a Go
// conversion would.
//
// This is the engine-side implicit conversion that backs the lenient
// exact-type policy of dataset reads: a stored float32 array can be
// read into a float64 buffer without a copy loop in the caller.
func Convert(from, to Datatype, src []byte, n int) ([]byte, error) {
	if Equal(from, to) {
		return src, nil
	}
	if !SameClass(from, to) {
		return nil, fmt.Errorf("cannot convert %s to %s", from.Name(), to.Name())
	}
	if len(src) < n*from.Size {
		return nil, fmt.Errorf("short source: have %d bytes, need %d", len(src), n*from.Size)
	}

	dst := make([]byte, n*to.Size)
	switch from.Class {
	case ClassFixedPoint:
		for i := 0; i < n; i++ {
			v := getUint(src[i*from.Size:], from.Size)
			if from.Signed {
				v = uint64(signExtend(v, from.Size))
			}
			putUint(dst[i*to.Size:], v, to.Size)
		}
	case ClassFloatPoint:
		for i := 0; i < n; i++ {
			var f float64
			if from.Size == 4 {
				f = float64(math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:])))
			} else {
				f = math.Float64frombits(binary.LittleEndian.Uint64(src[i*8:]))
			}
			if to.Size == 4 {
				binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(float32(f)))
			} else {
				binary.LittleEndian.PutUint64(dst[i*8:], math.Float64bits(f))
			}
		}
	default:
		return nil, fmt.Errorf("cannot convert %s to %s", from.Name(), to.Name())
	}
	return dst, nil
}

func getUint(b []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

func putUint(b []byte, v uint64, size int) {
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		binary.LittleEndian.PutUint64(b, v)
	}
}

func signExtend(v uint64, size int) int64 {
	shift := uint(64 - size*8)
	return int64(v<<shift) >> shift
}
