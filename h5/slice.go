package h5

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/mmorale3/h5/internal/dtype"
)

// Element enumerates the Go element types views can be built over.
// Complex types store as their float component type with the complex
// marker set; an extra innermost extent of 2 holds the interleaved
// real/imaginary pairs.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64 | ~complex64 | ~complex128
}

// ViewOf builds a contiguous view over a Go slice without copying:
// the view's Data aliases the slice's backing array. With no dims the
// view is rank 1 over the whole slice; otherwise dims reshape it and
// their product must equal len(data). Element bytes are interpreted in
// native byte order, which this layer requires to be little-endian.
func ViewOf[T Element](data []T, dims ...int64) (ArrayView, error) {
	var zero T
	kind := reflect.TypeOf(zero).Kind()
	dt, err := dtype.FromKind(kind)
	if err != nil {
		return ArrayView{}, err
	}
	isComplex := kind == reflect.Complex64 || kind == reflect.Complex128

	if len(dims) == 0 {
		dims = []int64{int64(len(data))}
	}
	n := int64(1)
	for i, d := range dims {
		if d < 0 {
			return ArrayView{}, fmt.Errorf("negative extent %d in dimension %d", d, i)
		}
		n *= d
	}
	if n != int64(len(data)) {
		return ArrayView{}, fmt.Errorf("extents %v select %d elements, slice has %d", dims, n, len(data))
	}

	full := make([]int64, 0, len(dims)+1)
	full = append(full, dims...)
	if isComplex {
		full = append(full, 2)
	}

	return contiguousView(dt, isComplex, sliceBytes(data), full), nil
}

// StridedView builds a view selecting shape[i] elements along each
// dimension of data, spaced strides[i] flat elements apart and starting
// at data[0]. The flat strides are normalized into the nested block
// form the selection model needs, so the selected elements transfer in
// row-major order of shape. Start the selection elsewhere by re-slicing
// data first.
//
// For complex element types the strides are given in complex elements;
// the view gains a trailing unit-stride extent of 2 over the float
// components.
func StridedView[T Element](data []T, shape, strides []int64) (ArrayView, error) {
	var zero T
	kind := reflect.TypeOf(zero).Kind()
	dt, err := dtype.FromKind(kind)
	if err != nil {
		return ArrayView{}, err
	}
	isComplex := kind == reflect.Complex64 || kind == reflect.Complex128

	if len(shape) != len(strides) {
		return ArrayView{}, fmt.Errorf("shape has %d dimensions, strides has %d", len(shape), len(strides))
	}
	for i := range shape {
		if shape[i] < 0 {
			return ArrayView{}, fmt.Errorf("negative extent %d in dimension %d", shape[i], i)
		}
		if strides[i] < 1 {
			return ArrayView{}, fmt.Errorf("stride %d in dimension %d is not positive", strides[i], i)
		}
	}

	sh := append([]int64(nil), shape...)
	st := append([]int64(nil), strides...)
	total := int64(len(data))
	if isComplex {
		for i := range st {
			st[i] *= 2
		}
		sh = append(sh, 2)
		st = append(st, 1)
		total *= 2
	}

	rank := len(sh)
	ltot, norm := NormalizeStrides(st, rank, total)
	return ArrayView{
		Type:    dt,
		Complex: isComplex,
		Data:    sliceBytes(data),
		Rank:    rank,
		LTot:    ltot,
		Slab: Slab{
			Offset: make([]int64, rank),
			Stride: norm,
			Count:  sh,
		},
	}, nil
}

// ScalarView builds a view over a single value. Non-complex values
// yield a rank-0 view; complex values yield a rank-1 view of extent 2
// with the complex marker set.
func ScalarView[T Element](p *T) ArrayView {
	kind := reflect.TypeOf(*p).Kind()
	dt, _ := dtype.FromKind(kind)
	data := unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))

	if kind == reflect.Complex64 || kind == reflect.Complex128 {
		return contiguousView(dt, true, data, []int64{2})
	}
	return contiguousView(dt, false, data, nil)
}

// WriteSlice writes a Go slice as the named entry, reshaped by dims
// when given.
func WriteSlice[T Element](g Group, name string, data []T, dims ...int64) error {
	v, err := ViewOf(data, dims...)
	if err != nil {
		return &SelectionError{Reason: "cannot build slice view", Err: err}
	}
	return Write(g, name, v, false)
}

// ReadSlice reads the named entry into a freshly allocated slice,
// returning the slice and the entry's extents. For complex element
// types the entry must carry the complex marker and a trailing extent
// of 2, which is stripped from the returned extents.
func ReadSlice[T Element](g Group, name string) ([]T, []int64, error) {
	info, err := Inspect(g, name)
	if err != nil {
		return nil, nil, err
	}

	var zero T
	kind := reflect.TypeOf(zero).Kind()
	isComplex := kind == reflect.Complex64 || kind == reflect.Complex128

	dims := info.Lengths
	n := int64(1)
	for _, d := range dims {
		n *= d
	}

	if isComplex {
		if !info.HasComplexTag {
			return nil, nil, fmt.Errorf("entry %q is not tagged complex", name)
		}
		if len(dims) == 0 || dims[len(dims)-1] != 2 {
			return nil, nil, fmt.Errorf("complex entry %q lacks a trailing extent of 2, has %v", name, dims)
		}
		dims = dims[:len(dims)-1]
		n /= 2
	}

	data := make([]T, n)
	v, err := ViewOf(data, dims...)
	if err != nil {
		return nil, nil, &SelectionError{Reason: "cannot build slice view", Err: err}
	}
	if err := Read(g, name, v, info); err != nil {
		return nil, nil, err
	}
	return data, dims, nil
}

func contiguousView(dt dtype.Datatype, isComplex bool, data []byte, dims []int64) ArrayView {
	rank := len(dims)
	v := ArrayView{
		Type:    dt,
		Complex: isComplex,
		Data:    data,
		Rank:    rank,
	}
	if rank == 0 {
		return v
	}

	v.LTot = dims
	v.Slab = Slab{
		Offset: make([]int64, rank),
		Stride: make([]int64, rank),
		Count:  dims,
	}
	for i := range v.Slab.Stride {
		v.Slab.Stride[i] = 1
	}
	return v
}

// sliceBytes reinterprets a slice's backing array as bytes. Same trick
// as the direct-copy fast path in columnar codecs: sizeof(T)*N bytes,
// valid only on little-endian targets, which all supported platforms
// are.
func sliceBytes[T Element](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(zero)))
}
