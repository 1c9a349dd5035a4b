// Package dspace models dataspaces: the shape of a region in memory or
// storage, plus an optional hyperslab sub-selection over that shape.
//
// A hyperslab selects, per dimension, count blocks of block consecutive
// elements, the blocks spaced stride elements apart starting at offset.
// The selected points of a dataspace enumerate in row-major order; two
// dataspaces with the same number of selected points define an
// element-by-element pairing for a transfer.
package dspace

import (
	"fmt"
)

// Dataspace describes a set of addressable element locations.
// A scalar dataspace (rank 0, nil dims) denotes exactly one element.
type Dataspace struct {
	Rank int
	Dims []int64 // declared extent per dimension

	sel *Hyperslab // nil means the whole extent is selected
}

// Hyperslab holds a regular sub-selection: offset, stride, count, and
// block per dimension. Block may be nil, meaning unit blocks.
type Hyperslab struct {
	Offset []int64
	Stride []int64
	Count  []int64
	Block  []int64
}

// Scalar returns a rank-0 dataspace denoting a single element.
func Scalar() *Dataspace {
	return &Dataspace{}
}

// Simple returns a dataspace over the given extents with no selection.
func Simple(dims []int64) (*Dataspace, error) {
	for i, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("negative extent %d in dimension %d", d, i)
		}
	}
	ds := &Dataspace{Rank: len(dims), Dims: make([]int64, len(dims))}
	copy(ds.Dims, dims)
	return ds, nil
}

// IsScalar reports whether the dataspace is rank 0.
func (ds *Dataspace) IsScalar() bool {
	return ds.Rank == 0
}

// DimsCopy returns a copy of the declared extents.
func (ds *Dataspace) DimsCopy() []int64 {
	if ds.Dims == nil {
		return nil
	}
	out := make([]int64, len(ds.Dims))
	copy(out, ds.Dims)
	return out
}

// NumPoints returns the total number of elements in the declared extent.
// A scalar dataspace has one point.
func (ds *Dataspace) NumPoints() int64 {
	if ds.Rank == 0 {
		return 1
	}
	n := int64(1)
	for _, d := range ds.Dims {
		n *= d
	}
	return n
}

// SelectHyperslab applies a hyperslab selection, replacing any previous
// selection. Block may be nil for unit blocks. The selection must fit
// within the declared extents in every dimension.
func (ds *Dataspace) SelectHyperslab(offset, stride, count, block []int64) error {
	if ds.Rank == 0 {
		return fmt.Errorf("cannot select a hyperslab on a scalar dataspace")
	}
	if len(offset) != ds.Rank || len(stride) != ds.Rank || len(count) != ds.Rank {
		return fmt.Errorf("hyperslab rank mismatch: space has rank %d, got offset/stride/count of %d/%d/%d",
			ds.Rank, len(offset), len(stride), len(count))
	}
	if block != nil && len(block) != ds.Rank {
		return fmt.Errorf("hyperslab rank mismatch: space has rank %d, got block of %d", ds.Rank, len(block))
	}

	sel := &Hyperslab{
		Offset: append([]int64(nil), offset...),
		Stride: append([]int64(nil), stride...),
		Count:  append([]int64(nil), count...),
	}
	if block != nil {
		sel.Block = append([]int64(nil), block...)
	}

	for i := 0; i < ds.Rank; i++ {
		b := sel.blockAt(i)
		if offset[i] < 0 || stride[i] < 1 || count[i] < 0 || b < 1 {
			return fmt.Errorf("invalid hyperslab in dimension %d: offset=%d stride=%d count=%d block=%d",
				i, offset[i], stride[i], count[i], b)
		}
		if count[i] > 0 {
			last := offset[i] + (count[i]-1)*stride[i] + b - 1
			if last >= ds.Dims[i] {
				return fmt.Errorf("hyperslab exceeds extent in dimension %d: last index %d, extent %d",
					i, last, ds.Dims[i])
			}
		}
	}

	ds.sel = sel
	return nil
}

// Selection returns the current hyperslab selection, or nil when the
// whole extent is selected.
func (ds *Dataspace) Selection() *Hyperslab {
	return ds.sel
}

func (h *Hyperslab) blockAt(i int) int64 {
	if h.Block == nil {
		return 1
	}
	return h.Block[i]
}

// SelectionPoints returns the number of selected elements: the product
// of count*block per dimension under a hyperslab, NumPoints otherwise.
func (ds *Dataspace) SelectionPoints() int64 {
	if ds.sel == nil {
		return ds.NumPoints()
	}
	n := int64(1)
	for i := 0; i < ds.Rank; i++ {
		n *= ds.sel.Count[i] * ds.sel.blockAt(i)
	}
	return n
}

// FlatIndices returns the flat row-major element indices of every
// selected point, in row-major enumeration order. A scalar dataspace
// yields the single index 0.
func (ds *Dataspace) FlatIndices() []int64 {
	if ds.Rank == 0 {
		return []int64{0}
	}

	// Per-dimension sorted coordinate lists.
	coords := make([][]int64, ds.Rank)
	for i := 0; i < ds.Rank; i++ {
		if ds.sel == nil {
			c := make([]int64, ds.Dims[i])
			for j := range c {
				c[j] = int64(j)
			}
			coords[i] = c
			continue
		}
		b := ds.sel.blockAt(i)
		c := make([]int64, 0, ds.sel.Count[i]*b)
		for k := int64(0); k < ds.sel.Count[i]; k++ {
			base := ds.sel.Offset[i] + k*ds.sel.Stride[i]
			for j := int64(0); j < b; j++ {
				c = append(c, base+j)
			}
		}
		coords[i] = c
	}

	// Row-major strides over the declared extent.
	strides := make([]int64, ds.Rank)
	strides[ds.Rank-1] = 1
	for i := ds.Rank - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * ds.Dims[i+1]
	}

	total := int64(1)
	for _, c := range coords {
		total *= int64(len(c))
	}
	out := make([]int64, 0, total)
	if total == 0 {
		return out
	}

	idx := make([]int, ds.Rank)
	for {
		flat := int64(0)
		for i := 0; i < ds.Rank; i++ {
			flat += coords[i][idx[i]] * strides[i]
		}
		out = append(out, flat)

		// Advance the rightmost dimension first.
		d := ds.Rank - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < len(coords[d]) {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			return out
		}
	}
}
