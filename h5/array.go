package h5

import (
	"fmt"

	"github.com/mmorale3/h5/internal/dtype"
)

// Slab holds the hyperslab selection parameters of a view: per
// dimension, the starting element index, the element-to-element
// spacing, the number of selected blocks, and the block length.
// Block may be nil, meaning unit blocks.
type Slab struct {
	Offset []int64
	Stride []int64
	Count  []int64
	Block  []int64
}

// Rank returns the number of dimensions of the selection.
func (s Slab) Rank() int {
	return len(s.Count)
}

// Size returns the total number of selected elements.
func (s Slab) Size() int64 {
	n := int64(1)
	for i, c := range s.Count {
		n *= c
		if s.Block != nil {
			n *= s.Block[i]
		}
	}
	return n
}

// ArrayView describes one transfer between a caller-owned memory
// buffer and storage: the element type, the buffer bytes, the selected
// hyperslab, and the declared total extent of the buffer. The view
// never owns Data and holds no state across calls.
//
// A rank-0 view denotes exactly one scalar element; its Slab and LTot
// are empty.
type ArrayView struct {
	Type    dtype.Datatype
	Complex bool   // tag the stored entry as interleaved real/imaginary pairs
	Data    []byte // caller buffer, little-endian elements of Type
	Rank    int
	Slab    Slab
	LTot    []int64 // declared buffer extents, possibly larger than the slab
}

func (v ArrayView) validate() error {
	if !v.Type.Valid() {
		return &SelectionError{Reason: fmt.Sprintf("invalid element type %s", v.Type.Name())}
	}
	if v.Rank < 0 {
		return &SelectionError{Reason: fmt.Sprintf("negative rank %d", v.Rank)}
	}
	if len(v.Slab.Offset) != v.Rank || len(v.Slab.Stride) != v.Rank || len(v.Slab.Count) != v.Rank {
		return &SelectionError{Reason: fmt.Sprintf(
			"slab rank mismatch: view has rank %d, offset/stride/count have %d/%d/%d entries",
			v.Rank, len(v.Slab.Offset), len(v.Slab.Stride), len(v.Slab.Count))}
	}
	if v.Slab.Block != nil && len(v.Slab.Block) != v.Rank {
		return &SelectionError{Reason: fmt.Sprintf(
			"slab rank mismatch: view has rank %d, block has %d entries", v.Rank, len(v.Slab.Block))}
	}
	if len(v.LTot) != v.Rank {
		return &SelectionError{Reason: fmt.Sprintf(
			"total-length rank mismatch: view has rank %d, got %d extents", v.Rank, len(v.LTot))}
	}
	for i := 0; i < v.Rank; i++ {
		if v.Slab.Count[i] < 0 || v.LTot[i] < 0 {
			return &SelectionError{Reason: fmt.Sprintf(
				"negative count or extent in dimension %d", i)}
		}
	}
	return nil
}

// StoredInfo describes an existing stored entry: its extents, element
// type, and whether it carries the complex marker. Produced fresh by
// Inspect and immutable afterwards.
type StoredInfo struct {
	Lengths       []int64
	Type          dtype.Datatype
	HasComplexTag bool
}

// Rank returns the number of stored dimensions.
func (i StoredInfo) Rank() int {
	return len(i.Lengths)
}
