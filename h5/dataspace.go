package h5

import (
	"github.com/mmorale3/h5/internal/dspace"
)

// makeMemDataspace builds the memory-side dataspace of a view: the
// declared total extent with the view's hyperslab selected on it.
// A rank-0 view yields a scalar dataspace.
func makeMemDataspace(v ArrayView) (*dspace.Dataspace, error) {
	if v.Rank == 0 {
		return dspace.Scalar(), nil
	}

	ds, err := dspace.Simple(v.LTot)
	if err != nil {
		return nil, &SelectionError{Reason: "cannot create the memory dataspace", Err: err}
	}

	if err := ds.SelectHyperslab(v.Slab.Offset, v.Slab.Stride, v.Slab.Count, v.Slab.Block); err != nil {
		return nil, &SelectionError{Reason: "cannot select the hyperslab", Err: err}
	}

	return ds, nil
}
