package h5

import (
	"github.com/mmorale3/h5/internal/dspace"
	"github.com/mmorale3/h5/internal/storage"
)

// complexMarker is the companion attribute tagging a stored entry as
// interleaved real/imaginary pairs. The stored element type stays the
// scalar component type; complex-ness lives only in this marker.
const complexMarker = "__complex__"

// deflateLevel is the fixed compression level used for compressed
// entries.
const deflateLevel = 1

// Write creates the named entry in g with the view's selected shape
// and writes the view's memory selection into it, replacing any
// pre-existing entry of the same name. With compress set, non-scalar
// entries are chunked over their full extent and deflate-compressed.
//
// Writing a view whose selection has zero total points creates the
// (empty) entry but performs no byte transfer. Complex views get the
// complex marker attribute after the data is written.
func Write(g Group, name string, v ArrayView, compress bool) error {
	if err := v.validate(); err != nil {
		return err
	}

	// Overwrite semantics: drop whatever held the name before.
	g.Unlink(name)

	var cfg storage.EntryConfig
	if compress && v.Rank != 0 {
		chunks := make([]int64, v.Rank)
		for i, c := range v.Slab.Count {
			if c < 1 {
				c = 1
			}
			chunks[i] = c
		}
		cfg = storage.EntryConfig{Chunks: chunks, DeflateLevel: deflateLevel}
	}

	// The stored shape is the selected shape, not the declared buffer
	// extent.
	fileSpace, err := makeFileDataspace(v.Rank, v.Slab.Count)
	if err != nil {
		return err
	}

	ent, err := g.c.CreateEntry(name, v.Type, fileSpace, cfg)
	if err != nil {
		return &CreateError{Name: name, Container: g.Path(), Err: err}
	}

	mem, err := makeMemDataspace(v)
	if err != nil {
		return err
	}

	if mem.SelectionPoints() > 0 {
		if err := ent.Write(mem, v.Type, v.Data); err != nil {
			return &IOError{Op: "write", Name: name, Container: g.Path(), Err: err}
		}
	}

	if v.Complex {
		if err := writeComplexMarker(ent); err != nil {
			return &IOError{Op: "write", Name: name, Container: g.Path(), Err: err}
		}
	}

	return nil
}

func makeFileDataspace(rank int, counts []int64) (*dspace.Dataspace, error) {
	if rank == 0 {
		return dspace.Scalar(), nil
	}
	ds, err := dspace.Simple(counts)
	if err != nil {
		return nil, &SelectionError{Reason: "cannot create the storage dataspace", Err: err}
	}
	return ds, nil
}

// writeComplexMarker attaches the marker attribute with string value
// "1", null-terminated the way fixed-length string attributes store.
func writeComplexMarker(obj Object) error {
	dt := StringType(2)
	attr, err := obj.CreateAttribute(complexMarker, dt, dspace.Scalar())
	if err != nil {
		return err
	}
	return attr.Write(dt, []byte{'1', 0})
}
