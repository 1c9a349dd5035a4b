package h5

import (
	"log"

	"github.com/mmorale3/h5/internal/dtype"
)

// Warnf is invoked for non-fatal compatibility warnings, currently
// only the exact-type mismatch on dataset reads. It defaults to the
// standard library logger and may be replaced, e.g. with a no-op
// during tests.
var Warnf = log.Printf

// Inspect opens the named entry and reports its stored extents,
// element type, and whether it carries the complex marker. The entry
// is not modified.
func Inspect(g Group, name string) (StoredInfo, error) {
	ent, err := g.c.OpenEntry(name)
	if err != nil {
		return StoredInfo{}, &IOError{Op: "open", Name: name, Container: g.Path(), Err: err}
	}

	sp := ent.Space()
	return StoredInfo{
		Lengths:       sp.DimsCopy(),
		Type:          ent.Type(),
		HasComplexTag: ent.FindAttribute(complexMarker),
	}, nil
}

// Read copies the named entry's contents into the view's memory
// selection after validating compatibility against info (obtained from
// Inspect). Checks run in order and fail before any byte is moved:
// type class (fatal), exact type (warn only; the engine converts),
// rank, then exact lengths against the view's selected counts.
//
// A stored entry with zero total points reads as a no-op.
func Read(g Group, name string, v ArrayView, info StoredInfo) error {
	if err := v.validate(); err != nil {
		return err
	}

	ent, err := g.c.OpenEntry(name)
	if err != nil {
		return &IOError{Op: "open", Name: name, Container: g.Path(), Err: err}
	}

	if !dtype.SameClass(v.Type, info.Type) {
		return &TypeClassError{Requested: v.Type.Name(), Stored: info.Type.Name()}
	}

	// Exact-type leniency: width promotions are legitimate, so a
	// mismatch only warns and the read proceeds with the requested
	// type through the engine's conversion.
	if !dtype.Equal(v.Type, info.Type) {
		Warnf("WARNING: mismatching types reading %q: expecting a %s while the stored array has type %s",
			name, v.Type.Name(), info.Type.Name())
	}

	if info.Rank() != v.Rank {
		return &RankError{Name: name, Want: v.Rank, Got: info.Rank()}
	}

	if !equalLengths(info.Lengths, v.Slab.Count) {
		return &LengthsError{Name: name, Want: v.Slab.Count, Got: info.Lengths}
	}

	mem, err := makeMemDataspace(v)
	if err != nil {
		return err
	}

	if ent.Space().NumPoints() > 0 {
		if err := ent.Read(mem, v.Type, v.Data); err != nil {
			return &IOError{Op: "read", Name: name, Container: g.Path(), Err: err}
		}
	}

	return nil
}

func equalLengths(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
