package memfile

import (
	"fmt"

	"github.com/mmorale3/h5/internal/dspace"
	"github.com/mmorale3/h5/internal/dtype"
	"github.com/mmorale3/h5/internal/storage"
)

// entry holds one stored array: shape, type, creation properties, and
// the payload bytes in row-major order of the stored shape.
type entry struct {
	file  *File
	path  string
	dt    dtype.Datatype
	space *dspace.Dataspace
	cfg   storage.EntryConfig
	data  []byte
	attrs attrSet
}

func (e *entry) Space() *dspace.Dataspace {
	return &dspace.Dataspace{Rank: e.space.Rank, Dims: e.space.DimsCopy()}
}

func (e *entry) Type() dtype.Datatype {
	return e.dt
}

// Write gathers the selected points of mem from src and stores them as
// the entry's full extent, converting element widths when dt differs
// from the stored type.
func (e *entry) Write(mem *dspace.Dataspace, dt dtype.Datatype, src []byte) error {
	n := e.space.NumPoints()
	if mem.SelectionPoints() != n {
		return fmt.Errorf("selection of %d points does not match entry extent of %d points",
			mem.SelectionPoints(), n)
	}
	if !dtype.SameClass(dt, e.dt) {
		return fmt.Errorf("cannot write %s data into %s entry %q", dt.Name(), e.dt.Name(), e.path)
	}

	gathered := make([]byte, n*int64(dt.Size))
	es := int64(dt.Size)
	for i, flat := range mem.FlatIndices() {
		off := flat * es
		if off < 0 || off+es > int64(len(src)) {
			return fmt.Errorf("memory selection reaches offset %d past the %d-byte source buffer", off, len(src))
		}
		copy(gathered[int64(i)*es:], src[off:off+es])
	}

	converted, err := dtype.Convert(dt, e.dt, gathered, int(n))
	if err != nil {
		return err
	}
	copy(e.data, converted)
	e.file.transfers.Add(1)
	return nil
}

// Read converts the entry's full extent to dt and scatters it into dst
// at the selected points of mem.
func (e *entry) Read(mem *dspace.Dataspace, dt dtype.Datatype, dst []byte) error {
	n := e.space.NumPoints()
	if mem.SelectionPoints() != n {
		return fmt.Errorf("selection of %d points does not match entry extent of %d points",
			mem.SelectionPoints(), n)
	}
	if !dtype.SameClass(dt, e.dt) {
		return fmt.Errorf("cannot read %s entry %q into %s buffer", e.dt.Name(), e.path, dt.Name())
	}

	converted, err := dtype.Convert(e.dt, dt, e.data, int(n))
	if err != nil {
		return err
	}

	es := int64(dt.Size)
	for i, flat := range mem.FlatIndices() {
		off := flat * es
		if off < 0 || off+es > int64(len(dst)) {
			return fmt.Errorf("memory selection reaches offset %d past the %d-byte destination buffer", off, len(dst))
		}
		copy(dst[off:off+es], converted[int64(i)*es:int64(i+1)*es])
	}
	e.file.transfers.Add(1)
	return nil
}

func (e *entry) FindAttribute(name string) bool {
	return e.attrs.find(name)
}

func (e *entry) CreateAttribute(name string, dt dtype.Datatype, space *dspace.Dataspace) (storage.Attribute, error) {
	return e.attrs.create(name, dt, space)
}

func (e *entry) OpenAttribute(name string) (storage.Attribute, error) {
	return e.attrs.open(name)
}

func (e *entry) Attributes() []string {
	return e.attrs.names()
}

// attribute is a named scalar or small array attached to an object.
// Attribute payloads are always contiguous; selections do not apply.
type attribute struct {
	dt    dtype.Datatype
	space *dspace.Dataspace
	data  []byte
}

func (a *attribute) Space() *dspace.Dataspace {
	return &dspace.Dataspace{Rank: a.space.Rank, Dims: a.space.DimsCopy()}
}

func (a *attribute) Type() dtype.Datatype {
	return a.dt
}

func (a *attribute) Write(dt dtype.Datatype, src []byte) error {
	n := a.space.NumPoints()
	if !dtype.Equal(dt, a.dt) {
		return fmt.Errorf("attribute write type %s does not match stored type %s", dt.Name(), a.dt.Name())
	}
	need := n * int64(dt.Size)
	if int64(len(src)) < need {
		return fmt.Errorf("attribute source has %d bytes, need %d", len(src), need)
	}
	copy(a.data, src[:need])
	return nil
}

func (a *attribute) Read(dt dtype.Datatype, dst []byte) error {
	if !dtype.Equal(dt, a.dt) {
		return fmt.Errorf("attribute read type %s does not match stored type %s", dt.Name(), a.dt.Name())
	}
	need := a.space.NumPoints() * int64(dt.Size)
	if int64(len(dst)) < need {
		return fmt.Errorf("attribute destination has %d bytes, need %d", len(dst), need)
	}
	copy(dst[:need], a.data)
	return nil
}

// attrSet is the attribute table shared by entries and containers.
type attrSet map[string]*attribute

func (s attrSet) find(name string) bool {
	_, ok := s[name]
	return ok
}

func (s attrSet) create(name string, dt dtype.Datatype, space *dspace.Dataspace) (storage.Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("attribute name cannot be empty")
	}
	if !dt.Valid() {
		return nil, fmt.Errorf("invalid datatype %s", dt.Name())
	}
	if space == nil {
		return nil, fmt.Errorf("nil dataspace")
	}
	if _, ok := s[name]; ok {
		return nil, fmt.Errorf("attribute %q already exists", name)
	}
	a := &attribute{
		dt:    dt,
		space: &dspace.Dataspace{Rank: space.Rank, Dims: space.DimsCopy()},
		data:  make([]byte, space.NumPoints()*int64(dt.Size)),
	}
	s[name] = a
	return a, nil
}

func (s attrSet) names() []string {
	return sortedKeys(s)
}

func (s attrSet) open(name string) (storage.Attribute, error) {
	a, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("no attribute %q", name)
	}
	return a, nil
}
