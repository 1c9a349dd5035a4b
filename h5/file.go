package h5

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mmorale3/h5/internal/memfile"
	"github.com/mmorale3/h5/internal/storage"
)

// Object is anything attributes attach to: a Group, or an entry target
// obtained from Group.Entry.
type Object = storage.Object

// Group is a handle on a container. It does not own the underlying
// storage handle and never closes it.
type Group struct {
	c storage.Container
}

// NewGroup wraps an engine container handle. Use this to drive the
// array interface against a storage engine other than the native one.
func NewGroup(c storage.Container) Group {
	return Group{c: c}
}

// Path returns the absolute path of the container.
func (g Group) Path() string {
	return g.c.Path()
}

// CreateGroup creates a sub-container, opening it if it already exists.
func (g Group) CreateGroup(name string) (Group, error) {
	sub, err := g.c.CreateContainer(name)
	if err != nil {
		return Group{}, &CreateError{Name: name, Container: g.Path(), Err: err}
	}
	return Group{c: sub}, nil
}

// OpenGroup opens an existing sub-container.
func (g Group) OpenGroup(name string) (Group, error) {
	sub, err := g.c.OpenContainer(name)
	if err != nil {
		return Group{}, &IOError{Op: "open", Name: name, Container: g.Path(), Err: err}
	}
	return Group{c: sub}, nil
}

// Unlink removes the named entry or sub-container if present.
func (g Group) Unlink(name string) {
	g.c.Unlink(name)
}

// Entries lists the entry names in this container.
func (g Group) Entries() []string {
	return g.c.Entries()
}

// Groups lists the sub-container names in this container.
func (g Group) Groups() []string {
	return g.c.Containers()
}

// Entry returns the named entry as an attribute target.
func (g Group) Entry(name string) (Object, error) {
	ent, err := g.c.OpenEntry(name)
	if err != nil {
		return nil, &IOError{Op: "open", Name: name, Container: g.Path(), Err: err}
	}
	return ent, nil
}

// FindAttribute reports whether the container carries the named
// attribute. Group implements Object, so attributes can attach to
// containers as well as entries.
func (g Group) FindAttribute(name string) bool {
	return g.c.FindAttribute(name)
}

// CreateAttribute creates an attribute on the container.
func (g Group) CreateAttribute(name string, dt Datatype, space *Dataspace) (storage.Attribute, error) {
	return g.c.CreateAttribute(name, dt, space)
}

// OpenAttribute opens an attribute on the container.
func (g Group) OpenAttribute(name string) (storage.Attribute, error) {
	return g.c.OpenAttribute(name)
}

// Attributes lists the attribute names on the container.
func (g Group) Attributes() []string {
	return g.c.Attributes()
}

// File is a container hierarchy backed by the native in-memory engine.
// Its embedded Group is the root container.
type File struct {
	Group
	engine *memfile.File
}

// CreateMemory returns a new, empty in-memory file.
func CreateMemory() *File {
	eng := memfile.New()
	return &File{Group: Group{c: eng.Root()}, engine: eng}
}

// Root returns the root container.
func (f *File) Root() Group {
	return f.Group
}

// TransferCount returns the number of raw byte transfers the engine
// has performed. Useful for verifying zero-length no-op semantics.
func (f *File) TransferCount() int64 {
	return f.engine.TransferCount()
}

// Save serializes the file to w in the native container format.
func (f *File) Save(w io.Writer) error {
	_, err := f.engine.WriteTo(w)
	return err
}

// Buffer returns the file's serialized contents as a byte slice. An
// in-memory file and a saved file hold identical bytes.
func (f *File) Buffer() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile writes the file to disk at the given path.
func (f *File) SaveFile(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := f.Save(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Load reads a serialized file from r.
func Load(r io.Reader) (*File, error) {
	eng, err := memfile.Load(r)
	if err != nil {
		return nil, err
	}
	return &File{Group: Group{c: eng.Root()}, engine: eng}, nil
}

// Open loads a file from disk.
func Open(path string) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer in.Close()
	return Load(in)
}
