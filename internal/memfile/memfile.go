// Package memfile implements the storage capability surface with an
// in-memory hierarchical container tree.
//
// A File is equivalently a byte buffer: the whole tree serializes to a
// checksummed native binary format and loads back, so an in-memory file
// and an on-disk file hold identical contents. Entries created with
// chunking and a deflate level keep their payload compressed at rest in
// the serialized form.
package memfile

import (
	"fmt"
	"path"
	"sort"
	"sync/atomic"

	"github.com/mmorale3/h5/internal/dspace"
	"github.com/mmorale3/h5/internal/dtype"
	"github.com/mmorale3/h5/internal/storage"
)

// File is an in-memory storage engine instance.
type File struct {
	root      *group
	transfers atomic.Int64
}

// New returns an empty file with a root container at "/".
func New() *File {
	f := &File{}
	f.root = newGroup(f, "/")
	return f
}

// Root returns the root container.
func (f *File) Root() storage.Container {
	return f.root
}

// TransferCount returns the number of raw entry read/write transfers
// performed so far. Zero-length operations never reach a transfer, so
// the count is stable across them.
func (f *File) TransferCount() int64 {
	return f.transfers.Load()
}

// group is a container node: attributes, entries, and sub-groups.
type group struct {
	file    *File
	path    string
	attrs   attrSet
	entries map[string]*entry
	groups  map[string]*group
}

func newGroup(f *File, p string) *group {
	return &group{
		file:    f,
		path:    p,
		attrs:   attrSet{},
		entries: make(map[string]*entry),
		groups:  make(map[string]*group),
	}
}

func (g *group) Path() string {
	return g.path
}

func (g *group) childPath(name string) string {
	if g.path == "/" {
		return "/" + name
	}
	return path.Join(g.path, name)
}

func (g *group) CreateEntry(name string, dt dtype.Datatype, space *dspace.Dataspace, cfg storage.EntryConfig) (storage.Entry, error) {
	if name == "" {
		return nil, fmt.Errorf("entry name cannot be empty")
	}
	if !dt.Valid() {
		return nil, fmt.Errorf("invalid datatype %s", dt.Name())
	}
	if space == nil {
		return nil, fmt.Errorf("nil dataspace")
	}
	if _, ok := g.entries[name]; ok {
		return nil, fmt.Errorf("name %q already in use", name)
	}
	if _, ok := g.groups[name]; ok {
		return nil, fmt.Errorf("name %q already in use by a container", name)
	}
	if cfg.Chunks != nil && len(cfg.Chunks) != space.Rank {
		return nil, fmt.Errorf("chunk rank %d does not match dataspace rank %d", len(cfg.Chunks), space.Rank)
	}

	shape := &dspace.Dataspace{Rank: space.Rank, Dims: space.DimsCopy()}
	e := &entry{
		file:  g.file,
		path:  g.childPath(name),
		dt:    dt,
		space: shape,
		cfg:   cfg,
		data:  make([]byte, shape.NumPoints()*int64(dt.Size)),
		attrs: attrSet{},
	}
	g.entries[name] = e
	return e, nil
}

func (g *group) OpenEntry(name string) (storage.Entry, error) {
	e, ok := g.entries[name]
	if !ok {
		return nil, fmt.Errorf("no entry %q in container %q", name, g.path)
	}
	return e, nil
}

func (g *group) Unlink(name string) {
	delete(g.entries, name)
	delete(g.groups, name)
}

func (g *group) CreateContainer(name string) (storage.Container, error) {
	if name == "" {
		return nil, fmt.Errorf("container name cannot be empty")
	}
	if sub, ok := g.groups[name]; ok {
		return sub, nil
	}
	if _, ok := g.entries[name]; ok {
		return nil, fmt.Errorf("name %q already in use by an entry", name)
	}
	sub := newGroup(g.file, g.childPath(name))
	g.groups[name] = sub
	return sub, nil
}

func (g *group) OpenContainer(name string) (storage.Container, error) {
	sub, ok := g.groups[name]
	if !ok {
		return nil, fmt.Errorf("no container %q in container %q", name, g.path)
	}
	return sub, nil
}

func (g *group) Entries() []string {
	return sortedKeys(g.entries)
}

func (g *group) Containers() []string {
	return sortedKeys(g.groups)
}

func (g *group) FindAttribute(name string) bool {
	return g.attrs.find(name)
}

func (g *group) CreateAttribute(name string, dt dtype.Datatype, space *dspace.Dataspace) (storage.Attribute, error) {
	return g.attrs.create(name, dt, space)
}

func (g *group) OpenAttribute(name string) (storage.Attribute, error) {
	return g.attrs.open(name)
}

func (g *group) Attributes() []string {
	return g.attrs.names()
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
