// Package storage defines the capability surface the array interface
// consumes from a storage engine: entry and container lifecycle,
// dataspace-driven raw transfers, and attribute primitives.
//
// The array interface never depends on a concrete engine; it drives
// whatever implementation of these interfaces the caller's container
// handle belongs to. Handles are owned by the caller and are never
// closed by this layer.
package storage

import (
	"github.com/mmorale3/h5/internal/dspace"
	"github.com/mmorale3/h5/internal/dtype"
)

// EntryConfig carries the creation-time properties of an entry, the
// equivalent of a dataset-creation property list. The zero value means
// a contiguous, uncompressed entry.
type EntryConfig struct {
	Chunks       []int64 // chunk extents; nil means contiguous
	DeflateLevel int     // 0 means no compression
}

// Object is anything attributes can attach to: an entry or a container.
type Object interface {
	// FindAttribute reports whether an attribute of the given name
	// is present on the object.
	FindAttribute(name string) bool

	// CreateAttribute creates a new attribute with the given type and
	// shape. Fails if an attribute of the same name already exists.
	CreateAttribute(name string, dt dtype.Datatype, space *dspace.Dataspace) (Attribute, error)

	// OpenAttribute opens an existing attribute by name.
	OpenAttribute(name string) (Attribute, error)

	// Attributes lists the names of the attributes on the object.
	Attributes() []string
}

// Container is a hierarchical namespace holding entries and
// sub-containers.
type Container interface {
	Object

	// Path returns the absolute path of the container within its file.
	Path() string

	// CreateEntry creates a new named entry with the given element
	// type, shape, and creation properties.
	CreateEntry(name string, dt dtype.Datatype, space *dspace.Dataspace, cfg EntryConfig) (Entry, error)

	// OpenEntry opens an existing entry by name.
	OpenEntry(name string) (Entry, error)

	// Unlink removes the named entry if present. Removing a missing
	// name is not an error.
	Unlink(name string)

	// CreateContainer creates a sub-container, or opens it if it
	// already exists.
	CreateContainer(name string) (Container, error)

	// OpenContainer opens an existing sub-container by name.
	OpenContainer(name string) (Container, error)

	// Entries lists the names of the entries in this container.
	Entries() []string

	// Containers lists the names of the sub-containers.
	Containers() []string
}

// Entry is a named, shaped, typed unit of stored array data.
type Entry interface {
	Object

	// Space returns the entry's storage-side dataspace.
	Space() *dspace.Dataspace

	// Type returns the entry's stored element type.
	Type() dtype.Datatype

	// Write transfers the selected points of mem, taken from src in
	// row-major selection order, into the entry's full extent. The
	// src bytes are interpreted per dt and converted to the stored
	// type when the two differ in width.
	Write(mem *dspace.Dataspace, dt dtype.Datatype, src []byte) error

	// Read transfers the entry's full extent into the selected points
	// of mem within dst, converting stored elements to dt when the
	// two differ in width.
	Read(mem *dspace.Dataspace, dt dtype.Datatype, dst []byte) error
}

// Attribute is a named scalar or array value attached to an object.
type Attribute interface {
	// Space returns the attribute's dataspace.
	Space() *dspace.Dataspace

	// Type returns the attribute's stored element type.
	Type() dtype.Datatype

	// Write stores the attribute's full extent contiguously from src.
	Write(dt dtype.Datatype, src []byte) error

	// Read copies the attribute's full extent contiguously into dst.
	Read(dt dtype.Datatype, dst []byte) error
}
