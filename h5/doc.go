// Package h5 translates between in-memory N-dimensional array views
// and the hyperslab selection model of a hierarchical array store.
//
// An ArrayView describes one transfer: a caller-owned buffer, its
// element type, the declared buffer extents, and a hyperslab selecting
// the elements to move. Write, Inspect, Read, WriteAttribute, and
// ReadAttribute pair the view's memory-side dataspace with a
// storage-side one and drive the engine's raw transfer primitives,
// validating type and shape compatibility first.
//
// Views of complex-valued arrays store as the scalar component type;
// the stored entry is tagged with a companion "__complex__" attribute
// that Inspect reports back.
//
// All operations are synchronous and hold no state across calls. The
// layer never closes the container handle it is given; concurrent
// calls against the same handle must be serialized by the caller.
package h5
