package h5

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind. Every structured error below
// unwraps to its sentinel (and, where present, to the engine error it
// wraps), so callers can branch with errors.Is or inspect fields with
// errors.As.
var (
	ErrSelection    = errors.New("invalid region or hyperslab selection")
	ErrCreate       = errors.New("cannot create entry")
	ErrIO           = errors.New("storage i/o failed")
	ErrTypeClass    = errors.New("incompatible type classes")
	ErrRank         = errors.New("rank mismatch")
	ErrLengths      = errors.New("lengths mismatch")
	ErrAttrExists   = errors.New("attribute already exists")
	ErrAttrNotFound = errors.New("attribute not found")
	ErrAttrRank     = errors.New("attribute is not scalar")
	ErrAttrType     = errors.New("attribute type mismatch")
)

// SelectionError reports that a dataspace or hyperslab could not be
// built from the view's parameters.
type SelectionError struct {
	Reason string
	Err    error
}

func (e *SelectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid selection: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid selection: %s", e.Reason)
}

func (e *SelectionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSelection, e.Err}
	}
	return []error{ErrSelection}
}

// CreateError reports that a named entry or attribute could not be
// created in its container.
type CreateError struct {
	Name      string
	Container string
	Err       error
}

func (e *CreateError) Error() string {
	if e.Container != "" {
		return fmt.Sprintf("cannot create %q in container %q: %v", e.Name, e.Container, e.Err)
	}
	return fmt.Sprintf("cannot create attribute %q: %v", e.Name, e.Err)
}

func (e *CreateError) Unwrap() []error {
	return []error{ErrCreate, e.Err}
}

// IOError reports a failed storage read or write primitive.
type IOError struct {
	Op        string // "open", "read", "write"
	Name      string
	Container string
	Err       error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("error on %s of %q in container %q: %v", e.Op, e.Name, e.Container, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// TypeClassError reports that the requested and stored element types
// belong to different type classes.
type TypeClassError struct {
	Requested string // display name of the requested type
	Stored    string // display name of the stored type
}

func (e *TypeClassError) Error() string {
	return fmt.Sprintf("incompatible types: expecting a %s while the stored array has type %s",
		e.Requested, e.Stored)
}

func (e *TypeClassError) Unwrap() error {
	return ErrTypeClass
}

// RankError reports that the stored rank differs from the view's rank.
type RankError struct {
	Name string
	Want int // the view's rank
	Got  int // the stored rank
}

func (e *RankError) Error() string {
	return fmt.Sprintf("rank mismatch reading %q: expecting rank %d while the stored array has rank %d",
		e.Name, e.Want, e.Got)
}

func (e *RankError) Unwrap() error {
	return ErrRank
}

// LengthsError reports that the stored extents differ from the view's
// selected counts.
type LengthsError struct {
	Name string
	Want []int64 // the view's selected counts
	Got  []int64 // the stored extents
}

func (e *LengthsError) Error() string {
	return fmt.Sprintf("lengths mismatch reading %q: expecting %v while the stored array has lengths %v",
		e.Name, e.Want, e.Got)
}

func (e *LengthsError) Unwrap() error {
	return ErrLengths
}

// AttrExistsError reports a write to an attribute name already present
// on the target object.
type AttrExistsError struct {
	Name string
}

func (e *AttrExistsError) Error() string {
	return fmt.Sprintf("the attribute %q is already present, cannot overwrite", e.Name)
}

func (e *AttrExistsError) Unwrap() error {
	return ErrAttrExists
}

// AttrNotFoundError reports a read of a missing attribute.
type AttrNotFoundError struct {
	Name string
	Err  error
}

func (e *AttrNotFoundError) Error() string {
	return fmt.Sprintf("cannot open the attribute %q: %v", e.Name, e.Err)
}

func (e *AttrNotFoundError) Unwrap() []error {
	return []error{ErrAttrNotFound, e.Err}
}

// AttrRankError reports a scalar attribute read against a stored
// attribute of non-zero rank.
type AttrRankError struct {
	Name string
	Rank int // the stored rank
}

func (e *AttrRankError) Error() string {
	return fmt.Sprintf("reading scalar attribute %q: stored attribute has rank %d", e.Name, e.Rank)
}

func (e *AttrRankError) Unwrap() error {
	return ErrAttrRank
}

// AttrTypeError reports an exact-type mismatch on an attribute read.
type AttrTypeError struct {
	Name      string
	Requested string
	Stored    string
}

func (e *AttrTypeError) Error() string {
	return fmt.Sprintf("type mismatch reading attribute %q: expecting a %s while the stored attribute has type %s",
		e.Name, e.Requested, e.Stored)
}

func (e *AttrTypeError) Unwrap() error {
	return ErrAttrType
}
