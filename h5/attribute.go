package h5

import (
	"github.com/mmorale3/h5/internal/dtype"
)

// WriteAttribute creates the named attribute on obj with the view's
// shape and type and writes the view's buffer into it. Attributes are
// strictly additive: an existing attribute of the same name fails the
// call, unlike dataset writes which overwrite.
func WriteAttribute(obj Object, name string, v ArrayView) error {
	if err := v.validate(); err != nil {
		return err
	}

	if obj.FindAttribute(name) {
		return &AttrExistsError{Name: name}
	}

	mem, err := makeMemDataspace(v)
	if err != nil {
		return err
	}

	attr, err := obj.CreateAttribute(name, v.Type, mem)
	if err != nil {
		return &CreateError{Name: name, Err: err}
	}

	if err := attr.Write(v.Type, v.Data); err != nil {
		return &IOError{Op: "write", Name: name, Container: "", Err: err}
	}

	return nil
}

// ReadAttribute reads the named scalar attribute from obj into the
// view's buffer. Stricter than dataset reads: the stored attribute
// must have rank 0 and exactly the view's type; there is no implicit
// conversion and no warn path.
func ReadAttribute(obj Object, name string, v ArrayView) error {
	if err := v.validate(); err != nil {
		return err
	}

	attr, err := obj.OpenAttribute(name)
	if err != nil {
		return &AttrNotFoundError{Name: name, Err: err}
	}

	if rank := attr.Space().Rank; rank != 0 {
		return &AttrRankError{Name: name, Rank: rank}
	}

	if !dtype.Equal(attr.Type(), v.Type) {
		return &AttrTypeError{Name: name, Requested: v.Type.Name(), Stored: attr.Type().Name()}
	}

	if err := attr.Read(v.Type, v.Data); err != nil {
		return &IOError{Op: "read", Name: name, Container: "", Err: err}
	}

	return nil
}
