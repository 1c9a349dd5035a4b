package h5

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttributeScalarRoundTrip(t *testing.T) {
	f := CreateMemory()
	g := f.Root()

	in := int64(42)
	require.NoError(t, WriteAttribute(g, "answer", ScalarView(&in)))

	var out int64
	require.NoError(t, ReadAttribute(g, "answer", ScalarView(&out)))
	require.Equal(t, in, out)
}

func TestAttributeOnEntry(t *testing.T) {
	f := CreateMemory()
	g := f.Root()
	require.NoError(t, WriteSlice(g, "data", []float64{1, 2, 3}))

	obj, err := g.Entry("data")
	require.NoError(t, err)

	unit := 9.81
	require.NoError(t, WriteAttribute(obj, "gravity", ScalarView(&unit)))

	var got float64
	require.NoError(t, ReadAttribute(obj, "gravity", ScalarView(&got)))
	require.Equal(t, unit, got)
}

func TestAttributeNoOverwrite(t *testing.T) {
	f := CreateMemory()
	g := f.Root()

	first := int64(1)
	require.NoError(t, WriteAttribute(g, "x", ScalarView(&first)))

	second := int64(2)
	err := WriteAttribute(g, "x", ScalarView(&second))
	require.ErrorIs(t, err, ErrAttrExists)

	var got int64
	require.NoError(t, ReadAttribute(g, "x", ScalarView(&got)))
	require.Equal(t, first, got, "first value must be unchanged")
}

func TestAttributeNotFound(t *testing.T) {
	f := CreateMemory()
	g := f.Root()

	var out float64
	err := ReadAttribute(g, "missing", ScalarView(&out))
	require.ErrorIs(t, err, ErrAttrNotFound)
}

func TestAttributeNonScalarReadRejected(t *testing.T) {
	f := CreateMemory()
	g := f.Root()

	// Writing a non-scalar attribute is allowed by this layer.
	arr := []int32{1, 2, 3}
	v, err := ViewOf(arr)
	require.NoError(t, err)
	require.NoError(t, WriteAttribute(g, "vec", v))

	var out int32
	err = ReadAttribute(g, "vec", ScalarView(&out))
	require.ErrorIs(t, err, ErrAttrRank)
	var re *AttrRankError
	require.ErrorAs(t, err, &re)
	require.Equal(t, 1, re.Rank)
}

func TestAttributeExactTypeRequired(t *testing.T) {
	f := CreateMemory()
	g := f.Root()

	in := 1.5
	require.NoError(t, WriteAttribute(g, "strict", ScalarView(&in)))

	// float32 against a stored float64: same class, but attribute
	// reads do not get the dataset read's leniency.
	var out float32
	err := ReadAttribute(g, "strict", ScalarView(&out))
	require.ErrorIs(t, err, ErrAttrType)
	var te *AttrTypeError
	require.ErrorAs(t, err, &te)
	require.Equal(t, "float32", te.Requested)
	require.Equal(t, "float64", te.Stored)
}

func TestAttributeSurvivesSaveLoad(t *testing.T) {
	f := CreateMemory()
	g := f.Root()

	in := int64(7)
	require.NoError(t, WriteAttribute(g, "keep", ScalarView(&in)))

	buf, err := f.Buffer()
	require.NoError(t, err)

	f2, err := Load(bytes.NewReader(buf))
	require.NoError(t, err)

	var out int64
	require.NoError(t, ReadAttribute(f2.Root(), "keep", ScalarView(&out)))
	require.Equal(t, in, out)
}
