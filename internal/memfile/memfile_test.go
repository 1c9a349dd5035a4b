package memfile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmorale3/h5/internal/dspace"
	"github.com/mmorale3/h5/internal/dtype"
	"github.com/mmorale3/h5/internal/storage"
)

func int32Bytes(vals ...int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
	}
	return out
}

func simple(t *testing.T, dims ...int64) *dspace.Dataspace {
	t.Helper()
	s, err := dspace.Simple(dims)
	require.NoError(t, err)
	return s
}

func TestCreateAndTransfer(t *testing.T) {
	f := New()
	root := f.Root()

	e, err := root.CreateEntry("v", dtype.Int32, simple(t, 4), storage.EntryConfig{})
	require.NoError(t, err)

	mem := simple(t, 4)
	require.NoError(t, e.Write(mem, dtype.Int32, int32Bytes(10, 20, 30, 40)))
	require.Equal(t, int64(1), f.TransferCount())

	dst := make([]byte, 16)
	require.NoError(t, e.Read(mem, dtype.Int32, dst))
	require.Equal(t, int32Bytes(10, 20, 30, 40), dst)
	require.Equal(t, int64(2), f.TransferCount())
}

func TestCreateEntryNameInUse(t *testing.T) {
	f := New()
	root := f.Root()

	_, err := root.CreateEntry("v", dtype.Int32, simple(t, 1), storage.EntryConfig{})
	require.NoError(t, err)
	_, err = root.CreateEntry("v", dtype.Int32, simple(t, 1), storage.EntryConfig{})
	require.Error(t, err)

	root.Unlink("v")
	_, err = root.CreateEntry("v", dtype.Int64, simple(t, 2), storage.EntryConfig{})
	require.NoError(t, err)
}

func TestWriteSelectionPointMismatch(t *testing.T) {
	f := New()
	root := f.Root()

	e, err := root.CreateEntry("v", dtype.Int32, simple(t, 4), storage.EntryConfig{})
	require.NoError(t, err)

	err = e.Write(simple(t, 3), dtype.Int32, int32Bytes(1, 2, 3))
	require.Error(t, err)
	require.Zero(t, f.TransferCount())
}

func TestStridedGather(t *testing.T) {
	f := New()
	root := f.Root()

	e, err := root.CreateEntry("v", dtype.Int32, simple(t, 3), storage.EntryConfig{})
	require.NoError(t, err)

	// Gather every other element of a 6-element buffer.
	mem := simple(t, 6)
	require.NoError(t, mem.SelectHyperslab([]int64{0}, []int64{2}, []int64{3}, nil))
	require.NoError(t, e.Write(mem, dtype.Int32, int32Bytes(0, 1, 2, 3, 4, 5)))

	dst := make([]byte, 12)
	require.NoError(t, e.Read(simple(t, 3), dtype.Int32, dst))
	require.Equal(t, int32Bytes(0, 2, 4), dst)
}

func TestEntryTypeConversion(t *testing.T) {
	f := New()
	root := f.Root()

	e, err := root.CreateEntry("v", dtype.Int64, simple(t, 2), storage.EntryConfig{})
	require.NoError(t, err)

	// Write int32 data into an int64 entry, read back as int64.
	require.NoError(t, e.Write(simple(t, 2), dtype.Int32, int32Bytes(-7, 9)))

	dst := make([]byte, 16)
	require.NoError(t, e.Read(simple(t, 2), dtype.Int64, dst))
	require.Equal(t, int64(-7), int64(binary.LittleEndian.Uint64(dst)))
	require.Equal(t, int64(9), int64(binary.LittleEndian.Uint64(dst[8:])))
}

func TestAttributes(t *testing.T) {
	f := New()
	root := f.Root()

	require.False(t, root.FindAttribute("a"))
	a, err := root.CreateAttribute("a", dtype.Float64, dspace.Scalar())
	require.NoError(t, err)
	require.True(t, root.FindAttribute("a"))

	_, err = root.CreateAttribute("a", dtype.Float64, dspace.Scalar())
	require.Error(t, err, "duplicate attribute must fail")

	src := make([]byte, 8)
	binary.LittleEndian.PutUint64(src, 123)
	require.NoError(t, a.Write(dtype.Float64, src))

	got, err := root.OpenAttribute("a")
	require.NoError(t, err)
	dst := make([]byte, 8)
	require.NoError(t, got.Read(dtype.Float64, dst))
	require.Equal(t, src, dst)

	require.Error(t, a.Write(dtype.Float32, src), "attribute writes are exact-typed")
}

func TestContainerTree(t *testing.T) {
	f := New()
	root := f.Root()

	sub, err := root.CreateContainer("grp")
	require.NoError(t, err)
	require.Equal(t, "/grp", sub.Path())

	again, err := root.CreateContainer("grp")
	require.NoError(t, err)
	require.Equal(t, sub, again, "create of an existing container opens it")

	_, err = root.OpenContainer("missing")
	require.Error(t, err)

	_, err = sub.CreateEntry("leaf", dtype.Int32, simple(t, 1), storage.EntryConfig{})
	require.NoError(t, err)
	require.Equal(t, []string{"leaf"}, sub.Entries())
	require.Equal(t, []string{"grp"}, root.Containers())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := New()
	root := f.Root()

	e, err := root.CreateEntry("plain", dtype.Int32, simple(t, 3), storage.EntryConfig{})
	require.NoError(t, err)
	require.NoError(t, e.Write(simple(t, 3), dtype.Int32, int32Bytes(1, 2, 3)))

	c, err := root.CreateEntry("packed", dtype.Int32, simple(t, 4),
		storage.EntryConfig{Chunks: []int64{4}, DeflateLevel: 1})
	require.NoError(t, err)
	require.NoError(t, c.Write(simple(t, 4), dtype.Int32, int32Bytes(5, 5, 5, 5)))

	sub, err := root.CreateContainer("grp")
	require.NoError(t, err)
	a, err := sub.CreateAttribute("tag", dtype.Int64, dspace.Scalar())
	require.NoError(t, err)
	tag := make([]byte, 8)
	binary.LittleEndian.PutUint64(tag, 99)
	require.NoError(t, a.Write(dtype.Int64, tag))

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	f2, err := Load(&buf)
	require.NoError(t, err)
	root2 := f2.Root()

	e2, err := root2.OpenEntry("plain")
	require.NoError(t, err)
	dst := make([]byte, 12)
	require.NoError(t, e2.Read(simple(t, 3), dtype.Int32, dst))
	require.Equal(t, int32Bytes(1, 2, 3), dst)

	c2, err := root2.OpenEntry("packed")
	require.NoError(t, err)
	dst4 := make([]byte, 16)
	require.NoError(t, c2.Read(simple(t, 4), dtype.Int32, dst4))
	require.Equal(t, int32Bytes(5, 5, 5, 5), dst4)

	sub2, err := root2.OpenContainer("grp")
	require.NoError(t, err)
	a2, err := sub2.OpenAttribute("tag")
	require.NoError(t, err)
	got := make([]byte, 8)
	require.NoError(t, a2.Read(dtype.Int64, got))
	require.Equal(t, tag, got)
}

func TestEntryAttributeSurvivesSaveLoad(t *testing.T) {
	f := New()
	root := f.Root()

	e, err := root.CreateEntry("v", dtype.Int32, simple(t, 2), storage.EntryConfig{})
	require.NoError(t, err)
	require.NoError(t, e.Write(simple(t, 2), dtype.Int32, int32Bytes(7, 8)))

	a, err := e.CreateAttribute("mark", dtype.Uint8, dspace.Scalar())
	require.NoError(t, err)
	require.NoError(t, a.Write(dtype.Uint8, []byte{1}))

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	f2, err := Load(&buf)
	require.NoError(t, err)

	e2, err := f2.Root().OpenEntry("v")
	require.NoError(t, err)
	require.True(t, e2.FindAttribute("mark"))
	require.Equal(t, []string{"mark"}, e2.Attributes())

	a2, err := e2.OpenAttribute("mark")
	require.NoError(t, err)
	got := make([]byte, 1)
	require.NoError(t, a2.Read(dtype.Uint8, got))
	require.Equal(t, []byte{1}, got)
}

func TestSaveRejectsOversizedRank(t *testing.T) {
	f := New()

	dims := make([]int64, 256)
	for i := range dims {
		dims[i] = 1
	}
	_, err := f.Root().CreateEntry("deep", dtype.Int32, simple(t, dims...), storage.EntryConfig{})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.ErrorContains(t, err, "exceeds the format limit")
}

func TestLoadRejectsCorruption(t *testing.T) {
	f := New()
	_, err := f.Root().CreateEntry("v", dtype.Int32, simple(t, 2), storage.EntryConfig{})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	data := buf.Bytes()
	data[len(data)/2] ^= 0xFF
	_, err = Load(bytes.NewReader(data))
	require.Error(t, err)

	_, err = Load(bytes.NewReader([]byte("not a container file")))
	require.Error(t, err)
}
