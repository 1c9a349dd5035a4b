package dtype

import (
	"encoding/binary"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	cases := []struct {
		dt   Datatype
		want string
	}{
		{Int8, "int8"},
		{Int64, "int64"},
		{Uint16, "uint16"},
		{Float32, "float32"},
		{Float64, "float64"},
		{String(4), "string[4]"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.dt.Name())
	}
}

func TestEqualAndSameClass(t *testing.T) {
	require.True(t, Equal(Float64, Float64))
	require.False(t, Equal(Float32, Float64))
	require.True(t, SameClass(Float32, Float64))
	require.False(t, SameClass(Int32, Float32))
	require.False(t, Equal(Int8, Uint8), "signedness distinguishes exact types")
	require.True(t, SameClass(Int8, Uint8))
}

func TestValid(t *testing.T) {
	require.True(t, Int32.Valid())
	require.True(t, String(1).Valid())
	require.False(t, Datatype{}.Valid())
	require.False(t, Datatype{Class: ClassFixedPoint, Size: 3}.Valid())
	require.False(t, String(0).Valid())
}

func TestFromKind(t *testing.T) {
	dt, err := FromKind(reflect.Float64)
	require.NoError(t, err)
	require.Equal(t, Float64, dt)

	dt, err = FromKind(reflect.Complex128)
	require.NoError(t, err)
	require.Equal(t, Float64, dt, "complex maps to its component type")

	_, err = FromKind(reflect.String)
	require.Error(t, err)
}

func TestGoType(t *testing.T) {
	ty, err := Int16.GoType()
	require.NoError(t, err)
	require.Equal(t, reflect.TypeOf(int16(0)), ty)

	ty, err = Uint64.GoType()
	require.NoError(t, err)
	require.Equal(t, reflect.TypeOf(uint64(0)), ty)
}

func TestConvertIdentity(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	out, err := Convert(Int32, Int32, src, 1)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestConvertWidensSignExtended(t *testing.T) {
	src := make([]byte, 4)
	v := int32(-5)
	binary.LittleEndian.PutUint32(src, uint32(v))

	out, err := Convert(Int32, Int64, src, 1)
	require.NoError(t, err)
	require.Equal(t, int64(-5), int64(binary.LittleEndian.Uint64(out)))
}

func TestConvertNarrowsTruncating(t *testing.T) {
	src := make([]byte, 8)
	binary.LittleEndian.PutUint64(src, uint64(0x1_0000_0001))

	out, err := Convert(Uint64, Uint32, src, 1)
	require.NoError(t, err)
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(out))
}

func TestConvertFloat(t *testing.T) {
	src := make([]byte, 4)
	binary.LittleEndian.PutUint32(src, math.Float32bits(1.5))

	out, err := Convert(Float32, Float64, src, 1)
	require.NoError(t, err)
	require.Equal(t, 1.5, math.Float64frombits(binary.LittleEndian.Uint64(out)))
}

func TestConvertClassMismatch(t *testing.T) {
	_, err := Convert(Int32, Float32, make([]byte, 4), 1)
	require.Error(t, err)
}

func TestConvertShortSource(t *testing.T) {
	_, err := Convert(Int32, Int64, make([]byte, 2), 1)
	require.Error(t, err)
}
