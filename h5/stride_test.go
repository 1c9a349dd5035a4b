package h5

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// reconstructFlatStride rebuilds the flat element stride of dimension i
// from the normalized form: the reduced stride scaled by the block
// sizes of all faster-varying levels.
func reconstructFlatStride(ltot, norm []int64, i int) int64 {
	s := norm[i]
	for j := i + 1; j < len(ltot); j++ {
		s *= ltot[j]
	}
	return s
}

func TestNormalizeStridesRoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		strides []int64
		total   int64
	}{
		{"rank1 contiguous", []int64{1}, 5},
		{"rank1 strided", []int64{3}, 5},
		{"rank2 contiguous", []int64{4, 1}, 12},
		{"rank2 strided", []int64{8, 2}, 12},
		{"rank3 contiguous", []int64{12, 4, 1}, 24},
		{"rank3 inner stride", []int64{24, 8, 2}, 24},
		{"rank4 contiguous", []int64{24, 12, 4, 1}, 48},
		{"rank4 mixed", []int64{48, 24, 8, 2}, 48},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rank := len(tc.strides)
			ltot, norm := NormalizeStrides(tc.strides, rank, tc.total)

			require.Len(t, ltot, rank)
			require.Len(t, norm, rank)
			require.Equal(t, tc.total, ltot[0])

			for i := 0; i < rank; i++ {
				got := reconstructFlatStride(ltot, norm, i)
				require.Equalf(t, tc.strides[i], got,
					"dimension %d: ltot=%v norm=%v", i, ltot, norm)
			}

			// Flat offsets of a few index tuples must be reproduced
			// bit-for-bit by the normalized form.
			for _, idx := range indexTuples(rank) {
				var want, got int64
				for i := 0; i < rank; i++ {
					want += idx[i] * tc.strides[i]
					got += idx[i] * reconstructFlatStride(ltot, norm, i)
				}
				require.Equal(t, want, got)
			}
		})
	}
}

func indexTuples(rank int) [][]int64 {
	var out [][]int64
	for v := int64(0); v < 3; v++ {
		tuple := make([]int64, rank)
		for i := range tuple {
			tuple[i] = v + int64(i)
		}
		out = append(out, tuple)
	}
	return out
}

func TestNormalizeStridesRankZero(t *testing.T) {
	ltot, norm := NormalizeStrides(nil, 0, 1)
	require.Empty(t, ltot)
	require.Empty(t, norm)
}

func TestNormalizeStridesDegenerate(t *testing.T) {
	for rank := 1; rank <= 4; rank++ {
		strides := make([]int64, rank)
		for i := range strides {
			strides[i] = int64(7 * (i + 1)) // arbitrary, must be ignored
		}
		ltot, norm := NormalizeStrides(strides, rank, 0)

		require.Len(t, ltot, rank)
		require.Len(t, norm, rank)
		for i := 0; i < rank; i++ {
			require.Equal(t, int64(0), ltot[i])
			require.Equal(t, int64(1), norm[i])
		}
	}
}

// Non-nested strides, where the outer stride is not a multiple of the
// inner ones, still reconstruct exactly: the running GCD divides every
// stride it touches, so the division is always exact. This pins the
// behavior for selections the storage engine itself may still reject.
func TestNormalizeIrregularStrides(t *testing.T) {
	strides := []int64{6, 4}
	ltot, norm := NormalizeStrides(strides, 2, 12)

	require.Equal(t, []int64{12, 6}, ltot)
	require.Equal(t, []int64{1, 4}, norm)
	for i := range strides {
		require.Equal(t, strides[i], reconstructFlatStride(ltot, norm, i))
	}
}

// A strided view over a flat buffer selects every other element of
// every other row of a 4x6 row-major array.
func TestStridedViewRoundTrip(t *testing.T) {
	f := CreateMemory()
	g := f.Root()

	data := make([]int32, 24)
	for i := range data {
		data[i] = int32(i)
	}

	v, err := StridedView(data, []int64{2, 3}, []int64{12, 2})
	require.NoError(t, err)
	require.Equal(t, []int64{24, 12}, v.LTot)
	require.Equal(t, []int64{1, 2}, v.Slab.Stride)

	require.NoError(t, Write(g, "strided", v, false))

	out, dims, err := ReadSlice[int32](g, "strided")
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3}, dims)
	require.Equal(t, []int32{0, 2, 4, 12, 14, 16}, out)
}

func TestStridedViewComplex(t *testing.T) {
	data := []complex128{0 + 0i, 1 + 1i, 2 + 2i, 3 + 3i}

	v, err := StridedView(data, []int64{2}, []int64{2})
	require.NoError(t, err)
	require.True(t, v.Complex)
	require.Equal(t, 2, v.Rank)
	require.Equal(t, []int64{2, 2}, v.Slab.Count)

	f := CreateMemory()
	g := f.Root()
	require.NoError(t, Write(g, "c", v, false))

	out, dims, err := ReadSlice[complex128](g, "c")
	require.NoError(t, err)
	require.Equal(t, []int64{2}, dims)
	require.Equal(t, []complex128{0 + 0i, 2 + 2i}, out)
}

func TestStridedViewRejectsBadStrides(t *testing.T) {
	data := make([]int32, 8)

	_, err := StridedView(data, []int64{2, 2}, []int64{4})
	require.Error(t, err)

	_, err = StridedView(data, []int64{2}, []int64{0})
	require.Error(t, err)
}
