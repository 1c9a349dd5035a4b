package h5

// NormalizeStrides converts flat element strides, as an in-memory array
// view uses them, into the nested block representation the storage
// selection model needs: a pair (ltot, norm) of per-dimension block
// sizes and reduced strides such that norm[i] scaled by the block sizes
// below level i reproduces the original flat offset contribution of
// dimension i exactly.
//
// Dimension 0 is the outermost: ltot[0] is totalSize and, for each
// level u from rank-2 down to 0, ltot[u+1] becomes the running greatest
// common divisor of strides[0..u], with those strides divided through
// by it.
//
// Rank 0 returns two empty slices. A degenerate totalSize of 0 returns
// all-zero block sizes with unit strides, so downstream block
// arithmetic never divides by zero.
func NormalizeStrides(strides []int64, rank int, totalSize int64) (ltot, norm []int64) {
	if rank == 0 {
		return nil, nil
	}
	if totalSize == 0 {
		ltot = make([]int64, rank)
		norm = make([]int64, rank)
		for i := range norm {
			norm[i] = 1
		}
		return ltot, norm
	}

	ltot = make([]int64, rank)
	norm = make([]int64, rank)
	copy(norm, strides[:rank])
	ltot[0] = totalSize

	for u := rank - 2; u >= 0; u-- {
		l := norm[u]
		for w := u - 1; w >= 0; w-- {
			l = gcd(l, norm[w])
		}
		for w := u; w >= 0; w-- {
			norm[w] /= l
		}
		ltot[u+1] = l
	}

	return ltot, norm
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
