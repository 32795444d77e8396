package gallager

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/internal"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

//Search looks for a regular Gallager code with m parity checks, column weight wc and row weight wr
// whose tanner graph has no cycle shorter than smallestCycleAllowed.
// At most maxIter sub matrices are tried.
func Search(ctx context.Context, m, wc, wr, smallestCycleAllowed, maxIter, threads int) (lb *linearblock.LinearBlock, err error) {
	if 3 > wc {
		return nil, fmt.Errorf("wc must be greater than or equal to 3")
	}
	if wc >= wr {
		return nil, fmt.Errorf("wc (%v) must be less than wr (%v)", wc, wr)
	}
	if m%wc != 0 {
		return nil, fmt.Errorf("wc (%v) must divide m (%v)", wc, m)
	}
	if smallestCycleAllowed%2 != 0 {
		return nil, fmt.Errorf("smallestCycle must be an even number")
	}
	if smallestCycleAllowed < 4 {
		return nil, fmt.Errorf("smallestCycle must at least 4")
	}

	N := m / wc * wr
	K := m / wc
	// the first band, each row holds wr consecutive ones
	band := mat.CSRMat(K, N)
	for i := 0; i < K; i++ {
		offset := i * wr
		for col := 0; col < wr; col++ {
			band.Set(i, col+offset, 1)
		}
	}

	iter := maxIter
	err = fmt.Errorf("failed to find a solution")
	for iter > 0 && err != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iter, lb, err = search(ctx, N, K, m, wc, iter, smallestCycleAllowed, threads, band)
	}
	return
}

func search(ctx context.Context, N, K, m, wc, iter, smallestCycleAllowed, threads int, band mat.SparseMat) (int, *linearblock.LinearBlock, error) {
	H := mat.CSRMat(m, N)

	// H is made of wc bands, the first is band and
	// the others are column permutations of it. A band
	// adding short cycles or dependent rows is redrawn.
	s := 0
	for s < wc && iter > 0 {
		iter--
		logrus.Debugf("Iterations remaining %v", iter)
		sub := band
		if s > 0 {
			sub = shuffled(N).PermuteColumns(band)
		}
		H.SetMatrix(sub, s*K, 0)

		rows := H.Slice(0, 0, (s+1)*K, N)
		calGirth := linearblock.CalculateGirthLowerBound(ctx, rows, smallestCycleAllowed, threads)
		if -1 < calGirth && calGirth < smallestCycleAllowed {
			continue
		}

		// the full H of a gallager code always has wc-1 dependent rows
		// (every band sums to all ones) so only the new band's rank is required
		rank := internal.CalculateRank(ctx, rows)
		if rank < (s+1)*K-s {
			continue
		}
		s++
	}
	if s != wc {
		return iter, nil, fmt.Errorf("failed to find a solution")
	}
	logrus.Debugf("Gallager H Matrix found")

	H, err := linearblock.IndependentRows(ctx, H)
	if err != nil {
		return iter, nil, err
	}
	lb, err := linearblock.New(ctx, H, threads)
	if err != nil {
		return iter, nil, err
	}
	return 0, lb, nil
}

func shuffled(n int) gf2.Permutation {
	idx := gf2.IdentityPermutation(n)
	rand.Shuffle(len(idx), idx.Swap)
	return idx
}
