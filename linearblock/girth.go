package linearblock

import (
	"context"
	"math"
	"sync"

	mat "github.com/nathanhack/sparsemat"
	"github.com/nathanhack/threadpool"
)

// CalculateGirthLowerBoundByEdges returns a bool if true it is possible for the matrix to be
// free of all cycles C_i  where i \in 3<=i<=minGirth. If false, it is impossible to
// be free of all cycles C_i.
func CalculateGirthLowerBoundByEdges(H mat.SparseMat, minGirth int) bool {
	// from the paper Fast Distributed Algorithms for Girth, Cycles and Small Subgraphs by K. Censor-Hillel, et al
	// that if m is free of all C_i cycles 3<=i<=2k then m contains at most n^(1+1/k)+n edges.

	rows, cols := H.Dims()
	edges := 0
	for i := 0; i < rows; i++ {
		edges += H.Row(i).HammingWeight()
	}

	n := float64(rows + cols)
	n = math.Pow(n, 1+1/(float64(minGirth)/2)) + n
	return int(n) >= edges
}

//tanner is the adjacency of the tanner graph of H. Check node r is node r and
// variable node c is node rows+c.
type tanner struct {
	checks int
	edges  [][]int
}

func newTanner(H mat.SparseMat) *tanner {
	rows, cols := H.Dims()
	t := &tanner{checks: rows, edges: make([][]int, rows+cols)}
	for r := 0; r < rows; r++ {
		for _, c := range H.Row(r).NonzeroArray() {
			t.edges[r] = append(t.edges[r], rows+c)
			t.edges[rows+c] = append(t.edges[rows+c], r)
		}
	}
	return t
}

//shortestCycle runs a BFS from start for at most maxGirth/2 levels and returns the
// smallest cycle length it closes, or -1.
func (t *tanner) shortestCycle(ctx context.Context, start, maxGirth int) int {
	if len(t.edges[start]) <= 1 {
		return -1
	}
	dist := make(map[int]int)
	parent := make(map[int]int)
	dist[start] = 0
	parent[start] = -1

	level := []int{start}
	for depth := 0; len(level) > 0 && 2*(depth+1) <= maxGirth; depth++ {
		select {
		case <-ctx.Done():
			return -1
		default:
		}

		found := -1
		next := make([]int, 0)
		for _, u := range level {
			for _, w := range t.edges[u] {
				if w == parent[u] {
					continue
				}
				d, seen := dist[w]
				if !seen {
					dist[w] = depth + 1
					parent[w] = u
					next = append(next, w)
					continue
				}
				length := depth + d + 1
				if found == -1 || length < found {
					found = length
				}
			}
		}
		if found != -1 && found <= maxGirth {
			return found
		}
		level = next
	}
	return -1
}

// CalculateGirth calculates the girth of the tanner graph induced by H.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func CalculateGirth(ctx context.Context, H mat.SparseMat, threads int) int {
	return CalculateGirthLowerBound(ctx, H, -1, threads)
}

// CalculateGirthLowerBound returns the length of the smallest cycle.
// It searches for cycles with a length <= smallestGirth. If no cycles are found
// that are smaller or equal to smallestGirth then it returns -1.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func CalculateGirthLowerBound(ctx context.Context, H mat.SparseMat, smallestGirth, threads int) int {
	if smallestGirth != -1 && (smallestGirth < 4 || smallestGirth%2 != 0) {
		panic("smallestGirth == -1 or smallestGirth must be a even number >=4")
	}

	t := newTanner(H)
	bound := smallestGirth
	if bound == -1 {
		bound = math.MaxInt32
	}

	pool := threadpool.New(ctx, threads)
	calculated := -1
	mux := sync.Mutex{}
	for i := 0; i < t.checks; i++ {
		index := i
		pool.Add(func() {
			mux.Lock()
			limit := bound
			mux.Unlock()

			g := t.shortestCycle(ctx, index, limit)
			if g == -1 {
				return
			}

			mux.Lock()
			if g <= bound {
				bound = g
				calculated = g
			}
			mux.Unlock()
		})
	}
	pool.Wait()
	return calculated
}

// HasGirthSmallerThan will search for cycle smaller than the given cycleLen.
// Return true if it found a cycle smaller than cycleLen, else returns false.
// threads specifies the number of threads to use if <=0 will use runtime.NumCPU()
func HasGirthSmallerThan(ctx context.Context, H mat.SparseMat, cycleLen, threads int) bool {
	if cycleLen < 4 {
		panic("cycleLen >=4 required")
	}

	t := newTanner(H)
	pool := threadpool.New(ctx, threads)
	smaller := false
	mux := sync.Mutex{}
	for i := 0; i < t.checks; i++ {
		index := i
		pool.Add(func() {
			mux.Lock()
			done := smaller
			mux.Unlock()
			if done {
				return
			}

			g := t.shortestCycle(ctx, index, cycleLen-1)
			if g > 0 {
				mux.Lock()
				smaller = true
				mux.Unlock()
			}
		})
	}
	pool.Wait()
	return smaller
}

// CalculateCycleLowerBound runs a BFS starting at the checkIndex check node, for maxGirth/2 steps
// if maxGirth ==-1 it will search until it finds a cycle
// in either case it returns the length of the cycle (up to maxGirth) or -1 if no cycle was found
func CalculateCycleLowerBound(ctx context.Context, H mat.SparseMat, checkIndex, maxGirth int) int {
	if maxGirth == -1 {
		maxGirth = math.MaxInt32
	}
	return newTanner(H).shortestCycle(ctx, checkIndex, maxGirth)
}
