package gf2

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

//Permutation maps working column i to original column p[i].
type Permutation []int

//IdentityPermutation creates the identity permutation of length n.
func IdentityPermutation(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

//Swap exchanges the targets of i and j.
func (p Permutation) Swap(i, j int) {
	x := len(p)
	if 0 <= i && i < x && 0 <= j && j < x {
		p[i], p[j] = p[j], p[i]
	}
}

//Validate returns an error when p is not a bijection on [0,len(p)).
func (p Permutation) Validate() error {
	seen := make([]bool, len(p))
	for i, t := range p {
		if t < 0 || t >= len(p) {
			return fmt.Errorf("permutation target %v at %v out of range [0,%v)", t, i, len(p))
		}
		if seen[t] {
			return fmt.Errorf("permutation target %v repeated at %v", t, i)
		}
		seen[t] = true
	}
	return nil
}

//Inverse returns q such that q[p[i]] == i.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for i, t := range p {
		q[t] = i
	}
	return q
}

func (p Permutation) Copy() Permutation {
	q := make(Permutation, len(p))
	copy(q, p)
	return q
}

//Order returns the vector whose ith bit is bit p[i] of v.
func (p Permutation) Order(v mat.SparseVector) mat.SparseVector {
	if v.Len() != len(p) {
		panic(fmt.Sprintf("vector length %v must equal permutation length %v", v.Len(), len(p)))
	}
	inv := p.Inverse()
	result := mat.CSRVec(v.Len())
	for _, c1 := range v.NonzeroArray() {
		result.Set(inv[c1], 1)
	}
	return result
}

//Unorder is the inverse of Order: bit p[i] of the result is bit i of v.
func (p Permutation) Unorder(v mat.SparseVector) mat.SparseVector {
	if v.Len() != len(p) {
		panic(fmt.Sprintf("vector length %v must equal permutation length %v", v.Len(), len(p)))
	}
	result := mat.CSRVec(v.Len())
	for _, c := range v.NonzeroArray() {
		result.Set(p[c], 1)
	}
	return result
}

//PermuteColumns returns a copy of m whose column p[i] holds column i of m.
func (p Permutation) PermuteColumns(m mat.SparseMat) mat.SparseMat {
	rows, cols := m.Dims()
	if len(p) != cols {
		panic(fmt.Sprintf("permutation length %v required but found %v", cols, len(p)))
	}
	result := mat.CSRMat(rows, cols)
	for r := 0; r < rows; r++ {
		for _, c := range m.Row(r).NonzeroArray() {
			result.Set(r, p[c], 1)
		}
	}
	return result
}
