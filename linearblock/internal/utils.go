package internal

import (
	"context"
	"fmt"

	"github.com/nathanhack/ldpc/gf2"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

//BuildGenerator assembles G=[I_K | P] from the systematic form and moves its columns back
// into the original bit order of H, so G*H.T=0 holds for the unpermuted H.
func BuildGenerator(form *SystematicForm) mat.SparseMat {
	m, k := form.PT.Dims()
	n := m + k

	work := mat.CSRMat(k, n)
	work.SetMatrix(mat.CSRIdentity(k), 0, 0)
	if m > 0 {
		work.SetMatrix(form.PT.T(), 0, k)
	}

	return form.Permutation.PermuteColumns(work)
}

//NewFromH creates the generator matrix G for parity matrix H along with the column ordering
// used to derive it. The message bits of a codeword c=u*G are found at c[order[i]] for i<K.
func NewFromH(ctx context.Context, H mat.SparseMat, threads int) (order gf2.Permutation, G mat.SparseMat, err error) {
	logrus.Debugf("Creating generator matrix from H matrix")
	form, err := Reduce(ctx, H, threads)
	if err != nil {
		logrus.Debugf("Unable to create generator matrix from H: %v", err)
		return nil, nil, err
	}

	G = BuildGenerator(form)

	if logrus.IsLevelEnabled(logrus.DebugLevel) && !ValidateHGMatrices(G, H) {
		logrus.Errorf("generator matrix failed G*H.T=0")
		return nil, nil, fmt.Errorf("generator matrix failed G*H.T=0")
	}

	logrus.Debugf("Generator Matrix complete")
	return form.Permutation, G, nil
}

//ValidateHGMatrices tests if G*H.T ==0 where H.T is the transpose of H
func ValidateHGMatrices(G, H mat.SparseMat) bool {
	rows, gCols := G.Dims()
	checks, hCols := H.Dims()
	if gCols != hCols {
		return false
	}

	hRows := make([]mat.SparseVector, checks)
	for j := range hRows {
		hRows[j] = H.Row(j)
	}
	for i := 0; i < rows; i++ {
		row := G.Row(i)
		for _, h := range hRows {
			//equiv to G*H.T
			if row.Dot(h) > 0 {
				return false
			}
		}
	}

	return true
}

//ColumnSwapped returns H with its columns placed in the given order, column c of the
// result is column order[c] of H.
func ColumnSwapped(H mat.SparseMat, order gf2.Permutation) mat.SparseMat {
	return order.Inverse().PermuteColumns(H)
}
