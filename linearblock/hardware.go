package linearblock

import (
	"fmt"

	"github.com/nathanhack/ldpc/gf2"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

//Layout is a code zero padded to hardware block boundaries. Padded checks are all zero
// so they are always satisfied, padded codeword bits are never touched by any check.
type Layout struct {
	Code *LinearBlock

	K, M, N                   int
	KPadded, MPadded, NPadded int

	G  mat.SparseMat // KPadded×NPadded
	H  mat.SparseMat // MPadded×NPadded
	HT mat.SparseMat // NPadded×MPadded, the decoder's check matrix
}

//HardwareLayout pads the generator and check matrices of l. Rows are rounded up to
// rowMultiple and columns to colMultiple.
func HardwareLayout(l *LinearBlock, rowMultiple, colMultiple int) (*Layout, error) {
	if l.Processing == nil {
		return nil, fmt.Errorf("linear block has no generator matrix")
	}

	layout := &Layout{
		Code: l,
		K:    l.MessageLength(),
		M:    l.ParitySymbols(),
		N:    l.CodewordLength(),
	}
	layout.KPadded = gf2.AlignUp(layout.K, rowMultiple)
	layout.MPadded = gf2.AlignUp(layout.M, rowMultiple)
	layout.NPadded = gf2.AlignUp(layout.N, colMultiple)

	var err error
	layout.G, err = gf2.Pad(l.Processing.G, layout.KPadded, layout.NPadded)
	if err != nil {
		return nil, err
	}
	layout.H, err = gf2.Pad(l.H, layout.MPadded, layout.NPadded)
	if err != nil {
		return nil, err
	}
	layout.HT = layout.H.T()

	logrus.WithFields(logrus.Fields{
		"G": fmt.Sprintf("%vx%v->%vx%v", layout.K, layout.N, layout.KPadded, layout.NPadded),
		"H": fmt.Sprintf("%vx%v->%vx%v", layout.M, layout.N, layout.MPadded, layout.NPadded),
	}).Debug("hardware layout")
	return layout, nil
}

//Encode encodes a padded message. The padding bits must be zero.
func (l *Layout) Encode(message mat.SparseVector) (mat.SparseVector, error) {
	if message.Len() != l.KPadded {
		return nil, fmt.Errorf("%w: message length == %v is required but found %v", gf2.ErrDimensionMismatch, l.KPadded, message.Len())
	}
	for _, i := range message.NonzeroArray() {
		if i >= l.K {
			return nil, fmt.Errorf("%w: padded message bit %v is set", gf2.ErrMalformedInput, i)
		}
	}
	return gf2.VecMul(message, l.G), nil
}

//EncodeBatch encodes each padded message row; rows with padding bits set are rejected.
func (l *Layout) EncodeBatch(messages mat.SparseMat) (mat.SparseMat, error) {
	frames, cols := messages.Dims()
	if cols != l.KPadded {
		return nil, fmt.Errorf("%w: message length == %v is required but found %v", gf2.ErrDimensionMismatch, l.KPadded, cols)
	}
	for f := 0; f < frames; f++ {
		for _, i := range messages.Row(f).NonzeroArray() {
			if i >= l.K {
				return nil, fmt.Errorf("%w: padded bit %v of message %v is set", gf2.ErrMalformedInput, i, f)
			}
		}
	}
	return gf2.Mul(messages, l.G)
}

//Decode extracts the message from a padded codeword.
func (l *Layout) Decode(codeword mat.SparseVector) (mat.SparseVector, error) {
	if codeword.Len() != l.NPadded {
		return nil, fmt.Errorf("%w: codeword length == %v is required but found %v", gf2.ErrDimensionMismatch, l.NPadded, codeword.Len())
	}
	return l.Code.Decode(codeword.Slice(0, l.N)), nil
}

//Validate checks G*H.T=0 on the padded matrices.
func (l *Layout) Validate() bool {
	product, err := gf2.Mul(l.G, l.HT)
	return err == nil && gf2.IsZero(product)
}
