package linearblock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock/internal"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bec"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

//Systematic holds the generator matrix G in the original bit order of H and the column
// order used to derive it. Message bit i sits at codeword bit HColumnOrder[i].
type Systematic struct {
	HColumnOrder gf2.Permutation
	G            mat.SparseMat
}

//LinearBlock contains matrices for the original H matrix and the systematic G generator.
type LinearBlock struct {
	H          mat.SparseMat //the original H(parity) matrix
	Processing *Systematic   // contains systematic generator matrix
}

//// For JSON unmarshalling
type systematic struct {
	HColumnOrder gf2.Permutation
	G            mat.CSRMatrix
}
type linearblock struct {
	H          mat.CSRMatrix
	Processing *systematic
}

//UnmarshalJSON is needed because LinearBlock has a mat.SparseMat and requires special handling
func (l *LinearBlock) UnmarshalJSON(bytes []byte) error {
	var lb linearblock
	err := json.Unmarshal(bytes, &lb)
	if err != nil {
		return err
	}

	l.H = &lb.H
	l.Processing = nil
	if lb.Processing == nil {
		return nil
	}

	l.Processing = &Systematic{
		HColumnOrder: lb.Processing.HColumnOrder,
		G:            &lb.Processing.G,
	}
	return nil
}

//Encode take in a message and encodes it using the linear block, returning a codeword
func (l *LinearBlock) Encode(message mat.SparseVector) (codeword mat.SparseVector) {
	rows, _ := l.Processing.G.Dims()
	if message.Len() != rows {
		panic(fmt.Sprintf("message length == %v is required but found %v", rows, message.Len()))
	}

	return gf2.VecMul(message, l.Processing.G)
}

//EncodeBatch encodes each row of messages, returning the codewords as rows.
func (l *LinearBlock) EncodeBatch(messages mat.SparseMat) (mat.SparseMat, error) {
	return gf2.Mul(messages, l.Processing.G)
}

//EncodeBE is encode for Binary Erasure channels
func (l *LinearBlock) EncodeBE(message mat.SparseVector) (codeword []bec.ErasureBit) {
	tmp := l.Encode(message)

	codeword = make([]bec.ErasureBit, tmp.Len())
	for i := 0; i < tmp.Len(); i++ {
		codeword[i] = bec.ErasureBit(tmp.At(i))
	}
	return codeword
}

func orderVectorBE(codeword []bec.ErasureBit, ordering gf2.Permutation) []bec.ErasureBit {
	if len(ordering) == 0 {
		panic("ordering length must be >0")
	}
	if len(codeword) != len(ordering) {
		panic("vector length must equal ordering length")
	}
	result := make([]bec.ErasureBit, len(codeword))

	for c, c1 := range ordering {
		result[c] = codeword[c1]
	}

	return result
}

//Decode takes in a codeword and returns the message contained in it
func (l *LinearBlock) Decode(codeword mat.SparseVector) (message mat.SparseVector) {
	if codeword.Len() != l.CodewordLength() {
		panic(fmt.Sprintf("codeword length == %v required but found %v", l.CodewordLength(), codeword.Len()))
	}

	return l.Processing.HColumnOrder.Order(codeword).Slice(0, l.MessageLength())
}

func (l *LinearBlock) DecodeBE(codeword []bec.ErasureBit) (message []bec.ErasureBit) {
	if len(codeword) != l.CodewordLength() {
		panic(fmt.Sprintf("codeword length == %v required but found %v", l.CodewordLength(), len(codeword)))
	}

	codeword = orderVectorBE(codeword, l.Processing.HColumnOrder)
	return codeword[0:l.MessageLength()]
}

func (l *LinearBlock) Syndrome(codeword mat.SparseVector) (syndrome mat.SparseVector) {
	syndrome = mat.CSRVec(l.ParitySymbols())
	return syndrome.MatMul(l.H, codeword)
}

func (l *LinearBlock) MessageLength() int {
	k, _ := l.Processing.G.Dims()
	return k
}
func (l *LinearBlock) ParitySymbols() int {
	m, _ := l.H.Dims()
	return m
}
func (l *LinearBlock) CodewordLength() int {
	_, n := l.H.Dims()
	return n
}
func (l *LinearBlock) CodeRate() float64 {
	return float64(l.MessageLength()) / float64(l.CodewordLength())
}

//Validate will test if this linearblock satisfies G*H.T=0, where G is the generator matrix and H.T is the transpose of H
func (l *LinearBlock) Validate() bool {
	if l.Processing == nil || l.Processing.HColumnOrder.Validate() != nil {
		return false
	}
	return internal.ValidateHGMatrices(l.Processing.G, l.H)
}

func (l *LinearBlock) String() string {
	buf := strings.Builder{}
	buf.WriteString("{\nH:\n")
	buf.WriteString(l.H.String())
	if l.Processing != nil {
		buf.WriteString(fmt.Sprintf("Order: %v", l.Processing.HColumnOrder))
		buf.WriteString("\nG:\n")
		buf.WriteString(l.Processing.G.String())
	}
	buf.WriteString("}\n")
	return buf.String()
}

//New derives the systematic generator for H and returns the resulting code.
func New(ctx context.Context, H mat.SparseMat, threads int) (*LinearBlock, error) {
	order, G, err := internal.NewFromH(ctx, H, threads)
	if err != nil {
		return nil, fmt.Errorf("unable to create generator for H matrix: %w", err)
	}

	return &LinearBlock{
		H: H,
		Processing: &Systematic{
			HColumnOrder: order,
			G:            G,
		},
	}, nil
}

//IndependentRows returns H without the rows that are sums of earlier rows. Codes built from
// stacked permutation bands (gallager, array) always carry such rows.
func IndependentRows(ctx context.Context, H mat.SparseMat) (mat.SparseMat, error) {
	rows, cols := H.Dims()
	basis := make([]mat.SparseVector, 0)
	pivots := make([]int, 0)
	kept := make([]mat.SparseVector, 0)
	for r := 0; r < rows; r++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		v := H.Row(r)
		for i, b := range basis {
			if v.At(pivots[i]) == 1 {
				v.Add(v, b)
			}
		}
		ones := v.NonzeroArray()
		if len(ones) == 0 {
			continue
		}
		basis = append(basis, v)
		pivots = append(pivots, ones[0])
		kept = append(kept, H.Row(r))
	}
	return gf2.FromRows(cols, kept...), nil
}

//NewRedundant keeps every check of H but derives the generator from its independent rows,
// so rank deficient H matrices still give a code.
func NewRedundant(ctx context.Context, H mat.SparseMat, threads int) (*LinearBlock, error) {
	independent, err := IndependentRows(ctx, H)
	if err != nil {
		return nil, err
	}
	rows, _ := independent.Dims()
	if rows == 0 {
		return nil, fmt.Errorf("%w: H matrix has no nonzero rows", gf2.ErrRankDeficient)
	}
	logrus.Debugf("deriving generator from %v independent rows", rows)

	lb, err := New(ctx, independent, threads)
	if err != nil {
		return nil, err
	}
	lb.H = H
	return lb, nil
}
