package air

import (
	"encoding/binary"

	"github.com/numiproof/numiproof/internal/numiproof/field"
)

// RangeCheckAir proves value fits in bits bits via bit decomposition:
// columns [accumulator, bit, power_of_2].
type RangeCheckAir struct {
	Value field.Elem
	Bits  int
}

// NewRangeCheckAir constructs a range-check AIR; panics if value does
// not fit in bits bits, a prover precondition violation.
func NewRangeCheckAir(value uint64, bits int) *RangeCheckAir {
	if bits > 64 {
		panic("air: range check supports at most 64 bits")
	}
	if bits < 64 && value >= (uint64(1)<<uint(bits)) {
		panic("air: value does not fit in the requested bit width")
	}
	return &RangeCheckAir{Value: field.New(value), Bits: bits}
}

func (a *RangeCheckAir) ID() string    { return "range_check_v1" }
func (a *RangeCheckAir) TraceLen() int { return a.Bits + 1 }
func (a *RangeCheckAir) NCols() int    { return 3 }

// PublicInputBytes encodes value:u64, bits:u32, little-endian.
func (a *RangeCheckAir) PublicInputBytes() []byte {
	buf := make([]byte, 8+4)
	binary.LittleEndian.PutUint64(buf[0:8], a.Value.ToU64())
	binary.LittleEndian.PutUint32(buf[8:12], uint32(a.Bits))
	return buf
}

func (a *RangeCheckAir) GenTrace() [][]field.Elem {
	n := a.TraceLen()
	acc := make([]field.Elem, n)
	bit := make([]field.Elem, n)
	pow2 := make([]field.Elem, n)

	acc[0] = a.Value
	pow2[0] = field.One()
	remaining := a.Value.ToU64()
	for i := 0; i < a.Bits; i++ {
		b := remaining & 1
		bit[i] = field.New(b)
		if i+1 < n {
			acc[i+1] = field.New(remaining >> 1)
			pow2[i+1] = pow2[i].Mul(field.New(2))
		}
		remaining >>= 1
	}
	acc[a.Bits] = field.Zero()
	return [][]field.Elem{acc, bit, pow2}
}

func (a *RangeCheckAir) CheckRow(i int, row []field.Elem, next []field.Elem) bool {
	if i == 0 && !row[0].Equal(a.Value) {
		return false
	}
	b := row[1]
	if !b.IsZero() && !b.Equal(field.One()) {
		return false
	}
	if next != nil {
		two := field.New(2)
		expectedNext := row[0].Sub(row[1]).Mul(two.Inv())
		if !next[0].Equal(expectedNext) {
			return false
		}
		if !next[2].Equal(row[2].Mul(two)) {
			return false
		}
	} else if !row[0].IsZero() {
		return false
	}
	return true
}

func (a *RangeCheckAir) EvalConstraints(i int, row []field.Elem, next []field.Elem) []field.Elem {
	c := make([]field.Elem, 3)
	if i == 0 {
		c[0] = row[0].Sub(a.Value)
	}
	b := row[1]
	c[1] = b.Mul(b.Sub(field.One()))
	if next != nil {
		two := field.New(2)
		c[0] = next[0].Sub(row[0].Sub(row[1]).Mul(two.Inv()))
		c[2] = next[2].Sub(row[2].Mul(two))
	} else {
		c[0] = row[0]
	}
	return c
}
