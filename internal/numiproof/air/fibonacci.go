package air

import (
	"encoding/binary"

	"github.com/numiproof/numiproof/internal/numiproof/field"
)

// FibonacciAir is the canonical example AIR of spec §4.6: two columns
// [a_i, a_{i+1}] with the usual addition recurrence.
type FibonacciAir struct {
	A0    field.Elem
	A1    field.Elem
	Steps int
}

// NewFibonacciAir builds a Fibonacci AIR instance from native integers.
func NewFibonacciAir(a0, a1 uint64, steps int) *FibonacciAir {
	return &FibonacciAir{A0: field.New(a0), A1: field.New(a1), Steps: steps}
}

func fibExpectedFirst(a0, a1 field.Elem, steps int) field.Elem {
	x, y := a0, a1
	for i := 0; i < steps; i++ {
		z := x.Add(y)
		x = y
		y = z
	}
	return x
}

func (f *FibonacciAir) ID() string    { return "fibonacci_v1" }
func (f *FibonacciAir) TraceLen() int { return f.Steps + 1 }
func (f *FibonacciAir) NCols() int    { return 2 }

// PublicInputBytes encodes steps:u32, a0:u64, a1:u64, expected_first:u64,
// all little-endian.
func (f *FibonacciAir) PublicInputBytes() []byte {
	expected := fibExpectedFirst(f.A0, f.A1, f.Steps)
	buf := make([]byte, 4+8+8+8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(f.Steps))
	binary.LittleEndian.PutUint64(buf[4:12], f.A0.ToU64())
	binary.LittleEndian.PutUint64(buf[12:20], f.A1.ToU64())
	binary.LittleEndian.PutUint64(buf[20:28], expected.ToU64())
	return buf
}

func (f *FibonacciAir) GenTrace() [][]field.Elem {
	n := f.TraceLen()
	c0 := make([]field.Elem, n)
	c1 := make([]field.Elem, n)
	c0[0], c1[0] = f.A0, f.A1
	for i := 0; i < n-1; i++ {
		c0[i+1] = c1[i]
		c1[i+1] = c0[i].Add(c1[i])
	}
	return [][]field.Elem{c0, c1}
}

func (f *FibonacciAir) CheckRow(i int, row []field.Elem, next []field.Elem) bool {
	if i == 0 {
		if !row[0].Equal(f.A0) || !row[1].Equal(f.A1) {
			return false
		}
	}
	if next != nil {
		if !next[0].Equal(row[1]) {
			return false
		}
		if !next[1].Equal(row[0].Add(row[1])) {
			return false
		}
	} else {
		expected := fibExpectedFirst(f.A0, f.A1, f.Steps)
		if !row[0].Equal(expected) {
			return false
		}
	}
	return true
}

func (f *FibonacciAir) EvalConstraints(i int, row []field.Elem, next []field.Elem) []field.Elem {
	c := make([]field.Elem, 2)
	if i == 0 {
		c[0] = row[0].Sub(f.A0)
		c[1] = row[1].Sub(f.A1)
	}
	if next != nil {
		c[0] = next[0].Sub(row[1])
		c[1] = next[1].Sub(row[0].Add(row[1]))
	} else {
		expected := fibExpectedFirst(f.A0, f.A1, f.Steps)
		c[0] = row[0].Sub(expected)
	}
	return c
}
