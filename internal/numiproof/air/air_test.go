package air

import (
	"testing"

	"github.com/numiproof/numiproof/internal/numiproof/field"
)

// checkAllRows walks a trace and asserts CheckRow passes at every row,
// the invariant both prover and verifier rely on.
func checkAllRows(t *testing.T, a AIR) {
	t.Helper()
	cols := a.GenTrace()
	n := a.TraceLen()
	c := a.NCols()
	if len(cols) != c {
		t.Fatalf("GenTrace returned %d columns, want %d", len(cols), c)
	}
	for _, col := range cols {
		if len(col) != n {
			t.Fatalf("column has %d rows, want %d", len(col), n)
		}
	}
	extractRow := func(i int) []field.Elem {
		r := make([]field.Elem, c)
		for col := 0; col < c; col++ {
			r[col] = cols[col][i]
		}
		return r
	}
	for i := 0; i < n; i++ {
		cur := extractRow(i)
		var next []field.Elem
		if i+1 < n {
			next = extractRow(i + 1)
		}
		if !a.CheckRow(i, cur, next) {
			t.Fatalf("%s: CheckRow failed at row %d", a.ID(), i)
		}
	}
}

func TestFibonacciTraceSatisfiesConstraints(t *testing.T) {
	a := NewFibonacciAir(1, 1, 32)
	checkAllRows(t, a)
}

func TestRangeCheckTraceSatisfiesConstraints(t *testing.T) {
	a := NewRangeCheckAir(42, 8)
	checkAllRows(t, a)
}

func TestPermutationTraceSatisfiesConstraintsForValidPermutation(t *testing.T) {
	a := NewPermutationAir([]uint64{1, 2, 3, 4, 5}, []uint64{5, 3, 1, 4, 2})
	checkAllRows(t, a)
}

func TestPermutationTraceFailsForNonPermutation(t *testing.T) {
	a := NewPermutationAir([]uint64{1, 2, 3}, []uint64{1, 2, 4})
	cols := a.GenTrace()
	last := a.TraceLen() - 1
	row := []field.Elem{cols[0][last], cols[1][last], cols[2][last], cols[3][last]}
	if a.CheckRow(last, row, nil) {
		t.Fatalf("expected final-row check to fail for a non-permutation")
	}
}

func TestHashChainTraceSatisfiesConstraints(t *testing.T) {
	a := NewHashChainAir([]byte{1, 2, 3, 4}, 3)
	checkAllRows(t, a)
}

func TestShieldedTraceSatisfiesConstraintsWhenBalanced(t *testing.T) {
	a := NewShieldedAir([]uint64{10, 20}, []uint64{15, 15}, []byte("root"))
	checkAllRows(t, a)
}

func TestShieldedTraceFailsWhenUnbalanced(t *testing.T) {
	a := NewShieldedAir([]uint64{10, 20}, []uint64{5, 5}, []byte("root"))
	cols := a.GenTrace()
	last := a.TraceLen() - 1
	row := []field.Elem{cols[0][last], cols[1][last]}
	if a.CheckRow(last, row, nil) {
		t.Fatalf("expected final-row check to fail for an unbalanced ledger")
	}
}

func TestRecursiveTraceSatisfiesConstraints(t *testing.T) {
	a := NewRecursiveAir(nil, []byte("chunk"), 4)
	checkAllRows(t, a)
	a2 := NewRecursiveAir([]byte("prevdigest"), []byte("chunk2"), 4)
	checkAllRows(t, a2)
}
