package fri

import (
	"testing"

	"github.com/numiproof/numiproof/internal/numiproof/field"
)

func valsFromU64(vs ...uint64) []field.Elem {
	out := make([]field.Elem, len(vs))
	for i, v := range vs {
		out[i] = field.New(v)
	}
	return out
}

func TestCommitOpenVerifyRoundTrip(t *testing.T) {
	values := valsFromU64(1, 2, 3, 4, 5, 6, 7, 8)
	commitment, mt := CommitRound(values)
	for i, v := range values {
		proof := Open(mt, i, v)
		if !VerifyOpening(commitment, proof) {
			t.Fatalf("valid opening at %d failed to verify", i)
		}
	}
}

func TestVerifyOpeningRejectsTamperedValue(t *testing.T) {
	values := valsFromU64(1, 2, 3, 4)
	commitment, mt := CommitRound(values)
	proof := Open(mt, 1, values[1])
	proof.Value = field.New(999)
	if VerifyOpening(commitment, proof) {
		t.Fatalf("tampered value unexpectedly verified")
	}
}

func TestVerifyOpeningRejectsOutOfRangeIndex(t *testing.T) {
	values := valsFromU64(1, 2, 3, 4)
	commitment, mt := CommitRound(values)
	proof := Open(mt, 0, values[0])
	proof.Idx = 4
	if VerifyOpening(commitment, proof) {
		t.Fatalf("out-of-range index unexpectedly verified")
	}
}

func TestFoldValuesHalvesLength(t *testing.T) {
	values := valsFromU64(1, 2, 3, 4, 5, 6, 7, 8)
	alpha := field.New(3)
	folded := FoldValues(alpha, values)
	if len(folded) != len(values)/2 {
		t.Fatalf("expected length %d, got %d", len(values)/2, len(folded))
	}
	for i, v := range folded {
		want := values[i].Add(alpha.Mul(values[i+len(values)/2]))
		if !v.Equal(want) {
			t.Fatalf("fold mismatch at %d", i)
		}
	}
}

func TestFoldValuesPanicsOnOddLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for odd-length input")
		}
	}()
	FoldValues(field.New(1), valsFromU64(1, 2, 3))
}

func TestOpenPairAndVerifyPairAndFoldConsistency(t *testing.T) {
	values := valsFromU64(10, 20, 30, 40, 50, 60, 70, 80)
	commitment, mt := CommitRound(values)
	alpha := field.New(7)
	folded := FoldValues(alpha, values)

	for pos := 0; pos < len(values)/2; pos++ {
		pair := OpenPair(values, mt, pos)
		if !VerifyPair(commitment, pair) {
			t.Fatalf("pair opening at pos %d failed to verify", pos)
		}
		if !FoldIsConsistent(alpha, pair, folded[pair.Pos]) {
			t.Fatalf("fold consistency check failed at pos %d", pos)
		}
	}
}

func TestFoldIsConsistentRejectsWrongAlpha(t *testing.T) {
	values := valsFromU64(10, 20, 30, 40)
	_, mt := CommitRound(values)
	alpha := field.New(7)
	folded := FoldValues(alpha, values)
	pair := OpenPair(values, mt, 0)
	wrongAlpha := field.New(8)
	if FoldIsConsistent(wrongAlpha, pair, folded[pair.Pos]) {
		t.Fatalf("wrong folding challenge unexpectedly passed consistency check")
	}
}
