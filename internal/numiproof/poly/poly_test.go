package poly

import (
	"testing"

	"github.com/numiproof/numiproof/internal/numiproof/field"
)

func elems(vals ...uint64) []field.Elem {
	out := make([]field.Elem, len(vals))
	for i, v := range vals {
		out[i] = field.New(v)
	}
	return out
}

func TestIFFTUndoesFFT(t *testing.T) {
	a := elems(1, 2, 3, 4, 5, 6, 7, 8)
	orig := append([]field.Elem(nil), a...)
	root := field.RootOfUnity(3) // len(a) == 8 == 2^3

	FFTInPlace(a, root)
	IFFTInPlace(a, root)

	for i := range a {
		if !a[i].Equal(orig[i]) {
			t.Fatalf("round trip mismatch at %d: got %v want %v", i, a[i], orig[i])
		}
	}
}

func TestFFTMatchesHornerEvaluation(t *testing.T) {
	coeffs := elems(3, 1, 4, 1, 5, 9, 2, 6)
	root := field.RootOfUnity(3)

	evals := append([]field.Elem(nil), coeffs...)
	FFTInPlace(evals, root)

	x := field.One()
	for i := range evals {
		want := hornerEval(coeffs, x)
		if !evals[i].Equal(want) {
			t.Fatalf("FFT[%d] = %v, want Horner eval %v", i, evals[i], want)
		}
		x = x.Mul(root)
	}
}

func TestLDEFromEvalsAgreesOnBasePoints(t *testing.T) {
	base := elems(10, 20, 30, 40) // n = 4
	const blowup = 2

	ext := LDEFromEvals(base, blowup)
	if len(ext) != len(base)*(1<<blowup) {
		t.Fatalf("unexpected extended length: got %d want %d", len(ext), len(base)*(1<<blowup))
	}

	stride := 1 << blowup
	for i, want := range base {
		got := ext[i*stride]
		if !got.Equal(want) {
			t.Fatalf("extended evaluation at base point %d: got %v want %v", i, got, want)
		}
	}
}

func TestVanishingOnExtendedZeroAtBasePoints(t *testing.T) {
	const baseSize = 4
	const domainSize = 16

	z := VanishingOnExtended(domainSize, baseSize)
	stride := domainSize / baseSize
	for i := 0; i < baseSize; i++ {
		if !z[i*stride].IsZero() {
			t.Fatalf("vanishing polynomial nonzero at base-domain point %d", i)
		}
	}

	nonzero := false
	for i := 0; i < domainSize; i++ {
		if i%stride != 0 && !z[i].IsZero() {
			nonzero = true
		}
	}
	if !nonzero {
		t.Fatalf("vanishing polynomial was zero everywhere off the base domain")
	}
}

func TestEvalPolyOnDomainConstant(t *testing.T) {
	coeffs := elems(42)
	out := EvalPolyOnDomain(coeffs, 8)
	for i, v := range out {
		if !v.Equal(field.New(42)) {
			t.Fatalf("constant poly at point %d: got %v want 42", i, v)
		}
	}
}

func TestFFTPanicsOnNonPowerOfTwoLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-power-of-two length")
		}
	}()
	a := elems(1, 2, 3)
	FFTInPlace(a, field.RootOfUnity(2))
}
