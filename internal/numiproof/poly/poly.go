// Package poly implements the polynomial primitives of spec §4.4: an
// in-place radix-2 NTT/INTT pair, low-degree extension from base
// evaluations, vanishing-polynomial evaluation, and Horner evaluation
// of small polynomials on a domain.
package poly

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/numiproof/numiproof/internal/numiproof/field"
)

// minParallelButterflies is the smallest per-level butterfly count
// worth fanning out across goroutines (spec §5); below this, goroutine
// setup cost dominates the saving.
const minParallelButterflies = 4096

// FFTInPlace computes the radix-2 decimation-in-time NTT of a over the
// subgroup generated by root, in place. len(a) must be a power of two
// and root a primitive len(a)-th root of unity.
func FFTInPlace(a []field.Elem, root field.Elem) {
	n := len(a)
	if n == 0 || n&(n-1) != 0 {
		panic("poly: FFTInPlace requires a power-of-two length")
	}
	bits := uint32(log2(n))
	for i := 0; i < n; i++ {
		j := int(field.BitReverse(uint32(i), bits))
		if j > i {
			a[i], a[j] = a[j], a[i]
		}
	}
	for m := 2; m <= n; m <<= 1 {
		wm := root.PowU64(uint64(n / m))
		half := m / 2
		parallelForButterflyGroups(n, m, func(k int) {
			wj := field.One()
			for j := 0; j < half; j++ {
				t := wj.Mul(a[k+j+half])
				u := a[k+j]
				a[k+j] = u.Add(t)
				a[k+j+half] = u.Sub(t)
				wj = wj.Mul(wm)
			}
		})
	}
}

// parallelForButterflyGroups calls fn(k) for each group start k = 0, m,
// 2m, ... < n, fanning the groups across an errgroup.Group of
// goroutines once there are enough butterflies in this level to make
// it worthwhile. Groups touch disjoint slice ranges so there is no
// data race; fn never errors, so Wait's error return is always nil.
func parallelForButterflyGroups(n, m int, fn func(k int)) {
	groups := n / m
	butterflies := n / 2
	if butterflies < minParallelButterflies || groups < 2 {
		for k := 0; k < n; k += m {
			fn(k)
		}
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > groups {
		workers = groups
	}
	var g errgroup.Group
	chunk := (groups + workers - 1) / workers
	for w := 0; w < workers; w++ {
		loG := w * chunk
		hiG := loG + chunk
		if hiG > groups {
			hiG = groups
		}
		if loG >= hiG {
			continue
		}
		g.Go(func() error {
			for gi := loG; gi < hiG; gi++ {
				fn(gi * m)
			}
			return nil
		})
	}
	g.Wait()
}

// IFFTInPlace computes the inverse NTT: FFT with root^-1, then scales
// by len(a)^-1.
func IFFTInPlace(a []field.Elem, root field.Elem) {
	FFTInPlace(a, root.Inv())
	invN := field.New(uint64(len(a))).Inv()
	for i := range a {
		a[i] = a[i].Mul(invN)
	}
}

// LDEFromEvals extends base-domain evaluations (length n, padded to the
// next power of two by replicating the last value) to the extended
// evaluation domain of size nextPow2(n) << blowupLog2, via INTT on the
// base domain, zero-padding the coefficients, and NTT on the extended
// domain (spec §4.4).
func LDEFromEvals(base []field.Elem, blowupLog2 uint32) []field.Elem {
	nBase := nextPowerOfTwo(len(base))
	extSize := nBase << blowupLog2

	evals := make([]field.Elem, nBase)
	copy(evals, base)
	if len(base) > 0 && len(base) < nBase {
		last := base[len(base)-1]
		for i := len(base); i < nBase; i++ {
			evals[i] = last
		}
	}

	wBase := field.RootOfUnity(uint32(log2(nBase)))
	IFFTInPlace(evals, wBase)

	coeffsExt := make([]field.Elem, extSize)
	copy(coeffsExt, evals)

	wExt := field.RootOfUnity(uint32(log2(extSize)))
	FFTInPlace(coeffsExt, wExt)
	return coeffsExt
}

// VanishingOnExtended evaluates z(x) = x^baseSize - 1 at the domainSize
// points {1, ω_D, ω_D^2, ...}. Both domainSize and baseSize must be
// powers of two.
func VanishingOnExtended(domainSize, baseSize int) []field.Elem {
	if domainSize&(domainSize-1) != 0 {
		panic("poly: VanishingOnExtended requires a power-of-two domain size")
	}
	w := field.RootOfUnity(uint32(log2(domainSize)))
	out := make([]field.Elem, domainSize)
	x := field.One()
	for i := range out {
		out[i] = x.PowU64(uint64(baseSize)).Sub(field.One())
		x = x.Mul(w)
	}
	return out
}

// EvalPolyOnDomain Horner-evaluates coeffs at each of the domainSize
// points {1, ω_D, ω_D^2, ...}.
func EvalPolyOnDomain(coeffs []field.Elem, domainSize int) []field.Elem {
	if domainSize&(domainSize-1) != 0 {
		panic("poly: EvalPolyOnDomain requires a power-of-two domain size")
	}
	w := field.RootOfUnity(uint32(log2(domainSize)))
	out := make([]field.Elem, domainSize)
	x := field.One()
	for i := range out {
		out[i] = hornerEval(coeffs, x)
		x = x.Mul(w)
	}
	return out
}

func hornerEval(coeffs []field.Elem, x field.Elem) field.Elem {
	acc := field.Zero()
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func log2(n int) int {
	r := 0
	for n > 1 {
		n >>= 1
		r++
	}
	return r
}
