// Package field implements the Goldilocks prime field
// F = Z/pZ with p = 2^64 - 2^32 + 1, the core arithmetic of numiproof.
package field

import "github.com/holiman/uint256"

// Modulus is the Goldilocks prime 2^64 - 2^32 + 1.
const Modulus uint64 = 0xFFFF_FFFF_0000_0001

// epsilon is 2^32 - 1, used by the Solinas-style reduction below since
// 2^64 ≡ epsilon (mod Modulus).
const epsilon uint64 = 0xFFFF_FFFF

// Elem is a canonical field element, always stored in [0, Modulus).
type Elem struct {
	v uint64
}

// New reduces x modulo the field and returns the canonical element.
func New(x uint64) Elem {
	if x >= Modulus {
		x -= Modulus
	}
	return Elem{x}
}

// Zero is the additive identity.
func Zero() Elem { return Elem{0} }

// One is the multiplicative identity.
func One() Elem { return Elem{1} }

// FromU128 reduces a 128-bit value (given as hi:lo 64-bit words) modulo
// the field using the Solinas identity 2^64 ≡ 2^32 - 1 (mod p).
func FromU128(hi, lo uint64) Elem {
	return Elem{reduce128(hi, lo)}
}

// reduce128 folds a 128-bit value hi*2^64 + lo down to a canonical
// residue mod p. This must match naive big-integer reduction on every
// 128-bit input (spec requirement); the two extra conditional
// corrections below handle the carries the fold can introduce.
func reduce128(hi, lo uint64) uint64 {
	// x ≡ lo + hi*(2^32 - 1) (mod p)
	hiLo := hi & epsilon
	hiHi := hi >> 32

	// lo - hiHi, with an add-back-Modulus if this borrows.
	r, borrow := subBorrow(lo, hiHi)
	if borrow != 0 {
		r -= epsilon
	}

	// r + hiLo*(2^32 - 1), reduced again if it overflows or exceeds Modulus.
	shifted := (hiLo << 32) - hiLo
	sum, carry := addCarry(r, shifted)
	if carry != 0 || sum >= Modulus {
		sum -= Modulus
	}
	return sum
}

func addCarry(a, b uint64) (sum uint64, carry uint64) {
	sum = a + b
	if sum < a {
		carry = 1
	}
	return
}

func subBorrow(a, b uint64) (diff uint64, borrow uint64) {
	diff = a - b
	if a < b {
		borrow = 1
	}
	return
}

// ToU64 returns the canonical uint64 representative.
func (e Elem) ToU64() uint64 { return e.v }

// Add returns e + other, reduced into [0, Modulus).
func (e Elem) Add(other Elem) Elem {
	s, carry := addCarry(e.v, other.v)
	if carry != 0 || s >= Modulus {
		s -= Modulus
	}
	return Elem{s}
}

// Sub returns e - other, reduced into [0, Modulus).
func (e Elem) Sub(other Elem) Elem {
	d, borrow := subBorrow(e.v, other.v)
	if borrow != 0 {
		d += Modulus
	}
	return Elem{d}
}

// Neg returns -e.
func (e Elem) Neg() Elem {
	if e.v == 0 {
		return e
	}
	return Elem{Modulus - e.v}
}

// Mul returns e * other as a 128-bit product reduced mod p.
func (e Elem) Mul(other Elem) Elem {
	hi, lo := mul64(e.v, other.v)
	return Elem{reduce128(hi, lo)}
}

func mul64(a, b uint64) (hi, lo uint64) {
	const mask32 = 0xFFFF_FFFF
	aLo, aHi := a&mask32, a>>32
	bLo, bHi := b&mask32, b>>32

	ll := aLo * bLo
	lh := aLo * bHi
	hl := aHi * bLo
	hh := aHi * bHi

	mid := (ll >> 32) + (lh & mask32) + (hl & mask32)
	lo = (mid << 32) | (ll & mask32)
	hi = hh + (lh >> 32) + (hl >> 32) + (mid >> 32)
	return
}

// Pow computes e^exp via right-to-left square-and-multiply over every
// set bit of exp (a uint256.Int holds the exponent per the spec's
// pow(u128) contract; Goldilocks itself never needs more than 64 bits
// of exponent).
func (e Elem) Pow(exp *uint256.Int) Elem {
	acc := One()
	base := e
	words := exp.Bytes32() // big-endian 32 bytes; we only consume bits as needed
	// Walk bits from least significant to most significant.
	for bit := 0; bit < 256; bit++ {
		byteIdx := 31 - bit/8
		bitIdx := uint(bit % 8)
		if words[byteIdx]&(1<<bitIdx) != 0 {
			acc = acc.Mul(base)
		}
		base = base.Mul(base)
		if isZeroFrom(words, bit+1) {
			break
		}
	}
	return acc
}

// isZeroFrom reports whether every bit at position >= fromBit is zero,
// letting Pow stop early once no higher bits remain.
func isZeroFrom(words [32]byte, fromBit int) bool {
	for bit := fromBit; bit < 256; bit++ {
		byteIdx := 31 - bit/8
		bitIdx := uint(bit % 8)
		if words[byteIdx]&(1<<bitIdx) != 0 {
			return false
		}
	}
	return true
}

// PowU64 is the common case of Pow with a native uint64 exponent.
func (e Elem) PowU64(exp uint64) Elem {
	acc := One()
	base := e
	for exp > 0 {
		if exp&1 == 1 {
			acc = acc.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return acc
}

// Inv computes the multiplicative inverse via Fermat's little theorem.
// Calling Inv on zero is a programming error (spec §4.1); it panics.
func (e Elem) Inv() Elem {
	if e.v == 0 {
		panic("field: inverse of zero")
	}
	return e.PowU64(Modulus - 2)
}

// Equal reports whether e and other are the same canonical element.
func (e Elem) Equal(other Elem) bool { return e.v == other.v }

// IsZero reports whether e is the additive identity.
func (e Elem) IsZero() bool { return e.v == 0 }

// Bytes returns the little-endian 8-byte encoding of e's canonical
// representative, the row/leaf encoding used throughout the wire
// format (spec §6).
func (e Elem) Bytes() [8]byte {
	var b [8]byte
	v := e.v
	for i := 0; i < 8; i++ {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

// FromBytes decodes a little-endian 8-byte encoding produced by Bytes,
// reducing into canonical range.
func FromBytes(b [8]byte) Elem {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = (v << 8) | uint64(b[i])
	}
	return New(v)
}

// generator is the fixed multiplicative generator used to derive every
// root of unity (spec §3).
const generator uint64 = 7

// RootOfUnity returns ω_k, a primitive 2^k-th root of unity, for
// 1 <= k <= 32. It is derived deterministically as g^((p-1)/2^k).
func RootOfUnity(k uint32) Elem {
	if k == 0 || k > 32 {
		panic("field: root of unity order out of range [1, 32]")
	}
	exp := (Modulus - 1) >> k
	return New(generator).PowU64(exp)
}

// BitReverse returns the standard bit-reversal permutation of i over
// the given bit width.
func BitReverse(i uint32, bits uint32) uint32 {
	var r uint32
	for b := uint32(0); b < bits; b++ {
		r = (r << 1) | (i & 1)
		i >>= 1
	}
	return r
}
