package air

import (
	"encoding/binary"

	"github.com/numiproof/numiproof/internal/numiproof/field"
	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// hashChainCols is the fixed column count: a 384-bit digest held as 6
// 64-bit limbs.
const hashChainCols = 6

// HashChainAir proves correct computation of an iterated SHAKE256
// chain: each row's 6 limbs hash to the next row's 6 limbs.
type HashChainAir struct {
	Initial    []byte
	Iterations int
}

// NewHashChainAir constructs a hash-chain AIR from an initial seed.
func NewHashChainAir(initial []byte, iterations int) *HashChainAir {
	return &HashChainAir{Initial: initial, Iterations: iterations}
}

func padTo48(b []byte) []byte {
	out := make([]byte, 48)
	copy(out, b)
	return out
}

func limbsFromBytes(b []byte) [hashChainCols]field.Elem {
	var limbs [hashChainCols]field.Elem
	padded := padTo48(b)
	for i := 0; i < hashChainCols; i++ {
		limbs[i] = field.New(binary.LittleEndian.Uint64(padded[i*8 : i*8+8]))
	}
	return limbs
}

func bytesFromLimbs(limbs [hashChainCols]field.Elem) []byte {
	out := make([]byte, 48)
	for i, v := range limbs {
		binary.LittleEndian.PutUint64(out[i*8:i*8+8], v.ToU64())
	}
	return out
}

func hashLimbs(limbs [hashChainCols]field.Elem) [hashChainCols]field.Elem {
	digest := xof.Hxof(bytesFromLimbs(limbs))
	return limbsFromBytes(digest[:])
}

func (a *HashChainAir) ID() string    { return "hash_chain_v1" }
func (a *HashChainAir) TraceLen() int { return a.Iterations + 1 }
func (a *HashChainAir) NCols() int    { return hashChainCols }

func (a *HashChainAir) finalHash() []byte {
	current := padTo48(a.Initial)
	for i := 0; i < a.Iterations; i++ {
		digest := xof.Hxof(current)
		current = digest[:]
	}
	return current
}

// PublicInputBytes encodes initial:48, final_hash:48, iterations:u32.
func (a *HashChainAir) PublicInputBytes() []byte {
	buf := make([]byte, 0, 48+48+4)
	buf = append(buf, padTo48(a.Initial)...)
	buf = append(buf, a.finalHash()...)
	var iters [4]byte
	binary.LittleEndian.PutUint32(iters[:], uint32(a.Iterations))
	buf = append(buf, iters[:]...)
	return buf
}

func (a *HashChainAir) GenTrace() [][]field.Elem {
	n := a.TraceLen()
	cols := make([][]field.Elem, hashChainCols)
	for c := range cols {
		cols[c] = make([]field.Elem, n)
	}
	current := limbsFromBytes(padTo48(a.Initial))
	for step := 0; step <= a.Iterations; step++ {
		for c := 0; c < hashChainCols; c++ {
			cols[c][step] = current[c]
		}
		if step < a.Iterations {
			current = hashLimbs(current)
		}
	}
	return cols
}

func rowToLimbs(row []field.Elem) [hashChainCols]field.Elem {
	var limbs [hashChainCols]field.Elem
	copy(limbs[:], row)
	return limbs
}

func (a *HashChainAir) CheckRow(i int, row []field.Elem, next []field.Elem) bool {
	if i == 0 {
		initial := limbsFromBytes(padTo48(a.Initial))
		for j := 0; j < hashChainCols; j++ {
			if !row[j].Equal(initial[j]) {
				return false
			}
		}
	}
	if next != nil {
		expected := hashLimbs(rowToLimbs(row))
		for j := 0; j < hashChainCols; j++ {
			if !next[j].Equal(expected[j]) {
				return false
			}
		}
	} else {
		final := limbsFromBytes(a.finalHash())
		for j := 0; j < hashChainCols; j++ {
			if !row[j].Equal(final[j]) {
				return false
			}
		}
	}
	return true
}

func (a *HashChainAir) EvalConstraints(i int, row []field.Elem, next []field.Elem) []field.Elem {
	c := make([]field.Elem, hashChainCols)
	if i == 0 {
		initial := limbsFromBytes(padTo48(a.Initial))
		for j := range c {
			c[j] = row[j].Sub(initial[j])
		}
	}
	if next != nil {
		expected := hashLimbs(rowToLimbs(row))
		for j := range c {
			c[j] = next[j].Sub(expected[j])
		}
	} else {
		final := limbsFromBytes(a.finalHash())
		for j := range c {
			c[j] = row[j].Sub(final[j])
		}
	}
	return c
}
