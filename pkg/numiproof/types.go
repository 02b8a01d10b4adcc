package numiproof

import (
	"github.com/numiproof/numiproof/internal/numiproof/air"
	"github.com/numiproof/numiproof/internal/numiproof/stark"
)

// AIR is the public alias for the Algebraic Intermediate Representation
// interface spec §4.6 describes: a trace schema plus its constraints.
type AIR = air.AIR

// Proof is the public alias for the in-memory proof artifact spec §3/§6
// describes. Use EncodeProof/DecodeProof to move it across the wire.
type Proof = stark.Proof

// Config bundles the FRI tunables spec §6 names: the LDE blowup
// exponent, the number of folding rounds, and the query count.
type Config = stark.FriConfig

// ProductionConfig is the reference production default: blowup 8x, 5
// folding rounds, 80 queries.
func ProductionConfig() Config { return stark.ProductionConfig() }

// TestConfig is the reference fast default for tests: blowup 4x, a
// single folding round, 32 queries.
func TestConfig() Config { return stark.TestConfig() }

// Fibonacci constructs the Fibonacci example AIR spec §4.6 names.
func Fibonacci(a0, a1 uint64, steps int) AIR {
	return air.NewFibonacciAir(a0, a1, steps)
}

// RangeCheck constructs the range-check example AIR.
func RangeCheck(value uint64, bits int) AIR {
	return air.NewRangeCheckAir(value, bits)
}

// Permutation constructs the permutation example AIR.
func Permutation(input, output []uint64) AIR {
	return air.NewPermutationAir(input, output)
}

// HashChain constructs the hash-chain example AIR.
func HashChain(initial []byte, iterations int) AIR {
	return air.NewHashChainAir(initial, iterations)
}

// Shielded constructs the shielded-sum example AIR.
func Shielded(in, out []uint64, prevRoot []byte) AIR {
	return air.NewShieldedAir(in, out, prevRoot)
}

// Recursive constructs the recursion-placeholder example AIR spec
// §4.6 names and spec §1 explicitly excludes from the core's own
// scope: it carries no constraints of its own and exists only to bind
// a prior accumulator digest and a new chunk into a public input that
// a wrapping proof system would recurse over.
func Recursive(prev, cur []byte, steps int) AIR {
	return air.NewRecursiveAir(prev, cur, steps)
}
