package numiproof

import "github.com/numiproof/numiproof/internal/numiproof/stark"

// Prove builds a full proof for a under cfg, deriving every random
// choice from the Fiat-Shamir transcript (spec §4.7).
//
// Prove panics if a violates its own preconditions (spec §7 treats
// this as a programming error in trusted prover code, not a
// recoverable failure); it never returns an error for that reason.
func Prove(a AIR, cfg Config) *Proof {
	p := stark.NewProver(cfg)
	return p.Prove(a)
}

// Verify checks a proof end to end (spec §4.8). It never panics, even
// on an adversarially constructed proof: every failure collapses to a
// false return.
func Verify(p *Proof) bool {
	return stark.Verify(p)
}

// Accumulate folds a new chunk into an optional running digest (spec
// §8's accumulator property): byte-stable across runs, distinct from a
// bare single-input hash once a prior digest is supplied.
func Accumulate(prev *[48]byte, chunk []byte) [48]byte {
	return stark.Accumulate(prev, chunk)
}
