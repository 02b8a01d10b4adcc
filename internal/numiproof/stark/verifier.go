package stark

import (
	"github.com/numiproof/numiproof/internal/numiproof/air"
	"github.com/numiproof/numiproof/internal/numiproof/field"
	"github.com/numiproof/numiproof/internal/numiproof/fri"
	"github.com/numiproof/numiproof/internal/numiproof/merkle"
	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// Verify checks a Proof end to end, per spec §4.8. Every failure path
// returns false; nothing here panics on adversarial input.
func Verify(p *Proof) bool {
	if p == nil || p.Version != wireVersion {
		return false
	}
	if p.NRows == 0 {
		return false
	}
	reconstructed, ok := air.Decode(p.AirID, p.PubInputEnc)
	if !ok {
		return false
	}
	if p.NCols != uint64(reconstructed.NCols()) {
		return false
	}

	t := xof.NewTranscript(transcriptDomain)
	t.Absorb("air_id", []byte(p.AirID))
	t.Absorb("pub_input", p.PubInputEnc)
	t.Absorb("root", p.MerkleRoot[:])

	nBase := nextPow2(int(p.NRows))
	if p.FriCommitment != nil {
		if p.FriCommitment.Len%nBase != 0 {
			return false
		}
		blowup := p.FriCommitment.Len / nBase
		if blowup <= 0 || blowup&(blowup-1) != 0 {
			return false
		}
	}

	// The ZK-mask RNG draws (r0, r1, then one gamma per column) are
	// replayed for transcript bookkeeping parity with the prover, even
	// though the verifier does not need their values: it never
	// recomputes the masked oracle itself, only checks openings into it.
	rngMask := t.ChallengeRNG()
	rngMask.NextU64() // r0
	rngMask.NextU64() // r1
	for c := uint64(0); c < p.NCols; c++ {
		rngMask.NextU64() // gamma_c
	}

	alphas := make([]field.Elem, len(p.FriRounds))
	for j := range p.FriRounds {
		var prevRoot xof.Digest
		if j == 0 {
			if p.FriCommitment == nil {
				return false
			}
			prevRoot = p.FriCommitment.Root
		} else {
			prevRoot = p.FriRounds[j-1].Root
		}
		t.Absorb("fri_round_root", prevRoot[:])
		alphas[j] = field.New(t.ChallengeU64())
	}

	if len(p.FriRounds) > 1 {
		first := p.FriRounds[0].Len
		last := p.FriRounds[len(p.FriRounds)-1].Len
		if last >= first {
			return false
		}
	}

	if len(p.Openings) != int(p.Queries) {
		return false
	}
	hasFri := p.FriCommitment != nil
	if hasFri && len(p.FriQueries) != int(p.Queries) {
		return false
	}
	if hasFri && len(p.FriRoundQueries) != int(p.Queries) {
		return false
	}

	queryRng := t.ChallengeRNG()
	for k := 0; k < int(p.Queries); k++ {
		expectedIdx := int(queryRng.NextU64() % p.NRows)
		o := p.Openings[k]
		if o.Idx != expectedIdx {
			return false
		}

		leaf := xof.LeafHash(xof.LabelRow, o.Row)
		if !merkle.Verify(p.MerkleRoot, o.Idx, leaf, o.PathRow) {
			return false
		}
		row, ok := decodeRow(o.Row, int(p.NCols))
		if !ok {
			return false
		}

		var next []field.Elem
		if o.NextRow != nil {
			if o.PathNext == nil {
				return false
			}
			nextLeaf := xof.LeafHash(xof.LabelRow, o.NextRow)
			if !merkle.Verify(p.MerkleRoot, o.Idx+1, nextLeaf, o.PathNext) {
				return false
			}
			next, ok = decodeRow(o.NextRow, int(p.NCols))
			if !ok {
				return false
			}
		} else if o.PathNext != nil {
			return false
		}

		if !reconstructed.CheckRow(o.Idx, row, next) {
			return false
		}

		if hasFri {
			fq := p.FriQueries[k]
			extIdx := (o.Idx << blowupLog2From(p)) % p.FriCommitment.Len
			if fq.Idx != extIdx {
				return false
			}
			v0Commitment := fri.FriRoundCommitment{Root: p.FriCommitment.Root, Len: p.FriCommitment.Len}
			if !fri.VerifyOpening(v0Commitment, fq) {
				return false
			}

			pairs := p.FriRoundQueries[k]
			if len(pairs) != len(p.FriRounds) {
				return false
			}
			// pairs[j] opens the SOURCE array of fold round j: j == 0 is
			// V0 itself (fq's commitment); j >= 1 is the array committed
			// as FriRounds[j-1]. Its Lo value at the same extIdx must
			// match fq.Value, since both are openings of V0 at the same
			// position under the same root.
			for j, pair := range pairs {
				var sourceCommitment fri.FriRoundCommitment
				if j == 0 {
					sourceCommitment = fri.FriRoundCommitment{Root: p.FriCommitment.Root, Len: p.FriCommitment.Len}
				} else {
					sourceCommitment = p.FriRounds[j-1]
				}
				if !fri.VerifyPair(sourceCommitment, pair) {
					return false
				}
				pos := extIdx % sourceCommitment.Len
				if pair.Pos != pos {
					return false
				}
				if j == 0 && !pair.Lo.Value.Equal(fq.Value) {
					return false
				}
				if j+1 < len(pairs) {
					nextCommitment := p.FriRounds[j]
					if nextCommitment.Len <= 0 {
						return false
					}
					nextPos := extIdx % nextCommitment.Len
					if pairs[j+1].Pos != nextPos {
						return false
					}
					if !fri.FoldIsConsistent(alphas[j], pair, pairs[j+1].Lo.Value) {
						return false
					}
				}
			}
		}
	}

	expectDigest := xof.HMany(xof.LabelProofDigest, [][]byte{p.MerkleRoot[:], p.PubInputEnc, xof.U64LE(p.Queries)})
	return p.ProofDigest == expectDigest
}

func decodeRow(b []byte, nCols int) ([]field.Elem, bool) {
	if len(b) != 8*nCols {
		return nil, false
	}
	return air.DecodeRow(b, nCols), true
}

func blowupLog2From(p *Proof) uint32 {
	nBase := nextPow2(int(p.NRows))
	if p.FriCommitment == nil || nBase == 0 {
		return 0
	}
	blowup := p.FriCommitment.Len / nBase
	log := uint32(0)
	for blowup > 1 {
		blowup >>= 1
		log++
	}
	return log
}
