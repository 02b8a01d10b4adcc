package stark

import "github.com/numiproof/numiproof/internal/numiproof/xof"

// Accumulate folds a new chunk into an optional running digest, the
// hash-chain aggregation primitive spec §8 calls out: byte-stable
// across runs, with no prior digest collapsing to a single-input hash.
func Accumulate(prev *[48]byte, chunk []byte) [48]byte {
	var prevDigest *xof.Digest
	if prev != nil {
		d := xof.Digest(*prev)
		prevDigest = &d
	}
	return [48]byte(xof.Accumulate(prevDigest, chunk))
}
