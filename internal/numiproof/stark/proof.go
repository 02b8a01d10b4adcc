package stark

import (
	"github.com/numiproof/numiproof/internal/numiproof/fri"
	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// wireVersion is the only proof wire format this package produces or
// accepts (spec §6).
const wireVersion uint8 = 1

// Opening is a row (and, where it exists, the following row) opened
// against the trace's Merkle root.
type Opening struct {
	Idx      int
	Row      []byte
	NextRow  []byte // nil at the final row
	PathRow  []xof.Digest
	PathNext []xof.Digest // nil when NextRow is nil
}

// Proof is the full non-interactive artifact spec §3/§6 describes.
// FriCommitment is nil iff FriRounds, FriQueries, and FriRoundQueries
// are all empty — the four travel together.
type Proof struct {
	Version       uint8
	AirID         string
	PubInputEnc   []byte
	MerkleRoot    xof.Digest
	NRows         uint64
	NCols         uint64
	Queries       uint64
	Openings      []Opening
	FriCommitment *fri.OracleCommitment
	FriQueries    []fri.OracleProof
	FriRounds     []fri.FriRoundCommitment
	// FriRoundQueries[k][j] is query k's pair opening for fold round j.
	FriRoundQueries [][]fri.PairOpening
	ProofDigest     xof.Digest
}
