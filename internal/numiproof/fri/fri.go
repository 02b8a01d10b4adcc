// Package fri implements the FRI low-degree test of spec §4.5: a
// commit/fold/query oracle protocol over a sequence of Merkle-committed
// evaluation vectors, each half the length of the last.
package fri

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/numiproof/numiproof/internal/numiproof/field"
	"github.com/numiproof/numiproof/internal/numiproof/merkle"
	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// minParallelLeaves is the smallest leaf count worth fanning FRI leaf
// hashing out across goroutines; below this, goroutine setup cost
// dominates the saving (spec §5).
const minParallelLeaves = 4096

// OracleCommitment is a Merkle root over one round's evaluation vector,
// together with its (pre-padding) length.
type OracleCommitment struct {
	Root xof.Digest
	Len  int
}

// OracleProof opens a single evaluation at idx against an
// OracleCommitment.
type OracleProof struct {
	Idx   int
	Value field.Elem
	Path  []xof.Digest
}

// FriRoundCommitment is the per-round commitment recorded in a proof
// transcript (spec §6): a root and the round's unpadded length.
type FriRoundCommitment struct {
	Root xof.Digest
	Len  int
}

// PairOpening opens the two positions pos and pos^(len/2) that fold
// together into a single value in the next round.
type PairOpening struct {
	Pos int
	Lo  OracleProof
	Hi  OracleProof
}

// CommitRound hashes each evaluation into a leaf under the "fri.leaf"
// domain label, builds a Merkle tree over the leaves, and returns both
// the round commitment and the tree (so the prover can later open
// queried positions against it).
func CommitRound(values []field.Elem) (FriRoundCommitment, *merkle.Tree) {
	leaves := make([]xof.Digest, len(values))
	hashLeaf := func(i int) {
		b := values[i].Bytes()
		leaves[i] = xof.LeafHash(xof.LabelFriLeaf, b[:])
	}
	if len(values) < minParallelLeaves {
		for i := range values {
			hashLeaf(i)
		}
	} else {
		workers := runtime.GOMAXPROCS(0)
		if workers > len(values) {
			workers = len(values)
		}
		var g errgroup.Group
		chunk := (len(values) + workers - 1) / workers
		for w := 0; w < workers; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > len(values) {
				hi = len(values)
			}
			if lo >= hi {
				continue
			}
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					hashLeaf(i)
				}
				return nil
			})
		}
		g.Wait()
	}
	mt := merkle.Build(leaves)
	return FriRoundCommitment{Root: mt.Root(), Len: len(values)}, mt
}

// Open opens a single position against a round's tree.
func Open(mt *merkle.Tree, idx int, value field.Elem) OracleProof {
	return OracleProof{Idx: idx, Value: value, Path: merkle.Open(mt, idx)}
}

// OpenPair opens the pair of positions (pos mod len, (pos mod len) xor
// len/2) that fold together in FoldValues.
func OpenPair(values []field.Elem, mt *merkle.Tree, pos int) PairOpening {
	length := len(values)
	half := length / 2
	loIdx := pos % length
	hiIdx := loIdx ^ half
	lo := Open(mt, loIdx, values[loIdx])
	hi := Open(mt, hiIdx, values[hiIdx])
	return PairOpening{Pos: loIdx, Lo: lo, Hi: hi}
}

// FoldValues folds an evaluation vector of even length n down to n/2 by
// out[i] = values[i] + alpha*values[i+n/2], the randomized FRI folding
// step (spec §4.5).
func FoldValues(alpha field.Elem, values []field.Elem) []field.Elem {
	n := len(values)
	if n%2 != 0 {
		panic("fri: FoldValues requires an even-length input")
	}
	half := n / 2
	out := make([]field.Elem, half)
	for i := 0; i < half; i++ {
		out[i] = values[i].Add(alpha.Mul(values[i+half]))
	}
	return out
}

// VerifyOpening checks that proof opens to a leaf consistent with
// commitment, returning false (never panicking) on any mismatch.
func VerifyOpening(commitment FriRoundCommitment, proof OracleProof) bool {
	if proof.Idx < 0 || proof.Idx >= commitment.Len {
		return false
	}
	b := proof.Value.Bytes()
	leaf := xof.LeafHash(xof.LabelFriLeaf, b[:])
	return merkle.Verify(commitment.Root, proof.Idx, leaf, proof.Path)
}

// VerifyPair checks both openings in a PairOpening against a round
// commitment.
func VerifyPair(commitment FriRoundCommitment, pair PairOpening) bool {
	if pair.Lo.Idx >= commitment.Len || pair.Hi.Idx >= commitment.Len {
		return false
	}
	return VerifyOpening(commitment, pair.Lo) && VerifyOpening(commitment, pair.Hi)
}

// FoldIsConsistent reports whether a verified PairOpening is consistent
// with the next round's claimed folded value at position pair.Pos mod
// len/2, under folding challenge alpha: next == v[i] + alpha*v[i+len/2],
// where v[i] is whichever of the two openings has the lower index.
func FoldIsConsistent(alpha field.Elem, pair PairOpening, next field.Elem) bool {
	lower, upper := pair.Lo, pair.Hi
	if lower.Idx > upper.Idx {
		lower, upper = upper, lower
	}
	want := lower.Value.Add(alpha.Mul(upper.Value))
	return want.Equal(next)
}
