package merkle

import (
	"testing"

	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

func makeLeaves(n int) []xof.Digest {
	leaves := make([]xof.Digest, n)
	for i := range leaves {
		leaves[i] = xof.Hxof(xof.U64LE(uint64(i)))
	}
	return leaves
}

func TestOpenVerifyRoundTrip(t *testing.T) {
	leaves := makeLeaves(13) // not a power of two, exercises padding
	tr := Build(leaves)
	for i := range leaves {
		path := Open(tr, i)
		if !Verify(tr.Root(), i, leaves[i], path) {
			t.Fatalf("valid opening failed to verify at index %d", i)
		}
	}
}

func TestPaddingReplicatesLastLeaf(t *testing.T) {
	leaves := makeLeaves(5)
	tr := Build(leaves)
	if tr.Len() != 8 {
		t.Fatalf("expected padded length 8, got %d", tr.Len())
	}
	// Padded slots should verify against the replicated last leaf.
	path := Open(tr, 7)
	if !Verify(tr.Root(), 7, leaves[len(leaves)-1], path) {
		t.Fatalf("padded slot did not verify against replicated leaf")
	}
}

func TestFlippedLeafBitFailsVerify(t *testing.T) {
	leaves := makeLeaves(8)
	tr := Build(leaves)
	path := Open(tr, 3)
	tampered := leaves[3]
	tampered[0] ^= 0x01
	if Verify(tr.Root(), 3, tampered, path) {
		t.Fatalf("flipped leaf bit unexpectedly verified")
	}
}

func TestFlippedPathNodeFailsVerify(t *testing.T) {
	leaves := makeLeaves(8)
	tr := Build(leaves)
	path := Open(tr, 3)
	path[0][0] ^= 0x01
	if Verify(tr.Root(), 3, leaves[3], path) {
		t.Fatalf("flipped path node unexpectedly verified")
	}
}

func TestVerifyRejectsOutOfRangeIndex(t *testing.T) {
	leaves := makeLeaves(8)
	tr := Build(leaves)
	path := Open(tr, 0)
	if Verify(tr.Root(), 8, leaves[0], path) {
		t.Fatalf("out-of-range index unexpectedly verified")
	}
}

func TestBuildPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic building a tree over zero leaves")
		}
	}()
	Build(nil)
}
