package integration_test

import (
	"testing"

	"github.com/numiproof/numiproof/pkg/numiproof"
)

// Test03_AccumulatorByteStability checks the accumulator property
// spec §8 names directly: accumulate(None, c) = h_many("accumulator",
// [c]); accumulate(Some(p), c) = h_many("accumulator", [p, c]);
// byte-stable across runs.
func Test03_AccumulatorByteStability(t *testing.T) {
	t.Log("=== Test 03: accumulator byte-stability ===")

	chunkA := []byte("genesis-block")
	chunkB := []byte("block-2")

	firstRun := numiproof.Accumulate(nil, chunkA)
	secondRun := numiproof.Accumulate(nil, chunkA)
	if firstRun != secondRun {
		t.Fatalf("accumulate(None, c) was not byte-stable across runs")
	}

	chained1 := numiproof.Accumulate(&firstRun, chunkB)
	chained2 := numiproof.Accumulate(&firstRun, chunkB)
	if chained1 != chained2 {
		t.Fatalf("accumulate(Some(p), c) was not byte-stable across runs")
	}
	if chained1 == firstRun {
		t.Fatalf("chaining a new chunk did not change the digest")
	}

	// A prior digest must genuinely factor in: accumulating the same
	// chunk with no prior digest (single-input hash) must differ from
	// chaining it onto an existing one.
	single := numiproof.Accumulate(nil, chunkB)
	if single == chained1 {
		t.Fatalf("accumulate with and without a prior digest collided")
	}
}
