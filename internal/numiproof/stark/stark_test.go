package stark

import (
	"testing"

	"github.com/numiproof/numiproof/internal/numiproof/air"
)

func TestProveVerifyFibonacciRoundTrip(t *testing.T) {
	a := air.NewFibonacciAir(1, 1, 64)
	p := NewProver(FriConfig{BlowupLog2: 2, Rounds: 1, Queries: 32})
	proof := p.Prove(a)
	if !Verify(proof) {
		t.Fatalf("valid proof failed to verify")
	}
}

func TestVerifyRejectsFlippedRowByte(t *testing.T) {
	a := air.NewFibonacciAir(1, 1, 64)
	p := NewProver(TestConfig())
	proof := p.Prove(a)
	proof.Openings[0].Row[0] ^= 0x01
	if Verify(proof) {
		t.Fatalf("flipped row byte unexpectedly verified")
	}
}

func TestVerifyRejectsTamperedIndex(t *testing.T) {
	a := air.NewFibonacciAir(1, 1, 64)
	p := NewProver(TestConfig())
	proof := p.Prove(a)
	proof.Openings[0].Idx = (proof.Openings[0].Idx + 1) % int(proof.NRows)
	if Verify(proof) {
		t.Fatalf("tampered index unexpectedly verified")
	}
}

func TestVerifyRejectsFlippedNextPathByte(t *testing.T) {
	a := air.NewFibonacciAir(1, 1, 64)
	p := NewProver(TestConfig())
	proof := p.Prove(a)
	found := false
	for i := range proof.Openings {
		if proof.Openings[i].PathNext != nil {
			proof.Openings[i].PathNext[0][0] ^= 0x01
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("no opening with a next-row path found")
	}
	if Verify(proof) {
		t.Fatalf("flipped path-next byte unexpectedly verified")
	}
}

func TestVerifyRejectsFlippedPublicInputByte(t *testing.T) {
	a := air.NewFibonacciAir(2, 3, 16)
	p := NewProver(FriConfig{BlowupLog2: 2, Rounds: 1, Queries: 8})
	proof := p.Prove(a)
	proof.PubInputEnc[0] ^= 0x01
	if Verify(proof) {
		t.Fatalf("flipped public-input byte unexpectedly verified")
	}
}

func TestProveVerifyManyRoundsShrinksFriLength(t *testing.T) {
	a := air.NewFibonacciAir(1, 1, 1024)
	p := NewProver(FriConfig{BlowupLog2: 3, Rounds: 5, Queries: 80})
	proof := p.Prove(a)
	if !Verify(proof) {
		t.Fatalf("valid large proof failed to verify")
	}
	first := proof.FriRounds[0].Len
	last := proof.FriRounds[len(proof.FriRounds)-1].Len
	if !(last < first) {
		t.Fatalf("expected fri_rounds.last.len < fri_rounds.first.len, got last=%d first=%d", last, first)
	}
}

func TestProveVerifyOtherAirs(t *testing.T) {
	cfg := TestConfig()
	cases := []air.AIR{
		air.NewRangeCheckAir(42, 8),
		air.NewPermutationAir([]uint64{1, 2, 3, 4, 5}, []uint64{5, 3, 1, 4, 2}),
		air.NewHashChainAir([]byte{1, 2, 3, 4}, 3),
		air.NewShieldedAir([]uint64{10, 20}, []uint64{15, 15}, []byte("root")),
	}
	for _, a := range cases {
		prover := NewProver(cfg)
		proof := prover.Prove(a)
		if !Verify(proof) {
			t.Fatalf("%s: valid proof failed to verify", a.ID())
		}
	}
}

func TestAccumulateByteStable(t *testing.T) {
	a := Accumulate(nil, []byte("chunk-1"))
	b := Accumulate(nil, []byte("chunk-1"))
	if a != b {
		t.Fatalf("accumulate was not byte-stable across runs")
	}
	c := Accumulate(&a, []byte("chunk-2"))
	d := Accumulate(&a, []byte("chunk-2"))
	if c != d {
		t.Fatalf("chained accumulate was not byte-stable across runs")
	}
	if c == a {
		t.Fatalf("chaining a new chunk did not change the digest")
	}
}
