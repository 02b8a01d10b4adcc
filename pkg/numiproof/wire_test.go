package numiproof

import "testing"

func TestEncodeDecodeProofRoundTrip(t *testing.T) {
	a := Fibonacci(1, 1, 32)
	proof := Prove(a, TestConfig())

	enc, err := EncodeProof(proof)
	if err != nil {
		t.Fatalf("EncodeProof failed: %v", err)
	}
	decoded, err := DecodeProof(enc)
	if err != nil {
		t.Fatalf("DecodeProof failed: %v", err)
	}
	if !Verify(decoded) {
		t.Fatalf("decoded proof failed to verify")
	}

	reencoded, err := EncodeProof(decoded)
	if err != nil {
		t.Fatalf("re-EncodeProof failed: %v", err)
	}
	if len(reencoded) != len(enc) {
		t.Fatalf("re-encoding changed length: got %d want %d", len(reencoded), len(enc))
	}
	for i := range enc {
		if enc[i] != reencoded[i] {
			t.Fatalf("re-encoding diverged at byte %d", i)
		}
	}
}

func TestDecodeProofRejectsTruncation(t *testing.T) {
	a := Fibonacci(1, 1, 16)
	proof := Prove(a, TestConfig())
	enc, err := EncodeProof(proof)
	if err != nil {
		t.Fatalf("EncodeProof failed: %v", err)
	}
	for _, cut := range []int{0, 1, 5, len(enc) / 2, len(enc) - 1} {
		if _, err := DecodeProof(enc[:cut]); err == nil {
			t.Fatalf("truncating to %d bytes unexpectedly decoded", cut)
		}
	}
}

func TestDecodeProofRejectsTrailingBytes(t *testing.T) {
	a := Fibonacci(1, 1, 16)
	proof := Prove(a, TestConfig())
	enc, err := EncodeProof(proof)
	if err != nil {
		t.Fatalf("EncodeProof failed: %v", err)
	}
	padded := append(append([]byte(nil), enc...), 0x00)
	if _, err := DecodeProof(padded); err == nil {
		t.Fatalf("trailing byte unexpectedly decoded")
	}
}

func TestEncodeProofRejectsNil(t *testing.T) {
	if _, err := EncodeProof(nil); err == nil {
		t.Fatalf("encoding a nil proof unexpectedly succeeded")
	}
}

func TestProveVerifyThroughPublicAPI(t *testing.T) {
	cases := []AIR{
		Fibonacci(1, 1, 32),
		RangeCheck(100, 8),
		Permutation([]uint64{1, 2, 3}, []uint64{3, 1, 2}),
		HashChain([]byte("seed"), 4),
		Shielded([]uint64{5, 5}, []uint64{10}, []byte("root")),
		Recursive([]byte{}, []byte("chunk"), 8),
	}
	for _, a := range cases {
		proof := Prove(a, TestConfig())
		if !Verify(proof) {
			t.Fatalf("valid proof for %s failed to verify", a.ID())
		}
	}
}
