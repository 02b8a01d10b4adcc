package xof

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// Transcript is the rolling Fiat-Shamir state described in spec §3/§4.2.
// It is not thread-safe; a single logical producer absorbs into it and
// any number of readers may draw challenges without mutating it.
type Transcript struct {
	state []byte
}

// NewTranscript seeds a transcript with a domain-separation string.
func NewTranscript(domain string) *Transcript {
	return &Transcript{state: []byte(domain)}
}

// Absorb folds a (label, data) pair into the transcript state:
// state <- Hxof(state || 0xFF || label || 0x00 || data).
func (t *Transcript) Absorb(label string, data []byte) {
	buf := make([]byte, 0, len(t.state)+1+len(label)+1+len(data))
	buf = append(buf, t.state...)
	buf = append(buf, 0xFF)
	buf = append(buf, []byte(label)...)
	buf = append(buf, 0x00)
	buf = append(buf, data...)
	digest := Hxof(buf)
	t.state = digest[:]
}

// ChallengeBytes squeezes n bytes from SHAKE256 seeded with the current
// state. It does not mutate the transcript: two calls immediately after
// the same absorb history return identical bytes.
func (t *Transcript) ChallengeBytes(n int) []byte {
	h := sha3.NewShake256()
	h.Write(t.state)
	out := make([]byte, n)
	h.Read(out)
	return out
}

// ChallengeU64 returns the first 8 challenge bytes as a little-endian
// uint64.
func (t *Transcript) ChallengeU64() uint64 {
	b := t.ChallengeBytes(8)
	return binary.LittleEndian.Uint64(b)
}

// ChallengeRNG seeds a deterministic query/mask generator from 32 fresh
// challenge bytes. The returned generator is independent of the
// transcript: reading from it never touches t.state.
func (t *Transcript) ChallengeRNG() *RNG {
	seed := t.ChallengeBytes(32)
	h := sha3.NewShake256()
	h.Write(seed)
	return &RNG{xof: h}
}

// RNG is a deterministic byte stream squeezed from a SHAKE256 seed. Two
// RNGs seeded with the same bytes produce an identical sequence.
type RNG struct {
	xof sha3.ShakeHash
}

// NextU64 squeezes the next 8 bytes of the stream as a little-endian
// uint64.
func (r *RNG) NextU64() uint64 {
	var b [8]byte
	r.xof.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
