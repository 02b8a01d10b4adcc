// Package xof wraps SHAKE256 into the three absorb/squeeze helpers the
// rest of numiproof builds on, plus the Fiat-Shamir transcript itself
// (spec §4.2).
package xof

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the truncated SHAKE256 output length used throughout
// numiproof: 48 bytes (384 bits).
const DigestSize = 48

// Digest is an opaque 48-byte hash output. Equality is byte-equality.
type Digest [DigestSize]byte

// Hxof absorbs data and squeezes DigestSize bytes from SHAKE256.
func Hxof(data []byte) Digest {
	h := sha3.NewShake256()
	h.Write(data)
	var out Digest
	h.Read(out[:])
	return out
}

// H2 absorbs label || 0x00 || a || 0x01 || b and squeezes a digest.
func H2(label string, a, b []byte) Digest {
	h := sha3.NewShake256()
	h.Write([]byte(label))
	h.Write([]byte{0x00})
	h.Write(a)
	h.Write([]byte{0x01})
	h.Write(b)
	var out Digest
	h.Read(out[:])
	return out
}

// HMany absorbs label followed by byte(i) || parts[i] for each part and
// squeezes a digest. len(parts) must fit in one byte (<= 255) because
// the index is encoded as a single byte; callers must not exceed that.
func HMany(label string, parts [][]byte) Digest {
	if len(parts) > 255 {
		panic("xof: HMany supports at most 255 parts")
	}
	h := sha3.NewShake256()
	h.Write([]byte(label))
	for i, p := range parts {
		h.Write([]byte{byte(i)})
		h.Write(p)
	}
	var out Digest
	h.Read(out[:])
	return out
}

// LeafHash hashes a single field-element-derived byte payload under a
// domain label via HMany then Hxof, matching the "row"/"fri.leaf" leaf
// encodings used by merkle and fri (H_leaf(v) = Hxof(h_many(label, [v]))).
func LeafHash(label string, payload []byte) Digest {
	return Hxof(HMany(label, [][]byte{payload})[:])
}

// Accumulate folds chunk into an optional running digest: with no
// prior digest it is HMany("accumulator", [chunk]); with one, it is
// HMany("accumulator", [prev, chunk]). Byte-stable across runs by
// construction, since HMany is a pure function of its inputs.
func Accumulate(prev *Digest, chunk []byte) Digest {
	if prev == nil {
		return HMany(LabelAccumulator, [][]byte{chunk})
	}
	return HMany(LabelAccumulator, [][]byte{prev[:], chunk})
}

// U64LE little-endian encodes x into 8 bytes, the canonical field
// element wire encoding (spec §6).
func U64LE(x uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, x)
	return b
}
