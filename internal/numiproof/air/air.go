// Package air defines the AIR (Algebraic Intermediate Representation)
// contract of spec §4.6: a trace schema plus boundary/transition
// constraints, exposed identically to prover and verifier.
package air

import "github.com/numiproof/numiproof/internal/numiproof/field"

// AIR is a value exposing an identifier, a trace shape, a public input
// encoding, a trace generator, and two pure predicates over a single
// row (and optionally its successor). CheckRow and EvalConstraints take
// every input they need as arguments rather than closing over mutable
// state, so a verifier can call them without ever holding a prover-side
// instance (spec §9, Design Note (c)).
type AIR interface {
	// ID is the versioned identifier baked into the transcript.
	ID() string
	// TraceLen returns N, the number of rows.
	TraceLen() int
	// NCols returns C, the number of columns.
	NCols() int
	// PublicInputBytes canonically encodes the public input, bound into
	// the transcript verbatim.
	PublicInputBytes() []byte
	// GenTrace deterministically produces the column-major trace
	// cols[c][i] for c in [0,C) and i in [0,N).
	GenTrace() [][]field.Elem
	// CheckRow is the cheap row predicate the verifier runs at sampled
	// rows. next is nil at the final row.
	CheckRow(i int, row []field.Elem, next []field.Elem) bool
	// EvalConstraints returns a vector whose entries are all zero iff
	// row is consistent with the constraint system.
	EvalConstraints(i int, row []field.Elem, next []field.Elem) []field.Elem
}

// RowBytes encodes a row as the little-endian concatenation of its
// field elements (spec §6: "Row bytes").
func RowBytes(row []field.Elem) []byte {
	out := make([]byte, 0, 8*len(row))
	for _, v := range row {
		b := v.Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// DecodeRow is the inverse of RowBytes for a known column count.
func DecodeRow(b []byte, nCols int) []field.Elem {
	row := make([]field.Elem, nCols)
	for c := 0; c < nCols; c++ {
		var w [8]byte
		copy(w[:], b[c*8:c*8+8])
		row[c] = field.FromBytes(w)
	}
	return row
}
