package air

import (
	"github.com/numiproof/numiproof/internal/numiproof/field"
	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// RecursiveAir is the example client named in spec §4.6 and excluded
// from the core's scope (spec §1): it carries no constraints of its
// own and exists to let an outer proof bind a prior accumulator digest
// and a new chunk into the public input that a wrapping proof
// system would recurse over.
type RecursiveAir struct {
	Steps int
	Prev  []byte // empty when there is no prior accumulator
	Cur   []byte
}

// NewRecursiveAir constructs a recursion-placeholder AIR.
func NewRecursiveAir(prev, cur []byte, steps int) *RecursiveAir {
	return &RecursiveAir{Steps: steps, Prev: prev, Cur: cur}
}

func (a *RecursiveAir) ID() string    { return "recursive_v1" }
func (a *RecursiveAir) TraceLen() int { return a.Steps }
func (a *RecursiveAir) NCols() int    { return 1 }

func (a *RecursiveAir) newDigest() xof.Digest {
	if len(a.Prev) == 0 {
		return xof.Accumulate(nil, a.Cur)
	}
	var prev xof.Digest
	copy(prev[:], a.Prev)
	return xof.Accumulate(&prev, a.Cur)
}

// PublicInputBytes encodes prev_digest bytes (possibly empty) followed
// by the freshly accumulated cur_digest.
func (a *RecursiveAir) PublicInputBytes() []byte {
	digest := a.newDigest()
	buf := make([]byte, 0, len(a.Prev)+xof.DigestSize)
	buf = append(buf, a.Prev...)
	buf = append(buf, digest[:]...)
	return buf
}

func (a *RecursiveAir) GenTrace() [][]field.Elem {
	col := make([]field.Elem, a.Steps)
	return [][]field.Elem{col}
}

func (a *RecursiveAir) CheckRow(i int, row []field.Elem, next []field.Elem) bool {
	return true
}

func (a *RecursiveAir) EvalConstraints(i int, row []field.Elem, next []field.Elem) []field.Elem {
	return []field.Elem{field.Zero()}
}
