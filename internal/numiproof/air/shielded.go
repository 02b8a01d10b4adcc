package air

import (
	"encoding/binary"
	"math/big"

	"github.com/numiproof/numiproof/internal/numiproof/field"
)

// ShieldedAir proves that a sequence of spent input values and created
// output values balance to zero, the transaction-conservation check of
// a shielded-pool ledger: a single running accumulator column that
// subtracts each input and adds each output, closing at zero.
type ShieldedAir struct {
	InValues  []uint64
	OutValues []uint64
	PrevRoot  []byte
}

// NewShieldedAir constructs a shielded-sum AIR instance.
func NewShieldedAir(inValues, outValues []uint64, prevRoot []byte) *ShieldedAir {
	return &ShieldedAir{InValues: inValues, OutValues: outValues, PrevRoot: prevRoot}
}

func (a *ShieldedAir) ID() string    { return "shielded_v1" }
func (a *ShieldedAir) TraceLen() int { return len(a.InValues) + len(a.OutValues) + 1 }
func (a *ShieldedAir) NCols() int    { return 2 }

// PublicInputBytes encodes n_in:u32, n_out:u32, prev_root bytes.
func (a *ShieldedAir) PublicInputBytes() []byte {
	buf := make([]byte, 8, 8+len(a.PrevRoot))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(a.InValues)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(a.OutValues)))
	buf = append(buf, a.PrevRoot...)
	return buf
}

// startBalance folds the signed sum sum(in) - sum(out) into the field
// via 128-bit arithmetic, matching a possible negative wrap.
func (a *ShieldedAir) startBalance() field.Elem {
	sumIn := new(big.Int)
	for _, v := range a.InValues {
		sumIn.Add(sumIn, new(big.Int).SetUint64(v))
	}
	sumOut := new(big.Int)
	for _, v := range a.OutValues {
		sumOut.Add(sumOut, new(big.Int).SetUint64(v))
	}
	diff := new(big.Int).Sub(sumIn, sumOut)
	mod := new(big.Int).SetUint64(field.Modulus)
	diff.Mod(diff, mod)
	return field.New(diff.Uint64())
}

func (a *ShieldedAir) GenTrace() [][]field.Elem {
	n := a.TraceLen()
	nIn := len(a.InValues)
	nOut := len(a.OutValues)
	c0 := make([]field.Elem, n)
	c1 := make([]field.Elem, n)

	c0[0] = field.Zero()
	for i := 0; i < nIn; i++ {
		c1[i] = field.New(a.InValues[i])
		c0[i+1] = c0[i].Sub(c1[i])
	}
	for j := 0; j < nOut; j++ {
		i := nIn + j
		c1[i] = field.New(a.OutValues[j])
		c0[i+1] = c0[i].Add(c1[i])
	}
	return [][]field.Elem{c0, c1}
}

func (a *ShieldedAir) CheckRow(i int, row []field.Elem, next []field.Elem) bool {
	nIn := len(a.InValues)
	if next != nil {
		if i < nIn {
			if !next[0].Equal(row[0].Sub(row[1])) {
				return false
			}
		} else if !next[0].Equal(row[0].Add(row[1])) {
			return false
		}
	} else if !row[0].IsZero() {
		return false
	}
	return true
}

func (a *ShieldedAir) EvalConstraints(i int, row []field.Elem, next []field.Elem) []field.Elem {
	c := make([]field.Elem, 2)
	nIn := len(a.InValues)
	if next != nil {
		if i < nIn {
			c[0] = next[0].Sub(row[0].Sub(row[1]))
		} else {
			c[0] = next[0].Sub(row[0].Add(row[1]))
		}
	} else {
		c[0] = row[0]
	}
	return c
}
