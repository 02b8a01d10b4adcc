package numiproof

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/numiproof/numiproof/internal/numiproof/field"
	"github.com/numiproof/numiproof/internal/numiproof/fri"
	"github.com/numiproof/numiproof/internal/numiproof/stark"
	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// Wire format v1, spec §6, field-for-field in the exact order named
// there: version, air_id, pub_input_enc, merkle_root, n_rows, n_cols,
// queries, openings, fri_commitment, fri_queries, fri_rounds,
// fri_round_queries, proof_digest. All integers little-endian;
// variable-length strings/byte-strings/sequences are u32-count
// prefixed; optional fields carry a one-byte presence flag.
//
// encoding/binary is used directly rather than a generic codec: the
// field order above is itself part of the wire contract (spec §6 says
// so explicitly), and a generic serializer would not reproduce an
// arbitrary fixed order without fighting it.

const wireDigestSize = xof.DigestSize

func putU8(buf *bytes.Buffer, v uint8) { buf.WriteByte(v) }

func putU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func putBytes(buf *bytes.Buffer, b []byte) {
	putU32(buf, uint32(len(b)))
	buf.Write(b)
}

func putDigest(buf *bytes.Buffer, d xof.Digest) { buf.Write(d[:]) }

func putPath(buf *bytes.Buffer, path []xof.Digest) {
	putU32(buf, uint32(len(path)))
	for _, d := range path {
		putDigest(buf, d)
	}
}

func putOracleProof(buf *bytes.Buffer, p fri.OracleProof) {
	putU64(buf, uint64(p.Idx))
	putU64(buf, p.Value.ToU64())
	putPath(buf, p.Path)
}

// EncodeProof serializes p into the numiproof v1 wire format.
func EncodeProof(p *Proof) ([]byte, error) {
	if p == nil {
		return nil, newError(ErrInvalidInput, "cannot encode a nil proof", nil)
	}
	var buf bytes.Buffer

	putU8(&buf, p.Version)
	putBytes(&buf, []byte(p.AirID))
	putBytes(&buf, p.PubInputEnc)
	putDigest(&buf, p.MerkleRoot)
	putU64(&buf, p.NRows)
	putU64(&buf, p.NCols)
	putU64(&buf, p.Queries)

	putU32(&buf, uint32(len(p.Openings)))
	for _, o := range p.Openings {
		putU64(&buf, uint64(o.Idx))
		putBytes(&buf, o.Row)
		if o.NextRow != nil {
			putU8(&buf, 1)
			putBytes(&buf, o.NextRow)
		} else {
			putU8(&buf, 0)
		}
		putPath(&buf, o.PathRow)
		if o.NextRow != nil {
			putPath(&buf, o.PathNext)
		}
	}

	if p.FriCommitment != nil {
		putU8(&buf, 1)
		putDigest(&buf, p.FriCommitment.Root)
		putU64(&buf, uint64(p.FriCommitment.Len))
	} else {
		putU8(&buf, 0)
	}

	if p.FriQueries != nil {
		putU8(&buf, 1)
		putU32(&buf, uint32(len(p.FriQueries)))
		for _, q := range p.FriQueries {
			putOracleProof(&buf, q)
		}
	} else {
		putU8(&buf, 0)
	}

	if p.FriRounds != nil {
		putU8(&buf, 1)
		putU32(&buf, uint32(len(p.FriRounds)))
		for _, r := range p.FriRounds {
			putDigest(&buf, r.Root)
			putU64(&buf, uint64(r.Len))
		}
	} else {
		putU8(&buf, 0)
	}

	if p.FriRoundQueries != nil {
		putU8(&buf, 1)
		putU32(&buf, uint32(len(p.FriRoundQueries)))
		for _, pairs := range p.FriRoundQueries {
			putU32(&buf, uint32(len(pairs)))
			for _, pair := range pairs {
				putU64(&buf, uint64(pair.Pos))
				putOracleProof(&buf, pair.Lo)
				putOracleProof(&buf, pair.Hi)
			}
		}
	} else {
		putU8(&buf, 0)
	}

	putDigest(&buf, p.ProofDigest)

	return buf.Bytes(), nil
}

// reader is a cursor over an encoded proof; every get* method reports
// ok=false instead of panicking on truncated or malformed input, so
// DecodeProof can reject adversarial encodings cleanly (spec §7).
type reader struct {
	b   []byte
	pos int
}

func (r *reader) getU8() (uint8, bool) {
	if r.pos+1 > len(r.b) {
		return 0, false
	}
	v := r.b[r.pos]
	r.pos++
	return v, true
}

func (r *reader) getU32() (uint32, bool) {
	if r.pos+4 > len(r.b) {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(r.b[r.pos : r.pos+4])
	r.pos += 4
	return v, true
}

func (r *reader) getU64() (uint64, bool) {
	if r.pos+8 > len(r.b) {
		return 0, false
	}
	v := binary.LittleEndian.Uint64(r.b[r.pos : r.pos+8])
	r.pos += 8
	return v, true
}

const maxWireSequence = 1 << 24

func (r *reader) getBytes() ([]byte, bool) {
	n, ok := r.getU32()
	if !ok || n > maxWireSequence || r.pos+int(n) > len(r.b) {
		return nil, false
	}
	v := append([]byte(nil), r.b[r.pos:r.pos+int(n)]...)
	r.pos += int(n)
	return v, true
}

func (r *reader) getDigest() (xof.Digest, bool) {
	var d xof.Digest
	if r.pos+wireDigestSize > len(r.b) {
		return d, false
	}
	copy(d[:], r.b[r.pos:r.pos+wireDigestSize])
	r.pos += wireDigestSize
	return d, true
}

func (r *reader) getPath() ([]xof.Digest, bool) {
	n, ok := r.getU32()
	if !ok || n > maxWireSequence {
		return nil, false
	}
	path := make([]xof.Digest, n)
	for i := range path {
		d, ok := r.getDigest()
		if !ok {
			return nil, false
		}
		path[i] = d
	}
	return path, true
}

func (r *reader) getOracleProof() (fri.OracleProof, bool) {
	idx, ok := r.getU64()
	if !ok {
		return fri.OracleProof{}, false
	}
	value, ok := r.getU64()
	if !ok {
		return fri.OracleProof{}, false
	}
	path, ok := r.getPath()
	if !ok {
		return fri.OracleProof{}, false
	}
	return fri.OracleProof{Idx: int(idx), Value: field.New(value), Path: path}, true
}

// DecodeProof parses b as a numiproof v1 wire-format proof. It never
// panics: any truncation or malformed framing yields an error rather
// than a crash.
func DecodeProof(b []byte) (*Proof, error) {
	r := &reader{b: b}
	fail := func(what string) (*Proof, error) {
		return nil, newError(ErrEncoding, fmt.Sprintf("decode proof: %s", what), nil)
	}

	p := &Proof{}

	version, ok := r.getU8()
	if !ok {
		return fail("truncated version")
	}
	p.Version = version

	airID, ok := r.getBytes()
	if !ok {
		return fail("truncated air_id")
	}
	p.AirID = string(airID)

	pubInput, ok := r.getBytes()
	if !ok {
		return fail("truncated pub_input_enc")
	}
	p.PubInputEnc = pubInput

	root, ok := r.getDigest()
	if !ok {
		return fail("truncated merkle_root")
	}
	p.MerkleRoot = root

	nRows, ok := r.getU64()
	if !ok {
		return fail("truncated n_rows")
	}
	p.NRows = nRows

	nCols, ok := r.getU64()
	if !ok {
		return fail("truncated n_cols")
	}
	p.NCols = nCols

	queries, ok := r.getU64()
	if !ok {
		return fail("truncated queries")
	}
	p.Queries = queries

	nOpenings, ok := r.getU32()
	if !ok || nOpenings > maxWireSequence {
		return fail("truncated openings count")
	}
	openings := make([]stark.Opening, nOpenings)
	for i := range openings {
		idx, ok := r.getU64()
		if !ok {
			return fail("truncated opening idx")
		}
		row, ok := r.getBytes()
		if !ok {
			return fail("truncated opening row")
		}
		hasNext, ok := r.getU8()
		if !ok {
			return fail("truncated opening has_next")
		}
		var nextRow []byte
		if hasNext != 0 {
			nextRow, ok = r.getBytes()
			if !ok {
				return fail("truncated opening next_row")
			}
		}
		pathRow, ok := r.getPath()
		if !ok {
			return fail("truncated opening path_row")
		}
		var pathNext []xof.Digest
		if hasNext != 0 {
			pathNext, ok = r.getPath()
			if !ok {
				return fail("truncated opening path_next")
			}
		}
		openings[i] = stark.Opening{
			Idx:      int(idx),
			Row:      row,
			NextRow:  nextRow,
			PathRow:  pathRow,
			PathNext: pathNext,
		}
	}
	p.Openings = openings

	hasFriCommitment, ok := r.getU8()
	if !ok {
		return fail("truncated fri_commitment presence")
	}
	if hasFriCommitment != 0 {
		root, ok := r.getDigest()
		if !ok {
			return fail("truncated fri_commitment root")
		}
		length, ok := r.getU64()
		if !ok {
			return fail("truncated fri_commitment len")
		}
		p.FriCommitment = &fri.OracleCommitment{Root: root, Len: int(length)}
	}

	hasFriQueries, ok := r.getU8()
	if !ok {
		return fail("truncated fri_queries presence")
	}
	if hasFriQueries != 0 {
		n, ok := r.getU32()
		if !ok || n > maxWireSequence {
			return fail("truncated fri_queries count")
		}
		fq := make([]fri.OracleProof, n)
		for i := range fq {
			q, ok := r.getOracleProof()
			if !ok {
				return fail("truncated fri_queries entry")
			}
			fq[i] = q
		}
		p.FriQueries = fq
	}

	hasFriRounds, ok := r.getU8()
	if !ok {
		return fail("truncated fri_rounds presence")
	}
	if hasFriRounds != 0 {
		n, ok := r.getU32()
		if !ok || n > maxWireSequence {
			return fail("truncated fri_rounds count")
		}
		rounds := make([]fri.FriRoundCommitment, n)
		for i := range rounds {
			root, ok := r.getDigest()
			if !ok {
				return fail("truncated fri_rounds root")
			}
			length, ok := r.getU64()
			if !ok {
				return fail("truncated fri_rounds len")
			}
			rounds[i] = fri.FriRoundCommitment{Root: root, Len: int(length)}
		}
		p.FriRounds = rounds
	}

	hasFriRoundQueries, ok := r.getU8()
	if !ok {
		return fail("truncated fri_round_queries presence")
	}
	if hasFriRoundQueries != 0 {
		n, ok := r.getU32()
		if !ok || n > maxWireSequence {
			return fail("truncated fri_round_queries outer count")
		}
		frq := make([][]fri.PairOpening, n)
		for i := range frq {
			m, ok := r.getU32()
			if !ok || m > maxWireSequence {
				return fail("truncated fri_round_queries inner count")
			}
			pairs := make([]fri.PairOpening, m)
			for j := range pairs {
				pos, ok := r.getU64()
				if !ok {
					return fail("truncated pair opening pos")
				}
				lo, ok := r.getOracleProof()
				if !ok {
					return fail("truncated pair opening lo")
				}
				hi, ok := r.getOracleProof()
				if !ok {
					return fail("truncated pair opening hi")
				}
				pairs[j] = fri.PairOpening{Pos: int(pos), Lo: lo, Hi: hi}
			}
			frq[i] = pairs
		}
		p.FriRoundQueries = frq
	}

	digest, ok := r.getDigest()
	if !ok {
		return fail("truncated proof_digest")
	}
	p.ProofDigest = digest

	if r.pos != len(r.b) {
		return fail("trailing bytes after proof_digest")
	}

	return p, nil
}
