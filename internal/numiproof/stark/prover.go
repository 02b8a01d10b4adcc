package stark

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/numiproof/numiproof/internal/numiproof/air"
	"github.com/numiproof/numiproof/internal/numiproof/field"
	"github.com/numiproof/numiproof/internal/numiproof/fri"
	"github.com/numiproof/numiproof/internal/numiproof/merkle"
	"github.com/numiproof/numiproof/internal/numiproof/poly"
	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// transcriptDomain seeds every proof's transcript (spec §4.7 step 3).
const transcriptDomain = "numiproof.fs"

// minParallelRows is the smallest row count worth fanning trace-row
// hashing out across goroutines (spec §5).
const minParallelRows = 4096

// Prover runs the 8-step proof construction of spec §4.7 over any AIR.
type Prover struct {
	Config FriConfig
}

// NewProver constructs a prover with the given FRI configuration.
func NewProver(cfg FriConfig) *Prover {
	return &Prover{Config: cfg}
}

func extractRow(cols [][]field.Elem, i int) []field.Elem {
	row := make([]field.Elem, len(cols))
	for c := range cols {
		row[c] = cols[c][i]
	}
	return row
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Prove builds a full Proof for a, deriving every random choice from
// the Fiat-Shamir transcript.
func (p *Prover) Prove(a air.AIR) *Proof {
	cfg := p.Config
	if err := cfg.Validate(); err != nil {
		panic("stark: invalid FriConfig: " + err.Error())
	}
	n := a.TraceLen()
	c := a.NCols()
	pubInputEnc := a.PublicInputBytes()

	cols := a.GenTrace()
	rowBytes := make([][]byte, n)
	leaves := make([]xof.Digest, n)
	hashRow := func(i int) {
		row := extractRow(cols, i)
		b := air.RowBytes(row)
		rowBytes[i] = b
		leaves[i] = xof.LeafHash(xof.LabelRow, b)
	}
	if n < minParallelRows {
		for i := 0; i < n; i++ {
			hashRow(i)
		}
	} else {
		workers := runtime.GOMAXPROCS(0)
		if workers > n {
			workers = n
		}
		var g errgroup.Group
		chunk := (n + workers - 1) / workers
		for w := 0; w < workers; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			if lo >= hi {
				continue
			}
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					hashRow(i)
				}
				return nil
			})
		}
		g.Wait()
	}
	traceTree := merkle.Build(leaves)
	root := traceTree.Root()

	t := xof.NewTranscript(transcriptDomain)
	t.Absorb("air_id", []byte(a.ID()))
	t.Absorb("pub_input", pubInputEnc)
	t.Absorb("root", root[:])

	nBase := nextPow2(n)
	l0 := nBase << cfg.BlowupLog2

	rngMask := t.ChallengeRNG()
	r0 := field.New(rngMask.NextU64())
	r1 := field.New(rngMask.NextU64())
	maskCoeffs := []field.Elem{r0, r1}
	maskPoly := poly.EvalPolyOnDomain(maskCoeffs, l0)
	zBase := poly.VanishingOnExtended(l0, nBase)
	maskEvals := make([]field.Elem, l0)
	for i := range maskEvals {
		maskEvals[i] = maskPoly[i].Mul(zBase[i])
	}

	v0 := make([]field.Elem, l0)
	for colIdx := 0; colIdx < c; colIdx++ {
		gamma := field.New(rngMask.NextU64())
		ext := poly.LDEFromEvals(cols[colIdx], cfg.BlowupLog2)
		for i := 0; i < l0; i++ {
			v0[i] = v0[i].Add(gamma.Mul(ext[i]))
		}
	}
	for i := range v0 {
		v0[i] = v0[i].Add(maskEvals[i])
	}

	friValues := make([][]field.Elem, cfg.Rounds+1)
	friTrees := make([]*merkle.Tree, cfg.Rounds+1)
	friCommitments := make([]fri.FriRoundCommitment, cfg.Rounds+1)
	alphas := make([]field.Elem, cfg.Rounds)

	friValues[0] = v0
	commit0, tree0 := fri.CommitRound(v0)
	friTrees[0] = tree0
	friCommitments[0] = commit0

	for j := uint32(0); j < cfg.Rounds; j++ {
		t.Absorb("fri_round_root", friCommitments[j].Root[:])
		alpha := field.New(t.ChallengeU64())
		alphas[j] = alpha
		folded := fri.FoldValues(alpha, friValues[j])
		friValues[j+1] = folded
		commit, tree := fri.CommitRound(folded)
		friTrees[j+1] = tree
		friCommitments[j+1] = commit
	}

	queryRng := t.ChallengeRNG()
	openings := make([]Opening, cfg.Queries)
	friQueries := make([]fri.OracleProof, cfg.Queries)
	friRoundQueries := make([][]fri.PairOpening, cfg.Queries)

	for q := 0; q < cfg.Queries; q++ {
		idx := int(queryRng.NextU64() % uint64(n))

		pathRow := merkle.Open(traceTree, idx)
		var nextRow []byte
		var pathNext []xof.Digest
		if idx+1 < n {
			nextRow = rowBytes[idx+1]
			pathNext = merkle.Open(traceTree, idx+1)
		}
		openings[q] = Opening{
			Idx:      idx,
			Row:      rowBytes[idx],
			NextRow:  nextRow,
			PathRow:  pathRow,
			PathNext: pathNext,
		}

		extIdx := (idx << cfg.BlowupLog2) % l0
		friQueries[q] = fri.Open(friTrees[0], extIdx, friValues[0][extIdx])

		pairs := make([]fri.PairOpening, cfg.Rounds)
		for j := uint32(0); j < cfg.Rounds; j++ {
			lj := len(friValues[j])
			pos := extIdx % lj
			pairs[j] = fri.OpenPair(friValues[j], friTrees[j], pos)
		}
		friRoundQueries[q] = pairs
	}

	proofDigest := xof.HMany(xof.LabelProofDigest, [][]byte{root[:], pubInputEnc, xof.U64LE(uint64(cfg.Queries))})

	return &Proof{
		Version:         wireVersion,
		AirID:           a.ID(),
		PubInputEnc:     pubInputEnc,
		MerkleRoot:      root,
		NRows:           uint64(n),
		NCols:           uint64(c),
		Queries:         uint64(cfg.Queries),
		Openings:        openings,
		FriCommitment:   &fri.OracleCommitment{Root: friCommitments[0].Root, Len: friCommitments[0].Len},
		FriQueries:      friQueries,
		FriRounds:       friCommitments[1:],
		FriRoundQueries: friRoundQueries,
		ProofDigest:     proofDigest,
	}
}
