// Command numiproof-cli is a thin prove/verify/accumulate wrapper
// around pkg/numiproof, reading JSON lines from stdin and writing a
// single JSON result line to stdout (spec §6's external CLI
// collaborator; not part of the core).
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/numiproof/numiproof/pkg/numiproof"
)

type proveRequest struct {
	Air    string           `json:"air"`
	A0     uint64           `json:"a0"`
	A1     uint64           `json:"a1"`
	Steps  int              `json:"steps"`
	Value  uint64           `json:"value"`
	Bits   int              `json:"bits"`
	Input  []uint64         `json:"input"`
	Output []uint64         `json:"output"`
	Seed   string           `json:"seed_hex"`
	Iters  int              `json:"iterations"`
	Config *proveConfigJSON `json:"config"`
}

type proveConfigJSON struct {
	BlowupLog2 uint32 `json:"blowup_log2"`
	Rounds     uint32 `json:"rounds"`
	Queries    int    `json:"queries"`
}

type proveResponse struct {
	ProofHex string `json:"proof_hex"`
}

type verifyRequest struct {
	ProofHex string `json:"proof_hex"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

type accumulateRequest struct {
	PrevHex  string `json:"prev_hex,omitempty"`
	ChunkHex string `json:"chunk_hex"`
}

type accumulateResponse struct {
	DigestHex string `json:"digest_hex"`
}

func main() {
	if len(os.Args) < 2 {
		fatal("usage: numiproof-cli <prove|verify|accumulate>")
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)
	if !scanner.Scan() {
		fatal("failed to read request from stdin")
	}
	line := scanner.Bytes()

	switch os.Args[1] {
	case "prove":
		runProve(line)
	case "verify":
		runVerify(line)
	case "accumulate":
		runAccumulate(line)
	default:
		fatal(fmt.Sprintf("unknown verb: %s", os.Args[1]))
	}
}

func runProve(line []byte) {
	var req proveRequest
	if err := json.Unmarshal(line, &req); err != nil {
		fatal(fmt.Sprintf("failed to parse prove request: %v", err))
	}

	cfg := numiproof.TestConfig()
	if req.Config != nil {
		cfg = numiproof.Config{
			BlowupLog2: req.Config.BlowupLog2,
			Rounds:     req.Config.Rounds,
			Queries:    req.Config.Queries,
		}
	}

	a, err := buildAir(req)
	if err != nil {
		fatal(err.Error())
	}

	logStderr(fmt.Sprintf("proving %s...", a.ID()))
	proof := numiproof.Prove(a, cfg)

	enc, err := numiproof.EncodeProof(proof)
	if err != nil {
		fatal(fmt.Sprintf("failed to encode proof: %v", err))
	}

	writeJSON(proveResponse{ProofHex: hex.EncodeToString(enc)})
}

func runVerify(line []byte) {
	var req verifyRequest
	if err := json.Unmarshal(line, &req); err != nil {
		fatal(fmt.Sprintf("failed to parse verify request: %v", err))
	}
	enc, err := hex.DecodeString(req.ProofHex)
	if err != nil {
		fatal(fmt.Sprintf("failed to decode proof_hex: %v", err))
	}
	proof, err := numiproof.DecodeProof(enc)
	if err != nil {
		logStderr(fmt.Sprintf("malformed proof: %v", err))
		writeJSON(verifyResponse{Valid: false})
		os.Exit(1)
	}

	valid := numiproof.Verify(proof)
	writeJSON(verifyResponse{Valid: valid})
	if !valid {
		os.Exit(1)
	}
}

func runAccumulate(line []byte) {
	var req accumulateRequest
	if err := json.Unmarshal(line, &req); err != nil {
		fatal(fmt.Sprintf("failed to parse accumulate request: %v", err))
	}
	chunk, err := hex.DecodeString(req.ChunkHex)
	if err != nil {
		fatal(fmt.Sprintf("failed to decode chunk_hex: %v", err))
	}

	var prev *[48]byte
	if req.PrevHex != "" {
		prevBytes, err := hex.DecodeString(req.PrevHex)
		if err != nil {
			fatal(fmt.Sprintf("failed to decode prev_hex: %v", err))
		}
		if len(prevBytes) != 48 {
			fatal("prev_hex must decode to 48 bytes")
		}
		var p [48]byte
		copy(p[:], prevBytes)
		prev = &p
	}

	digest := numiproof.Accumulate(prev, chunk)
	writeJSON(accumulateResponse{DigestHex: hex.EncodeToString(digest[:])})
}

func buildAir(req proveRequest) (numiproof.AIR, error) {
	switch req.Air {
	case "fibonacci":
		return numiproof.Fibonacci(req.A0, req.A1, req.Steps), nil
	case "range_check":
		return numiproof.RangeCheck(req.Value, req.Bits), nil
	case "permutation":
		return numiproof.Permutation(req.Input, req.Output), nil
	case "hash_chain":
		seed, err := hex.DecodeString(req.Seed)
		if err != nil {
			return nil, fmt.Errorf("failed to decode seed_hex: %w", err)
		}
		return numiproof.HashChain(seed, req.Iters), nil
	case "shielded":
		root, err := hex.DecodeString(req.Seed)
		if err != nil {
			return nil, fmt.Errorf("failed to decode seed_hex as prev root: %w", err)
		}
		return numiproof.Shielded(req.Input, req.Output, root), nil
	default:
		return nil, fmt.Errorf("unknown air: %s", req.Air)
	}
}

func writeJSON(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize response: %v", err))
	}
	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "numiproof-cli:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
