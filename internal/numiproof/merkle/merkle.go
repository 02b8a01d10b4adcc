// Package merkle implements the power-of-two binary hash tree of
// spec §3/§4.3: a complete tree over 2^ceil(log2 n) leaves, stored as a
// flat 1-indexed array (Design Notes §9: "a flat array with
// parent/child index arithmetic").
package merkle

import (
	"runtime"
	"sync"

	"github.com/numiproof/numiproof/internal/numiproof/xof"
)

// Tree is an immutable Merkle commitment over a padded leaf sequence.
type Tree struct {
	nodes     []xof.Digest // 1-indexed heap layout; nodes[1] is the root
	leafCount int          // number of leaves supplied before padding
}

// Build constructs a tree from pre-hashed leaves, padding to the next
// power of two by replicating the last leaf. Internal nodes are
// H2("merkle.node", left, right). Building panics on an empty leaf set
// (a prover precondition violation per spec §7); verification never
// calls Build on adversarial input.
func Build(leaves []xof.Digest) *Tree {
	if len(leaves) == 0 {
		panic("merkle: cannot build a tree over zero leaves")
	}
	n := nextPowerOfTwo(len(leaves))
	nodes := make([]xof.Digest, 2*n)
	last := leaves[len(leaves)-1]
	for i := 0; i < n; i++ {
		if i < len(leaves) {
			nodes[n+i] = leaves[i]
		} else {
			nodes[n+i] = last
		}
	}
	buildInternal(nodes, n)
	return &Tree{nodes: nodes, leafCount: len(leaves)}
}

// buildInternal fills in the internal nodes bottom-up. Each level is an
// embarrassingly parallel map over disjoint indices (spec §5), so
// levels with enough work are fanned out across goroutines; the
// resulting bytes never depend on how many workers ran.
func buildInternal(nodes []xof.Digest, n int) {
	for size := n; size > 1; size >>= 1 {
		half := size / 2
		parallelFor(half, func(j int) {
			i := half + j
			nodes[i] = xof.H2(xof.LabelMerkleNode, nodes[i<<1][:], nodes[i<<1|1][:])
		})
	}
}

// parallelFor calls fn(i) for i in [0, n) using a bounded worker pool
// when n is large enough that goroutine overhead pays for itself.
func parallelFor(n int, fn func(i int)) {
	const minParallel = 4096
	if n < minParallel {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
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
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}

// Root returns the tree's root digest (node index 1).
func (tr *Tree) Root() xof.Digest { return tr.nodes[1] }

// Len returns the padded leaf count (a power of two).
func (tr *Tree) Len() int { return len(tr.nodes) / 2 }

// Open returns the sibling digests on idx's root path, bottom to top.
func Open(tr *Tree, idx int) []xof.Digest {
	n := tr.Len()
	path := make([]xof.Digest, 0, log2(n))
	i := idx + n
	for i > 1 {
		path = append(path, tr.nodes[i^1])
		i >>= 1
	}
	return path
}

// Verify folds leaf with each sibling in path and compares the result
// against root. At each level, an even index means the sibling sits on
// the right; an odd index means it sits on the left. Any size/shape
// mismatch (idx out of range, wrong path length) returns false rather
// than panicking, per the verifier's no-panic-on-adversarial-input
// contract (spec §7).
func Verify(root xof.Digest, idx int, leaf xof.Digest, path []xof.Digest) bool {
	if idx < 0 || idx >= (1<<uint(len(path))) {
		return false
	}
	h := leaf
	i := idx
	for _, sib := range path {
		if i%2 == 0 {
			h = xof.H2(xof.LabelMerkleNode, h[:], sib[:])
		} else {
			h = xof.H2(xof.LabelMerkleNode, sib[:], h[:])
		}
		i >>= 1
	}
	return h == root
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func log2(n int) int {
	r := 0
	for n > 1 {
		n >>= 1
		r++
	}
	return r
}
