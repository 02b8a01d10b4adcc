package xof

// Domain-separation labels. These byte strings are part of the wire
// contract: changing any one of them invalidates every proof produced
// under the old label (spec §4.2, §6).
const (
	LabelRow         = "row"
	LabelMerkleNode  = "merkle.node"
	LabelFriLeaf     = "fri.leaf"
	LabelProofDigest = "proof.digest"
	LabelAccumulator = "accumulator"
	LabelNoteCM      = "note.cm"
	LabelNoteNF      = "note.nf"
	LabelKEMEnc      = "kem.enc"
)
