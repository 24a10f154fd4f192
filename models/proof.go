package models

import (
	"errors"
	"time"
)

type ProofType string

const (
	ProofTypeMerkleMembership  ProofType = "merkle_membership"
	ProofTypeSignedAttestation ProofType = "signed_attestation"
)

// Proof is the eligibility evidence attached to a mint request. It is stored
// verbatim at enqueue time and replayed unchanged when the request settles.
type Proof struct {
	Type        ProofType  `bson:"type" json:"type"`
	MerkleRoot  string     `bson:"merkle_root,omitempty" json:"merkle_root,omitempty"`
	MerklePath  []string   `bson:"merkle_path,omitempty" json:"merkle_path,omitempty"`
	Year        int64      `bson:"year,omitempty" json:"year,omitempty"`
	Attestation string     `bson:"attestation,omitempty" json:"attestation,omitempty"`
	SignedAt    *time.Time `bson:"signed_at,omitempty" json:"signed_at,omitempty"`
}

var (
	ErrProofRequired = errors.New("proof is required for this kind")
	ErrProofType     = errors.New("proof type does not match request kind")
	ErrProofContents = errors.New("proof contents are incomplete")
)

// ValidateProofForKind checks that the proof variant matches what the reward
// vault expects for the given kind. Payout and burn requests carry no proof.
func ValidateProofForKind(kind Kind, proof *Proof) error {
	switch kind {
	case KindFirstTimeMint:
		if proof == nil {
			return ErrProofRequired
		}
		if proof.Type != ProofTypeMerkleMembership {
			return ErrProofType
		}
		if proof.MerkleRoot == "" || len(proof.MerklePath) == 0 {
			return ErrProofContents
		}
	case KindAnnualMint:
		if proof == nil {
			return ErrProofRequired
		}
		if proof.Type != ProofTypeSignedAttestation {
			return ErrProofType
		}
		if proof.Attestation == "" || proof.Year == 0 {
			return ErrProofContents
		}
	default:
		if proof != nil {
			return ErrProofType
		}
	}
	return nil
}
