package queue

import (
	"strconv"
	"strings"

	"github.com/HumansWindow/minting-service/models"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// canonicalProofBytes flattens a proof into a stable byte string so that
// equivalent proofs always hash identically no matter how the client ordered
// or formatted its payload. Fields are joined in declaration order with NUL
// separators, hex strings lowercased and timestamps reduced to UTC seconds.
func canonicalProofBytes(proof *models.Proof) []byte {
	if proof == nil {
		return []byte{}
	}

	var b strings.Builder
	b.WriteString(string(proof.Type))
	b.WriteByte(0)
	b.WriteString(strings.ToLower(proof.MerkleRoot))
	b.WriteByte(0)
	for _, node := range proof.MerklePath {
		b.WriteString(strings.ToLower(node))
		b.WriteByte(0)
	}
	b.WriteString(strconv.FormatInt(proof.Year, 10))
	b.WriteByte(0)
	b.WriteString(strings.ToLower(proof.Attestation))
	b.WriteByte(0)
	if proof.SignedAt != nil {
		b.WriteString(strconv.FormatInt(proof.SignedAt.UTC().Unix(), 10))
	}

	return []byte(b.String())
}

// DedupKey derives the idempotency key for a request:
// keccak256(lowercase(walletAddress) || kind || keccak256(canonical proof)).
func DedupKey(walletAddress string, kind models.Kind, proof *models.Proof) string {
	proofHash := crypto.Keccak256(canonicalProofBytes(proof))

	var b []byte
	b = append(b, []byte(strings.ToLower(walletAddress))...)
	b = append(b, []byte(kind)...)
	b = append(b, proofHash...)

	return hexutil.Encode(crypto.Keccak256(b))
}
