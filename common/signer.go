package common

import (
	"github.com/ethereum/go-ethereum/common"
)

// Signer signs 32-byte Ethereum digests with the engine's settlement key.
// Inputs longer than 32 bytes are keccak-hashed first. Signatures are 65
// bytes with the recovery id in the final byte, offset by 27.
type Signer interface {
	EthSign(data []byte) ([]byte, error)
	EthAddress() common.Address
	Destroy()
}
