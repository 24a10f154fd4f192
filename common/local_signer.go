package common

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// LocalSigner holds the settlement key in process memory, loaded from either
// a raw hex private key or a BIP-39 mnemonic.
type LocalSigner struct {
	ethAddress common.Address
	ethPrivKey *ecdsa.PrivateKey
}

var _ Signer = &LocalSigner{}

func NewMnemonicSigner(mnemonic string) (Signer, error) {
	ethPrivKey, err := EthereumPrivateKeyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to create ethereum private key: %w", err)
	}

	return newLocalSigner(ethPrivKey), nil
}

func NewPrivateKeySigner(privateKey string) (Signer, error) {
	ethPrivKey, err := crypto.HexToECDSA(Remove0xPrefix(strings.TrimSpace(privateKey)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ethereum private key: %w", err)
	}

	return newLocalSigner(ethPrivKey), nil
}

func newLocalSigner(ethPrivKey *ecdsa.PrivateKey) *LocalSigner {
	publicKeyECDSA, _ := ethPrivKey.Public().(*ecdsa.PublicKey) // impossible to get an error since the private key is not nil

	ethAddress := crypto.PubkeyToAddress(*publicKeyECDSA)

	return &LocalSigner{
		ethPrivKey: ethPrivKey,
		ethAddress: ethAddress,
	}
}

func (s *LocalSigner) Destroy() {
	// nothing to do
}

func (s *LocalSigner) EthSign(data []byte) ([]byte, error) {
	digest := data
	if len(digest) != 32 {
		digest = crypto.Keccak256(data)
	}
	hash := common.BytesToHash(digest)
	signature, err := crypto.Sign(hash[:], s.ethPrivKey)
	if err != nil {
		return nil, err
	}

	if signature[64] == 0 || signature[64] == 1 {
		signature[64] += 27
	}

	return signature, nil
}

func (s *LocalSigner) EthAddress() common.Address {
	return s.ethAddress
}
