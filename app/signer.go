package app

import (
	"fmt"

	"github.com/HumansWindow/minting-service/common"
)

// CreateEthereumSigner builds the shared signer from whichever key source is
// configured, preferring remote keys over local ones.
func CreateEthereumSigner() (common.Signer, error) {
	config := Config.Ethereum
	if config.GcpKmsKeyName == "" && config.Mnemonic == "" && config.PrivateKey == "" {
		return nil, fmt.Errorf("no signer key configured")
	}
	if config.GcpKmsKeyName != "" {
		return common.NewGcpKmsSigner(config.GcpKmsKeyName)
	}
	if config.Mnemonic != "" {
		return common.NewMnemonicSigner(config.Mnemonic)
	}
	return common.NewPrivateKeySigner(config.PrivateKey)
}
