package common

import (
	"crypto/ecdsa"
	"errors"
	"strings"

	bip39 "github.com/cosmos/go-bip39"
	"github.com/ethereum/go-ethereum/common"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

func Ensure0xPrefix(value string) string {
	value = strings.ToLower(value)
	if !strings.HasPrefix(value, "0x") {
		value = "0x" + value
	}
	return value
}

func Remove0xPrefix(value string) string {
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		return value[2:]
	}
	return value
}

func IsValidEthereumAddress(address string) bool {
	return common.IsHexAddress(address)
}

// ChecksumAddress returns the EIP-55 form of the address. Requests store
// addresses in this form so that dedup keys and chain calls agree on casing.
func ChecksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", errors.New("invalid ethereum address")
	}
	return common.HexToAddress(address).Hex(), nil
}

func EthereumPrivateKeyFromMnemonic(mnemonic string) (*ecdsa.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, DefaultBIP39Passphrase)
	wallet, err := hdwallet.NewFromSeed(seed)
	if err != nil {
		return nil, err
	}

	path := hdwallet.MustParseDerivationPath(DefaultETHHDPath)
	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, err
	}

	return wallet.PrivateKey(account)
}
