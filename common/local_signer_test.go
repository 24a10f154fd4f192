package common

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

const testMnemonic = "test test test test test test test test test test test junk"

func TestNewMnemonicSigner(t *testing.T) {
	signer, err := NewMnemonicSigner(testMnemonic)
	assert.NoError(t, err)
	assert.NotNil(t, signer)

	assert.NotEqual(t, common.Address{}, signer.EthAddress())
}

func TestNewMnemonicSignerWithInvalidMnemonic(t *testing.T) {
	signer, err := NewMnemonicSigner("not a mnemonic")
	assert.Error(t, err)
	assert.Nil(t, signer)
}

func TestNewPrivateKeySigner(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		signer, err := NewPrivateKeySigner("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
		assert.NoError(t, err)
		assert.NotNil(t, signer)
		assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), signer.EthAddress())
	})

	t.Run("With 0x Prefix", func(t *testing.T) {
		signer, err := NewPrivateKeySigner("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
		assert.NoError(t, err)
		assert.NotNil(t, signer)
		assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), signer.EthAddress())
	})

	t.Run("With Error", func(t *testing.T) {
		signer, err := NewPrivateKeySigner("zz")
		assert.Error(t, err)
		assert.Nil(t, signer)
	})
}

func TestLocalSigner_EthSign(t *testing.T) {
	signer, err := NewMnemonicSigner(testMnemonic)
	assert.NoError(t, err)

	data := []byte("test data")
	sig, err := signer.EthSign(data)
	assert.NoError(t, err)
	assert.NotNil(t, sig)

	if sig[64] != 27 && sig[64] != 28 {
		t.Fatalf("invalid Ethereum signature")
	}

	sig[64] -= 27

	hash := crypto.Keccak256(data)
	pubKey, err := crypto.SigToPub(hash, sig)
	assert.NoError(t, err)

	recoveredAddr := crypto.PubkeyToAddress(*pubKey)
	assert.Equal(t, signer.EthAddress(), recoveredAddr)
}

func TestLocalSigner_EthAddress(t *testing.T) {
	signer, err := NewMnemonicSigner(testMnemonic)
	assert.NoError(t, err)

	assert.NotEqual(t, common.Address{}, signer.EthAddress())
}

func TestLocalSigner_Destroy(t *testing.T) {
	signer, err := NewMnemonicSigner(testMnemonic)
	assert.NoError(t, err)

	signer.Destroy()
	// Nothing to assert here since the Destroy method does nothing
}

func TestMnemonicAndPrivateKeyAgree(t *testing.T) {
	// first account for the test mnemonic at m/44'/60'/0'/0/0
	fromMnemonic, err := NewMnemonicSigner(testMnemonic)
	assert.NoError(t, err)

	fromKey, err := NewPrivateKeySigner("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	assert.NoError(t, err)

	assert.Equal(t, fromKey.EthAddress(), fromMnemonic.EthAddress())
}
