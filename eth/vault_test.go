package eth

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

func testVault(t *testing.T) RewardVaultContract {
	vault, err := NewRewardVaultContract(common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), nil)
	assert.Nil(t, err)
	return vault
}

func TestRewardVaultMetaData(t *testing.T) {
	parsed, err := RewardVaultMetaData.GetAbi()

	assert.Nil(t, err)
	for _, name := range []string{
		"mintMembership",
		"mintAnnual",
		"batchTransfer",
		"batchBurn",
		"adminMint",
		"hasMinted",
		"lastAnnualMint",
		"balanceOf",
	} {
		_, ok := parsed.Methods[name]
		assert.True(t, ok, "method %s missing from abi", name)
	}
}

func TestPackMintMembership(t *testing.T) {
	vault := testVault(t)

	proof := [][32]byte{{0x01}, {0x02}}
	data, err := vault.PackMintMembership(common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), big.NewInt(1), proof)

	assert.Nil(t, err)
	assert.Equal(t, selector("mintMembership(address,uint256,bytes32[])"), data[:4])
}

func TestPackMintAnnual(t *testing.T) {
	vault := testVault(t)

	data, err := vault.PackMintAnnual(common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), big.NewInt(1), big.NewInt(2026), []byte{0xaa})

	assert.Nil(t, err)
	assert.Equal(t, selector("mintAnnual(address,uint256,uint256,bytes)"), data[:4])
}

func TestPackBatchTransfer(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		vault := testVault(t)

		recipients := []common.Address{
			common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
			common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
		}
		amounts := []*big.Int{big.NewInt(10), big.NewInt(20)}

		data, err := vault.PackBatchTransfer(recipients, amounts)

		assert.Nil(t, err)
		assert.Equal(t, selector("batchTransfer(address[],uint256[])"), data[:4])
	})

	t.Run("Length Mismatch", func(t *testing.T) {
		vault := testVault(t)

		recipients := []common.Address{
			common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		}

		_, err := vault.PackBatchTransfer(recipients, []*big.Int{})

		assert.NotNil(t, err)
	})
}

func TestPackBatchBurn(t *testing.T) {
	vault := testVault(t)

	accounts := []common.Address{
		common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
	}

	data, err := vault.PackBatchBurn(accounts)

	assert.Nil(t, err)
	assert.Equal(t, selector("batchBurn(address[])"), data[:4])
}

func TestPackAdminMint(t *testing.T) {
	vault := testVault(t)

	data, err := vault.PackAdminMint(common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), big.NewInt(5))

	assert.Nil(t, err)
	assert.Equal(t, selector("adminMint(address,uint256)"), data[:4])
}

func TestMerklePathToBytes32(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		nodes, err := MerklePathToBytes32([]string{
			"0x1111111111111111111111111111111111111111111111111111111111111111",
			"2222222222222222222222222222222222222222222222222222222222222222",
		})

		assert.Nil(t, err)
		assert.Equal(t, 2, len(nodes))
		assert.Equal(t, byte(0x11), nodes[0][0])
		assert.Equal(t, byte(0x22), nodes[1][31])
	})

	t.Run("Invalid Hex", func(t *testing.T) {
		_, err := MerklePathToBytes32([]string{"0xzz"})

		assert.NotNil(t, err)
	})

	t.Run("Wrong Length", func(t *testing.T) {
		_, err := MerklePathToBytes32([]string{"0x1111"})

		assert.NotNil(t, err)
	})
}
