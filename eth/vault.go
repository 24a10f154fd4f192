package eth

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ABI of the reward vault entry points the engine settles against. The vault
// enforces one membership mint and one annual mint per year per address on
// chain, which is what makes reverted mint transactions safe to re-check.
const rewardVaultABI = `[
	{"type":"function","name":"mintMembership","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"},{"name":"proof","type":"bytes32[]"}],"outputs":[]},
	{"type":"function","name":"mintAnnual","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"},{"name":"year","type":"uint256"},{"name":"attestation","type":"bytes"}],"outputs":[]},
	{"type":"function","name":"batchTransfer","stateMutability":"nonpayable","inputs":[{"name":"recipients","type":"address[]"},{"name":"amounts","type":"uint256[]"}],"outputs":[]},
	{"type":"function","name":"batchBurn","stateMutability":"nonpayable","inputs":[{"name":"accounts","type":"address[]"}],"outputs":[]},
	{"type":"function","name":"adminMint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"hasMinted","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"lastAnnualMint","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

var RewardVaultMetaData = &bind.MetaData{
	ABI: rewardVaultABI,
}

// RewardVaultContract packs settlement call data and reads the vault's
// on-chain mint records. Transactions are built and signed by the caller,
// so the binding never needs transact opts.
type RewardVaultContract interface {
	Address() common.Address
	PackMintMembership(to common.Address, amount *big.Int, proof [][32]byte) ([]byte, error)
	PackMintAnnual(to common.Address, amount *big.Int, year *big.Int, attestation []byte) ([]byte, error)
	PackBatchTransfer(recipients []common.Address, amounts []*big.Int) ([]byte, error)
	PackBatchBurn(accounts []common.Address) ([]byte, error)
	PackAdminMint(to common.Address, amount *big.Int) ([]byte, error)
	HasMinted(opts *bind.CallOpts, account common.Address) (bool, error)
	LastAnnualMint(opts *bind.CallOpts, account common.Address) (*big.Int, error)
	BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error)
}

type rewardVaultContract struct {
	address  common.Address
	abi      abi.ABI
	contract *bind.BoundContract
}

func NewRewardVaultContract(address common.Address, backend bind.ContractBackend) (RewardVaultContract, error) {
	parsed, err := RewardVaultMetaData.GetAbi()
	if err != nil {
		return nil, err
	}
	contract := bind.NewBoundContract(address, *parsed, backend, backend, backend)
	return &rewardVaultContract{
		address:  address,
		abi:      *parsed,
		contract: contract,
	}, nil
}

func (x *rewardVaultContract) Address() common.Address {
	return x.address
}

func (x *rewardVaultContract) PackMintMembership(to common.Address, amount *big.Int, proof [][32]byte) ([]byte, error) {
	return x.abi.Pack("mintMembership", to, amount, proof)
}

func (x *rewardVaultContract) PackMintAnnual(to common.Address, amount *big.Int, year *big.Int, attestation []byte) ([]byte, error) {
	return x.abi.Pack("mintAnnual", to, amount, year, attestation)
}

func (x *rewardVaultContract) PackBatchTransfer(recipients []common.Address, amounts []*big.Int) ([]byte, error) {
	if len(recipients) != len(amounts) {
		return nil, fmt.Errorf("recipient and amount lengths differ: %d != %d", len(recipients), len(amounts))
	}
	return x.abi.Pack("batchTransfer", recipients, amounts)
}

func (x *rewardVaultContract) PackBatchBurn(accounts []common.Address) ([]byte, error) {
	return x.abi.Pack("batchBurn", accounts)
}

func (x *rewardVaultContract) PackAdminMint(to common.Address, amount *big.Int) ([]byte, error) {
	return x.abi.Pack("adminMint", to, amount)
}

func (x *rewardVaultContract) HasMinted(opts *bind.CallOpts, account common.Address) (bool, error) {
	var out []interface{}
	err := x.contract.Call(opts, &out, "hasMinted", account)
	if err != nil {
		return false, err
	}
	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

func (x *rewardVaultContract) LastAnnualMint(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	err := x.contract.Call(opts, &out, "lastAnnualMint", account)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (x *rewardVaultContract) BalanceOf(opts *bind.CallOpts, account common.Address) (*big.Int, error) {
	var out []interface{}
	err := x.contract.Call(opts, &out, "balanceOf", account)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// MerklePathToBytes32 decodes the hex nodes of a membership proof into the
// bytes32 slice the vault verifies against its merkle root.
func MerklePathToBytes32(path []string) ([][32]byte, error) {
	nodes := make([][32]byte, len(path))
	for i, node := range path {
		if !strings.HasPrefix(node, "0x") && !strings.HasPrefix(node, "0X") {
			node = "0x" + node
		}
		decoded, err := hexutil.Decode(node)
		if err != nil {
			return nil, fmt.Errorf("invalid merkle path node %d: %s", i, err.Error())
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("invalid merkle path node %d: expected 32 bytes, got %d", i, len(decoded))
		}
		copy(nodes[i][:], decoded)
	}
	return nodes, nil
}
