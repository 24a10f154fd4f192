package settler

import (
	"sync"
	"testing"
	"time"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HumansWindow/minting-service/app"
	appMocks "github.com/HumansWindow/minting-service/app/mocks"
	"github.com/HumansWindow/minting-service/common"
	"github.com/HumansWindow/minting-service/eth"
	ethMocks "github.com/HumansWindow/minting-service/eth/mocks"
	"github.com/HumansWindow/minting-service/models"
	"github.com/HumansWindow/minting-service/queue"
)

func testConfirmer(mockClient *ethMocks.MockEthereumClient, mockVault *ethMocks.MockRewardVaultContract) *ConfirmerRunner {
	return &ConfirmerRunner{
		client:        mockClient,
		vault:         mockVault,
		signerAddress: testWalletAddress,
	}
}

func submittedRequest(kind models.Kind, txHash string, nonce string) models.MintRequest {
	request := claimedRequest(kind, "1000000000000000000")
	request.Status = models.StatusSubmitted
	request.TransactionHash = txHash
	request.ChunkID = "chunk-1"
	request.Nonce = nonce
	request.SubmittedAt = time.Now().Add(-10 * time.Minute)
	return request
}

func TestConfirmerStatus(t *testing.T) {
	x := &ConfirmerRunner{ethBlockNumber: 42}

	status := x.Status()

	assert.Equal(t, "42", status.EthBlockNumber)
}

func TestConfirmerUpdateBlockNumber(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)

		mockClient.EXPECT().GetBlockNumber().Return(uint64(100), nil)

		x.UpdateBlockNumber()

		assert.Equal(t, int64(100), x.ethBlockNumber)
	})

	t.Run("With Error", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)

		mockClient.EXPECT().GetBlockNumber().Return(uint64(0), assert.AnError)

		x.UpdateBlockNumber()

		assert.Equal(t, int64(0), x.ethBlockNumber)
	})
}

func TestSyncSubmitted(t *testing.T) {
	t.Run("No Submitted Requests", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)

		queueFindSubmitted = func() ([]models.MintRequest, error) { return nil, nil }
		defer func() { queueFindSubmitted = queue.FindSubmitted }()

		assert.True(t, x.SyncSubmitted())
	})

	t.Run("With Error", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)

		queueFindSubmitted = func() ([]models.MintRequest, error) { return nil, assert.AnError }
		defer func() { queueFindSubmitted = queue.FindSubmitted }()

		assert.False(t, x.SyncSubmitted())
	})

	t.Run("Confirms Mined Transaction", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		mockDB := appMocks.NewMockDatabase(t)
		app.DB = mockDB
		x := testConfirmer(mockClient, mockVault)

		queueFindSubmitted = func() ([]models.MintRequest, error) {
			return []models.MintRequest{
				submittedRequest(models.KindRewardPayout, "0xabc", "5"),
				submittedRequest(models.KindRewardPayout, "0xabc", "5"),
			}, nil
		}
		var completedIds []primitive.ObjectID
		queueMarkCompleted = func(id primitive.ObjectID, txHash string) error {
			assert.Equal(t, "0xabc", txHash)
			completedIds = append(completedIds, id)
			return nil
		}
		defer func() {
			queueFindSubmitted = queue.FindSubmitted
			queueMarkCompleted = queue.MarkCompleted
		}()

		mockDB.EXPECT().XLock("transactions/0xabc").Return("lock-1", nil)
		mockDB.EXPECT().Unlock("lock-1").Return(nil)
		mockClient.EXPECT().GetTransactionReceipt("0xabc").Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil)

		assert.True(t, x.SyncSubmitted())
		assert.Equal(t, 2, len(completedIds))
	})
}

func TestHandleTransaction(t *testing.T) {
	app.Config.Queue.SubmittedTimeoutMillis = 60000

	t.Run("Confirms Mined Transaction", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)
		requests := []models.MintRequest{
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
		}

		var completedIds []primitive.ObjectID
		queueMarkCompleted = func(id primitive.ObjectID, txHash string) error {
			completedIds = append(completedIds, id)
			return nil
		}
		defer func() { queueMarkCompleted = queue.MarkCompleted }()

		mockClient.EXPECT().GetTransactionReceipt("0xabc").Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil)

		assert.True(t, x.HandleTransaction("0xabc", requests))
		assert.Equal(t, 2, len(completedIds))
	})

	t.Run("Fails Reverted Batch", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)
		requests := []models.MintRequest{
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
		}

		var retryable []bool
		queueMarkFailed = func(id primitive.ObjectID, retry bool, cause error) (bool, error) {
			retryable = append(retryable, retry)
			return true, nil
		}
		defer func() { queueMarkFailed = queue.MarkFailed }()

		mockClient.EXPECT().GetTransactionReceipt("0xabc").Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)

		assert.True(t, x.HandleTransaction("0xabc", requests))
		assert.Equal(t, []bool{false, false}, retryable)
	})

	t.Run("Completes Reverted Mint Already Settled", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)
		requests := []models.MintRequest{
			submittedRequest(models.KindFirstTimeMint, "0xabc", "5"),
		}

		var completedHash string
		queueMarkCompleted = func(id primitive.ObjectID, txHash string) error {
			completedHash = txHash
			return nil
		}
		defer func() { queueMarkCompleted = queue.MarkCompleted }()

		mockClient.EXPECT().GetTransactionReceipt("0xabc").Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)
		mockVault.EXPECT().HasMinted(mock.Anything, ethcommon.HexToAddress(testWalletAddress)).Return(true, nil)

		assert.True(t, x.HandleTransaction("0xabc", requests))
		assert.Equal(t, "0xabc", completedHash)
	})

	t.Run("Keeps Waiting While In Mempool", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)
		requests := []models.MintRequest{
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
		}

		mockClient.EXPECT().GetTransactionReceipt("0xabc").Return(nil, goethereum.NotFound)
		mockClient.EXPECT().GetTransactionByHash("0xabc").Return(types.NewTx(&types.LegacyTx{}), true, nil)

		assert.True(t, x.HandleTransaction("0xabc", requests))
	})

	t.Run("Requeues Orphaned Transaction", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)
		requests := []models.MintRequest{
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
		}

		var retryable []bool
		queueMarkFailed = func(id primitive.ObjectID, retry bool, cause error) (bool, error) {
			retryable = append(retryable, retry)
			return false, nil
		}
		defer func() { queueMarkFailed = queue.MarkFailed }()

		mockClient.EXPECT().GetTransactionReceipt("0xabc").Return(nil, goethereum.NotFound)
		mockClient.EXPECT().GetTransactionByHash("0xabc").Return(nil, false, goethereum.NotFound)
		mockClient.EXPECT().GetLatestNonce(testWalletAddress).Return(uint64(7), nil)

		assert.True(t, x.HandleTransaction("0xabc", requests))
		assert.Equal(t, []bool{true, true}, retryable)
	})

	t.Run("Waits While Nonce Open", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)
		requests := []models.MintRequest{
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
		}

		mockClient.EXPECT().GetTransactionReceipt("0xabc").Return(nil, goethereum.NotFound)
		mockClient.EXPECT().GetTransactionByHash("0xabc").Return(nil, false, goethereum.NotFound)
		mockClient.EXPECT().GetLatestNonce(testWalletAddress).Return(uint64(5), nil)

		assert.True(t, x.HandleTransaction("0xabc", requests))
	})

	t.Run("Receipt Error", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		x := testConfirmer(mockClient, mockVault)
		requests := []models.MintRequest{
			submittedRequest(models.KindRewardPayout, "0xabc", "5"),
		}

		mockClient.EXPECT().GetTransactionReceipt("0xabc").Return(nil, assert.AnError)

		assert.False(t, x.HandleTransaction("0xabc", requests))
	})
}

func TestNewConfirmer(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		app.Config.Confirmer.Enabled = false

		service := NewConfirmer(&sync.WaitGroup{}, models.ServiceHealth{})

		health := service.Health()
		assert.NotNil(t, health)
		assert.Equal(t, app.EmptyServiceName, health.Name)
	})

	t.Run("Valid", func(t *testing.T) {
		app.Config.Confirmer.Enabled = true
		app.Config.Confirmer.IntervalMillis = 100
		app.Config.Ethereum.RewardVaultAddress = testVaultAddress.Hex()

		mockClient := ethMocks.NewMockEthereumClient(t)
		mockVault := ethMocks.NewMockRewardVaultContract(t)
		ethNewClient = func() (eth.EthereumClient, error) { return mockClient, nil }
		appCreateEthereumSigner = func() (common.Signer, error) { return common.NewPrivateKeySigner(testPrivateKey) }
		ethNewRewardVaultContract = func(address ethcommon.Address, backend bind.ContractBackend) (eth.RewardVaultContract, error) {
			return mockVault, nil
		}
		defer func() {
			ethNewClient = eth.NewClient
			appCreateEthereumSigner = app.CreateEthereumSigner
			ethNewRewardVaultContract = eth.NewRewardVaultContract
		}()

		mockClient.EXPECT().GetClient().Return(nil)
		mockClient.EXPECT().GetBlockNumber().Return(uint64(10), nil)

		service := NewConfirmer(&sync.WaitGroup{}, models.ServiceHealth{})

		health := service.Health()
		assert.NotNil(t, health)
		assert.Equal(t, ConfirmerName, health.Name)
	})
}
