package settler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ethMocks "github.com/HumansWindow/minting-service/eth/mocks"
)

func TestNonceManagerReserve(t *testing.T) {
	t.Run("Syncs From Chain Once", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		manager := NewNonceManager(mockClient, testWalletAddress)

		mockClient.EXPECT().GetPendingNonce(testWalletAddress).Return(uint64(7), nil).Once()

		nonce, err := manager.Reserve()
		assert.Nil(t, err)
		assert.Equal(t, uint64(7), nonce)

		nonce, err = manager.Reserve()
		assert.Nil(t, err)
		assert.Equal(t, uint64(8), nonce)
	})

	t.Run("With Error", func(t *testing.T) {
		mockClient := ethMocks.NewMockEthereumClient(t)
		manager := NewNonceManager(mockClient, testWalletAddress)

		mockClient.EXPECT().GetPendingNonce(testWalletAddress).Return(uint64(0), assert.AnError)

		_, err := manager.Reserve()
		assert.NotNil(t, err)
	})
}

func TestNonceManagerInvalidate(t *testing.T) {
	mockClient := ethMocks.NewMockEthereumClient(t)
	manager := NewNonceManager(mockClient, testWalletAddress)

	mockClient.EXPECT().GetPendingNonce(testWalletAddress).Return(uint64(7), nil).Once()

	nonce, err := manager.Reserve()
	assert.Nil(t, err)
	assert.Equal(t, uint64(7), nonce)

	manager.Invalidate()

	// resync picks up transactions that landed behind our back
	mockClient.EXPECT().GetPendingNonce(testWalletAddress).Return(uint64(12), nil).Once()

	nonce, err = manager.Reserve()
	assert.Nil(t, err)
	assert.Equal(t, uint64(12), nonce)
}
