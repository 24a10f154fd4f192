package settler

import (
	"sync"

	"github.com/HumansWindow/minting-service/eth"
	log "github.com/sirupsen/logrus"
)

// NonceManager hands out transaction nonces for the shared settlement
// signer. Reserve is the only reader of the chain's account nonce; it is
// called under the signer lock, so two settlement cycles never race a
// read-then-use on the pending count.
type NonceManager struct {
	mu      sync.Mutex
	client  eth.EthereumClient
	address string
	next    uint64
	synced  bool
}

func NewNonceManager(client eth.EthereumClient, address string) *NonceManager {
	return &NonceManager{
		client:  client,
		address: address,
	}
}

// Reserve returns the next nonce to use, resyncing from the chain when the
// local counter is not trusted.
func (m *NonceManager) Reserve() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.synced {
		pending, err := m.client.GetPendingNonce(m.address)
		if err != nil {
			return 0, err
		}
		m.next = pending
		m.synced = true
		log.WithField("nonce", pending).Debug("[NONCE] Synced nonce from chain")
	}

	nonce := m.next
	m.next++
	return nonce, nil
}

// Invalidate forces a chain resync before the next Reserve. Called after any
// failed submission, since the chain's view of the pending count is then
// unknown.
func (m *NonceManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.synced = false
}
