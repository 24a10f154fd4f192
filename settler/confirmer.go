package settler

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/eth"
	"github.com/HumansWindow/minting-service/metrics"
	"github.com/HumansWindow/minting-service/models"
	"github.com/HumansWindow/minting-service/queue"
)

const (
	ConfirmerName = "SETTLEMENT CONFIRMER"
)

var queueFindSubmitted = queue.FindSubmitted

type ConfirmerRunner struct {
	client         eth.EthereumClient
	vault          eth.RewardVaultContract
	signerAddress  string
	ethBlockNumber int64
}

func (x *ConfirmerRunner) Run() {
	x.UpdateBlockNumber()
	x.SyncSubmitted()
}

func (x *ConfirmerRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{
		EthBlockNumber: strconv.FormatInt(x.ethBlockNumber, 10),
	}
}

func (x *ConfirmerRunner) UpdateBlockNumber() {
	blockNumber, err := x.client.GetBlockNumber()
	if err != nil {
		log.Error("[SETTLEMENT CONFIRMER] Error fetching block number: ", err)
		return
	}
	x.ethBlockNumber = int64(blockNumber)
	log.Debug("[SETTLEMENT CONFIRMER] Current block number: ", x.ethBlockNumber)
}

// SyncSubmitted resolves requests whose transaction outlived a scheduler
// cycle, either because the process restarted mid-settlement or because the
// receipt arrived late. Members of one chunk share a transaction, so they
// resolve together.
func (x *ConfirmerRunner) SyncSubmitted() bool {
	log.Debug("[SETTLEMENT CONFIRMER] Syncing submitted requests")

	submitted, err := queueFindSubmitted()
	if err != nil {
		log.Error("[SETTLEMENT CONFIRMER] Error fetching submitted requests: ", err)
		return false
	}
	if len(submitted) == 0 {
		log.Debug("[SETTLEMENT CONFIRMER] No submitted requests")
		return true
	}
	log.Info("[SETTLEMENT CONFIRMER] Found submitted requests: ", len(submitted))

	groups := map[string][]models.MintRequest{}
	for i := range submitted {
		groups[submitted[i].TransactionHash] = append(groups[submitted[i].TransactionHash], submitted[i])
	}

	var success = true

	for txHash, group := range groups {
		resourceId := fmt.Sprintf("transactions/%s", txHash)
		lockId, err := app.DB.XLock(resourceId)
		if err != nil {
			log.Error("[SETTLEMENT CONFIRMER] Error locking transaction: ", err)
			success = false
			continue
		}
		log.Debug("[SETTLEMENT CONFIRMER] Locked transaction: ", txHash)

		success = x.HandleTransaction(txHash, group) && success

		if err = app.DB.Unlock(lockId); err != nil {
			log.Error("[SETTLEMENT CONFIRMER] Error unlocking transaction: ", err)
			success = false
		} else {
			log.Debug("[SETTLEMENT CONFIRMER] Unlocked transaction: ", txHash)
		}
	}

	log.Info("[SETTLEMENT CONFIRMER] Synced submitted requests")
	return success
}

// HandleTransaction settles every request submitted under one transaction
// hash by the transaction's fate on chain.
func (x *ConfirmerRunner) HandleTransaction(txHash string, requests []models.MintRequest) bool {
	receipt, err := x.client.GetTransactionReceipt(txHash)
	if err != nil && !errors.Is(err, ethereum.NotFound) {
		log.Error("[SETTLEMENT CONFIRMER] Error fetching receipt: ", err)
		return false
	}
	if err != nil || receipt == nil {
		return x.HandleMissing(txHash, requests)
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		log.Info("[SETTLEMENT CONFIRMER] Transaction confirmed: ", txHash)
		success := true
		for i := range requests {
			if err := queueMarkCompleted(*requests[i].Id, txHash); err != nil {
				log.Error("[SETTLEMENT CONFIRMER] Error completing request: ", err)
				success = false
				continue
			}
			metrics.SettlementResults.WithLabelValues("completed").Inc()
		}
		return success
	}
	return x.HandleReverted(txHash, requests)
}

// HandleMissing decides what to do with a transaction the chain has never
// seen. While the nonce is still open the transaction can mine, so the
// requests wait; once another transaction consumes the nonce and the
// submission has aged past the timeout, the requests requeue.
func (x *ConfirmerRunner) HandleMissing(txHash string, requests []models.MintRequest) bool {
	tx, pending, err := x.client.GetTransactionByHash(txHash)
	if err == nil && tx != nil && pending {
		log.Debug("[SETTLEMENT CONFIRMER] Transaction still in the mempool: ", txHash)
		return true
	}

	nonce, err := strconv.ParseUint(requests[0].Nonce, 10, 64)
	if err != nil {
		log.Error("[SETTLEMENT CONFIRMER] Invalid recorded nonce on transaction ", txHash, ": ", err)
		return false
	}
	latest, err := x.client.GetLatestNonce(x.signerAddress)
	if err != nil {
		log.Error("[SETTLEMENT CONFIRMER] Error fetching signer nonce: ", err)
		return false
	}

	age := time.Since(requests[0].SubmittedAt)
	timeout := time.Duration(app.Config.Queue.SubmittedTimeoutMillis) * time.Millisecond
	if latest > nonce && age > timeout {
		log.Warn("[SETTLEMENT CONFIRMER] Transaction orphaned, requeueing requests: ", txHash)
		success := true
		for i := range requests {
			terminal, err := queueMarkFailed(*requests[i].Id, true, fmt.Errorf("transaction %s never mined", txHash))
			if err != nil {
				log.Error("[SETTLEMENT CONFIRMER] Error requeueing request: ", err)
				success = false
				continue
			}
			if terminal {
				metrics.SettlementResults.WithLabelValues("failed").Inc()
			} else {
				metrics.SettlementResults.WithLabelValues("requeued").Inc()
			}
		}
		return success
	}

	log.Debug("[SETTLEMENT CONFIRMER] Transaction not yet mined: ", txHash)
	return true
}

// HandleReverted fails the requests behind a reverted transaction. A mint
// revert can mean the vault already settled the wallet through an earlier
// transaction, in which case the request completes instead.
func (x *ConfirmerRunner) HandleReverted(txHash string, requests []models.MintRequest) bool {
	log.Warn("[SETTLEMENT CONFIRMER] Transaction reverted: ", txHash)

	success := true
	for i := range requests {
		request := requests[i]
		if request.Kind.IsOneShot() {
			settled, err := vaultSettledRequest(x.vault, &request)
			if err != nil {
				log.Error("[SETTLEMENT CONFIRMER] Error checking vault state: ", err)
				success = false
				continue
			}
			if settled {
				if err := queueMarkCompleted(*request.Id, request.TransactionHash); err != nil {
					log.Error("[SETTLEMENT CONFIRMER] Error completing request: ", err)
					success = false
					continue
				}
				metrics.SettlementResults.WithLabelValues("completed").Inc()
				continue
			}
		}
		if _, err := queueMarkFailed(*request.Id, false, fmt.Errorf("transaction %s reverted", txHash)); err != nil {
			log.Error("[SETTLEMENT CONFIRMER] Error failing request: ", err)
			success = false
			continue
		}
		metrics.SettlementResults.WithLabelValues("failed").Inc()
	}
	return success
}

func NewConfirmer(wg *sync.WaitGroup, health models.ServiceHealth) app.Service {
	if !app.Config.Confirmer.Enabled {
		log.Debug("[SETTLEMENT CONFIRMER] Disabled")
		return app.NewEmptyService(wg)
	}

	log.Debug("[SETTLEMENT CONFIRMER] Initializing")

	client, err := ethNewClient()
	if err != nil {
		log.Fatal("[SETTLEMENT CONFIRMER] Error initializing ethereum client: ", err)
	}

	signer, err := appCreateEthereumSigner()
	if err != nil {
		log.Fatal("[SETTLEMENT CONFIRMER] Error creating settlement signer: ", err)
	}
	signerAddress := signer.EthAddress().Hex()
	signer.Destroy()

	vault, err := ethNewRewardVaultContract(ethcommon.HexToAddress(app.Config.Ethereum.RewardVaultAddress), client.GetClient())
	if err != nil {
		log.Fatal("[SETTLEMENT CONFIRMER] Error initializing reward vault contract: ", err)
	}

	x := &ConfirmerRunner{
		client:        client,
		vault:         vault,
		signerAddress: signerAddress,
	}

	x.UpdateBlockNumber()

	log.Info("[SETTLEMENT CONFIRMER] Initialized")

	return app.NewRunnerService(ConfirmerName, x, wg, time.Duration(app.Config.Confirmer.IntervalMillis)*time.Millisecond)
}
