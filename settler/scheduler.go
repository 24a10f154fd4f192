package settler

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"sync"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/eth"
	"github.com/HumansWindow/minting-service/metrics"
	"github.com/HumansWindow/minting-service/models"
	"github.com/HumansWindow/minting-service/queue"
)

const (
	BatchSchedulerName = "BATCH SCHEDULER"
)

// ErrSchedulerDisabled is returned by TriggerProcessBatch when no batch
// scheduler is running in this process.
var ErrSchedulerDisabled = errors.New("batch scheduler is not running")

var (
	triggerMu     sync.RWMutex
	triggerRunner *BatchSchedulerRunner
)

func setTriggerRunner(x *BatchSchedulerRunner) {
	triggerMu.Lock()
	defer triggerMu.Unlock()
	triggerRunner = x
}

// TriggerProcessBatch runs one settlement cycle on the live scheduler on an
// operator's request and reports what it settled. The cycle shares the
// scheduler's mutex and nonce manager, so a manual trigger never races the
// interval loop.
func TriggerProcessBatch() (models.BatchReport, error) {
	triggerMu.RLock()
	x := triggerRunner
	triggerMu.RUnlock()

	if x == nil {
		return models.BatchReport{}, ErrSchedulerDisabled
	}
	return x.ProcessBatch(), nil
}

var queueClaimBatch = queue.ClaimBatch
var queueReclaimExpired = queue.ReclaimExpired
var queueReleaseClaims = queue.ReleaseClaims
var queueCountByStatus = queue.CountByStatus
var ethNewClient = eth.NewClient
var ethNewRewardVaultContract = eth.NewRewardVaultContract
var appCreateEthereumSigner = app.CreateEthereumSigner

type BatchSchedulerRunner struct {
	client         eth.EthereumClient
	adapter        ChunkSettler
	signerAddress  string
	workerID       string
	ethBlockNumber int64
	queueDepth     int64
	processMu      sync.Mutex
}

func (x *BatchSchedulerRunner) Run() {
	x.UpdateBlockNumber()
	x.ProcessBatch()
	x.UpdateQueueDepth()
}

func (x *BatchSchedulerRunner) Status() models.RunnerStatus {
	return models.RunnerStatus{
		EthBlockNumber: strconv.FormatInt(x.ethBlockNumber, 10),
		QueueDepth:     strconv.FormatInt(x.queueDepth, 10),
	}
}

func (x *BatchSchedulerRunner) UpdateBlockNumber() {
	blockNumber, err := x.client.GetBlockNumber()
	if err != nil {
		log.Error("[BATCH SCHEDULER] Error fetching block number: ", err)
		return
	}
	x.ethBlockNumber = int64(blockNumber)
	log.Debug("[BATCH SCHEDULER] Current block number: ", x.ethBlockNumber)
}

func (x *BatchSchedulerRunner) UpdateQueueDepth() {
	counts, err := queueCountByStatus()
	if err != nil {
		log.Error("[BATCH SCHEDULER] Error counting queue depth: ", err)
		return
	}
	var backlog int64
	for status, count := range counts {
		if status == models.StatusPending || status == models.StatusClaimed || status == models.StatusSubmitted {
			backlog += count
		}
	}
	x.queueDepth = backlog
}

// ProcessBatch runs one settlement cycle: reclaim expired claims, check the
// signer can pay for gas, then claim due requests and settle them chunk by
// chunk. The admin API also invokes it directly, so it serializes on a
// mutex.
func (x *BatchSchedulerRunner) ProcessBatch() models.BatchReport {
	x.processMu.Lock()
	defer x.processMu.Unlock()

	report := models.BatchReport{}

	reclaimed, err := queueReclaimExpired(time.Duration(app.Config.Queue.LeaseTimeoutMillis) * time.Millisecond)
	if err != nil {
		log.Error("[BATCH SCHEDULER] Error reclaiming expired claims: ", err)
	} else if reclaimed > 0 {
		log.Info("[BATCH SCHEDULER] Reclaimed expired claims: ", reclaimed)
	}

	if !x.signerCanPayGas() {
		return report
	}

	claimed, err := queueClaimBatch(x.workerID, app.Config.Queue.ClaimBatchSize)
	if err != nil {
		log.Error("[BATCH SCHEDULER] Error claiming batch: ", err)
		return report
	}
	if len(claimed) == 0 {
		log.Debug("[BATCH SCHEDULER] No due requests")
		return report
	}
	log.Info("[BATCH SCHEDULER] Claimed requests: ", len(claimed))

	for _, chunk := range PartitionClaims(claimed) {
		resourceId := fmt.Sprintf("signers/%s", x.signerAddress)
		lockId, err := app.DB.XLock(resourceId)
		if err != nil {
			log.Error("[BATCH SCHEDULER] Error locking signer: ", err)
			x.releaseRemaining(&report)
			break
		}
		log.Debug("[BATCH SCHEDULER] Locked signer for chunk: ", chunk.ID)

		outcome := x.adapter.SettleChunk(chunk)

		if err = app.DB.Unlock(lockId); err != nil {
			log.Error("[BATCH SCHEDULER] Error unlocking signer: ", err)
		} else {
			log.Debug("[BATCH SCHEDULER] Unlocked signer for chunk: ", chunk.ID)
		}

		report.Add(outcome.Report)
		if outcome.Halt {
			x.releaseRemaining(&report)
			break
		}
	}

	log.
		WithField("processed", report.Processed).
		WithField("completed", report.Completed).
		WithField("failed", report.Failed).
		WithField("requeued", report.Requeued).
		Info("[BATCH SCHEDULER] Processed batch")
	return report
}

// signerCanPayGas compares the signer balance to the configured floor so a
// cycle never claims requests it cannot pay to settle.
func (x *BatchSchedulerRunner) signerCanPayGas() bool {
	balance, err := x.client.GetBalance(x.signerAddress)
	if err != nil {
		log.Error("[BATCH SCHEDULER] Error fetching signer balance: ", err)
		return false
	}
	balanceFloat, _ := new(big.Float).SetInt(balance).Float64()
	metrics.SignerBalance.Set(balanceFloat)

	minBalance, ok := new(big.Int).SetString(app.Config.Ethereum.MinSignerBalanceWei, 10)
	if !ok || minBalance.Sign() <= 0 {
		return true
	}
	if balance.Cmp(minBalance) < 0 {
		log.Warn("[BATCH SCHEDULER] Signer balance ", balance.String(), " below minimum ", minBalance.String(), ", skipping cycle")
		metrics.ResourceExhausted.Inc()
		return false
	}
	return true
}

func (x *BatchSchedulerRunner) releaseRemaining(report *models.BatchReport) {
	released, err := queueReleaseClaims(x.workerID)
	if err != nil {
		log.Error("[BATCH SCHEDULER] Error releasing claims: ", err)
		return
	}
	if released > 0 {
		log.Info("[BATCH SCHEDULER] Released unsettled claims: ", released)
		report.Requeued += released
	}
}

func newWorkerID() string {
	hostname, _ := os.Hostname()
	if hostname == "" {
		hostname = "minting"
	}
	return fmt.Sprintf("%s-%s", hostname, uuid.New().String()[:8])
}

func NewBatchScheduler(wg *sync.WaitGroup, health models.ServiceHealth) app.Service {
	if !app.Config.BatchScheduler.Enabled {
		log.Debug("[BATCH SCHEDULER] Disabled")
		return app.NewEmptyService(wg)
	}

	log.Debug("[BATCH SCHEDULER] Initializing")

	client, err := ethNewClient()
	if err != nil {
		log.Fatal("[BATCH SCHEDULER] Error initializing ethereum client: ", err)
	}

	signer, err := appCreateEthereumSigner()
	if err != nil {
		log.Fatal("[BATCH SCHEDULER] Error creating settlement signer: ", err)
	}

	log.Debug("[BATCH SCHEDULER] Connecting to reward vault at: ", app.Config.Ethereum.RewardVaultAddress)
	vault, err := ethNewRewardVaultContract(ethcommon.HexToAddress(app.Config.Ethereum.RewardVaultAddress), client.GetClient())
	if err != nil {
		log.Fatal("[BATCH SCHEDULER] Error initializing reward vault contract: ", err)
	}
	log.Debug("[BATCH SCHEDULER] Connected to reward vault")

	chainID, ok := new(big.Int).SetString(app.Config.Ethereum.ChainID, 10)
	if !ok {
		log.Fatal("[BATCH SCHEDULER] Invalid chain id: ", app.Config.Ethereum.ChainID)
	}

	signerAddress := signer.EthAddress().Hex()
	x := &BatchSchedulerRunner{
		client:        client,
		adapter:       NewSettlementAdapter(client, vault, signer, NewNonceManager(client, signerAddress), chainID),
		signerAddress: signerAddress,
		workerID:      newWorkerID(),
	}

	x.UpdateBlockNumber()
	setTriggerRunner(x)

	log.Info("[BATCH SCHEDULER] Initialized")

	return app.NewRunnerService(BatchSchedulerName, x, wg, time.Duration(app.Config.BatchScheduler.IntervalMillis)*time.Millisecond)
}
