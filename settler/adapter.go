package settler

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	log "github.com/sirupsen/logrus"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/common"
	"github.com/HumansWindow/minting-service/eth"
	"github.com/HumansWindow/minting-service/metrics"
	"github.com/HumansWindow/minting-service/models"
	"github.com/HumansWindow/minting-service/queue"
)

var queueMarkSubmitted = queue.MarkSubmitted
var queueMarkCompleted = queue.MarkCompleted
var queueMarkFailed = queue.MarkFailed
var queueReleaseChunk = queue.ReleaseChunk
var queueSetAmount = queue.SetAmount

// ChunkOutcome reports what happened to each member of a settled chunk. Halt
// asks the scheduler to end the cycle because a shared resource such as the
// signer gas balance is exhausted.
type ChunkOutcome struct {
	Report models.BatchReport
	Halt   bool
}

type ChunkSettler interface {
	SettleChunk(chunk *Chunk) ChunkOutcome
}

var _ ChunkSettler = &SettlementAdapter{}

// SettlementAdapter turns claimed chunks into reward vault transactions
// signed by the shared settlement key.
type SettlementAdapter struct {
	client  eth.EthereumClient
	vault   eth.RewardVaultContract
	signer  common.Signer
	nonces  *NonceManager
	chainID *big.Int
	from    ethcommon.Address
}

func NewSettlementAdapter(
	client eth.EthereumClient,
	vault eth.RewardVaultContract,
	signer common.Signer,
	nonces *NonceManager,
	chainID *big.Int,
) *SettlementAdapter {
	return &SettlementAdapter{
		client:  client,
		vault:   vault,
		signer:  signer,
		nonces:  nonces,
		chainID: chainID,
		from:    signer.EthAddress(),
	}
}

// SettleChunk settles every member of a chunk with at most one chain
// transaction and records each member's outcome in the queue.
func (x *SettlementAdapter) SettleChunk(chunk *Chunk) ChunkOutcome {
	report := models.BatchReport{Processed: int64(len(chunk.Requests))}

	log.
		WithField("chunk_id", chunk.ID).
		WithField("kind", chunk.Kind).
		WithField("requests", len(chunk.Requests)).
		Debug("[BATCH SCHEDULER] Settling chunk")

	if early := x.adoptPriorTransactions(chunk, &report); early != nil {
		return *early
	}

	if chunk.Kind.IsOneShot() {
		request := &chunk.Requests[0]
		settled, err := vaultSettledRequest(x.vault, request)
		if err != nil {
			return x.requeueChunk(chunk, err, &report)
		}
		if settled {
			log.WithField("request_id", request.Id.Hex()).
				Info("[BATCH SCHEDULER] Vault already settled this request, completing")
			x.completeRequest(request, request.TransactionHash, &report)
			return ChunkOutcome{Report: report}
		}
	}

	if chunk.Kind == models.KindBatchBurn {
		if early := x.deriveBurnAmounts(chunk, &report); early != nil {
			return *early
		}
	}

	data, err := x.packCallData(chunk)
	if err != nil {
		return x.failChunk(chunk, err, &report)
	}

	return x.submitChunk(chunk, data, &report, true)
}

// adoptPriorTransactions completes members whose transaction from an earlier
// attempt made it on chain after the attempt was written off. A transport
// error here requeues the chunk rather than risking a second payment.
func (x *SettlementAdapter) adoptPriorTransactions(chunk *Chunk, report *models.BatchReport) *ChunkOutcome {
	kept := make([]models.MintRequest, 0, len(chunk.Requests))
	for i := range chunk.Requests {
		request := chunk.Requests[i]
		if request.TransactionHash == "" {
			kept = append(kept, request)
			continue
		}
		receipt, err := x.client.GetTransactionReceipt(request.TransactionHash)
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			chunk.Requests = append(kept, chunk.Requests[i:]...)
			outcome := x.requeueChunk(chunk, err, report)
			return &outcome
		}
		if err == nil && receipt != nil && receipt.Status == types.ReceiptStatusSuccessful {
			log.
				WithField("request_id", request.Id.Hex()).
				WithField("transaction_hash", request.TransactionHash).
				Info("[BATCH SCHEDULER] Adopting settled transaction from an earlier attempt")
			x.completeRequest(&request, request.TransactionHash, report)
			continue
		}
		kept = append(kept, request)
	}
	chunk.Requests = kept
	if len(kept) == 0 {
		return &ChunkOutcome{Report: *report}
	}
	return nil
}

// vaultSettledRequest checks the vault's own bookkeeping for the kinds it
// only allows once per wallet.
func vaultSettledRequest(vault eth.RewardVaultContract, request *models.MintRequest) (bool, error) {
	address := ethcommon.HexToAddress(request.WalletAddress)
	switch request.Kind {
	case models.KindFirstTimeMint:
		return vault.HasMinted(nil, address)
	case models.KindAnnualMint:
		if request.Proof == nil {
			return false, nil
		}
		last, err := vault.LastAnnualMint(nil, address)
		if err != nil {
			return false, err
		}
		return last.Int64() >= request.Proof.Year, nil
	}
	return false, nil
}

// deriveBurnAmounts fills each burn member with its live vault balance.
// Members with nothing to burn complete without touching the chain.
func (x *SettlementAdapter) deriveBurnAmounts(chunk *Chunk, report *models.BatchReport) *ChunkOutcome {
	kept := make([]models.MintRequest, 0, len(chunk.Requests))
	for i := range chunk.Requests {
		request := chunk.Requests[i]
		balance, err := x.vault.BalanceOf(nil, ethcommon.HexToAddress(request.WalletAddress))
		if err != nil {
			chunk.Requests = append(kept, chunk.Requests[i:]...)
			outcome := x.requeueChunk(chunk, err, report)
			return &outcome
		}
		if balance.Sign() == 0 {
			log.WithField("request_id", request.Id.Hex()).
				Info("[BATCH SCHEDULER] Nothing to burn, completing without a transaction")
			x.completeRequest(&request, "", report)
			continue
		}
		if err := queueSetAmount(*request.Id, balance.String()); err != nil {
			log.WithField("request_id", request.Id.Hex()).WithError(err).
				Warn("[BATCH SCHEDULER] Failed to record derived burn amount, skipping member")
			continue
		}
		request.Amount = balance.String()
		kept = append(kept, request)
	}
	chunk.Requests = kept
	if len(kept) == 0 {
		return &ChunkOutcome{Report: *report}
	}
	return nil
}

func (x *SettlementAdapter) packCallData(chunk *Chunk) ([]byte, error) {
	switch chunk.Kind {
	case models.KindFirstTimeMint:
		return x.packMembershipMint(&chunk.Requests[0])
	case models.KindAnnualMint:
		return x.packAnnualMint(&chunk.Requests[0])
	case models.KindRewardPayout:
		return x.packPayout(chunk.Requests)
	case models.KindBatchBurn:
		return x.packBurn(chunk.Requests)
	}
	return nil, fmt.Errorf("no call data for kind %s", chunk.Kind)
}

func (x *SettlementAdapter) packMembershipMint(request *models.MintRequest) ([]byte, error) {
	amount, ok := new(big.Int).SetString(request.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q on request %s", request.Amount, request.Id.Hex())
	}
	if request.Proof == nil {
		return nil, fmt.Errorf("missing proof on request %s", request.Id.Hex())
	}
	path, err := eth.MerklePathToBytes32(request.Proof.MerklePath)
	if err != nil {
		return nil, fmt.Errorf("invalid merkle path on request %s: %w", request.Id.Hex(), err)
	}
	return x.vault.PackMintMembership(ethcommon.HexToAddress(request.WalletAddress), amount, path)
}

func (x *SettlementAdapter) packAnnualMint(request *models.MintRequest) ([]byte, error) {
	amount, ok := new(big.Int).SetString(request.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q on request %s", request.Amount, request.Id.Hex())
	}
	if request.Proof == nil {
		return nil, fmt.Errorf("missing proof on request %s", request.Id.Hex())
	}
	attestation, err := hexutil.Decode(common.Ensure0xPrefix(request.Proof.Attestation))
	if err != nil {
		return nil, fmt.Errorf("invalid attestation on request %s: %w", request.Id.Hex(), err)
	}
	year := big.NewInt(request.Proof.Year)
	return x.vault.PackMintAnnual(ethcommon.HexToAddress(request.WalletAddress), amount, year, attestation)
}

func (x *SettlementAdapter) packPayout(requests []models.MintRequest) ([]byte, error) {
	recipients := make([]ethcommon.Address, len(requests))
	amounts := make([]*big.Int, len(requests))
	for i := range requests {
		amount, ok := new(big.Int).SetString(requests[i].Amount, 10)
		if !ok {
			return nil, fmt.Errorf("invalid amount %q on request %s", requests[i].Amount, requests[i].Id.Hex())
		}
		recipients[i] = ethcommon.HexToAddress(requests[i].WalletAddress)
		amounts[i] = amount
	}
	return x.vault.PackBatchTransfer(recipients, amounts)
}

func (x *SettlementAdapter) packBurn(requests []models.MintRequest) ([]byte, error) {
	accounts := make([]ethcommon.Address, len(requests))
	for i := range requests {
		accounts[i] = ethcommon.HexToAddress(requests[i].WalletAddress)
	}
	return x.vault.PackBatchBurn(accounts)
}

// submitChunk signs and sends one transaction carrying data for the chunk.
// Every member records the submission before the transaction leaves the
// process, so a crash can never lose track of a sent transaction.
func (x *SettlementAdapter) submitChunk(chunk *Chunk, data []byte, report *models.BatchReport, allowFallback bool) ChunkOutcome {
	vaultAddress := x.vault.Address()

	gasLimit, err := x.client.EstimateGas(ethereum.CallMsg{
		From: x.from,
		To:   &vaultAddress,
		Data: data,
	})
	if err != nil {
		if IsRevertError(err) {
			return x.handleRevert(chunk, err, report, allowFallback)
		}
		log.WithError(err).Warn("[BATCH SCHEDULER] Gas estimation failed, using the default gas limit")
		gasLimit = app.Config.Ethereum.DefaultGasLimit
	} else {
		gasLimit += gasLimit / 5
	}

	gasPrice, err := x.suggestGasPrice()
	if err != nil {
		return x.requeueChunk(chunk, err, report)
	}

	nonce, err := x.nonces.Reserve()
	if err != nil {
		return x.requeueChunk(chunk, err, report)
	}

	signedTx, err := x.signTransaction(nonce, vaultAddress, gasLimit, gasPrice, data)
	if err != nil {
		x.nonces.Invalidate()
		return x.requeueChunk(chunk, err, report)
	}
	txHash := signedTx.Hash().Hex()

	nonceLabel := strconv.FormatUint(nonce, 10)
	for i := range chunk.Requests {
		request := &chunk.Requests[i]
		if err := queueMarkSubmitted(*request.Id, chunk.ID, txHash, nonceLabel); err != nil {
			log.WithField("request_id", request.Id.Hex()).WithError(err).
				Warn("[BATCH SCHEDULER] Lost claim before submission, releasing chunk")
			x.nonces.Invalidate()
			released, releaseErr := queueReleaseChunk(chunk.ID)
			if releaseErr != nil {
				log.WithField("chunk_id", chunk.ID).WithError(releaseErr).
					Error("[BATCH SCHEDULER] Failed to release chunk")
			}
			report.Requeued += released
			return ChunkOutcome{Report: *report}
		}
	}

	if err := x.client.SendTransaction(signedTx); err != nil {
		return x.handleSendError(chunk, err, report, allowFallback)
	}

	metrics.ChunksSubmitted.WithLabelValues(string(chunk.Kind)).Inc()
	metrics.SignerNonce.Set(float64(nonce))
	log.
		WithField("chunk_id", chunk.ID).
		WithField("transaction_hash", txHash).
		WithField("nonce", nonce).
		Info("[BATCH SCHEDULER] Submitted settlement transaction")

	receipt := x.waitForReceipt(txHash)
	if receipt == nil {
		log.
			WithField("chunk_id", chunk.ID).
			WithField("transaction_hash", txHash).
			Info("[BATCH SCHEDULER] No receipt before the confirmation timeout, leaving chunk submitted")
		return ChunkOutcome{Report: *report}
	}

	if receipt.Status == types.ReceiptStatusSuccessful {
		for i := range chunk.Requests {
			x.completeRequest(&chunk.Requests[i], txHash, report)
		}
		return ChunkOutcome{Report: *report}
	}

	return x.handleRevert(chunk, fmt.Errorf("transaction %s reverted", txHash), report, allowFallback)
}

func (x *SettlementAdapter) handleSendError(chunk *Chunk, err error, report *models.BatchReport, allowFallback bool) ChunkOutcome {
	x.nonces.Invalidate()

	switch ClassifySendError(err) {
	case ClassResourceExhausted:
		log.WithField("chunk_id", chunk.ID).WithError(err).
			Warn("[BATCH SCHEDULER] Signer cannot fund the transaction, halting the cycle")
		metrics.ResourceExhausted.Inc()
		released, releaseErr := queueReleaseChunk(chunk.ID)
		if releaseErr != nil {
			log.WithField("chunk_id", chunk.ID).WithError(releaseErr).
				Error("[BATCH SCHEDULER] Failed to release chunk")
		}
		report.Requeued += released
		return ChunkOutcome{Report: *report, Halt: true}
	case ClassFatal:
		return x.handleRevert(chunk, err, report, allowFallback)
	default:
		if IsNonceError(err) {
			log.WithError(err).Warn("[BATCH SCHEDULER] Nonce out of sync, resyncing from chain")
		}
		return x.requeueChunk(chunk, err, report)
	}
}

// handleRevert settles a chunk whose transaction the vault rejected. A mint
// revert usually means the vault already settled the wallet, so the request
// completes; otherwise a single admin mint attempt remains before the
// request fails terminally. Batch kinds have no second path.
func (x *SettlementAdapter) handleRevert(chunk *Chunk, cause error, report *models.BatchReport, allowFallback bool) ChunkOutcome {
	x.nonces.Invalidate()

	if chunk.Kind.IsOneShot() {
		request := &chunk.Requests[0]
		settled, err := vaultSettledRequest(x.vault, request)
		if err == nil && settled {
			log.WithField("request_id", request.Id.Hex()).
				Info("[BATCH SCHEDULER] Vault already settled this request, completing")
			x.completeRequest(request, request.TransactionHash, report)
			return ChunkOutcome{Report: *report}
		}
		if allowFallback {
			if data, packErr := x.packAdminMint(request); packErr == nil {
				log.WithField("request_id", request.Id.Hex()).WithError(cause).
					Warn("[BATCH SCHEDULER] Mint reverted, retrying through the admin mint path")
				return x.submitChunk(chunk, data, report, false)
			}
		}
	}

	return x.failChunk(chunk, cause, report)
}

func (x *SettlementAdapter) packAdminMint(request *models.MintRequest) ([]byte, error) {
	amount, ok := new(big.Int).SetString(request.Amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q on request %s", request.Amount, request.Id.Hex())
	}
	return x.vault.PackAdminMint(ethcommon.HexToAddress(request.WalletAddress), amount)
}

// suggestGasPrice asks the node for a price and adds a 20% tip so a retried
// settlement can replace a stuck transaction. Falls back to the configured
// price when the node will not answer.
func (x *SettlementAdapter) suggestGasPrice() (*big.Int, error) {
	gasPrice, err := x.client.SuggestGasPrice()
	if err != nil {
		log.WithError(err).Warn("[BATCH SCHEDULER] Gas price suggestion failed, using the fallback price")
		fallback, ok := new(big.Int).SetString(app.Config.Ethereum.FallbackGasPriceWei, 10)
		if !ok {
			return nil, fmt.Errorf("no usable gas price: %w", err)
		}
		return fallback, nil
	}
	return new(big.Int).Div(new(big.Int).Mul(gasPrice, big.NewInt(120)), big.NewInt(100)), nil
}

// signTransaction builds a legacy transaction to the vault and signs its
// EIP-155 digest with the settlement key.
func (x *SettlementAdapter) signTransaction(
	nonce uint64,
	to ethcommon.Address,
	gasLimit uint64,
	gasPrice *big.Int,
	data []byte,
) (*types.Transaction, error) {
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	txSigner := types.NewEIP155Signer(x.chainID)
	signature, err := x.signer.EthSign(txSigner.Hash(tx).Bytes())
	if err != nil {
		return nil, err
	}
	if len(signature) != 65 {
		return nil, fmt.Errorf("unexpected signature length %d", len(signature))
	}
	// EthSign returns the recovery id offset by 27
	signature[64] -= 27
	return tx.WithSignature(txSigner, signature)
}

func (x *SettlementAdapter) waitForReceipt(txHash string) *types.Receipt {
	timer := backoff.NewExponentialBackOff()
	timer.InitialInterval = 500 * time.Millisecond
	timer.MaxInterval = 5 * time.Second
	timer.MaxElapsedTime = time.Duration(app.Config.Queue.ConfirmationTimeoutMillis) * time.Millisecond

	var receipt *types.Receipt
	err := backoff.Retry(func() error {
		found, err := x.client.GetTransactionReceipt(txHash)
		if err != nil {
			return err
		}
		if found == nil {
			return errors.New("receipt not available")
		}
		receipt = found
		return nil
	}, timer)
	if err != nil {
		return nil
	}
	return receipt
}

func (x *SettlementAdapter) completeRequest(request *models.MintRequest, txHash string, report *models.BatchReport) {
	if err := queueMarkCompleted(*request.Id, txHash); err != nil {
		log.WithField("request_id", request.Id.Hex()).WithError(err).
			Warn("[BATCH SCHEDULER] Failed to mark mint request completed")
		return
	}
	report.Completed++
	metrics.SettlementResults.WithLabelValues("completed").Inc()
}

func (x *SettlementAdapter) failChunk(chunk *Chunk, cause error, report *models.BatchReport) ChunkOutcome {
	for i := range chunk.Requests {
		request := &chunk.Requests[i]
		if _, err := queueMarkFailed(*request.Id, false, cause); err != nil {
			log.WithField("request_id", request.Id.Hex()).WithError(err).
				Warn("[BATCH SCHEDULER] Failed to mark mint request failed")
			continue
		}
		report.Failed++
		metrics.SettlementResults.WithLabelValues("failed").Inc()
	}
	log.WithField("chunk_id", chunk.ID).WithError(cause).
		Warn("[BATCH SCHEDULER] Chunk terminally failed")
	return ChunkOutcome{Report: *report}
}

func (x *SettlementAdapter) requeueChunk(chunk *Chunk, cause error, report *models.BatchReport) ChunkOutcome {
	for i := range chunk.Requests {
		request := &chunk.Requests[i]
		terminal, err := queueMarkFailed(*request.Id, true, cause)
		if err != nil {
			log.WithField("request_id", request.Id.Hex()).WithError(err).
				Warn("[BATCH SCHEDULER] Failed to requeue mint request")
			continue
		}
		if terminal {
			report.Failed++
			metrics.SettlementResults.WithLabelValues("failed").Inc()
		} else {
			report.Requeued++
			metrics.SettlementResults.WithLabelValues("requeued").Inc()
		}
	}
	log.WithField("chunk_id", chunk.ID).WithError(cause).
		Info("[BATCH SCHEDULER] Chunk requeued after transient failure")
	return ChunkOutcome{Report: *report}
}
