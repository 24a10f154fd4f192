package queue

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/common"
	"github.com/HumansWindow/minting-service/metrics"
	"github.com/HumansWindow/minting-service/models"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrInvalidRequest wraps all enqueue-time validation failures.
	ErrInvalidRequest = errors.New("invalid mint request")

	// ErrNotFound is returned when a request id does not exist.
	ErrNotFound = errors.New("mint request not found")

	// ErrStaleStatus is returned when a status transition found the request in
	// a different state than expected, usually because a lease expired and
	// another worker took over.
	ErrStaleStatus = errors.New("mint request status changed underneath the update")
)

// ErrDuplicate reports the request already holding the dedup key.
type ErrDuplicate struct {
	ExistingId     primitive.ObjectID
	ExistingStatus models.Status
}

func (e *ErrDuplicate) Error() string {
	return fmt.Sprintf("duplicate mint request, existing request %s is %s", e.ExistingId.Hex(), e.ExistingStatus)
}

func validateRequest(request *models.MintRequest) error {
	if !common.IsValidEthereumAddress(request.WalletAddress) {
		return fmt.Errorf("%w: invalid wallet address %q", ErrInvalidRequest, request.WalletAddress)
	}
	if !request.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, request.Kind)
	}

	if request.Kind == models.KindBatchBurn {
		if request.Amount != "" {
			return fmt.Errorf("%w: amount is derived for %s, not supplied", ErrInvalidRequest, models.KindBatchBurn)
		}
	} else {
		amount, ok := new(big.Int).SetString(request.Amount, 10)
		if !ok || amount.Sign() <= 0 {
			return fmt.Errorf("%w: amount must be a positive integer, got %q", ErrInvalidRequest, request.Amount)
		}
	}

	if err := models.ValidateProofForKind(request.Kind, request.Proof); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	return nil
}

// Enqueue validates the request, derives its dedup key and inserts it as
// pending. The partial unique index on dedup_key enforces idempotency; a
// clash is reported as *ErrDuplicate with the holder's id and status.
func Enqueue(request *models.MintRequest) (*models.MintRequest, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	checksummed, err := common.ChecksumAddress(request.WalletAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}
	request.WalletAddress = checksummed

	now := time.Now()
	request.Id = nil
	request.Status = models.StatusPending
	request.DedupKey = DedupKey(request.WalletAddress, request.Kind, request.Proof)
	request.Active = true
	request.RetryCount = 0
	if request.MaxRetries == 0 {
		request.MaxRetries = app.Config.Queue.MaxRetries
	}
	if request.Priority == 0 {
		request.Priority = models.DefaultPriority(request.Kind)
	}
	request.NotBefore = now
	request.CreatedAt = now
	request.UpdatedAt = now

	// a failed predecessor released the dedup key; link the new attempt to it
	var priors []models.MintRequest
	err = app.DB.FindMany(models.CollectionMintRequests, bson.M{"dedup_key": request.DedupKey, "active": false}, &priors)
	if err == nil && len(priors) > 0 {
		latest := priors[0]
		for _, prior := range priors[1:] {
			if prior.CreatedAt.After(latest.CreatedAt) {
				latest = prior
			}
		}
		request.Supersedes = latest.Id
	}

	insertedId, err := app.DB.InsertOne(models.CollectionMintRequests, request)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			var existing models.MintRequest
			findErr := app.DB.FindOne(models.CollectionMintRequests, bson.M{"dedup_key": request.DedupKey, "active": true}, &existing)
			if findErr != nil {
				return nil, fmt.Errorf("duplicate mint request: %w", findErr)
			}
			metrics.DuplicateEnqueues.WithLabelValues(string(request.Kind)).Inc()
			return nil, &ErrDuplicate{ExistingId: *existing.Id, ExistingStatus: existing.Status}
		}
		return nil, err
	}

	request.Id = &insertedId
	metrics.RequestsEnqueued.WithLabelValues(string(request.Kind)).Inc()
	log.WithField("request_id", insertedId.Hex()).WithField("kind", request.Kind).
		Debug("[QUEUE] Enqueued mint request")
	return request, nil
}

// Get returns the request with the given id.
func Get(id primitive.ObjectID) (models.MintRequest, error) {
	var request models.MintRequest
	err := app.DB.FindOne(models.CollectionMintRequests, bson.M{"_id": id}, &request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return request, ErrNotFound
	}
	return request, err
}

// ClaimBatch atomically moves up to limit due pending requests to claimed,
// most urgent first. Each document flips in a single findOneAndUpdate, so
// concurrent claimers never receive the same request.
func ClaimBatch(workerID string, limit int64) ([]models.MintRequest, error) {
	var claimed []models.MintRequest
	now := time.Now()
	sort := bson.D{{Key: "priority", Value: 1}, {Key: "created_at", Value: 1}}

	for int64(len(claimed)) < limit {
		filter := bson.M{
			"status":     models.StatusPending,
			"not_before": bson.M{"$lte": now},
		}
		update := bson.M{"$set": bson.M{
			"status":     models.StatusClaimed,
			"claimed_by": workerID,
			"claimed_at": now,
			"updated_at": now,
		}}

		var request models.MintRequest
		err := app.DB.FindOneAndUpdate(models.CollectionMintRequests, filter, update, sort, &request)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				break
			}
			return claimed, err
		}
		claimed = append(claimed, request)
	}

	return claimed, nil
}

// MarkSubmitted records the chain transaction for a request before it is
// sent. Submitted requests may be re-marked when a fallback transaction
// replaces a reverted one. Returns ErrStaleStatus if the claim was lost in
// the meantime.
func MarkSubmitted(id primitive.ObjectID, chunkID string, txHash string, nonce string) error {
	now := time.Now()
	filter := bson.M{"_id": id, "status": bson.M{"$in": []models.Status{models.StatusClaimed, models.StatusSubmitted}}}
	update := bson.M{"$set": bson.M{
		"status":           models.StatusSubmitted,
		"chunk_id":         chunkID,
		"transaction_hash": txHash,
		"nonce":            nonce,
		"submitted_at":     now,
		"updated_at":       now,
	}}

	matched, err := app.DB.UpdateOne(models.CollectionMintRequests, filter, update)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrStaleStatus
	}
	return nil
}

// MarkCompleted finalizes a claimed or submitted request. Completed rows stay
// active so their dedup key keeps blocking repeats permanently.
func MarkCompleted(id primitive.ObjectID, txHash string) error {
	now := time.Now()
	set := bson.M{
		"status":        models.StatusCompleted,
		"error_message": "",
		"completed_at":  now,
		"updated_at":    now,
	}
	if txHash != "" {
		set["transaction_hash"] = txHash
	}

	filter := bson.M{"_id": id, "status": bson.M{"$in": []models.Status{models.StatusClaimed, models.StatusSubmitted}}}

	matched, err := app.DB.UpdateOne(models.CollectionMintRequests, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrStaleStatus
	}
	return nil
}

// MarkFailed records a failed attempt on a claimed or submitted request. A
// retryable failure increments retry_count and requeues the request with
// backoff until max_retries, when it becomes terminally failed; a
// non-retryable failure goes terminal immediately. Terminal failure releases
// the dedup key by flipping active to false. Reports whether the request
// went terminal.
func MarkFailed(id primitive.ObjectID, retryable bool, cause error) (bool, error) {
	var request models.MintRequest
	err := app.DB.FindOne(models.CollectionMintRequests, bson.M{"_id": id}, &request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}

	if request.Status != models.StatusClaimed && request.Status != models.StatusSubmitted {
		return false, ErrStaleStatus
	}

	now := time.Now()
	set := bson.M{
		"claimed_by": "",
		"updated_at": now,
	}
	if cause != nil {
		set["error_message"] = cause.Error()
	}

	terminal := false
	if !retryable {
		terminal = true
	} else {
		newCount := request.RetryCount + 1
		set["retry_count"] = newCount
		if newCount >= request.MaxRetries {
			terminal = true
		} else {
			set["status"] = models.StatusPending
			set["not_before"] = now.Add(NextDelay(newCount))
		}
	}
	if terminal {
		set["status"] = models.StatusFailed
		set["active"] = false
	}

	filter := bson.M{"_id": id, "status": request.Status}

	matched, err := app.DB.UpdateOne(models.CollectionMintRequests, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	if matched == 0 {
		return false, ErrStaleStatus
	}

	if terminal {
		log.WithField("request_id", id.Hex()).WithError(cause).
			Warn("[QUEUE] Mint request terminally failed")
	}
	return terminal, nil
}

// SetAmount records an amount derived at settlement time, such as the
// on-chain balance a burn request settles for.
func SetAmount(id primitive.ObjectID, amount string) error {
	filter := bson.M{"_id": id, "status": models.StatusClaimed}
	update := bson.M{"$set": bson.M{
		"amount":     amount,
		"updated_at": time.Now(),
	}}

	matched, err := app.DB.UpdateOne(models.CollectionMintRequests, filter, update)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrStaleStatus
	}
	return nil
}

// ReleaseClaims returns a worker's unprocessed claims to pending without
// touching their retry counts. Used when a settlement cycle halts early.
func ReleaseClaims(workerID string) (int64, error) {
	filter := bson.M{
		"claimed_by": workerID,
		"status":     models.StatusClaimed,
	}
	update := bson.M{"$set": bson.M{
		"status":     models.StatusPending,
		"claimed_by": "",
		"updated_at": time.Now(),
	}}

	return app.DB.UpdateMany(models.CollectionMintRequests, filter, update)
}

// ReclaimExpired returns claimed requests whose lease ran out to pending.
// The retry count is untouched since an abandoned claim was never attempted
// on chain.
func ReclaimExpired(lease time.Duration) (int64, error) {
	cutoff := time.Now().Add(-lease)
	filter := bson.M{
		"status":     models.StatusClaimed,
		"claimed_at": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"status":     models.StatusPending,
		"claimed_by": "",
		"updated_at": time.Now(),
	}}

	reclaimed, err := app.DB.UpdateMany(models.CollectionMintRequests, filter, update)
	if err != nil {
		return 0, err
	}
	if reclaimed > 0 {
		metrics.ClaimReclaims.Add(float64(reclaimed))
		log.WithField("count", reclaimed).Warn("[QUEUE] Reclaimed expired claims")
	}
	return reclaimed, nil
}

// ReleaseChunk returns submitted requests of an unsent chunk to pending,
// clearing the recorded transaction. Used when chunk assembly aborts between
// recording intent and sending.
func ReleaseChunk(chunkID string) (int64, error) {
	filter := bson.M{
		"chunk_id": chunkID,
		"status":   models.StatusSubmitted,
	}
	update := bson.M{"$set": bson.M{
		"status":           models.StatusPending,
		"chunk_id":         "",
		"transaction_hash": "",
		"nonce":            "",
		"claimed_by":       "",
		"updated_at":       time.Now(),
	}}

	return app.DB.UpdateMany(models.CollectionMintRequests, filter, update)
}

// FindSubmitted returns all requests awaiting receipt confirmation.
func FindSubmitted() ([]models.MintRequest, error) {
	var requests []models.MintRequest
	err := app.DB.FindMany(models.CollectionMintRequests, bson.M{"status": models.StatusSubmitted}, &requests)
	return requests, err
}

// CountByStatus reports the queue depth per status and refreshes the depth
// gauge.
func CountByStatus() (map[models.Status]int64, error) {
	statuses := []models.Status{
		models.StatusPending,
		models.StatusClaimed,
		models.StatusSubmitted,
		models.StatusCompleted,
		models.StatusFailed,
	}

	counts := make(map[models.Status]int64, len(statuses))
	for _, status := range statuses {
		count, err := app.DB.CountDocuments(models.CollectionMintRequests, bson.M{"status": status})
		if err != nil {
			return nil, err
		}
		counts[status] = count
		metrics.QueueDepth.WithLabelValues(string(status)).Set(float64(count))
	}
	return counts, nil
}
