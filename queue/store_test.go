package queue

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/app/mocks"
	"github.com/HumansWindow/minting-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetOutput(io.Discard)
	app.Config.Queue.MaxRetries = 3
	app.Config.Queue.BaseDelayMillis = 30000
	app.Config.Queue.MaxDelayMillis = 3600000
}

const testWalletAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func testPayoutRequest() *models.MintRequest {
	return &models.MintRequest{
		UserID:        "user-1",
		WalletAddress: testWalletAddress,
		Kind:          models.KindRewardPayout,
		Amount:        "1000000000000000000",
	}
}

func TestEnqueue(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		request := testPayoutRequest()
		dedupKey := DedupKey(testWalletAddress, models.KindRewardPayout, nil)

		mockDB.EXPECT().FindMany(models.CollectionMintRequests, bson.M{"dedup_key": dedupKey, "active": false}, mock.Anything).Return(nil)

		insertedId := primitive.NewObjectID()
		call := mockDB.EXPECT().InsertOne(models.CollectionMintRequests, mock.Anything)
		call.Run(func(_ string, data interface{}) {
			inserted := data.(*models.MintRequest)
			assert.Equal(t, models.StatusPending, inserted.Status)
			assert.Equal(t, dedupKey, inserted.DedupKey)
			assert.True(t, inserted.Active)
			assert.Equal(t, testWalletAddress, inserted.WalletAddress)
			assert.Equal(t, models.PriorityRewardPayout, inserted.Priority)
			assert.Equal(t, models.DefaultMaxRetries, inserted.MaxRetries)
			assert.Nil(t, inserted.Supersedes)
		})
		call.Return(insertedId, nil)

		enqueued, err := Enqueue(request)

		assert.Nil(t, err)
		assert.NotNil(t, enqueued.Id)
		assert.Equal(t, insertedId, *enqueued.Id)
	})

	t.Run("Checksums Wallet Address", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		request := testPayoutRequest()
		request.WalletAddress = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"

		mockDB.EXPECT().FindMany(models.CollectionMintRequests, mock.Anything, mock.Anything).Return(nil)

		call := mockDB.EXPECT().InsertOne(models.CollectionMintRequests, mock.Anything)
		call.Run(func(_ string, data interface{}) {
			inserted := data.(*models.MintRequest)
			assert.Equal(t, testWalletAddress, inserted.WalletAddress)
		})
		call.Return(primitive.NewObjectID(), nil)

		_, err := Enqueue(request)

		assert.Nil(t, err)
	})

	t.Run("Links Superseded Request", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		request := testPayoutRequest()

		olderId := primitive.NewObjectID()
		newerId := primitive.NewObjectID()
		findCall := mockDB.EXPECT().FindMany(models.CollectionMintRequests, mock.Anything, mock.Anything)
		findCall.Run(func(_ string, _ interface{}, result interface{}) {
			priors := result.(*[]models.MintRequest)
			*priors = []models.MintRequest{
				{Id: &olderId, Active: false, CreatedAt: time.Now().Add(-2 * time.Hour)},
				{Id: &newerId, Active: false, CreatedAt: time.Now().Add(-time.Hour)},
			}
		})
		findCall.Return(nil)

		call := mockDB.EXPECT().InsertOne(models.CollectionMintRequests, mock.Anything)
		call.Run(func(_ string, data interface{}) {
			inserted := data.(*models.MintRequest)
			assert.NotNil(t, inserted.Supersedes)
			assert.Equal(t, newerId, *inserted.Supersedes)
		})
		call.Return(primitive.NewObjectID(), nil)

		_, err := Enqueue(request)

		assert.Nil(t, err)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		request := testPayoutRequest()
		dedupKey := DedupKey(testWalletAddress, models.KindRewardPayout, nil)

		mockDB.EXPECT().FindMany(models.CollectionMintRequests, mock.Anything, mock.Anything).Return(nil)

		dupErr := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
		mockDB.EXPECT().InsertOne(models.CollectionMintRequests, mock.Anything).Return(primitive.NilObjectID, dupErr)

		existingId := primitive.NewObjectID()
		findCall := mockDB.EXPECT().FindOne(models.CollectionMintRequests, bson.M{"dedup_key": dedupKey, "active": true}, mock.Anything)
		findCall.Run(func(_ string, _ interface{}, result interface{}) {
			existing := result.(*models.MintRequest)
			existing.Id = &existingId
			existing.Status = models.StatusCompleted
		})
		findCall.Return(nil)

		_, err := Enqueue(request)

		var duplicate *ErrDuplicate
		assert.True(t, errors.As(err, &duplicate))
		assert.Equal(t, existingId, duplicate.ExistingId)
		assert.Equal(t, models.StatusCompleted, duplicate.ExistingStatus)
	})

	t.Run("Invalid Wallet Address", func(t *testing.T) {
		request := testPayoutRequest()
		request.WalletAddress = "not-an-address"

		_, err := Enqueue(request)

		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("Invalid Kind", func(t *testing.T) {
		request := testPayoutRequest()
		request.Kind = "gift_mint"

		_, err := Enqueue(request)

		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		for _, amount := range []string{"", "0", "-5", "1.5", "1e18", "lots"} {
			request := testPayoutRequest()
			request.Amount = amount

			_, err := Enqueue(request)

			assert.True(t, errors.Is(err, ErrInvalidRequest), "amount %q should be rejected", amount)
		}
	})

	t.Run("Burn With Supplied Amount", func(t *testing.T) {
		request := testPayoutRequest()
		request.Kind = models.KindBatchBurn
		request.Amount = "100"

		_, err := Enqueue(request)

		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})

	t.Run("Mint Without Proof", func(t *testing.T) {
		request := testPayoutRequest()
		request.Kind = models.KindFirstTimeMint

		_, err := Enqueue(request)

		assert.True(t, errors.Is(err, ErrInvalidRequest))
	})
}

func TestGet(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		findCall := mockDB.EXPECT().FindOne(models.CollectionMintRequests, bson.M{"_id": id}, mock.Anything)
		findCall.Run(func(_ string, _ interface{}, result interface{}) {
			request := result.(*models.MintRequest)
			request.Id = &id
			request.Status = models.StatusPending
		})
		findCall.Return(nil)

		request, err := Get(id)

		assert.Nil(t, err)
		assert.Equal(t, id, *request.Id)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		mockDB.EXPECT().FindOne(models.CollectionMintRequests, bson.M{"_id": id}, mock.Anything).Return(mongo.ErrNoDocuments)

		_, err := Get(id)

		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestClaimBatch(t *testing.T) {
	t.Run("Claims Until Queue Empty", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		firstId := primitive.NewObjectID()
		firstCall := mockDB.EXPECT().FindOneAndUpdate(models.CollectionMintRequests, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		firstCall.Run(func(_ string, filter interface{}, update interface{}, sort interface{}, result interface{}) {
			filterArg := filter.(bson.M)
			assert.Equal(t, models.StatusPending, filterArg["status"])
			assert.Contains(t, filterArg, "not_before")

			updateArg := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, models.StatusClaimed, updateArg["status"])
			assert.Equal(t, "worker-1", updateArg["claimed_by"])

			sortArg := sort.(bson.D)
			assert.Equal(t, "priority", sortArg[0].Key)
			assert.Equal(t, "created_at", sortArg[1].Key)

			request := result.(*models.MintRequest)
			request.Id = &firstId
			request.Status = models.StatusClaimed
		})
		firstCall.Return(nil).Once()

		mockDB.EXPECT().FindOneAndUpdate(models.CollectionMintRequests, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(mongo.ErrNoDocuments).Once()

		claimed, err := ClaimBatch("worker-1", 5)

		assert.Nil(t, err)
		assert.Equal(t, 1, len(claimed))
		assert.Equal(t, firstId, *claimed[0].Id)
	})

	t.Run("Stops At Limit", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		call := mockDB.EXPECT().FindOneAndUpdate(models.CollectionMintRequests, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		call.Run(func(_ string, _ interface{}, _ interface{}, _ interface{}, result interface{}) {
			request := result.(*models.MintRequest)
			request.Id = &id
		})
		call.Return(nil).Once()

		claimed, err := ClaimBatch("worker-1", 1)

		assert.Nil(t, err)
		assert.Equal(t, 1, len(claimed))
	})

	t.Run("With Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		mockDB.EXPECT().FindOneAndUpdate(models.CollectionMintRequests, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("error")).Once()

		claimed, err := ClaimBatch("worker-1", 5)

		assert.NotNil(t, err)
		assert.Equal(t, 0, len(claimed))
	})
}

func TestMarkSubmitted(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		filter := bson.M{"_id": id, "status": bson.M{"$in": []models.Status{models.StatusClaimed, models.StatusSubmitted}}}
		call := mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, filter, mock.Anything)
		call.Run(func(_ string, _ interface{}, update interface{}) {
			set := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, models.StatusSubmitted, set["status"])
			assert.Equal(t, "chunk-1", set["chunk_id"])
			assert.Equal(t, "0xhash", set["transaction_hash"])
			assert.Equal(t, "7", set["nonce"])
		})
		call.Return(1, nil)

		err := MarkSubmitted(id, "chunk-1", "0xhash", "7")

		assert.Nil(t, err)
	})

	t.Run("Stale Claim", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, mock.Anything, mock.Anything).Return(0, nil)

		err := MarkSubmitted(id, "chunk-1", "0xhash", "7")

		assert.True(t, errors.Is(err, ErrStaleStatus))
	})
}

func TestMarkCompleted(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		filter := bson.M{"_id": id, "status": bson.M{"$in": []models.Status{models.StatusClaimed, models.StatusSubmitted}}}
		call := mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, filter, mock.Anything)
		call.Run(func(_ string, _ interface{}, update interface{}) {
			set := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, models.StatusCompleted, set["status"])
			assert.Equal(t, "0xhash", set["transaction_hash"])
			assert.NotContains(t, set, "active")
		})
		call.Return(1, nil)

		err := MarkCompleted(id, "0xhash")

		assert.Nil(t, err)
	})

	t.Run("Without Transaction Hash", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		call := mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, mock.Anything, mock.Anything)
		call.Run(func(_ string, _ interface{}, update interface{}) {
			set := update.(bson.M)["$set"].(bson.M)
			assert.NotContains(t, set, "transaction_hash")
		})
		call.Return(1, nil)

		err := MarkCompleted(id, "")

		assert.Nil(t, err)
	})

	t.Run("Stale Status", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, mock.Anything, mock.Anything).Return(0, nil)

		err := MarkCompleted(id, "0xhash")

		assert.True(t, errors.Is(err, ErrStaleStatus))
	})
}

func TestMarkFailed(t *testing.T) {
	loadRequest := func(mockDB *mocks.MockDatabase, id primitive.ObjectID, status models.Status, retryCount int64) {
		findCall := mockDB.EXPECT().FindOne(models.CollectionMintRequests, bson.M{"_id": id}, mock.Anything)
		findCall.Run(func(_ string, _ interface{}, result interface{}) {
			request := result.(*models.MintRequest)
			request.Id = &id
			request.Status = status
			request.RetryCount = retryCount
			request.MaxRetries = 3
		})
		findCall.Return(nil)
	}

	t.Run("Retryable Requeues With Backoff", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		loadRequest(mockDB, id, models.StatusClaimed, 0)

		before := time.Now()
		call := mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, bson.M{"_id": id, "status": models.StatusClaimed}, mock.Anything)
		call.Run(func(_ string, _ interface{}, update interface{}) {
			set := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, models.StatusPending, set["status"])
			assert.Equal(t, int64(1), set["retry_count"])
			assert.Equal(t, "boom", set["error_message"])
			assert.NotContains(t, set, "active")

			// first failure delays by base * 2
			notBefore := set["not_before"].(time.Time)
			assert.True(t, notBefore.After(before.Add(59*time.Second)))
			assert.True(t, notBefore.Before(before.Add(61*time.Second)))
		})
		call.Return(1, nil)

		terminal, err := MarkFailed(id, true, errors.New("boom"))

		assert.Nil(t, err)
		assert.False(t, terminal)
	})

	t.Run("Retryable At Max Retries Goes Terminal", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		loadRequest(mockDB, id, models.StatusSubmitted, 2)

		call := mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, bson.M{"_id": id, "status": models.StatusSubmitted}, mock.Anything)
		call.Run(func(_ string, _ interface{}, update interface{}) {
			set := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, models.StatusFailed, set["status"])
			assert.Equal(t, int64(3), set["retry_count"])
			assert.Equal(t, false, set["active"])
			assert.NotContains(t, set, "not_before")
		})
		call.Return(1, nil)

		terminal, err := MarkFailed(id, true, errors.New("still broken"))

		assert.Nil(t, err)
		assert.True(t, terminal)
	})

	t.Run("Non Retryable Goes Terminal Immediately", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		loadRequest(mockDB, id, models.StatusClaimed, 0)

		call := mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, bson.M{"_id": id, "status": models.StatusClaimed}, mock.Anything)
		call.Run(func(_ string, _ interface{}, update interface{}) {
			set := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, models.StatusFailed, set["status"])
			assert.Equal(t, false, set["active"])
			assert.NotContains(t, set, "retry_count")
		})
		call.Return(1, nil)

		terminal, err := MarkFailed(id, false, errors.New("reverted"))

		assert.Nil(t, err)
		assert.True(t, terminal)
	})

	t.Run("Stale Status", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		loadRequest(mockDB, id, models.StatusCompleted, 0)

		_, err := MarkFailed(id, true, errors.New("boom"))

		assert.True(t, errors.Is(err, ErrStaleStatus))
	})

	t.Run("Not Found", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		mockDB.EXPECT().FindOne(models.CollectionMintRequests, bson.M{"_id": id}, mock.Anything).Return(mongo.ErrNoDocuments)

		_, err := MarkFailed(id, true, errors.New("boom"))

		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestSetAmount(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		call := mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, bson.M{"_id": id, "status": models.StatusClaimed}, mock.Anything)
		call.Run(func(_ string, _ interface{}, update interface{}) {
			set := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, "250", set["amount"])
		})
		call.Return(1, nil)

		err := SetAmount(id, "250")

		assert.Nil(t, err)
	})

	t.Run("Stale Claim", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		id := primitive.NewObjectID()
		mockDB.EXPECT().UpdateOne(models.CollectionMintRequests, mock.Anything, mock.Anything).Return(0, nil)

		err := SetAmount(id, "250")

		assert.True(t, errors.Is(err, ErrStaleStatus))
	})
}

func TestReleaseClaims(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	app.DB = mockDB

	filter := bson.M{"claimed_by": "worker-1", "status": models.StatusClaimed}
	call := mockDB.EXPECT().UpdateMany(models.CollectionMintRequests, filter, mock.Anything)
	call.Run(func(_ string, _ interface{}, update interface{}) {
		set := update.(bson.M)["$set"].(bson.M)
		assert.Equal(t, models.StatusPending, set["status"])
		assert.Equal(t, "", set["claimed_by"])
		assert.NotContains(t, set, "retry_count")
	})
	call.Return(4, nil)

	released, err := ReleaseClaims("worker-1")

	assert.Nil(t, err)
	assert.Equal(t, int64(4), released)
}

func TestReclaimExpired(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		call := mockDB.EXPECT().UpdateMany(models.CollectionMintRequests, mock.Anything, mock.Anything)
		call.Run(func(_ string, filter interface{}, update interface{}) {
			filterArg := filter.(bson.M)
			assert.Equal(t, models.StatusClaimed, filterArg["status"])
			assert.Contains(t, filterArg, "claimed_at")

			set := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, models.StatusPending, set["status"])
			assert.NotContains(t, set, "retry_count")
		})
		call.Return(2, nil)

		reclaimed, err := ReclaimExpired(2 * time.Minute)

		assert.Nil(t, err)
		assert.Equal(t, int64(2), reclaimed)
	})

	t.Run("With Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		mockDB.EXPECT().UpdateMany(models.CollectionMintRequests, mock.Anything, mock.Anything).Return(0, errors.New("error"))

		_, err := ReclaimExpired(2 * time.Minute)

		assert.NotNil(t, err)
	})
}

func TestReleaseChunk(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	app.DB = mockDB

	filter := bson.M{"chunk_id": "chunk-1", "status": models.StatusSubmitted}
	call := mockDB.EXPECT().UpdateMany(models.CollectionMintRequests, filter, mock.Anything)
	call.Run(func(_ string, _ interface{}, update interface{}) {
		set := update.(bson.M)["$set"].(bson.M)
		assert.Equal(t, models.StatusPending, set["status"])
		assert.Equal(t, "", set["chunk_id"])
		assert.Equal(t, "", set["transaction_hash"])
	})
	call.Return(3, nil)

	released, err := ReleaseChunk("chunk-1")

	assert.Nil(t, err)
	assert.Equal(t, int64(3), released)
}

func TestFindSubmitted(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	app.DB = mockDB

	id := primitive.NewObjectID()
	call := mockDB.EXPECT().FindMany(models.CollectionMintRequests, bson.M{"status": models.StatusSubmitted}, mock.Anything)
	call.Run(func(_ string, _ interface{}, result interface{}) {
		requests := result.(*[]models.MintRequest)
		*requests = []models.MintRequest{{Id: &id, Status: models.StatusSubmitted}}
	})
	call.Return(nil)

	requests, err := FindSubmitted()

	assert.Nil(t, err)
	assert.Equal(t, 1, len(requests))
	assert.Equal(t, id, *requests[0].Id)
}

func TestCountByStatus(t *testing.T) {
	mockDB := mocks.NewMockDatabase(t)
	app.DB = mockDB

	mockDB.EXPECT().CountDocuments(models.CollectionMintRequests, bson.M{"status": models.StatusPending}).Return(4, nil)
	mockDB.EXPECT().CountDocuments(models.CollectionMintRequests, bson.M{"status": models.StatusClaimed}).Return(1, nil)
	mockDB.EXPECT().CountDocuments(models.CollectionMintRequests, bson.M{"status": models.StatusSubmitted}).Return(2, nil)
	mockDB.EXPECT().CountDocuments(models.CollectionMintRequests, bson.M{"status": models.StatusCompleted}).Return(10, nil)
	mockDB.EXPECT().CountDocuments(models.CollectionMintRequests, bson.M{"status": models.StatusFailed}).Return(0, nil)

	counts, err := CountByStatus()

	assert.Nil(t, err)
	assert.Equal(t, int64(4), counts[models.StatusPending])
	assert.Equal(t, int64(2), counts[models.StatusSubmitted])
	assert.Equal(t, int64(10), counts[models.StatusCompleted])
}
