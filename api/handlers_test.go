package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/app/mocks"
	"github.com/HumansWindow/minting-service/models"
	"github.com/HumansWindow/minting-service/queue"
	"github.com/HumansWindow/minting-service/settler"
)

func init() {
	log.SetOutput(io.Discard)
}

const testWalletAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

func testContext(method string, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestParseAmount(t *testing.T) {
	t.Run("Whole Tokens", func(t *testing.T) {
		wei, err := parseAmount("5")
		assert.Nil(t, err)
		assert.Equal(t, "5000000000000000000", wei)
	})

	t.Run("Fractional Tokens", func(t *testing.T) {
		wei, err := parseAmount("2.5")
		assert.Nil(t, err)
		assert.Equal(t, "2500000000000000000", wei)
	})

	t.Run("Smallest Unit", func(t *testing.T) {
		wei, err := parseAmount("0.000000000000000001")
		assert.Nil(t, err)
		assert.Equal(t, "1", wei)
	})

	t.Run("Below Wei Precision", func(t *testing.T) {
		_, err := parseAmount("0.0000000000000000001")
		assert.NotNil(t, err)
	})

	t.Run("Zero", func(t *testing.T) {
		_, err := parseAmount("0")
		assert.NotNil(t, err)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := parseAmount("-1")
		assert.NotNil(t, err)
	})

	t.Run("Not A Number", func(t *testing.T) {
		_, err := parseAmount("lots")
		assert.NotNil(t, err)
	})
}

func TestHandleCreateMintRequest(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		defer func() { queueEnqueue = queue.Enqueue }()

		insertedId := primitive.NewObjectID()
		queueEnqueue = func(request *models.MintRequest) (*models.MintRequest, error) {
			assert.Equal(t, "user-1", request.UserID)
			assert.Equal(t, testWalletAddress, request.WalletAddress)
			assert.Equal(t, models.KindRewardPayout, request.Kind)
			assert.Equal(t, "2500000000000000000", request.Amount)
			request.Id = &insertedId
			request.Status = models.StatusPending
			return request, nil
		}

		body := `{"user_id":"user-1","wallet_address":"` + testWalletAddress + `","kind":"reward_payout","amount":"2.5"}`
		c, rec := testContext(http.MethodPost, "/v1/mint-requests", body)

		err := handleCreateMintRequest(c)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var response createMintRequestResponse
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, insertedId.Hex(), response.ID)
		assert.Equal(t, models.StatusPending, response.Status)
	})

	t.Run("Defaults IP Address To Caller", func(t *testing.T) {
		defer func() { queueEnqueue = queue.Enqueue }()

		queueEnqueue = func(request *models.MintRequest) (*models.MintRequest, error) {
			assert.NotEmpty(t, request.IPAddress)
			insertedId := primitive.NewObjectID()
			request.Id = &insertedId
			return request, nil
		}

		body := `{"user_id":"user-1","wallet_address":"` + testWalletAddress + `","kind":"reward_payout","amount":"1"}`
		c, rec := testContext(http.MethodPost, "/v1/mint-requests", body)

		err := handleCreateMintRequest(c)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		c, _ := testContext(http.MethodPost, "/v1/mint-requests", `{"user_id":`)

		err := handleCreateMintRequest(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusBadRequest, herr.Code)
	})

	t.Run("Invalid Amount", func(t *testing.T) {
		body := `{"user_id":"user-1","wallet_address":"` + testWalletAddress + `","kind":"reward_payout","amount":"-3"}`
		c, _ := testContext(http.MethodPost, "/v1/mint-requests", body)

		err := handleCreateMintRequest(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusBadRequest, herr.Code)
	})

	t.Run("Invalid Request", func(t *testing.T) {
		defer func() { queueEnqueue = queue.Enqueue }()

		queueEnqueue = func(request *models.MintRequest) (*models.MintRequest, error) {
			return nil, queue.ErrInvalidRequest
		}

		body := `{"user_id":"user-1","wallet_address":"` + testWalletAddress + `","kind":"reward_payout","amount":"1"}`
		c, _ := testContext(http.MethodPost, "/v1/mint-requests", body)

		err := handleCreateMintRequest(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusBadRequest, herr.Code)
	})

	t.Run("Duplicate", func(t *testing.T) {
		defer func() { queueEnqueue = queue.Enqueue }()

		existingId := primitive.NewObjectID()
		queueEnqueue = func(request *models.MintRequest) (*models.MintRequest, error) {
			return nil, &queue.ErrDuplicate{ExistingId: existingId, ExistingStatus: models.StatusSubmitted}
		}

		body := `{"user_id":"user-1","wallet_address":"` + testWalletAddress + `","kind":"reward_payout","amount":"1"}`
		c, rec := testContext(http.MethodPost, "/v1/mint-requests", body)

		err := handleCreateMintRequest(c)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusConflict, rec.Code)

		var response duplicateMintRequestResponse
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, existingId.Hex(), response.ExistingID)
		assert.Equal(t, models.StatusSubmitted, response.ExistingStatus)
	})

	t.Run("With Error", func(t *testing.T) {
		defer func() { queueEnqueue = queue.Enqueue }()

		queueEnqueue = func(request *models.MintRequest) (*models.MintRequest, error) {
			return nil, assert.AnError
		}

		body := `{"user_id":"user-1","wallet_address":"` + testWalletAddress + `","kind":"reward_payout","amount":"1"}`
		c, _ := testContext(http.MethodPost, "/v1/mint-requests", body)

		err := handleCreateMintRequest(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusInternalServerError, herr.Code)
	})
}

func TestHandleGetMintRequest(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		defer func() { queueGet = queue.Get }()

		requestId := primitive.NewObjectID()
		created := time.Now().Add(-time.Hour)
		queueGet = func(id primitive.ObjectID) (models.MintRequest, error) {
			assert.Equal(t, requestId, id)
			return models.MintRequest{
				Id:              &requestId,
				Status:          models.StatusCompleted,
				Kind:            models.KindFirstTimeMint,
				WalletAddress:   testWalletAddress,
				Amount:          "1000000000000000000",
				TransactionHash: "0xabc",
				RetryCount:      1,
				CreatedAt:       created,
				UpdatedAt:       created.Add(time.Minute),
			}, nil
		}

		c, rec := testContext(http.MethodGet, "/v1/mint-requests/"+requestId.Hex(), "")
		c.SetParamNames("id")
		c.SetParamValues(requestId.Hex())

		err := handleGetMintRequest(c)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var response mintRequestResponse
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, requestId.Hex(), response.ID)
		assert.Equal(t, models.StatusCompleted, response.Status)
		assert.Equal(t, "0xabc", response.TransactionHash)
	})

	t.Run("Invalid Id", func(t *testing.T) {
		c, _ := testContext(http.MethodGet, "/v1/mint-requests/nope", "")
		c.SetParamNames("id")
		c.SetParamValues("nope")

		err := handleGetMintRequest(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusBadRequest, herr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		defer func() { queueGet = queue.Get }()

		queueGet = func(id primitive.ObjectID) (models.MintRequest, error) {
			return models.MintRequest{}, queue.ErrNotFound
		}

		requestId := primitive.NewObjectID()
		c, _ := testContext(http.MethodGet, "/v1/mint-requests/"+requestId.Hex(), "")
		c.SetParamNames("id")
		c.SetParamValues(requestId.Hex())

		err := handleGetMintRequest(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusNotFound, herr.Code)
	})

	t.Run("With Error", func(t *testing.T) {
		defer func() { queueGet = queue.Get }()

		queueGet = func(id primitive.ObjectID) (models.MintRequest, error) {
			return models.MintRequest{}, assert.AnError
		}

		requestId := primitive.NewObjectID()
		c, _ := testContext(http.MethodGet, "/v1/mint-requests/"+requestId.Hex(), "")
		c.SetParamNames("id")
		c.SetParamValues(requestId.Hex())

		err := handleGetMintRequest(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusInternalServerError, herr.Code)
	})
}

func TestHandleProcessBatch(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		defer func() { settlerTriggerProcessBatch = settler.TriggerProcessBatch }()

		settlerTriggerProcessBatch = func() (models.BatchReport, error) {
			return models.BatchReport{Processed: 4, Completed: 3, Failed: 1}, nil
		}

		c, rec := testContext(http.MethodPost, "/v1/admin/process-batch", "")

		err := handleProcessBatch(c)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var report models.BatchReport
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, int64(4), report.Processed)
		assert.Equal(t, int64(3), report.Completed)
		assert.Equal(t, int64(1), report.Failed)
	})

	t.Run("Scheduler Disabled", func(t *testing.T) {
		defer func() { settlerTriggerProcessBatch = settler.TriggerProcessBatch }()

		settlerTriggerProcessBatch = func() (models.BatchReport, error) {
			return models.BatchReport{}, settler.ErrSchedulerDisabled
		}

		c, _ := testContext(http.MethodPost, "/v1/admin/process-batch", "")

		err := handleProcessBatch(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusServiceUnavailable, herr.Code)
	})

	t.Run("With Error", func(t *testing.T) {
		defer func() { settlerTriggerProcessBatch = settler.TriggerProcessBatch }()

		settlerTriggerProcessBatch = func() (models.BatchReport, error) {
			return models.BatchReport{}, assert.AnError
		}

		c, _ := testContext(http.MethodPost, "/v1/admin/process-batch", "")

		err := handleProcessBatch(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusInternalServerError, herr.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("No Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		older := models.Health{InstanceID: "minting-engine-aaaa", UpdatedAt: time.Now().Add(-time.Hour)}
		newer := models.Health{InstanceID: "minting-engine-bbbb", Healthy: true, UpdatedAt: time.Now()}
		call := mockDB.EXPECT().FindMany(models.CollectionHealthChecks, mock.Anything, mock.Anything)
		call.Run(func(_ string, _ interface{}, result interface{}) {
			healths := result.(*[]models.Health)
			*healths = []models.Health{older, newer}
		})
		call.Return(nil)

		c, rec := testContext(http.MethodGet, "/health", "")

		err := handleHealth(c)

		assert.Nil(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var response models.Health
		assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "minting-engine-bbbb", response.InstanceID)
		assert.True(t, response.Healthy)
	})

	t.Run("No Health Recorded", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		mockDB.EXPECT().FindMany(models.CollectionHealthChecks, mock.Anything, mock.Anything).Return(nil)

		c, _ := testContext(http.MethodGet, "/health", "")

		err := handleHealth(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusNotFound, herr.Code)
	})

	t.Run("With Error", func(t *testing.T) {
		mockDB := mocks.NewMockDatabase(t)
		app.DB = mockDB

		mockDB.EXPECT().FindMany(models.CollectionHealthChecks, mock.Anything, mock.Anything).Return(assert.AnError)

		c, _ := testContext(http.MethodGet, "/health", "")

		err := handleHealth(c)

		var herr *httpError
		assert.ErrorAs(t, err, &herr)
		assert.Equal(t, http.StatusInternalServerError, herr.Code)
	})
}
