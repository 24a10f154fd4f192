package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/models"
	"github.com/HumansWindow/minting-service/queue"
	"github.com/HumansWindow/minting-service/settler"
)

var (
	queueEnqueue               = queue.Enqueue
	queueGet                   = queue.Get
	settlerTriggerProcessBatch = settler.TriggerProcessBatch
)

type createMintRequestParams struct {
	UserID        string        `json:"user_id"`
	WalletAddress string        `json:"wallet_address"`
	Kind          models.Kind   `json:"kind"`
	Amount        string        `json:"amount"`
	Proof         *models.Proof `json:"proof,omitempty"`
	DeviceID      string        `json:"device_id"`
	IPAddress     string        `json:"ip_address"`
}

type createMintRequestResponse struct {
	ID     string        `json:"id"`
	Status models.Status `json:"status"`
}

type duplicateMintRequestResponse struct {
	Error          string        `json:"error"`
	ExistingID     string        `json:"existing_id"`
	ExistingStatus models.Status `json:"existing_status"`
}

type mintRequestResponse struct {
	ID              string        `json:"id"`
	Status          models.Status `json:"status"`
	Kind            models.Kind   `json:"kind"`
	WalletAddress   string        `json:"wallet_address"`
	Amount          string        `json:"amount"`
	TransactionHash string        `json:"transaction_hash,omitempty"`
	ErrorMessage    string        `json:"error_message,omitempty"`
	RetryCount      int64         `json:"retry_count"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func newMintRequestResponse(request models.MintRequest) mintRequestResponse {
	return mintRequestResponse{
		ID:              request.Id.Hex(),
		Status:          request.Status,
		Kind:            request.Kind,
		WalletAddress:   request.WalletAddress,
		Amount:          request.Amount,
		TransactionHash: request.TransactionHash,
		ErrorMessage:    request.ErrorMessage,
		RetryCount:      request.RetryCount,
		CreatedAt:       request.CreatedAt,
		UpdatedAt:       request.UpdatedAt,
	}
}

// parseAmount converts a token amount such as "12.5" into its wei string.
// The queue stores integer wei, so anything below 1e-18 precision is
// rejected rather than rounded.
func parseAmount(raw string) (string, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q", raw)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("amount must be positive, got %q", raw)
	}
	wei := amount.Shift(18)
	if !wei.IsInteger() {
		return "", fmt.Errorf("amount %q has more than 18 decimal places", raw)
	}
	return wei.String(), nil
}

func handleCreateMintRequest(c echo.Context) error {
	var params createMintRequestParams
	if err := c.Bind(&params); err != nil {
		return newHTTPError(http.StatusBadRequest, "invalid request body")
	}

	request := &models.MintRequest{
		UserID:        params.UserID,
		WalletAddress: params.WalletAddress,
		Kind:          params.Kind,
		Proof:         params.Proof,
		DeviceID:      params.DeviceID,
		IPAddress:     params.IPAddress,
	}
	if request.IPAddress == "" {
		request.IPAddress = c.RealIP()
	}

	if params.Amount != "" {
		wei, err := parseAmount(params.Amount)
		if err != nil {
			return newHTTPError(http.StatusBadRequest, err.Error())
		}
		request.Amount = wei
	}

	enqueued, err := queueEnqueue(request)
	if err != nil {
		var dup *queue.ErrDuplicate
		if errors.As(err, &dup) {
			return c.JSON(http.StatusConflict, duplicateMintRequestResponse{
				Error:          "duplicate mint request",
				ExistingID:     dup.ExistingId.Hex(),
				ExistingStatus: dup.ExistingStatus,
			})
		}
		if errors.Is(err, queue.ErrInvalidRequest) {
			return newHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Errorf("[%s] Error enqueueing mint request: %s", APIServiceName, err.Error())
		return newHTTPError(http.StatusInternalServerError, "error enqueueing mint request")
	}

	return c.JSON(http.StatusCreated, createMintRequestResponse{
		ID:     enqueued.Id.Hex(),
		Status: enqueued.Status,
	})
}

func handleGetMintRequest(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return newHTTPError(http.StatusBadRequest, "invalid request id")
	}

	request, err := queueGet(id)
	if errors.Is(err, queue.ErrNotFound) {
		return newHTTPError(http.StatusNotFound, "mint request not found")
	}
	if err != nil {
		log.Errorf("[%s] Error fetching mint request: %s", APIServiceName, err.Error())
		return newHTTPError(http.StatusInternalServerError, "error fetching mint request")
	}

	return c.JSON(http.StatusOK, newMintRequestResponse(request))
}

func handleProcessBatch(c echo.Context) error {
	report, err := settlerTriggerProcessBatch()
	if errors.Is(err, settler.ErrSchedulerDisabled) {
		return newHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	if err != nil {
		log.Errorf("[%s] Error processing batch: %s", APIServiceName, err.Error())
		return newHTTPError(http.StatusInternalServerError, "error processing batch")
	}

	return c.JSON(http.StatusOK, report)
}

// handleHealth reports the newest health document posted by the engine, so
// load balancers and operators see what each service last synced.
func handleHealth(c echo.Context) error {
	var healths []models.Health
	if err := app.DB.FindMany(models.CollectionHealthChecks, bson.M{}, &healths); err != nil {
		log.Errorf("[%s] Error fetching health: %s", APIServiceName, err.Error())
		return newHTTPError(http.StatusInternalServerError, "error fetching health")
	}
	if len(healths) == 0 {
		return newHTTPError(http.StatusNotFound, "no health recorded yet")
	}

	latest := healths[0]
	for _, health := range healths[1:] {
		if health.UpdatedAt.After(latest.UpdatedAt) {
			latest = health
		}
	}

	return c.JSON(http.StatusOK, latest)
}
