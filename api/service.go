package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/HumansWindow/minting-service/app"
	"github.com/HumansWindow/minting-service/models"
)

const (
	APIServiceName = "API SERVER"
)

// httpError is returned by handlers that want a specific status code and a
// stable message instead of a bare 500.
type httpError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
}

func (e *httpError) Error() string {
	return e.Message
}

func newHTTPError(code int, message string) *httpError {
	return &httpError{Code: code, Message: message}
}

// httpErrorHandler renders handler errors as JSON. Handlers return *httpError
// for expected failures; anything else becomes a 500 with the error text.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var herr *httpError
	if errors.As(err, &herr) {
		log.Debug("[API SERVER] Handler error: ", herr.Message)
		_ = c.JSON(herr.Code, herr)
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		_ = c.JSON(echoErr.Code, map[string]interface{}{
			"error": fmt.Sprintf("%v", echoErr.Message),
		})
		return
	}

	log.Error("[API SERVER] Handler error: ", err)
	_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": err.Error(),
	})
}

// adminAuth guards operator endpoints with the configured bearer token. With
// no token configured the endpoints stay open, for deployments that fence the
// port off at the network layer instead.
func adminAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := app.Config.API.AdminToken
		if token == "" {
			return next(c)
		}

		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		if auth == "" {
			return newHTTPError(http.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.Split(auth, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return newHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}

		if parts[1] != token {
			return newHTTPError(http.StatusUnauthorized, "invalid admin token")
		}

		return next(c)
	}
}

// APIService runs the HTTP surface of the engine: enqueue and status
// endpoints for callers, a manual settlement trigger for operators, and the
// health and metrics endpoints.
type APIService struct {
	e  *echo.Echo
	wg *sync.WaitGroup

	healthMu sync.RWMutex
	healthy  bool
}

func (x *APIService) Start() {
	x.setHealthy(true)

	addr := fmt.Sprintf(":%d", app.Config.API.Port)
	log.Infof("[%s] Service started, listening on %s", APIServiceName, addr)

	if err := x.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("[%s] Server stopped with error: %s", APIServiceName, err.Error())
	}

	x.setHealthy(false)
	log.Infof("[%s] Service stopped", APIServiceName)
	x.wg.Done()
}

func (x *APIService) Stop() {
	log.Debugf("[%s] Stopping service", APIServiceName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := x.e.Shutdown(ctx); err != nil {
		log.Errorf("[%s] Error shutting down server: %s", APIServiceName, err.Error())
	}
}

func (x *APIService) setHealthy(healthy bool) {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()
	x.healthy = healthy
}

func (x *APIService) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	now := time.Now()
	return models.ServiceHealth{
		Name:         APIServiceName,
		Healthy:      x.healthy,
		LastSyncTime: now,
		NextSyncTime: now,
	}
}

// NewRouter builds the echo instance with all routes registered. Split from
// NewAPIService so tests can drive routes without binding a port.
func NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler
	e.Use(middleware.Recover())

	e.GET("/health", handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")
	v1.POST("/mint-requests", handleCreateMintRequest)
	v1.GET("/mint-requests/:id", handleGetMintRequest)

	admin := v1.Group("/admin", adminAuth)
	admin.POST("/process-batch", handleProcessBatch)

	return e
}

func NewAPIService(wg *sync.WaitGroup, health models.ServiceHealth) app.Service {
	if !app.Config.API.Enabled {
		log.Debugf("[%s] Disabled", APIServiceName)
		return app.NewEmptyService(wg)
	}

	log.Debugf("[%s] Initializing", APIServiceName)

	x := &APIService{
		e:  NewRouter(),
		wg: wg,
	}

	log.Infof("[%s] Initialized", APIServiceName)

	return x
}
