package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/i8kfans/internal/controller"
	"github.com/markusressel/i8kfans/internal/persistence"
	"github.com/markusressel/i8kfans/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	queryParamLimit = "limit"
	indentationChar = "  "

	defaultHistoryLimit = 50
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

type handlers struct {
	loop        controller.ControlLoop
	persistence persistence.Persistence
}

// CreateRestService creates the REST API serving the state of the control loop.
// When registerer is not nil, request metrics are registered with it and served on /metrics.
func CreateRestService(loop controller.ControlLoop, pers persistence.Persistence, registerer prometheus.Registerer) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())

	if registerer != nil {
		metrics, err := echoprometheus.MiddlewareConfig{
			Namespace:  "i8kfans",
			Subsystem:  "api",
			Registerer: registerer,
		}.ToMiddleware()
		if err != nil {
			ui.Warning("Unable to register API metrics: %v", err)
		} else {
			echoRest.Use(metrics)
		}
		if gatherer, ok := registerer.(prometheus.Gatherer); ok {
			echoRest.GET("/metrics/", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
		}
	}

	h := &handlers{
		loop:        loop,
		persistence: pers,
	}

	echoRest.GET("/alive/", isAlive)

	registerFanEndpoints(echoRest, h)
	registerSensorEndpoints(echoRest)
	registerPolicyEndpoints(echoRest, h)
	registerHistoryEndpoints(echoRest, h)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, message string) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad request",
		Message: message,
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
