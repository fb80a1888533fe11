package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerPolicyEndpoints(rest *echo.Echo, h *handlers) {
	group := rest.Group("/policy")

	group.GET("/", h.getPolicy)
}

// returns the thresholds of both fans
func (h *handlers) getPolicy(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, h.loop.GetThresholds(), indentationChar)
}
