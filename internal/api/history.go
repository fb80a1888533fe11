package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/i8kfans/internal/persistence"
)

func registerHistoryEndpoints(rest *echo.Echo, h *handlers) {
	group := rest.Group("/history")

	group.GET("/", h.getHistory)
}

// returns the most recent actuations, newest first
func (h *handlers) getHistory(c echo.Context) error {
	limit := defaultHistoryLimit
	if value := c.QueryParam(queryParamLimit); len(value) > 0 {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return returnBadRequest(c, "limit has to be a positive number")
		}
		limit = parsed
	}

	if h.persistence == nil {
		return c.JSONPretty(http.StatusOK, []persistence.ActuationRecord{}, indentationChar)
	}

	records, err := h.persistence.LoadActuations(limit)
	if err != nil {
		return returnError(c, err)
	}
	if records == nil {
		records = []persistence.ActuationRecord{}
	}
	return c.JSONPretty(http.StatusOK, records, indentationChar)
}
