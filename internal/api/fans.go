package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/policy"
)

type fansResponse struct {
	Time     time.Time                  `json:"time"`
	Actuated bool                       `json:"actuated"`
	Fans     map[string]policy.FanState `json:"fans"`
}

func registerFanEndpoints(rest *echo.Echo, h *handlers) {
	group := rest.Group("/fans")

	group.GET("/", h.getFans)
}

// returns the state of both fans as seen in the last control cycle
func (h *handlers) getFans(c echo.Context) error {
	snapshot := h.loop.GetSnapshot()
	if snapshot.IsEmpty() {
		return c.JSONPretty(http.StatusServiceUnavailable, &Result{
			Name:    "Not ready",
			Message: "No control cycle has completed yet",
		}, indentationChar)
	}

	return c.JSONPretty(http.StatusOK, fansResponse{
		Time:     snapshot.Time,
		Actuated: snapshot.Actuated,
		Fans: map[string]policy.FanState{
			configuration.FanCpu: snapshot.Decision.Cpu,
			configuration.FanGpu: snapshot.Decision.Gpu,
		},
	}, indentationChar)
}
