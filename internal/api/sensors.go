package api

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/sensors"
	"github.com/qdm12/reprint"
)

type sensorResponse struct {
	ID     string                     `json:"id"`
	Config configuration.SensorConfig `json:"config"`
	Stats  sensors.Stats              `json:"stats"`
}

func registerSensorEndpoints(rest *echo.Echo) {
	group := rest.Group("/sensors")

	group.GET("/", getSensors)
	group.GET("/:"+urlParamId+"/", getSensor)
}

func newSensorResponse(sensor sensors.Sensor) sensorResponse {
	// the config holds pointers into the live configuration
	config := reprint.This(sensor.GetConfig()).(configuration.SensorConfig)
	return sensorResponse{
		ID:     sensor.GetId(),
		Config: config,
		Stats:  sensor.GetStats(),
	}
}

func getSensors(c echo.Context) error {
	var data []sensorResponse
	for _, sensor := range sensors.SensorMap.Items() {
		data = append(data, newSensorResponse(sensor))
	}
	sort.Slice(data, func(i, j int) bool {
		return data[i].ID < data[j].ID
	})
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getSensor(c echo.Context) error {
	id := c.Param(urlParamId)

	sensor, exists := sensors.SensorMap.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, newSensorResponse(sensor), indentationChar)
	}
}
