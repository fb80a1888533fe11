package statistics

import (
	"github.com/markusressel/i8kfans/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	sensors     []sensors.Sensor
	temperature *prometheus.Desc
	average     *prometheus.Desc
}

func NewSensorCollector(sensors []sensors.Sensor) *SensorCollector {
	return &SensorCollector{
		sensors: sensors,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "temperature"),
			"Last temperature read by the control loop in °C",
			[]string{"fan"}, nil,
		),
		average: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "temperature_avg"),
			"Average of the recently read temperatures in °C",
			[]string{"fan"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.temperature
	ch <- collector.average
}

// Collect implements required collect function for all prometheus collectors.
// Only recorded values are exported, scraping never runs sensor commands.
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for _, sensor := range collector.sensors {
		stats := sensor.GetStats()
		if stats.Samples <= 0 {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.temperature, prometheus.GaugeValue, float64(stats.Last), sensor.GetId())
		ch <- prometheus.MustNewConstMetric(collector.average, prometheus.GaugeValue, stats.Avg, sensor.GetId())
	}
}
