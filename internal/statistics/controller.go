package statistics

import (
	"github.com/markusressel/i8kfans/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	loop controller.ControlLoop

	cycles           *prometheus.Desc
	skippedCycles    *prometheus.Desc
	actuations       *prometheus.Desc
	failedActuations *prometheus.Desc
}

func NewControllerCollector(loop controller.ControlLoop) *ControllerCollector {
	return &ControllerCollector{
		loop: loop,
		cycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cycles_total"),
			"Number of control cycles run",
			nil, nil,
		),
		skippedCycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "skipped_cycles_total"),
			"Number of control cycles skipped because a temperature or fan level could not be read",
			nil, nil,
		),
		actuations: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "actuations_total"),
			"Number of fan level changes issued",
			nil, nil,
		),
		failedActuations: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "failed_actuations_total"),
			"Number of fan level changes that could not be applied",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.cycles
	ch <- collector.skippedCycles
	ch <- collector.actuations
	ch <- collector.failedActuations
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.loop.GetStatistics()
	ch <- prometheus.MustNewConstMetric(collector.cycles, prometheus.CounterValue, float64(stats.Cycles))
	ch <- prometheus.MustNewConstMetric(collector.skippedCycles, prometheus.CounterValue, float64(stats.SkippedCycles))
	ch <- prometheus.MustNewConstMetric(collector.actuations, prometheus.CounterValue, float64(stats.Actuations))
	ch <- prometheus.MustNewConstMetric(collector.failedActuations, prometheus.CounterValue, float64(stats.FailedActuations))
}
