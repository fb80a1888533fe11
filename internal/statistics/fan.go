package statistics

import (
	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/controller"
	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

type FanCollector struct {
	loop        controller.ControlLoop
	level       *prometheus.Desc
	targetLevel *prometheus.Desc
}

func NewFanCollector(loop controller.ControlLoop) *FanCollector {
	return &FanCollector{
		loop: loop,
		level: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "level"),
			"Level of the fan at the start of the last control cycle",
			[]string{"fan"}, nil,
		),
		targetLevel: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "target_level"),
			"Level the fan was set to in the last control cycle",
			[]string{"fan"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.level
	ch <- collector.targetLevel
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.loop.GetSnapshot()
	if snapshot.IsEmpty() {
		return
	}
	for fanId, state := range map[string]policy.FanState{
		configuration.FanCpu: snapshot.Decision.Cpu,
		configuration.FanGpu: snapshot.Decision.Gpu,
	} {
		ch <- prometheus.MustNewConstMetric(collector.level, prometheus.GaugeValue, float64(state.Current), fanId)
		ch <- prometheus.MustNewConstMetric(collector.targetLevel, prometheus.GaugeValue, float64(state.Target), fanId)
	}
}
