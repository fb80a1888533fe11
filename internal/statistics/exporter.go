package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "i8kfans"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
