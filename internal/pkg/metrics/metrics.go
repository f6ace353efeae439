package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder 生成相关的 Prometheus 指标
type Recorder struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// NewRecorder 创建独立 registry 的指标记录器
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Recorder{
		registry: reg,
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flexgen",
			Name:      "generations_total",
			Help:      "Generation attempts by mode, platform and outcome.",
		}, []string{"mode", "platform", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flexgen",
			Name:      "generation_duration_seconds",
			Help:      "End-to-end generation latency including the upstream call.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"mode", "outcome"}),
	}
	reg.MustRegister(r.generations, r.latency)
	return r
}

// ObserveGeneration 记录一次生成
func (r *Recorder) ObserveGeneration(mode, platform, outcome string, d time.Duration) {
	if platform == "" {
		platform = "unknown"
	}
	r.generations.WithLabelValues(mode, platform, outcome).Inc()
	r.latency.WithLabelValues(mode, outcome).Observe(d.Seconds())
}

// Handler /metrics 处理器
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
