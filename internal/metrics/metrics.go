package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics 看板服务的 Prometheus 指标，使用独立 registry，测试中可重复创建
type Metrics struct {
	Registry *prometheus.Registry

	buildDuration *prometheus.HistogramVec
	buildsTotal   *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
}

// New 创建并注册指标
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		buildDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rsdashboard_build_duration_seconds",
				Help:    "Duration of dashboard builds by outcome.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		buildsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsdashboard_builds_total",
				Help: "Total dashboard builds by outcome.",
			},
			[]string{"status"},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsdashboard_cache_lookups_total",
				Help: "Dashboard cache lookups by result.",
			},
			[]string{"result"},
		),
	}
}

// ObserveBuild 记录一次生成，status 为 success / missing_input / error
func (m *Metrics) ObserveBuild(status string, d time.Duration) {
	m.buildsTotal.WithLabelValues(status).Inc()
	m.buildDuration.WithLabelValues(status).Observe(d.Seconds())
}

// CacheHit 缓存命中
func (m *Metrics) CacheHit() {
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss 缓存未命中
func (m *Metrics) CacheMiss() {
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// BuildCount 某状态下的累计生成次数
func (m *Metrics) BuildCount(status string) float64 {
	return counterValue(m.buildsTotal, status)
}

// CacheCount 某结果下的累计缓存查询次数
func (m *Metrics) CacheCount(result string) float64 {
	return counterValue(m.cacheLookups, result)
}

func counterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	out := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(out); err != nil {
		return 0
	}
	if out.Counter != nil && out.Counter.Value != nil {
		return *out.Counter.Value
	}
	return 0
}
