package eventbus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector публикует статистику шины в Prometheus. Значения
// читаются из EventBus.Metrics в момент сбора, поэтому фоновой горутины нет.
type MetricsCollector struct {
	published prometheus.CounterFunc
	consumed  prometheus.CounterFunc
	dropped   prometheus.CounterFunc
	inflight  prometheus.GaugeFunc
}

// NewMetricsCollector регистрирует метрики шины в reg.
func NewMetricsCollector(bus EventBus, reg prometheus.Registerer) (*MetricsCollector, error) {
	mc := &MetricsCollector{
		published: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "eventbus",
			Name:      "messages_published_total",
			Help:      "Общее число опубликованных сообщений.",
		}, func() float64 { return float64(bus.Metrics().Published) }),
		consumed: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "eventbus",
			Name:      "messages_consumed_total",
			Help:      "Общее число доставленных сообщений подписчикам.",
		}, func() float64 { return float64(bus.Metrics().Consumed) }),
		dropped: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "blockverse",
			Subsystem: "eventbus",
			Name:      "messages_dropped_total",
			Help:      "Сообщений, отброшенных из-за ошибок или ограничения back-pressure.",
		}, func() float64 { return float64(bus.Metrics().Dropped) }),
		inflight: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "blockverse",
			Subsystem: "eventbus",
			Name:      "messages_inflight",
			Help:      "Количество сообщений, находящихся в очереди (не доставленных).",
		}, func() float64 { return float64(bus.Metrics().InFlight) }),
	}

	for _, c := range []prometheus.Collector{mc.published, mc.consumed, mc.dropped, mc.inflight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return mc, nil
}
