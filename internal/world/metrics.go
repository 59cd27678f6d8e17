package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Причины отказа в установке блока
const (
	RejectHeight    = "height"
	RejectCollision = "collision"
	RejectSupport   = "support"
	RejectUnknown   = "unknown_block"
)

// Metrics - счетчики мира. nil-значение допустимо и ничего не считает.
type Metrics struct {
	blocksBroken        *prometheus.CounterVec
	pickupsSpawned      prometheus.Counter
	cascades            prometheus.Counter
	revalidationRemoved prometheus.Counter
	placementsRejected  *prometheus.CounterVec
}

// NewMetrics создаёт счетчики и регистрирует их в reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		blocksBroken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockverse",
			Name:      "blocks_broken_total",
			Help:      "Разрушенные блоки по типу.",
		}, []string{"block"}),
		pickupsSpawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Name:      "pickups_spawned_total",
			Help:      "Выброшенные в мир стопки предметов.",
		}),
		cascades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Name:      "multicell_cascades_total",
			Help:      "Ячейки, удаленные обработчиком OnBroken другой ячейки.",
		}),
		revalidationRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "blockverse",
			Name:      "revalidation_removed_total",
			Help:      "Блоки, потерявшие опору при перепроверке.",
		}),
		placementsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockverse",
			Name:      "placements_rejected_total",
			Help:      "Отклоненные установки блоков по причине.",
		}, []string{"reason"}),
	}

	for _, c := range []prometheus.Collector{m.blocksBroken, m.pickupsSpawned, m.cascades, m.revalidationRemoved, m.placementsRejected} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) blockBroken(name string) {
	if m != nil {
		m.blocksBroken.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) pickups(n int) {
	if m != nil && n > 0 {
		m.pickupsSpawned.Add(float64(n))
	}
}

func (m *Metrics) cascade() {
	if m != nil {
		m.cascades.Inc()
	}
}

func (m *Metrics) revalidated() {
	if m != nil {
		m.revalidationRemoved.Inc()
	}
}

func (m *Metrics) rejected(reason string) {
	if m != nil {
		m.placementsRejected.WithLabelValues(reason).Inc()
	}
}
