package eventbus

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenPayload struct {
	X, Y, Z int
	Block   string
}

func TestNewEnvelope(t *testing.T) {
	ev, err := NewEnvelope(TypeBlockBroken, "overworld", brokenPayload{X: 1, Y: 2, Z: 3, Block: "Door"})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, TypeBlockBroken, ev.EventType)
	assert.Equal(t, "overworld", ev.Source)

	var p brokenPayload
	require.NoError(t, ev.Decode(&p))
	assert.Equal(t, "Door", p.Block)
	assert.Equal(t, 2, p.Y)

	other, err := NewEnvelope(TypeBlockBroken, "overworld", nil)
	require.NoError(t, err)
	assert.NotEqual(t, ev.ID, other.ID)
}

func TestMemoryBus_DeliversInOrder(t *testing.T) {
	bus := NewMemoryBus(16)

	var mu sync.Mutex
	var got []string
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{TypeBlockBroken}}, func(ctx context.Context, ev *Envelope) {
		mu.Lock()
		got = append(got, ev.CorrelationID)
		mu.Unlock()
	})
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		ev, err := NewEnvelope(TypeBlockBroken, "w", nil)
		require.NoError(t, err)
		ev.CorrelationID = id
		require.NoError(t, bus.Publish(context.Background(), ev))
	}
	placed, err := NewEnvelope(TypeBlockPlaced, "w", nil)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), placed))

	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"a", "b", "c"}, got)
	stats := bus.Metrics()
	assert.Equal(t, uint64(4), stats.Published)
	assert.Equal(t, uint64(3), stats.Consumed)
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewMemoryBus(4)
	calls := 0
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) { calls++ })
	require.NoError(t, err)
	sub.Unsubscribe()

	ev, err := NewEnvelope(TypePickupsSpawned, "w", nil)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), ev))
	require.NoError(t, bus.Close())
	assert.Zero(t, calls)
}

func TestMemoryBus_PublishAfterClose(t *testing.T) {
	bus := NewMemoryBus(4)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close(), "повторное закрытие безопасно")

	ev, err := NewEnvelope(TypeBlockBroken, "w", nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		err = bus.Publish(context.Background(), ev)
	})
	assert.ErrorIs(t, err, ErrBusClosed)
	assert.Zero(t, bus.Metrics().Published)
}

func TestMemoryBus_DropsLowPriorityWhenFull(t *testing.T) {
	mb := &memoryBus{subscribers: map[int]subscriber{}, buffer: make(chan *Envelope, 1), done: make(chan struct{})}

	require.NoError(t, mb.Publish(context.Background(), &Envelope{EventType: TypeBlockPlaced}))
	require.NoError(t, mb.Publish(context.Background(), &Envelope{EventType: TypeBlockPlaced}))

	stats := mb.Metrics()
	assert.Equal(t, uint64(1), stats.Published)
	assert.Equal(t, uint64(1), stats.Dropped)
	assert.Equal(t, 1, stats.InFlight)
}

func TestMatchFilter(t *testing.T) {
	ev := &Envelope{EventType: TypeBlockBroken, Source: "nether"}
	assert.True(t, matchFilter(ev, Filter{}))
	assert.True(t, matchFilter(ev, Filter{Sources: []string{"nether"}}))
	assert.False(t, matchFilter(ev, Filter{Types: []string{TypeBlockPlaced}}))
}

func TestMetricsCollector(t *testing.T) {
	bus := NewMemoryBus(8)
	reg := prometheus.NewRegistry()
	mc, err := NewMetricsCollector(bus, reg)
	require.NoError(t, err)

	ev, err := NewEnvelope(TypeBlockBroken, "w", nil)
	require.NoError(t, err)
	require.NoError(t, bus.Publish(context.Background(), ev))
	require.NoError(t, bus.Close())

	assert.Equal(t, 1.0, testutil.ToFloat64(mc.published))

	_, err = NewMetricsCollector(bus, reg)
	assert.Error(t, err, "повторная регистрация тех же метрик")
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "blocks.BlockBroken", Subject(TypeBlockBroken))
}
