package eventbus

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/memory-isle/internal/entity"
)

// collector собирает доставленные события
type collector struct {
	mu     sync.Mutex
	events []*Envelope
}

func (c *collector) handle(_ context.Context, ev *Envelope) {
	c.mu.Lock()
	c.events = append(c.events, ev)
	c.mu.Unlock()
}

func (c *collector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev.EventType)
	}
	return out
}

func TestMemoryBus_DeliversInOrder(t *testing.T) {
	bus := NewMemoryBus(16)
	ctx := context.Background()

	var all collector
	_, err := bus.Subscribe(ctx, Filter{}, all.handle)
	require.NoError(t, err)

	for _, typ := range []string{"A", "B", "C"} {
		require.NoError(t, bus.Publish(ctx, &Envelope{EventType: typ}))
	}
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"A", "B", "C"}, all.types())
	stats := bus.Metrics()
	assert.Equal(t, uint64(3), stats.Published)
	assert.Equal(t, uint64(3), stats.Consumed)
	assert.Equal(t, 0, stats.InFlight)
}

func TestMemoryBus_Filter(t *testing.T) {
	bus := NewMemoryBus(16)
	ctx := context.Background()

	var deaths, fromSim collector
	_, err := bus.Subscribe(ctx, Filter{Types: []string{"PlayerDied"}}, deaths.handle)
	require.NoError(t, err)
	_, err = bus.Subscribe(ctx, Filter{Sources: []string{"sim"}}, fromSim.handle)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "PlayerDied", Source: "sim"}))
	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "LevelUp", Source: "sim"}))
	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "PlayerDied", Source: "test"}))
	require.NoError(t, bus.Close())

	assert.Equal(t, []string{"PlayerDied", "PlayerDied"}, deaths.types())
	assert.Equal(t, []string{"PlayerDied", "LevelUp"}, fromSim.types())
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	bus := NewMemoryBus(4)
	ctx := context.Background()

	var c collector
	sub, err := bus.Subscribe(ctx, Filter{}, c.handle)
	require.NoError(t, err)
	sub.Unsubscribe()

	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "A"}))
	require.NoError(t, bus.Close())
	assert.Empty(t, c.types())
}

func TestMemoryBus_DropsLowPriorityWhenFull(t *testing.T) {
	bus := NewMemoryBus(1)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	_, err := bus.Subscribe(ctx, Filter{}, func(context.Context, *Envelope) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	})
	require.NoError(t, err)

	// Первое событие занимает обработчик, второе — буфер
	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "A"}))
	<-started
	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "B"}))

	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "C", Priority: PriorityLow}))
	assert.Equal(t, uint64(1), bus.Metrics().Dropped)

	cctx, cancel := context.WithCancel(ctx)
	cancel()
	err = bus.Publish(cctx, &Envelope{EventType: "D", Priority: PriorityCritical})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	require.NoError(t, bus.Close())
	assert.Equal(t, uint64(2), bus.Metrics().Published)
}

func TestMemoryBus_PublishAfterClose(t *testing.T) {
	bus := NewMemoryBus(4)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.Publish(context.Background(), &Envelope{}), ErrClosed)
}

func TestBusObserver_PublishesEnvelopes(t *testing.T) {
	bus := NewMemoryBus(16)
	ctx := context.Background()

	var c collector
	_, err := bus.Subscribe(ctx, Filter{}, c.handle)
	require.NoError(t, err)

	obs := NewBusObserver(ctx, bus, "sim")
	var _ entity.Observer = obs

	obs.OnEvent(entity.Event{Type: entity.EventLevelUp, EntityID: 7, Data: map[string]interface{}{"level": 2}})
	obs.OnEvent(entity.Event{Type: entity.EventPlayerDied, EntityID: 7})
	require.NoError(t, bus.Close())

	require.Len(t, c.events, 2)
	first := c.events[0]
	assert.Equal(t, "LevelUp", first.EventType)
	assert.Equal(t, "sim", first.Source)
	assert.Equal(t, uint64(7), first.EntityID)
	assert.Equal(t, PriorityLow, first.Priority)
	assert.Equal(t, "7", first.Metadata["entity_id"])
	_, err = uuid.Parse(first.ID)
	assert.NoError(t, err)

	var payload map[string]int
	require.NoError(t, json.Unmarshal(first.Payload, &payload))
	assert.Equal(t, 2, payload["level"])

	second := c.events[1]
	assert.Equal(t, PriorityCritical, second.Priority)
	assert.Empty(t, second.Payload)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBusObserver_ClosedBusDoesNotPanic(t *testing.T) {
	bus := NewMemoryBus(1)
	require.NoError(t, bus.Close())

	obs := NewBusObserver(context.Background(), bus, "sim")
	assert.NotPanics(t, func() {
		obs.OnEvent(entity.Event{Type: entity.EventVictory})
	})
}

func TestMetricsExporter_Sync(t *testing.T) {
	bus := NewMemoryBus(8)
	reg := prometheus.NewRegistry()
	exp := NewMetricsExporter(bus, reg)
	ctx := context.Background()

	_, err := bus.Subscribe(ctx, Filter{}, func(context.Context, *Envelope) {})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "A"}))
	require.NoError(t, bus.Publish(ctx, &Envelope{EventType: "B"}))
	require.NoError(t, bus.Close())

	exp.sync()
	assert.Equal(t, 2.0, testutil.ToFloat64(exp.published))
	assert.Equal(t, 2.0, testutil.ToFloat64(exp.consumed))

	// Повторная синхронизация без новых событий ничего не добавляет
	exp.sync()
	assert.Equal(t, 2.0, testutil.ToFloat64(exp.published))
	assert.Equal(t, 0.0, testutil.ToFloat64(exp.inflight))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestLoggingListener(t *testing.T) {
	bus := NewMemoryBus(4)
	sub, err := StartLoggingListener(context.Background(), bus)
	require.NoError(t, err)
	require.NotNil(t, sub)

	require.NoError(t, bus.Publish(context.Background(), &Envelope{EventType: "A"}))
	require.NoError(t, bus.Close())
	assert.Equal(t, uint64(1), bus.Metrics().Consumed)
}

func TestDescribeEnvelope(t *testing.T) {
	tests := []struct {
		name string
		ev   *Envelope
		want string
	}{
		{"без данных", &Envelope{EventType: "PlayerDied", EntityID: 1}, "PlayerDied #1"},
		{
			"поля по алфавиту",
			&Envelope{EventType: "EnemyDefeated", EntityID: 7, Payload: json.RawMessage(`{"type":"shadow_creature","experience":80}`)},
			"EnemyDefeated #7 experience=80 type=shadow_creature",
		},
		{"не объект", &Envelope{EventType: "Dialogue", EntityID: 3, Payload: json.RawMessage(`"привет"`)}, `Dialogue #3 payload="привет"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeEnvelope(tt.ev))
		})
	}
}
