package eventbus

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/logging"
)

// EnvelopeVersion — версия схемы полезной нагрузки игровых событий
const EnvelopeVersion = 1

// BusObserver публикует события ядра в шину.
// Ошибки публикации только логируются: симуляция не ждёт шину.
type BusObserver struct {
	bus    EventBus
	source string
	ctx    context.Context
}

// NewBusObserver создаёт наблюдателя; ctx ограничивает ожидание места в буфере
func NewBusObserver(ctx context.Context, bus EventBus, source string) *BusObserver {
	return &BusObserver{bus: bus, source: source, ctx: ctx}
}

// OnEvent реализует entity.Observer
func (o *BusObserver) OnEvent(ev entity.Event) {
	env, err := NewEnvelope(o.source, ev)
	if err != nil {
		logging.Warn("Событие %s не сериализовано: %v", ev.Type, err)
		return
	}
	if err := o.bus.Publish(o.ctx, env); err != nil {
		logging.Warn("Событие %s не опубликовано: %v", ev.Type, err)
	}
}

// NewEnvelope упаковывает событие ядра в Envelope с новым UUID
func NewEnvelope(source string, ev entity.Event) (*Envelope, error) {
	var payload json.RawMessage
	if len(ev.Data) > 0 {
		data, err := json.Marshal(ev.Data)
		if err != nil {
			return nil, err
		}
		payload = data
	}

	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: string(ev.Type),
		Version:   EnvelopeVersion,
		EntityID:  ev.EntityID,
		Priority:  priorityOf(ev.Type),
		Payload:   payload,
		Metadata:  map[string]string{"entity_id": strconv.FormatUint(ev.EntityID, 10)},
	}, nil
}

func priorityOf(t entity.EventType) int {
	switch t {
	case entity.EventPlayerDied, entity.EventVictory, entity.EventMapChanged, entity.EventQuestAccepted:
		return PriorityCritical
	default:
		return PriorityLow
	}
}
