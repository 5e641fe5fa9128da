package entity

// EventType — тип игрового события для внешних наблюдателей (UI, шина событий)
type EventType string

const (
	EventHealthChanged  EventType = "HealthChanged"
	EventItemCollected  EventType = "ItemCollected"
	EventItemUsed       EventType = "ItemUsed"
	EventItemEquipped   EventType = "ItemEquipped"
	EventEnemyDefeated  EventType = "EnemyDefeated"
	EventQuestAccepted  EventType = "QuestAccepted"
	EventQuestCompleted EventType = "QuestCompleted"
	EventLevelUp        EventType = "LevelUp"
	EventMemoryFragment EventType = "MemoryFragment"
	EventPlayerDied     EventType = "PlayerDied"
	EventDialogue       EventType = "Dialogue"
	EventMapChanged     EventType = "MapChanged"
	EventVictory        EventType = "Victory"
)

// Event описывает дискретное событие ядра
type Event struct {
	Type     EventType
	EntityID uint64
	Data     map[string]interface{}
}

// Observer получает события; ответ не ожидается
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc адаптирует функцию к Observer
type ObserverFunc func(ev Event)

// OnEvent вызывает f
func (f ObserverFunc) OnEvent(ev Event) { f(ev) }

// MultiObserver рассылает событие всем наблюдателям по порядку
type MultiObserver []Observer

// OnEvent рассылает событие
func (m MultiObserver) OnEvent(ev Event) {
	for _, o := range m {
		if o != nil {
			o.OnEvent(ev)
		}
	}
}

// notifier хранит наблюдателя и безопасно рассылает события
type notifier struct {
	observer Observer
}

// SetObserver задаёт наблюдателя событий
func (n *notifier) SetObserver(o Observer) {
	n.observer = o
}

func (n *notifier) emit(t EventType, id uint64, data map[string]interface{}) {
	if n.observer == nil {
		return
	}
	n.observer.OnEvent(Event{Type: t, EntityID: id, Data: data})
}
