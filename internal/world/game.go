package world

import (
	"errors"
	"fmt"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/vec"
)

// MaxDelta — верхняя граница шага симуляции, мс
const MaxDelta = 100.0

// ErrUnknownMap возвращается при переходе на несуществующую карту
var ErrUnknownMap = errors.New("карта не найдена")

// GameState — состояние партии
type GameState uint8

const (
	StatePlaying GameState = iota
	StatePaused
	StateGameOver
	StateVictory
)

// String возвращает имя состояния
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameOver"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Game владеет картами и игроком и продвигает текущую карту
type Game struct {
	seed     int64
	maps     map[MapID]*Map
	current  *Map
	player   *entity.Player
	state    GameState
	observer entity.Observer
	dialogue *entity.NPC
	elapsed  float64
}

// NewGame строит мир для сида и помещает игрока в деревню
func NewGame(seed int64, observer entity.Observer) *Game {
	g := &Game{seed: seed, observer: observer}
	g.build()
	return g
}

func (g *Game) build() {
	g.player = entity.NewPlayer(vec.Vec2Float{})
	g.player.SetObserver(g.observer)
	g.maps = BuildMaps(g.seed, g.observer)
	for _, m := range g.maps {
		m.AttachPlayer(g.player)
	}
	g.state = StatePlaying
	g.dialogue = nil
	if err := g.ChangeMap(MapVillage); err != nil {
		logging.Error("Не удалось открыть стартовую карту: %v", err)
	}
}

// ClampDelta ограничивает шаг симуляции отрезком [0, MaxDelta]
func ClampDelta(dt float64) float64 {
	switch {
	case dt < 0:
		return 0
	case dt > MaxDelta:
		return MaxDelta
	}
	return dt
}

// Update выполняет один тик партии: ввод, тик карты, переходы, состояние, взаимодействие
func (g *Game) Update(dt float64, in entity.Input) {
	if g.state != StatePlaying {
		return
	}
	dt = ClampDelta(dt)
	g.elapsed += dt

	g.player.HandleInput(in, dt, g.current)
	g.current.Update(dt)

	g.checkTransitions()
	g.checkState()

	if in.Interact {
		g.Interact()
	}
}

func (g *Game) checkTransitions() {
	if !g.player.Active {
		return
	}
	ex, ok := g.current.ExitAt(g.player.Position)
	if !ok {
		return
	}
	if err := g.enterMap(ex.Target); err != nil {
		logging.Warn("Переход %s -> %s: %v", g.current.ID, ex.Target, err)
		return
	}
	from := g.player.Position
	to := ex.Arrive.ToWorldCenter(g.current.TileSize)
	g.player.SetPosition(to)
	logging.LogEntityMovement(g.player.ID, from.X, from.Y, to.X, to.Y)
}

func (g *Game) checkState() {
	if g.state != StatePlaying {
		return
	}
	switch {
	case g.player.Health <= 0:
		g.state = StateGameOver
		logging.Info("💀 Игра окончена")
	case g.player.HasAllFragments():
		g.state = StateVictory
		logging.Info("🎉 Проклятие снято!")
		g.emit(entity.EventVictory, map[string]interface{}{"fragments": g.player.MemoryFragments})
	}
}

// ChangeMap делает карту текущей и ставит игрока в её точку появления
func (g *Game) ChangeMap(id MapID) error {
	if err := g.enterMap(id); err != nil {
		return err
	}
	g.player.SetPosition(g.current.SpawnPoint(SpawnPlayer))
	return nil
}

func (g *Game) enterMap(id MapID) error {
	m, ok := g.maps[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMap, id)
	}
	from := MapID("")
	if g.current != nil {
		from = g.current.ID
	}
	g.endDialogue()
	g.current = m
	logging.Info("Переход на карту %s (%s)", m.Name, m.ID)
	g.emit(entity.EventMapChanged, map[string]interface{}{"from": string(from), "to": string(id)})
	return nil
}

// Interact начинает диалог с ближайшим жителем в пределах досягаемости
func (g *Game) Interact() (entity.DialogueView, bool) {
	if !g.player.Active {
		return entity.DialogueView{}, false
	}

	var nearest *entity.NPC
	best := 0.0
	for _, n := range g.current.NPCs() {
		if !n.CanInteractWith(g.player) {
			continue
		}
		d := n.DistanceTo(&g.player.Base)
		if nearest == nil || d < best {
			nearest, best = n, d
		}
	}
	if nearest == nil {
		return entity.DialogueView{}, false
	}

	g.endDialogue()
	view, ok := nearest.StartDialogue(g.player)
	if ok {
		g.dialogue = nearest
	}
	return view, ok
}

// Choose выбирает вариант в открытом диалоге
func (g *Game) Choose(index int) (entity.DialogueView, bool) {
	if g.dialogue == nil {
		return entity.DialogueView{}, false
	}
	view, ok := g.dialogue.Choose(index, g.player)
	if !g.dialogue.InDialogue {
		g.dialogue = nil
	}
	return view, ok
}

// ActiveDialogue возвращает жителя, с которым идёт разговор
func (g *Game) ActiveDialogue() *entity.NPC {
	return g.dialogue
}

func (g *Game) endDialogue() {
	if g.dialogue != nil {
		g.dialogue.EndDialogue()
		g.dialogue = nil
	}
}

// Pause приостанавливает партию
func (g *Game) Pause() {
	if g.state == StatePlaying {
		g.state = StatePaused
	}
}

// Resume продолжает партию
func (g *Game) Resume() {
	if g.state == StatePaused {
		g.state = StatePlaying
	}
}

// Restart пересоздаёт игрока и карты из того же сида
func (g *Game) Restart() {
	g.elapsed = 0
	g.build()
	logging.Info("🔄 Игра перезапущена")
}

// State возвращает состояние партии
func (g *Game) State() GameState { return g.state }

// Player возвращает игрока
func (g *Game) Player() *entity.Player { return g.player }

// CurrentMap возвращает текущую карту
func (g *Game) CurrentMap() *Map { return g.current }

// Map возвращает карту по идентификатору
func (g *Game) Map(id MapID) (*Map, bool) {
	m, ok := g.maps[id]
	return m, ok
}

// Elapsed возвращает суммарное время партии, мс
func (g *Game) Elapsed() float64 { return g.elapsed }

// Snapshot снимает состояние игрока вместе с текущей картой
func (g *Game) Snapshot() entity.PlayerSnapshot {
	return g.player.Snapshot(string(g.current.ID))
}

// Restore применяет снимок. При неизвестной карте или несогласованном снимке
// игрок остаётся в стартовом состоянии на текущей карте, возвращается false.
func (g *Game) Restore(s entity.PlayerSnapshot) bool {
	m, ok := g.maps[MapID(s.MapID)]
	if !ok {
		g.player.Reset(g.current.SpawnPoint(SpawnPlayer))
		return false
	}
	if err := g.enterMap(m.ID); err != nil {
		return false
	}
	if !g.player.Restore(s) {
		g.player.SetPosition(g.current.SpawnPoint(SpawnPlayer))
		return false
	}
	if g.state != StatePaused {
		g.state = StatePlaying
	}
	return true
}

func (g *Game) emit(t entity.EventType, data map[string]interface{}) {
	if g.observer == nil {
		return
	}
	g.observer.OnEvent(entity.Event{Type: t, EntityID: g.player.ID, Data: data})
}
