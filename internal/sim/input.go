package sim

import (
	"math"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/vec"
	"github.com/annel0/memory-isle/internal/world"
)

// InputSource выдаёт ввод на очередной тик
type InputSource interface {
	Next(g *world.Game) entity.Input
}

// IdleInput всегда возвращает пустой ввод
type IdleInput struct{}

// Next реализует InputSource
func (IdleInput) Next(*world.Game) entity.Input { return entity.Input{} }

// ScriptStep — ввод, удерживаемый Ticks тиков
type ScriptStep struct {
	Ticks int
	Input entity.Input
}

// ScriptedInput проигрывает заранее заданную последовательность
type ScriptedInput struct {
	steps []ScriptStep
	step  int
	tick  int
}

// NewScriptedInput создаёт сценарий; после его конца ввод пустой
func NewScriptedInput(steps ...ScriptStep) *ScriptedInput {
	return &ScriptedInput{steps: steps}
}

// Next реализует InputSource
func (s *ScriptedInput) Next(*world.Game) entity.Input {
	s.advance()
	if s.step >= len(s.steps) {
		return entity.Input{}
	}
	s.tick++
	return s.steps[s.step].Input
}

// Done сообщает, что сценарий закончился
func (s *ScriptedInput) Done() bool {
	s.advance()
	return s.step >= len(s.steps)
}

// advance пропускает исчерпанные шаги
func (s *ScriptedInput) advance() {
	for s.step < len(s.steps) && s.tick >= s.steps[s.step].Ticks {
		s.step++
		s.tick = 0
	}
}

// AutopilotInput ведёт игрока к ближайшему предмету, затем к врагам,
// затем к первому выходу с карты. Для прогонов без человека.
type AutopilotInput struct {
	attackReach float64
}

// NewAutopilotInput создаёт автопилот
func NewAutopilotInput() *AutopilotInput {
	return &AutopilotInput{attackReach: entity.PlayerAttackRange}
}

// Next реализует InputSource
func (a *AutopilotInput) Next(g *world.Game) entity.Input {
	p := g.Player()
	m := g.CurrentMap()
	if p == nil || m == nil || !p.Active {
		return entity.Input{}
	}

	if e, dist := nearestEnemy(m, p.Position); e != nil && dist <= a.attackReach {
		return entity.Input{Move: toward(p.Position, e.Position), Attack: true}
	}
	if it := nearestItem(m, p.Position); it != nil {
		return entity.Input{Move: toward(p.Position, it.Position)}
	}
	if e, _ := nearestEnemy(m, p.Position); e != nil {
		return entity.Input{Move: toward(p.Position, e.Position)}
	}
	if exits := m.Exits(); len(exits) > 0 {
		return entity.Input{Move: toward(p.Position, exits[0].Tile.ToWorldCenter(m.TileSize))}
	}
	return entity.Input{}
}

func nearestEnemy(m *world.Map, from vec.Vec2Float) (*entity.Enemy, float64) {
	var best *entity.Enemy
	bestDist := math.Inf(1)
	for _, e := range m.Enemies() {
		if !e.Active {
			continue
		}
		if d := from.DistanceTo(e.Position); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, bestDist
}

func nearestItem(m *world.Map, from vec.Vec2Float) *entity.Item {
	var best *entity.Item
	bestDist := math.Inf(1)
	for _, it := range m.Items() {
		if !it.Active {
			continue
		}
		if d := from.DistanceTo(it.Position); d < bestDist {
			best, bestDist = it, d
		}
	}
	return best
}

// deadZone — расстояние по оси, на котором автопилот перестаёт жать клавишу
const deadZone = 4.0

// toward возвращает вектор движения по клавишам в сторону цели
func toward(from, to vec.Vec2Float) vec.Vec2Float {
	d := to.Sub(from)
	return entity.MovementFromKeys(d.Y < -deadZone, d.Y > deadZone, d.X < -deadZone, d.X > deadZone)
}
