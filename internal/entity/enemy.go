package entity

import (
	"math/rand"

	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/vec"
)

// Параметры, общие для всех типов врагов
const (
	EnemyBaseSpeed        = 0.08
	EnemySize             = 32.0
	EnemyFriction         = 0.8
	EnemyAttackDuration   = 400.0
	EnemyAttackCooldown   = 1000.0
	EnemyForgetTime       = 3000.0
	RetreatHealthFraction = 0.3
	RetreatDuration       = 2000.0
	PatrolArriveDistance  = 10.0

	patrolSpeedFactor  = 0.5
	chaseSpeedFactor   = 1.2
	retreatSpeedFactor = 1.5
)

// EnemyType — архетип врага
type EnemyType string

const (
	ShadowCreature  EnemyType = "shadow_creature"
	ForestSpirit    EnemyType = "forest_spirit"
	AncientGuardian EnemyType = "ancient_guardian"
	ShadowBeast     EnemyType = "shadow_beast"
)

// EnemyPreset — неизменяемый набор характеристик архетипа
type EnemyPreset struct {
	MaxHealth      int
	SpeedFactor    float64 // Множитель к EnemyBaseSpeed
	AttackDamage   int
	DetectionRange float64
	AttackRange    float64
}

var defaultEnemyPreset = EnemyPreset{MaxHealth: 50, SpeedFactor: 1.0, AttackDamage: 20, DetectionRange: 120, AttackRange: 40}

var enemyPresets = map[EnemyType]EnemyPreset{
	ShadowCreature:  {MaxHealth: 40, SpeedFactor: 1.0, AttackDamage: 15, DetectionRange: 100, AttackRange: 35},
	ForestSpirit:    {MaxHealth: 60, SpeedFactor: 1.2, AttackDamage: 20, DetectionRange: 140, AttackRange: 45},
	AncientGuardian: {MaxHealth: 100, SpeedFactor: 0.8, AttackDamage: 30, DetectionRange: 160, AttackRange: 50},
}

// PresetFor возвращает характеристики типа; неизвестные типы получают базовый набор
func PresetFor(t EnemyType) EnemyPreset {
	if p, ok := enemyPresets[t]; ok {
		return p
	}
	return defaultEnemyPreset
}

// Target — то, что враг может преследовать и атаковать
type Target interface {
	Core() *Base
	TakeDamage(amount int) int
	AddExperience(amount int)
}

// Enemy — актор под управлением ИИ
type Enemy struct {
	Actor

	Type           EnemyType
	DetectionRange float64
	ForgetTime     float64

	patrolSpeed  float64
	chaseSpeed   float64
	retreatSpeed float64

	state      AIState
	StateTimer float64 // мс с последнего перехода
	aiTimer    float64 // мс с момента создания
	lastSeen   float64

	target        Target
	hasSeenTarget bool

	PatrolPoints       []vec.Vec2Float
	CurrentPatrolIndex int

	idleDwell      float64
	patrolDwell    float64
	wanderInterval float64
	wanderTimer    float64

	rng      *rand.Rand
	rewarded bool
}

// NewEnemy создаёт врага заданного типа в состоянии idle.
// rng может быть nil — тогда используется собственный источник.
func NewEnemy(pos vec.Vec2Float, t EnemyType, rng *rand.Rand) *Enemy {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	p := PresetFor(t)

	e := &Enemy{
		Actor:          newActor(KindEnemy, pos, vec.Vec2Float{X: EnemySize, Y: EnemySize}, p.MaxHealth),
		Type:           t,
		DetectionRange: p.DetectionRange,
		ForgetTime:     EnemyForgetTime,
		state:          AIIdle,
		rng:            rng,
	}

	e.MoveSpeed = EnemyBaseSpeed * p.SpeedFactor
	e.AttackDamage = p.AttackDamage
	e.AttackRange = p.AttackRange
	e.AttackDuration = EnemyAttackDuration
	e.patrolSpeed = e.MoveSpeed * patrolSpeedFactor
	e.chaseSpeed = e.MoveSpeed * chaseSpeedFactor
	e.retreatSpeed = e.MoveSpeed * retreatSpeedFactor

	e.SetMaxSpeed(e.MoveSpeed)
	e.SetFriction(EnemyFriction)
	e.idleDwell = e.randBetween(1000, 3000)

	return e
}

// Update продвигает врага: физика, ИИ, затем боевые таймеры
func (e *Enemy) Update(dt float64) {
	if !e.Active {
		return
	}
	e.integrate(dt)
	e.updateAI(dt)
	e.tickCombat(dt)
}

// State возвращает текущее состояние ИИ
func (e *Enemy) State() AIState {
	return e.state
}

// Target возвращает текущую цель или nil
func (e *Enemy) Target() Target {
	return e.target
}

// SetTarget привязывает цель. Сброс цели во время преследования возвращает
// врага в патруль, чтобы без цели он оставался только в idle или patrol.
func (e *Enemy) SetTarget(t Target) {
	if t == nil {
		e.target = nil
		e.hasSeenTarget = false
		if e.state != AIIdle && e.state != AIPatrol {
			e.transition(AIPatrol)
		}
		return
	}
	e.target = t
}

// SetPatrolPoints задаёт маршрут патрулирования
func (e *Enemy) SetPatrolPoints(points []vec.Vec2Float) {
	e.PatrolPoints = append([]vec.Vec2Float(nil), points...)
	e.CurrentPatrolIndex = 0
}

// liveTarget возвращает цель, если она существует и активна
func (e *Enemy) liveTarget() Target {
	if e.target == nil || !e.target.Core().Active {
		return nil
	}
	return e.target
}

// PerformAttack запускает атаку; false — атака на перезарядке или уже идёт
func (e *Enemy) PerformAttack() bool {
	if !e.beginAttack(EnemyAttackCooldown) {
		return false
	}

	t := e.liveTarget()
	if t != nil && e.DistanceTo(t.Core()) <= e.AttackRange {
		left := t.TakeDamage(e.AttackDamage)
		logHit(&e.Base, t.Core(), e.AttackDamage, left)
	}
	return true
}

// TakeDamage наносит урон и возвращает оставшееся здоровье
func (e *Enemy) TakeDamage(amount int) int {
	if !e.Active {
		return e.Health
	}
	if e.applyDamage(amount) {
		e.die()
	}
	return e.Health
}

func (e *Enemy) die() {
	if e.rewarded {
		return
	}
	e.rewarded = true

	if e.target != nil {
		e.target.AddExperience(e.MaxHealth * 2)
	}
	logging.Debug("Враг %d (%s) побеждён", e.ID, e.Type)
	e.emit(EventEnemyDefeated, e.ID, map[string]interface{}{
		"type":       string(e.Type),
		"experience": e.MaxHealth * 2,
	})
	e.Destroy()
}

// OnCollide — враги не реагируют на касания: урон наносится только атакой
func (e *Enemy) OnCollide(other Entity) {}

// IsAggressive сообщает, преследует ли враг цель
func (e *Enemy) IsAggressive() bool {
	return e.state == AIChase || e.state == AIAttack
}

// IsVulnerable сообщает, открыт ли живой враг для удара: вне окна собственной атаки
func (e *Enemy) IsVulnerable() bool {
	return !e.IsAttacking && e.Health > 0
}

// BehaviorDescription возвращает описание поведения для отладочного вывода
func (e *Enemy) BehaviorDescription() string {
	switch e.state {
	case AIIdle:
		return "Стоит на месте"
	case AIPatrol:
		return "Патрулирует территорию"
	case AIChase:
		return "Преследует цель"
	case AIAttack:
		return "Атакует"
	case AIRetreat:
		return "Отступает"
	default:
		return "Неизвестно"
	}
}

func (e *Enemy) randBetween(min, max float64) float64 {
	return min + e.rng.Float64()*(max-min)
}
