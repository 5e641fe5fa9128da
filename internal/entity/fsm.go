package entity

import (
	"math"

	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/vec"
)

// AIState — состояние конечного автомата врага. Ровно одно в каждый момент.
type AIState uint8

const (
	AIIdle AIState = iota
	AIPatrol
	AIChase
	AIAttack
	AIRetreat
)

// String возвращает имя состояния
func (s AIState) String() string {
	switch s {
	case AIIdle:
		return "idle"
	case AIPatrol:
		return "patrol"
	case AIChase:
		return "chase"
	case AIAttack:
		return "attack"
	case AIRetreat:
		return "retreat"
	default:
		return "invalid"
	}
}

// Valid сообщает, является ли значение одним из пяти состояний
func (s AIState) Valid() bool {
	return s <= AIRetreat
}

// transition переключает состояние и сбрасывает таймер состояния.
// Переход в текущее состояние ничего не меняет.
func (e *Enemy) transition(to AIState) {
	if to == e.state {
		return
	}
	from := e.state
	e.state = to
	e.StateTimer = 0
	e.enterState(to)
	logging.LogAITransition(e.ID, from.String(), to.String())
}

func (e *Enemy) enterState(s AIState) {
	switch s {
	case AIIdle:
		e.idleDwell = e.randBetween(1000, 3000)
		e.Velocity = vec.Vec2Float{}
	case AIPatrol:
		e.patrolDwell = e.randBetween(2000, 5000)
		e.wanderInterval = e.randBetween(1000, 3000)
		e.wanderTimer = 0
	case AIAttack:
		e.Velocity = vec.Vec2Float{}
	}
}

// updateAI выполняет один шаг автомата: восприятие, отступление,
// затем поведение текущего состояния
func (e *Enemy) updateAI(dt float64) {
	e.aiTimer += dt
	e.StateTimer += dt

	e.perceive()

	// Низкое здоровье прерывает любое состояние, даже без замеченной цели
	if e.state != AIRetreat && float64(e.Health) < float64(e.MaxHealth)*RetreatHealthFraction {
		e.transition(AIRetreat)
	}

	switch e.state {
	case AIIdle:
		e.updateIdle()
	case AIPatrol:
		e.updatePatrol(dt)
	case AIChase:
		e.updateChase()
	case AIAttack:
		e.updateAttack()
	case AIRetreat:
		e.updateRetreat()
	}
}

// perceive обновляет память о цели. Цель в радиусе обнаружения срывает
// idle и patrol в погоню. Забывание срабатывает один раз после потери
// замеченной цели.
func (e *Enemy) perceive() {
	if t := e.liveTarget(); t != nil && e.DistanceTo(t.Core()) <= e.DetectionRange {
		e.lastSeen = e.aiTimer
		e.hasSeenTarget = true
		if e.state == AIIdle || e.state == AIPatrol {
			e.transition(AIChase)
		}
		return
	}

	if e.target != nil && e.hasSeenTarget && e.aiTimer-e.lastSeen > e.ForgetTime {
		e.target = nil
		e.hasSeenTarget = false
		e.transition(AIPatrol)
	}
}

func (e *Enemy) updateIdle() {
	e.Velocity = vec.Vec2Float{}
	if e.StateTimer >= e.idleDwell {
		e.transition(AIPatrol)
	}
}

func (e *Enemy) updatePatrol(dt float64) {
	if len(e.PatrolPoints) > 0 {
		point := e.PatrolPoints[e.CurrentPatrolIndex]
		if e.Position.DistanceTo(point) < PatrolArriveDistance {
			e.CurrentPatrolIndex = (e.CurrentPatrolIndex + 1) % len(e.PatrolPoints)
		} else {
			e.steer(e.Position.DirectionTo(point), e.patrolSpeed)
		}
	} else {
		e.wanderTimer += dt
		if e.wanderTimer >= e.wanderInterval {
			angle := e.rng.Float64() * 2 * math.Pi
			e.Velocity = vec.FromAngle(angle, e.patrolSpeed)
			e.wanderTimer = 0
			e.wanderInterval = e.randBetween(1000, 3000)
		}
	}

	if e.StateTimer >= e.patrolDwell {
		e.transition(AIIdle)
	}
}

func (e *Enemy) updateChase() {
	t := e.liveTarget()
	if t == nil {
		return
	}

	d := e.DistanceTo(t.Core())
	switch {
	case d <= e.AttackRange:
		e.Velocity = vec.Vec2Float{}
		e.transition(AIAttack)
	case d <= e.DetectionRange:
		e.steer(e.DirectionTo(t.Core()), e.chaseSpeed)
	default:
		e.transition(AIPatrol)
	}
}

func (e *Enemy) updateAttack() {
	t := e.liveTarget()
	if t == nil || e.DistanceTo(t.Core()) > e.AttackRange {
		e.transition(AIChase)
		return
	}
	if e.AttackCooldown <= 0 {
		e.PerformAttack()
	}
}

func (e *Enemy) updateRetreat() {
	t := e.liveTarget()
	if t == nil {
		e.transition(AIPatrol)
		return
	}

	e.steer(e.DirectionTo(t.Core()).Neg(), e.retreatSpeed)
	if e.StateTimer >= RetreatDuration {
		e.transition(AIPatrol)
	}
}

// steer задаёт скорость напрямую, минуя ускорение и трение
func (e *Enemy) steer(dir vec.Vec2Float, speed float64) {
	e.Velocity = dir.Mul(speed)
}
