package entity

import (
	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/vec"
)

// HitFlashDuration — длительность визуальной вспышки после получения урона, мс
const HitFlashDuration = 200.0

// Actor — сущность со здоровьем и боевыми параметрами
type Actor struct {
	Base
	notifier

	Health    int
	MaxHealth int
	MoveSpeed float64

	IsAttacking    bool
	AttackCooldown float64 // мс до готовности следующей атаки, ≥0
	AttackTimer    float64 // мс с начала текущей атаки
	AttackDuration float64 // длительность окна атаки, мс
	AttackRange    float64
	AttackDamage   int

	// HitFlashRemaining заменяет отложенный колбэк вспышки: уменьшается каждый тик
	HitFlashRemaining float64
}

func newActor(kind Kind, pos, size vec.Vec2Float, maxHealth int) Actor {
	return Actor{
		Base:      newBase(kind, pos, size),
		Health:    maxHealth,
		MaxHealth: maxHealth,
	}
}

// HealthPercentage возвращает долю здоровья в [0,1]
func (a *Actor) HealthPercentage() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return float64(a.Health) / float64(a.MaxHealth)
}

// CanAttack сообщает, свободен ли актор для новой атаки
func (a *Actor) CanAttack() bool {
	return a.Active && !a.IsAttacking && a.AttackCooldown <= 0
}

// beginAttack взводит окно атаки и кулдаун; false — атака запрещена
func (a *Actor) beginAttack(cooldown float64) bool {
	if !a.CanAttack() {
		return false
	}
	a.IsAttacking = true
	a.AttackTimer = 0
	a.AttackCooldown = cooldown
	return true
}

// applyDamage уменьшает здоровье с ограничением снизу нулём.
// Возвращает true, если удар оказался смертельным.
func (a *Actor) applyDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	a.Health -= amount
	if a.Health < 0 {
		a.Health = 0
	}
	a.HitFlashRemaining = HitFlashDuration
	a.emit(EventHealthChanged, a.ID, map[string]interface{}{
		"health":     a.Health,
		"max_health": a.MaxHealth,
	})
	return a.Health == 0
}

// Heal восстанавливает здоровье не выше MaxHealth
func (a *Actor) Heal(amount int) int {
	if !a.Active || amount <= 0 {
		return a.Health
	}
	a.Health += amount
	if a.Health > a.MaxHealth {
		a.Health = a.MaxHealth
	}
	a.emit(EventHealthChanged, a.ID, map[string]interface{}{
		"health":     a.Health,
		"max_health": a.MaxHealth,
	})
	return a.Health
}

// tickCombat опрашивает таймеры атаки и вспышки
func (a *Actor) tickCombat(dt float64) {
	if a.AttackCooldown > 0 {
		a.AttackCooldown -= dt
		if a.AttackCooldown < 0 {
			a.AttackCooldown = 0
		}
	}

	if a.IsAttacking {
		a.AttackTimer += dt
		if a.AttackTimer >= a.AttackDuration {
			a.IsAttacking = false
			a.AttackTimer = 0
		}
	}

	if a.HitFlashRemaining > 0 {
		a.HitFlashRemaining -= dt
		if a.HitFlashRemaining < 0 {
			a.HitFlashRemaining = 0
		}
	}
}

// Intent возвращает намерение для визуального слоя
func (a *Actor) Intent() Intent {
	switch {
	case a.IsAttacking:
		return IntentAttack
	case a.HitFlashRemaining > 0:
		return IntentHurt
	case a.Speed() > 1e-3:
		return IntentWalk
	default:
		return IntentIdle
	}
}

func logHit(attacker, target *Base, damage, left int) {
	logging.LogCombat(attacker.ID, target.ID, damage, left)
}
