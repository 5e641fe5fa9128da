package entity

import (
	"math"

	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/physics"
	"github.com/annel0/memory-isle/internal/vec"
)

// Стартовые характеристики игрока
const (
	PlayerMaxHealth        = 100
	PlayerSpeed            = 0.12
	PlayerSize             = 32.0
	PlayerFriction         = 0.9
	PlayerAttackRange      = 40.0
	PlayerAttackDamage     = 25
	PlayerAttackDuration   = 300.0
	PlayerAttackCooldown   = 500.0
	PlayerCollisionPadding = 8.0
	MaxInventorySize       = 20
	MaxMemoryFragments     = 5
	BaseExperienceToNext   = 100
)

// Player — персонаж под управлением пользователя
type Player struct {
	Actor

	Level            int
	Experience       int
	ExperienceToNext int

	Facing   vec.Vec2Float
	IsMoving bool

	Inventory       []*Item
	QuestLog        []Quest
	MemoryFragments int

	EquippedWeapon *Item
	EquippedArmor  *Item

	InventoryOpen bool
}

// NewPlayer создаёт игрока в мировой позиции pos
func NewPlayer(pos vec.Vec2Float) *Player {
	p := &Player{
		Actor: newActor(KindPlayer, pos, vec.Vec2Float{X: PlayerSize, Y: PlayerSize}, PlayerMaxHealth),
	}
	p.resetStats()
	return p
}

func (p *Player) resetStats() {
	p.MaxHealth = PlayerMaxHealth
	p.Health = PlayerMaxHealth
	p.MoveSpeed = PlayerSpeed
	p.AttackRange = PlayerAttackRange
	p.AttackDamage = PlayerAttackDamage
	p.AttackDuration = PlayerAttackDuration
	p.IsAttacking = false
	p.AttackCooldown = 0
	p.AttackTimer = 0
	p.HitFlashRemaining = 0

	p.Level = 1
	p.Experience = 0
	p.ExperienceToNext = BaseExperienceToNext
	p.Facing = vec.Vec2Float{X: 0, Y: 1}
	p.IsMoving = false

	p.Inventory = nil
	p.QuestLog = nil
	p.MemoryFragments = 0
	p.EquippedWeapon = nil
	p.EquippedArmor = nil
	p.InventoryOpen = false

	p.Velocity = vec.Vec2Float{}
	p.SetMaxSpeed(PlayerSpeed)
	p.SetFriction(PlayerFriction)
}

// Reset возвращает игрока в стартовое состояние в позиции pos
func (p *Player) Reset(pos vec.Vec2Float) {
	p.resetStats()
	p.Active = true
	p.SetVisible(true)
	p.SetPosition(pos)
}

// HandleInput превращает ввод в скорость и атаку.
// Движение проверяется по клиренсу на карте area; заблокированная ось обнуляется.
func (p *Player) HandleInput(in Input, dt float64, area Area) {
	if !p.Active {
		return
	}

	if in.Move.IsZero() {
		p.IsMoving = false
		p.Velocity = vec.Vec2Float{}
	} else {
		p.IsMoving = true
		p.Facing = in.Move

		desired := in.Move.Mul(p.MoveSpeed)
		var blocked physics.BlockChecker
		if area != nil {
			blocked = area.IsCollision
		}

		resolved, _ := physics.ResolveAxisMovement(p.Position, desired.Mul(math.Max(dt, 0)), PlayerCollisionPadding, blocked)
		p.Velocity = vec.Vec2Float{}
		if resolved.X != 0 {
			p.Velocity.X = desired.X
		}
		if resolved.Y != 0 {
			p.Velocity.Y = desired.Y
		}
	}

	if in.Attack {
		p.Attack(area)
	}
	if in.Inventory {
		p.InventoryOpen = !p.InventoryOpen
	}
}

// Update продвигает физику и боевые таймеры
func (p *Player) Update(dt float64) {
	if !p.Active {
		return
	}
	p.integrate(dt)
	p.tickCombat(dt)
}

// OnCollide — подбор предметов обрабатывает сам предмет
func (p *Player) OnCollide(other Entity) {}

// Attack бьёт всех живых врагов в радиусе атаки один раз.
// false — атака на перезарядке или уже идёт.
func (p *Player) Attack(area Area) bool {
	if !p.beginAttack(PlayerAttackCooldown) {
		return false
	}
	if area == nil {
		return true
	}

	for _, enemy := range area.EnemiesInRange(p.Position, p.AttackRange) {
		if enemy.Target() == nil {
			enemy.SetTarget(p)
		}
		left := enemy.TakeDamage(p.AttackDamage)
		logHit(&p.Base, &enemy.Base, p.AttackDamage, left)
	}
	return true
}

// TakeDamage наносит урон и возвращает оставшееся здоровье
func (p *Player) TakeDamage(amount int) int {
	if !p.Active {
		return p.Health
	}
	if p.applyDamage(amount) {
		p.die()
	}
	return p.Health
}

func (p *Player) die() {
	p.Destroy()
	logging.Info("Игрок %d погиб", p.ID)
	p.emit(EventPlayerDied, p.ID, nil)
}

// AddExperience начисляет опыт и повышает уровень, пока хватает опыта
func (p *Player) AddExperience(amount int) {
	if amount <= 0 || !p.Active {
		return
	}
	p.Experience += amount
	for p.Experience >= p.ExperienceToNext {
		p.levelUp()
	}
}

func (p *Player) levelUp() {
	p.Level++
	p.Experience -= p.ExperienceToNext
	p.ExperienceToNext = int(math.Floor(float64(p.ExperienceToNext) * 1.5))

	p.MaxHealth += 20
	p.Health = p.MaxHealth
	p.AttackDamage += 5

	logging.Info("Игрок %d достиг уровня %d", p.ID, p.Level)
	p.emit(EventLevelUp, p.ID, map[string]interface{}{"level": p.Level})
}

// ExperiencePercentage возвращает прогресс до следующего уровня
func (p *Player) ExperiencePercentage() float64 {
	if p.ExperienceToNext <= 0 {
		return 0
	}
	return float64(p.Experience) / float64(p.ExperienceToNext)
}

// AddToInventory кладёт предмет; false — инвентарь полон
func (p *Player) AddToInventory(it *Item) bool {
	if it == nil || len(p.Inventory) >= MaxInventorySize {
		return false
	}
	p.Inventory = append(p.Inventory, it)
	return true
}

// RemoveItem убирает конкретный предмет из инвентаря
func (p *Player) RemoveItem(it *Item) bool {
	for i, own := range p.Inventory {
		if own == it {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFromInventory убирает предмет по индексу; nil — индекс вне диапазона
func (p *Player) RemoveFromInventory(index int) *Item {
	if index < 0 || index >= len(p.Inventory) {
		return nil
	}
	it := p.Inventory[index]
	p.Inventory = append(p.Inventory[:index], p.Inventory[index+1:]...)
	return it
}

// AddQuest записывает задание в журнал; повторное принятие игнорируется
func (p *Player) AddQuest(q Quest) bool {
	if p.HasQuest(q.ID) {
		return false
	}
	p.QuestLog = append(p.QuestLog, q)
	p.emit(EventQuestAccepted, p.ID, map[string]interface{}{"quest": q.ID, "title": q.Title})
	return true
}

// HasQuest сообщает, есть ли задание в журнале
func (p *Player) HasQuest(id string) bool {
	for _, q := range p.QuestLog {
		if q.ID == id {
			return true
		}
	}
	return false
}

// CompleteQuest убирает задание из журнала
func (p *Player) CompleteQuest(id string) (Quest, bool) {
	for i, q := range p.QuestLog {
		if q.ID == id {
			p.QuestLog = append(p.QuestLog[:i], p.QuestLog[i+1:]...)
			p.emit(EventQuestCompleted, p.ID, map[string]interface{}{"quest": id})
			return q, true
		}
	}
	return Quest{}, false
}

// AddMemoryFragment учитывает найденный осколок; false — все уже собраны
func (p *Player) AddMemoryFragment() bool {
	if p.MemoryFragments >= MaxMemoryFragments {
		return false
	}
	p.MemoryFragments++
	p.emit(EventMemoryFragment, p.ID, map[string]interface{}{
		"count": p.MemoryFragments,
		"max":   MaxMemoryFragments,
	})
	logging.Info("Найден осколок памяти (%d/%d)", p.MemoryFragments, MaxMemoryFragments)
	return true
}

// HasAllFragments сообщает, собраны ли все осколки
func (p *Player) HasAllFragments() bool {
	return p.MemoryFragments >= MaxMemoryFragments
}
