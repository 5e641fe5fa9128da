package entity

import (
	"math"

	"github.com/annel0/memory-isle/internal/vec"
)

// Kind — категория сущности
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindNPC
	KindItem
)

// String возвращает имя категории
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindNPC:
		return "npc"
	case KindItem:
		return "item"
	default:
		return "unknown"
	}
}

// Intent — текущее намерение сущности, которое рендер отображает в анимацию
type Intent uint8

const (
	IntentIdle Intent = iota
	IntentWalk
	IntentAttack
	IntentHurt
)

// String возвращает имя намерения
func (i Intent) String() string {
	switch i {
	case IntentWalk:
		return "walk"
	case IntentAttack:
		return "attack"
	case IntentHurt:
		return "hurt"
	default:
		return "idle"
	}
}

// Visual — дескриптор визуального представления, которым владеет рендер
type Visual interface {
	SetPosition(x, y float64)
	SetVisible(visible bool)
}

// Entity — общий контракт всех сущностей карты
type Entity interface {
	// Core возвращает общие поля сущности
	Core() *Base

	// Update продвигает сущность на dt миллисекунд
	Update(dt float64)

	// OnCollide вызывается миром при пересечении хитбоксов
	OnCollide(other Entity)
}

// Area предоставляет сущностям доступ к окружению на время одного тика
type Area interface {
	// IsCollision сообщает, заблокирована ли точка мира
	IsCollision(x, y float64) bool

	// EnemiesInRange возвращает живых врагов в радиусе
	EnemiesInRange(center vec.Vec2Float, radius float64) []*Enemy
}

// Input — намерения игрока за один тик
type Input struct {
	Move      vec.Vec2Float // Компоненты в [-1,1], диагональ нормализована
	Attack    bool
	Interact  bool
	Inventory bool
}

// diagonalFactor нормализует диагональное движение к единичной длине
var diagonalFactor = 1 / math.Sqrt2

// MovementFromKeys строит вектор движения из состояния клавиш
func MovementFromKeys(up, down, left, right bool) vec.Vec2Float {
	var x, y float64
	if up {
		y -= 1
	}
	if down {
		y += 1
	}
	if left {
		x -= 1
	}
	if right {
		x += 1
	}

	if x != 0 && y != 0 {
		x *= diagonalFactor
		y *= diagonalFactor
	}

	return vec.Vec2Float{X: x, Y: y}
}
