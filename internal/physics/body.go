package physics

import (
	"math"

	"github.com/annel0/memory-isle/internal/vec"
)

// DefaultFriction — множитель затухания скорости за один вызов Integrate
const DefaultFriction = 0.8

// Body хранит кинематическое состояние сущности и её хитбокс.
// Box всегда пересчитывается из Position после любого перемещения.
type Body struct {
	Position     vec.Vec2Float // Центр тела в мировых единицах
	Velocity     vec.Vec2Float // Единиц за миллисекунду
	Acceleration vec.Vec2Float // Единиц за миллисекунду²
	Size         vec.Vec2Float // Размер хитбокса
	Friction     float64       // [0,1], применяется как v *= Friction на каждый вызов
	MaxSpeed     float64       // 0 — без ограничения
	Gravity      float64       // Добавляется к Velocity.Y
	Box          vec.Rect      // Хитбокс, производный от Position и Size
}

// NewBody создаёт тело с центром в pos
func NewBody(pos, size vec.Vec2Float) Body {
	b := Body{
		Position: pos,
		Size:     size,
		Friction: DefaultFriction,
	}
	b.UpdateBox()
	return b
}

// Integrate продвигает тело на dt миллисекунд.
//
// Порядок шагов фиксирован: ускорение, гравитация, трение, ограничение
// скорости, перемещение, пересчёт хитбокса. Трение не масштабируется на dt:
// на этот множитель настроены все скорости и дистанции игры.
func (b *Body) Integrate(dt float64) {
	b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))

	if b.Gravity != 0 {
		b.Velocity.Y += b.Gravity * dt
	}

	if b.Friction != 0 {
		b.Velocity = b.Velocity.Mul(b.Friction)
	}

	if b.MaxSpeed > 0 {
		speed := b.Velocity.Length()
		if speed > b.MaxSpeed {
			b.Velocity = b.Velocity.Mul(b.MaxSpeed / speed)
		}
	}

	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.UpdateBox()
}

// UpdateBox пересчитывает хитбокс из позиции и размера
func (b *Body) UpdateBox() {
	b.Box = vec.RectAround(b.Position, b.Size)
}

// SetPosition телепортирует тело
func (b *Body) SetPosition(pos vec.Vec2Float) {
	b.Position = pos
	b.UpdateBox()
}

// Move сдвигает тело на delta
func (b *Body) Move(delta vec.Vec2Float) {
	b.SetPosition(b.Position.Add(delta))
}

// SetSize меняет размер хитбокса
func (b *Body) SetSize(size vec.Vec2Float) {
	b.Size = size
	b.UpdateBox()
}

// SetFriction задаёт трение, ограничивая его отрезком [0,1]
func (b *Body) SetFriction(friction float64) {
	b.Friction = vec.Clamp(friction, 0, 1)
}

// SetMaxSpeed задаёт предельную скорость; отрицательные значения обнуляются
func (b *Body) SetMaxSpeed(speed float64) {
	b.MaxSpeed = math.Max(0, speed)
}

// Speed возвращает модуль скорости
func (b *Body) Speed() float64 {
	return b.Velocity.Length()
}

// Overlaps проверяет пересечение хитбоксов
func (b *Body) Overlaps(other *Body) bool {
	if other == nil {
		return false
	}
	return b.Box.Overlaps(other.Box)
}

// DistanceTo возвращает расстояние между центрами тел
func (b *Body) DistanceTo(other *Body) float64 {
	return b.Position.DistanceTo(other.Position)
}
