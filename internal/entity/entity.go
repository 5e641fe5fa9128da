package entity

import (
	"sync/atomic"

	"github.com/annel0/memory-isle/internal/physics"
	"github.com/annel0/memory-isle/internal/vec"
)

var nextEntityID uint64 = 1000

// Base представляет общие поля любой сущности карты
type Base struct {
	ID   uint64 // Уникальный идентификатор сущности
	Kind Kind   // Категория сущности
	physics.Body

	Active  bool // false — сущность уничтожена и будет удалена миром
	Visible bool

	visual Visual
}

func newBase(kind Kind, pos, size vec.Vec2Float) Base {
	return Base{
		ID:      atomic.AddUint64(&nextEntityID, 1),
		Kind:    kind,
		Body:    physics.NewBody(pos, size),
		Active:  true,
		Visible: true,
	}
}

// Core возвращает общие поля; реализует часть интерфейса Entity
func (b *Base) Core() *Base {
	return b
}

// IsActive сообщает, жива ли сущность
func (b *Base) IsActive() bool {
	return b.Active
}

// IsDestroyed сообщает, помечена ли сущность на удаление
func (b *Base) IsDestroyed() bool {
	return !b.Active && !b.Visible
}

// Destroy мягко удаляет сущность
func (b *Base) Destroy() {
	b.Active = false
	b.SetVisible(false)
}

// AttachVisual привязывает визуальное представление
func (b *Base) AttachVisual(v Visual) {
	b.visual = v
	b.syncVisual()
	if v != nil {
		v.SetVisible(b.Visible)
	}
}

// SetVisible меняет видимость
func (b *Base) SetVisible(visible bool) {
	b.Visible = visible
	if b.visual != nil {
		b.visual.SetVisible(visible)
	}
}

// SetPosition телепортирует сущность
func (b *Base) SetPosition(pos vec.Vec2Float) {
	b.Body.SetPosition(pos)
	b.syncVisual()
}

// Move сдвигает сущность
func (b *Base) Move(delta vec.Vec2Float) {
	b.SetPosition(b.Position.Add(delta))
}

// integrate выполняет шаг физики и синхронизирует визуал
func (b *Base) integrate(dt float64) {
	b.Body.Integrate(dt)
	b.syncVisual()
}

func (b *Base) syncVisual() {
	if b.visual != nil {
		b.visual.SetPosition(b.Position.X, b.Position.Y)
	}
}

// DistanceTo возвращает расстояние до другой сущности
func (b *Base) DistanceTo(other *Base) float64 {
	return b.Position.DistanceTo(other.Position)
}

// DirectionTo возвращает единичное направление на другую сущность
func (b *Base) DirectionTo(other *Base) vec.Vec2Float {
	return b.Position.DirectionTo(other.Position)
}

// CollidesWith проверяет пересечение хитбоксов
func (b *Base) CollidesWith(other *Base) bool {
	if other == nil {
		return false
	}
	return b.Box.Overlaps(other.Box)
}
