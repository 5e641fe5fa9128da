package physics

import (
	"github.com/annel0/memory-isle/internal/vec"
)

// BlockChecker сообщает, заблокирована ли точка мира
type BlockChecker func(x, y float64) bool

// GetClearancePoints возвращает точки, которые проверяются на коллизию с
// тайлами: центр и четыре точки на расстоянии padding по осям.
// padding меньше половины размера тела, чтобы сущность не застревала в проходах.
func GetClearancePoints(pos vec.Vec2Float, padding float64) []vec.Vec2Float {
	return []vec.Vec2Float{
		{X: pos.X, Y: pos.Y},           // Центр
		{X: pos.X - padding, Y: pos.Y}, // Левая
		{X: pos.X + padding, Y: pos.Y}, // Правая
		{X: pos.X, Y: pos.Y - padding}, // Верхняя
		{X: pos.X, Y: pos.Y + padding}, // Нижняя
	}
}

// CanMoveToPosition проверяет, свободны ли все точки клиренса в новой позиции
func CanMoveToPosition(newPos vec.Vec2Float, padding float64, blocked BlockChecker) bool {
	if blocked == nil {
		return true
	}

	for _, point := range GetClearancePoints(newPos, padding) {
		if blocked(point.X, point.Y) {
			// Хотя бы одна точка в непроходимом тайле — движение невозможно
			return false
		}
	}

	return true
}

// ResolveAxisMovement проверяет желаемое смещение целиком, а при блокировке —
// по каждой оси отдельно. Заблокированная ось обнуляется.
func ResolveAxisMovement(pos, delta vec.Vec2Float, padding float64, blocked BlockChecker) (vec.Vec2Float, bool) {
	if CanMoveToPosition(pos.Add(delta), padding, blocked) {
		return delta, true
	}

	resolved := vec.Vec2Float{}
	if CanMoveToPosition(vec.Vec2Float{X: pos.X + delta.X, Y: pos.Y}, padding, blocked) {
		resolved.X = delta.X
	}
	if CanMoveToPosition(vec.Vec2Float{X: pos.X, Y: pos.Y + delta.Y}, padding, blocked) {
		resolved.Y = delta.Y
	}

	return resolved, false
}
