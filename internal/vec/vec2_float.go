package vec

import "math"

// Vec2Float представляет 2D координаты с плавающей точкой (мировые единицы)
type Vec2Float struct {
	X, Y float64
}

// ToTile переводит мировые координаты в клетку сетки делением с округлением вниз
func (v Vec2Float) ToTile(tileSize float64) Vec2 {
	return Vec2{X: int(math.Floor(v.X / tileSize)), Y: int(math.Floor(v.Y / tileSize))}
}

// Add складывает два вектора
func (v Vec2Float) Add(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub вычитает вектор
func (v Vec2Float) Sub(other Vec2Float) Vec2Float {
	return Vec2Float{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul умножает вектор на скаляр
func (v Vec2Float) Mul(scalar float64) Vec2Float {
	return Vec2Float{X: v.X * scalar, Y: v.Y * scalar}
}

// Neg возвращает противоположный вектор
func (v Vec2Float) Neg() Vec2Float {
	return Vec2Float{X: -v.X, Y: -v.Y}
}

// IsZero сообщает, является ли вектор нулевым
func (v Vec2Float) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalized возвращает нормализованный вектор
func (v Vec2Float) Normalized() Vec2Float {
	length := v.Length()
	if length == 0 {
		return Vec2Float{X: 0, Y: 0}
	}
	return Vec2Float{X: v.X / length, Y: v.Y / length}
}

// Length возвращает длину вектора
func (v Vec2Float) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2Float) DistanceTo(other Vec2Float) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DirectionTo возвращает единичный вектор направления на другую точку.
// Для совпадающих точек возвращается нулевой вектор.
func (v Vec2Float) DirectionTo(other Vec2Float) Vec2Float {
	return other.Sub(v).Normalized()
}

// FromAngle строит вектор длины length под углом angle (радианы)
func FromAngle(angle, length float64) Vec2Float {
	return Vec2Float{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Clamp ограничивает значение отрезком [min, max]
func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}
