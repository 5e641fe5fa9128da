package vec

import "math"

// Vec2 представляет целочисленные координаты клетки тайловой сетки
type Vec2 struct {
	X, Y int
}

// ToWorld возвращает мировые координаты левого верхнего угла клетки
func (v Vec2) ToWorld(tileSize float64) Vec2Float {
	return Vec2Float{X: float64(v.X) * tileSize, Y: float64(v.Y) * tileSize}
}

// ToWorldCenter возвращает мировые координаты центра клетки
func (v Vec2) ToWorldCenter(tileSize float64) Vec2Float {
	return Vec2Float{X: (float64(v.X) + 0.5) * tileSize, Y: (float64(v.Y) + 0.5) * tileSize}
}

// InBounds проверяет, лежит ли клетка внутри сетки width×height
func (v Vec2) InBounds(width, height int) bool {
	return v.X >= 0 && v.X < width && v.Y >= 0 && v.Y < height
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
