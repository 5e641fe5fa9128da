package vec

// Rect — осевой прямоугольник (левый верхний угол + размер)
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectAround строит прямоугольник с центром в center
func RectAround(center, size Vec2Float) Rect {
	return Rect{
		X:      center.X - size.X/2,
		Y:      center.Y - size.Y/2,
		Width:  size.X,
		Height: size.Y,
	}
}

// Overlaps проверяет строгое пересечение двух прямоугольников.
// Касание гранями пересечением не считается.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains проверяет попадание точки внутрь прямоугольника (границы включительно)
func (r Rect) Contains(p Vec2Float) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center возвращает центр прямоугольника
func (r Rect) Center() Vec2Float {
	return Vec2Float{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
