package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Float_DirectionTo(t *testing.T) {
	a := Vec2Float{X: 0, Y: 0}
	b := Vec2Float{X: 3, Y: 4}

	dir := a.DirectionTo(b)
	assert.InDelta(t, 0.6, dir.X, 1e-9)
	assert.InDelta(t, 0.8, dir.Y, 1e-9)
	assert.InDelta(t, 1.0, dir.Length(), 1e-9, "Направление должно быть единичным")

	// Совпадающие точки не дают NaN
	assert.Equal(t, Vec2Float{}, a.DirectionTo(a))
}

func TestVec2Float_ToTile(t *testing.T) {
	tests := []struct {
		name string
		pos  Vec2Float
		want Vec2
	}{
		{"origin", Vec2Float{X: 0, Y: 0}, Vec2{X: 0, Y: 0}},
		{"inside first tile", Vec2Float{X: 31.9, Y: 5}, Vec2{X: 0, Y: 0}},
		{"tile boundary", Vec2Float{X: 32, Y: 64}, Vec2{X: 1, Y: 2}},
		{"negative floors down", Vec2Float{X: -0.5, Y: -33}, Vec2{X: -1, Y: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.ToTile(32))
		})
	}
}

func TestRect_Overlaps(t *testing.T) {
	a := RectAround(Vec2Float{X: 10, Y: 10}, Vec2Float{X: 10, Y: 10})
	b := RectAround(Vec2Float{X: 18, Y: 10}, Vec2Float{X: 10, Y: 10})
	c := RectAround(Vec2Float{X: 20, Y: 10}, Vec2Float{X: 10, Y: 10})

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "Касание гранями не считается пересечением")
	assert.True(t, a.Contains(Vec2Float{X: 15, Y: 15}))
	assert.Equal(t, Vec2Float{X: 10, Y: 10}, a.Center())
}

func TestFromAngleAndClamp(t *testing.T) {
	v := FromAngle(math.Pi/2, 2)
	assert.InDelta(t, 0, v.X, 1e-9)
	assert.InDelta(t, 2, v.Y, 1e-9)

	assert.Equal(t, 1.0, Clamp(5, 0, 1))
	assert.Equal(t, 0.0, Clamp(-5, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
