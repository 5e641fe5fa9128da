package physics

import (
	"math"
	"testing"

	"github.com/annel0/memory-isle/internal/vec"
	"github.com/stretchr/testify/assert"
)

// wallAt возвращает BlockChecker с единственным сплошным тайлом
func wallAt(tileX, tileY int, tileSize float64) BlockChecker {
	return func(x, y float64) bool {
		return int(math.Floor(x/tileSize)) == tileX && int(math.Floor(y/tileSize)) == tileY
	}
}

func TestCanMoveToPosition(t *testing.T) {
	blocked := wallAt(5, 3, 32)

	assert.True(t, CanMoveToPosition(vec.Vec2Float{X: 100, Y: 112}, 8, blocked))
	assert.False(t, CanMoveToPosition(vec.Vec2Float{X: 155, Y: 112}, 8, blocked), "Правая точка клиренса в стене")
	assert.True(t, CanMoveToPosition(vec.Vec2Float{X: 155, Y: 112}, 8, nil), "Без карты движение разрешено")
}

func TestResolveAxisMovement(t *testing.T) {
	blocked := wallAt(5, 3, 32)
	pos := vec.Vec2Float{X: 151, Y: 112}

	t.Run("straight into wall", func(t *testing.T) {
		delta, ok := ResolveAxisMovement(pos, vec.Vec2Float{X: 2, Y: 0}, 8, blocked)
		assert.False(t, ok)
		assert.Equal(t, vec.Vec2Float{}, delta)
	})

	t.Run("diagonal keeps free axis", func(t *testing.T) {
		delta, ok := ResolveAxisMovement(pos, vec.Vec2Float{X: 2, Y: -2}, 8, blocked)
		assert.False(t, ok)
		assert.Equal(t, 0.0, delta.X)
		assert.Equal(t, -2.0, delta.Y)
	})

	t.Run("free movement", func(t *testing.T) {
		delta, ok := ResolveAxisMovement(pos, vec.Vec2Float{X: -2, Y: 0}, 8, blocked)
		assert.True(t, ok)
		assert.Equal(t, vec.Vec2Float{X: -2, Y: 0}, delta)
	})
}
