package physics

import (
	"math/rand"
	"testing"

	"github.com/annel0/memory-isle/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBody_IntegrateOrder(t *testing.T) {
	b := NewBody(vec.Vec2Float{X: 100, Y: 100}, vec.Vec2Float{X: 32, Y: 32})
	b.Velocity = vec.Vec2Float{X: 1, Y: 0}
	b.Acceleration = vec.Vec2Float{X: 0.1, Y: 0}
	b.Friction = 0.5

	b.Integrate(10)

	// (1 + 0.1*10) * 0.5 = 1.0; позиция += 1.0*10
	assert.InDelta(t, 1.0, b.Velocity.X, 1e-9)
	assert.InDelta(t, 110.0, b.Position.X, 1e-9)
	assert.InDelta(t, 94.0, b.Box.X, 1e-9, "Хитбокс должен следовать за позицией")
	assert.InDelta(t, 84.0, b.Box.Y, 1e-9)
}

func TestBody_FrictionIsPerCall(t *testing.T) {
	// Трение применяется один раз на вызов, независимо от dt
	short := NewBody(vec.Vec2Float{}, vec.Vec2Float{X: 1, Y: 1})
	long := NewBody(vec.Vec2Float{}, vec.Vec2Float{X: 1, Y: 1})
	short.Velocity = vec.Vec2Float{X: 1}
	long.Velocity = vec.Vec2Float{X: 1}

	short.Integrate(1)
	long.Integrate(100)

	assert.Equal(t, 0.8, short.Velocity.X)
	assert.Equal(t, 0.8, long.Velocity.X)
}

func TestBody_Gravity(t *testing.T) {
	b := NewBody(vec.Vec2Float{}, vec.Vec2Float{X: 1, Y: 1})
	b.Friction = 0
	b.Gravity = 0.01

	b.Integrate(10)
	assert.InDelta(t, 0.1, b.Velocity.Y, 1e-9)
	assert.InDelta(t, 1.0, b.Position.Y, 1e-9)
}

func TestBody_SpeedClampProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		b := NewBody(vec.Vec2Float{}, vec.Vec2Float{X: 32, Y: 32})
		b.SetMaxSpeed(rng.Float64() * 2)
		b.SetFriction(rng.Float64())
		b.Velocity = vec.Vec2Float{X: rng.NormFloat64() * 5, Y: rng.NormFloat64() * 5}
		b.Acceleration = vec.Vec2Float{X: rng.NormFloat64(), Y: rng.NormFloat64()}
		b.Gravity = rng.NormFloat64() * 0.01

		for step := 0; step < 10; step++ {
			b.Integrate(1 + rng.Float64()*99)
			if b.MaxSpeed > 0 {
				require.LessOrEqual(t, b.Speed(), b.MaxSpeed*(1+1e-12), "Скорость превысила MaxSpeed")
			}
		}
	}
}

func TestBody_ClampPreservesDirection(t *testing.T) {
	b := NewBody(vec.Vec2Float{}, vec.Vec2Float{X: 1, Y: 1})
	b.Friction = 0
	b.MaxSpeed = 1
	b.Velocity = vec.Vec2Float{X: 3, Y: 4}

	b.Integrate(1)
	assert.InDelta(t, 0.6, b.Velocity.X, 1e-9)
	assert.InDelta(t, 0.8, b.Velocity.Y, 1e-9)
}

func TestBody_SetFrictionClamped(t *testing.T) {
	b := NewBody(vec.Vec2Float{}, vec.Vec2Float{X: 1, Y: 1})
	b.SetFriction(1.5)
	assert.Equal(t, 1.0, b.Friction)
	b.SetFriction(-1)
	assert.Equal(t, 0.0, b.Friction)
}

func TestBody_Overlaps(t *testing.T) {
	a := NewBody(vec.Vec2Float{X: 0, Y: 0}, vec.Vec2Float{X: 32, Y: 32})
	b := NewBody(vec.Vec2Float{X: 20, Y: 0}, vec.Vec2Float{X: 24, Y: 24})
	c := NewBody(vec.Vec2Float{X: 100, Y: 0}, vec.Vec2Float{X: 24, Y: 24})

	assert.True(t, a.Overlaps(&b))
	assert.False(t, a.Overlaps(&c))
	assert.False(t, a.Overlaps(nil))
	assert.Equal(t, 20.0, a.DistanceTo(&b))
}
