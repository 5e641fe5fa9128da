package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/memory-isle/internal/vec"
)

// recordingVisual запоминает последние вызовы визуального слоя
type recordingVisual struct {
	x, y    float64
	visible bool
	moves   int
}

func (v *recordingVisual) SetPosition(x, y float64) {
	v.x, v.y = x, y
	v.moves++
}

func (v *recordingVisual) SetVisible(visible bool) { v.visible = visible }

func TestBase_VisualFollowsEntity(t *testing.T) {
	it := NewItem(vec.Vec2Float{X: 10, Y: 20}, ItemHealingHerb)
	vis := &recordingVisual{}

	it.AttachVisual(vis)
	assert.Equal(t, 10.0, vis.x)
	assert.Equal(t, 20.0, vis.y)
	assert.True(t, vis.visible)

	it.Move(vec.Vec2Float{X: 5})
	assert.Equal(t, 15.0, vis.x)

	it.Destroy()
	assert.False(t, vis.visible)
	assert.True(t, it.IsDestroyed())
}
