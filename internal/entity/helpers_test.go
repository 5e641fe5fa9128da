package entity

import (
	"math"
	"math/rand"

	"github.com/annel0/memory-isle/internal/vec"
)

// fakeArea — карта из одного сплошного тайла и явного списка врагов
type fakeArea struct {
	tileSize float64
	walls    map[vec.Vec2]bool
	enemies  []*Enemy
}

func newFakeArea(walls ...vec.Vec2) *fakeArea {
	a := &fakeArea{tileSize: 32, walls: make(map[vec.Vec2]bool)}
	for _, w := range walls {
		a.walls[w] = true
	}
	return a
}

func (a *fakeArea) IsCollision(x, y float64) bool {
	tile := vec.Vec2{X: int(math.Floor(x / a.tileSize)), Y: int(math.Floor(y / a.tileSize))}
	return a.walls[tile]
}

func (a *fakeArea) EnemiesInRange(center vec.Vec2Float, radius float64) []*Enemy {
	var out []*Enemy
	for _, e := range a.enemies {
		if e.Active && e.Position.DistanceTo(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// recordingTarget считает полученный урон и опыт
type recordingTarget struct {
	Base
	damage     []int
	experience []int
}

func newRecordingTarget(pos vec.Vec2Float) *recordingTarget {
	return &recordingTarget{Base: newBase(KindPlayer, pos, vec.Vec2Float{X: 32, Y: 32})}
}

func (r *recordingTarget) TakeDamage(amount int) int {
	r.damage = append(r.damage, amount)
	return 100
}

func (r *recordingTarget) AddExperience(amount int) {
	r.experience = append(r.experience, amount)
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func pt(x, y float64) vec.Vec2Float {
	return vec.Vec2Float{X: x, Y: y}
}
