package world

import (
	"hash/fnv"
	"math/rand"

	"github.com/annel0/memory-isle/internal/vec"
)

// Масштаб шума раскладки: препятствия собираются в рощи и завалы
const layoutNoiseScale = 0.15

// LayoutGenerator раскладывает тайлы карт. Для одного сида результат детерминирован.
type LayoutGenerator struct {
	Seed int64
}

// NewLayoutGenerator создаёт генератор раскладок
func NewLayoutGenerator(seed int64) *LayoutGenerator {
	return &LayoutGenerator{Seed: seed}
}

// mapSeed выводит сид конкретной карты из общего сида и идентификатора
func (g *LayoutGenerator) mapSeed(id MapID) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return g.Seed ^ int64(h.Sum64()&0x7fffffffffffffff)
}

// Rand возвращает детерминированный источник случайности карты
func (g *LayoutGenerator) Rand(id MapID, salt int64) *rand.Rand {
	return rand.New(rand.NewSource(g.mapSeed(id) + salt))
}

// scatter расставляет препятствие с плотностью density, модулированной шумом:
// средняя плотность сохраняется, но препятствия группируются.
type scatter struct {
	noise   *Noise
	rng     *rand.Rand
	density float64
}

func (s scatter) hit(x, y int) bool {
	return s.rng.Float64() < s.density*2*s.noise.At(x, y)
}

// Generate заполняет тайлы карты согласно её типу
func (g *LayoutGenerator) Generate(m *Map) {
	rng := g.Rand(m.ID, 0)
	noise := NewNoise(g.mapSeed(m.ID), layoutNoiseScale)

	switch m.ID {
	case MapVillage:
		g.village(m)
	case MapForest:
		g.bordered(m, TileTree, func(x, y int) (TileType, bool, bool) {
			switch {
			case (scatter{noise, rng, 0.3}).hit(x, y):
				return TileTree, true, true
			case rng.Float64() < 0.1:
				return TileWater, true, true
			}
			return 0, false, false
		})
		m.Clear(9, 9, 8, 8)
		m.Clear(m.Width-9, m.Height-9, 8, 8)
	case MapRuins:
		g.bordered(m, TileWall, func(x, y int) (TileType, bool, bool) {
			switch {
			case (scatter{noise, rng, 0.4}).hit(x, y):
				return TileStone, true, true
			case rng.Float64() < 0.2:
				return TileStone, false, true // обломки
			}
			return 0, false, false
		})
		m.Clear(m.Width/2, m.Height/2, 8, 8)
	case MapCaves:
		g.bordered(m, TileWall, func(x, y int) (TileType, bool, bool) {
			switch {
			case (scatter{noise, rng, 0.25}).hit(x, y):
				return TileStone, true, true
			case rng.Float64() < 0.15:
				return TileWater, true, true
			}
			return 0, false, false
		})
	case MapTemple:
		g.bordered(m, TileWall, func(x, y int) (TileType, bool, bool) {
			if x == m.Width/2 || y == m.Height/2 {
				return TileStone, false, true // коридоры
			}
			if (scatter{noise, rng, 0.3}).hit(x, y) {
				return TileStone, true, true // колонны
			}
			return 0, false, false
		})
		m.Clear(m.Width/2, m.Height/2, 12, 12)
	default:
		g.bordered(m, TileWall, func(x, y int) (TileType, bool, bool) { return 0, false, false })
	}
}

// bordered обносит карту стеной и заполняет внутренность функцией fill
func (g *LayoutGenerator) bordered(m *Map, border TileType, fill func(x, y int) (TileType, bool, bool)) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1 {
				m.SetTile(x, y, border, true)
				continue
			}
			if t, solid, ok := fill(x, y); ok {
				m.SetTile(x, y, t, solid)
			}
		}
	}
}

func (g *LayoutGenerator) village(m *Map) {
	cx, cy := m.Width/2, m.Height/2
	g.bordered(m, TileWall, func(x, y int) (TileType, bool, bool) {
		building := (x == 5 || x == 14) && y >= 5 && y <= 14 ||
			(y == 5 || y == 14) && x >= 5 && x <= 14
		switch {
		case building:
			return TileStone, true, true
		case x == cx || y == cy:
			return TileStone, false, true // дороги
		}
		return 0, false, false
	})
	m.Clear(cx, cy, 4, 4)
}

// CarvePath прокладывает проходимую дорожку между тайлами: сначала по X, затем по Y.
// Стены на пути превращаются в двери, остальные препятствия — в траву.
func CarvePath(m *Map, from, to vec.Vec2) {
	carve := func(x, y int) {
		t, ok := m.TileAt(x, y)
		if !ok || !t.Collision {
			return
		}
		if t.Type == TileWall || (t.Type == TileStone && m.ID == MapVillage) {
			m.SetTile(x, y, TileDoor, false)
			return
		}
		m.SetTile(x, y, TileGrass, false)
	}

	x, y := from.X, from.Y
	carve(x, y)
	for x != to.X {
		x += sign(to.X - x)
		carve(x, y)
	}
	for y != to.Y {
		y += sign(to.Y - y)
		carve(x, y)
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
