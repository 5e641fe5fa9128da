package world

import (
	"testing"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMaps_Dimensions(t *testing.T) {
	maps := BuildMaps(12345, nil)

	sizes := map[MapID][2]int{
		MapVillage: {30, 20},
		MapForest:  {40, 30},
		MapRuins:   {35, 25},
		MapCaves:   {30, 25},
		MapTemple:  {50, 40},
	}
	require.Len(t, maps, len(sizes))
	for id, size := range sizes {
		m := maps[id]
		require.NotNil(t, m, "Карта %s должна существовать", id)
		assert.Equal(t, size[0], m.Width)
		assert.Equal(t, size[1], m.Height)
		assert.Len(t, m.tiles, size[0]*size[1])
		assert.Len(t, m.collision, size[0]*size[1], "Сетка коллизий совпадает с сеткой тайлов")
	}
}

func TestBuildMaps_Population(t *testing.T) {
	maps := BuildMaps(777, nil)

	countEnemies := func(m *Map, typ entity.EnemyType) int {
		n := 0
		for _, e := range m.Enemies() {
			if e.Type == typ {
				n++
			}
		}
		return n
	}
	countItems := func(m *Map, typ entity.ItemType) int {
		n := 0
		for _, it := range m.Items() {
			if it.Type == typ {
				n++
			}
		}
		return n
	}

	assert.Equal(t, 5, countEnemies(maps[MapForest], entity.ShadowCreature))
	assert.Equal(t, 3, countEnemies(maps[MapRuins], entity.AncientGuardian))
	assert.Equal(t, 4, countEnemies(maps[MapCaves], entity.ForestSpirit))
	assert.Equal(t, 1, countEnemies(maps[MapTemple], entity.ShadowBeast))

	assert.Equal(t, 1, countItems(maps[MapForest], entity.ItemMemoryFragment))
	assert.Equal(t, 1, countItems(maps[MapRuins], entity.ItemMemoryFragment))
	assert.Equal(t, 1, countItems(maps[MapCaves], entity.ItemMemoryFragment))
	assert.Equal(t, 2, countItems(maps[MapTemple], entity.ItemMemoryFragment))
	assert.Equal(t, 3, countItems(maps[MapVillage], entity.ItemHealingHerb))
	assert.Len(t, maps[MapVillage].NPCs(), 4)
}

func TestBuildMaps_EntitiesOnFreeTiles(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42, 9000} {
		maps := BuildMaps(seed, nil)
		for id, m := range maps {
			for _, e := range m.Entities() {
				pos := e.Core().Position
				assert.False(t, m.IsCollision(pos.X, pos.Y), "seed %d, карта %s: сущность %d в стене", seed, id, e.Core().ID)
			}
		}
	}
}

func TestBuildMaps_ExitsConnectPassableTiles(t *testing.T) {
	maps := BuildMaps(2024, nil)

	for id, m := range maps {
		require.NotEmpty(t, m.Exits(), "Карта %s без переходов", id)
		spawn := m.SpawnPoint(SpawnPlayer)
		assert.False(t, m.IsCollision(spawn.X, spawn.Y), "Точка появления %s проходима", id)

		for _, ex := range m.Exits() {
			assert.False(t, m.IsTileBlocked(ex.Tile.X, ex.Tile.Y), "Тайл перехода проходим")

			target, ok := maps[ex.Target]
			require.True(t, ok, "Переход %s -> %s ведёт на существующую карту", id, ex.Target)
			assert.False(t, target.IsTileBlocked(ex.Arrive.X, ex.Arrive.Y), "Тайл прибытия на %s проходим", ex.Target)

			_, onExit := target.ExitAt(ex.Arrive.ToWorldCenter(target.TileSize))
			assert.False(t, onExit, "Прибытие не попадает на переход обратно")
		}
	}
}

func TestBuildMaps_BordersAreSolid(t *testing.T) {
	m := BuildMaps(5, nil)[MapRuins]
	exitTiles := make(map[[2]int]bool)
	for _, ex := range m.Exits() {
		exitTiles[[2]int{ex.Tile.X, ex.Tile.Y}] = true
	}

	for x := 0; x < m.Width; x++ {
		for _, y := range []int{0, m.Height - 1} {
			if !exitTiles[[2]int{x, y}] {
				assert.True(t, m.IsTileBlocked(x, y))
			}
		}
	}
}

func TestBuildMaps_Deterministic(t *testing.T) {
	a := BuildMaps(31337, nil)
	b := BuildMaps(31337, nil)

	for id := range a {
		assert.Equal(t, a[id].tiles, b[id].tiles, "Раскладка %s повторяется для того же сида", id)
		assert.Equal(t, a[id].collision, b[id].collision)

		require.Equal(t, len(a[id].entities), len(b[id].entities))
		for i := range a[id].entities {
			assert.Equal(t, a[id].entities[i].Core().Position, b[id].entities[i].Core().Position)
		}
	}
}

func TestNoise_Range(t *testing.T) {
	n := NewNoise(99, 0.1)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			v := n.At(x, y)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.Equal(t, n.At(7, 3), NewNoise(99, 0.1).At(7, 3))
}
