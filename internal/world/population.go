package world

import (
	"math/rand"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/logging"
	"github.com/annel0/memory-isle/internal/vec"
)

// spawnMargin — отступ от края карты для случайного размещения, в тайлах
const spawnMargin = 5

type npcSpawn struct {
	name string
	typ  entity.NPCType
	tile vec.Vec2
}

type enemySpawn struct {
	typ   entity.EnemyType
	count int
}

// mapDefinition описывает карту: размеры, переходы и население
type mapDefinition struct {
	id          MapID
	name        string
	description string
	lighting    string
	width       int
	height      int

	playerSpawn vec.Vec2
	exits       []Exit

	enemies   []enemySpawn
	boss      bool
	fragments int
	herbs     int
	npcs      []npcSpawn
}

var mapDefinitions = []mapDefinition{
	{
		id: MapVillage, name: "Деревня Надежды", description: "Деревня, где собрались пережившие проклятие.",
		lighting: "day", width: 30, height: 20,
		playerSpawn: vec.Vec2{X: 15, Y: 10},
		exits: []Exit{
			{Tile: vec.Vec2{X: 15, Y: 0}, Target: MapForest, Arrive: vec.Vec2{X: 20, Y: 28}},
			{Tile: vec.Vec2{X: 0, Y: 10}, Target: MapTemple, Arrive: vec.Vec2{X: 1, Y: 20}},
		},
		herbs: 3,
		npcs: []npcSpawn{
			{"Старейшина Торн", entity.NPCElder, vec.Vec2{X: 10, Y: 10}},
			{"Торговка Гвен", entity.NPCMerchant, vec.Vec2{X: 20, Y: 8}},
			{"Стражник Маркус", entity.NPCGuard, vec.Vec2{X: 15, Y: 16}},
			{"Странник Эли", entity.NPCWanderer, vec.Vec2{X: 25, Y: 15}},
		},
	},
	{
		id: MapForest, name: "Теневой лес", description: "Тёмный лес, где таятся теневые твари.",
		lighting: "night", width: 40, height: 30,
		playerSpawn: vec.Vec2{X: 20, Y: 28},
		exits: []Exit{
			{Tile: vec.Vec2{X: 20, Y: 29}, Target: MapVillage, Arrive: vec.Vec2{X: 15, Y: 1}},
			{Tile: vec.Vec2{X: 39, Y: 15}, Target: MapRuins, Arrive: vec.Vec2{X: 1, Y: 12}},
			{Tile: vec.Vec2{X: 20, Y: 0}, Target: MapCaves, Arrive: vec.Vec2{X: 15, Y: 23}},
		},
		enemies:   []enemySpawn{{entity.ShadowCreature, 5}},
		fragments: 1,
	},
	{
		id: MapRuins, name: "Древние руины", description: "Осыпающиеся руины, хранящие древние тайны.",
		lighting: "cave", width: 35, height: 25,
		playerSpawn: vec.Vec2{X: 1, Y: 12},
		exits: []Exit{
			{Tile: vec.Vec2{X: 0, Y: 12}, Target: MapForest, Arrive: vec.Vec2{X: 38, Y: 15}},
		},
		enemies:   []enemySpawn{{entity.AncientGuardian, 3}},
		fragments: 1,
	},
	{
		id: MapCaves, name: "Пещеры утёса", description: "Тёмные пещеры, вырубленные в скале.",
		lighting: "cave", width: 30, height: 25,
		playerSpawn: vec.Vec2{X: 15, Y: 23},
		exits: []Exit{
			{Tile: vec.Vec2{X: 15, Y: 24}, Target: MapForest, Arrive: vec.Vec2{X: 20, Y: 1}},
		},
		enemies:   []enemySpawn{{entity.ForestSpirit, 4}},
		fragments: 1,
	},
	{
		id: MapTemple, name: "Храм Теней", description: "Последнее подземелье, где ждёт Теневой зверь.",
		lighting: "temple", width: 50, height: 40,
		playerSpawn: vec.Vec2{X: 1, Y: 20},
		exits: []Exit{
			{Tile: vec.Vec2{X: 0, Y: 20}, Target: MapVillage, Arrive: vec.Vec2{X: 1, Y: 10}},
		},
		boss:      true,
		fragments: 2,
	},
}

// MapIDs возвращает идентификаторы всех карт в порядке определения
func MapIDs() []MapID {
	ids := make([]MapID, 0, len(mapDefinitions))
	for _, d := range mapDefinitions {
		ids = append(ids, d.id)
	}
	return ids
}

// BuildMaps строит все карты для сида: раскладку, переходы и население
func BuildMaps(seed int64, observer entity.Observer) map[MapID]*Map {
	gen := NewLayoutGenerator(seed)
	maps := make(map[MapID]*Map, len(mapDefinitions))
	for _, def := range mapDefinitions {
		maps[def.id] = buildMap(gen, def, observer)
	}
	return maps
}

func buildMap(gen *LayoutGenerator, def mapDefinition, observer entity.Observer) *Map {
	m := NewMap(def.id, def.width, def.height)
	m.Name = def.name
	m.Description = def.description
	m.Lighting = def.lighting

	gen.Generate(m)

	center := vec.Vec2{X: m.Width / 2, Y: m.Height / 2}
	for _, ex := range def.exits {
		m.AddExit(ex)
		CarvePath(m, ex.Tile, center)
	}
	m.SetTile(def.playerSpawn.X, def.playerSpawn.Y, TileGrass, false)
	m.SetSpawnPoint(SpawnPlayer, def.playerSpawn)

	rng := gen.Rand(def.id, 1)
	populate(m, def, rng, observer)

	logging.Debug("Карта %s построена: %dx%d, врагов %d, предметов %d",
		m.ID, m.Width, m.Height, len(m.enemies), len(m.items))
	return m
}

func populate(m *Map, def mapDefinition, rng *rand.Rand, observer entity.Observer) {
	for _, n := range def.npcs {
		m.SetTile(n.tile.X, n.tile.Y, TileGrass, false)
		npc := entity.NewNPC(n.tile.ToWorldCenter(m.TileSize), n.name, n.typ)
		npc.SetObserver(observer)
		m.AddEntity(npc)
	}

	for _, group := range def.enemies {
		for i := 0; i < group.count; i++ {
			tile := randomFreeTile(m, rng)
			enemy := entity.NewEnemy(tile.ToWorldCenter(m.TileSize), group.typ, rand.New(rand.NewSource(rng.Int63())))
			enemy.SetObserver(observer)
			m.AddEntity(enemy)
		}
	}

	if def.boss {
		tile := vec.Vec2{X: m.Width / 2, Y: m.Height / 2}
		m.SetTile(tile.X, tile.Y, TileGrass, false)
		boss := entity.NewEnemy(tile.ToWorldCenter(m.TileSize), entity.ShadowBeast, rand.New(rand.NewSource(rng.Int63())))
		boss.SetObserver(observer)
		m.AddEntity(boss)
	}

	for i := 0; i < def.fragments; i++ {
		m.AddEntity(entity.NewItem(randomFreeTile(m, rng).ToWorldCenter(m.TileSize), entity.ItemMemoryFragment))
	}
	for i := 0; i < def.herbs; i++ {
		m.AddEntity(entity.NewItem(randomFreeTile(m, rng).ToWorldCenter(m.TileSize), entity.ItemHealingHerb))
	}
}

// randomFreeTile выбирает проходимый тайл с отступом от края. Если свободных
// тайлов нет, расчищает случайный.
func randomFreeTile(m *Map, rng *rand.Rand) vec.Vec2 {
	minX, maxX := spawnMargin, m.Width-spawnMargin
	minY, maxY := spawnMargin, m.Height-spawnMargin
	if maxX <= minX {
		minX, maxX = 0, m.Width
	}
	if maxY <= minY {
		minY, maxY = 0, m.Height
	}

	for attempt := 0; attempt < 1000; attempt++ {
		t := vec.Vec2{X: minX + rng.Intn(maxX-minX), Y: minY + rng.Intn(maxY-minY)}
		if !m.IsTileBlocked(t.X, t.Y) {
			return t
		}
	}

	t := vec.Vec2{X: minX + rng.Intn(maxX-minX), Y: minY + rng.Intn(maxY-minY)}
	m.SetTile(t.X, t.Y, TileGrass, false)
	return t
}
