package world

import (
	"math"

	"github.com/annel0/memory-isle/internal/entity"
	"github.com/annel0/memory-isle/internal/vec"
)

// MapID — идентификатор карты
type MapID string

const (
	MapVillage MapID = "village"
	MapForest  MapID = "forest"
	MapRuins   MapID = "ruins"
	MapCaves   MapID = "caves"
	MapTemple  MapID = "temple"
)

// SpawnKind — назначение точки появления
type SpawnKind string

const (
	SpawnPlayer SpawnKind = "player"
	SpawnEnemy  SpawnKind = "enemy"
	SpawnItem   SpawnKind = "item"
)

// Exit — переход на другую карту. Срабатывает, когда игрок стоит на тайле Tile.
type Exit struct {
	Tile   vec.Vec2
	Target MapID
	Arrive vec.Vec2 // Тайл появления на целевой карте
}

// Map — тайловая сетка, сетка коллизий и реестр сущностей.
// Размеры сеток фиксируются при создании; всё за пределами карты считается стеной.
type Map struct {
	ID          MapID
	Name        string
	Description string
	Lighting    string

	Width    int
	Height   int
	TileSize float64

	tiles     []TileType
	collision []bool

	entities []entity.Entity
	enemies  []*entity.Enemy
	npcs     []*entity.NPC
	items    []*entity.Item
	player   *entity.Player

	exits  []Exit
	spawns map[SpawnKind]vec.Vec2
}

// NewMap создаёт карту, целиком покрытую проходимой травой
func NewMap(id MapID, width, height int) *Map {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Map{
		ID:        id,
		Width:     width,
		Height:    height,
		TileSize:  TileSize,
		tiles:     make([]TileType, width*height),
		collision: make([]bool, width*height),
		spawns:    make(map[SpawnKind]vec.Vec2),
	}
}

// InBounds сообщает, лежит ли тайл внутри карты
func (m *Map) InBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && tx < m.Width && ty < m.Height
}

func (m *Map) index(tx, ty int) int {
	return ty*m.Width + tx
}

// WorldToTile переводит мировые координаты в тайловые делением с округлением вниз
func (m *Map) WorldToTile(x, y float64) vec.Vec2 {
	return vec.Vec2{X: int(math.Floor(x / m.TileSize)), Y: int(math.Floor(y / m.TileSize))}
}

// IsCollision сообщает, заблокирована ли мировая точка
func (m *Map) IsCollision(x, y float64) bool {
	t := m.WorldToTile(x, y)
	if !m.InBounds(t.X, t.Y) {
		return true
	}
	return m.collision[m.index(t.X, t.Y)]
}

// IsTileBlocked сообщает, заблокирован ли тайл
func (m *Map) IsTileBlocked(tx, ty int) bool {
	if !m.InBounds(tx, ty) {
		return true
	}
	return m.collision[m.index(tx, ty)]
}

// TileAt возвращает тайл по тайловым координатам
func (m *Map) TileAt(tx, ty int) (Tile, bool) {
	if !m.InBounds(tx, ty) {
		return Tile{}, false
	}
	i := m.index(tx, ty)
	return Tile{Type: m.tiles[i], Collision: m.collision[i], X: tx, Y: ty}, true
}

// TileAtWorld возвращает тайл под мировой точкой
func (m *Map) TileAtWorld(x, y float64) (Tile, bool) {
	t := m.WorldToTile(x, y)
	return m.TileAt(t.X, t.Y)
}

// SetTile меняет тайл; координаты вне карты игнорируются
func (m *Map) SetTile(tx, ty int, t TileType, collision bool) {
	if !m.InBounds(tx, ty) {
		return
	}
	i := m.index(tx, ty)
	m.tiles[i] = t
	m.collision[i] = collision
}

// Clear делает прямоугольник проходимой травой
func (m *Map) Clear(centerX, centerY, width, height int) {
	startX := centerX - width/2
	startY := centerY - height/2
	for y := startY; y < startY+height; y++ {
		for x := startX; x < startX+width; x++ {
			m.SetTile(x, y, TileGrass, false)
		}
	}
}

// AddEntity регистрирует сущность. Игрок привязывается отдельно.
func (m *Map) AddEntity(e entity.Entity) {
	switch v := e.(type) {
	case *entity.Player:
		m.AttachPlayer(v)
		return
	case *entity.Enemy:
		m.enemies = append(m.enemies, v)
		if m.player != nil {
			v.SetTarget(m.player)
		}
	case *entity.NPC:
		m.npcs = append(m.npcs, v)
	case *entity.Item:
		m.items = append(m.items, v)
	}
	m.entities = append(m.entities, e)
}

// RemoveEntity убирает сущность из всех реестров
func (m *Map) RemoveEntity(e entity.Entity) {
	if p, ok := e.(*entity.Player); ok && p == m.player {
		m.player = nil
		return
	}
	m.entities = removeValue(m.entities, e)
	switch v := e.(type) {
	case *entity.Enemy:
		m.enemies = removeValue(m.enemies, v)
	case *entity.NPC:
		m.npcs = removeValue(m.npcs, v)
	case *entity.Item:
		m.items = removeValue(m.items, v)
	}
}

func removeValue[T comparable](list []T, v T) []T {
	for i, own := range list {
		if own == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// AttachPlayer делает игрока целью всех врагов карты
func (m *Map) AttachPlayer(p *entity.Player) {
	m.player = p
	m.rebindTargets()
}

// Player возвращает привязанного игрока
func (m *Map) Player() *entity.Player {
	return m.player
}

// Entities возвращает все зарегистрированные сущности, кроме игрока
func (m *Map) Entities() []entity.Entity {
	return append([]entity.Entity(nil), m.entities...)
}

// Enemies возвращает врагов карты
func (m *Map) Enemies() []*entity.Enemy {
	return append([]*entity.Enemy(nil), m.enemies...)
}

// NPCs возвращает жителей карты
func (m *Map) NPCs() []*entity.NPC {
	return append([]*entity.NPC(nil), m.npcs...)
}

// Items возвращает предметы карты
func (m *Map) Items() []*entity.Item {
	return append([]*entity.Item(nil), m.items...)
}

// EnemiesInRange возвращает живых врагов в радиусе от точки
func (m *Map) EnemiesInRange(center vec.Vec2Float, radius float64) []*entity.Enemy {
	var out []*entity.Enemy
	for _, e := range m.enemies {
		if e.Active && e.Position.DistanceTo(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesInRadius возвращает сущности, чей центр лежит в радиусе от точки
func (m *Map) EntitiesInRadius(center vec.Vec2Float, radius float64) []entity.Entity {
	var out []entity.Entity
	for _, e := range m.entities {
		if e.Core().Position.DistanceTo(center) <= radius {
			out = append(out, e)
		}
	}
	return out
}

// EntitiesInRect возвращает сущности, чей хитбокс пересекает прямоугольник
func (m *Map) EntitiesInRect(r vec.Rect) []entity.Entity {
	var out []entity.Entity
	for _, e := range m.entities {
		if e.Core().Box.Overlaps(r) {
			out = append(out, e)
		}
	}
	return out
}

// AddExit добавляет переход; тайл перехода становится проходимой дверью
func (m *Map) AddExit(ex Exit) {
	m.SetTile(ex.Tile.X, ex.Tile.Y, TileDoor, false)
	m.exits = append(m.exits, ex)
}

// Exits возвращает переходы карты
func (m *Map) Exits() []Exit {
	return append([]Exit(nil), m.exits...)
}

// ExitAt возвращает переход, на тайле которого лежит мировая точка
func (m *Map) ExitAt(pos vec.Vec2Float) (Exit, bool) {
	t := m.WorldToTile(pos.X, pos.Y)
	for _, ex := range m.exits {
		if ex.Tile == t {
			return ex, true
		}
	}
	return Exit{}, false
}

// SetSpawnPoint задаёт тайл появления
func (m *Map) SetSpawnPoint(kind SpawnKind, tile vec.Vec2) {
	m.spawns[kind] = tile
}

// SpawnPoint возвращает центр тайла появления; по умолчанию — центр карты
func (m *Map) SpawnPoint(kind SpawnKind) vec.Vec2Float {
	tile, ok := m.spawns[kind]
	if !ok {
		tile = vec.Vec2{X: m.Width / 2, Y: m.Height / 2}
	}
	return tile.ToWorldCenter(m.TileSize)
}

// Update выполняет тик карты: обновление сущностей, касания с игроком,
// удаление уничтоженных и перепривязку целей врагов.
func (m *Map) Update(dt float64) {
	if m.player != nil {
		m.player.Update(dt)
	}
	for _, e := range m.entities {
		if e.Core().Active {
			e.Update(dt)
		}
	}

	m.resolveContacts()
	m.prune()
	m.rebindTargets()
}

// resolveContacts сообщает о пересечении хитбоксов живых сущностей с игроком
func (m *Map) resolveContacts() {
	p := m.player
	if p == nil || !p.Active {
		return
	}
	for _, e := range m.entities {
		if !e.Core().Active || !p.CollidesWith(e.Core()) {
			continue
		}
		e.OnCollide(p)
		p.OnCollide(e)
	}
}

func (m *Map) prune() {
	alive := m.entities[:0]
	for _, e := range m.entities {
		if !e.Core().IsDestroyed() {
			alive = append(alive, e)
		}
	}
	for i := len(alive); i < len(m.entities); i++ {
		m.entities[i] = nil
	}
	m.entities = alive

	m.enemies = pruneDestroyed(m.enemies)
	m.npcs = pruneDestroyed(m.npcs)
	m.items = pruneDestroyed(m.items)
}

func pruneDestroyed[T entity.Entity](list []T) []T {
	out := list[:0]
	for _, e := range list {
		if !e.Core().IsDestroyed() {
			out = append(out, e)
		}
	}
	return out
}

func (m *Map) rebindTargets() {
	for _, e := range m.enemies {
		if m.player != nil {
			e.SetTarget(m.player)
		} else {
			e.SetTarget(nil)
		}
	}
}
