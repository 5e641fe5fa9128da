package world

// TileSize — сторона тайла в мировых единицах
const TileSize = 32.0

// TileType — тип клетки карты
type TileType uint8

const (
	TileGrass TileType = iota
	TileWater
	TileStone
	TileSand
	TileTree
	TileWall
	TileDoor
	TileBridge
)

var tileNames = [...]string{"grass", "water", "stone", "sand", "tree", "wall", "door", "bridge"}

// String возвращает имя типа тайла
func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "unknown"
}

// Tile — содержимое клетки вместе с флагом коллизии
type Tile struct {
	Type      TileType
	Collision bool
	X, Y      int
}
