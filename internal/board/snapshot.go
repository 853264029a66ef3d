package board

import (
	"sort"

	"github.com/annel0/hexboard/internal/hex"
	"github.com/annel0/hexboard/internal/vec"
)

// Snapshot - неизменяемый снимок доски в памяти
type Snapshot struct {
	catalog *Catalog
	tiles   map[hex.Hex]Tile
	ordered []Tile
	tokens  []Token
}

// NewSnapshot строит снимок из тайлов и жетонов.
// Если на одном гексе несколько тайлов, остаётся последний.
func NewSnapshot(catalog *Catalog, tiles []Tile, tokens []Token) *Snapshot {
	if catalog == nil {
		catalog = NewCatalog()
	}
	s := &Snapshot{
		catalog: catalog,
		tiles:   make(map[hex.Hex]Tile, len(tiles)),
		tokens:  append([]Token(nil), tokens...),
	}
	for _, t := range tiles {
		s.tiles[t.Hex] = t
	}

	s.ordered = make([]Tile, 0, len(s.tiles))
	for _, t := range s.tiles {
		s.ordered = append(s.ordered, t)
	}
	sort.Slice(s.ordered, func(i, j int) bool {
		return hex.ToIndex(s.ordered[i].Hex) < hex.ToIndex(s.ordered[j].Hex)
	})
	return s
}

// Object - тайл в том виде, в каком его видит стол: позиция, поворот, сторона
type Object struct {
	TypeID   int
	Position vec.Vec3Float
	Yaw      float64
	FaceUp   bool
}

// TokenObject - жетон червоточины на столе
type TokenObject struct {
	Wormhole string
	Position vec.Vec3Float
}

// SnapshotFromObjects переводит объекты стола в гексы и строит снимок
func SnapshotFromObjects(layout hex.Layout, catalog *Catalog, objects []Object, tokens []TokenObject) *Snapshot {
	tiles := make([]Tile, 0, len(objects))
	for _, o := range objects {
		tiles = append(tiles, Tile{
			Hex:    layout.FromPosition3(o.Position),
			TypeID: o.TypeID,
			Yaw:    o.Yaw,
			FaceUp: o.FaceUp,
		})
	}
	placed := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		placed = append(placed, Token{
			Hex:      layout.FromPosition3(t.Position),
			Wormhole: t.Wormhole,
		})
	}
	return NewSnapshot(catalog, tiles, placed)
}

// TileAt возвращает тайл на гексе
func (s *Snapshot) TileAt(h hex.Hex) (Tile, bool) {
	t, ok := s.tiles[h]
	return t, ok
}

// Tiles возвращает копию списка тайлов в порядке спирали
func (s *Snapshot) Tiles() []Tile {
	return append([]Tile(nil), s.ordered...)
}

// TileType возвращает статические данные типа тайла
func (s *Snapshot) TileType(id int) (TileType, bool) {
	return s.catalog.TileType(id)
}

// Tokens возвращает копию списка жетонов
func (s *Snapshot) Tokens() []Token {
	return append([]Token(nil), s.tokens...)
}

// Occupied сообщает, занят ли гекс тайлом
func (s *Snapshot) Occupied(h hex.Hex) bool {
	_, ok := s.tiles[h]
	return ok
}
