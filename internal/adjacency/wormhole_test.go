package adjacency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/hexboard/internal/board"
	"github.com/annel0/hexboard/internal/hex"
)

// Типы тайлов тестовой доски
const (
	tileEmpty      = 1
	tileAlpha      = 26
	tileBeta       = 25
	tileStraight   = 83 // гиперлиния 0 <-> 3
	tileBent       = 84 // гиперлиния 3 -> 0, 0 -> 3 и 1
	tileLoopBack   = 85 // гиперлиния 3 -> 3
	tileDiagonal   = 86 // гиперлиния 1 <-> 4 лицом вверх, 2 <-> 5 рубашкой
	tileDoubleFork = 87 // гиперлиния 3 -> 1 и 5
)

func testCatalog() *board.Catalog {
	return board.NewCatalog(
		board.TileType{ID: tileEmpty},
		board.TileType{ID: tileAlpha, Wormholes: []string{"alpha"}},
		board.TileType{ID: tileBeta, Wormholes: []string{"beta"}},
		board.TileType{ID: tileStraight, Hyperlane: &board.ConnectorSpec{
			FaceUp:   [6][]int{{3}, nil, nil, {0}, nil, nil},
			FaceDown: [6][]int{{3}, nil, nil, {0}, nil, nil},
		}},
		board.TileType{ID: tileBent, Hyperlane: &board.ConnectorSpec{
			FaceUp: [6][]int{{3, 1}, nil, nil, {0}, nil, nil},
		}},
		board.TileType{ID: tileLoopBack, Hyperlane: &board.ConnectorSpec{
			FaceUp: [6][]int{nil, nil, nil, {3}, nil, nil},
		}},
		board.TileType{ID: tileDiagonal, Hyperlane: &board.ConnectorSpec{
			FaceUp:   [6][]int{nil, {4}, nil, nil, {1}, nil},
			FaceDown: [6][]int{nil, nil, {5}, nil, nil, {2}},
		}},
		board.TileType{ID: tileDoubleFork, Hyperlane: &board.ConnectorSpec{
			FaceUp: [6][]int{nil, nil, nil, {1, 5}, nil, nil},
		}},
	)
}

func tileAt(h hex.Hex, typeID int) board.Tile {
	return board.Tile{Hex: h, TypeID: typeID, FaceUp: true}
}

// east возвращает гекс на k шагов восточнее h
func east(h hex.Hex, k int) hex.Hex {
	return h.Add(hex.Direction(0).Scale(k))
}

func TestWormholesMatchingLabel(t *testing.T) {
	a := hex.MustFromIndex(0)
	b := hex.MustFromIndex(30)
	c := hex.MustFromIndex(12)
	snap := board.NewSnapshot(testCatalog(), []board.Tile{
		tileAt(a, tileAlpha),
		tileAt(b, tileAlpha),
		tileAt(c, tileBeta),
	}, nil)

	w := Wormholes{}
	assert.Equal(t, hex.NewSet(b), w.Adjacent(a, snap, Viewer{}))
	assert.Equal(t, hex.NewSet(a), w.Adjacent(b, snap, Viewer{}))
	assert.Equal(t, 0, w.Adjacent(c, snap, Viewer{}).Len())
}

func TestWormholesWithoutLabel(t *testing.T) {
	a := hex.MustFromIndex(4)
	snap := board.NewSnapshot(testCatalog(), []board.Tile{
		tileAt(a, tileEmpty),
		tileAt(hex.MustFromIndex(5), tileAlpha),
	}, nil)

	got := Wormholes{}.Adjacent(a, snap, Viewer{Links: []Link{{A: "alpha", B: "beta"}}})
	assert.Equal(t, 0, got.Len())

	got = Wormholes{}.Adjacent(hex.MustFromIndex(40), snap, Viewer{})
	assert.Equal(t, 0, got.Len(), "пустой гекс без жетона не смежен ни с чем")
}

func TestWormholesViewerWidening(t *testing.T) {
	a := hex.MustFromIndex(1)
	b := hex.MustFromIndex(20)
	snap := board.NewSnapshot(testCatalog(), []board.Tile{
		tileAt(a, tileAlpha),
		tileAt(b, tileBeta),
	}, nil)

	w := Wormholes{}
	assert.Equal(t, 0, w.Adjacent(a, snap, Viewer{}).Len())

	viewer := Viewer{Links: []Link{{A: "alpha", B: "beta"}}}
	assert.Equal(t, hex.NewSet(b), w.Adjacent(a, snap, viewer))
	assert.Equal(t, hex.NewSet(a), w.Adjacent(b, snap, viewer))

	// Связь одного запроса не сохраняется
	assert.Equal(t, 0, w.Adjacent(a, snap, Viewer{}).Len())

	// Базовая связь действует всегда
	based := Wormholes{Base: NewGraph(Link{A: "beta", B: "alpha"})}
	assert.Equal(t, hex.NewSet(b), based.Adjacent(a, snap, Viewer{}))
}

func TestWormholesTokens(t *testing.T) {
	a := hex.MustFromIndex(2)
	b := hex.MustFromIndex(9)
	c := hex.MustFromIndex(15)
	snap := board.NewSnapshot(testCatalog(), []board.Tile{
		tileAt(a, tileEmpty),
		tileAt(b, tileAlpha),
	}, []board.Token{
		{Hex: a, Wormhole: "alpha"},
		{Hex: c, Wormhole: "alpha"},
		{Hex: c, Wormhole: ""},
	})

	got := Wormholes{}.Adjacent(a, snap, Viewer{})
	assert.Equal(t, hex.NewSet(b, c), got)

	// Жетон на пустом гексе тоже работает
	got = Wormholes{}.Adjacent(c, snap, Viewer{})
	assert.Equal(t, hex.NewSet(a, b), got)
}

func TestWormholesNeverContainQueryHex(t *testing.T) {
	tiles := make([]board.Tile, 0, 19)
	for i, h := range hex.Range(hex.Origin, 2) {
		typeID := tileAlpha
		if i%2 == 1 {
			typeID = tileBeta
		}
		tiles = append(tiles, tileAt(h, typeID))
	}
	snap := board.NewSnapshot(testCatalog(), tiles, []board.Token{{Hex: hex.Origin, Wormhole: "alpha"}})
	viewer := Viewer{Links: []Link{{A: "alpha", B: "beta"}}}

	for _, h := range hex.Range(hex.Origin, 2) {
		got := Wormholes{}.Adjacent(h, snap, viewer)
		assert.False(t, got.Has(h), "гекс %v смежен сам с собой", h)
		assert.Equal(t, len(tiles)-1, got.Len())
	}
}

func TestGraph(t *testing.T) {
	g := NewGraph()
	assert.True(t, g.Connected("alpha", "alpha"))
	assert.False(t, g.Connected("alpha", "beta"))

	g2 := g.Connect("alpha", "beta")
	assert.False(t, g.Connected("alpha", "beta"), "исходный граф не меняется")
	assert.True(t, g2.Connected("alpha", "beta"))
	assert.True(t, g2.Connected("beta", "alpha"))

	// Только один шаг: alpha-beta-gamma не делает alpha-gamma
	g3 := g2.With(Link{A: "beta", B: "gamma"})
	assert.Equal(t, map[string]struct{}{"alpha": {}, "beta": {}}, g3.Reachable([]string{"alpha"}))
	assert.Equal(t, map[string]struct{}{"alpha": {}, "beta": {}, "gamma": {}}, g3.Reachable([]string{"beta"}))
	assert.False(t, g3.Connected("alpha", "gamma"))

	require.Equal(t, []Link{{A: "alpha", B: "beta"}, {A: "beta", B: "gamma"}}, g3.Links())
	assert.Empty(t, g.Links())

	same := g2.Connect("beta", "alpha")
	assert.Equal(t, g2.Links(), same.Links())
	assert.Equal(t, g2.Links(), g2.Connect("alpha", "alpha").Links())
}
