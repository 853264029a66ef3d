package adjacency

import (
	"github.com/annel0/hexboard/internal/board"
	"github.com/annel0/hexboard/internal/hex"
)

// Viewer - контекст запроса: способности фракции и активные карты,
// которые связывают разные типы червоточин. Живёт один запрос.
type Viewer struct {
	Links []Link
}

// Wormholes - смежность через червоточины одного или связанных типов
type Wormholes struct {
	// Base - связи, действующие для всех запросов
	Base Graph
}

// Adjacent возвращает гексы, связанные с h через червоточины.
// Сам h в результат не входит.
func (w Wormholes) Adjacent(h hex.Hex, q board.Query, viewer Viewer) hex.Set {
	result := hex.NewSet()

	own := labelsAt(q, h)
	if len(own) == 0 {
		return result
	}

	reachable := w.Base.With(viewer.Links...).Reachable(own)
	for other, labels := range wormholeMap(q) {
		if other == h {
			continue
		}
		for _, label := range labels {
			if _, ok := reachable[label]; ok {
				result.Add(other)
				break
			}
		}
	}
	return result
}

// labelsAt собирает червоточины тайла на гексе и жетонов на нём
func labelsAt(q board.Query, h hex.Hex) []string {
	var labels []string
	if tile, ok := q.TileAt(h); ok {
		if tt, ok := q.TileType(tile.TypeID); ok {
			labels = append(labels, tt.Wormholes...)
		}
	}
	for _, token := range q.Tokens() {
		if token.Hex == h && token.Wormhole != "" {
			labels = append(labels, token.Wormhole)
		}
	}
	return labels
}

// wormholeMap возвращает все гексы с червоточинами
func wormholeMap(q board.Query) map[hex.Hex][]string {
	result := make(map[hex.Hex][]string)
	for _, tile := range q.Tiles() {
		tt, ok := q.TileType(tile.TypeID)
		if !ok || len(tt.Wormholes) == 0 {
			continue
		}
		result[tile.Hex] = append(result[tile.Hex], tt.Wormholes...)
	}
	for _, token := range q.Tokens() {
		if token.Wormhole == "" {
			continue
		}
		result[token.Hex] = append(result[token.Hex], token.Wormhole)
	}
	return result
}
