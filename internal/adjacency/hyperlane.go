package adjacency

import (
	"github.com/annel0/hexboard/internal/board"
	"github.com/annel0/hexboard/internal/hex"
)

// Hyperlanes - смежность через цепочки тайлов-гиперлиний
type Hyperlanes struct{}

// connection - переход через сторону side с гекса source на гекс dest
type connection struct {
	source hex.Hex
	dest   hex.Hex
	side   int
}

// visitKey - тайл и сторона, через которую в него вошли
type visitKey struct {
	hex  hex.Hex
	side int
}

// Adjacent возвращает гексы, до которых можно дойти от h через одну или
// несколько гиперлиний. Гиперлинии могут образовывать петли, поэтому каждая
// пара (тайл, сторона входа) обходится не больше одного раза.
func (Hyperlanes) Adjacent(h hex.Hex, q board.Query) hex.Set {
	result := hex.NewSet()

	var queue []connection
	for side, n := range h.Neighbors() {
		if board.IsHyperlaneAt(q, n) {
			queue = append(queue, connection{source: h, dest: n, side: side})
		}
	}

	visited := make(map[visitKey]struct{})
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		key := visitKey{hex: c.dest, side: c.side}
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		tile, ok := q.TileAt(c.dest)
		if !ok {
			continue
		}
		tt, ok := q.TileType(tile.TypeID)
		if !ok || !tt.IsHyperlane() {
			continue
		}

		rotation := tile.Rotation()
		entry := hex.OppositeSide(c.side)
		alignment := hex.NormalizeSide(entry - rotation)
		for _, exit := range tt.Hyperlane.Exits(tile.FaceUp, alignment) {
			side := hex.NormalizeSide(exit + rotation)
			next := c.dest.Neighbor(side)
			if board.IsHyperlaneAt(q, next) {
				queue = append(queue, connection{source: c.dest, dest: next, side: side})
				continue
			}
			if _, occupied := q.TileAt(next); occupied {
				result.Add(next)
			}
		}
	}

	result.Remove(h)
	return result
}
