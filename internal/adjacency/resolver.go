package adjacency

import (
	"sync"

	"github.com/annel0/hexboard/internal/board"
	"github.com/annel0/hexboard/internal/hex"
)

// Modifier добавляет смежность по домашним правилам или дополнениям
type Modifier func(h hex.Hex, q board.Query) []hex.Hex

// Resolver объединяет все источники смежности
type Resolver struct {
	neighbors  Neighbors
	wormholes  Wormholes
	hyperlanes Hyperlanes

	mu        sync.RWMutex
	modifiers []Modifier
}

// NewResolver создаёт резолвер с базовым графом червоточин
func NewResolver(base Graph) *Resolver {
	return &Resolver{
		wormholes: Wormholes{Base: base},
	}
}

// Register добавляет модификатор смежности
func (r *Resolver) Register(m Modifier) {
	if m == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modifiers = append(r.modifiers, m)
}

// Adjacent возвращает все гексы, смежные с h.
// Сам h никогда не входит в результат.
func (r *Resolver) Adjacent(h hex.Hex, q board.Query, viewer Viewer) hex.Set {
	result := r.neighbors.Adjacent(h)
	result.Union(r.wormholes.Adjacent(h, q, viewer))
	result.Union(r.hyperlanes.Adjacent(h, q))

	r.mu.RLock()
	modifiers := append([]Modifier(nil), r.modifiers...)
	r.mu.RUnlock()
	for _, m := range modifiers {
		result.Add(m(h, q)...)
	}

	result.Remove(h)
	return result
}

// AdjacentOccupied как Adjacent, но оставляет только гексы с тайлами
func (r *Resolver) AdjacentOccupied(h hex.Hex, q board.Query, viewer Viewer) hex.Set {
	return Occupied(r.Adjacent(h, q, viewer), q)
}

// Occupied отбирает гексы, на которых лежит тайл
func Occupied(s hex.Set, q board.Query) hex.Set {
	result := hex.NewSet()
	for h := range s {
		if _, ok := q.TileAt(h); ok {
			result.Add(h)
		}
	}
	return result
}
