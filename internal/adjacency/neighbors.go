// Package adjacency определяет, какие гексы смежны по правилам игры:
// общая сторона, связанные червоточины и пути через гиперлинии.
//
// Все источники работают над снимком board.Query и не хранят состояния
// между запросами.
package adjacency

import "github.com/annel0/hexboard/internal/hex"

// Neighbors - смежность по общей стороне.
// Занятость соседних гексов не проверяется, это делает вызывающий.
type Neighbors struct{}

// Adjacent возвращает шесть соседей гекса
func (Neighbors) Adjacent(h hex.Hex) hex.Set {
	n := h.Neighbors()
	return hex.NewSet(n[:]...)
}
