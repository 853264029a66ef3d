// Package board описывает снимок игровой доски, который читают алгоритмы
// смежности: какие тайлы где лежат, как повёрнуты и какие статические
// данные есть у каждого типа тайла.
//
// Снимок строится заново перед каждым логически отдельным запросом.
// Тайлы на столе двигаются, поворачиваются и переворачиваются, поэтому
// снимок нельзя переиспользовать после изменения доски.
package board

import (
	"math"

	"github.com/annel0/hexboard/internal/hex"
)

// Tile - тайл системы, лежащий на гексе
type Tile struct {
	Hex    hex.Hex `json:"hex"`
	TypeID int     `json:"type_id"`
	Yaw    float64 `json:"yaw"` // поворот вокруг вертикали в градусах
	FaceUp bool    `json:"face_up"`
}

// Rotation возвращает поворот тайла в шагах по 60 градусов
func (t Tile) Rotation() int {
	return RotationSteps(t.Yaw)
}

// RotationSteps квантует угол к шагам по 60 градусов: round(yaw/60) mod 6.
// Неточный угол округляется: тайлы на столе никогда не лежат идеально ровно.
func RotationSteps(yaw float64) int {
	steps := int(math.Round(yaw/60)) % 6
	if steps < 0 {
		steps += 6
	}
	return steps
}

// YawFor возвращает угол для поворота steps
func YawFor(steps int) float64 {
	return float64(hex.NormalizeSide(steps)) * 60
}

// ConnectorSpec описывает внутренние соединения гиперлинии.
// Для каждой из шести сторон (в неповёрнутом положении тайла) перечислены
// стороны, с которыми она соединена внутри тайла, отдельно для лицевой и
// обратной стороны.
type ConnectorSpec struct {
	FaceUp   [6][]int `json:"face_up"`
	FaceDown [6][]int `json:"face_down"`
}

// Exits возвращает стороны выхода для входа через side в системе тайла
func (c ConnectorSpec) Exits(faceUp bool, side int) []int {
	table := c.FaceDown
	if faceUp {
		table = c.FaceUp
	}
	return table[hex.NormalizeSide(side)]
}

// TileType - статические данные типа тайла
type TileType struct {
	ID        int
	Wormholes []string
	Hyperlane *ConnectorSpec
}

// IsHyperlane сообщает, что тайл является гиперлинией
func (tt TileType) IsHyperlane() bool {
	return tt.Hyperlane != nil
}

// Token - отдельный объект на доске, несущий червоточину
type Token struct {
	Hex      hex.Hex `json:"hex"`
	Wormhole string  `json:"wormhole"`
}

// Query - доступ на чтение к состоянию доски.
// Реализации не должны меняться во время одного запроса смежности.
type Query interface {
	// TileAt возвращает тайл на гексе
	TileAt(h hex.Hex) (Tile, bool)
	// Tiles возвращает все занятые гексы в порядке спирали
	Tiles() []Tile
	// TileType возвращает статические данные типа тайла
	TileType(id int) (TileType, bool)
	// Tokens возвращает жетоны червоточин
	Tokens() []Token
}

// IsHyperlaneAt сообщает, лежит ли на гексе гиперлиния
func IsHyperlaneAt(q Query, h hex.Hex) bool {
	tile, ok := q.TileAt(h)
	if !ok {
		return false
	}
	tt, ok := q.TileType(tile.TypeID)
	return ok && tt.IsHyperlane()
}
