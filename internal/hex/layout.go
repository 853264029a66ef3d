package hex

import (
	"math"

	"github.com/annel0/hexboard/internal/vec"
)

// DefaultHalfSize - половина размера тайла системы в единицах стола
const DefaultHalfSize = 3.5

const sqrt3 = 1.7320508075688772935274463415059

// directions - шесть соседей против часовой стрелки, начиная с "востока".
// Индекс направления служит номером стороны гекса: сторона i смотрит на
// соседа directions[i], противоположная сторона - (i+3)%6.
var directions = [6]Hex{
	{Q: 1, R: 0, S: -1},
	{Q: 0, R: 1, S: -1},
	{Q: -1, R: 1, S: 0},
	{Q: -1, R: 0, S: 1},
	{Q: 0, R: -1, S: 1},
	{Q: 1, R: -1, S: 0},
}

// Directions возвращает копию таблицы направлений
func Directions() [6]Hex {
	return directions
}

// Direction возвращает смещение для стороны side (берётся по модулю 6)
func Direction(side int) Hex {
	return directions[NormalizeSide(side)]
}

// NormalizeSide приводит номер стороны к диапазону 0..5
func NormalizeSide(side int) int {
	side %= 6
	if side < 0 {
		side += 6
	}
	return side
}

// OppositeSide возвращает сторону соседа, общую со стороной side
func OppositeSide(side int) int {
	return NormalizeSide(side + 3)
}

// Neighbor возвращает соседа через сторону side
func (h Hex) Neighbor(side int) Hex {
	return h.Add(Direction(side))
}

// Neighbors возвращает шесть соседей в порядке сторон 0..5
func (h Hex) Neighbors() [6]Hex {
	var result [6]Hex
	for i, dir := range directions {
		result[i] = h.Add(dir)
	}
	return result
}

// Layout переводит гексы в координаты стола и обратно (pointy top)
type Layout struct {
	HalfSize float64
	Origin   vec.Vec2Float
}

// DefaultLayout возвращает раскладку стола с центром в нуле
func DefaultLayout() Layout {
	return Layout{HalfSize: DefaultHalfSize}
}

func (l Layout) halfSize() float64 {
	if l.HalfSize <= 0 {
		return DefaultHalfSize
	}
	return l.HalfSize
}

// ToPosition возвращает центр гекса на плоскости стола
func (l Layout) ToPosition(h Hex) vec.Vec2Float {
	size := l.halfSize()
	x := (sqrt3*float64(h.Q) + sqrt3/2*float64(h.R)) * size
	y := (3.0 / 2.0 * float64(h.R)) * size
	return vec.Vec2Float{X: x + l.Origin.X, Y: y + l.Origin.Y}
}

// ToPosition3 как ToPosition, высота передаётся без изменений
func (l Layout) ToPosition3(h Hex, z float64) vec.Vec3Float {
	return l.ToPosition(h).WithZ(z)
}

// FromPosition возвращает гекс, внутри которого лежит точка
func (l Layout) FromPosition(p vec.Vec2Float) Hex {
	size := l.halfSize()
	x := (p.X - l.Origin.X) / size
	y := (p.Y - l.Origin.Y) / size
	q := sqrt3/3*x - 1.0/3*y
	r := 2.0 / 3 * y
	return cubeRound(q, r, -q-r)
}

// FromPosition3 игнорирует высоту объекта
func (l Layout) FromPosition3(p vec.Vec3Float) Hex {
	return l.FromPosition(p.ToVec2())
}

// Corners возвращает шесть углов гекса против часовой стрелки.
// Угол i лежит под углом 60*i+30 градусов, сторона i - между углами i-1 и i.
func (l Layout) Corners(h Hex) [6]vec.Vec2Float {
	center := l.ToPosition(h)
	size := l.halfSize()
	var result [6]vec.Vec2Float
	for i := range result {
		angle := math.Pi / 180 * (60*float64(i) + 30)
		result[i] = vec.Vec2Float{
			X: center.X + size*math.Cos(angle),
			Y: center.Y + size*math.Sin(angle),
		}
	}
	return result
}

// cubeRound округляет дробные кубические координаты к ближайшему гексу.
// Координата с наибольшей ошибкой округления пересчитывается из двух других.
func cubeRound(q, r, s float64) Hex {
	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)
	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)
	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	} else {
		rs = -rq - rr
	}
	return Hex{Q: int(rq), R: int(rr), S: int(rs)}
}
