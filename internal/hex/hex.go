// Package hex описывает гексагональную сетку игровой доски в кубических
// координатах (q, r, s), где q + r + s = 0.
package hex

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrInvariant возвращается, если q + r + s != 0
	ErrInvariant = errors.New("hex: q + r + s must be 0")
	// ErrInvalidCoordinate - то же условие под именем, которое используют вызывающие
	ErrInvalidCoordinate = ErrInvariant
	// ErrParse возвращается для строки, не похожей на "<q,r,s>"
	ErrParse = errors.New("hex: malformed coordinate string")
)

// Hex - неизменяемая координата гекса.
// Нулевое значение - центр доски <0,0,0>.
type Hex struct {
	Q, R, S int
}

// Origin - центральный гекс
var Origin = Hex{}

// New создаёт гекс и проверяет инвариант q + r + s = 0
func New(q, r, s int) (Hex, error) {
	if q+r+s != 0 {
		return Hex{}, fmt.Errorf("%w: <%d,%d,%d>", ErrInvariant, q, r, s)
	}
	return Hex{Q: q, R: r, S: s}, nil
}

// MustNew как New, но паникует при нарушении инварианта
func MustNew(q, r, s int) Hex {
	h, err := New(q, r, s)
	if err != nil {
		panic(err)
	}
	return h
}

// Axial создаёт гекс из осевых координат, s вычисляется
func Axial(q, r int) Hex {
	return Hex{Q: q, R: r, S: -q - r}
}

var hexPattern = regexp.MustCompile(`^<\s*(-?\d+)\s*,\s*(-?\d+)\s*,\s*(-?\d+)\s*>$`)

// Parse разбирает каноническую строку "<q,r,s>"
func Parse(s string) (Hex, error) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return Hex{}, fmt.Errorf("%w: %q", ErrParse, s)
	}
	var coords [3]int
	for i := range coords {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Hex{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
		}
		coords[i] = v
	}
	return New(coords[0], coords[1], coords[2])
}

// String возвращает каноническое представление "<q,r,s>"
func (h Hex) String() string {
	return "<" + strconv.Itoa(h.Q) + "," + strconv.Itoa(h.R) + "," + strconv.Itoa(h.S) + ">"
}

// Valid проверяет инвариант для значений, собранных литералом
func (h Hex) Valid() bool {
	return h.Q+h.R+h.S == 0
}

// Add возвращает сумму двух гексов
func (h Hex) Add(other Hex) Hex {
	return Hex{Q: h.Q + other.Q, R: h.R + other.R, S: h.S + other.S}
}

// Sub возвращает разность двух гексов
func (h Hex) Sub(other Hex) Hex {
	return Hex{Q: h.Q - other.Q, R: h.R - other.R, S: h.S - other.S}
}

// Scale умножает гекс-вектор на скаляр
func (h Hex) Scale(k int) Hex {
	return Hex{Q: h.Q * k, R: h.R * k, S: h.S * k}
}

// Length - расстояние от центра доски, то есть номер кольца
func (h Hex) Length() int {
	return max(abs(h.Q), abs(h.R), abs(h.S))
}

// Distance вычисляет расстояние между гексами
func Distance(a, b Hex) int {
	return a.Sub(b).Length()
}

// Ring возвращает гексы на расстоянии ровно k от center в порядке спирали.
// Для k == 0 это сам center.
func Ring(center Hex, k int) []Hex {
	if k < 0 {
		return nil
	}
	if k == 0 {
		return []Hex{center}
	}
	result := make([]Hex, 0, 6*k)
	for side := 0; side < 6; side++ {
		start := directions[side].Scale(k)
		step := directions[(side+2)%6]
		for p := 0; p < k; p++ {
			result = append(result, center.Add(start).Add(step.Scale(p)))
		}
	}
	return result
}

// Range возвращает все гексы в радиусе k от center, кольцо за кольцом
func Range(center Hex, k int) []Hex {
	result := make([]Hex, 0, 1+3*k*(k+1))
	for ring := 0; ring <= k; ring++ {
		result = append(result, Ring(center, ring)...)
	}
	return result
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
