package hex

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeIndex возвращается для отрицательного индекса спирали
	ErrNegativeIndex = errors.New("hex: negative spiral index")
	// ErrIndexOutOfRange возвращается для индекса за последним целым кольцом,
	// которое помещается в int
	ErrIndexOutOfRange = errors.New("hex: spiral index out of range")
)

// Спиральная нумерация: индекс 0 - центр, дальше кольца наружу.
// Кольцо k занимает индексы [RingOffset(k), RingOffset(k)+6k-1].
// Внутри кольца сторона s начинается в углу k*directions[s] и идёт
// к следующему углу шагом directions[(s+2)%6]. Порядок - часть формата
// строки карты, менять его нельзя.

// RingOffset возвращает индекс первого гекса кольца k.
// Для k > MaxRing+1 результат переполняет int.
func RingOffset(k int) int {
	if k <= 0 {
		return 0
	}
	return 1 + 3*k*(k-1)
}

// MaxRing - последнее кольцо, все индексы которого помещаются в int.
// MaxIndex - последний индекс этого кольца.
var MaxRing, MaxIndex = largestRing()

// ringOffsetChecked как RingOffset, но сообщает о переполнении
func ringOffsetChecked(k int) (int, bool) {
	if k <= 1 {
		return RingOffset(k), true
	}
	if k > (math.MaxInt/3)/(k-1) {
		return 0, false
	}
	// 3k(k-1) <= MaxInt-1, так как MaxInt не делится на 3
	return 1 + 3*k*(k-1), true
}

func largestRing() (int, int) {
	k := int(math.Sqrt(float64(math.MaxInt) / 3))
	for {
		if _, ok := ringOffsetChecked(k + 1); !ok {
			break
		}
		k++
	}
	for {
		if _, ok := ringOffsetChecked(k); ok {
			break
		}
		k--
	}
	// Кольцо k начинается в int, но его конец может не поместиться
	offset, _ := ringOffsetChecked(k)
	return k - 1, offset - 1
}

// ringFor возвращает кольцо индекса > 0 без перебора колец
func ringFor(index int) int {
	k := int((3 + math.Sqrt(12*float64(index)-3)) / 6)
	k = max(1, min(k, MaxRing))
	for k > 1 && RingOffset(k) > index {
		k--
	}
	for k < MaxRing && RingOffset(k+1) <= index {
		k++
	}
	return k
}

// ToIndex возвращает позицию гекса в спиральной нумерации
func ToIndex(h Hex) int {
	k := h.Length()
	if k == 0 {
		return 0
	}

	var side, pos int
	switch {
	case h.S == -k && h.R >= 0 && h.R < k:
		side, pos = 0, h.R
	case h.R == k && h.Q <= 0 && -h.Q < k:
		side, pos = 1, -h.Q
	case h.Q == -k && h.S >= 0 && h.S < k:
		side, pos = 2, h.S
	case h.S == k && h.R <= 0 && -h.R < k:
		side, pos = 3, -h.R
	case h.R == -k && h.Q >= 0 && h.Q < k:
		side, pos = 4, h.Q
	default:
		// h.Q == k, 0 <= -h.S < k
		side, pos = 5, -h.S
	}
	return RingOffset(k) + side*k + pos
}

// FromIndex восстанавливает гекс по индексу спирали
func FromIndex(index int) (Hex, error) {
	if index < 0 {
		return Hex{}, fmt.Errorf("%w: %d", ErrNegativeIndex, index)
	}
	if index > MaxIndex {
		return Hex{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if index == 0 {
		return Origin, nil
	}

	ring := ringFor(index)
	local := index - RingOffset(ring)
	side := local / ring
	localPos := local - side*ring

	k := ring
	p := localPos
	switch side {
	case 0:
		return Hex{Q: k - p, R: p, S: -k}, nil
	case 1:
		return Hex{Q: -p, R: k, S: p - k}, nil
	case 2:
		return Hex{Q: -k, R: k - p, S: p}, nil
	case 3:
		return Hex{Q: p - k, R: -p, S: k}, nil
	case 4:
		return Hex{Q: p, R: -k, S: k - p}, nil
	default:
		return Hex{Q: k, R: p - k, S: -p}, nil
	}
}

// MustFromIndex как FromIndex, но паникует на недопустимом индексе
func MustFromIndex(index int) Hex {
	h, err := FromIndex(index)
	if err != nil {
		panic(err)
	}
	return h
}
