package board

import (
	"errors"
	"fmt"

	"github.com/annel0/hexboard/internal/hex"
)

// ErrNoOpenSlot возвращается, если в пределах maxRing нет свободного гекса
var ErrNoOpenSlot = errors.New("board: no open slot")

// OpenSlot возвращает первый свободный гекс в порядке спирали в радиусе maxRing
func OpenSlot(q Query, maxRing int) (hex.Hex, error) {
	for _, h := range hex.Range(hex.Origin, maxRing) {
		if _, taken := q.TileAt(h); !taken {
			return h, nil
		}
	}
	return hex.Hex{}, fmt.Errorf("%w: all %d hexes within ring %d are occupied",
		ErrNoOpenSlot, hex.RingOffset(maxRing+1), maxRing)
}
