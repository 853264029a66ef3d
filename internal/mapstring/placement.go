package mapstring

import (
	"github.com/annel0/hexboard/internal/board"
	"github.com/annel0/hexboard/internal/hex"
)

// Placement - инструкция разместить тайл на гексе
type Placement struct {
	Hex   hex.Hex
	Entry Entry
}

// Tile переводит инструкцию в тайл доски.
// Сторона B означает, что тайл лежит рубашкой вверх.
func (p Placement) Tile() board.Tile {
	return board.Tile{
		Hex:    p.Hex,
		TypeID: p.Entry.Tile,
		Yaw:    board.YawFor(p.Entry.Rotation),
		FaceUp: p.Entry.Side != SideB,
	}
}

// Load разбирает строку карты в инструкции размещения.
// Пустые позиции (тайл <= 0) пропускаются.
func Load(text string) ([]Placement, error) {
	entries, err := Parse(text)
	if err != nil {
		return nil, err
	}
	placements := make([]Placement, 0, len(entries))
	for index, e := range entries {
		if e.Empty() {
			continue
		}
		h, err := hex.FromIndex(index)
		if err != nil {
			return nil, err
		}
		placements = append(placements, Placement{Hex: h, Entry: e})
	}
	return placements, nil
}

// Save собирает строку карты по тайлам доски.
// Пропуски заполняются нулями.
// Сторона и поворот пишутся только для повёрнутых или перевёрнутых тайлов.
func Save(tiles []board.Tile) string {
	byIndex := make(map[int]board.Tile, len(tiles))
	last := 0
	for _, t := range tiles {
		index := hex.ToIndex(t.Hex)
		byIndex[index] = t
		if index > last {
			last = index
		}
	}

	// Пустой центр пишется явно как {0}, иначе Parse подставит 18
	entries := make([]Entry, last+1)
	for index := range entries {
		t, ok := byIndex[index]
		if !ok {
			continue
		}
		entry := Entry{Tile: t.TypeID}
		if rot := t.Rotation(); rot != 0 || !t.FaceUp {
			entry.Side = SideA
			if !t.FaceUp {
				entry.Side = SideB
			}
			entry.Rotation = rot
			entry.HasRotation = true
		}
		entries[index] = entry
	}
	return Format(entries)
}
