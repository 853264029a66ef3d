package board

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog хранит статические данные типов тайлов
type Catalog struct {
	types map[int]TileType
}

// NewCatalog создаёт каталог из перечисленных типов
func NewCatalog(types ...TileType) *Catalog {
	c := &Catalog{types: make(map[int]TileType, len(types))}
	for _, tt := range types {
		c.types[tt.ID] = tt
	}
	return c
}

// TileType возвращает данные типа тайла
func (c *Catalog) TileType(id int) (TileType, bool) {
	tt, ok := c.types[id]
	return tt, ok
}

// IDs возвращает идентификаторы типов по возрастанию
func (c *Catalog) IDs() []int {
	ids := make([]int, 0, len(c.types))
	for id := range c.types {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len возвращает число типов в каталоге
func (c *Catalog) Len() int {
	return len(c.types)
}

// catalogFile - формат YAML-файла каталога
type catalogFile struct {
	Tiles []catalogTile `yaml:"tiles"`
}

type catalogTile struct {
	ID        int               `yaml:"id"`
	Wormholes []string          `yaml:"wormholes"`
	Hyperlane *catalogHyperlane `yaml:"hyperlane"`
}

type catalogHyperlane struct {
	FaceUp   [][]int `yaml:"face_up"`
	FaceDown [][]int `yaml:"face_down"`
}

// LoadCatalog читает каталог тайлов из YAML
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return NewCatalog(), nil
		}
		return nil, fmt.Errorf("ошибка разбора каталога тайлов: %w", err)
	}

	types := make([]TileType, 0, len(file.Tiles))
	seen := make(map[int]struct{}, len(file.Tiles))
	for _, t := range file.Tiles {
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("тайл %d описан в каталоге дважды", t.ID)
		}
		seen[t.ID] = struct{}{}

		tt := TileType{ID: t.ID, Wormholes: t.Wormholes}
		if t.Hyperlane != nil {
			spec := &ConnectorSpec{}
			if err := fillConnectors(&spec.FaceUp, t.Hyperlane.FaceUp); err != nil {
				return nil, fmt.Errorf("тайл %d, face_up: %w", t.ID, err)
			}
			if err := fillConnectors(&spec.FaceDown, t.Hyperlane.FaceDown); err != nil {
				return nil, fmt.Errorf("тайл %d, face_down: %w", t.ID, err)
			}
			tt.Hyperlane = spec
		}
		types = append(types, tt)
	}
	return NewCatalog(types...), nil
}

// LoadCatalogFile читает каталог тайлов из файла
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f)
}

// fillConnectors переносит таблицу из YAML, пустая таблица означает отсутствие соединений
func fillConnectors(dst *[6][]int, src [][]int) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) != 6 {
		return fmt.Errorf("ожидалось 6 сторон, получено %d", len(src))
	}
	for side, exits := range src {
		for _, exit := range exits {
			if exit < 0 || exit > 5 {
				return fmt.Errorf("сторона %d: недопустимый выход %d", side, exit)
			}
		}
		dst[side] = append([]int(nil), exits...)
	}
	return nil
}
