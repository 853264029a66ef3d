package hex

import "sort"

// Set - множество гексов
type Set map[Hex]struct{}

// NewSet создаёт множество из перечисленных гексов
func NewSet(hexes ...Hex) Set {
	s := make(Set, len(hexes))
	for _, h := range hexes {
		s[h] = struct{}{}
	}
	return s
}

// Add добавляет гексы
func (s Set) Add(hexes ...Hex) {
	for _, h := range hexes {
		s[h] = struct{}{}
	}
}

// Remove удаляет гекс
func (s Set) Remove(h Hex) {
	delete(s, h)
}

// Has проверяет наличие гекса
func (s Set) Has(h Hex) bool {
	_, ok := s[h]
	return ok
}

// Len возвращает размер множества
func (s Set) Len() int {
	return len(s)
}

// Union добавляет в s все элементы other
func (s Set) Union(other Set) {
	for h := range other {
		s[h] = struct{}{}
	}
}

// Sorted возвращает элементы в порядке спиральной нумерации
func (s Set) Sorted() []Hex {
	result := make([]Hex, 0, len(s))
	for h := range s {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		return ToIndex(result[i]) < ToIndex(result[j])
	})
	return result
}
