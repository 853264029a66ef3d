// Package mapstring реализует текстовый формат раскладки доски ("map string").
//
// Строка - упорядоченный список тайлов по спиральной нумерации гексов:
//
//	{4} 7 18 83B2, 0 26
//
// Необязательный первый токен в фигурных скобках задаёт центральный тайл
// (индекс 0). Без него центр - тайл 18; если при этом первый токен не 18,
// тайл 18 вставляется в позицию 0 (историческое соглашение формата).
package mapstring

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CenterTile - тайл центра доски по умолчанию
const CenterTile = 18

// ErrFormat возвращается для строки, не соответствующей грамматике
var ErrFormat = errors.New("mapstring: invalid map string")

// Side - сторона двустороннего тайла
type Side byte

const (
	SideNone Side = 0
	SideA    Side = 'A'
	SideB    Side = 'B'
)

// String возвращает букву стороны или пустую строку
func (s Side) String() string {
	if s == SideNone {
		return ""
	}
	return string(rune(s))
}

// Entry - одна позиция раскладки
type Entry struct {
	Tile        int  `json:"tile" yaml:"tile"`
	Side        Side `json:"side,omitempty" yaml:"side,omitempty"`
	Rotation    int  `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	HasRotation bool `json:"-" yaml:"-"`
}

// Empty сообщает, что позиция пустая
func (e Entry) Empty() bool {
	return e.Tile <= 0
}

// plain - тайл без стороны и поворота
func (e Entry) plain() bool {
	return e.Side == SideNone && !e.HasRotation
}

// String возвращает токен записи в каноническом виде, например "83B2"
func (e Entry) String() string {
	token := strconv.Itoa(e.Tile)
	if e.Side != SideNone || e.HasRotation {
		side := e.Side
		if side == SideNone {
			side = SideA
		}
		token += side.String() + strconv.Itoa(e.Rotation)
	}
	return token
}

const tokenExpr = `-?\d+(?:[abAB]\d)?`

var (
	tokenPattern  = regexp.MustCompile(`^(-?\d+)(?:([abAB])(\d))?$`)
	mapPattern    = regexp.MustCompile(`^[\s,]*(?:\{\s*` + tokenExpr + `\s*\}[\s,]*)?(?:` + tokenExpr + `(?:[\s,]+` + tokenExpr + `)*)?[\s,]*$`)
	separatorExpr = regexp.MustCompile(`[\s,]+`)
)

// Validate проверяет строку по грамматике, не строя записи
func Validate(text string) bool {
	return mapPattern.MatchString(text)
}

// Parse разбирает строку карты.
// Результат индексирован спиральной нумерацией: элемент 0 - центр.
func Parse(text string) ([]Entry, error) {
	if !Validate(text) {
		return nil, fmt.Errorf("%w: %q", ErrFormat, offending(text))
	}

	body := strings.TrimSpace(text)
	body = strings.TrimLeft(body, ", \t\r\n")

	var center *Entry
	if strings.HasPrefix(body, "{") {
		end := strings.IndexByte(body, '}')
		inner := strings.TrimSpace(body[1:end])
		entry, err := parseToken(inner)
		if err != nil {
			return nil, err
		}
		center = &entry
		body = body[end+1:]
	}

	entries := make([]Entry, 0, 37)
	for _, token := range separatorExpr.Split(strings.TrimSpace(body), -1) {
		if token == "" {
			continue
		}
		entry, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	switch {
	case center != nil:
		entries = append([]Entry{*center}, entries...)
	case len(entries) == 0 || entries[0].Tile != CenterTile:
		entries = append([]Entry{{Tile: CenterTile}}, entries...)
	}
	return entries, nil
}

func parseToken(token string) (Entry, error) {
	m := tokenPattern.FindStringSubmatch(token)
	if m == nil {
		return Entry{}, fmt.Errorf("%w: token %q", ErrFormat, token)
	}
	tile, err := strconv.Atoi(m[1])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: token %q: %v", ErrFormat, token, err)
	}
	entry := Entry{Tile: tile}
	if m[2] != "" {
		entry.Side = Side(strings.ToUpper(m[2])[0])
		entry.Rotation = int(m[3][0] - '0')
		entry.HasRotation = true
	}
	return entry, nil
}

// offending ищет первый токен, не подходящий под грамматику
func offending(text string) string {
	body := strings.TrimSpace(text)
	if strings.HasPrefix(body, "{") {
		end := strings.IndexByte(body, '}')
		if end < 0 {
			return body
		}
		if !tokenPattern.MatchString(strings.TrimSpace(body[1:end])) {
			return body[:end+1]
		}
		body = body[end+1:]
	}
	for _, token := range separatorExpr.Split(strings.TrimSpace(body), -1) {
		if token != "" && !tokenPattern.MatchString(token) {
			return token
		}
	}
	return text
}

// Format собирает строку карты из записей.
// Центр 18 без стороны опускается, если это не сделает строку двусмысленной.
func Format(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}

	tokens := make([]string, 0, len(entries)+1)
	center := entries[0]
	rest := entries[1:]

	defaultCenter := center.Tile == CenterTile && center.plain()
	ambiguous := len(rest) > 0 && rest[0].Tile == CenterTile
	if !defaultCenter || ambiguous {
		tokens = append(tokens, "{"+center.String()+"}")
	}
	for _, e := range rest {
		tokens = append(tokens, e.String())
	}
	return strings.Join(tokens, " ")
}

// Normalize приводит строку к каноническому виду: Format(Parse(text))
func Normalize(text string) (string, error) {
	entries, err := Parse(text)
	if err != nil {
		return "", err
	}
	return Format(entries), nil
}
