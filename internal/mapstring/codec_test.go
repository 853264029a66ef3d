package mapstring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInsertsDefaultCenter(t *testing.T) {
	entries, err := Parse("7 18 23")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Tile: 18}, {Tile: 7}, {Tile: 18}, {Tile: 23}}, entries)
}

func TestParseExplicitCenter(t *testing.T) {
	entries, err := Parse("{4} 7 18 23")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Tile: 4}, {Tile: 7}, {Tile: 18}, {Tile: 23}}, entries)

	entries, err = Parse("{83a5}")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Tile: 83, Side: SideA, Rotation: 5, HasRotation: true}}, entries)
}

func TestParseLeadingCenterToken(t *testing.T) {
	// Первый токен 18 и есть центр, ничего не вставляется
	entries, err := Parse("18 7 23")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Tile: 18}, {Tile: 7}, {Tile: 23}}, entries)
}

func TestParseSideAndRotation(t *testing.T) {
	entries, err := Parse("7 83b2")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Tile: 18}, entries[0])
	assert.Equal(t, Entry{Tile: 7}, entries[1])
	assert.Equal(t, Entry{Tile: 83, Side: SideB, Rotation: 2, HasRotation: true}, entries[2])
	assert.Equal(t, "B", entries[2].Side.String())
}

func TestParseSeparatorsAndEmpties(t *testing.T) {
	entries, err := Parse("  1,2 ,, 0\t-1\n 3, ")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Tile: 18}, {Tile: 1}, {Tile: 2}, {Tile: 0}, {Tile: -1}, {Tile: 3}}, entries)
	assert.True(t, entries[3].Empty())
	assert.True(t, entries[4].Empty())
	assert.False(t, entries[5].Empty())

	entries, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, []Entry{{Tile: 18}}, entries)
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"7 x 9":       "x",
		"83c2":        "83c2",
		"83b":         "83b",
		"83b22":       "83b22",
		"{4":          "{4",
		"{x} 1":       "{x}",
		"1 {4}":       "{4}",
		"1 2 3; 4":    "3;",
		"{4} {5} 1 2": "{5}",
	}
	for input, bad := range cases {
		assert.False(t, Validate(input), "строка %q не должна проходить проверку", input)
		_, err := Parse(input)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrFormat), "строка %q: %v", input, err)
		assert.Contains(t, err.Error(), bad, "строка %q", input)
	}
}

func TestValidate(t *testing.T) {
	for _, ok := range []string{"", "18", "{18}", "{4} 1 2 3", "1,2,3", "83A0 84b5", " , 1 , "} {
		assert.True(t, Validate(ok), "строка %q", ok)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		entries []Entry
		want    string
	}{
		{[]Entry{{Tile: 18}, {Tile: 7}, {Tile: 18}, {Tile: 23}}, "7 18 23"},
		{[]Entry{{Tile: 4}, {Tile: 7}}, "{4} 7"},
		{[]Entry{{Tile: 18}, {Tile: 18}, {Tile: 7}}, "{18} 18 7"},
		{[]Entry{{Tile: 18}, {Tile: 83, Side: SideB, Rotation: 2, HasRotation: true}}, "83B2"},
		{[]Entry{{Tile: 83, Side: SideA, Rotation: 1, HasRotation: true}, {Tile: 1}}, "{83A1} 1"},
		{[]Entry{{Tile: 18}}, ""},
		{nil, ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Format(tc.entries))
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"7 18 23",
		"18 7 23",
		"{4} 7 18 23",
		"7 83b2",
		"  1,2 ,, 0\t-1\n 3, ",
		"{18} 18 18",
		"{18a0}",
		"",
		"18",
		"{0} 1 2",
	}
	for _, in := range inputs {
		once, err := Normalize(in)
		require.NoError(t, err, in)
		twice, err := Normalize(once)
		require.NoError(t, err, once)
		assert.Equal(t, once, twice, "вход %q", in)

		// Нормализованная строка описывает ту же раскладку
		a, err := Parse(in)
		require.NoError(t, err)
		b, err := Parse(once)
		require.NoError(t, err)
		assert.Equal(t, a, b, "вход %q", in)
	}

	got, err := Normalize("7  83b2,26")
	require.NoError(t, err)
	assert.Equal(t, "7 83B2 26", got)

	_, err = Normalize("bad")
	assert.ErrorIs(t, err, ErrFormat)
}
