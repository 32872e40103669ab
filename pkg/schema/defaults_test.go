package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackValue_TotalOverAllKinds(t *testing.T) {
	t.Parallel()

	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()

			value := FallbackValue(Field{Key: "f", Kind: kind})
			require.NotNil(t, value, "kind %s resolved to an undefined default", kind)
		})
	}
}

func TestFallbackValue_KindDerived(t *testing.T) {
	t.Parallel()

	assert.Equal(t, false, FallbackValue(Field{Key: "b", Kind: KindBoolean}))
	assert.Equal(t, float64(0), FallbackValue(Field{Key: "n", Kind: KindNumber}))
	assert.Equal(t, []string{}, FallbackValue(Field{Key: "m", Kind: KindMultiSelect}))
	assert.Equal(t, []any{}, FallbackValue(Field{Key: "a", Kind: KindArray}))
	assert.Equal(t, "#000000", FallbackValue(Field{Key: "c", Kind: KindColor}))
	assert.Equal(t, "", FallbackValue(Field{Key: "t", Kind: KindText}))
	assert.Equal(t, "", FallbackValue(Field{Key: "d", Kind: KindDate}))
}

func TestFallbackValue_SliderUsesMinBound(t *testing.T) {
	t.Parallel()

	field := Field{
		Key:  "slippage",
		Kind: KindSlider,
		Min:  FloatPtr(0.1),
		Max:  FloatPtr(50),
	}

	assert.InDelta(t, 0.1, FallbackValue(field), 0.0001)
}

func TestFallbackValue_SelectUsesFirstOption(t *testing.T) {
	t.Parallel()

	field := Field{
		Key:  "chain",
		Kind: KindSelect,
		Options: []Option{
			{Label: "Ethereum", Value: "1"},
			{Label: "Polygon", Value: "137"},
		},
	}

	assert.Equal(t, "1", FallbackValue(field))

	empty := Field{Key: "chain", Kind: KindSelect}
	assert.Equal(t, "", FallbackValue(empty))
}

func TestFallbackValue_ExplicitDefaultWins(t *testing.T) {
	t.Parallel()

	field := Field{Key: "method", Kind: KindSelect, Default: "POST", Options: []Option{
		{Label: "GET", Value: "GET"},
	}}

	assert.Equal(t, "POST", FallbackValue(field))
}

func TestMerge_StoredWinsOverDefaults(t *testing.T) {
	t.Parallel()

	template := &Template{
		Type: "test",
		Fields: []Field{
			{Key: "url", Kind: KindURL, Default: "https://api.example.com"},
			{Key: "enabled", Kind: KindBoolean},
			{Key: "tags", Kind: KindMultiSelect},
		},
	}

	merged := Merge(template, Config{"url": "https://override.example.com"})

	assert.Equal(t, "https://override.example.com", merged["url"])
	assert.Equal(t, false, merged["enabled"])
	assert.Equal(t, []string{}, merged["tags"])
}

func TestMerge_StoredNilStillWins(t *testing.T) {
	t.Parallel()

	template := &Template{
		Type:   "test",
		Fields: []Field{{Key: "note", Kind: KindText, Default: "hello"}},
	}

	merged := Merge(template, Config{"note": nil})

	value, ok := merged["note"]
	require.True(t, ok)
	assert.Nil(t, value)
}

func TestMerge_UnknownStoredKeysCarriedThrough(t *testing.T) {
	t.Parallel()

	template := &Template{Type: "test", Fields: []Field{{Key: "a", Kind: KindText}}}

	merged := Merge(template, Config{"legacy": 42})

	assert.Equal(t, 42, merged["legacy"])
	assert.Equal(t, "", merged["a"])
}

func TestDefaults_OneValuePerField(t *testing.T) {
	t.Parallel()

	template := &Template{
		Type: "test",
		Fields: []Field{
			{Key: "a", Kind: KindText},
			{Key: "b", Kind: KindNumber, Min: FloatPtr(5)},
			{Key: "c", Kind: KindBoolean},
		},
	}

	defaults := Defaults(template)

	require.Len(t, defaults, 3)
	assert.Equal(t, float64(5), defaults["b"])
}
