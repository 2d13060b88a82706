package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeaningful(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"not specified sentinel", "Not specified", false},
		{"extraction error sentinel", "extraction_error", false},
		{"unclear sentinel", "unclear", false},
		{"belum diisi sentinel", "Belum diisi", false},
		{"sentinel match is case sensitive", "not specified", true},
		{"real string", "CV Jati Sejahtera", true},
		{"zero is a real number", float64(0), true},
		{"positive number", 100, true},
		{"empty list", []any{}, false},
		{"non-empty list", []any{"Malaysia"}, true},
		{"empty string slice", []string{}, false},
		{"non-empty string slice", []string{"SNI"}, true},
		{"empty map", map[string]any{}, false},
		{"non-empty map", map[string]any{"city": "Jepara"}, true},
		{"false bool", false, false},
		{"true bool", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Meaningful(tt.val))
		})
	}
}

func TestMoreDetailed_Strings(t *testing.T) {
	// Longer wins.
	assert.True(t, MoreDetailed("Meja makan kayu jati minimalis buatan tangan", "Meja kayu"))
	// Shorter never replaces.
	assert.False(t, MoreDetailed("Meja", "Meja makan kayu jati minimalis buatan tangan"))

	// Equal length: the value without a sentinel term wins the tiebreak.
	assert.True(t, MoreDetailed("Kayu jati solid", "unclear details"))
	assert.False(t, MoreDetailed("unclear details", "Kayu jati solid"))
	// Equal length, both concrete: keep the existing value.
	assert.False(t, MoreDetailed("Meja kayu", "Kursi ukr"))
}

func TestMoreDetailed_Numbers(t *testing.T) {
	assert.True(t, MoreDetailed(float64(150), float64(100)))
	assert.False(t, MoreDetailed(float64(50), float64(100)))
	assert.False(t, MoreDetailed(float64(100), float64(100)))
	// A non-positive candidate never replaces.
	assert.False(t, MoreDetailed(float64(0), float64(0)))
	assert.False(t, MoreDetailed(float64(-5), float64(-10)))
	// Int candidates compare like floats.
	assert.True(t, MoreDetailed(200, float64(100)))
}

func TestMoreDetailed_Collections(t *testing.T) {
	assert.True(t, MoreDetailed([]any{"a", "b"}, []any{"a"}))
	assert.False(t, MoreDetailed([]any{"a"}, []any{"a", "b"}))
	// Same length: keep existing regardless of content.
	assert.False(t, MoreDetailed([]any{"x"}, []any{"a"}))

	richer := map[string]any{"city": "Jepara", "province": "Jawa Tengah"}
	sparser := map[string]any{"city": "Jepara", "province": "Not specified"}
	assert.True(t, MoreDetailed(richer, sparser))
	assert.False(t, MoreDetailed(sparser, richer))
}

func TestMoreDetailed_TypeMismatch(t *testing.T) {
	// Mismatched types only replace a non-meaningful existing value.
	assert.False(t, MoreDetailed([]any{"a"}, "a real string"))
	assert.True(t, MoreDetailed([]any{"a"}, "Not specified"))
	assert.True(t, MoreDetailed(map[string]any{"k": "v"}, "Not specified"))
	assert.False(t, MoreDetailed(map[string]any{"k": "v"}, "a real string"))
	assert.False(t, MoreDetailed("Jepara", float64(10)))
	assert.True(t, MoreDetailed("Jepara", nil))
}
