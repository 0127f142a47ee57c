package chunker

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func join(chunks []Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		max       int
		wantCount int
	}{
		{"empty", "", 6000, 0},
		{"short", "Hello world.", 6000, 1},
		{"exact fit", strings.Repeat("a", 6000), 6000, 1},
		{"one over", strings.Repeat("a", 6001), 6000, 2},
		{"fifteen thousand", strings.Repeat("x", 15000), 6000, 3},
		{"size one", "abc", 1, 3},
		{"default on zero", strings.Repeat("b", 12000), 0, 2},
		{"default on negative", "abc", -5, 1},
		{"multibyte", strings.Repeat("é", 10), 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.max)
			require.Len(t, chunks, tt.wantCount)
			assert.Equal(t, tt.text, join(chunks))

			limit := tt.max
			if limit <= 0 {
				limit = DefaultMaxChunkSize
			}
			for i, c := range chunks {
				assert.Equal(t, i, c.Index)
				assert.LessOrEqual(t, c.Size(), limit)
				assert.NotEmpty(t, c.Text)
			}
		})
	}
}

func TestSplitFifteenThousand(t *testing.T) {
	text := strings.Repeat("0123456789", 1500)

	chunks := Split(text, 6000)
	require.Len(t, chunks, 3)
	assert.Equal(t, 6000, chunks[0].Size())
	assert.Equal(t, 6000, chunks[1].Size())
	assert.Equal(t, 3000, chunks[2].Size())
	assert.Equal(t, text[:6000], chunks[0].Text)
	assert.Equal(t, text[12000:], chunks[2].Text)
}

func TestSplitRoundTrip(t *testing.T) {
	alphabet := []rune("abc xyz.\nđếứ日本語🎙")
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := r.Intn(500)
		runes := make([]rune, n)
		for j := range runes {
			runes[j] = alphabet[r.Intn(len(alphabet))]
		}
		text := string(runes)
		limit := r.Intn(50) + 1

		chunks := Split(text, limit)
		assert.Equal(t, text, join(chunks))
		for _, c := range chunks {
			assert.LessOrEqual(t, c.Size(), limit)
		}
		if n > 0 && n <= limit {
			assert.Len(t, chunks, 1)
		}
	}
}

func TestWhole(t *testing.T) {
	assert.Nil(t, Whole(""))

	chunks := Whole(strings.Repeat("a", 20000))
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
}
