package translate

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkShortTextIsSingleChunk(t *testing.T) {
	assert.Equal(t, []string{"ایک جملہ۔"}, Chunk("  ایک جملہ۔ ", 500))
	assert.Nil(t, Chunk("   ", 500))
}

func TestChunkPacksSentences(t *testing.T) {
	text := "پہلا جملہ۔ دوسرا جملہ۔ تیسرا جملہ۔"
	chunks := Chunk(text, 20)

	require.Len(t, chunks, 3)
	assert.Equal(t, "پہلا جملہ۔", chunks[0])
	assert.Equal(t, "دوسرا جملہ۔", chunks[1])
	assert.Equal(t, "تیسرا جملہ۔", chunks[2])
}

func TestChunkKeepsUnterminatedTail(t *testing.T) {
	text := strings.Repeat("a", 8) + ". " + strings.Repeat("b", 8) + " tail without end"
	chunks := Chunk(text, 12)

	joined := strings.Join(chunks, " ")
	assert.Contains(t, joined, "tail without end")
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 12)
	}
}

func TestChunkSplitsLongSentenceAtWhitespace(t *testing.T) {
	words := make([]string, 40)
	for i := range words {
		words[i] = "لفظ"
	}
	text := strings.Join(words, " ")

	chunks := Chunk(text, 50)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 50)
		assert.False(t, strings.HasPrefix(c, " "))
		for _, w := range strings.Fields(c) {
			assert.Equal(t, "لفظ", w, "words must not be cut")
		}
	}
	assert.Equal(t, text, strings.Join(chunks, " "))
}

func TestChunkHardSplitsWithoutWhitespace(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := Chunk(text, 10)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, chunks)
}

func TestChunkTreatsTerminatorRunAsOne(t *testing.T) {
	assert.Equal(t, []string{"واہ!!!", "ہاں؟"}, splitSentencesTrimmed("واہ!!! ہاں؟"))
}

func splitSentencesTrimmed(s string) []string {
	var out []string
	for _, p := range splitSentences(s) {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
