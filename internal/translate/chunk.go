package translate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultChunkSize is the largest text, in runes, sent in one request.
const DefaultChunkSize = 500

// Chunk splits text into pieces of at most max runes. Pieces end at sentence
// terminators where possible, then at whitespace, and as a last resort in the
// middle of a word.
func Chunk(text string, max int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if max <= 0 {
		max = DefaultChunkSize
	}
	if utf8.RuneCountInString(text) <= max {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
		currentLen = 0
	}

	for _, sentence := range splitSentences(text) {
		n := utf8.RuneCountInString(sentence)
		if n > max {
			flush()
			chunks = append(chunks, splitLong(sentence, max)...)
			continue
		}
		if currentLen+n > max {
			flush()
		}
		current.WriteString(sentence)
		currentLen += n
	}
	flush()
	return chunks
}

func isTerminator(r rune) bool {
	switch r {
	case '۔', '.', '!', '?', '؟':
		return true
	}
	return false
}

// splitSentences cuts after each run of terminators. The unterminated tail is
// returned as its own sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		for i+1 < len(runes) && isTerminator(runes[i+1]) {
			i++
		}
		out = append(out, string(runes[start:i+1]))
		start = i + 1
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

func splitLong(sentence string, max int) []string {
	var out []string
	runes := []rune(strings.TrimSpace(sentence))
	for len(runes) > max {
		cut := max
		for i := max; i > max/2; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
		if s := strings.TrimSpace(string(runes[:cut])); s != "" {
			out = append(out, s)
		}
		runes = []rune(strings.TrimSpace(string(runes[cut:])))
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
