package translate

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	devanagariPattern  = regexp.MustCompile(`[\x{0900}-\x{097F}]+`)
	punctuationPattern = regexp.MustCompile(`[،,.!؟]{2,}`)
	whitespacePattern  = regexp.MustCompile(`\s{2,}`)
	tokenPattern       = regexp.MustCompile(`\S+`)
)

// maxTokenRepeat is the run length at which a repeated token is treated as
// engine noise and cut back to two occurrences.
const maxTokenRepeat = 4

// Sanitize cleans machine translation output.
func Sanitize(s string) string {
	s = devanagariPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = collapseRepeats(s)
	s = punctuationPattern.ReplaceAllStringFunc(s, func(m string) string {
		r, _ := utf8.DecodeRuneInString(m)
		return string(r)
	})
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func collapseRepeats(s string) string {
	locs := tokenPattern.FindAllStringIndex(s, -1)
	if len(locs) < maxTokenRepeat {
		return s
	}

	var b strings.Builder
	last := 0
	for i := 0; i < len(locs); {
		tok := s[locs[i][0]:locs[i][1]]
		j := i + 1
		for j < len(locs) && s[locs[j][0]:locs[j][1]] == tok {
			j++
		}
		if j-i >= maxTokenRepeat {
			keepEnd := locs[i+1][1]
			b.WriteString(s[last:keepEnd])
			last = locs[j-1][1]
		}
		i = j
	}
	b.WriteString(s[last:])
	return b.String()
}
