package translate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// Letters that occur in Sindhi but not in Urdu or Arabic.
var sindhiLetters = map[rune]bool{
	'ٻ': true, 'ڀ': true, 'ٽ': true, 'ٿ': true, 'ڄ': true, 'ڃ': true,
	'ڇ': true, 'ڊ': true, 'ڌ': true, 'ڍ': true, 'ڏ': true, 'ڙ': true,
	'ڦ': true, 'ڪ': true, 'ڱ': true, 'ڳ': true, 'ڻ': true,
}

// Letters of Urdu orthography that Sindhi writes differently or not at all.
var urduLetters = map[rune]bool{
	'ٹ': true, 'ڈ': true, 'ڑ': true, 'ں': true, 'ے': true, 'ہ': true, 'ۓ': true, 'ی': true,
}

var arabicScriptTargets = map[string]bool{
	"sd": true, "ur": true, "ar": true, "fa": true, "ps": true,
}

const (
	weightScript   = 0.5
	weightLetters  = 0.25
	weightLength   = 0.15
	weightDetected = 0.1

	// Share of distinctive letters among Arabic-script letters at which the
	// letter signal saturates.
	distinctiveSaturation = 0.04

	// Share of candidate words also found in the source above which the
	// candidate counts as untranslated.
	echoOverlap = 0.7

	wrongLanguagePenalty = 0.3
	noSindhiPenalty      = 0.7
)

// Score rates a candidate translation of source into target between 0 and 1.
// Empty output and output that mostly repeats the source words score 0.
func Score(source, candidate, target string) float64 {
	c := strings.TrimSpace(candidate)
	if c == "" {
		return 0
	}
	if normalizeForCompare(c) == normalizeForCompare(source) || echoes(source, c) {
		return 0
	}

	var letters, arabic, distinctive, sindhi, urdu, devanagari int
	for _, r := range c {
		if unicode.In(r, unicode.Devanagari) {
			devanagari++
		}
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.In(r, unicode.Arabic) {
			arabic++
			if sindhiLetters[r] {
				sindhi++
			}
			if urduLetters[r] {
				urdu++
			}
			switch target {
			case "sd":
				if sindhiLetters[r] {
					distinctive++
				}
			case "ur":
				if urduLetters[r] {
					distinctive++
				}
			}
		}
	}
	if letters == 0 {
		return 0
	}

	wantArabic := arabicScriptTargets[target]
	scriptShare := float64(letters-arabic) / float64(letters)
	if wantArabic {
		scriptShare = float64(arabic) / float64(letters)
	}
	score := weightScript * scriptShare

	switch {
	case target == "sd" || target == "ur":
		if arabic > 0 {
			ratio := float64(distinctive) / float64(arabic) / distinctiveSaturation
			score += weightLetters * min(ratio, 1)
		}
	default:
		score += weightLetters * scriptShare
	}

	score += weightLength * lengthPlausibility(source, c)

	info := whatlanggo.Detect(c)
	if info.Script != nil {
		if (info.Script == unicode.Arabic) == wantArabic {
			score += weightDetected
		} else {
			score *= 0.5
		}
	}

	// whatlanggo has no Sindhi model; Sindhi text without its own letters is
	// told apart from Urdu and Arabic by orthography and the detected language.
	switch target {
	case "sd":
		switch {
		case urdu > sindhi:
			score *= wrongLanguagePenalty
		case sindhi == 0 && (info.Lang == whatlanggo.Arb || info.Lang == whatlanggo.Urd || info.Lang == whatlanggo.Pes):
			score *= wrongLanguagePenalty
		case sindhi == 0:
			score *= noSindhiPenalty
		}
	case "ur":
		if urdu == 0 && info.Lang == whatlanggo.Arb {
			score *= wrongLanguagePenalty
		}
	}

	if devanagari > 0 {
		score *= 0.5
	}
	if degenerate(c) {
		score *= 0.6
	}

	return max(0, min(score, 1))
}

// lengthPlausibility is 1 when the candidate is between half and two and a
// half times the source length and falls off linearly outside that band.
func lengthPlausibility(source, candidate string) float64 {
	src := utf8.RuneCountInString(strings.TrimSpace(source))
	if src == 0 {
		return 1
	}
	ratio := float64(utf8.RuneCountInString(candidate)) / float64(src)
	switch {
	case ratio < 0.5:
		return ratio / 0.5
	case ratio > 2.5:
		return 2.5 / ratio
	default:
		return 1
	}
}

// degenerate reports output dominated by repetition.
func degenerate(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) < 4 {
		return false
	}
	run := 1
	for i := 1; i < len(tokens); i++ {
		if tokens[i] == tokens[i-1] {
			run++
			if run >= maxTokenRepeat {
				return true
			}
		} else {
			run = 1
		}
	}
	if len(tokens) < 12 {
		return false
	}
	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}
	return float64(len(unique))/float64(len(tokens)) < 0.3
}

// echoes reports a candidate whose words are mostly copied from the source.
func echoes(source, candidate string) bool {
	words := wordsOf(candidate)
	if len(words) == 0 {
		return false
	}
	seen := make(map[string]struct{})
	for _, w := range wordsOf(source) {
		seen[w] = struct{}{}
	}
	shared := 0
	for _, w := range words {
		if _, ok := seen[w]; ok {
			shared++
		}
	}
	return float64(shared)/float64(len(words)) >= echoOverlap
}

func wordsOf(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
	})
}

func normalizeForCompare(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
