package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	urduSource  = "اعمال کا دارومدار نیتوں پر ہے اور ہر شخص کے لیے وہی ہے جس کی اس نے نیت کی۔"
	sindhiGood  = "عملن جو دارومدار نيتن تي آهي ۽ هر ماڻهوءَ لاءِ اهو ئي آهي جنهن جي هن نيت ڪئي."
	englishEcho = "Actions are judged by intentions and every person gets what they intended."
)

func TestScoreRejectsEmptyAndEcho(t *testing.T) {
	assert.Zero(t, Score(urduSource, "", "sd"))
	assert.Zero(t, Score(urduSource, "   ", "sd"))
	assert.Zero(t, Score(urduSource, "  "+urduSource+" ", "sd"))
	assert.Zero(t, Score(urduSource, "123 456", "sd"))
}

func TestScorePrefersSindhiOverUrdu(t *testing.T) {
	sindhi := Score(urduSource, sindhiGood, "sd")
	urduish := Score(urduSource, "اعمال کا دارومدار نیتوں پر ہے اور ہر شخص کے لیے وہی ہے", "sd")
	english := Score(urduSource, englishEcho, "sd")

	assert.Greater(t, sindhi, urduish)
	assert.Greater(t, sindhi, english)
	assert.GreaterOrEqual(t, sindhi, 0.7)
	assert.LessOrEqual(t, sindhi, 1.0)
	assert.Less(t, urduish, 0.35)
	assert.Less(t, english, 0.35)
}

func TestScoreRejectsUntranslatedOutput(t *testing.T) {
	urdu := "اعمال کا دارومدار نیتوں پر ہے"
	arabic := "إنما الأعمال بالنيات وإنما لكل امرئ ما نوى"

	cases := map[string]struct {
		source, candidate string
	}{
		"urdu with an extra word":    {urdu + "۔", urdu + " ہے"},
		"arabic with a word dropped": {arabic, "إنما الأعمال بالنيات لكل امرئ ما نوى"},
		"urdu instead of sindhi":     {arabic, urdu},
		"urdu paraphrase":            {arabic, "ہر شخص کو وہی ملے گا جس کی اس نے نیت کی"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Less(t, Score(tc.source, tc.candidate, "sd"), 0.35)
		})
	}

	assert.GreaterOrEqual(t, Score(arabic, sindhiGood, "sd"), 0.35)
}

func TestEchoes(t *testing.T) {
	assert.True(t, echoes("a b c d", "a b c x"))
	assert.False(t, echoes("a b c d", "a x y z"))
	assert.False(t, echoes("a b", "!!"))
}

func TestScorePenalizesDevanagariAndRepetition(t *testing.T) {
	clean := Score(urduSource, sindhiGood, "sd")
	mixed := Score(urduSource, sindhiGood+" नमाज़", "sd")
	repeated := Score(urduSource, strings.Repeat("ڪري ", 20), "sd")

	assert.Less(t, mixed, clean)
	assert.Less(t, repeated, clean)
}

func TestScorePenalizesImplausibleLength(t *testing.T) {
	full := Score(urduSource, sindhiGood, "sd")
	short := Score(urduSource, "ڪئي", "sd")
	assert.Less(t, short, full)
}

func TestScoreUrduTarget(t *testing.T) {
	arabic := "إنما الأعمال بالنيات وإنما لكل امرئ ما نوى"
	urdu := Score(arabic, "اعمال کا دارومدار نیتوں پر ہے اور ہر شخص کے لیے وہی ہے", "ur")
	assert.Greater(t, urdu, 0.6)
}

func TestLengthPlausibility(t *testing.T) {
	assert.Equal(t, 1.0, lengthPlausibility("", "anything"))
	assert.Equal(t, 1.0, lengthPlausibility("abcd", "abcd"))
	assert.InDelta(t, 0.5, lengthPlausibility("abcdefgh", "ab"), 1e-9)
	assert.InDelta(t, 0.5, lengthPlausibility("ab", "abcdefghij"), 1e-9)
}

func TestDegenerate(t *testing.T) {
	assert.True(t, degenerate("ها ها ها ها"))
	assert.False(t, degenerate("هڪ ٻه ٽي چار"))
	assert.True(t, degenerate(strings.Repeat("هڪ ٻه ", 10)))
}
