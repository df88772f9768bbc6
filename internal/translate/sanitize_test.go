package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"devanagari removed", "نماز नमाज़ پڙهو", "نماز پڙهو"},
		{"entities decoded", "هن چيو &quot;سچ&quot; &amp; &#39;حق&#39;", `هن چيو "سچ" & 'حق'`},
		{"repeated token collapsed", "الله الله الله الله الله اڪبر", "الله الله اڪبر"},
		{"three repeats kept", "ها ها ها ٺيڪ", "ها ها ها ٺيڪ"},
		{"punctuation runs", "ڇا؟؟ ها،، ٺيڪ...", "ڇا؟ ها، ٺيڪ."},
		{"whitespace collapsed", "  هڪ   ٻه \t\t ٽي  ", "هڪ ٻه ٽي"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in))
		})
	}
}
