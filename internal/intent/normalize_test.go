package intent

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   \t\n", ""},
		{"  Set   VOLUME\tto 40 ", "set volume to 40"},
		{"أطفئ الشاشة", "اطفئ الشاشه"},
		{"إعادة التشغيل", "اعاده التشغيل"},
		{"آلة", "اله"},
		{"مستوى", "مستوي"},
		{"نَعَمْ", "نعم"},
		{"كم نسبة الصوت؟", "كم نسبه الصوت؟"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func mixedTextGen() gopter.Gen {
	return gen.SliceOf(gen.OneGenOf(
		gen.RuneRange('a', 'z'),
		gen.RuneRange('A', 'Z'),
		gen.RuneRange('0', '9'),
		gen.RuneRange(0x0621, 0x064a),
		gen.RuneRange(0x064b, 0x0652),
		gen.RuneRange(0x0660, 0x0669),
		gen.RuneRange(' ', ' '),
		gen.RuneRange('\t', '\n'),
	)).Map(func(rs []rune) string { return string(rs) })
}

func TestNormalizeIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("normalizing twice changes nothing", prop.ForAll(
		func(s string) bool {
			once := Normalize(s)
			return Normalize(once) == once
		},
		mixedTextGen(),
	))
	properties.Property("output has no outer or doubled spaces", prop.ForAll(
		func(s string) bool {
			out := Normalize(s)
			for i := 1; i < len(out); i++ {
				if out[i] == ' ' && out[i-1] == ' ' {
					return false
				}
			}
			return out == "" || (out[0] != ' ' && out[len(out)-1] != ' ')
		},
		mixedTextGen(),
	))

	properties.TestingRun(t)
}

func TestContainsArabic(t *testing.T) {
	assert.True(t, ContainsArabic("set الصوت"))
	assert.True(t, ContainsArabic("٣"))
	assert.False(t, ContainsArabic("set volume 30"))
	assert.False(t, ContainsArabic(""))
}
