package intent

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// letterUnification folds dialect and typo variants onto one spelling.
var letterUnification = runes.Map(func(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ':
		return 'ا'
	case 'ى':
		return 'ي'
	case 'ة':
		return 'ه'
	}
	return r
})

var tashkeel = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0610, Hi: 0x061a, Stride: 1},
		{Lo: 0x064b, Hi: 0x065f, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
		{Lo: 0x06d6, Hi: 0x06ed, Stride: 1},
	},
}

// Normalize canonicalizes Arabic/English input so that equivalent phrasings
// compare equal: lower-case, unified alef/ya/ta marbuta, no diacritics and
// single spaces. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	// Casers carry state, so the chain is built per call.
	t := transform.Chain(
		cases.Lower(language.Und),
		letterUnification,
		runes.Remove(runes.In(tashkeel)),
	)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = strings.ToLower(text)
	}
	return strings.Join(strings.Fields(out), " ")
}

func containsAny(text string, tokens ...string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// ContainsArabic reports whether text has any character in the Arabic block.
// Replies are rendered in Arabic when it does.
func ContainsArabic(text string) bool {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06ff {
			return true
		}
	}
	return false
}
