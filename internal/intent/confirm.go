package intent

import (
	"strings"
	"unicode"
)

var confirmWords = map[string]struct{}{
	"yes": {}, "y": {}, "yep": {}, "ok": {}, "okay": {}, "confirm": {}, "confirmed": {},
	"نعم": {}, "ايوه": {}, "اوافق": {}, "موافق": {}, "تمام": {}, "نفذ": {}, "نفذها": {}, "اي": {}, "اجل": {},
}

var cancelWords = []string{"no", "cancel", "stop", "لا", "الغاء", "وقف", "تراجع"}

func trimPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// IsConfirmation reports whether text is an explicit yes. The whole message
// must be confirmation words ("yes", "نعم نفذ"); anything else, including a
// message carrying a cancel word, is not a confirmation.
func IsConfirmation(text string) bool {
	norm := trimPunct(Normalize(text))
	if norm == "" {
		return false
	}
	if _, ok := confirmWords[norm]; ok {
		return true
	}
	seen := 0
	for _, w := range strings.Fields(norm) {
		if w = trimPunct(w); w == "" {
			continue
		}
		if _, ok := confirmWords[w]; !ok {
			return false
		}
		seen++
	}
	return seen > 0
}

// IsCancel reports whether text contains a cancel word anywhere.
func IsCancel(text string) bool {
	return containsAny(Normalize(text), cancelWords...)
}
