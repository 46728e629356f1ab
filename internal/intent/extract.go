package intent

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Integers may be written with ASCII or Arabic-Indic digits.
const digitClass = `[0-9\x{0660}-\x{0669}\x{06F0}-\x{06F9}]`

var (
	intRe       = regexp.MustCompile(`-?` + digitClass + `+`)
	urlRe       = regexp.MustCompile(`(?i)https?://\S+`)
	hostRe      = regexp.MustCompile(`(?i)(?:ping|بينق|اختبار اتصال)\s+([a-zA-Z0-9.\-]+)`)
	minutesRe   = regexp.MustCompile(`(?i)(` + digitClass + `+)\s*(?:min|mins|minute|minutes|دقيقه|دقائق)`)
	wordRe      = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	quoteRe     = regexp.MustCompile("[\"'`]")
	quotedRe    = regexp.MustCompile(`["“”']([^"“”']+)["“”']`)
	drivePathRe = regexp.MustCompile(`[A-Za-z]:\\\S+`)
	driveRe     = regexp.MustCompile(`^[A-Za-z]:`)
	extRe       = regexp.MustCompile(`\.[a-zA-Z0-9]{1,8}`)
	extWordRe   = regexp.MustCompile(`(?i)(?:امتداد|extension)\s+([a-zA-Z0-9]{1,8})`)
)

// queryStopWords are the verbs and nouns stripped from free text before it is
// used as an app, process or service name.
var queryStopWords = map[string]struct{}{
	"open": {}, "launch": {}, "start": {}, "focus": {}, "switch": {}, "close": {}, "kill": {}, "stop": {},
	"افتح": {}, "شغل": {}, "ركز": {}, "بدل": {}, "اغلق": {}, "سكر": {}, "اقفل": {}, "ايقاف": {}, "تشغيل": {}, "التبديل": {},
	"to": {}, "الى": {}, "إلى": {},
	"app": {}, "application": {}, "program": {}, "service": {},
	"تطبيق": {}, "برنامج": {}, "خدمه": {}, "خدمة": {},
}

const maxQueryRunes = 120

func parseInt(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 0x0660 && r <= 0x0669:
			b.WriteRune('0' + (r - 0x0660))
		case r >= 0x06f0 && r <= 0x06f9:
			b.WriteRune('0' + (r - 0x06f0))
		default:
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseInt(b.String(), 10, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// On overflow ParseInt saturates, which the callers clamp anyway.
	return int(n), true
}

// FirstInt returns the first signed integer in text.
func FirstInt(text string) (int, bool) {
	m := intRe.FindString(text)
	if m == "" {
		return 0, false
	}
	return parseInt(m)
}

// Ints returns up to limit signed integers in order of appearance.
func Ints(text string, limit int) []int {
	var out []int
	for _, m := range intRe.FindAllString(text, -1) {
		n, ok := parseInt(m)
		if !ok {
			continue
		}
		out = append(out, n)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// URL returns the first http(s) URL in text.
func URL(text string) string {
	return strings.TrimSpace(urlRe.FindString(text))
}

// Host returns the hostname following a ping trigger word.
func Host(text string) string {
	m := hostRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Minutes returns an integer tagged with a minute unit, else the first integer.
func Minutes(text string) (int, bool) {
	if m := minutesRe.FindStringSubmatch(text); m != nil {
		return parseInt(m[1])
	}
	return FirstInt(text)
}

// AppQuery strips command verbs and generic nouns from text and returns what
// is left as a name, at most 120 characters.
func AppQuery(text string) string {
	cleaned := wordRe.ReplaceAllStringFunc(text, func(w string) string {
		if _, stop := queryStopWords[strings.ToLower(w)]; stop {
			return " "
		}
		return w
	})
	cleaned = quoteRe.ReplaceAllString(cleaned, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return truncateRunes(cleaned, maxQueryRunes)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// QuotedChunks returns the non-empty texts enclosed in straight or curly quotes.
func QuotedChunks(text string) []string {
	var out []string
	for _, m := range quotedRe.FindAllStringSubmatch(text, -1) {
		if v := strings.TrimSpace(m[1]); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Paths returns quoted path-like chunks, else bare drive paths such as C:\tmp.
func Paths(text string) []string {
	var quoted []string
	for _, q := range QuotedChunks(text) {
		if strings.ContainsAny(q, `\/`) || driveRe.MatchString(q) {
			quoted = append(quoted, q)
		}
	}
	if len(quoted) > 0 {
		return quoted
	}
	return drivePathRe.FindAllString(text, -1)
}

// Extension returns a dotted, lower-case file extension.
func Extension(text string) string {
	if m := extRe.FindString(text); m != "" {
		return strings.ToLower(m)
	}
	if m := extWordRe.FindStringSubmatch(text); m != nil {
		return "." + strings.ToLower(m[1])
	}
	return ""
}

// Corner maps a screen corner phrase to top_left, top_right, bottom_left or
// bottom_right. top_left is the default.
func Corner(text string) string {
	norm := Normalize(text)
	switch {
	case containsAny(norm, "top right", "فوق يمين", "اعلى يمين", "top_right"):
		return "top_right"
	case containsAny(norm, "bottom left", "تحت يسار", "اسفل يسار", "bottom_left"):
		return "bottom_left"
	case containsAny(norm, "bottom right", "تحت يمين", "اسفل يمين", "bottom_right"):
		return "bottom_right"
	}
	return "top_left"
}

// NamedValue returns the first quoted chunk, else the first capture group of
// the first pattern that matches.
func NamedValue(text string, patterns ...*regexp.Regexp) string {
	if quoted := QuotedChunks(text); len(quoted) > 0 {
		return quoted[0]
	}
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := strings.Trim(m[1], " ."); v != "" {
			return v
		}
	}
	return ""
}

var keyNames = []struct {
	key    string
	tokens []string
}{
	{"enter", []string{"enter", "انتر"}},
	{"space", []string{"space", "مسافه", "مسافة"}},
	{"tab", []string{"tab", "تاب"}},
	{"esc", []string{"esc", "escape"}},
	{"up", []string{"up", "اعلى", "فوق"}},
	{"down", []string{"down", "اسفل", "تحت"}},
	{"left", []string{"left", "يسار"}},
	{"right", []string{"right", "يمين"}},
	{"f5", []string{"f5"}},
}

// KeyName returns a short quoted key, else the first known key mentioned.
func KeyName(text string) string {
	if quoted := QuotedChunks(text); len(quoted) > 0 && len([]rune(quoted[0])) <= 16 {
		return strings.ToLower(quoted[0])
	}
	norm := Normalize(text)
	for _, k := range keyNames {
		if containsAny(norm, k.tokens...) {
			return k.key
		}
	}
	return ""
}
