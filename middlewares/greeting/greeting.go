// Package greeting answers bare salutations in Arabic or English without a
// backend run.
package greeting

import (
	"context"
	"strings"
	"unicode"

	"mudabbir/internal/fastpath"
	"mudabbir/internal/intent"
	mw "mudabbir/internal/middleware"
)

const ID = "greeting"

func init() {
	mw.Register(Greeting{})
}

type Greeting struct{}

func (Greeting) ID() string    { return ID }
func (Greeting) Priority() int { return 110 } // after the fast path, before run shaping

// ShouldLoad honours a per-event opt out in Context["greeting"].
func (Greeting) ShouldLoad(_ context.Context, e *mw.Event) bool {
	if e == nil || e.Context == nil {
		return true
	}
	if v, ok := e.Context[ID].(bool); ok {
		return v
	}
	return true
}

func (Greeting) OnEvent(_ context.Context, e *mw.Event) (mw.Decision, error) {
	if e == nil || e.Name != mw.EventBeforeAgentRun {
		return mw.Decision{}, nil
	}
	if !isGreetingOnly(e.UserText) {
		return mw.Decision{}, nil
	}
	reply := replies[fastpath.LocaleFor(e.UserText)]
	return mw.Decision{Cancel: true, ReplaceText: &reply, Reason: "greeting"}, nil
}

var replies = map[fastpath.Locale]string{
	fastpath.LocaleEN: "Hi, how can I help you today?",
	fastpath.LocaleAR: "أهلاً بك، كيف أقدر أساعدك اليوم؟",
}

var greetWords = func() map[string]struct{} {
	words := []string{
		"hi", "hello", "hey", "heya", "howdy", "yo", "good", "morning", "afternoon", "evening", "greetings", "there",
		"مرحبا", "مرحباً", "اهلا", "أهلاً", "هلا", "السلام", "عليكم", "سلام", "صباح", "مساء", "الخير", "النور", "يا", "هلا والله",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		for _, f := range strings.Fields(intent.Normalize(stripPunct(w))) {
			m[f] = struct{}{}
		}
	}
	return m
}()

func isGreetingOnly(s string) bool {
	words := strings.Fields(intent.Normalize(stripPunct(s)))
	if len(words) == 0 || len(words) > 4 {
		return false
	}
	// "good", "there" and "يا" alone are not greetings.
	if len(words) == 1 {
		switch words[0] {
		case "good", "there", "يا", "الخير", "النور", "عليكم":
			return false
		}
	}
	for _, w := range words {
		if _, ok := greetWords[w]; !ok {
			return false
		}
	}
	return true
}

func stripPunct(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPunct(r) && r != '\'' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
