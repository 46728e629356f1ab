package middleware

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"time"
	"unicode/utf8"
)

type debugEntry struct {
	Timestamp    string `json:"ts"`
	Event        string `json:"event"`
	MiddlewareID string `json:"middleware"`
	Priority     int    `json:"priority"`
	Skipped      bool   `json:"skipped,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Cancel       bool   `json:"cancel,omitempty"`
	Session      string `json:"session,omitempty"`

	InputChars   int `json:"in_chars"`
	OutputChars  int `json:"out_chars"`
	InputTokens  int `json:"in_tokens_est"`
	OutputTokens int `json:"out_tokens_est"`

	SavedTokens int     `json:"saved_tokens_est"`
	SavedPct    float64 `json:"saved_pct,omitempty"`
}

// tokenish matches "word-like" chunks (including dotted/slashed technical tokens),
// otherwise falls back to single non-space characters.
var tokenish = regexp.MustCompile(`[\pL\pN]+(?:[._/\\-][\pL\pN]+)*|[^\s]`)

func estimateTokens(s string) int {
	if s == "" {
		return 0
	}
	// A simple approximation: count token-ish chunks; cap the minimum by a
	// chars/4 heuristic so tiny punctuation-heavy strings don't look too cheap.
	chunks := len(tokenish.FindAllString(s, -1))
	charHeuristic := int(math.Ceil(float64(utf8.RuneCountInString(s)) / 4.0))
	if chunks < charHeuristic {
		return charHeuristic
	}
	return chunks
}

func eventText(e *Event) string {
	if e == nil {
		return ""
	}
	switch e.Name {
	case EventBeforeAgentRun:
		return e.UserText
	case EventAfterAgentReply:
		return e.ReplyText
	}
	return ""
}

func applyDecisionToEvent(e *Event, dec Decision) {
	if e == nil {
		return
	}
	if dec.OverrideParams != nil {
		e.Params = dec.OverrideParams
	}
	if dec.ReplaceText == nil {
		return
	}
	switch e.Name {
	case EventBeforeAgentRun:
		e.UserText = *dec.ReplaceText
	case EventAfterAgentReply:
		e.ReplyText = *dec.ReplaceText
	}
}

// OpenDebugLog opens (appending) the JSONL decision log at path, creating its
// directory.
func OpenDebugLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create debug log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return f, nil
}

func (c *Chain) debugLog(e *Event, mw Middleware, skipped bool, inText, outText string, dec Decision) {
	c.debugMu.Lock()
	w := c.debugW
	c.debugMu.Unlock()
	if w == nil {
		return
	}

	inChars := utf8.RuneCountInString(inText)
	outChars := utf8.RuneCountInString(outText)
	inTok := estimateTokens(inText)
	outTok := estimateTokens(outText)

	saved := inTok - outTok
	var savedPct float64
	if inTok > 0 {
		savedPct = float64(saved) / float64(inTok)
	}

	entry := debugEntry{
		Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
		Event:        string(e.Name),
		MiddlewareID: mw.ID(),
		Priority:     mw.Priority(),
		Skipped:      skipped,
		Reason:       dec.Reason,
		Cancel:       dec.Cancel,
		Session:      e.SessionKey(),
		InputChars:   inChars,
		OutputChars:  outChars,
		InputTokens:  inTok,
		OutputTokens: outTok,
		SavedTokens:  saved,
		SavedPct:     savedPct,
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	c.debugMu.Lock()
	defer c.debugMu.Unlock()
	_, _ = w.Write(append(b, '\n'))
}
