package fastpath

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type reply struct {
	en, ar      string
	param       string
	enIfMissing string
	arIfMissing string
}

func (r reply) render(locale Locale, params map[string]any) string {
	text, fallback := r.en, r.enIfMissing
	if locale == LocaleAR {
		text, fallback = r.ar, r.arIfMissing
	}
	if r.param == "" {
		return text
	}
	v := firstString(params, r.param)
	if v == "" {
		v = fallback
	}
	return strings.Replace(text, "{}", v, 1)
}

// resultRenderer formats a reply from the executor's JSON object. It returns
// false when the object lacks the fields it needs.
type resultRenderer func(result map[string]any, locale Locale) (string, bool)

var resultReplies = map[string]resultRenderer{
	"volume/get":                          renderVolume,
	"brightness/get":                      renderBrightness,
	"system_info/battery":                 renderBattery,
	"process_tools/top_cpu":               renderTopProcess("cpu", "CPU", "%"),
	"process_tools/top_ram":               renderTopProcess("ram_mb", "RAM", " MB"),
	"performance_tools/total_cpu_percent": renderUsage("CPU", "المعالج"),
	"performance_tools/total_ram_percent": renderUsage("RAM", "الرام"),
}

// render turns a raw executor response into the user-facing reply. failed is
// true when the executor reported an error.
func render(locale Locale, session, action string, params map[string]any, raw string) (text string, failed bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(trimmed), "error:") {
		detail := strings.TrimSpace(trimmed[len("error:"):])
		if detail == "" {
			detail = trimmed
		}
		return Message(MsgFailed, locale, detail), true
	}

	var result map[string]any
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		switch v := decoded.(type) {
		case map[string]any:
			result = v
		case []any:
			trimmed = formatList(v)
		case nil:
			trimmed = ""
		default:
			trimmed = strings.TrimSpace(formatAny(v))
		}
	}
	if ok, present := result["ok"].(bool); present && !ok {
		detail := firstString(result, "error", "message")
		if detail == "" {
			detail = "unknown error"
		}
		return Message(MsgFailed, locale, detail), true
	}

	mode := strings.ToLower(firstString(params, "mode"))
	if fn, ok := resultReplies[action+"/"+mode]; ok && result != nil {
		if text, ok := fn(result, locale); ok {
			return text, false
		}
	}
	if mode != "" {
		if r, ok := modeReplies[action][mode]; ok {
			return r.render(locale, params), false
		}
	}
	if result != nil {
		_, hasOK := result["ok"]
		if msg, hasMsg := result["message"]; hasOK && hasMsg {
			if s := strings.TrimSpace(fmt.Sprint(msg)); s != "" && msg != nil {
				return s, false
			}
		}
	} else if trimmed != "" {
		return trimmed, false
	}
	return Ack(locale, session, action, mode), false
}

func renderVolume(result map[string]any, locale Locale) (string, bool) {
	level, ok := number(result["level_percent"])
	if !ok {
		return "", false
	}
	muted := truthy(result["muted"])
	if locale == LocaleAR {
		suffix := ""
		if muted {
			suffix = "(مكتوم)"
		}
		return strings.TrimSpace(fmt.Sprintf("مستوى الصوت الحالي: %d%% %s", int(level), suffix)), true
	}
	suffix := ""
	if muted {
		suffix = " (muted)"
	}
	return fmt.Sprintf("Current volume is %d%%%s.", int(level), suffix), true
}

func renderBrightness(result map[string]any, locale Locale) (string, bool) {
	level, ok := number(result["brightness_percent"])
	if !ok {
		return "", false
	}
	if locale == LocaleAR {
		return fmt.Sprintf("مستوى السطوع الحالي: %d%%.", int(level)), true
	}
	return fmt.Sprintf("Current brightness is %d%%.", int(level)), true
}

func renderBattery(result map[string]any, locale Locale) (string, bool) {
	percent, ok := number(result["percent"])
	if !truthy(result["available"]) || !ok {
		return Message(MsgBatteryUnavailable, locale), true
	}
	plugged := truthy(result["plugged"])
	if locale == LocaleAR {
		state := "على البطارية"
		if plugged {
			state = "موصول بالشاحن"
		}
		return fmt.Sprintf("نسبة البطارية الحالية: %d%% (%s).", int(percent), state), true
	}
	state := "on battery"
	if plugged {
		state = "plugged in"
	}
	return fmt.Sprintf("Current battery is %d%% (%s).", int(percent), state), true
}

func renderTopProcess(field, metric, unit string) resultRenderer {
	return func(result map[string]any, locale Locale) (string, bool) {
		items, _ := result["items"].([]any)
		if len(items) == 0 {
			return "", false
		}
		top, _ := items[0].(map[string]any)
		name := firstString(top, "name")
		value, ok := top[field]
		if name == "" || !ok || value == nil {
			return "", false
		}
		pid := "?"
		if p, ok := top["pid"]; ok && p != nil {
			pid = formatAny(p)
		}
		if locale == LocaleAR {
			return fmt.Sprintf("أعلى عملية حالياً: %s (PID: %s) - %s: %s%s.", name, pid, metric, formatAny(value), unit), true
		}
		return fmt.Sprintf("Top process now: %s (PID: %s) - %s: %s%s.", name, pid, metric, formatAny(value), unit), true
	}
}

func renderUsage(labelEN, labelAR string) resultRenderer {
	return func(result map[string]any, locale Locale) (string, bool) {
		v, ok := result["percent"]
		if !ok || v == nil {
			return "", false
		}
		if locale == LocaleAR {
			return fmt.Sprintf("نسبة الاستهلاك الحالية (%s): %s%%.", labelAR, formatAny(v)), true
		}
		return fmt.Sprintf("Current %s usage: %s%%.", labelEN, formatAny(v)), true
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	}
	if n, ok := number(v); ok {
		return n != 0
	}
	return true
}

func formatAny(v any) string {
	if n, ok := v.(float64); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// formatList joins a JSON array into one line: "a, b, c".
func formatList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch it.(type) {
		case nil:
			continue
		case map[string]any, []any:
			b, err := json.Marshal(it)
			if err != nil {
				continue
			}
			parts = append(parts, string(b))
		default:
			parts = append(parts, formatAny(it))
		}
	}
	return strings.Join(parts, ", ")
}
