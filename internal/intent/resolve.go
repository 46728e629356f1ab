package intent

import (
	"regexp"
	"strings"
	"time"
)

// Resolution is the outcome of resolving one message against the rule table.
type Resolution struct {
	Matched           bool           `json:"matched"`
	CapabilityID      string         `json:"capability_id,omitempty"`
	Action            string         `json:"action,omitempty"`
	Params            map[string]any `json:"params,omitempty"`
	Risk              Risk           `json:"risk_level"`
	Unsupported       bool           `json:"unsupported,omitempty"`
	UnsupportedReason string         `json:"unsupported_reason,omitempty"`
}

// Mode returns the executor sub-mode, if any.
func (r Resolution) Mode() string {
	if m, ok := r.Params["mode"].(string); ok {
		return m
	}
	return ""
}

// Clone returns a copy whose Params map can be mutated independently.
func (r Resolution) Clone() Resolution {
	out := r
	out.Params = make(map[string]any, len(r.Params))
	for k, v := range r.Params {
		if keys, ok := v.([]string); ok {
			v = append([]string(nil), keys...)
		}
		out.Params[k] = v
	}
	return out
}

var now = time.Now

const (
	reasonOutputRouting = "Audio output routing/spatial sound automation is not implemented yet."
	reasonMicToggle     = "Microphone mute/unmute direct toggle is not implemented yet."
)

// Resolve maps free text to a capability. Contextual overrides run first, then
// the rule table in order, then a few known-unsupported catch-alls.
func Resolve(message string) Resolution {
	normalized := Normalize(message)
	if normalized == "" {
		return Resolution{Risk: RiskSafe}
	}

	if res, ok := resolveOverride(message, normalized); ok {
		return res
	}

	for _, c := range compiledTable() {
		if !containsAny(normalized, c.aliases...) {
			continue
		}
		rule := c.rule
		if rule.Unsupported != "" {
			return Resolution{
				Matched:           true,
				CapabilityID:      rule.ID,
				Risk:              rule.Risk,
				Unsupported:       true,
				UnsupportedReason: rule.Unsupported,
			}
		}
		return Resolution{
			Matched:      true,
			CapabilityID: rule.ID,
			Action:       rule.Action,
			Params:       buildParams(rule, message),
			Risk:         rule.Risk,
		}
	}

	if containsAny(normalized, "change audio output", "speaker headset", "تغيير مخرج الصوت", "spatial sound", "الصوت المحيطي") {
		return unsupported("audio.unsupported.output_routing", reasonOutputRouting)
	}
	if containsAny(normalized, "mute microphone", "unmute microphone", "كتم الميكروفون", "الغاء كتم الميكروفون") {
		return unsupported("audio.unsupported.mic_toggle", reasonMicToggle)
	}
	return Resolution{Risk: RiskSafe}
}

func unsupported(id, reason string) Resolution {
	return Resolution{
		Matched:           true,
		CapabilityID:      id,
		Risk:              RiskSafe,
		Unsupported:       true,
		UnsupportedReason: reason,
	}
}

var (
	serviceVerbs = []struct{ phrase, mode string }{
		{"restart", "restart"},
		{"اعاده تشغيل", "restart"},
		{"اعد تشغيل", "restart"},
		{"stop", "stop"},
		{"ايقاف", "stop"},
		{"اوقف", "stop"},
		{"وقف", "stop"},
		{"start", "start"},
		{"تشغيل", "start"},
		{"شغل", "start"},
	}
	serviceRefs = []string{"the service", "that service", "this service", "same service", "نفس الخدمه", "الخدمه"}
	// Politeness and timing words allowed around the command.
	serviceFillers = map[string]bool{
		"now": true, "please": true, "again": true, "pls": true,
		"الان": true, "فورا": true, "رجاء": true, "لوسمحت": true,
	}
	servicePhrases = []string{"right now", "لو سمحت", "من فضلك", "مره اخري"}
	// Words that cannot be a service name, so the text is a sentence rather
	// than "stop the service NAME".
	serviceStopWords = map[string]bool{
		"is": true, "was": true, "and": true, "or": true, "for": true, "from": true, "to": true,
		"if": true, "when": true, "because": true, "too": true, "first": true, "later": true,
		"و": true, "من": true, "في": true, "اذا": true, "لان": true, "لاحقا": true, "ايضا": true,
	}
	serviceNameRe = regexp.MustCompile(`^[\p{L}\p{N}_.$\-]+$`)
)

// serviceCommand recognizes imperative follow-ups such as "restart the
// service" or "ايقاف الخدمه الان". The text must be exactly verb, reference,
// and at most one trailing name, with fillers allowed at either end.
func serviceCommand(raw, normalized string) (mode, name string, ok bool) {
	text := " " + strings.TrimRight(normalized, ".!") + " "
	for _, p := range servicePhrases {
		text = strings.ReplaceAll(text, " "+p+" ", " ")
	}
	words := strings.Fields(text)
	for len(words) > 0 && serviceFillers[words[0]] {
		words = words[1:]
	}
	for len(words) > 0 && serviceFillers[words[len(words)-1]] {
		words = words[:len(words)-1]
	}

	var rest []string
	for _, v := range serviceVerbs {
		if vw := strings.Fields(v.phrase); hasWordPrefix(words, vw) {
			mode, rest = v.mode, words[len(vw):]
			break
		}
	}
	if mode == "" {
		return "", "", false
	}
	ref := false
	for _, r := range serviceRefs {
		if rw := strings.Fields(r); hasWordPrefix(rest, rw) {
			rest, ref = rest[len(rw):], true
			break
		}
	}
	if !ref {
		return "", "", false
	}

	switch len(rest) {
	case 0:
		return mode, "", true
	case 1:
		if serviceStopWords[rest[0]] || !serviceNameRe.MatchString(rest[0]) {
			return "", "", false
		}
		return mode, rawWord(raw, rest[0]), true
	}
	return "", "", false
}

func hasWordPrefix(words, prefix []string) bool {
	if len(words) < len(prefix) {
		return false
	}
	for i, w := range prefix {
		if words[i] != w {
			return false
		}
	}
	return true
}

// rawWord returns the original spelling of a normalized word, searching from
// the end of raw.
func rawWord(raw, word string) string {
	fields := strings.Fields(raw)
	for i := len(fields) - 1; i >= 0; i-- {
		f := strings.TrimRight(fields[i], ".!")
		if Normalize(f) == word {
			return f
		}
	}
	return word
}

func resolveOverride(raw, normalized string) (Resolution, bool) {
	if containsAny(normalized, "تمنع", "منع", "blocking", "wake lock") && containsAny(normalized, "السكون", "sleep") {
		return Resolution{
			Matched:      true,
			CapabilityID: "background.wake_lock",
			Action:       "background_tools",
			Params:       map[string]any{"mode": "wake_lock_apps"},
			Risk:         RiskSafe,
		}, true
	}

	if containsAny(normalized, "volume", "الصوت", "الاضاءه", "السطوع", "brightness") &&
		containsAny(normalized, "set", "اجعل", "خلي", "اعمل", "to ", "الى", "إلى") {
		if value, ok := FirstInt(raw); ok {
			params := map[string]any{"mode": "set", "level": clamp(value, 0, 100)}
			if containsAny(normalized, "volume", "الصوت") {
				return Resolution{Matched: true, CapabilityID: "audio.set", Action: "volume", Params: params, Risk: RiskSafe}, true
			}
			if containsAny(normalized, "brightness", "الاضاءه", "السطوع") {
				return Resolution{Matched: true, CapabilityID: "display.set_brightness", Action: "brightness", Params: params, Risk: RiskSafe}, true
			}
		}
	}

	// "restart the service": the name comes from the session unless given.
	if mode, name, ok := serviceCommand(raw, normalized); ok {
		id, risk := "services."+mode, RiskElevated
		if mode == "stop" {
			risk = RiskDestructive
		}
		params := map[string]any{"mode": mode}
		if name != "" {
			params["name"] = name
		}
		return Resolution{Matched: true, CapabilityID: id, Action: "service_tools", Params: params, Risk: risk}, true
	}
	return Resolution{Risk: RiskSafe}, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func mustAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(`(?i)` + p)
	}
	return out
}

var (
	wifiNamePatterns = mustAll(
		`(?:connect(?: to)? wifi|الاتصال بشبكه|الاتصال بشبكة|اتصل بشبكه|اتصل بشبكة)\s+(.+)$`,
		`(?:network|شبكه|شبكة)\s+(.+)$`,
	)
	processNamePatterns = mustAll(
		`(?:close app|اغلاق برنامج|اغلق برنامج|سكر برنامج|kill)\s+(.+)$`,
		`(?:app|program|برنامج|تطبيق)\s+(.+)$`,
	)
	namePatterns = mustAll(
		`(?:rename computer|rename pc|تغيير اسم الكمبيوتر)\s*(?:to|الى|إلى)?\s*[:\-]?\s*(.+)$`,
		`(?:name|named|اسم|باسم)\s*[:\-]?\s*(.+)$`,
	)
	textPatterns = mustAll(
		`(?:type string|type text|اكتب نص)\s+(.+)$`,
		`(?:rename window title|اعاده تسميه عنوان النافذه|إعادة تسمية عنوان النافذة)\s*(?:to|الى|إلى)?\s*(.+)$`,
		`(?:text to file|تحويل نص)\s*(?:الى|to)?\s*(.+)$`,
	)
	stopServicePatterns = mustAll(
		`(?:stop service|ايقاف خدمه|إيقاف خدمة)\s+(.+)$`,
	)
	startServicePatterns = mustAll(
		`(?:restart service|اعاده تشغيل خدمة|إعادة تشغيل خدمة)\s+(.+)$`,
		`(?:start service|تشغيل خدمه|تشغيل خدمة|شغل خدمة|شغل خدمه)\s+(.+)$`,
	)
	startupPatterns = mustAll(
		`(?:disable startup|تعطيل برنامج من بدء التشغيل)\s+(.+)$`,
		`(?:enable startup|تفعيل برنامج في بدء التشغيل)\s+(.+)$`,
	)
	windowTitlePatterns = mustAll(
		`(?:rename window title|اعاده تسميه عنوان النافذه|إعادة تسمية عنوان النافذة)\s*(?:to|الى|إلى)?\s*(.+)$`,
		`(?:window title|عنوان النافذه|عنوان النافذة)\s*(?:to|الى|إلى)?\s*(.+)$`,
	)
	typeQuotedRe = regexp.MustCompile(`["“](.+?)["”]|'(.+?)'`)
)

var (
	namedKeys = map[string]string{
		"keyboard.enter":       "enter",
		"keyboard.space":       "space",
		"keyboard.backspace":   "backspace",
		"keyboard.escape":      "esc",
		"keyboard.tab":         "tab",
		"keyboard.arrow_up":    "up",
		"keyboard.arrow_down":  "down",
		"keyboard.arrow_left":  "left",
		"keyboard.arrow_right": "right",
		"keyboard.caps_lock":   "capslock",
		"keyboard.num_lock":    "numlock",
	}
	hotkeys = map[string][]string{
		"keyboard.copy":       {"ctrl", "c"},
		"keyboard.paste":      {"ctrl", "v"},
		"keyboard.undo":       {"ctrl", "z"},
		"keyboard.select_all": {"ctrl", "a"},
		"keyboard.save":       {"ctrl", "s"},
		"files.paste":         {"ctrl", "v"},
	}
)

func hasString(params map[string]any, key string) bool {
	s, ok := params[key].(string)
	return ok && s != ""
}

// buildParams extracts the values a rule asks for from the raw text and applies
// the per-capability defaults.
func buildParams(rule Rule, raw string) map[string]any {
	params := map[string]any{}
	if rule.Mode != "" {
		params["mode"] = rule.Mode
	}

	value, hasValue := FirstInt(raw)
	if rule.Action == "volume" || rule.Action == "brightness" {
		switch {
		case rule.Mode == "set" && hasValue:
			params["level"] = clamp(value, 0, 100)
		case rule.Mode == "up" || rule.Mode == "down":
			delta := 10
			if hasValue {
				delta = abs(value)
			}
			params["delta"] = clamp(delta, 1, 100)
		}
	}

	if rule.Action == "shutdown_schedule" && rule.Mode == "set" {
		if mins, ok := Minutes(raw); ok {
			params["minutes"] = clamp(mins, 1, 1440)
		}
	}

	if rule.wants("host") {
		host := Host(raw)
		if host == "" {
			host = NamedValue(raw, wifiNamePatterns...)
		}
		if host == "" {
			host = AppQuery(raw)
		}
		if host != "" {
			params["host"] = host
		}
	}
	if rule.wants("query") {
		if q := AppQuery(raw); q != "" {
			params["query"] = q
		}
	}
	if rule.wants("process_name") {
		q := NamedValue(raw, processNamePatterns...)
		if q == "" {
			q = AppQuery(raw)
		}
		if q != "" {
			params["process_name"] = q
		}
	}
	if rule.wants("name") {
		q := NamedValue(raw, namePatterns...)
		if q == "" {
			q = AppQuery(raw)
		}
		if q != "" {
			params["name"] = q
		}
	}
	if rule.wants("opacity") && hasValue {
		params["opacity"] = clamp(value, 20, 100)
	}
	if rule.wants("x") && rule.wants("y") {
		if nums := Ints(raw, 4); len(nums) >= 2 {
			params["x"], params["y"] = nums[0], nums[1]
		}
	}
	if rule.wants("x2") && rule.wants("y2") {
		if nums := Ints(raw, 4); len(nums) >= 4 {
			params["x"], params["y"], params["x2"], params["y2"] = nums[0], nums[1], nums[2], nums[3]
		}
	}

	if rule.wants("path") || rule.wants("target") {
		found := Paths(raw)
		if rule.wants("path") && len(found) > 0 {
			params["path"] = found[0]
		}
		if rule.wants("target") && len(found) >= 2 {
			params["target"] = found[1]
		}
	}
	if rule.wants("ext") {
		if ext := Extension(raw); ext != "" {
			params["ext"] = ext
		}
	}
	if rule.wants("text") {
		if quoted := QuotedChunks(raw); len(quoted) > 0 {
			params["text"] = quoted[0]
		} else if q := NamedValue(raw, textPatterns...); q != "" {
			params["text"] = q
		}
	}
	if rule.wants("key") {
		if k := KeyName(raw); k != "" {
			params["key"] = k
		}
	}
	if rule.wants("repeat_count") {
		if cnt, ok := FirstInt(raw); ok {
			params["repeat_count"] = clamp(abs(cnt), 1, 200)
		}
	}
	if rule.wants("page") {
		page := rule.Mode
		if page == "" {
			page = "network"
		}
		params["page"] = page
		delete(params, "mode")
	}
	if rule.wants("seconds") && hasValue {
		params["seconds"] = clamp(abs(value), 1, 120)
	}

	id := rule.ID
	if strings.HasPrefix(id, "mouse.click") {
		params["button"] = "left"
		params["clicks"] = 1
		if strings.HasSuffix(id, "right") {
			params["button"] = "right"
		}
		if strings.Contains(id, "double") {
			params["clicks"] = 2
		}
	}
	switch id {
	case "mouse.down", "mouse.up":
		if _, ok := params["key"]; !ok {
			params["key"] = "left"
		}
	case "mouse.scroll_up", "mouse.scroll_down":
		if _, ok := params["repeat_count"]; !ok {
			params["repeat_count"] = 4
		}
	case "mouse.move_corner":
		params["key"] = Corner(raw)
	case "mouse.slow_move":
		params["duration"] = 1.5
		if nums := Ints(raw, 2); len(nums) >= 2 {
			params["x"], params["y"] = nums[0], nums[1]
		}
	case "keyboard.type":
		if _, ok := params["text"]; !ok {
			if m := typeQuotedRe.FindStringSubmatch(raw); m != nil {
				v := m[1]
				if v == "" {
					v = m[2]
				}
				if v = strings.TrimSpace(v); v != "" {
					params["text"] = v
				}
			}
		}
	case "keyboard.type_date":
		params["text"] = now().Format("2006-01-02")
	case "keyboard.type_time":
		params["text"] = now().Format("15:04:05")
	case "keyboard.repeat_key":
		if _, ok := params["key"]; !ok {
			k := KeyName(raw)
			if k == "" {
				k = "enter"
			}
			params["key"] = k
		}
		if _, ok := params["repeat_count"]; !ok {
			params["repeat_count"] = 3
		}
	case "network.connect_named":
		if named := AppQuery(raw); named != "" && !hasString(params, "host") {
			params["host"] = named
		}
	case "web.open_url":
		if u := URL(raw); u != "" {
			params["url"] = u
		}
	case "dev.text_to_file":
		if _, ok := params["text"]; !ok {
			params["text"] = strings.TrimSpace(raw)
		}
		for _, chunk := range QuotedChunks(raw) {
			if strings.HasSuffix(strings.ToLower(chunk), ".txt") {
				params["path"] = chunk
				break
			}
		}
	case "services.stop":
		if !hasString(params, "name") {
			if q := NamedValue(raw, stopServicePatterns...); q != "" {
				params["name"] = q
			}
		}
	case "services.start", "services.restart":
		if q := NamedValue(raw, startServicePatterns...); q != "" {
			params["name"] = q
		}
	case "startup.disable", "startup.enable":
		if q := NamedValue(raw, startupPatterns...); q != "" {
			params["name"] = q
		}
	case "window.rename_title":
		if !hasString(params, "text") {
			if q := NamedValue(raw, windowTitlePatterns...); q != "" {
				params["text"] = q
			}
		}
	case "files.create_folder":
		if !hasString(params, "name") {
			params["name"] = "New Folder"
		}
	case "files.delete_permanent":
		params["permanent"] = true
	}
	if k, ok := namedKeys[id]; ok {
		params["key"] = k
	}
	if keys, ok := hotkeys[id]; ok {
		params["keys"] = append([]string(nil), keys...)
	}
	return params
}
