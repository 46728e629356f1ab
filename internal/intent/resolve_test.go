package intent

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		id     string
		action string
		params map[string]any
		risk   Risk
	}{
		{"arabic set volume", "خلي الصوت 33%", "audio.set", "volume", map[string]any{"mode": "set", "level": 33}, RiskSafe},
		{"volume clamps", "set volume to 150", "audio.set", "volume", map[string]any{"mode": "set", "level": 100}, RiskSafe},
		{"arabic indic digits", "خلي الصوت ٤٥", "audio.set", "volume", map[string]any{"mode": "set", "level": 45}, RiskSafe},
		{"set brightness", "set brightness to 40", "display.set_brightness", "brightness", map[string]any{"mode": "set", "level": 40}, RiskSafe},
		{"volume query", "كم نسبة الصوت", "audio.get", "volume", map[string]any{"mode": "get"}, RiskSafe},
		{"volume query with question mark", "كم نسبة الصوت؟", "audio.get", "volume", map[string]any{"mode": "get"}, RiskSafe},
		{"brightness query", "كم نسبة الاضاءة", "display.brightness_get", "brightness", map[string]any{"mode": "get"}, RiskSafe},
		{"volume up delta", "volume up 5", "audio.up", "volume", map[string]any{"mode": "up", "delta": 5}, RiskSafe},
		{"volume down default", "volume down", "audio.down", "volume", map[string]any{"mode": "down", "delta": 10}, RiskSafe},
		{"arabic volume down", "خفض الصوت", "audio.down", "volume", map[string]any{"mode": "down", "delta": 10}, RiskSafe},
		{"brightness up", "brightness up 20", "display.brightness_up", "brightness", map[string]any{"mode": "up", "delta": 20}, RiskSafe},
		{"unmute hits mute first", "unmute", "audio.mute", "volume", map[string]any{"mode": "mute"}, RiskSafe},
		{"battery", "كم نسبة البطارية", "system.battery_status", "system_info", map[string]any{"mode": "battery"}, RiskSafe},
		{"shutdown", "shutdown the pc now", "system.shutdown", "system_power", map[string]any{"mode": "shutdown"}, RiskDestructive},
		{"arabic shutdown", "اطفي الجهاز", "system.shutdown", "system_power", map[string]any{"mode": "shutdown"}, RiskDestructive},
		{"schedule shutdown is shadowed", "schedule shutdown 30 min", "system.shutdown", "system_power", map[string]any{"mode": "shutdown"}, RiskDestructive},
		{"restart service is shadowed", "restart service Spooler", "system.restart", "system_power", map[string]any{"mode": "restart"}, RiskDestructive},
		{"uptime", "what is the uptime", "system.uptime", "system_info", map[string]any{"mode": "uptime"}, RiskSafe},
		{"lock", "lock screen", "system.lock", "system_power", map[string]any{"mode": "lock"}, RiskSafe},
		{"rename pc", "rename computer to Workstation", "system.rename_pc", "system_power", map[string]any{"mode": "rename_pc", "name": "Workstation"}, RiskElevated},
		{"ping", "ping google.com", "network.ping", "network_tools", map[string]any{"mode": "ping", "host": "google.com"}, RiskSafe},
		{"connect wifi", "connect wifi HomeNet", "network.connect_named", "network_tools", map[string]any{"mode": "connect_wifi", "host": "HomeNet"}, RiskSafe},
		{"stop service", "stop service Spooler", "services.stop", "service_tools", map[string]any{"mode": "stop", "name": "Spooler"}, RiskDestructive},
		{"stop service without name", "stop service", "services.stop", "service_tools", map[string]any{"mode": "stop"}, RiskDestructive},
		{"start service", "start service wuauserv", "services.start", "service_tools", map[string]any{"mode": "start", "name": "wuauserv"}, RiskElevated},
		{"restart referenced service", "restart the service", "services.restart", "service_tools", map[string]any{"mode": "restart"}, RiskElevated},
		{"arabic restart referenced service", "اعاده تشغيل الخدمه", "services.restart", "service_tools", map[string]any{"mode": "restart"}, RiskElevated},
		{"stop named referenced service", "stop the service Spooler", "services.stop", "service_tools", map[string]any{"mode": "stop", "name": "Spooler"}, RiskDestructive},
		{"referenced service with filler", "please restart the service now", "services.restart", "service_tools", map[string]any{"mode": "restart"}, RiskElevated},
		{"referenced service trailing period", "stop that service.", "services.stop", "service_tools", map[string]any{"mode": "stop"}, RiskDestructive},
		{"arabic referenced service now", "اعاده تشغيل الخدمه الان", "services.restart", "service_tools", map[string]any{"mode": "restart"}, RiskElevated},
		{"arabic short restart", "اعد تشغيل الخدمة لو سمحت", "services.restart", "service_tools", map[string]any{"mode": "restart"}, RiskElevated},
		{"arabic stop referenced service", "ايقاف الخدمه", "services.stop", "service_tools", map[string]any{"mode": "stop"}, RiskDestructive},
		{"arabic start referenced service", "تشغيل الخدمة", "services.start", "service_tools", map[string]any{"mode": "start"}, RiskElevated},
		{"close app", "close app chrome", "apps.close_app", "close_app", map[string]any{"process_name": "chrome"}, RiskElevated},
		{"close app without name", "close app", "apps.close_app", "close_app", map[string]any{}, RiskElevated},
		{"delete file", `delete file "C:\tmp\a.txt"`, "files.delete", "file_tools", map[string]any{"mode": "delete", "path": `C:\tmp\a.txt`}, RiskDestructive},
		{"copy file", `copy file "C:\a.txt" "D:\b.txt"`, "files.copy", "file_tools", map[string]any{"mode": "copy", "path": `C:\a.txt`, "target": `D:\b.txt`}, RiskSafe},
		{"create folder", "create folder", "files.create_folder", "file_tools", map[string]any{"mode": "create_folder", "name": "create folder"}, RiskSafe},
		{"top cpu", "top cpu process", "dev.top_cpu", "process_tools", map[string]any{"mode": "top_cpu"}, RiskSafe},
		{"total cpu", "total cpu percent", "perf.total_cpu", "performance_tools", map[string]any{"mode": "total_cpu_percent"}, RiskSafe},
		{"wake lock", "prevent sleep wake lock", "background.wake_lock", "background_tools", map[string]any{"mode": "wake_lock_apps"}, RiskSafe},
		{"move mouse", "move mouse 100 200", "mouse.move", "mouse_move", map[string]any{"x": 100, "y": 200}, RiskSafe},
		{"right click", "right click", "mouse.click_right", "click", map[string]any{"button": "right", "clicks": 1}, RiskSafe},
		{"scroll default", "scroll down", "mouse.scroll_down", "automation_tools", map[string]any{"mode": "scroll_down", "repeat_count": 4}, RiskSafe},
		{"scroll count", "scroll up 7", "mouse.scroll_up", "automation_tools", map[string]any{"mode": "scroll_up", "repeat_count": 7}, RiskSafe},
		{"press enter", "press enter", "keyboard.enter", "press_key", map[string]any{"key": "enter"}, RiskSafe},
		{"type quoted", `type text "hello"`, "keyboard.type", "type_text", map[string]any{"text": "hello"}, RiskSafe},
		{"repeat key", "repeat key 5", "keyboard.repeat_key", "automation_tools", map[string]any{"mode": "repeat_key", "repeat_count": 5, "key": "enter"}, RiskSafe},
		{"hotkey", "ctrl c", "keyboard.copy", "hotkey", map[string]any{"keys": []string{"ctrl", "c"}}, RiskSafe},
		{"transparency floor", "set transparency 10", "window.transparency", "window_control", map[string]any{"mode": "transparency", "opacity": 20}, RiskElevated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Resolve(tt.input)
			require.True(t, res.Matched, "expected %q to match", tt.input)
			assert.False(t, res.Unsupported)
			assert.Equal(t, tt.id, res.CapabilityID)
			assert.Equal(t, tt.action, res.Action)
			assert.Equal(t, tt.risk, res.Risk)
			if diff := cmp.Diff(tt.params, res.Params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveUnsupported(t *testing.T) {
	res := Resolve("change audio output to headset")
	require.True(t, res.Matched)
	assert.True(t, res.Unsupported)
	assert.Equal(t, "audio.set_output", res.CapabilityID)
	assert.Empty(t, res.Action)
	assert.Equal(t, "Changing audio output is not implemented in DesktopTool yet.", res.UnsupportedReason)

	res = Resolve("mute microphone")
	assert.Equal(t, "audio.mute", res.CapabilityID, "the mute alias shadows the microphone catch-all")
}

func TestResolveNoMatch(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"cpu usage",
		"kill all apps",
		"what time is it",
		"tell me a joke",
		"write a poem about the sea",
		"focus chrome",
		"kill chrome",
		"open https://example.com",
		"وقف",
	} {
		res := Resolve(in)
		assert.False(t, res.Matched, "input %q resolved to %s", in, res.CapabilityID)
		assert.Empty(t, res.Action)
		assert.Equal(t, RiskSafe, res.Risk)
	}
}

// Sentences that mention a service without commanding it go to the agent.
func TestResolveServiceMentions(t *testing.T) {
	for _, in := range []string{
		"why won't the service start?",
		"is the service running?",
		"did the service stop",
		"the service keeps crashing",
		"stop the service from starting",
		"start the service?",
		"what does the service do",
		"tell me about that service",
		"لماذا توقفت الخدمه",
		"هل الخدمه تعمل",
		"لماذا لا تعمل الخدمه",
		"ما هي الخدمه",
		"ايقاف الخدمه من فضلك لان الجهاز بطيء",
	} {
		res := Resolve(in)
		assert.False(t, res.Matched, "input %q resolved to %s", in, res.CapabilityID)
		assert.Empty(t, res.Action)
		assert.Equal(t, RiskSafe, res.Risk)
	}
}

func TestResolveTypeDate(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2026, 10, 17, 4, 5, 6, 0, time.UTC) }
	t.Cleanup(func() { now = orig })

	assert.Equal(t, "2026-10-17", Resolve("type current date").Params["text"])
	assert.Equal(t, "04:05:06", Resolve("type current time").Params["text"])
}

// Every alias resolves to its own rule or to one listed earlier.
func TestResolveFirstMatchWins(t *testing.T) {
	overridden := map[string]bool{
		"background.wake_lock":   true,
		"audio.set":              true,
		"display.set_brightness": true,
		"services.restart":       true,
		"services.stop":          true,
		"services.start":         true,
	}
	index := map[string]int{}
	rules := Rules()
	for i, r := range rules {
		index[r.ID] = i
	}
	for i, r := range rules {
		for _, alias := range r.Aliases {
			res := Resolve(alias)
			require.True(t, res.Matched, "alias %q of %s did not match", alias, r.ID)
			if overridden[res.CapabilityID] {
				continue
			}
			got, ok := index[res.CapabilityID]
			require.True(t, ok, "alias %q resolved to unknown id %s", alias, res.CapabilityID)
			assert.LessOrEqual(t, got, i, "alias %q of %s resolved to later rule %s", alias, r.ID, res.CapabilityID)
		}
	}
}

func TestResolutionClone(t *testing.T) {
	res := Resolve("ctrl c")
	cp := res.Clone()
	cp.Params["mode"] = "changed"
	cp.Params["keys"].([]string)[0] = "alt"

	assert.NotContains(t, res.Params, "mode")
	assert.Equal(t, []string{"ctrl", "c"}, res.Params["keys"])
	assert.Equal(t, "", res.Mode())
	assert.Equal(t, "changed", cp.Mode())
}

func TestRulesValidate(t *testing.T) {
	rules := Rules()
	require.NoError(t, Validate(rules))
	assert.Len(t, rules, 226)

	dup := append(Rules(), rules[0])
	assert.Error(t, Validate(dup))

	bad := Rules()
	bad[1].Risk = "catastrophic"
	assert.Error(t, Validate(bad))

	both := Rules()
	both[2].Unsupported = "nope"
	assert.Error(t, Validate(both))
}
