package desktop

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
)

var (
	clock          = time.Now
	writeClipboard = clipboard.WriteAll
)

const (
	defaultShutdownDelay = 60
	defaultRecordSeconds = 10
)

// launch starts a desktop program detached from the assistant.
func (e *Executor) launch(ctx context.Context, cmd ...string) error {
	_, err := e.run(ctx, "setsid", append([]string{"-f"}, cmd...)...)
	return err
}

// stamped returns home/dir/prefix-<timestamp>ext, creating the directory.
func stamped(dir, prefix, ext string) (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	d := filepath.Join(home, dir)
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(d, prefix+"-"+clock().Format("20060102-150405")+ext), nil
}

func shutdownSchedule(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	switch mode {
	case "set":
		mins := num(params, "minutes", defaultShutdownDelay)
		if mins < 1 {
			mins = 1
		}
		if _, err := e.run(ctx, "shutdown", "-h", "+"+strconv.Itoa(mins)); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "minutes": mins, "message": fmt.Sprintf("Shutdown scheduled in %d minutes.", mins)}, nil
	case "cancel":
		if _, err := e.run(ctx, "shutdown", "-c"); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode}, nil
	}
	return nil, unsupported("shutdown_schedule", mode)
}

var screenshotFlags = map[string][]string{
	"full":          nil,
	"window_active": {"-w"},
	"snipping_tool": {"-a"},
}

func screenshotTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	flags, ok := screenshotFlags[mode]
	if !ok {
		return nil, unsupported("screenshot_tools", mode)
	}
	path, err := stamped("Pictures", "Screenshot", ".png")
	if err != nil {
		return nil, err
	}
	args := append(append([]string(nil), flags...), "-f", path)
	if _, err := e.run(ctx, "gnome-screenshot", args...); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode, "path": path, "message": "Screenshot saved to " + path}, nil
}

func clipboardTools(_ context.Context, _ *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if mode != "clear" {
		return nil, unsupported("clipboard_tools", mode)
	}
	if err := writeClipboard(""); err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return map[string]any{"mode": mode}, nil
}

func uiTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	var enabled string
	switch mode {
	case "night_light_on":
		enabled = "true"
	case "night_light_off":
		enabled = "false"
	default:
		return nil, unsupported("ui_tools", mode)
	}
	if _, err := e.run(ctx, "gsettings", "set", "org.gnome.settings-daemon.plugins.color", "night-light-enabled", enabled); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}

func powerUserTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	var op string
	switch mode {
	case "airplane_on":
		op = "block"
	case "airplane_off":
		op = "unblock"
	default:
		return nil, unsupported("power_user_tools", mode)
	}
	if _, err := e.run(ctx, "rfkill", op, "all"); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}

func microphoneRecord(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	secs := num(params, "seconds", defaultRecordSeconds)
	if secs < 1 {
		secs = defaultRecordSeconds
	}
	path, err := stamped("Music", "Recording", ".wav")
	if err != nil {
		return nil, err
	}
	if _, err := e.run(ctx, "arecord", "-q", "-d", strconv.Itoa(secs), "-f", "cd", path); err != nil {
		return nil, err
	}
	return map[string]any{"path": path, "seconds": secs, "message": fmt.Sprintf("Recorded %ds to %s", secs, path)}, nil
}

var settingsPageRe = regexp.MustCompile(`^[a-z][a-z-]*$`)

func openSettingsPage(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	page := str(params, "page")
	if page == "" {
		page = "network"
	}
	if !settingsPageRe.MatchString(page) {
		return nil, fmt.Errorf("invalid settings page %q", page)
	}
	if err := e.launch(ctx, "gnome-control-center", page); err != nil {
		return nil, err
	}
	return map[string]any{"page": page}, nil
}

var devCommands = map[string][]string{
	"open_disk_management": {"gnome-disks"},
	"open_perfmon":         {"gnome-system-monitor", "-r"},
	"open_event_viewer":    {"gnome-logs"},
}

func devTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	cmd, ok := devCommands[mode]
	if !ok {
		return nil, unsupported("dev_tools", mode)
	}
	if err := e.launch(ctx, cmd...); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode, "query": cmd[0]}, nil
}

func remoteTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if mode != "rdp_open" {
		return nil, unsupported("remote_tools", mode)
	}
	if err := e.launch(ctx, "remmina"); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode, "query": "remmina"}, nil
}

func textTools(_ context.Context, _ *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if mode != "text_to_file" {
		return nil, unsupported("text_tools", mode)
	}
	text := str(params, "text")
	if text == "" {
		return nil, fmt.Errorf("no text given")
	}
	path := str(params, "path")
	if path == "" {
		var err error
		if path, err = stamped("Desktop", "note", ".txt"); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode, "path": path, "message": "Saved text to " + path}, nil
}

var shellKeys = map[string]string{
	"start_menu":           "super",
	"search":               "super",
	"notifications":        "super+v",
	"run":                  "alt+F2",
	"next_virtual_desktop": "ctrl+alt+Right",
	"prev_virtual_desktop": "ctrl+alt+Left",
}

func shellTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if mode == "file_explorer" {
		home, err := homeDir()
		if err != nil {
			return nil, err
		}
		if err := e.launch(ctx, "xdg-open", home); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "path": home}, nil
	}
	key, ok := shellKeys[mode]
	if !ok {
		return nil, unsupported("shell_tools", mode)
	}
	if _, err := e.run(ctx, "xdotool", "key", key); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}
