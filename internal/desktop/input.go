package desktop

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

var xdoKeys = map[string]string{
	"enter": "Return",
	"space": "space",
	"tab":   "Tab",
	"esc":   "Escape",
	"up":    "Up",
	"down":  "Down",
	"left":  "Left",
	"right": "Right",
	"f5":    "F5",
}

func xdoKey(k string) string {
	if v, ok := xdoKeys[strings.ToLower(k)]; ok {
		return v
	}
	return k
}

func typeText(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	text := str(params, "text")
	if text == "" {
		return nil, fmt.Errorf("nothing to type")
	}
	if _, err := e.run(ctx, "xdotool", "type", "--delay", "5", "--", text); err != nil {
		return nil, err
	}
	return map[string]any{"typed": len([]rune(text))}, nil
}

func pressKey(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	key := str(params, "key")
	if key == "" {
		return nil, fmt.Errorf("no key given")
	}
	if _, err := e.run(ctx, "xdotool", "key", xdoKey(key)); err != nil {
		return nil, err
	}
	return map[string]any{"key": key}, nil
}

func hotkey(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	keys := strs(params, "keys")
	if len(keys) == 0 {
		return nil, fmt.Errorf("no keys given")
	}
	combo := make([]string, len(keys))
	for i, k := range keys {
		switch k {
		case "win":
			combo[i] = "super"
		default:
			combo[i] = xdoKey(k)
		}
	}
	if _, err := e.run(ctx, "xdotool", "key", strings.Join(combo, "+")); err != nil {
		return nil, err
	}
	return map[string]any{"keys": keys}, nil
}

func click(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	button := "1"
	if str(params, "button") == "right" {
		button = "3"
	}
	clicks := num(params, "clicks", 1)
	if _, err := e.run(ctx, "xdotool", "click", "--repeat", strconv.Itoa(clicks), button); err != nil {
		return nil, err
	}
	return map[string]any{"button": str(params, "button"), "clicks": clicks}, nil
}

func mouseMove(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	x, y := num(params, "x", -1), num(params, "y", -1)
	if x < 0 || y < 0 {
		return nil, fmt.Errorf("no coordinates given")
	}
	if _, err := e.run(ctx, "xdotool", "mousemove", strconv.Itoa(x), strconv.Itoa(y)); err != nil {
		return nil, err
	}
	return map[string]any{"x": x, "y": y}, nil
}

func automationTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	count := strconv.Itoa(num(params, "repeat_count", 1))
	var args []string
	switch mode {
	case "scroll_up":
		args = []string{"click", "--repeat", count, "4"}
	case "scroll_down":
		args = []string{"click", "--repeat", count, "5"}
	case "repeat_key":
		args = []string{"key", "--repeat", count, xdoKey(str(params, "key"))}
	case "mouse_down", "mouse_up":
		button := "1"
		if str(params, "key") == "right" {
			button = "3"
		}
		args = []string{strings.ReplaceAll(mode, "_", ""), button}
	case "click_center":
		args = []string{"mousemove", "--polar", "0", "0", "click", "1"}
	case "move_corner":
		x, y, err := cornerPoint(ctx, e, str(params, "key"))
		if err != nil {
			return nil, err
		}
		args = []string{"mousemove", strconv.Itoa(x), strconv.Itoa(y)}
	case "drag_drop":
		x, y, x2, y2 := num(params, "x", -1), num(params, "y", -1), num(params, "x2", -1), num(params, "y2", -1)
		if x < 0 || y < 0 || x2 < 0 || y2 < 0 {
			return nil, fmt.Errorf("drag needs start and end coordinates")
		}
		args = []string{
			"mousemove", strconv.Itoa(x), strconv.Itoa(y), "mousedown", "1",
			"mousemove", strconv.Itoa(x2), strconv.Itoa(y2), "mouseup", "1",
		}
	default:
		return nil, unsupported("automation_tools", mode)
	}
	if _, err := e.run(ctx, "xdotool", args...); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}

// cornerPoint maps top_left, top_right, bottom_left or bottom_right to the
// matching pixel of the display.
func cornerPoint(ctx context.Context, e *Executor, corner string) (x, y int, err error) {
	out, err := e.run(ctx, "xdotool", "getdisplaygeometry")
	if err != nil {
		return 0, 0, err
	}
	var w, h int
	if _, err := fmt.Sscan(out, &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("unexpected display geometry %q", out)
	}
	if strings.HasSuffix(corner, "right") {
		x = w - 1
	}
	if strings.HasPrefix(corner, "bottom") {
		y = h - 1
	}
	return x, y, nil
}

var windowKeys = map[string]string{
	"alt_tab":                 "alt+Tab",
	"task_view":               "super",
	"split_left":              "super+Left",
	"split_right":             "super+Right",
	"project_panel":           "super+p",
	"aero_shake":              "super+Home",
	"move_next_monitor_right": "super+shift+Right",
}

func windowControl(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if key, ok := windowKeys[mode]; ok {
		if _, err := e.run(ctx, "xdotool", "key", key); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode}, nil
	}
	var err error
	switch mode {
	case "bring_to_front", "show", "restore":
		query := str(params, "query")
		if query == "" {
			return nil, fmt.Errorf("no window given")
		}
		if _, err = e.run(ctx, "wmctrl", "-a", query); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "query": query}, nil
	case "minimize", "hide":
		_, err = e.run(ctx, "xdotool", "getactivewindow", "windowminimize")
	case "maximize":
		_, err = e.run(ctx, "wmctrl", "-r", ":ACTIVE:", "-b", "add,maximized_vert,maximized_horz")
	case "close_current":
		_, err = e.run(ctx, "wmctrl", "-c", ":ACTIVE:")
	case "show_desktop":
		_, err = e.run(ctx, "wmctrl", "-k", "on")
	case "undo_show_desktop":
		_, err = e.run(ctx, "wmctrl", "-k", "off")
	case "always_on_top_on":
		_, err = e.run(ctx, "wmctrl", "-r", ":ACTIVE:", "-b", "add,above")
	case "always_on_top_off":
		_, err = e.run(ctx, "wmctrl", "-r", ":ACTIVE:", "-b", "remove,above")
	case "rename_title":
		name := str(params, "name")
		if name == "" {
			return nil, fmt.Errorf("no title given")
		}
		_, err = e.run(ctx, "wmctrl", "-r", ":ACTIVE:", "-N", name)
	case "coords":
		out, err := e.run(ctx, "xdotool", "getmouselocation", "--shell")
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "message": strings.ReplaceAll(out, "\n", " ")}, nil
	default:
		return nil, unsupported("window_control", mode)
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}

var appCommands = map[string][]string{
	"open_task_manager":        {"gnome-system-monitor"},
	"open_notepad":             {"gnome-text-editor"},
	"open_calc":                {"gnome-calculator"},
	"open_paint":               {"kolourpaint"},
	"open_default_browser":     {"xdg-open", "https://"},
	"open_chrome":              {"google-chrome"},
	"open_control_panel":       {"gnome-control-center"},
	"open_camera":              {"cheese"},
	"open_calendar":            {"gnome-calendar"},
	"open_mail":                {"xdg-open", "mailto:"},
	"open_volume_mixer":        {"pavucontrol"},
	"open_mic_settings":        {"gnome-control-center", "sound"},
	"open_store":               {"gnome-software"},
	"open_registry":            {"dconf-editor"},
	"open_add_remove_programs": {"gnome-software", "--mode=installed"},
}

func appTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	cmd, ok := appCommands[mode]
	if !ok {
		return nil, unsupported("app_tools", mode)
	}
	if err := e.launch(ctx, cmd...); err != nil {
		return nil, err
	}
	result := map[string]any{"mode": mode}
	if cmd[0] != "xdg-open" {
		result["query"] = cmd[0]
	}
	return result, nil
}
