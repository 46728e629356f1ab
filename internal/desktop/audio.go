package desktop

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const defaultSink = "@DEFAULT_SINK@"

var percentRe = regexp.MustCompile(`(\d+)%`)

func firstPercent(s string) (int, bool) {
	m := percentRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

func volume(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	var err error
	switch mode {
	case "get":
		return volumeState(ctx, e)
	case "set":
		_, err = e.run(ctx, "pactl", "set-sink-volume", defaultSink, fmt.Sprintf("%d%%", num(params, "level", 50)))
	case "up":
		_, err = e.run(ctx, "pactl", "set-sink-volume", defaultSink, fmt.Sprintf("+%d%%", num(params, "delta", 10)))
	case "down":
		_, err = e.run(ctx, "pactl", "set-sink-volume", defaultSink, fmt.Sprintf("-%d%%", num(params, "delta", 10)))
	case "mute":
		_, err = e.run(ctx, "pactl", "set-sink-mute", defaultSink, "1")
	case "unmute":
		_, err = e.run(ctx, "pactl", "set-sink-mute", defaultSink, "0")
	default:
		return nil, unsupported("volume", mode)
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}

func volumeState(ctx context.Context, e *Executor) (map[string]any, error) {
	out, err := e.run(ctx, "pactl", "get-sink-volume", defaultSink)
	if err != nil {
		return nil, err
	}
	level, ok := firstPercent(out)
	if !ok {
		return nil, fmt.Errorf("unexpected pactl output %q", out)
	}
	muteOut, err := e.run(ctx, "pactl", "get-sink-mute", defaultSink)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"level_percent": level,
		"muted":         strings.Contains(strings.ToLower(muteOut), "yes"),
	}, nil
}

func brightness(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	var arg string
	switch mode {
	case "get":
		// brightnessctl -m: device,class,current,percent,max
		out, err := e.run(ctx, "brightnessctl", "-m")
		if err != nil {
			return nil, err
		}
		fields := strings.Split(strings.SplitN(out, "\n", 2)[0], ",")
		if len(fields) < 4 {
			return nil, fmt.Errorf("unexpected brightnessctl output %q", out)
		}
		level, ok := firstPercent(fields[3])
		if !ok {
			return nil, fmt.Errorf("unexpected brightnessctl output %q", out)
		}
		return map[string]any{"brightness_percent": level}, nil
	case "set":
		arg = fmt.Sprintf("%d%%", num(params, "level", 50))
	case "up":
		arg = fmt.Sprintf("+%d%%", num(params, "delta", 10))
	case "down":
		arg = fmt.Sprintf("%d%%-", num(params, "delta", 10))
	default:
		return nil, unsupported("brightness", mode)
	}
	if _, err := e.run(ctx, "brightnessctl", "set", arg); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}

var playerctlModes = map[string]string{
	"play_pause": "play-pause",
	"next":       "next",
	"previous":   "previous",
}

func mediaControl(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	cmd, ok := playerctlModes[mode]
	if !ok {
		return nil, unsupported("media_control", mode)
	}
	if _, err := e.run(ctx, "playerctl", cmd); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}

func mediaTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if mode != "stop_all_media" {
		return nil, unsupported("media_tools", mode)
	}
	if _, err := e.run(ctx, "playerctl", "--all-players", "pause"); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}
