// Package desktop executes fast-path capabilities against the local machine.
// Metrics come from gopsutil; everything else shells out to the usual Linux
// desktop tools (pactl, brightnessctl, systemctl, nmcli, xdotool, ...).
package desktop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"mudabbir/internal/logging"
)

// ErrUnsupported marks an action or mode this machine cannot perform.
var ErrUnsupported = errors.New("not supported on this platform")

type handler func(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error)

// Executor implements fastpath.Executor.
type Executor struct {
	runner Runner
	log    zerolog.Logger
}

type Option func(*Executor)

func WithRunner(r Runner) Option { return func(e *Executor) { e.runner = r } }

func WithLogger(l zerolog.Logger) Option { return func(e *Executor) { e.log = l } }

// WithDryRun swaps the command runner for one that only records commands.
func WithDryRun(dry bool) Option {
	return func(e *Executor) {
		if dry {
			e.runner = &DryRunner{}
		}
	}
}

func New(opts ...Option) *Executor {
	e := &Executor{runner: ExecRunner{}, log: logging.For("desktop")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var handlers = map[string]handler{
	"volume":             volume,
	"brightness":         brightness,
	"media_control":      mediaControl,
	"media_tools":        mediaTools,
	"system_info":        systemInfo,
	"performance_tools":  performanceTools,
	"process_tools":      processTools,
	"close_app":          closeApp,
	"service_tools":      serviceTools,
	"system_power":       systemPower,
	"network_tools":      networkTools,
	"bluetooth_control":  bluetoothControl,
	"type_text":          typeText,
	"press_key":          pressKey,
	"hotkey":             hotkey,
	"click":              click,
	"mouse_move":         mouseMove,
	"automation_tools":   automationTools,
	"window_control":     windowControl,
	"file_tools":         fileTools,
	"app_tools":          appTools,
	"shutdown_schedule":  shutdownSchedule,
	"screenshot_tools":   screenshotTools,
	"clipboard_tools":    clipboardTools,
	"ui_tools":           uiTools,
	"power_user_tools":   powerUserTools,
	"microphone_record":  microphoneRecord,
	"open_settings_page": openSettingsPage,
	"dev_tools":          devTools,
	"remote_tools":       remoteTools,
	"text_tools":         textTools,
	"shell_tools":        shellTools,
	"security_tools":     securityTools,
	"background_tools":   backgroundTools,
	"startup_tools":      startupTools,
}

// Actions lists the supported action names in sorted order.
func Actions() []string {
	out := make([]string, 0, len(handlers))
	for name := range handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Execute runs action and returns a JSON object, or an "error: ..." string
// when it fails. The Go error is reserved for a cancelled context.
func (e *Executor) Execute(ctx context.Context, action string, params map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h, ok := handlers[action]
	if !ok {
		return "error: unknown action " + action, nil
	}
	result, err := h(ctx, e, params)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		e.log.Warn().Err(err).Str("action", action).Str("mode", str(params, "mode")).Msg("action failed")
		return "error: " + err.Error(), nil
	}
	if result == nil {
		result = map[string]any{}
	}
	if _, ok := result["ok"]; !ok {
		result["ok"] = true
	}
	b, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode %s result: %w", action, err)
	}
	e.log.Debug().Str("action", action).RawJSON("result", b).Msg("action executed")
	return string(b), nil
}

func (e *Executor) run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := e.runner.Run(ctx, name, args...)
	if err != nil {
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func unsupported(action, mode string) error {
	if mode == "" {
		return fmt.Errorf("%s: %w", action, ErrUnsupported)
	}
	return fmt.Errorf("%s %s: %w", action, mode, ErrUnsupported)
}

func str(params map[string]any, key string) string {
	switch v := params[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func num(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func strs(params map[string]any, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			out = append(out, fmt.Sprint(x))
		}
		return out
	}
	return nil
}
