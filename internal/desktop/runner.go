package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Runner runs an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if _, err := exec.LookPath(name); err != nil {
		return "", fmt.Errorf("%w (is %s installed?)", ErrUnsupported, name)
	}
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil && text != "" {
		return text, fmt.Errorf("%w: %s", err, text)
	}
	return text, err
}

// DryRunner records commands instead of running them. Outputs maps a command
// line ("pactl get-sink-mute @DEFAULT_SINK@") to canned output.
type DryRunner struct {
	Outputs map[string]string

	mu       sync.Mutex
	commands []string
}

func (d *DryRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	d.mu.Lock()
	d.commands = append(d.commands, line)
	d.mu.Unlock()
	return d.Outputs[line], nil
}

func (d *DryRunner) Commands() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.commands...)
}
