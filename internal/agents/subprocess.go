package agents

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"mudabbir/internal/logging"
	"mudabbir/internal/memory"
)

const (
	historyClip = 500
	stderrClip  = 300
	maxLineSize = 1 << 20
)

// buildPrompt flattens the system prompt and history into one prompt for CLI
// agents that take a single argument.
func buildPrompt(systemPrompt string, history []memory.Message, message string) string {
	var parts []string
	if s := strings.TrimSpace(systemPrompt); s != "" {
		parts = append(parts, "[System Instructions]\n"+s)
	}
	if len(history) > 0 {
		lines := []string{"# Recent Conversation"}
		for _, m := range history {
			role := "User"
			if m.Role == memory.RoleAssistant {
				role = "Assistant"
			}
			content := m.Content
			if r := []rune(content); len(r) > historyClip {
				content = string(r[:historyClip]) + "..."
			}
			lines = append(lines, fmt.Sprintf("**%s**: %s", role, content))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	parts = append(parts, message)
	return strings.Join(parts, "\n\n")
}

// process is an agent that runs as a local binary.
type process struct {
	info   Info
	binary string
	log    zerolog.Logger
}

func (p process) available() bool {
	_, err := exec.LookPath(p.binary)
	return err == nil
}

func (p process) missing(ctx context.Context, out chan<- Event) {
	fail(ctx, out, fmt.Sprintf("%s not found on PATH.\n\nInstall with: %s", p.info.DisplayName, p.info.InstallHint))
}

// stream runs the binary with args and feeds every stdout line to onLine.
// A non-zero exit while ctx is live becomes an error event.
func (p process) stream(ctx context.Context, out chan<- Event, args []string, onLine func(line []byte) []Event) {
	cmd := exec.CommandContext(ctx, p.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		fail(ctx, out, fmt.Sprintf("%s: %v", p.info.DisplayName, err))
		return
	}
	if err := cmd.Start(); err != nil {
		fail(ctx, out, fmt.Sprintf("%s failed to start: %v", p.info.DisplayName, err))
		return
	}

	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	for sc.Scan() {
		for _, ev := range onLine(sc.Bytes()) {
			if !send(ctx, out, ev) {
				_, _ = io.Copy(io.Discard, stdout)
				_ = cmd.Wait()
				return
			}
		}
	}
	if err := sc.Err(); err != nil {
		p.log.Debug().Err(err).Msg("reading output")
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return
		}
		msg := fmt.Sprintf("%s exited: %v", p.info.DisplayName, err)
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg = fmt.Sprintf("%s exited with code %d", p.info.DisplayName, exitErr.ExitCode())
		}
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg += ": " + preview(s, stderrClip)
		}
		p.log.Warn().Str("stderr", preview(stderr.String(), stderrClip)).Err(err).Msg("agent process failed")
		send(ctx, out, Event{Kind: EventError, Content: msg})
	}
	send(ctx, out, Event{Kind: EventDone})
}

// cliBackend streams a CLI agent's plain stdout, one message event per line.
type cliBackend struct {
	process
	args []string
}

func cliFactory(binary string, args ...string) factory {
	return func(_ context.Context, info Info, _ Deps) (Backend, error) {
		return &cliBackend{
			process: process{info: info, binary: binary, log: logging.For("agent." + info.Name)},
			args:    args,
		}, nil
	}
}

func (b *cliBackend) Info() Info { return b.info }

func (b *cliBackend) Run(ctx context.Context, message, systemPrompt string, history []memory.Message) (<-chan Event, error) {
	out := make(chan Event, 16)
	go func() {
		defer close(out)
		if !b.available() {
			b.missing(ctx, out)
			return
		}
		args := append(append([]string{}, b.args...), buildPrompt(systemPrompt, history, message))
		b.stream(ctx, out, args, func(line []byte) []Event {
			return []Event{{Kind: EventMessage, Content: string(line) + "\n"}}
		})
	}()
	return out, nil
}
