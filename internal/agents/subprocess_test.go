package agents

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mudabbir/internal/logging"
)

func script(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	path := filepath.Join(t.TempDir(), "agent.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func testCLI(t *testing.T, binary string) *cliBackend {
	t.Helper()
	info, err := Lookup("open_interpreter")
	require.NoError(t, err)
	b, err := cliFactory(binary, "--plain")(context.Background(), info, Deps{})
	require.NoError(t, err)
	return b.(*cliBackend)
}

func TestCLIBackendStreamsLines(t *testing.T) {
	// Echoes its first flag and the prompt back.
	b := testCLI(t, script(t, `echo "$1"; echo "$2"`))
	events := drain(must(b.Run(context.Background(), "hello", "", nil)))
	assert.Equal(t, []Event{
		{Kind: EventMessage, Content: "--plain\n"},
		{Kind: EventMessage, Content: "hello\n"},
		{Kind: EventDone},
	}, events)
}

func TestCLIBackendExitCode(t *testing.T) {
	b := testCLI(t, script(t, `echo partial; echo "disk full" >&2; exit 3`))
	events := drain(must(b.Run(context.Background(), "hello", "", nil)))
	require.Equal(t, []EventKind{EventMessage, EventError, EventDone}, kinds(events))
	assert.Equal(t, "Open Interpreter exited with code 3: disk full", events[1].Content)
}

func TestCLIBackendMissingBinary(t *testing.T) {
	b := testCLI(t, filepath.Join(t.TempDir(), "no-such-agent"))
	events := drain(must(b.Run(context.Background(), "hello", "", nil)))
	require.Equal(t, []EventKind{EventError, EventDone}, kinds(events))
	assert.Equal(t, "Open Interpreter not found on PATH.\n\nInstall with: pip install open-interpreter", events[0].Content)
}

func TestCodexBackendParsesJSON(t *testing.T) {
	bin := script(t, `printf '%s\n' '{"type":"item.started","item":{"type":"command_execution","command":"ls"}}' '{"type":"item.completed","item":{"type":"agent_message","text":"done"}}'`)
	info, err := Lookup("codex_cli")
	require.NoError(t, err)
	b := &codexBackend{process: process{info: info, binary: bin, log: logging.Nop()}, model: "gpt-4o"}

	events := drain(must(b.Run(context.Background(), "list", "", nil)))
	require.Equal(t, []EventKind{EventToolUse, EventMessage, EventDone}, kinds(events))
	assert.Equal(t, "Running: ls", events[0].Content)
	assert.Equal(t, "done", events[1].Content)
}
