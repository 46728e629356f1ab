package desktop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	goprocess "github.com/shirou/gopsutil/v4/process"
)

var (
	userConfigDir = os.UserConfigDir
	processPaths  = snapshotPaths
)

const maxProcessPaths = 20

func snapshotPaths(ctx context.Context) ([]string, error) {
	procs, err := goprocess.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	seen := make(map[string]struct{})
	for _, p := range procs {
		exe, err := p.ExeWithContext(ctx)
		if err != nil || exe == "" {
			continue
		}
		seen[exe] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for exe := range seen {
		out = append(out, exe)
	}
	sort.Strings(out)
	return out, nil
}

func backgroundTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	switch mode {
	case "count_background":
		procs, err := listProcesses(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "count": len(procs), "message": fmt.Sprintf("%d processes running.", len(procs))}, nil
	case "process_paths":
		paths, err := processPaths(ctx)
		if err != nil {
			return nil, err
		}
		total := len(paths)
		if total > maxProcessPaths {
			paths = paths[:maxProcessPaths]
		}
		return map[string]any{"mode": mode, "items": paths, "count": total}, nil
	case "list_visible_windows":
		out, err := e.run(ctx, "wmctrl", "-l")
		if err != nil {
			return nil, err
		}
		titles := windowTitles(out)
		return map[string]any{"mode": mode, "items": titles, "count": len(titles)}, nil
	case "wake_lock_apps":
		out, err := e.run(ctx, "systemd-inhibit", "--list", "--no-pager", "--no-legend")
		if err != nil {
			return nil, err
		}
		locks := nonEmptyLines(out)
		return map[string]any{"mode": mode, "items": locks, "count": len(locks)}, nil
	}
	return nil, unsupported("background_tools", mode)
}

// windowTitles extracts titles from "wmctrl -l" lines: id, desktop, host, title.
func windowTitles(out string) []string {
	titles := []string{}
	for _, line := range nonEmptyLines(out) {
		fields := strings.SplitN(strings.Join(strings.Fields(line), " "), " ", 4)
		if len(fields) == 4 {
			titles = append(titles, fields[3])
		}
	}
	return titles
}

func nonEmptyLines(out string) []string {
	lines := []string{}
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

type autostartEntry struct {
	File    string
	Name    string
	Enabled bool
}

func autostartDir() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart"), nil
}

// readAutostart lists the XDG autostart entries of the current user.
func readAutostart() ([]autostartEntry, error) {
	dir, err := autostartDir()
	if err != nil {
		return nil, err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.desktop"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	out := make([]autostartEntry, 0, len(files))
	for _, f := range files {
		ent, err := parseDesktopEntry(f)
		if err != nil {
			continue
		}
		out = append(out, ent)
	}
	return out, nil
}

func parseDesktopEntry(path string) (autostartEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return autostartEntry{}, err
	}
	defer f.Close()
	ent := autostartEntry{File: path, Name: strings.TrimSuffix(filepath.Base(path), ".desktop"), Enabled: true}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "Name":
			ent.Name = value
		case "Hidden":
			if strings.EqualFold(value, "true") {
				ent.Enabled = false
			}
		case "X-GNOME-Autostart-enabled":
			if strings.EqualFold(value, "false") {
				ent.Enabled = false
			}
		}
	}
	return ent, sc.Err()
}

// setAutostart rewrites the Hidden key of the entry whose name or file
// matches name.
func setAutostart(name string, enabled bool) (autostartEntry, error) {
	entries, err := readAutostart()
	if err != nil {
		return autostartEntry{}, err
	}
	for _, ent := range entries {
		base := strings.TrimSuffix(filepath.Base(ent.File), ".desktop")
		if !strings.EqualFold(ent.Name, name) && !strings.EqualFold(base, name) {
			continue
		}
		b, err := os.ReadFile(ent.File)
		if err != nil {
			return autostartEntry{}, err
		}
		var lines []string
		for _, line := range strings.Split(strings.TrimRight(string(b), "\n"), "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), "Hidden=") {
				lines = append(lines, line)
			}
		}
		if !enabled {
			lines = append(lines, "Hidden=true")
		}
		if err := os.WriteFile(ent.File, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
			return autostartEntry{}, err
		}
		ent.Enabled = enabled
		return ent, nil
	}
	return autostartEntry{}, fmt.Errorf("no startup entry named %s", name)
}

func startupTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	switch mode {
	case "startup_list", "folder_startups":
		entries, err := readAutostart()
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		items := make([]map[string]any, 0, len(entries))
		for _, ent := range entries {
			items = append(items, map[string]any{"name": ent.Name, "enabled": ent.Enabled, "path": ent.File})
		}
		return map[string]any{"mode": mode, "items": items, "count": len(items)}, nil
	case "enable", "disable":
		name := str(params, "name")
		if name == "" {
			return nil, fmt.Errorf("no startup entry given")
		}
		ent, err := setAutostart(name, mode == "enable")
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "entry": ent.Name, "enabled": ent.Enabled}, nil
	case "startup_impact_time":
		out, err := e.run(ctx, "systemd-analyze", "time")
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "message": out}, nil
	}
	return nil, unsupported("startup_tools", mode)
}
