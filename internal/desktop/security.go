package desktop

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const maxRecentFiles = 10

const emptyRecentFiles = `<?xml version="1.0" encoding="UTF-8"?>
<xbel version="1.0" xmlns:bookmark="http://www.freedesktop.org/standards/desktop-bookmarks" xmlns:mime="http://www.freedesktop.org/standards/shared-mime-info">
</xbel>
`

var hrefRe = regexp.MustCompile(`<bookmark href="([^"]+)"`)

func recentFilesPath() (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "recently-used.xbel"), nil
}

func securityTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	switch mode {
	case "firewall_status":
		out, err := e.run(ctx, "ufw", "status")
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "active": strings.Contains(out, "Status: active"), "message": out}, nil
	case "firewall_enable":
		if _, err := e.run(ctx, "ufw", "--force", "enable"); err != nil {
			return nil, err
		}
	case "firewall_disable":
		if _, err := e.run(ctx, "ufw", "disable"); err != nil {
			return nil, err
		}
	case "recent_files_list":
		files, err := recentFiles()
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "items": files, "count": len(files)}, nil
	case "recent_files_clear":
		path, err := recentFilesPath()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(emptyRecentFiles), 0o600); err != nil {
			return nil, err
		}
	case "intrusion_summary":
		return intrusionSummary(ctx, e)
	default:
		return nil, unsupported("security_tools", mode)
	}
	return map[string]any{"mode": mode}, nil
}

// recentFiles returns the newest entries of the freedesktop recent list.
func recentFiles() ([]string, error) {
	path, err := recentFilesPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	matches := hrefRe.FindAllStringSubmatch(string(b), -1)
	out := make([]string, 0, maxRecentFiles)
	for i := len(matches) - 1; i >= 0 && len(out) < maxRecentFiles; i-- {
		href := matches[i][1]
		if u, err := url.Parse(href); err == nil && u.Scheme == "file" {
			href = u.Path
		}
		out = append(out, href)
	}
	return out, nil
}

func intrusionSummary(ctx context.Context, e *Executor) (map[string]any, error) {
	out, err := e.run(ctx, "journalctl", "-q", "--no-pager", "--since", "today", "-g", "Failed password|authentication failure")
	// journalctl exits non-zero when nothing matches.
	if err != nil && (errors.Is(err, ErrUnsupported) || out != "") {
		return nil, err
	}
	failures := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			failures++
		}
	}
	return map[string]any{
		"mode":     "intrusion_summary",
		"failures": failures,
		"message":  fmt.Sprintf("Failed logins today: %d", failures),
	}, nil
}
