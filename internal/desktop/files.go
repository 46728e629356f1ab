package desktop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const maxSearchResults = 50

var homeDir = os.UserHomeDir

var folderModes = map[string]string{
	"open_documents": "Documents",
	"open_downloads": "Downloads",
	"open_pictures":  "Pictures",
	"open_videos":    "Videos",
}

func fileTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	path, target := str(params, "path"), str(params, "target")

	if sub, ok := folderModes[mode]; ok {
		home, err := homeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(home, sub)
		if _, err := e.run(ctx, "xdg-open", dir); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "path": dir}, nil
	}

	switch mode {
	case "create_folder":
		dir := path
		if dir == "" {
			home, err := homeDir()
			if err != nil {
				return nil, err
			}
			name := str(params, "name")
			if name == "" {
				name = "New folder"
			}
			dir = filepath.Join(home, "Desktop", filepath.Base(name))
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "path": dir, "message": "Created " + dir}, nil
	case "delete":
		if path == "" {
			return nil, errors.New("no path given")
		}
		if err := os.RemoveAll(path); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "path": path, "message": "Deleted " + path}, nil
	case "copy", "move", "rename":
		if path == "" || target == "" {
			return nil, fmt.Errorf("%s needs a source and a destination", mode)
		}
		var err error
		if mode == "copy" {
			err = copyFile(path, target)
		} else {
			err = os.Rename(path, target)
		}
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "path": path, "target": target}, nil
	case "zip", "unzip":
		if path == "" {
			return nil, errors.New("no path given")
		}
		var err error
		if mode == "zip" {
			if target == "" {
				target = strings.TrimSuffix(path, string(filepath.Separator)) + ".zip"
			}
			_, err = e.run(ctx, "zip", "-r", "-q", target, path)
		} else {
			if target == "" {
				target = filepath.Dir(path)
			}
			_, err = e.run(ctx, "unzip", "-o", "-q", path, "-d", target)
		}
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "path": path, "target": target}, nil
	case "empty_recycle_bin":
		if _, err := e.run(ctx, "gio", "trash", "--empty"); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode}, nil
	case "show_hidden", "hide_hidden":
		show := strconv.FormatBool(mode == "show_hidden")
		if _, err := e.run(ctx, "gsettings", "set", "org.gtk.Settings.FileChooser", "show-hidden", show); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode}, nil
	case "open_cmd_here", "open_powershell_here":
		dir := path
		if dir == "" {
			home, err := homeDir()
			if err != nil {
				return nil, err
			}
			dir = home
		}
		if err := e.launch(ctx, "gnome-terminal", "--working-directory="+dir); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "path": dir}, nil
	case "folder_size":
		if path == "" {
			return nil, errors.New("no path given")
		}
		size, err := dirSize(ctx, path)
		if err != nil {
			return nil, err
		}
		mb := round1(float64(size) / (1 << 20))
		return map[string]any{"mode": mode, "path": path, "size_mb": mb, "message": fmt.Sprintf("%s: %.1f MB", path, mb)}, nil
	case "search_ext":
		ext := str(params, "ext")
		if ext == "" {
			return nil, errors.New("no extension given")
		}
		root := path
		if root == "" {
			home, err := homeDir()
			if err != nil {
				return nil, err
			}
			root = home
		}
		found, err := findByExt(ctx, root, ext)
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "items": found, "count": len(found)}, nil
	}
	return nil, unsupported("file_tools", mode)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func dirSize(ctx context.Context, root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total, err
}

func findByExt(ctx context.Context, root, ext string) ([]string, error) {
	ext = strings.ToLower(ext)
	var found []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.ToLower(filepath.Ext(p)) == ext {
			found = append(found, p)
			if len(found) >= maxSearchResults {
				return filepath.SkipAll
			}
		}
		return nil
	})
	return found, err
}
