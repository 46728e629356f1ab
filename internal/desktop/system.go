package desktop

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	gocpu "github.com/shirou/gopsutil/v4/cpu"
	gohost "github.com/shirou/gopsutil/v4/host"
	gomem "github.com/shirou/gopsutil/v4/mem"
	goprocess "github.com/shirou/gopsutil/v4/process"
)

// System call wrappers for testing.
var (
	cpuPercent    = gocpu.PercentWithContext
	cpuInfo       = gocpu.InfoWithContext
	virtualMemory = gomem.VirtualMemoryWithContext
	swapMemory    = gomem.SwapMemoryWithContext
	hostInfo      = gohost.InfoWithContext
	hostUptime    = gohost.UptimeWithContext
	listProcesses = snapshotProcesses
	killProcess   = terminateProcess
	readBattery   = sysfsBattery
)

const (
	cpuSampleWindow = 300 * time.Millisecond
	topN            = 5
)

type processSample struct {
	PID     int32
	Name    string
	CPU     float64
	RSSMB   float64
	IOBytes uint64
}

func snapshotProcesses(ctx context.Context) ([]processSample, error) {
	procs, err := goprocess.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	out := make([]processSample, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		s := processSample{PID: p.Pid, Name: name}
		if v, err := p.CPUPercentWithContext(ctx); err == nil {
			s.CPU = v
		}
		if m, err := p.MemoryInfoWithContext(ctx); err == nil && m != nil {
			s.RSSMB = float64(m.RSS) / (1 << 20)
		}
		if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
			s.IOBytes = io.ReadBytes + io.WriteBytes
		}
		out = append(out, s)
	}
	return out, nil
}

func terminateProcess(ctx context.Context, pid int32) error {
	p, err := goprocess.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return p.TerminateWithContext(ctx)
}

type batteryState struct {
	Available bool
	Percent   float64
	Plugged   bool
}

// sysfsBattery reads the first battery under /sys/class/power_supply.
func sysfsBattery(_ context.Context) (batteryState, error) {
	supplies, _ := filepath.Glob("/sys/class/power_supply/*")
	for _, dir := range supplies {
		kind, err := os.ReadFile(filepath.Join(dir, "type"))
		if err != nil || strings.TrimSpace(string(kind)) != "Battery" {
			continue
		}
		capRaw, err := os.ReadFile(filepath.Join(dir, "capacity"))
		if err != nil {
			continue
		}
		percent, err := strconv.ParseFloat(strings.TrimSpace(string(capRaw)), 64)
		if err != nil {
			continue
		}
		status, _ := os.ReadFile(filepath.Join(dir, "status"))
		return batteryState{
			Available: true,
			Percent:   percent,
			Plugged:   strings.TrimSpace(string(status)) != "Discharging",
		}, nil
	}
	return batteryState{}, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func systemInfo(ctx context.Context, _ *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	switch mode {
	case "battery":
		b, err := readBattery(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"available": b.Available, "percent": b.Percent, "plugged": b.Plugged}, nil
	case "uptime":
		secs, err := hostUptime(ctx)
		if err != nil {
			return nil, fmt.Errorf("uptime: %w", err)
		}
		d := time.Duration(secs) * time.Second
		return map[string]any{"uptime_seconds": secs, "message": "Uptime: " + d.String()}, nil
	case "about", "windows_version":
		info, err := hostInfo(ctx)
		if err != nil {
			return nil, fmt.Errorf("host info: %w", err)
		}
		msg := fmt.Sprintf("%s %s (kernel %s) on %s", info.Platform, info.PlatformVersion, info.KernelVersion, info.Hostname)
		return map[string]any{
			"hostname": info.Hostname,
			"os":       info.OS,
			"platform": info.Platform,
			"version":  info.PlatformVersion,
			"kernel":   info.KernelVersion,
			"message":  strings.TrimSpace(msg),
		}, nil
	}
	return nil, unsupported("system_info", mode)
}

func performanceTools(ctx context.Context, _ *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	switch mode {
	case "total_cpu_percent":
		vals, err := cpuPercent(ctx, cpuSampleWindow, false)
		if err != nil {
			return nil, fmt.Errorf("cpu percent: %w", err)
		}
		if len(vals) == 0 {
			return nil, fmt.Errorf("cpu percent: no samples")
		}
		return map[string]any{"percent": round1(vals[0])}, nil
	case "total_ram_percent", "available_ram":
		vm, err := virtualMemory(ctx)
		if err != nil {
			return nil, fmt.Errorf("memory: %w", err)
		}
		return map[string]any{
			"percent":      round1(vm.UsedPercent),
			"available_mb": vm.Available >> 20,
			"total_mb":     vm.Total >> 20,
		}, nil
	case "pagefile_used":
		sw, err := swapMemory(ctx)
		if err != nil {
			return nil, fmt.Errorf("swap: %w", err)
		}
		return map[string]any{"percent": round1(sw.UsedPercent), "used_mb": sw.Used >> 20, "total_mb": sw.Total >> 20}, nil
	case "cpu_clock":
		infos, err := cpuInfo(ctx)
		if err != nil {
			return nil, fmt.Errorf("cpu info: %w", err)
		}
		if len(infos) == 0 {
			return nil, fmt.Errorf("cpu info: no processors reported")
		}
		return map[string]any{"mhz": infos[0].Mhz, "model": infos[0].ModelName}, nil
	case "top_cpu", "top_ram", "top_disk":
		return topProcesses(ctx, mode)
	}
	return nil, unsupported("performance_tools", mode)
}

func processTools(ctx context.Context, _ *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	switch mode {
	case "top_cpu", "top_ram":
		return topProcesses(ctx, mode)
	}
	return nil, unsupported("process_tools", mode)
}

func topProcesses(ctx context.Context, mode string) (map[string]any, error) {
	procs, err := listProcesses(ctx)
	if err != nil {
		return nil, err
	}
	key := map[string]func(processSample) float64{
		"top_cpu":  func(p processSample) float64 { return p.CPU },
		"top_ram":  func(p processSample) float64 { return p.RSSMB },
		"top_disk": func(p processSample) float64 { return float64(p.IOBytes) },
	}[mode]
	sort.SliceStable(procs, func(i, j int) bool { return key(procs[i]) > key(procs[j]) })
	if len(procs) > topN {
		procs = procs[:topN]
	}
	items := make([]map[string]any, 0, len(procs))
	for _, p := range procs {
		item := map[string]any{"name": p.Name, "pid": p.PID}
		switch mode {
		case "top_cpu":
			item["cpu"] = round1(p.CPU)
		case "top_ram":
			item["ram_mb"] = round1(p.RSSMB)
		case "top_disk":
			item["io_mb"] = round1(float64(p.IOBytes) / (1 << 20))
		}
		items = append(items, item)
	}
	return map[string]any{"items": items}, nil
}

func closeApp(ctx context.Context, _ *Executor, params map[string]any) (map[string]any, error) {
	target := strings.TrimSuffix(strings.ToLower(str(params, "process_name")), ".exe")
	if target == "" {
		return nil, fmt.Errorf("no process name given")
	}
	procs, err := listProcesses(ctx)
	if err != nil {
		return nil, err
	}
	killed := 0
	var lastErr error
	for _, p := range procs {
		if strings.TrimSuffix(strings.ToLower(p.Name), ".exe") != target {
			continue
		}
		if err := killProcess(ctx, p.PID); err != nil {
			lastErr = err
			continue
		}
		killed++
	}
	if killed == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("close %s: %w", target, lastErr)
		}
		return nil, fmt.Errorf("no running process named %s", target)
	}
	return map[string]any{"name": target, "killed": killed}, nil
}
