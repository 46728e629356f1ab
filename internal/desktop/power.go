package desktop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	gonet "github.com/shirou/gopsutil/v4/net"

	"mudabbir/internal/httpx"
)

var netInterfaces = gonet.InterfacesWithContext

var externalIPURL = "https://api.ipify.org"

var powerCommands = map[string][]string{
	"shutdown":            {"systemctl", "poweroff"},
	"restart":             {"systemctl", "reboot"},
	"sleep":               {"systemctl", "suspend"},
	"hibernate":           {"systemctl", "hibernate"},
	"lock":                {"loginctl", "lock-session"},
	"logoff":              {"loginctl", "terminate-user", ""},
	"screen_off":          {"xset", "dpms", "force", "off"},
	"reboot_bios":         {"systemctl", "reboot", "--firmware-setup"},
	"power_plan_saver":    {"powerprofilesctl", "set", "power-saver"},
	"power_plan_balanced": {"powerprofilesctl", "set", "balanced"},
	"power_plan_high":     {"powerprofilesctl", "set", "performance"},
}

func systemPower(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if mode == "rename_pc" {
		name := str(params, "name")
		if name == "" {
			return nil, fmt.Errorf("no computer name given")
		}
		if _, err := e.run(ctx, "hostnamectl", "set-hostname", name); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "hostname": name}, nil
	}
	cmd, ok := powerCommands[mode]
	if !ok {
		return nil, unsupported("system_power", mode)
	}
	args := append([]string(nil), cmd[1:]...)
	if mode == "logoff" {
		args[len(args)-1] = os.Getenv("USER")
	}
	if _, err := e.run(ctx, cmd[0], args...); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}

var unitNameRe = regexp.MustCompile(`^[A-Za-z0-9@._:\-]+$`)

func serviceTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	switch mode {
	case "start", "stop", "restart":
	default:
		return nil, unsupported("service_tools", mode)
	}
	name := str(params, "name")
	if name == "" {
		return nil, fmt.Errorf("no service name given")
	}
	if !unitNameRe.MatchString(name) {
		return nil, fmt.Errorf("invalid service name %q", name)
	}
	if _, err := e.run(ctx, "systemctl", mode, name); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode, "name": name}, nil
}

var nmcliModes = map[string][]string{
	"wifi_on":                    {"radio", "wifi", "on"},
	"wifi_off":                   {"radio", "wifi", "off"},
	"hotspot_off":                {"connection", "down", "Hotspot"},
	"disconnect_current_network": {"networking", "off"},
}

func networkTools(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if args, ok := nmcliModes[mode]; ok {
		if _, err := e.run(ctx, "nmcli", args...); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode}, nil
	}
	switch mode {
	case "hotspot_on":
		if _, err := e.run(ctx, "nmcli", "device", "wifi", "hotspot"); err != nil {
			return nil, err
		}
	case "connect_wifi":
		ssid := str(params, "host")
		if ssid == "" {
			return nil, fmt.Errorf("no network name given")
		}
		if _, err := e.run(ctx, "nmcli", "device", "wifi", "connect", ssid); err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "ssid": ssid}, nil
	case "flush_dns":
		if _, err := e.run(ctx, "resolvectl", "flush-caches"); err != nil {
			return nil, err
		}
		httpx.Resolver().Refresh(true)
	case "renew_ip":
		if _, err := e.run(ctx, "nmcli", "networking", "off"); err != nil {
			return nil, err
		}
		if _, err := e.run(ctx, "nmcli", "networking", "on"); err != nil {
			return nil, err
		}
	case "ping":
		host := str(params, "host")
		if host == "" {
			host = "8.8.8.8"
		}
		out, err := e.run(ctx, "ping", "-c", "4", host)
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "host": host, "output": out}, nil
	case "ip_internal":
		ip, err := internalIP(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "ip": ip, "message": "Internal IP: " + ip}, nil
	case "ip_external":
		ip, err := externalIP(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"mode": mode, "ip": ip, "message": "External IP: " + ip}, nil
	default:
		return nil, unsupported("network_tools", mode)
	}
	return map[string]any{"mode": mode}, nil
}

func internalIP(ctx context.Context) (string, error) {
	ifaces, err := netInterfaces(ctx)
	if err != nil {
		return "", fmt.Errorf("interfaces: %w", err)
	}
	for _, iface := range ifaces {
		if hasFlag(iface.Flags, "loopback") || !hasFlag(iface.Flags, "up") {
			continue
		}
		for _, a := range iface.Addrs {
			ip := strings.SplitN(a.Addr, "/", 2)[0]
			if strings.Contains(ip, ".") {
				return ip, nil
			}
		}
	}
	return "", fmt.Errorf("no active IPv4 interface")
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func externalIP(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, externalIPURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpx.NewClient(0).Do(req)
	if err != nil {
		return "", fmt.Errorf("external ip: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("external ip: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", fmt.Errorf("external ip: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func bluetoothControl(ctx context.Context, e *Executor, params map[string]any) (map[string]any, error) {
	mode := str(params, "mode")
	if mode != "on" && mode != "off" {
		return nil, unsupported("bluetooth_control", mode)
	}
	if _, err := e.run(ctx, "bluetoothctl", "power", mode); err != nil {
		return nil, err
	}
	return map[string]any{"mode": mode}, nil
}
