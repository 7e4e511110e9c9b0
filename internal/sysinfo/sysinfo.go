// Package sysinfo queries the OS version and NVRAM boot arguments.
package sysinfo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/benaskins/checkgpu/internal/runner"
	"github.com/shirou/gopsutil/v4/host"
)

// Version is the pieces of an OS version string.
type Version struct {
	Product string
	Version string
	Build   string
}

// String joins the non-empty parts, wrapping the build in parentheses:
// "macOS 14.2.1 (23C71)".
func (v Version) String() string {
	parts := make([]string, 0, 3)
	if v.Product != "" {
		parts = append(parts, v.Product)
	}
	if v.Version != "" {
		parts = append(parts, v.Version)
	}
	if v.Build != "" {
		parts = append(parts, fmt.Sprintf("(%s)", v.Build))
	}
	return strings.Join(parts, " ")
}

// Fallback supplies a version when sw_vers yields nothing.
type Fallback func(ctx context.Context) Version

// OSVersion scrapes sw_vers. An empty string means the version is unknown.
func OSVersion(ctx context.Context, r runner.Runner) string {
	return osVersion(ctx, r, platformVersion)
}

func osVersion(ctx context.Context, r runner.Runner, fallback Fallback) string {
	v := Version{
		Product: strings.TrimSpace(runner.Output(ctx, r, "sw_vers", "-productName")),
		Version: strings.TrimSpace(runner.Output(ctx, r, "sw_vers", "-productVersion")),
		Build:   strings.TrimSpace(runner.Output(ctx, r, "sw_vers", "-buildVersion")),
	}
	if v == (Version{}) && fallback != nil {
		slog.Debug("sw_vers returned nothing, using platform fallback")
		v = fallback(ctx)
	}
	return v.String()
}

// platformVersion asks gopsutil for the platform version and the kernel
// for the build number. Only meaningful on macOS.
func platformVersion(ctx context.Context) Version {
	platform, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		slog.Warn("reading platform information", "error", err)
		return Version{}
	}
	if platform != "darwin" || version == "" {
		return Version{}
	}
	return Version{Product: "macOS", Version: version, Build: buildVersion()}
}

// BootArgs returns the boot-args NVRAM variable and whether it is set.
func BootArgs(ctx context.Context, r runner.Runner) (string, bool) {
	return ParseBootArgs(runner.Output(ctx, r, "nvram", "-p"))
}

// ParseBootArgs finds the boot-args line in an `nvram -p` dump. The
// variable name and value are tab separated; any further tabs belong to
// the value.
func ParseBootArgs(dump string) (string, bool) {
	for _, line := range strings.Split(dump, "\n") {
		if !strings.Contains(line, "boot-args") {
			continue
		}
		fields := strings.Split(line, "\t")
		args := strings.Join(fields[1:], "\t")
		return args, args != ""
	}
	return "", false
}
