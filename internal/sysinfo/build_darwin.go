//go:build darwin

package sysinfo

import (
	"log/slog"

	"golang.org/x/sys/unix"
)

// buildVersion reads the OS build number (e.g. "23C71") via sysctl.
func buildVersion() string {
	build, err := unix.Sysctl("kern.osversion")
	if err != nil {
		slog.Warn("sysctl kern.osversion", "error", err)
		return ""
	}
	return build
}
