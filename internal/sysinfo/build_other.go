//go:build !darwin

package sysinfo

// buildVersion returns an empty build on non-darwin platforms.
func buildVersion() string {
	return ""
}
