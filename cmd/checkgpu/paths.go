package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/benaskins/checkgpu/internal/report"
)

// defaultLogPath returns GPU.log in the directory of the running binary.
func defaultLogPath() (string, error) {
	binary, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("finding binary path: %w", err)
	}

	// Resolve symlinks to get the real path
	binary, err = filepath.EvalSymlinks(binary)
	if err != nil {
		return "", fmt.Errorf("resolving binary path: %w", err)
	}
	return filepath.Join(filepath.Dir(binary), report.LogName), nil
}
