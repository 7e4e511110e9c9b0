// Package report gathers kext, OS, boot-args and GPU details and renders
// them as the plain-text GPU report.
package report

import (
	"context"
	"log/slog"

	"github.com/benaskins/checkgpu/internal/gpu"
	"github.com/benaskins/checkgpu/internal/ioreg"
	"github.com/benaskins/checkgpu/internal/kext"
	"github.com/benaskins/checkgpu/internal/runner"
	"github.com/benaskins/checkgpu/internal/sysinfo"
)

// LogName is the report file written next to the executable.
const LogName = "GPU.log"

// Kext is the load state of one kernel extension.
type Kext struct {
	Name    string `json:"name"`
	Loaded  bool   `json:"loaded"`
	Version string `json:"version,omitempty"`
}

// Kexts are the extensions the report checks. AppleALC and WhateverGreen
// are Lilu plugins.
type Kexts struct {
	Lilu          Kext `json:"lilu"`
	AppleALC      Kext `json:"applealc"`
	WhateverGreen Kext `json:"whatevergreen"`
}

// Result is everything a run gathered.
type Result struct {
	Kexts     Kexts      `json:"kexts"`
	OSVersion string     `json:"os_version,omitempty"`
	BootArgs  string     `json:"boot_args,omitempty"`
	GPUs      []gpu.Info `json:"gpus"`
}

// Builder gathers report data through a command runner.
type Builder struct {
	Runner runner.Runner
	Plane  string // registry plane, ioreg.DefaultPlane when empty
	Logger *slog.Logger
}

// Gather runs every query in order. Missing data is left empty; it never
// fails.
func (b *Builder) Gather(ctx context.Context) Result {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var res Result

	listing := kext.Fetch(ctx, b.Runner)
	res.Kexts = Kexts{
		Lilu:          locate(listing, "Lilu"),
		AppleALC:      locate(listing, "AppleALC"),
		WhateverGreen: locate(listing, "WhateverGreen"),
	}

	res.OSVersion = sysinfo.OSVersion(ctx, b.Runner)
	res.BootArgs, _ = sysinfo.BootArgs(ctx, b.Runner)

	tree := ioreg.Fetch(ctx, b.Runner, b.Plane)
	devs := tree.Devices()
	gpus := gpu.Displays(devs)
	logger.Debug("registry scanned", "nodes", len(tree.Nodes), "devices", len(devs), "gpus", len(gpus))

	res.GPUs = make([]gpu.Info, 0, len(gpus))
	for _, dev := range gpus {
		res.GPUs = append(res.GPUs, gpu.Inspect(tree, dev))
	}
	return res
}

func locate(l kext.Listing, name string) Kext {
	v, ok := l.Locate(name)
	return Kext{Name: name, Loaded: ok, Version: v}
}
