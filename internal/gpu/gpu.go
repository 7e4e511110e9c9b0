// Package gpu inspects display-class PCI devices found in the I/O
// Registry: their identifying properties and the framebuffers, connector
// types and displays attached below them.
package gpu

import (
	"sort"
	"strings"

	"github.com/benaskins/checkgpu/internal/ioreg"
	"github.com/samber/lo"
)

// DisplayClassSuffix ends the class-code of every PCI display controller.
const DisplayClassSuffix = "0300>"

// unresolvedPath sorts devices without a device path.
const unresolvedPath = "?"

// Info holds what the report shows for one GPU.
type Info struct {
	Name       string     `json:"name"`
	Path       string     `json:"device_path,omitempty"`
	Properties []Property `json:"properties"`
	Connectors []string   `json:"connectors"`
}

// Displays keeps the display controllers, ordered by device path.
func Displays(devs []ioreg.Device) []ioreg.Device {
	gpus := lo.Filter(devs, func(d ioreg.Device, _ int) bool {
		return strings.HasSuffix(d.Props["class-code"], DisplayClassSuffix)
	})
	sort.SliceStable(gpus, func(i, j int) bool {
		return sortPath(gpus[i]) < sortPath(gpus[j])
	})
	return gpus
}

func sortPath(d ioreg.Device) string {
	if d.Path == "" {
		return unresolvedPath
	}
	return d.Path
}

// Inspect decodes a GPU's properties and scans the dump for its connectors.
func Inspect(tree *ioreg.Tree, dev ioreg.Device) Info {
	return Info{
		Name:       dev.Name,
		Path:       dev.Path,
		Properties: Properties(dev.Props),
		Connectors: ScanConnectors(tree, dev),
	}
}
