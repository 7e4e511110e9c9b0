package gpu

import (
	"testing"

	"github.com/benaskins/checkgpu/internal/ioreg"
	"github.com/google/go-cmp/cmp"
)

func TestDisplays(t *testing.T) {
	t.Parallel()
	devs := []ioreg.Device{
		{Name: "GFX1", Path: "PciRoot(0x0)/Pci(0x3,0x0)", Props: map[string]string{"class-code": "<00000300>"}},
		{Name: "HDAU", Path: "PciRoot(0x0)/Pci(0x1,0x1)", Props: map[string]string{"class-code": "<00030400>"}},
		{Name: "DISP", Path: "", Props: map[string]string{"class-code": "<00800300>"}},
		{Name: "IGPU", Path: "PciRoot(0x0)/Pci(0x2,0x0)", Props: map[string]string{"class-code": "<00000300>"}},
		{Name: "PNLF", Props: map[string]string{"model": `"x"`}},
	}

	var names []string
	for _, d := range Displays(devs) {
		names = append(names, d.Name)
	}
	// "?" stands in for an unresolved path and sorts ahead of "PciRoot".
	want := []string{"DISP", "IGPU", "GFX1"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Displays mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplaysNone(t *testing.T) {
	t.Parallel()
	if got := Displays(nil); len(got) != 0 {
		t.Errorf("expected no displays, got %v", got)
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()
	dump := `+-o AppleACPIPCI  <class AppleACPIPCI, id 0x1>
  +-o IGPU@2  <class IOPCIDevice, id 0x2>
  | | {
  | |   "class-code" = <00000300>
  | |   "vendor-id" = <86800000>
  | |   "pcidebug" = "0:2:0"
  | | }
  | +-o AppleIntelFramebuffer@0  <class AppleIntelFramebuffer, id 0x3>
`
	tree := ioreg.Parse(dump)
	gpus := Displays(tree.Devices())
	if len(gpus) != 1 {
		t.Fatalf("expected 1 gpu, got %d", len(gpus))
	}

	info := Inspect(tree, gpus[0])
	want := Info{
		Name:       "IGPU",
		Path:       "PciRoot(0x0)/Pci(0x2,0x0)",
		Properties: []Property{{"vendor-id", "0x8086"}},
		Connectors: []string{" - AppleIntelFramebuffer@0"},
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("Inspect mismatch (-want +got):\n%s", diff)
	}
}
