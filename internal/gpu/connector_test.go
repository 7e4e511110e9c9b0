package gpu

import (
	"testing"

	"github.com/benaskins/checkgpu/internal/ioreg"
	"github.com/google/go-cmp/cmp"
)

func TestConnectorLabel(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"<00080000>": "HDMI",
		"<00040000>": "DisplayPort",
		"<04000000>": "DVI",
		"<02000000>": "LVDS",
		"<01000000>": "Dummy Port",
		"<FFFFFFFF>": "Unknown Connector (<FFFFFFFF>)",
	}
	for code, want := range tests {
		if got := ConnectorLabel(code); got != want {
			t.Errorf("ConnectorLabel(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestPCIDebugToken(t *testing.T) {
	t.Parallel()
	if got := PCIDebugToken(map[string]string{"pcidebug": `"0:2:0"`}); got != `"0:2:0"` {
		t.Errorf("token = %q", got)
	}
	if got := PCIDebugToken(map[string]string{"pcidebug": `"0:2:0(??:??.?)"`}); got != `"0:2:0()"` {
		t.Errorf("token = %q", got)
	}
	if got := PCIDebugToken(nil); got != "" {
		t.Errorf("token = %q", got)
	}
}

// device parses a dump and returns it with the named device.
func device(t *testing.T, dump, name string) (*ioreg.Tree, ioreg.Device) {
	t.Helper()
	tree := ioreg.Parse(dump)
	for _, d := range tree.Devices() {
		if d.Name == name {
			return tree, d
		}
	}
	t.Fatalf("device %q not found", name)
	return nil, ioreg.Device{}
}

func TestScanFramebufferWithDisplayNoConnector(t *testing.T) {
	t.Parallel()
	dump := `+-o AppleACPIPCI  <class AppleACPIPCI, id 0x1>
  +-o IGPU@2  <class IOPCIDevice, id 0x2>
  | | {
  | |   "class-code" = <00000300>
  | |   "pcidebug" = "0:2:0"
  | | }
  | +-o AppleIntelFramebuffer@0  <class AppleIntelFramebuffer, id 0x3>
  |   +-o AppleBacklightDisplay  <class AppleBacklightDisplay, id 0x4>
  +-o PEG0@1  <class IOPCIDevice, id 0x5>
`
	tree, dev := device(t, dump, "IGPU")
	got := ScanConnectors(tree, dev)
	want := []string{
		" - AppleIntelFramebuffer@0",
		" ----> Connected to Display",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScanConnectors mismatch (-want +got):\n%s", diff)
	}
}

func TestScanConnectorThenDisplay(t *testing.T) {
	t.Parallel()
	dump := `+-o AppleACPIPCI  <class AppleACPIPCI, id 0x1>
  +-o IGPU@2  <class IOPCIDevice, id 0x2>
  | | {
  | |   "class-code" = <00000300>
  | |   "pcidebug" = "0:2:0"
  | | }
  | +-o AppleIntelFramebuffer@0  <class AppleIntelFramebuffer, id 0x3>
  | | | {
  | | |   "connector-type" = <00080000>
  | | | }
  | | +-o display0  <class IODisplayConnect, id 0x4>
  | |   +-o AppleDisplay  <class AppleDisplay, id 0x5>
  | +-o AppleIntelFramebuffer@1  <class AppleIntelFramebuffer, id 0x6>
  |     {
  |       "connector-type" = <FFFFFFFF>
  |     }
  +-o PEG0@1  <class IOPCIDevice, id 0x7>
`
	tree, dev := device(t, dump, "IGPU")
	got := ScanConnectors(tree, dev)
	want := []string{
		" - AppleIntelFramebuffer@0",
		" --> connector-type: HDMI",
		" --> Connected to Display",
		" - AppleIntelFramebuffer@1",
		" --> connector-type: Unknown Connector (<FFFFFFFF>)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScanConnectors mismatch (-want +got):\n%s", diff)
	}
}

func TestScanDeviceLineMissing(t *testing.T) {
	t.Parallel()
	_, dev := device(t, `+-o GFX0@0  <class IOPCIDevice, id 0x9>
    {
      "class-code" = <00000300>
    }
`, "GFX0")

	other := ioreg.Parse(`+-o IGPU@2  <class IOPCIDevice, id 0x2>
  +-o AppleIntelFramebuffer@0  <class AppleIntelFramebuffer, id 0x3>
`)
	if got := ScanConnectors(other, dev); len(got) != 0 {
		t.Errorf("expected no connectors, got %v", got)
	}
	if got := ScanConnectors(ioreg.Parse(""), dev); len(got) != 0 {
		t.Errorf("expected no connectors for empty dump, got %v", got)
	}
	if got := ScanConnectors(nil, dev); len(got) != 0 {
		t.Errorf("expected no connectors for nil tree, got %v", got)
	}
}

func TestScanIgnoresConnectorBeforeFramebuffer(t *testing.T) {
	t.Parallel()
	dump := `+-o GFX0@0  <class IOPCIDevice, id 0x1>
  | {
  |   "connector-type" = <00080000>
  | }
  +-o display0  <class IODisplayConnect, id 0x2>
`
	tree, dev := device(t, dump, "GFX0")
	if got := ScanConnectors(tree, dev); len(got) != 0 {
		t.Errorf("expected nothing without a framebuffer, got %v", got)
	}
}

func TestScanPCIDebugMismatchDisarms(t *testing.T) {
	t.Parallel()
	// The bridge's child carries another device's pcidebug; everything after
	// it is ignored until the device line shows up again.
	dump := `+-o GFX0@0  <class IOPCIDevice, id 0x1>
  | {
  |   "class-code" = <00000300>
  |   "pcidebug" = "1:0:0"
  | }
  +-o ATY,Orinoco@0  <class AtiFbStub, id 0x2>
  +-o HDAU@0,1  <class IOPCIDevice, id 0x3>
  | {
  |   "pcidebug" = "1:0:1"
  | }
  +-o ATY,Orinoco@1  <class AtiFbStub, id 0x4>
`
	tree, dev := device(t, dump, "GFX0")
	got := ScanConnectors(tree, dev)
	want := []string{" - ATY,Orinoco@0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScanConnectors mismatch (-want +got):\n%s", diff)
	}
}

func TestScanRearmsOnRepeatedDeviceLine(t *testing.T) {
	t.Parallel()
	line := "+-o GFX0@0  <class IOPCIDevice, id 0x1>"
	dump := line + `
  | {
  |   "pcidebug" = "1:0:0"
  | }
  +-o HDAU@0,1  <class IOPCIDevice, id 0x3>
  | {
  |   "pcidebug" = "1:0:1"
  | }
  +-o ATY,Orinoco@0  <class AtiFbStub, id 0x2>
` + line + `
  +-o ATY,Orinoco@1  <class AtiFbStub, id 0x4>
`
	tree, dev := device(t, dump, "GFX0")
	got := ScanConnectors(tree, dev)
	want := []string{" - ATY,Orinoco@1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScanConnectors mismatch (-want +got):\n%s", diff)
	}
}

func TestScanNvidiaDisplays(t *testing.T) {
	t.Parallel()
	dump := `+-o GFX0@0  <class IOPCIDevice, id 0x1>
  | {
  |   "class-code" = <00000300>
  | }
  +-o NVDA,Display-A@0  <class IONDRVDevice, id 0x2>
  | | {
  | |   "connector-type" = <00040000>
  | | }
  | +-o NVDA  <class NVDA, id 0x3>
  |   +-o display0  <class IODisplayConnect, id 0x4>
  |     +-o AppleDisplay  <class AppleDisplay, id 0x5>
  +-o NVDA,Display-B@1  <class IONDRVDevice, id 0x6>
+-o PNLF  <class AppleACPIPlatformDevice, id 0x7>
  +-o NVDA,Display-C@2  <class IONDRVDevice, id 0x8>
`
	tree, dev := device(t, dump, "GFX0")
	got := ScanConnectors(tree, dev)
	want := []string{
		" - NVDA,Display-A@0",
		" --> connector-type: DisplayPort",
		" --> Connected to Display",
		" - NVDA,Display-B@1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ScanConnectors mismatch (-want +got):\n%s", diff)
	}
}
