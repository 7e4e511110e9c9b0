package gpu

import (
	"fmt"
	"strings"

	"github.com/benaskins/checkgpu/internal/ioreg"
)

var connectorTypes = map[string]string{
	"<00080000>": "HDMI",
	"<00040000>": "DisplayPort",
	"<04000000>": "DVI",
	"<02000000>": "LVDS",
	"<01000000>": "Dummy Port",
}

// ConnectorLabel names a connector-type code such as "<00080000>".
func ConnectorLabel(code string) string {
	if label, ok := connectorTypes[code]; ok {
		return label
	}
	return fmt.Sprintf("Unknown Connector (%s)", code)
}

// ConnectedToDisplay annotates a framebuffer with an attached display.
const ConnectedToDisplay = "Connected to Display"

const (
	framebufferPrefix  = " - "
	connectorPrefix    = " --> connector-type: "
	displayShortPrefix = " --> "
	displayLongPrefix  = " ----> "
)

var (
	framebufferMarkers = []string{" AppleIntelFramebuffer@", " NVDA,Display-", "class AtiFbStub"}
	displayMarkers     = []string{"<class AppleDisplay,", "<class AppleBacklightDisplay,", "<class IODisplayConnect,"}
)

// unknownPCIDebug is the placeholder ioreg prints for an unassigned slot.
const unknownPCIDebug = "??:??.?"

// PCIDebugToken returns the device's pcidebug value used to tell sibling
// PCI devices apart in the dump.
func PCIDebugToken(props map[string]string) string {
	return strings.ReplaceAll(props["pcidebug"], unknownPCIDebug, "")
}

// ScanConnectors walks the dump below the device's own line and lists its
// framebuffers, their connector types and attached displays.
//
// A pcidebug line that does not carry the device's token disarms the scan
// without stopping it; the device line re-arms it. A node line at or above
// the device's depth ends the scan. A device whose line never appears
// yields nothing.
func ScanConnectors(tree *ioreg.Tree, dev ioreg.Device) []string {
	if tree == nil || dev.Line == "" {
		return nil
	}
	token := PCIDebugToken(dev.Props)

	var out []string
	armed := false
	depth := 0
	for _, l := range tree.Lines {
		text := l.Text
		if strings.Contains(text, dev.Line) {
			armed = true
			depth = l.Offset
			continue
		}
		if !armed {
			continue
		}
		if strings.Contains(text, "pcidebug") && !strings.Contains(text, token) {
			armed = false
			continue
		}
		if l.IsNode() && l.Offset <= depth {
			break
		}

		if containsAny(text, framebufferMarkers) {
			out = append(out, framebufferPrefix+framebufferLabel(text))
		}
		if strings.Contains(text, `"connector-type"`) && len(out) > 0 {
			code := text
			if i := strings.LastIndex(text, " = "); i >= 0 {
				code = text[i+len(" = "):]
			}
			out = append(out, connectorPrefix+ConnectorLabel(code))
		}
		if containsAny(text, displayMarkers) && len(out) > 0 {
			last := out[len(out)-1]
			if !strings.HasSuffix(last, ConnectedToDisplay) {
				prefix := displayLongPrefix
				if strings.HasPrefix(last, connectorPrefix) {
					prefix = displayShortPrefix
				}
				out = append(out, prefix+ConnectedToDisplay)
			}
		}
	}
	return out
}

func framebufferLabel(text string) string {
	_, rest, ok := strings.Cut(text, ioreg.Branch)
	if !ok {
		return strings.TrimSpace(text)
	}
	label, _, _ := strings.Cut(rest, "  <class")
	return label
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
