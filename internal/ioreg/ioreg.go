// Package ioreg reads the I/O Registry as printed by `ioreg -l -w0`.
//
// The dump is an indented tree. Every node line carries a "+-o " branch
// marker whose column gives the node's depth; property lines between the
// node's braces belong to the node printed above them. The dump is parsed
// once into ordered lines (with the marker column precomputed) and a node
// tree with parent links.
package ioreg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/benaskins/checkgpu/internal/runner"
)

// Branch is the marker that introduces a node line.
const Branch = "+-o "

// DefaultPlane is the registry plane GPU devices are read from.
const DefaultPlane = "IOService"

// Line is one line of the dump.
type Line struct {
	Text string
	// Offset is the column of the branch marker, or -1 for lines that
	// don't introduce a node.
	Offset int
	// Node is the node this line introduces or whose properties it lists.
	Node *Node
}

// IsNode reports whether the line introduces a node.
func (l Line) IsNode() bool {
	return l.Offset >= 0
}

// Node is a registry entry.
type Node struct {
	Name     string // "IGPU"
	Address  string // "2" in "IGPU@2"
	Class    string // "IOPCIDevice"
	Line     string // the full dump line that introduced the node
	Offset   int
	Parent   *Node
	Children []*Node
	Props    map[string]string // raw, registry formatted values
}

// Label returns the name as printed in the dump, including the address.
func (n *Node) Label() string {
	if n.Address == "" {
		return n.Name
	}
	return n.Name + "@" + n.Address
}

// Tree is a parsed registry dump.
type Tree struct {
	Lines []Line
	Nodes []*Node
	Roots []*Node
}

// Fetch runs ioreg for the given plane and parses the output. A failed
// command yields an empty tree.
func Fetch(ctx context.Context, r runner.Runner, plane string) *Tree {
	if plane == "" {
		plane = DefaultPlane
	}
	return Parse(runner.Output(ctx, r, "ioreg", "-l", "-w0", "-p", plane))
}

// Parse builds a tree from ioreg text output.
func Parse(text string) *Tree {
	t := &Tree{}
	if text == "" {
		return t
	}

	var stack []*Node
	var current *Node
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		line := Line{Text: raw, Offset: strings.Index(raw, Branch)}

		if line.IsNode() {
			n := parseNode(raw, line.Offset)
			for len(stack) > 0 && stack[len(stack)-1].Offset >= n.Offset {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				n.Parent = stack[len(stack)-1]
				n.Parent.Children = append(n.Parent.Children, n)
			} else {
				t.Roots = append(t.Roots, n)
			}
			stack = append(stack, n)
			t.Nodes = append(t.Nodes, n)
			current = n
		} else if current != nil {
			if key, val, ok := parseProperty(raw); ok {
				current.Props[key] = val
			}
		}

		line.Node = current
		t.Lines = append(t.Lines, line)
	}
	return t
}

func parseNode(raw string, offset int) *Node {
	rest := raw[offset+len(Branch):]
	label, _, _ := strings.Cut(rest, "  <class")
	name, addr, _ := strings.Cut(label, "@")

	n := &Node{
		Name:    name,
		Address: addr,
		Line:    raw,
		Offset:  offset,
		Props:   make(map[string]string),
	}
	if _, cls, ok := strings.Cut(rest, "<class "); ok {
		if i := strings.IndexAny(cls, ",>"); i >= 0 {
			cls = cls[:i]
		}
		n.Class = cls
	}
	return n
}

// parseProperty splits a `| |   "key" = value` line.
func parseProperty(raw string) (string, string, bool) {
	s := strings.TrimLeft(raw, " |")
	if !strings.HasPrefix(s, `"`) {
		return "", "", false
	}
	key, val, ok := strings.Cut(s[1:], `" = `)
	if !ok {
		return "", "", false
	}
	return key, val, true
}

// Device is a registry node with properties.
type Device struct {
	Name  string
	Path  string // empty when unresolved
	Line  string
	Props map[string]string
}

// Devices returns every node that carries properties, in dump order.
func (t *Tree) Devices() []Device {
	var devs []Device
	for _, n := range t.Nodes {
		if len(n.Props) == 0 {
			continue
		}
		devs = append(devs, Device{
			Name:  n.Name,
			Path:  n.DevicePath(),
			Line:  n.Line,
			Props: n.Props,
		})
	}
	return devs
}

const (
	pciDeviceClass = "IOPCIDevice"
	pciRootClass   = "AppleACPIPCI"
)

// DevicePath renders the node's PCI location as
// "PciRoot(0x0)/Pci(0x1,0x0)/Pci(0x0,0x0)". It returns "" when the node
// is not a PCI device or its chain does not reach a PCI root bridge.
func (n *Node) DevicePath() string {
	if n.Class != pciDeviceClass {
		return ""
	}

	var segs []string
	for cur := n; cur != nil; cur = cur.Parent {
		switch cur.Class {
		case pciDeviceClass:
			dev, fn, ok := pciAddress(cur.Address)
			if !ok {
				return ""
			}
			segs = append(segs, fmt.Sprintf("Pci(0x%x,0x%x)", dev, fn))
		case pciRootClass:
			parts := []string{fmt.Sprintf("PciRoot(0x%x)", rootUID(cur))}
			for i := len(segs) - 1; i >= 0; i-- {
				parts = append(parts, segs[i])
			}
			return strings.Join(parts, "/")
		}
	}
	return ""
}

// pciAddress parses "1c,4" or "2" as device and function numbers.
func pciAddress(addr string) (uint64, uint64, bool) {
	if addr == "" {
		return 0, 0, false
	}
	d, f, hasFn := strings.Cut(addr, ",")
	dev, err := strconv.ParseUint(d, 16, 8)
	if err != nil {
		return 0, 0, false
	}
	if !hasFn {
		return dev, 0, true
	}
	fn, err := strconv.ParseUint(f, 16, 8)
	if err != nil {
		return 0, 0, false
	}
	return dev, fn, true
}

// rootUID reads _UID from the root bridge or the ACPI node above it.
func rootUID(root *Node) uint64 {
	for _, n := range []*Node{root, root.Parent} {
		if n == nil {
			continue
		}
		raw, ok := n.Props["_UID"]
		if !ok {
			continue
		}
		if uid, err := strconv.ParseUint(strings.Trim(raw, `"`), 0, 64); err == nil {
			return uid
		}
	}
	return 0
}
