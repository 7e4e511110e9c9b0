package gpu

import (
	"encoding/hex"
	"slices"
	"sort"
	"strings"
)

// Kind classifies a raw registry value.
type Kind int

const (
	KindPlain  Kind = iota // printed as-is
	KindHex                // <0300923e>
	KindString             // <"onboard-1"> or "0:2:0"
)

// Value is a raw registry property value, classified once when parsed.
type Value struct {
	Kind    Kind
	Raw     string
	Payload string // text inside the wrapping for hex and string kinds
}

// ParseValue classifies a raw value as printed by ioreg.
func ParseValue(raw string) Value {
	n := len(raw)
	switch {
	case n >= 4 && strings.HasPrefix(raw, `<"`) && strings.HasSuffix(raw, `">`):
		return Value{Kind: KindString, Raw: raw, Payload: raw[2 : n-2]}
	case n >= 2 && raw[0] == '<' && raw[n-1] == '>':
		return Value{Kind: KindHex, Raw: raw, Payload: raw[1 : n-1]}
	case n >= 2 && raw[0] == '"' && raw[n-1] == '"':
		return Value{Kind: KindString, Raw: raw, Payload: raw[1 : n-1]}
	}
	return Value{Kind: KindPlain, Raw: raw}
}

// decoders turn a value of a given kind into display text. A false
// return leaves the raw value in place.
var decoders = map[Kind]func(Value) (string, bool){
	KindPlain:  decodePlain,
	KindString: decodeString,
	KindHex:    decodeHex,
}

func decodePlain(v Value) (string, bool) {
	return v.Raw, true
}

func decodeString(v Value) (string, bool) {
	return v.Payload, true
}

func decodeHex(v Value) (string, bool) {
	return reversedHex(v.Payload)
}

// idProperties hold a little-endian 16-bit PCI id in the first two bytes.
var idProperties = map[string]bool{
	"device-id": true,
	"vendor-id": true,
}

// Decode returns the display form of a property value.
func Decode(name string, v Value) string {
	if idProperties[name] {
		if v.Kind != KindHex || len(v.Payload) < 4 {
			return v.Raw
		}
		if s, ok := reversedHex(v.Payload[:4]); ok {
			return s
		}
		return v.Raw
	}
	if s, ok := decoders[v.Kind](v); ok {
		return s
	}
	return v.Raw
}

// reversedHex decodes a hex string, reverses its bytes and renders them
// as "0x" plus uppercase hex.
func reversedHex(s string) (string, bool) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", false
	}
	slices.Reverse(b)
	return "0x" + strings.ToUpper(hex.EncodeToString(b)), true
}

// FramebufferPrefix marks framebuffer patch properties, which are always
// shown.
const FramebufferPrefix = "framebuffer-"

var displayed = map[string]bool{
	"AAPL,ig-platform-id": true,
	"built-in":            true,
	"device-id":           true,
	"vendor-id":           true,
	"hda-gfx":             true,
	"model":               true,
	"NVDAType":            true,
	"NVArch":              true,
	"AAPL,slot-name":      true,
	"acpi-path":           true,
}

// Displayable reports whether a property is part of the report.
func Displayable(name string) bool {
	return displayed[name] || strings.HasPrefix(name, FramebufferPrefix)
}

// Property is a decoded, displayable device property.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Properties decodes the displayable properties, sorted by name.
func Properties(props map[string]string) []Property {
	names := make([]string, 0, len(props))
	for name := range props {
		if Displayable(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]Property, 0, len(names))
	for _, name := range names {
		out = append(out, Property{Name: name, Value: Decode(name, ParseValue(props[name]))})
	}
	return out
}
