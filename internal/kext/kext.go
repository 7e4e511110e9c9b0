// Package kext resolves loaded kernel extension versions from kextstat output.
package kext

import (
	"context"
	"strings"

	"github.com/benaskins/checkgpu/internal/runner"
)

// UnknownVersion is reported for a loaded kext whose version can't be read.
const UnknownVersion = "?.?"

// Listing is a captured kextstat listing. It is fetched once and passed to
// every lookup.
type Listing struct {
	text string
}

// NewListing wraps raw kextstat output.
func NewListing(text string) Listing {
	return Listing{text: text}
}

// Fetch runs kextstat. A failed command yields an empty listing, in which
// no kext is loaded.
func Fetch(ctx context.Context, r runner.Runner) Listing {
	return NewListing(runner.Output(ctx, r, "kextstat"))
}

// Refresh re-runs kextstat, replacing a stale listing.
func (l Listing) Refresh(ctx context.Context, r runner.Runner) Listing {
	return Fetch(ctx, r)
}

// Locate returns the version of the named kext and whether it is loaded.
// The name must be followed by a space in the listing so "Lilu" does not
// match "LiluFriend".
func (l Listing) Locate(name string) (string, bool) {
	if !strings.HasSuffix(name, " ") {
		name += " "
	}
	needle := strings.ToLower(name)

	lines := strings.Split(l.text, "\n")
	if len(lines) > 0 {
		// header row
		lines = lines[1:]
	}
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), needle) {
			continue
		}
		return version(line), true
	}
	return "", false
}

func version(line string) string {
	_, rest, ok := strings.Cut(line, "(")
	if !ok {
		return UnknownVersion
	}
	v, _, _ := strings.Cut(rest, ")")
	if v == "" {
		return UnknownVersion
	}
	return v
}
