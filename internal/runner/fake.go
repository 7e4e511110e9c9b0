package runner

import (
	"context"
	"fmt"
	"strings"
)

// Fake returns canned output keyed by the full command line
// ("sw_vers -productName"). Unknown commands fail.
type Fake struct {
	Outputs map[string]string
	Calls   []string
}

func (f *Fake) Run(_ context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, key)
	out, ok := f.Outputs[key]
	if !ok {
		return "", fmt.Errorf("%s: command not found", key)
	}
	return out, nil
}
