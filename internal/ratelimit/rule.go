package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseRule parses a rule spec of the form "max/window", e.g. "5/1m" or
// "100/24h". The window uses Go duration syntax and must be at least one
// second since window arithmetic works in whole seconds.
func ParseRule(spec string) (Rule, error) {
	maxPart, windowPart, ok := strings.Cut(spec, "/")
	if !ok {
		return Rule{}, fmt.Errorf("invalid rule %q: want max/window", spec)
	}

	max, err := strconv.ParseUint(strings.TrimSpace(maxPart), 10, 64)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid rule %q: bad max: %w", spec, err)
	}

	window, err := time.ParseDuration(strings.TrimSpace(windowPart))
	if err != nil {
		return Rule{}, fmt.Errorf("invalid rule %q: bad window: %w", spec, err)
	}

	if window < time.Second {
		return Rule{}, fmt.Errorf("invalid rule %q: window below one second", spec)
	}

	return Rule{Window: window, Max: max}, nil
}
