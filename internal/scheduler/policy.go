package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// Strategy names the placement policy used for every task.
type Strategy string

// StrategyFirstFitNoBacktrack accepts the first feasible (teacher, room, block) found in
// iteration order and never revisits an earlier choice. It is the only supported strategy.
const StrategyFirstFitNoBacktrack Strategy = "first_fit_no_backtrack"

// Window is the ordered set of periods a pass may use.
type Window []int

// Contains reports whether period belongs to the window.
func (w Window) Contains(period int) bool {
	for _, p := range w {
		if p == period {
			return true
		}
	}
	return false
}

// String renders the window in the same form ParseWindows accepts.
func (w Window) String() string {
	parts := make([]string, len(w))
	for i, p := range w {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// DefaultWindows are the daytime pass (period 5 is the midday break) and the evening pass.
func DefaultWindows() []Window {
	return []Window{
		{1, 2, 3, 4, 6, 7, 8},
		{9, 10, 11, 12},
	}
}

// Policy configures a Scheduler.
type Policy struct {
	Windows  []Window
	Strategy Strategy
}

// DefaultPolicy returns the two-pass first-fit policy.
func DefaultPolicy() Policy {
	return Policy{Windows: DefaultWindows(), Strategy: StrategyFirstFitNoBacktrack}
}

// Validate checks that the policy can be executed.
func (p Policy) Validate() error {
	if p.Strategy != StrategyFirstFitNoBacktrack {
		return fmt.Errorf("unsupported placement strategy %q", p.Strategy)
	}
	if len(p.Windows) == 0 {
		return fmt.Errorf("at least one period window is required")
	}
	for i, w := range p.Windows {
		if len(w) == 0 {
			return fmt.Errorf("period window %d is empty", i+1)
		}
		for _, period := range w {
			if period < 1 {
				return fmt.Errorf("period window %d contains invalid period %d", i+1, period)
			}
		}
	}
	return nil
}

// ParseWindows parses "1,2,3;4,5" into ordered windows. Blank input yields DefaultWindows.
func ParseWindows(raw string) ([]Window, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultWindows(), nil
	}
	groups := strings.Split(raw, ";")
	windows := make([]Window, 0, len(groups))
	for i, group := range groups {
		group = strings.TrimSpace(group)
		if group == "" {
			return nil, fmt.Errorf("period window %d is empty", i+1)
		}
		var w Window
		for _, item := range strings.Split(group, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			period, err := strconv.Atoi(item)
			if err != nil {
				return nil, fmt.Errorf("period window %d: invalid period %q", i+1, item)
			}
			if period < 1 {
				return nil, fmt.Errorf("period window %d: period must be positive, got %d", i+1, period)
			}
			w = append(w, period)
		}
		if len(w) == 0 {
			return nil, fmt.Errorf("period window %d is empty", i+1)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// FormatWindows is the inverse of ParseWindows.
func FormatWindows(windows []Window) string {
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = w.String()
	}
	return strings.Join(parts, ";")
}
