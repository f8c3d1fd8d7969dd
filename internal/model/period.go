package model

import (
	"fmt"
	"strings"
)

// PeriodSpec maps a user-facing period key to provider query parameters.
type PeriodSpec struct {
	Key              string
	ProviderPeriod   string
	ProviderInterval string
	Label            string
}

// DefaultPeriodKey is used when a chart request names no period.
const DefaultPeriodKey = "1mo"

var periods = []PeriodSpec{
	{Key: "1d", ProviderPeriod: "1d", ProviderInterval: "5m", Label: "1天"},
	{Key: "5d", ProviderPeriod: "5d", ProviderInterval: "1h", Label: "5天"},
	{Key: "1mo", ProviderPeriod: "1mo", ProviderInterval: "1d", Label: "1个月"},
	{Key: "3mo", ProviderPeriod: "3mo", ProviderInterval: "1d", Label: "3个月"},
	{Key: "6mo", ProviderPeriod: "6mo", ProviderInterval: "1wk", Label: "6个月"},
	{Key: "1y", ProviderPeriod: "1y", ProviderInterval: "1wk", Label: "1年"},
	{Key: "2y", ProviderPeriod: "2y", ProviderInterval: "1mo", Label: "2年"},
}

// Periods returns the supported periods in display order.
func Periods() []PeriodSpec {
	out := make([]PeriodSpec, len(periods))
	copy(out, periods)
	return out
}

// SupportedPeriods returns the keys joined for display, e.g. "1d | 5d | ...".
func SupportedPeriods() string {
	keys := make([]string, len(periods))
	for i, p := range periods {
		keys[i] = p.Key
	}
	return strings.Join(keys, " | ")
}

// LookupPeriod resolves a period key, case-insensitively.
func LookupPeriod(key string) (PeriodSpec, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, p := range periods {
		if p.Key == k {
			return p, nil
		}
	}
	return PeriodSpec{}, fmt.Errorf("%w: %s", ErrUnsupportedPeriod, k)
}
