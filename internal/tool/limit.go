package tool

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

const (
	DefaultLimit = 5
	MinLimit     = 1
	MaxLimit     = 20
)

// ResolveLimit picks the first numeric value among arg and cfgLimit, falling
// back to DefaultLimit, and clamps it into [MinLimit, MaxLimit]. Values that
// do not coerce to a number count as absent; booleans coerce to 1 and 0.
func ResolveLimit(arg, cfgLimit any) int {
	for _, v := range []any{arg, cfgLimit} {
		if n, ok := toNumber(v); ok {
			return clampLimit(n)
		}
	}
	return DefaultLimit
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case string:
		if strings.TrimSpace(t) == "" {
			return 0, false
		}
	}
	n, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// дробную часть отбрасываем, потом зажимаем в [1, 20]
func clampLimit(n float64) int {
	n = math.Trunc(n)
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return int(n)
}
