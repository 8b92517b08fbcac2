package mod

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sourceplane/chasm/internal/model"
)

// Args is a coerced instruction argument set
type Args map[string]interface{}

// ParseArgs turns "key=value, key=value" into typed arguments.
// Values become bool, nil, int64, float64 or string, tried in that order.
func ParseArgs(input string) (Args, error) {
	args := make(Args)
	if strings.TrimSpace(input) == "" {
		return args, nil
	}

	for _, segment := range strings.Split(input, ",") {
		key, value, found := strings.Cut(segment, "=")
		if !found {
			return nil, fmt.Errorf("%w: %q has no '='", model.ErrMalformedArgument, strings.TrimSpace(segment))
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("%w: %q has an empty name", model.ErrMalformedArgument, strings.TrimSpace(segment))
		}
		args[key] = coerce(strings.TrimSpace(value))
	}

	return args, nil
}

func coerce(literal string) interface{} {
	switch strings.ToLower(literal) {
	case "true":
		return true
	case "false":
		return false
	case "null", "none":
		return nil
	}

	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return n
	}

	if strings.Contains(literal, ".") {
		if d, err := decimal.NewFromString(literal); err == nil {
			return d.InexactFloat64()
		}
	}

	return literal
}

// Int returns the named argument as int64, accepting integral floats
func (a Args) Int(name string) (int64, bool) {
	switch v := a[name].(type) {
	case int64:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

// String returns the named argument, or fallback when it is absent or null
func (a Args) String(name, fallback string) string {
	if s, ok := a[name].(string); ok {
		return s
	}
	return fallback
}
