package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/markusressel/i8kfans/internal/policy"
	"github.com/mitchellh/mapstructure"
)

// Optional is a generic container for optional configuration values.
type Optional[T any] struct {
	// Value holds the actual as unmarshalled.
	Value T
	// Present indicates if the value was present in the configuration.
	Present bool
	// RuntimeOverride indicates if the value was overridden at runtime.
	RuntimeOverride bool
}

func (o *Optional[T]) Get() T {
	return o.Value
}

// SetOverride sets the value and marks it as overridden at runtime.
func (o *Optional[T]) SetOverride(value T) {
	o.RuntimeOverride = true
	o.Value = value
}

// DefaultTrueBool is a boolean type that defaults to true if not present and not overridden.
type DefaultTrueBool struct {
	Optional[bool]
}

func (b *DefaultTrueBool) Get() bool {
	if !b.Present && !b.RuntimeOverride {
		return true
	}
	return b.Value
}

// ThresholdPairHookFunc returns a mapstructure decode hook that accepts a threshold pair
// either as a two element list ("[40, 50]" or "40,50") or as a map with "low" and "high" keys.
func ThresholdPairHookFunc() mapstructure.DecodeHookFuncType {
	thresholdType := reflect.TypeOf(policy.ThresholdPair{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != thresholdType {
			return data, nil
		}

		var values []interface{}
		switch v := data.(type) {
		case []interface{}:
			values = v
		case []int:
			for _, i := range v {
				values = append(values, i)
			}
		case string:
			for _, part := range strings.Split(strings.Trim(v, "[] "), ",") {
				values = append(values, strings.TrimSpace(part))
			}
		default:
			// maps are decoded field by field
			return data, nil
		}

		if len(values) != 2 {
			return nil, fmt.Errorf("thresholds need exactly two values (low, high), got %d", len(values))
		}
		low, err := anyToInt(values[0])
		if err != nil {
			return nil, fmt.Errorf("invalid low threshold: %w", err)
		}
		high, err := anyToInt(values[1])
		if err != nil {
			return nil, fmt.Errorf("invalid high threshold: %w", err)
		}
		return policy.ThresholdPair{Low: low, High: high}, nil
	}
}

// anyToInt converts numeric and string values to int.
func anyToInt(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as int: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

// DefaultTrueBoolHookFunc returns a mapstructure decode hook function for DefaultTrueBool.
func DefaultTrueBoolHookFunc() mapstructure.DecodeHookFuncType {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{}) (interface{}, error) {

		// Only target our specific named type
		if t != reflect.TypeOf(DefaultTrueBool{}) {
			return data, nil
		}

		var val bool
		switch v := data.(type) {
		case bool:
			val = v
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return data, nil
			}
			val = parsed
		default:
			return data, nil
		}

		return DefaultTrueBool{
			Optional: Optional[bool]{
				Value:   val,
				Present: true,
			},
		}, nil
	}
}
