package rpc

import (
	stdjson "encoding/json"
	"math"
	"reflect"
	"time"

	"github.com/dydra/dydra/pkg/rpc/status"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

var (
	timeType   = reflect.TypeOf(time.Time{})
	numberType = reflect.TypeOf(stdjson.Number(""))
)

// DecodeMap decodes a map returned by a remote call into a struct.
//
// Decoding is weakly typed and uses "mapstructure" struct tags. Strings formatted
// as RFC3339 are converted to time.Time.
func DecodeMap(result interface{}, target interface{}) error {
	if result == nil {
		return status.ErrUnexpectedResult.Wrapf("expected a map, got nothing")
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return status.ErrUnexpectedResult.Wrap(err)
	}
	if err = decoder.Decode(result); err != nil {
		return status.ErrUnexpectedResult.Wrap(err)
	}
	return nil
}

func timeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != timeType {
		return data, nil
	}
	if from == numberType {
		n, err := data.(stdjson.Number).Int64()
		if err != nil {
			return nil, err
		}
		return time.Unix(n, 0).UTC(), nil
	}
	switch from.Kind() {
	case reflect.String:
		s := data.(string)
		if s == "" {
			return time.Time{}, nil
		}
		return time.Parse(time.RFC3339, s)
	case reflect.Float64, reflect.Int, reflect.Int64:
		return time.Unix(cast.ToInt64(data), 0).UTC(), nil
	default:
		return data, nil
	}
}

// Map asserts that a result is a map with string keys
func Map(result interface{}) (map[string]interface{}, error) {
	m, err := cast.ToStringMapE(result)
	if err != nil || m == nil {
		return nil, status.ErrUnexpectedResult.Wrapf("expected a map, got %T", result)
	}
	return m, nil
}

// Int64 converts a numeric result to an int64
func Int64(result interface{}) (int64, error) {
	switch r := result.(type) {
	case nil, bool, []interface{}, map[string]interface{}:
		return 0, status.ErrUnexpectedResult.Wrapf("expected a number, got %T", result)
	case stdjson.Number:
		if n, err := r.Int64(); err == nil {
			return n, nil
		}
		f, err := r.Float64()
		if err != nil {
			return 0, status.ErrUnexpectedResult.Wrap(err)
		}
		return integral(f)
	case float64:
		return integral(r)
	case float32:
		return integral(float64(r))
	}
	n, err := cast.ToInt64E(result)
	if err != nil {
		return 0, status.ErrUnexpectedResult.Wrap(err)
	}
	return n, nil
}

// integral rejects numbers with a fractional part or out of the int64 range
func integral(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, status.ErrUnexpectedResult.Wrapf("expected an integer, got %v", f)
	}
	return int64(f), nil
}

// String converts a scalar result to a string
func String(result interface{}) (string, error) {
	switch result.(type) {
	case nil, []interface{}, map[string]interface{}:
		return "", status.ErrUnexpectedResult.Wrapf("expected a string, got %T", result)
	}
	s, err := cast.ToStringE(result)
	if err != nil {
		return "", status.ErrUnexpectedResult.Wrap(err)
	}
	return s, nil
}

// Pairs converts a result shaped as a list of 2-element lists, e.g. [["jhacker","data"],["jhacker","foaf"]]
func Pairs(result interface{}) ([][2]string, error) {
	if result == nil {
		return nil, nil
	}
	list, ok := result.([]interface{})
	if !ok {
		return nil, status.ErrUnexpectedResult.Wrapf("expected a list of pairs, got %T", result)
	}
	pairs := make([][2]string, 0, len(list))
	for i, item := range list {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, status.ErrUnexpectedResult.Wrapf("item %d: expected a pair, got %v", i, item)
		}
		first, err := String(pair[0])
		if err != nil {
			return nil, status.ErrUnexpectedResult.Wrapf("item %d: %w", i, err)
		}
		second, err := String(pair[1])
		if err != nil {
			return nil, status.ErrUnexpectedResult.Wrapf("item %d: %w", i, err)
		}
		pairs = append(pairs, [2]string{first, second})
	}
	return pairs, nil
}

// Strings converts a result shaped as a list of scalars
func Strings(result interface{}) ([]string, error) {
	if result == nil {
		return nil, nil
	}
	list, ok := result.([]interface{})
	if !ok {
		return nil, status.ErrUnexpectedResult.Wrapf("expected a list, got %T", result)
	}
	strs := make([]string, 0, len(list))
	for i, item := range list {
		s, err := String(item)
		if err != nil {
			return nil, status.ErrUnexpectedResult.Wrapf("item %d: %w", i, err)
		}
		strs = append(strs, s)
	}
	return strs, nil
}
