package rpc

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Args is the flat argument bag of a procedure call. Values must be
// scalars: string, bool, integers or floats.
type Args map[string]any

// Encode validates a and renders it as form values. Booleans are sent as
// "1"/"0", the server's check-field convention.
func (a Args) Encode() (url.Values, error) {
	values := url.Values{}

	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s, err := scalar(a[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		values.Set(k, s)
	}
	return values, nil
}

func scalar(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		if x {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w, got %T", ErrInvalidArgument, v)
	}
}
