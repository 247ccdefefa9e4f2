package event

import (
	"fmt"
	"strconv"
	"time"
)

// Accepted date input layouts, tried in order. The API contract only promises
// ISO-8601; the bare date form matches what clients of the original API sent.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)

		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParsePrice coerces the price argument to a float. The schema declares it as
// Float! but clients historically send numeric strings, so both arrive here.
func ParsePrice(v interface{}) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)

		if err != nil {
			return 0, fmt.Errorf("price %q is not numeric", v)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("price has unsupported type %T", v)
	}
}
