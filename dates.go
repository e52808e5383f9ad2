package bff

import (
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a date from a string of unknown layout, trying the
// common formats in turn.
func ParseDate(value string) (time.Time, error) {
	return dateparse.ParseAny(value)
}

// ParseDates coerces the named string fields of kwargs to time.Time so
// callers can pass either strings or times for date parameters. Fields
// default to "date" when none are given. Values that are absent, not
// strings, or not parseable are left untouched; failed parses are
// logged at warn level. The map is modified in place and returned for
// chaining.
func ParseDates(kwargs map[string]any, fields ...string) map[string]any {
	if len(fields) == 0 {
		fields = []string{"date"}
	}

	for _, field := range fields {
		value, ok := kwargs[field].(string)
		if !ok {
			continue
		}

		parsed, err := ParseDate(value)
		if err != nil {
			Logger().Warnf("Value %q for field %q is not convertible to a date format.", value, field)
			continue
		}
		kwargs[field] = parsed
	}
	return kwargs
}
