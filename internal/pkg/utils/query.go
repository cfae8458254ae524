package utils

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// QueryString returns the trimmed query parameter or "".
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryInt parses an integer query parameter. A missing parameter yields
// defaultValue; a malformed one yields ok=false.
func QueryInt(r *http.Request, key string, defaultValue int) (value int, ok bool) {
	raw := QueryString(r, key)
	if raw == "" {
		return defaultValue, true
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return i, true
}

// ParseDate accepts YYYY-MM-DD or RFC 3339. dateOnly reports which form was
// given so callers can widen a bare end date to the whole day.
func ParseDate(raw string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), true, nil
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), false, nil
}
