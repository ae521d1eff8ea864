package response

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// DefaultDuration is the activity length in minutes used when none can
// be read from the response
const DefaultDuration = 30

var firstInteger = regexp.MustCompile(`\d+`)

// NormalizeDuration extracts the first integer from v ("35 dakika",
// 35, "35") and falls back to DefaultDuration
func NormalizeDuration(v interface{}) int {
	var s string
	switch val := v.(type) {
	case nil:
		return DefaultDuration
	case int:
		s = strconv.Itoa(val)
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		s = val.String()
	case string:
		s = val
	default:
		s = fmt.Sprint(val)
	}
	m := firstInteger.FindString(s)
	if m == "" {
		return DefaultDuration
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return DefaultDuration
	}
	return n
}
