package interval

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Anything after the first space is ignored, so provider values such as
// "05:12 (BST)" are accepted. Seconds are validated and then dropped.
func ParseClock(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty clock value")
	}
	parts := strings.Split(fields[0], ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, len(parts))
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return 0, fmt.Errorf("invalid clock value %q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("invalid clock value %q", s)
		}
		values[i] = n
	}
	return values[0]*60 + values[1], nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// NormalizeClock parses s and renders it as "HH:MM:SS", the form the store
// keeps break times in.
func NormalizeClock(s string) (string, error) {
	fields := strings.Fields(s)
	if len(fields) != 1 {
		return "", fmt.Errorf("invalid clock value %q", s)
	}
	minute, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	sec := 0
	if parts := strings.Split(fields[0], ":"); len(parts) == 3 {
		sec, _ = strconv.Atoi(parts[2])
	}
	return fmt.Sprintf("%s:%02d", FormatClock(minute), sec), nil
}
