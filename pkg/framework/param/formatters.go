package param

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPercent formats a 0..1 magnitude as a whole percentage
func FormatPercent(magnitude float32) string {
	return fmt.Sprintf("%.0f%%", magnitude*100)
}

// ParsePercent parses "75%" or "0.75" into a 0..1 magnitude.
// A trailing percent sign means the number is in 0..100.
func ParsePercent(str string) (float32, error) {
	str = strings.TrimSpace(str)
	percent := strings.HasSuffix(str, "%")
	str = strings.TrimSpace(strings.TrimSuffix(str, "%"))

	v, err := strconv.ParseFloat(str, 32)
	if err != nil {
		return 0, fmt.Errorf("parse magnitude %q: %w", str, err)
	}
	if percent {
		v /= 100
	}
	return float32(v), nil
}
