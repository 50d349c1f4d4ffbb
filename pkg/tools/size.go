package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizePattern = regexp.MustCompile(`^(\d+)([mg]b?|)$`)

// ParseSizeToMB accepts a bare integer (interpreted as MB) or a suffixed
// size like "512m", "2g" or "1gb" and returns the value in MB.
func ParseSizeToMB(value string) (uint, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	m := sizePattern.FindStringSubmatch(v)
	if m == nil {
		return 0, fmt.Errorf("invalid size: %q", value)
	}

	num, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q", value)
	}

	switch {
	case m[2] == "" || strings.HasPrefix(m[2], "m"):
		return uint(num), nil
	case strings.HasPrefix(m[2], "g"):
		return uint(num) * 1024, nil
	}
	return 0, fmt.Errorf("invalid size unit: %q", value)
}
