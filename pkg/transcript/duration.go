package transcript

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:h|hr|hrs|hour|hours)\b`)
	minutesPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:m|min|mins|minute|minutes)\b`)
	clockPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// ParseDuration reads a human duration ("1 hour 30 minutes", "90 min", "1:30",
// "1h30m", "45") and returns whole minutes.
func ParseDuration(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return int(math.Round(d.Minutes())), true
	}

	if m := clockPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return h*60 + mins, true
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n < 0 {
			return 0, false
		}
		return int(math.Round(n)), true
	}

	var total float64
	found := false
	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		total += h * 60
		found = true
	}
	if m := minutesPattern.FindStringSubmatch(s); m != nil {
		mins, _ := strconv.ParseFloat(m[1], 64)
		total += mins
		found = true
	}
	if !found {
		return 0, false
	}
	return int(math.Round(total)), true
}

// FormatDuration renders minutes as "45m", "2h" or "1h 30m"
func FormatDuration(minutes float64) string {
	total := int(math.Round(minutes))
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	h, m := total/60, total%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
