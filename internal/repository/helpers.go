package repository

import (
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// workingDaysToString serializes the enabled days as a comma-separated
// list in canonical Monday-first order.
func workingDaysToString(days map[domain.Weekday]bool) string {
	var out []string
	for _, d := range domain.Weekdays {
		if days[d] {
			out = append(out, string(d))
		}
	}
	return strings.Join(out, ",")
}

// workingDaysFromString parses a comma-separated day list, ignoring
// unknown names.
func workingDaysFromString(s string) map[domain.Weekday]bool {
	days := make(map[domain.Weekday]bool, 7)
	for _, d := range domain.Weekdays {
		days[d] = false
	}
	for _, part := range strings.Split(s, ",") {
		if d, ok := domain.ParseWeekday(strings.TrimSpace(part)); ok {
			days[d] = true
		}
	}
	return days
}
