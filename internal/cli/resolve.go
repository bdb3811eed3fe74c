package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// resolveScope maps the --template flag to a rule-set scope. An empty
// template name selects the live week.
func resolveScope(template string) domain.BlockScope {
	if template == "" {
		return domain.LiveWeekScope()
	}
	return domain.TemplateScope(template)
}

// resolveStartDate parses a YYYY-MM-DD flag value, defaulting to today
// at local midnight.
func resolveStartDate(from string) (time.Time, error) {
	if from == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", from, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", from)
	}
	return t, nil
}
