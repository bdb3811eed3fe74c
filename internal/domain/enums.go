package domain

import "time"

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists all weekdays in Monday-first order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf maps a time.Weekday to the domain enum.
func WeekdayOf(d time.Weekday) Weekday {
	switch d {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ParseWeekday returns the Weekday for a stored day name.
func ParseWeekday(s string) (Weekday, bool) {
	for _, d := range Weekdays {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// IsWeekend reports whether the day is Saturday or Sunday.
func (w Weekday) IsWeekend() bool {
	return w == Saturday || w == Sunday
}

// BlockDay is the day selector on a time block: a specific weekday,
// "weekday" (Mon-Fri), "weekend" (Sat-Sun), or "all".
type BlockDay string

const (
	BlockDayAll     BlockDay = "all"
	BlockDayWeekday BlockDay = "weekday"
	BlockDayWeekend BlockDay = "weekend"
)

// ParseBlockDay accepts a weekday name or one of the group selectors.
func ParseBlockDay(s string) (BlockDay, bool) {
	switch BlockDay(s) {
	case BlockDayAll, BlockDayWeekday, BlockDayWeekend:
		return BlockDay(s), true
	}
	if d, ok := ParseWeekday(s); ok {
		return BlockDay(d), true
	}
	return "", false
}

// Matches reports whether the selector covers the given weekday.
func (b BlockDay) Matches(w Weekday) bool {
	switch b {
	case BlockDayAll:
		return true
	case BlockDayWeekday:
		return !w.IsWeekend()
	case BlockDayWeekend:
		return w.IsWeekend()
	default:
		return BlockDay(w) == b
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Ordinal returns the priority rank used for scoring: high=1, medium=2,
// low=3. Unknown or unset priorities rank as low.
func (p Priority) Ordinal() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// ScopeKind selects which rule set a scheduling run works from.
type ScopeKind string

const (
	// ScopeWeek is the live current-week configuration.
	ScopeWeek ScopeKind = "week"
	// ScopeTemplate is a named recurring template.
	ScopeTemplate ScopeKind = "template"
)

// BlockScope identifies a rule set: the live week or a named template.
type BlockScope struct {
	Kind ScopeKind
	Name string // template name; empty for ScopeWeek
}

// LiveWeekScope is the default scope for scheduling runs.
func LiveWeekScope() BlockScope {
	return BlockScope{Kind: ScopeWeek}
}

// TemplateScope selects the named recurring template.
func TemplateScope(name string) BlockScope {
	return BlockScope{Kind: ScopeTemplate, Name: name}
}
