package scheduler

import (
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// MinSlotMin is the smallest free interval worth keeping. Sub-intervals
// shorter than this after event subtraction are discarded.
const MinSlotMin = 15

// Default block applied to working days that no configured block covers.
var (
	defaultBlockStart = domain.TimeOfDay(9 * 60)
	defaultBlockEnd   = domain.TimeOfDay(17 * 60)
)

// GenerateSlots produces the free time slots between start and end
// (inclusive, dates at midnight in the scheduling location) from the
// rules' time blocks, subtracting every booked event that overlaps.
//
// Invalid blocks are skipped with a logged warning; a working day with
// no matching block falls back to an unscoped 09:00-17:00 block.
// Returned slots never overlap a booked event but may overlap each
// other when blocks themselves overlap.
func GenerateSlots(start, end time.Time, rules domain.SchedulingRules, booked []domain.BookedEvent, logger *slog.Logger) []domain.TimeSlot {
	if logger == nil {
		logger = slog.Default()
	}

	byDay := groupEventsByDay(booked, start.Location())

	var slots []domain.TimeSlot
	for day := dateOf(start); !day.After(dateOf(end)); day = day.AddDate(0, 0, 1) {
		weekday := domain.WeekdayOf(day.Weekday())
		if !rules.WorkingDays[weekday] {
			continue
		}

		blocks := matchingBlocks(rules, weekday, logger)
		if len(blocks) == 0 {
			blocks = []domain.TimeBlock{{
				Day:   domain.BlockDay(weekday),
				Start: defaultBlockStart,
				End:   defaultBlockEnd,
			}}
		}

		dayEvents := byDay[day.Format("2006-01-02")]
		for _, b := range blocks {
			slots = append(slots, subtractEvents(day, b, dayEvents)...)
		}
	}
	return slots
}

// matchingBlocks selects the enabled, well-formed blocks covering the
// given weekday. Malformed blocks are logged and skipped, never fatal.
func matchingBlocks(rules domain.SchedulingRules, weekday domain.Weekday, logger *slog.Logger) []domain.TimeBlock {
	var out []domain.TimeBlock
	for _, b := range rules.Blocks {
		if !b.Enabled {
			continue
		}
		if !b.Valid() {
			logger.Warn("skipping invalid time block",
				"block_id", b.ID, "start", b.Start.String(), "end", b.End.String())
			continue
		}
		if b.Day.Matches(weekday) {
			out = append(out, b)
		}
	}
	return out
}

// bookedInterval is a booked event projected onto one day, in minutes
// since that day's midnight.
type bookedInterval struct {
	start domain.TimeOfDay
	end   domain.TimeOfDay
}

// subtractEvents walks the day's booked events left to right, emitting
// the free sub-intervals of the block around each conflict.
func subtractEvents(day time.Time, b domain.TimeBlock, events []bookedInterval) []domain.TimeSlot {
	var out []domain.TimeSlot
	cursor := b.Start

	for _, ev := range events {
		if ev.start >= b.End || ev.end <= cursor {
			continue
		}
		if ev.start.Sub(cursor) >= MinSlotMin {
			out = append(out, domain.TimeSlot{
				Day: day, Start: cursor, End: ev.start, ResourceID: b.ResourceID,
			})
		}
		if ev.end > cursor {
			cursor = ev.end
		}
	}

	if b.End.Sub(cursor) >= MinSlotMin {
		out = append(out, domain.TimeSlot{
			Day: day, Start: cursor, End: b.End, ResourceID: b.ResourceID,
		})
	}
	return out
}

// groupEventsByDay buckets events by calendar date in loc, clamping
// multi-day events to each day's bounds and sorting by start time.
func groupEventsByDay(events []domain.BookedEvent, loc *time.Location) map[string][]bookedInterval {
	byDay := make(map[string][]bookedInterval)
	for _, ev := range events {
		evStart := ev.Start.In(loc)
		evEnd := ev.End.In(loc)
		if !evEnd.After(evStart) {
			continue
		}
		for day := dateOf(evStart); day.Before(evEnd); day = day.AddDate(0, 0, 1) {
			dayEnd := day.AddDate(0, 0, 1)
			iv := bookedInterval{
				start: toMinutes(day, maxTime(evStart, day)),
				end:   toMinutes(day, minTime(evEnd, dayEnd)),
			}
			if iv.end > iv.start {
				key := day.Format("2006-01-02")
				byDay[key] = append(byDay[key], iv)
			}
		}
	}
	for key := range byDay {
		ivs := byDay[key]
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].start < ivs[j].start })
	}
	return byDay
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// toMinutes converts an instant within day to minutes since midnight,
// saturating at the day boundary.
func toMinutes(day, t time.Time) domain.TimeOfDay {
	m := int(t.Sub(day) / time.Minute)
	if m < 0 {
		m = 0
	}
	if m > 24*60 {
		m = 24 * 60
	}
	return domain.TimeOfDay(m)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
