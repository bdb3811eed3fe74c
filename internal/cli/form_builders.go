package cli

import (
	"fmt"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/huh"
)

// timeInput returns a huh.Input for an HH:MM time-of-day field.
func timeInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateTimeOfDay)
}

// blockForm collects the fields of a new time block.
func blockForm(day, start, end, resource *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Day").
				Options(
					huh.NewOption("Every day", string(domain.BlockDayAll)),
					huh.NewOption("Weekdays (Mon–Fri)", string(domain.BlockDayWeekday)),
					huh.NewOption("Weekends", string(domain.BlockDayWeekend)),
					huh.NewOption("Monday", string(domain.Monday)),
					huh.NewOption("Tuesday", string(domain.Tuesday)),
					huh.NewOption("Wednesday", string(domain.Wednesday)),
					huh.NewOption("Thursday", string(domain.Thursday)),
					huh.NewOption("Friday", string(domain.Friday)),
					huh.NewOption("Saturday", string(domain.Saturday)),
					huh.NewOption("Sunday", string(domain.Sunday)),
				).
				Value(day),
			timeInput("Start (HH:MM)", "09:00", start),
			timeInput("End (HH:MM)", "17:00", end),
			huh.NewInput().
				Title("Resource (blank for any task)").
				Value(resource),
		),
	).WithShowHelp(false)
}

func validateTimeOfDay(s string) error {
	if _, err := domain.ParseTimeOfDay(s); err != nil {
		return fmt.Errorf("use HH:MM, e.g. 09:30")
	}
	return nil
}
