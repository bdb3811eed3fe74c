package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/service"
)

// FormatPreview renders a proposed schedule grouped by day, with a
// placed-vs-requested summary at the bottom.
func FormatPreview(resp *service.PreviewResponse) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("schedule %s – %s",
		resp.Start.Format("Mon Jan 2"), resp.End.Format("Mon Jan 2"))))
	b.WriteString("\n\n")

	if len(resp.Events) == 0 {
		b.WriteString(Dim("No placements. "))
		if resp.Requested > 0 {
			b.WriteString(Dim(fmt.Sprintf("%d task(s) requested but no free slots matched.", resp.Requested)))
		} else {
			b.WriteString(Dim("Nothing to schedule."))
		}
		b.WriteString("\n")
		return b.String()
	}

	events := make([]domain.PlacedEvent, len(resp.Events))
	copy(events, resp.Events)
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })

	currentDay := ""
	var rows [][]string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		b.WriteString(RenderTable([]string{"TIME", "TASK", "CATEGORY"}, rows))
		b.WriteString("\n")
		rows = nil
	}

	for _, ev := range events {
		day := ev.Start.Format("Monday, Jan 2")
		if day != currentDay {
			flush()
			b.WriteString(Bold(day) + "\n")
			currentDay = day
		}
		title := ev.Title
		if ev.Partial {
			title += Dim(" (trimmed to fit)")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s–%s", ev.Start.Format("15:04"), ev.End.Format("15:04")),
			title,
			CategoryLabel(ev.Category),
		})
	}
	flush()

	b.WriteString(formatTally(resp.Placed, resp.Requested, resp.SlotCount))
	return b.String()
}

func formatTally(placed, requested, slots int) string {
	summary := fmt.Sprintf("Placed %d of %d task(s) across %d free slot(s).", placed, requested, slots)
	if placed < requested {
		return StyleYellow.Render(summary) + "\n"
	}
	return StyleGreen.Render(summary) + "\n"
}

// FormatUpload renders the per-event outcome tally of an upload.
func FormatUpload(resp *service.UploadResponse) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Created %d event(s).", resp.Created)))
	b.WriteString("\n")
	if len(resp.Failures) > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d event(s) failed:", len(resp.Failures))))
		b.WriteString("\n")
		for _, f := range resp.Failures {
			b.WriteString(fmt.Sprintf("  %s %s\n", Bold(f.Title), Dim(f.Reason)))
		}
	}
	return b.String()
}
