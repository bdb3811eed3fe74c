package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
)

// FormatRules renders the tunable parameters of a rule set.
func FormatRules(scope domain.BlockScope, rules *domain.SchedulingRules) string {
	var b strings.Builder
	b.WriteString(Header("rules: " + scopeLabel(scope)))
	b.WriteString("\n\n")

	rows := [][]string{
		{"Max task duration", fmt.Sprintf("%d min", rules.MaxTaskDurationMin)},
		{"Max long-task duration", fmt.Sprintf("%d min", rules.MaxLongTaskDurationMin)},
		{"Long-task threshold", fmt.Sprintf("%d min", rules.LongTaskThresholdMin)},
		{"Priority weight", fmt.Sprintf("%.2f", rules.PriorityWeight)},
		{"Time weight", fmt.Sprintf("%.2f", rules.TimeWeight)},
		{"Randomness", fmt.Sprintf("%.2f", rules.RandomnessFactor)},
		{"Working days", workingDaysLabel(rules.WorkingDays)},
	}
	b.WriteString(RenderTable([]string{"SETTING", "VALUE"}, rows))
	return b.String()
}

// FormatBlocks renders the time blocks of a rule set.
func FormatBlocks(scope domain.BlockScope, rules *domain.SchedulingRules) string {
	var b strings.Builder
	b.WriteString(Header("blocks: " + scopeLabel(scope)))
	b.WriteString("\n\n")

	if len(rules.Blocks) == 0 {
		b.WriteString(Dim("No blocks configured. Working days fall back to 09:00–17:00.\n"))
		return b.String()
	}

	var rows [][]string
	for _, blk := range rules.Blocks {
		state := StyleGreen.Render("on")
		if !blk.Enabled {
			state = StyleDim.Render("off")
		}
		resource := blk.ResourceID
		if resource == "" {
			resource = Dim("any")
		}
		rows = append(rows, []string{
			blk.ID,
			string(blk.Day),
			fmt.Sprintf("%s–%s", blk.Start, blk.End),
			state,
			resource,
		})
	}
	b.WriteString(RenderTable([]string{"ID", "DAY", "WINDOW", "STATE", "RESOURCE"}, rows))
	return b.String()
}

// FormatScopes renders the configured rule-set scopes.
func FormatScopes(scopes []domain.BlockScope) string {
	var b strings.Builder
	b.WriteString(Header("scopes"))
	b.WriteString("\n\n")
	if len(scopes) == 0 {
		b.WriteString(Dim("No rule sets saved yet.\n"))
		return b.String()
	}
	var rows [][]string
	for _, s := range scopes {
		rows = append(rows, []string{string(s.Kind), scopeLabel(s)})
	}
	b.WriteString(RenderTable([]string{"KIND", "NAME"}, rows))
	return b.String()
}

// FormatTasks renders pending workspace tasks.
func FormatTasks(tasks []domain.Task) string {
	var b strings.Builder
	b.WriteString(Header("pending tasks"))
	b.WriteString("\n\n")
	if len(tasks) == 0 {
		b.WriteString(Dim("No pending tasks.\n"))
		return b.String()
	}
	var rows [][]string
	for _, task := range tasks {
		resource := task.ResourceID
		if resource == "" {
			resource = Dim("-")
		}
		rows = append(rows, []string{
			task.Title,
			fmt.Sprintf("%d min", task.Estimate()),
			PriorityLabel(task.Priority),
			resource,
		})
	}
	b.WriteString(RenderTable([]string{"TASK", "ESTIMATE", "PRIORITY", "RESOURCE"}, rows))
	return b.String()
}

func scopeLabel(scope domain.BlockScope) string {
	if scope.Kind == domain.ScopeWeek {
		return "current week"
	}
	return scope.Name
}

func workingDaysLabel(days map[domain.Weekday]bool) string {
	var out []string
	for _, d := range domain.Weekdays {
		if days[d] {
			out = append(out, string(d)[:3])
		}
	}
	if len(out) == 0 {
		return Dim("none")
	}
	return strings.Join(out, " ")
}
