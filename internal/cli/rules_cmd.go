package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newRulesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and tune scheduling rules",
	}

	cmd.AddCommand(
		newRulesShowCmd(app),
		newRulesSetCmd(app),
		newRulesScopesCmd(app),
	)

	return cmd
}

func newRulesShowCmd(app *App) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the rules of a scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := resolveScope(template)
			rules, err := app.Rules.GetRules(context.Background(), scope)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatRules(scope, rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Rules template to show (default: current week)")
	return cmd
}

func newRulesSetCmd(app *App) *cobra.Command {
	var template, workingDays string
	var maxDuration, maxLongDuration, longThreshold int
	var priorityWeight, timeWeight, randomness float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update rule parameters; only changed flags are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scope := resolveScope(template)

			rules, err := app.Rules.GetRules(ctx, scope)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("max-duration") {
				rules.MaxTaskDurationMin = maxDuration
			}
			if cmd.Flags().Changed("max-long-duration") {
				rules.MaxLongTaskDurationMin = maxLongDuration
			}
			if cmd.Flags().Changed("long-threshold") {
				rules.LongTaskThresholdMin = longThreshold
			}
			if cmd.Flags().Changed("priority-weight") {
				rules.PriorityWeight = priorityWeight
			}
			if cmd.Flags().Changed("time-weight") {
				rules.TimeWeight = timeWeight
			}
			if cmd.Flags().Changed("randomness") {
				rules.RandomnessFactor = randomness
			}
			if cmd.Flags().Changed("working-days") {
				days, err := parseWorkingDays(workingDays)
				if err != nil {
					return err
				}
				rules.WorkingDays = days
			}

			if err := app.Rules.UpdateRules(ctx, scope, *rules); err != nil {
				return err
			}

			fmt.Print(formatter.FormatRules(scope, rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Rules template to modify (default: current week)")
	cmd.Flags().IntVar(&maxDuration, "max-duration", 0, "Max minutes scheduled per task")
	cmd.Flags().IntVar(&maxLongDuration, "max-long-duration", 0, "Max minutes for tasks over the long threshold")
	cmd.Flags().IntVar(&longThreshold, "long-threshold", 0, "Estimate above which the long cap applies")
	cmd.Flags().Float64Var(&priorityWeight, "priority-weight", 0, "Weight of priority in task scoring")
	cmd.Flags().Float64Var(&timeWeight, "time-weight", 0, "Weight of estimated duration in task scoring")
	cmd.Flags().Float64Var(&randomness, "randomness", 0, "Half-width of the random score perturbation")
	cmd.Flags().StringVar(&workingDays, "working-days", "", "Comma-separated weekday names, e.g. monday,tuesday")

	return cmd
}

func newRulesScopesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List the saved rule-set scopes",
		RunE: func(cmd *cobra.Command, args []string) error {
			scopes, err := app.Rules.ListScopes(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatScopes(scopes))
			return nil
		},
	}
}

func parseWorkingDays(s string) (map[domain.Weekday]bool, error) {
	days := make(map[domain.Weekday]bool, 7)
	for _, d := range domain.Weekdays {
		days[d] = false
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, ok := domain.ParseWeekday(part)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days[d] = true
	}
	return days, nil
}
