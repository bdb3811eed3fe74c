package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newBlocksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "Manage availability time blocks",
	}

	cmd.AddCommand(
		newBlocksListCmd(app),
		newBlocksAddCmd(app),
		newBlocksRmCmd(app),
		newBlocksToggleCmd(app, "enable", true),
		newBlocksToggleCmd(app, "disable", false),
	)

	return cmd
}

func newBlocksListCmd(app *App) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the time blocks of a rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := resolveScope(template)
			rules, err := app.Rules.GetRules(context.Background(), scope)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBlocks(scope, rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Rules template to list (default: current week)")
	return cmd
}

func newBlocksAddCmd(app *App) *cobra.Command {
	var template, day, start, end, resource string
	var disabled bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a time block to a rule set",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Prompt for anything missing when running at a terminal.
			if (day == "" || start == "" || end == "") && app.interactive() {
				if err := blockForm(&day, &start, &end, &resource).Run(); err != nil {
					return err
				}
			}

			blockDay, ok := domain.ParseBlockDay(day)
			if !ok {
				return fmt.Errorf("unknown day %q: use a weekday name, weekday, weekend, or all", day)
			}
			startTod, err := domain.ParseTimeOfDay(start)
			if err != nil {
				return fmt.Errorf("invalid start time: %w", err)
			}
			endTod, err := domain.ParseTimeOfDay(end)
			if err != nil {
				return fmt.Errorf("invalid end time: %w", err)
			}

			block := domain.TimeBlock{
				Day:        blockDay,
				Start:      startTod,
				End:        endTod,
				Enabled:    !disabled,
				ResourceID: resource,
			}
			if err := app.Rules.AddBlock(context.Background(), resolveScope(template), block); err != nil {
				return err
			}

			fmt.Println(formatter.StyleGreen.Render(
				fmt.Sprintf("Added %s block %s–%s.", block.Day, block.Start, block.End)))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Rules template to modify (default: current week)")
	cmd.Flags().StringVar(&day, "day", "", "Day selector: weekday name, weekday, weekend, or all")
	cmd.Flags().StringVar(&start, "start", "", "Block start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "Block end time (HH:MM)")
	cmd.Flags().StringVar(&resource, "resource", "", "Restrict the block to tasks with this resource")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Create the block disabled")

	return cmd
}

func newBlocksRmCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <block-id>",
		Short: "Remove a time block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Rules.RemoveBlock(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println(formatter.StyleGreen.Render("Block removed."))
			return nil
		},
	}
	return cmd
}

func newBlocksToggleCmd(app *App, verb string, enabled bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   verb + " <block-id>",
		Short: capitalize(verb) + " a time block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Rules.SetBlockEnabled(context.Background(), args[0], enabled); err != nil {
				return err
			}
			fmt.Println(formatter.StyleGreen.Render("Block " + verb + "d."))
			return nil
		},
	}
	return cmd
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
