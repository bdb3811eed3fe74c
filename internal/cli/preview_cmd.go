package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/spf13/cobra"
)

func newPreviewCmd(app *App) *cobra.Command {
	var from, template string
	var days int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Propose a schedule without writing to the calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := resolveStartDate(from)
			if err != nil {
				return err
			}

			resp, err := app.Schedule.Preview(context.Background(), service.PreviewRequest{
				Scope:     resolveScope(template),
				StartDate: start,
				DaysAhead: days,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatPreview(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 0, "Days ahead to schedule (default 6, one inclusive week)")
	cmd.Flags().StringVar(&template, "template", "", "Use a named rules template instead of the current week")

	return cmd
}
