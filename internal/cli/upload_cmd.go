package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newUploadCmd(app *App) *cobra.Command {
	var from, template string
	var days int
	var yes bool

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Propose a schedule and push it to the calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := resolveStartDate(from)
			if err != nil {
				return err
			}

			preview, err := app.Schedule.Preview(context.Background(), service.PreviewRequest{
				Scope:     resolveScope(template),
				StartDate: start,
				DaysAhead: days,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatPreview(preview))
			if len(preview.Events) == 0 {
				return nil
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to upload without confirmation; pass --yes in non-interactive mode")
				}
				confirmed, err := confirmUpload(len(preview.Events))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println(formatter.Dim("Upload cancelled."))
					return nil
				}
			}

			resp, err := app.Schedule.Upload(context.Background(), preview.Events)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatUpload(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start date (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&days, "days", 0, "Days ahead to schedule (default 6, one inclusive week)")
	cmd.Flags().StringVar(&template, "template", "", "Use a named rules template instead of the current week")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")

	return cmd
}

func confirmUpload(count int) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Create %d calendar event(s)?", count)).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
