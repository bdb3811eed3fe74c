package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	var resources string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List pending workspace tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter []string
			if resources != "" {
				for _, r := range strings.Split(resources, ",") {
					if r = strings.TrimSpace(r); r != "" {
						filter = append(filter, r)
					}
				}
			}

			tasks, err := app.Workspace.ListIncompleteTasks(context.Background(), filter)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatTasks(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&resources, "resources", "", "Comma-separated resource filter")
	return cmd
}
