package cli

import (
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/workspace"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Schedule  service.ScheduleService
	Rules     service.RulesService
	Workspace workspace.Client

	// IsInteractive reports whether stdin is a terminal; interactive
	// prompts are skipped when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "tempo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tempo",
		Short: "Schedule pending tasks into free calendar slots",
	}

	root.AddCommand(
		newPreviewCmd(app),
		newUploadCmd(app),
		newBlocksCmd(app),
		newRulesCmd(app),
		newTasksCmd(app),
	)

	return root
}
