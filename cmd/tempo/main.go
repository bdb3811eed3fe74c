package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/cli"
	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/service"
	"github.com/alexanderramin/tempo/internal/workspace"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.tempo/tempo.db
	dbPath := os.Getenv("TEMPO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tempo", "tempo.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	ruleRepo := repository.NewSQLiteRuleSetRepo(database, logger)

	// Wire external collaborators
	wsCfg := workspace.LoadConfig()
	var wsObserver workspace.Observer = workspace.NoopObserver{}
	if wsCfg.LogCalls {
		wsObserver = workspace.NewLogObserver(os.Stderr)
	}
	workspaceClient := workspace.NewClient(wsCfg, wsObserver)
	calendarClient := calendar.NewClient(calendar.LoadConfig())

	// Wire services
	var observers []service.UseCaseObserver
	if os.Getenv("TEMPO_LOG_USECASES") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	scheduleSvc := service.NewScheduleService(
		ruleRepo, workspaceClient, calendarClient, calendarClient,
		nil, logger, observers...,
	)

	app := &cli.App{
		Schedule:  scheduleSvc,
		Rules:     service.NewRulesService(ruleRepo),
		Workspace: workspaceClient,
	}

	// Detect interactive terminal for confirmation prompts and forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func logLevel() slog.Level {
	switch os.Getenv("TEMPO_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
