package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/widgetbox/internal/apperr"
	"github.com/jask/widgetbox/internal/config"
	"github.com/jask/widgetbox/internal/database"
	"github.com/jask/widgetbox/internal/database/repository"
	"github.com/jask/widgetbox/internal/joke"
	"github.com/jask/widgetbox/internal/logging"
	"github.com/jask/widgetbox/internal/service"
	"github.com/jask/widgetbox/internal/session"
	"github.com/jask/widgetbox/internal/tui"
	"github.com/jask/widgetbox/internal/weather"
	"github.com/jask/widgetbox/internal/widget"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// env is what every command shares: config, logger and a lazily opened db.
type env struct {
	verbose bool
	cfg     config.Config
	logger  *zap.Logger
	db      *sql.DB
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := &env{logger: zap.NewNop()}
	defer e.teardown()

	root := e.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "error:", apperr.Message(err))
		return 1
	}
	return 0
}

func (e *env) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "widgetbox [widget]",
		Short: "A box of small terminal widgets",
		Long: `widgetbox bundles a countdown timer, a number guessing game, a weather card,
a joke fetcher, a calculator, a colour converter, a tip splitter, a password
generator, a clock and a birthday card.

Run without arguments to open the interactive UI, or name a widget to open
it directly. Every widget also has a one-shot subcommand.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
		RunE:              e.runTUI,
	}
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		e.countdownCmd(),
		e.guessCmd(),
		e.weatherCmd(),
		e.jokeCmd(),
		e.calcCmd(),
		e.colorCmd(),
		e.tipCmd(),
		e.passwordCmd(),
		e.clockCmd(),
		e.birthdayCmd(),
		e.bestCmd(),
		e.todayCmd(),
		e.listCmd(),
	)
	return root
}

func (e *env) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	e.cfg = cfg
	logger, err := logging.New(cfg.Log, e.verbose)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	e.logger = logger
	e.logger.Debug("starting", zap.String("command", cmd.CommandPath()))
	return nil
}

func (e *env) teardown() {
	if e.db != nil {
		_ = e.db.Close()
		e.db = nil
	}
	_ = e.logger.Sync()
}

// openDB migrates, opens and seeds the database on first use.
func (e *env) openDB(ctx context.Context) (*sql.DB, error) {
	if e.db != nil {
		return e.db, nil
	}
	path := e.cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	e.db = db
	return db, nil
}

func (e *env) scoreboard(ctx context.Context) (*service.Scoreboard, error) {
	db, err := e.openDB(ctx)
	if err != nil {
		return nil, err
	}
	return &service.Scoreboard{
		KV:      repository.NewKVRepo(db),
		Results: repository.NewResultRepo(db),
		Log:     e.logger,
	}, nil
}

func (e *env) weatherClient() *weather.Client {
	return weather.NewClient(e.cfg.Weather.BaseURL, e.cfg.WeatherAPIKey(), e.cfg.Weather.Timeout, e.logger)
}

func (e *env) jokeClient() *joke.Client {
	return joke.NewClient(e.cfg.Joke.BaseURL, e.cfg.Joke.Timeout, e.logger)
}

func (e *env) runTUI(cmd *cobra.Command, args []string) error {
	var start widget.ID
	if len(args) == 1 {
		w, err := widget.Lookup(args[0])
		if err != nil {
			return err
		}
		start = w.ID
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sb, err := e.scoreboard(ctx)
	if err != nil {
		return err
	}
	app := tui.New(ctx, e.cfg, tui.Deps{
		Scoreboard:  sb,
		Maintenance: &service.MaintenanceService{DB: e.db},
		KV:          sb.KV,
		Weather:     e.weatherClient(),
		Joke:        e.jokeClient(),
		Scheduler:   session.NewTickerScheduler(),
		Logger:      e.logger,
		SaveConfig:  config.Save,
	})
	defer app.Close()
	if start != "" {
		app.Show(start)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
