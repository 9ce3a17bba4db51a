package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/easy-apply/internal/answers"
	"github.com/jonathan/easy-apply/internal/apply"
	"github.com/jonathan/easy-apply/internal/browser"
	"github.com/jonathan/easy-apply/internal/config"
	"github.com/jonathan/easy-apply/internal/db"
	"github.com/jonathan/easy-apply/internal/eventlog"
	"github.com/jonathan/easy-apply/internal/observability"
	"github.com/jonathan/easy-apply/internal/perception"
	"github.com/jonathan/easy-apply/internal/policy"
	"github.com/jonathan/easy-apply/internal/resolve"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Apply to one job or a batch of jobs",
	Long: `Opens each job in Chrome, walks its Easy Apply modal and answers the fields the
answer store resolves with certainty. Unresolved fields skip the job in production
mode and pause for you in interactive mode.

Configuration can be loaded from a JSON or YAML file using --config. Command-line arguments override config file values.`,
	RunE: runApplyCmd,
}

var (
	runConfigPath      string
	runJobURL          string
	runJobs            string
	runAnswers         string
	runInteractive     bool
	runTestMode        bool
	runDebugUnresolved bool
	runUnknownCheckbox string
	runHeadless        bool
	runProfileDir      string
	runEvents          string
	runSummary         string
	runUnresolved      string
	runDatabaseURL     string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config file, JSON or YAML (values can be overridden by other flags)")

	runCommand.Flags().StringVar(&runJobURL, "job-url", "", "Job to apply to (mutually exclusive with --jobs)")
	runCommand.Flags().StringVar(&runJobs, "jobs", "", "File with one job URL per line (mutually exclusive with --job-url)")
	runCommand.Flags().StringVarP(&runAnswers, "answers", "a", "", "Path to the answer store (YAML or JSON)")
	runCommand.Flags().BoolVar(&runInteractive, "interactive", false, "Ask before skipping a job and before submitting")
	runCommand.Flags().BoolVar(&runTestMode, "test-mode", false, "Resolve every field but never press Submit")
	runCommand.Flags().BoolVar(&runDebugUnresolved, "debug-unresolved", false, "Record every unresolved field to the unresolved log")
	runCommand.Flags().StringVar(&runUnknownCheckbox, "unknown-checkbox", "", "Policy for unexplained checkboxes: check, leave or violation")
	runCommand.Flags().BoolVar(&runHeadless, "headless", false, "Run Chrome without a window")
	runCommand.Flags().StringVar(&runProfileDir, "profile-dir", "", "Chrome profile directory that keeps the login session")
	runCommand.Flags().StringVar(&runEvents, "events", "", "Event log path (JSONL)")
	runCommand.Flags().StringVar(&runSummary, "summary", "", "Batch summary path (CSV)")
	runCommand.Flags().StringVar(&runUnresolved, "unresolved", "", "Unresolved field log path (JSONL)")

	// Database URL for result persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

// resolveRunConfig merges the config file, flags, environment and defaults,
// then checks the result
func resolveRunConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("job-url") {
		cfg.JobURL = runJobURL
	}
	if flags.Changed("jobs") {
		cfg.Jobs = runJobs
	}
	if flags.Changed("answers") {
		cfg.Answers = runAnswers
	}
	if flags.Changed("interactive") {
		cfg.Mode = string(policy.Production)
		if runInteractive {
			cfg.Mode = string(policy.Interactive)
		}
	}
	if flags.Changed("test-mode") {
		cfg.TestMode = runTestMode
	}
	if flags.Changed("debug-unresolved") {
		cfg.DebugUnresolved = runDebugUnresolved
	}
	if flags.Changed("unknown-checkbox") {
		cfg.UnknownCheckbox = runUnknownCheckbox
	}
	if flags.Changed("headless") {
		cfg.Headless = runHeadless
	}
	if flags.Changed("profile-dir") {
		cfg.ProfileDir = runProfileDir
	}
	if flags.Changed("events") {
		cfg.EventsPath = runEvents
	}
	if flags.Changed("summary") {
		cfg.SummaryPath = runSummary
	}
	if flags.Changed("unresolved") {
		cfg.UnresolvedPath = runUnresolved
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	// Step 3: Database URL falls back to the environment
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Step 4: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Defaults())

	// Step 5: Validate required fields
	if cfg.JobURL == "" && cfg.Jobs == "" {
		return cfg, fmt.Errorf("either --job-url or --jobs must be provided (via flag or config)")
	}
	if cfg.JobURL != "" && cfg.Jobs != "" {
		return cfg, fmt.Errorf("--job-url and --jobs are mutually exclusive; provide only one")
	}
	if cfg.Answers == "" {
		return cfg, fmt.Errorf("--answers is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runApplyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logLevel.SetLevel(zapcore.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := answers.Load(cfg.Answers)
	if err != nil {
		return fmt.Errorf("failed to load answers: %w", err)
	}

	var jobs []apply.Job
	if cfg.JobURL != "" {
		jobs = []apply.Job{apply.NewJob(cfg.JobURL)}
	} else if jobs, err = apply.LoadJobs(cfg.Jobs); err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs to apply to in %s", cfg.Jobs)
	}

	mode, err := policy.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(os.Stdout)
	handlerOpts := policy.Options{
		Mode:     mode,
		TestMode: cfg.TestMode,
		Printer:  printer,
		Logger:   logger,
	}
	if mode == policy.Interactive {
		handlerOpts.Confirmer = policy.NewPrompter(os.Stdin, os.Stdout)
	}

	events, err := eventlog.Open(cfg.EventsPath, eventlog.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if err := events.Close(); err != nil {
			logger.Warn("failed to close event log", zap.Error(err))
		}
	}()

	callbacks := []apply.EventCallback{events.Record, func(e apply.Event) {
		if e.Kind == apply.EventJobFinished && e.Result != nil {
			printer.PrintJobResult(*e.Result)
		}
	}}
	if cfg.DebugUnresolved {
		callbacks = append(callbacks, eventlog.NewCollector(cfg.UnresolvedPath, logger).Observe)
	}

	var database *db.DB
	runID := uuid.Nil
	if cfg.DatabaseURL != "" {
		database, runID, err = openRunStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		callbacks = append(callbacks, db.Recorder(context.WithoutCancel(ctx), database, runID, logger))
	}

	page, err := browser.Launch(ctx, browser.Options{
		Headless:   cfg.Headless,
		ProfileDir: cfg.ProfileDir,
		Timeout:    cfg.Timeout(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer page.Close()

	engine := apply.New(page,
		resolve.New(store, resolve.Options{UnknownCheckbox: resolve.UnknownCheckboxPolicy(cfg.UnknownCheckbox)}),
		policy.NewHandler(handlerOpts),
		apply.Options{
			Perception: perception.Options{
				TextSkipPatterns:   cfg.TextSkipPatterns,
				SelectSkipPatterns: cfg.SelectSkipPatterns,
			},
			StallLimit:   cfg.StallLimit,
			PollInterval: cfg.PollInterval(),
			OnEvent:      apply.Fanout(callbacks...),
			Logger:       logger,
		})

	results := engine.RunBatch(ctx, jobs)

	if err := eventlog.AppendSummary(cfg.SummaryPath, results); err != nil {
		logger.Warn("failed to write batch summary", zap.Error(err))
	}
	printer.PrintBatchSummary(results)

	if database != nil {
		status := db.RunStatusCompleted
		if ctx.Err() != nil {
			status = db.RunStatusInterrupted
		}
		// The run context may already be cancelled
		if err := database.CompleteRun(context.Background(), runID, status); err != nil {
			logger.Warn("failed to complete run", zap.Error(err))
		}
	}

	if ctx.Err() != nil {
		return fmt.Errorf("interrupted after %d of %d jobs", len(results), len(jobs))
	}
	return nil
}

func openRunStore(ctx context.Context, cfg config.Config) (*db.DB, uuid.UUID, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, uuid.Nil, err
	}
	runID, err := database.CreateRun(ctx, cfg.Mode, cfg.TestMode)
	if err != nil {
		database.Close()
		return nil, uuid.Nil, err
	}
	logger.Info("recording results", zap.String("run_id", runID.String()))
	return database, runID, nil
}
