package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/easy-apply/internal/answers"
	"github.com/jonathan/easy-apply/internal/apply"
	"github.com/jonathan/easy-apply/internal/browser"
	"github.com/jonathan/easy-apply/internal/config"
	"github.com/jonathan/easy-apply/internal/observability"
	"github.com/jonathan/easy-apply/internal/perception"
	"github.com/jonathan/easy-apply/internal/resolve"
	"github.com/jonathan/easy-apply/internal/snapshot"
	"github.com/jonathan/easy-apply/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show how the current form step would be perceived and resolved",
	Long: `Detects the state of a saved HTML page (--html) or a live job page (--url), lists
every field the engine would see on the current step and how the answer store
resolves it. Nothing is written to the form.`,
	RunE: runInspect,
}

var (
	inspectHTML       string
	inspectURL        string
	inspectAnswers    string
	inspectOpen       bool
	inspectHeadless   bool
	inspectProfileDir string
	inspectSave       string
)

func init() {
	inspectCmd.Flags().StringVar(&inspectHTML, "html", "", "Saved HTML page to inspect (mutually exclusive with --url)")
	inspectCmd.Flags().StringVar(&inspectURL, "url", "", "Live page to inspect (mutually exclusive with --html)")
	inspectCmd.Flags().StringVarP(&inspectAnswers, "answers", "a", "", "Answer store to resolve against (optional)")
	inspectCmd.Flags().BoolVar(&inspectOpen, "open", false, "Open the Easy Apply form before inspecting a live page")
	inspectCmd.Flags().BoolVar(&inspectHeadless, "headless", false, "Run Chrome without a window")
	inspectCmd.Flags().StringVar(&inspectProfileDir, "profile-dir", config.Defaults().ProfileDir, "Chrome profile directory that keeps the login session")
	inspectCmd.Flags().StringVar(&inspectSave, "save", "", "Save the rendered live page to this file")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, _ []string) error {
	if (inspectHTML == "") == (inspectURL == "") {
		return fmt.Errorf("exactly one of --html or --url must be provided")
	}

	store := &answers.Store{}
	if inspectAnswers != "" {
		loaded, err := answers.Load(inspectAnswers)
		if err != nil {
			return fmt.Errorf("failed to load answers: %w", err)
		}
		store = loaded
	}
	resolver := resolve.New(store, resolve.Options{})
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if inspectHTML != "" {
		page, err := snapshot.LoadFile(inspectHTML)
		if err != nil {
			return err
		}
		return inspectPage(ctx, cmd.OutOrStdout(), page, resolver)
	}

	defaults := config.Defaults()
	page, err := browser.Launch(ctx, browser.Options{
		Headless:   inspectHeadless,
		ProfileDir: inspectProfileDir,
		Timeout:    defaults.Timeout(),
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer page.Close()

	if err := page.Navigate(ctx, inspectURL); err != nil {
		return err
	}
	if inspectOpen {
		if err := page.OpenForm(ctx); err != nil {
			return err
		}
	}
	if inspectSave != "" {
		html, err := page.HTML(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(inspectSave, []byte(html), 0o644); err != nil {
			return fmt.Errorf("failed to save page: %w", err)
		}
		logger.Info("saved page", zap.String("path", inspectSave))
	}
	return inspectPage(ctx, cmd.OutOrStdout(), page, resolver)
}

func inspectPage(ctx context.Context, out io.Writer, page ui.Inspector, resolver *resolve.Resolver) error {
	report, err := apply.Inspect(ctx, page, resolver, perception.Options{}, logger)
	if err != nil {
		return fmt.Errorf("failed to inspect page: %w", err)
	}
	observability.NewPrinter(out).PrintInspection(report.State, report.Rows)
	return nil
}
