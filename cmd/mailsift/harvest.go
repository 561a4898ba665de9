package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/crawler"
	"github.com/mailsift/mailsift/internal/log"
	"github.com/mailsift/mailsift/internal/model"
	"github.com/mailsift/mailsift/internal/report"
)

// NewHarvestCmd creates the harvest command.
func NewHarvestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest <url>",
		Short: "Crawl a website and collect its contact email addresses",
		Long: `Harvest crawls the website at the given URL and collects the email
addresses it publishes, from mailto links, meta tags, and page text.

The crawl stays on the site's own domain. It stops when the page budget
or the email budget is reached, whichever comes first. A bare domain is
accepted; https is assumed when no scheme is given.

Examples:
  # Harvest with the default budgets
  mailsift harvest example.com

  # A deeper crawl that collects more addresses
  mailsift harvest --max-pages 100 --max-emails 10 example.com

  # Disable contact-path seeding
  mailsift harvest --fast=false example.com

  # Output a JSON report to a file
  mailsift harvest --json -o report.json example.com

Configuration file (.mailsift) example:
  fast_seeds:
    - /contact
    - /kontakt
    - /imprint
  user_agent: "mailsift/1.0 (ops@example.org)"`,
		Args: cobra.ExactArgs(1),
		RunE: runHarvestCmd,
	}

	// Budget flags
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to visit")
	cmd.Flags().IntP("max-emails", "e", config.DefaultMaxEmails,
		"Number of addresses that stops the crawl")
	cmd.Flags().IntP("concurrency", "w", config.DefaultConcurrency,
		"Number of concurrent workers")
	cmd.Flags().Bool("fast", true,
		"Seed well-known contact paths ahead of organic discovery")

	// Fetch behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultFetchTimeout,
		"Timeout for each page fetch")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .mailsift in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runHarvestCmd executes the harvest command.
func runHarvestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with address masking
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runHarvest(ctx, cmd, cfg, args[0], logger)
}

// buildConfig creates a Config from cobra command flags and the optional
// seed file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Budgets.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.Budgets.MaxEmails, err = cmd.Flags().GetInt("max-emails")
	if err != nil {
		return nil, err
	}

	cfg.Budgets.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.Budgets.Fast, err = cmd.Flags().GetBool("fast")
	if err != nil {
		return nil, err
	}

	cfg.FetchTimeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load overrides from the seed file.
	// If the user explicitly specified a path, error when it is missing;
	// otherwise silently run on the defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		overrides, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		overrides.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runHarvest executes the crawl and writes the report.
func runHarvest(ctx context.Context, cmd *cobra.Command, cfg *config.Config, target string, logger *slog.Logger) error {
	c := crawler.New(cfg, crawler.WithLogger(logger))

	fmt.Fprintf(cmd.OutOrStdout(), "Harvesting %s...\n", target)
	startTime := time.Now()

	result, err := c.Harvest(ctx, target, cfg.Budgets)
	if err != nil {
		return fmt.Errorf("cannot harvest %q: %w", target, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Harvest completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))

	return outputReport(cfg, result)
}

// outputReport outputs the crawl result in the requested format.
func outputReport(cfg *config.Config, result *model.Result) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with owner-only permissions;
		// harvested addresses are personal data.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full result with version metadata)
	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
		_, err := writer.Write(result)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(result)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(result)
	return err
}
