// Package main provides the entry point for the mailsift CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mailsift.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mailsift",
		Short: "Harvest publicly listed contact emails from a website",
		Long: `Mailsift crawls a single website and collects the contact email
addresses it publishes, in mailto links, meta tags, and page text.

The crawl never leaves the site's own domain and stops as soon as the
page or email budget is reached. Budgets outside their safe ranges are
clamped, not rejected.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewHarvestCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
