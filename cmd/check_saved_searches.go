package main

import (
	"fmt"
	"io"

	"github.com/Abraxas-365/hirematch/recruitment/savedsearch"
	"github.com/spf13/cobra"
)

var checkSavedSearchesCmd = &cobra.Command{
	Use:   "check-saved-searches",
	Short: "Check saved searches for new matches and send notifications",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		container, err := NewContainer(ctx, cfg)
		if err != nil {
			return err
		}
		defer container.Close()

		report, err := container.SavedSearchService.CheckSavedSearches(ctx, dryRun)
		if report != nil {
			printReport(cmd.OutOrStdout(), report)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(checkSavedSearchesCmd)

	checkSavedSearchesCmd.Flags().Bool("dry-run", false, "show what would be done without actually sending notifications")
}

// printReport writes one line per search with new matches and a total
func printReport(w io.Writer, report *savedsearch.CheckReport) {
	for _, r := range report.Results {
		switch {
		case report.DryRun:
			fmt.Fprintf(w, "Would notify %s about %d new matches for search '%s'\n", r.Recruiter, r.NewMatches, r.SearchName)
		case r.Delivered:
			fmt.Fprintf(w, "Notified %s about %d new matches for search '%s'\n", r.Recruiter, r.NewMatches, r.SearchName)
		default:
			fmt.Fprintf(w, "Failed to notify %s about %d new matches for search '%s': %s\n", r.Recruiter, r.NewMatches, r.SearchName, r.Error)
		}
	}

	if report.DryRun {
		fmt.Fprintf(w, "DRY RUN: Would send %d notifications total\n", report.Total)
		return
	}
	fmt.Fprintf(w, "Sent %d notifications total\n", report.Total)
}
