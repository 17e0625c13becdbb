package main

import (
	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/Abraxas-365/hirematch/recruitment/savedsearch/notifier"
	"github.com/spf13/cobra"
)

var notifierCmd = &cobra.Command{
	Use:   "notifier",
	Short: "Run the saved search check on the configured schedule",
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		scheduler := notifier.New(container.SavedSearchService, cfg.Notifier.Schedule, cfg.Notifier.RunOnStartup)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		logx.Info("Shutting down notifier...")
		scheduler.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifierCmd)
}
