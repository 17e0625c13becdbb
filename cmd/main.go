package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/hirematch/pkg/config"
	"github.com/Abraxas-365/hirematch/pkg/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "hirematch"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "hirematch matches candidates to saved searches and runs the hiring pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hirematch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error(err)
		logx.Sync()
		os.Exit(1)
	}
	logx.Sync()
}

// loadConfig reads the configuration and sets up logging from it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return nil, err
	}

	level := logx.ParseLevel(cfg.Log.Level)
	if viper.GetBool("debug") {
		level = logx.LevelDebug
	}
	logx.Init(cfg.Log.JSON || viper.GetBool("json"), level)

	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
