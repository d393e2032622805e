package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	settings, err := NewSettings()
	if err != nil {
		BackupLogger.Fatalf("Failed to read settings from environment: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd(settings)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app carries state shared by all subcommands.
type app struct {
	settings       Settings
	loggingOptions LoggingOptions
	logger         *zap.SugaredLogger
}

func newRootCmd(settings Settings) *cobra.Command {
	a := &app{settings: settings}
	rootCmd := &cobra.Command{
		Use:           "redisctl",
		Short:         "Track asynchronous Redis Cloud and Redis Enterprise operations",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	a.addCLIFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(cloudCmd(a))
	rootCmd.AddCommand(enterpriseCmd(a))
	return rootCmd
}

func (a *app) addCLIFlags(fs *pflag.FlagSet) {
	a.loggingOptions.AddCLIFlags(fs)
	fs.StringVarP(&a.settings.Output, "output", "o", a.settings.Output, "Output format: json or yaml")
	fs.IntVar(&a.settings.FetchRetries, "fetch-retries", a.settings.FetchRetries, "Extra attempts for a failed status check while waiting")

	fs.StringVar(&a.settings.CloudAPIKey, "api-key", a.settings.CloudAPIKey, "Redis Cloud API key")
	fs.StringVar(&a.settings.CloudAPISecret, "api-secret", a.settings.CloudAPISecret, "Redis Cloud API secret")
	fs.StringVar(&a.settings.CloudAPIURL, "api-url", a.settings.CloudAPIURL, "Redis Cloud API base URL")

	fs.StringVar(&a.settings.EnterpriseURL, "enterprise-url", a.settings.EnterpriseURL, "Redis Enterprise cluster API URL")
	fs.StringVar(&a.settings.EnterpriseUser, "enterprise-user", a.settings.EnterpriseUser, "Redis Enterprise username")
	fs.StringVar(&a.settings.EnterprisePassword, "enterprise-password", a.settings.EnterprisePassword, "Redis Enterprise password")
	fs.BoolVar(&a.settings.EnterpriseInsecure, "insecure", a.settings.EnterpriseInsecure, "Skip TLS certificate verification for Redis Enterprise")
}

func (a *app) init() error {
	if err := validateOutput(a.settings.Output); err != nil {
		return err
	}
	logger, err := a.loggingOptions.CreateLogger()
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}
