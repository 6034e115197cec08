package main

import (
	"context"
	"io"
	"os"

	"log/slog"

	_ "github.com/growthaccelerator/domainctl/adapters/drivers/provider/appsvc"
	"github.com/growthaccelerator/domainctl/config/domainctlcfg"
	"github.com/growthaccelerator/domainctl/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "domainctl",
		Short:   "Custom domain and certificate binding CLI",
		Long:    "domainctl binds custom domains to hosted web apps: ownership verification, DNS propagation polling, managed certificates, TLS, and health checks.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := os.Getenv("DOMAINCTL_CONFIG")
	if defaultConfig == "" {
		defaultConfig = domainctlcfg.DefaultConfigPath
	}
	cmd.PersistentFlags().StringP("config-file", "f", defaultConfig, "Config file path (env DOMAINCTL_CONFIG)")

	defaultDB := os.Getenv("DOMAINCTL_DB_URL")
	if defaultDB == "" {
		defaultDB = "sqlite:domainctl.db"
	}
	cmd.PersistentFlags().String("db-url", defaultDB, "Run history database URL (env DOMAINCTL_DB_URL) (sqlite:/path/to.db | none)")

	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env DOMAINCTL_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-file", "none", "Also append logs to a file (none | - | /path/to.log)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("DOMAINCTL_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		dest, _ := c.Flags().GetString("log-file")
		var l logging.Logger
		var err error
		if dest == "none" || dest == "" {
			l, err = logging.New(format, slog.LevelInfo)
		} else {
			rootLogFile, err = logging.NewLogFile(dest)
			if err != nil {
				return err
			}
			l, err = logging.NewWithWriter(format, slog.LevelInfo, io.MultiWriter(os.Stderr, rootLogFile.Writer()))
		}
		if err != nil {
			return err
		}
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdInit())
	cmd.AddCommand(newCmdProvision())
	cmd.AddCommand(newCmdRecords())
	cmd.AddCommand(newCmdCheck())
	cmd.AddCommand(newCmdBind())
	cmd.AddCommand(newCmdDNS())
	cmd.AddCommand(newCmdHistory())
	return cmd
}

// rootLogFile holds the optional log file opened in PersistentPreRunE so
// main can close it after execution.
var rootLogFile *logging.LogFile

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if rootLogFile != nil {
		_ = rootLogFile.Close()
	}
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
