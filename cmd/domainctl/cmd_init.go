package main

import (
	"fmt"
	"os"

	"github.com/growthaccelerator/domainctl/config/domainctlcfg"
	"github.com/spf13/cobra"
)

func newCmdInit() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter domainctl.yml with placeholder provider settings.

Edit the generated file before running other commands: at minimum the
Azure subscription, resource group, app name, and the custom domain.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := getConfigPath(cmd)
			if forceFlag {
				if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
					return err
				}
			}
			if err := domainctlcfg.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file")

	return cmd
}
