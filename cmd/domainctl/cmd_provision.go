package main

import (
	"fmt"

	"github.com/growthaccelerator/domainctl/usecase/provision"
	"github.com/spf13/cobra"
)

func newCmdProvision() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "provision",
		Short:              "Provision the web app infrastructure",
		Long:               "Create the resource group, hosting plan, and web app if they do not exist, and print the app's assigned hostname.",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := buildProvisionUseCase(cmd)
			if err != nil {
				return err
			}
			out, err := uc.Create(cmd.Context(), &provision.CreateInput{})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.AppHostname)
			return nil
		},
	}
	return cmd
}
