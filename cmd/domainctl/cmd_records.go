package main

import (
	"fmt"

	"github.com/growthaccelerator/domainctl/usecase/binding"
	"github.com/spf13/cobra"
)

func newCmdRecords() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:                "records",
		Short:              "Print the DNS records the binding requires",
		Long:               "Derive and print the DNS records an operator must publish for the configured binding: the TXT ownership proof and the CNAME records.",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, cfg, err := buildBindingUseCase(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			req := cfg.Request()

			if token == "" || req.AppHostname == "" {
				t, appHostname, err := uc.Site.VerificationToken(ctx)
				if err != nil {
					return fmt.Errorf("fetch verification token: %w", err)
				}
				if token == "" {
					token = t
				}
				if req.AppHostname == "" {
					req.AppHostname = appHostname
				}
			}

			records, err := binding.DeriveRecords(binding.DeriveInput{
				Request:    req,
				Token:      token,
				HostSuffix: cfg.HostSuffix(),
			})
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintln(cmd.OutOrStdout(), binding.FormatRecord(r))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Verification token (default: fetched from the provider)")

	return cmd
}
