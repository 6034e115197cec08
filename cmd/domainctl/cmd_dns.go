package main

import (
	"fmt"

	"github.com/growthaccelerator/domainctl/internal/logging"
	"github.com/growthaccelerator/domainctl/usecase/dnszone"
	"github.com/spf13/cobra"
)

func newCmdDNS() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "dns",
		Short:              "Manage binding records in a hosted DNS zone",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdDNSApply(), newCmdDNSDestroy())
	return cmd
}

// zoneInput builds the shared apply/destroy input from config and flags.
func zoneInput(cmd *cobra.Command, token string, strict, dryRun bool) (*dnszone.UseCase, *dnszone.ApplyInput, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	drv, err := buildDriver(cfg)
	if err != nil {
		return nil, nil, err
	}
	uc := &dnszone.UseCase{Zone: drv}

	req := cfg.Request()
	if token == "" || req.AppHostname == "" {
		t, appHostname, err := drv.VerificationToken(cmd.Context())
		if err != nil {
			return nil, nil, fmt.Errorf("fetch verification token: %w", err)
		}
		if token == "" {
			token = t
		}
		if req.AppHostname == "" {
			req.AppHostname = appHostname
		}
	}

	return uc, &dnszone.ApplyInput{
		Request:    req,
		Token:      token,
		HostSuffix: cfg.HostSuffix(),
		TTL:        cfg.DNS.TTL,
		Strict:     strict,
		DryRun:     dryRun,
	}, nil
}

func reportRecordResults(cmd *cobra.Command, results []dnszone.RecordResult, verb string) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	for _, r := range results {
		switch r.Action {
		case "planned":
			logger.Info(ctx, "would "+verb+" DNS record", "fqdn", r.FQDN, "type", r.Type, "message", r.Message)
		case "failed":
			logger.Error(ctx, "failed to "+verb+" DNS record", "fqdn", r.FQDN, "type", r.Type, "error", r.Message)
		default:
			logger.Info(ctx, verb+" DNS record", "fqdn", r.FQDN, "type", r.Type)
		}
	}
}

func newCmdDNSApply() *cobra.Command {
	var strict bool
	var dryRun bool
	var token string

	cmd := &cobra.Command{
		Use:                "apply",
		Short:              "Publish the binding records in the hosted zone",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, in, err := zoneInput(cmd, token, strict, dryRun)
			if err != nil {
				return err
			}
			out, err := uc.Apply(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to apply DNS records: %w", err)
			}
			reportRecordResults(cmd, out.Applied, "apply")
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat record update failures as errors")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be changed without applying")
	cmd.Flags().StringVar(&token, "token", "", "Verification token (default: fetched from the provider)")

	return cmd
}

func newCmdDNSDestroy() *cobra.Command {
	var strict bool
	var dryRun bool
	var token string

	cmd := &cobra.Command{
		Use:                "destroy",
		Short:              "Remove the binding records from the hosted zone",
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, in, err := zoneInput(cmd, token, strict, dryRun)
			if err != nil {
				return err
			}
			out, err := uc.Destroy(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to destroy DNS records: %w", err)
			}
			reportRecordResults(cmd, out.Deleted, "delete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat record delete failures as errors")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be deleted without deleting")
	cmd.Flags().StringVar(&token, "token", "", "Verification token (default: fetched from the provider)")

	return cmd
}
