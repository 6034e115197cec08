package main

import (
	"fmt"

	"github.com/growthaccelerator/domainctl/internal/logging"
	"github.com/growthaccelerator/domainctl/usecase/binding"
	"github.com/spf13/cobra"
)

func newCmdBind() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "bind",
		Short:              "Run the full domain binding workflow",
		Long:               "Bind the configured custom domain to the web app: verify ownership via DNS, wait for propagation, bind the domain, request a managed certificate, bind TLS, and probe the HTTPS endpoint.",
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
			logger := logging.FromContext(ctx)

			req := cfg.Request()
			policy, err := cfg.PollPolicy()
			if err != nil {
				return err
			}

			logger.Info(ctx, "bind start", "domain", req.CustomDomain, "app_hostname", req.AppHostname)

			out, err := uc.Run(ctx, binding.RunInput{
				Request:    req,
				Policy:     policy,
				HostSuffix: cfg.HostSuffix(),
				HealthURL:  "https://" + req.CustomDomain + cfg.HealthPath(),
			})
			if err != nil {
				return fmt.Errorf("bind %s: %w", req.CustomDomain, err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "domain:        %s\n", out.Run.CustomDomain)
			fmt.Fprintf(w, "verified:      %v\n", out.Result.DomainVerified)
			fmt.Fprintf(w, "certificate:   %v\n", out.Result.CertificateIssued)
			fmt.Fprintf(w, "tls bound:     %v\n", out.Result.TLSBound)
			fmt.Fprintf(w, "health check:  %v\n", out.Result.HealthCheckPassed)
			if out.Result.FailureReason != "" {
				fmt.Fprintf(w, "note:          %s\n", out.Result.FailureReason)
			}
			if out.Run.ID != "" {
				fmt.Fprintf(w, "run:           %s\n", out.Run.ID)
			}
			return nil
		},
	}
	return cmd
}
