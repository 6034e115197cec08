package main

import (
	"fmt"

	"github.com/growthaccelerator/domainctl/internal/logging"
	"github.com/growthaccelerator/domainctl/usecase/binding"
	"github.com/spf13/cobra"
)

func newCmdCheck() *cobra.Command {
	var monitor bool
	var token string

	cmd := &cobra.Command{
		Use:                "check",
		Short:              "Check DNS propagation of the binding records",
		Long:               "Query public DNS for the records the binding requires and report per-record state. With --monitor, poll until all records converge or the polling budget is exhausted. Never touches provider binding state.",
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

			policy, err := cfg.PollPolicy()
			if err != nil {
				return err
			}

			out, err := uc.Check(ctx, binding.CheckInput{
				Request:    cfg.Request(),
				Token:      token,
				HostSuffix: cfg.HostSuffix(),
				Policy:     policy,
				Monitor:    monitor,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, s := range out.States {
				status := "missing"
				if s.Matched {
					status = "ok"
				} else if s.ObservedValue != "" {
					status = fmt.Sprintf("mismatch (observed %q)", s.ObservedValue)
				}
				fmt.Fprintf(w, "%-5s %-40s %s\n", s.Record.Type, s.Record.Name, status)
			}
			if !out.Converged {
				logger.Warn(ctx, "records have not propagated", "domain", cfg.Binding.CustomDomain)
				return fmt.Errorf("DNS records for %s have not propagated yet", cfg.Binding.CustomDomain)
			}
			fmt.Fprintf(w, "all records propagated\n")
			return nil
		},
	}

	cmd.Flags().BoolVar(&monitor, "monitor", false, "Poll until records converge or the polling budget runs out")
	cmd.Flags().StringVar(&token, "token", "", "Verification token (default: fetched from the provider)")

	return cmd
}
