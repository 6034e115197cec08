package main

import (
	"github.com/growthaccelerator/domainctl/config/domainctlcfg"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// findFlag looks up a flag on the command or any of its parents.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getConfigPath extracts the config-file flag value from the command
// hierarchy.
func getConfigPath(cmd *cobra.Command) string {
	if f := findFlag(cmd, "config-file"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return domainctlcfg.DefaultConfigPath
}

// getDBURL extracts the db-url flag value from the command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	if f := findFlag(cmd, "db-url"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "sqlite:domainctl.db"
}
