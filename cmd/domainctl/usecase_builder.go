package main

import (
	"fmt"
	"strings"

	providerdrv "github.com/growthaccelerator/domainctl/adapters/drivers/provider"
	"github.com/growthaccelerator/domainctl/adapters/health"
	"github.com/growthaccelerator/domainctl/adapters/resolver/dnsclient"
	"github.com/growthaccelerator/domainctl/config/domainctlcfg"
	"github.com/growthaccelerator/domainctl/usecase/binding"
	"github.com/growthaccelerator/domainctl/usecase/provision"
	"github.com/spf13/cobra"
)

// loadConfig reads and validates the config file for the command.
func loadConfig(cmd *cobra.Command) (*domainctlcfg.Root, error) {
	path := getConfigPath(cmd)
	cfg, err := domainctlcfg.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// buildDriver instantiates the provider driver named by the config. Zone
// resource IDs from the dns section are merged into the driver settings
// unless the settings already carry them.
func buildDriver(cfg *domainctlcfg.Root) (providerdrv.Driver, error) {
	factory, ok := providerdrv.GetDriverFactory(cfg.Provider.Driver)
	if !ok {
		return nil, fmt.Errorf("unknown provider driver: %s (available: %s)",
			cfg.Provider.Driver, strings.Join(providerdrv.Names(), ", "))
	}

	settings := make(map[string]string, len(cfg.Provider.Settings)+1)
	for k, v := range cfg.Provider.Settings {
		settings[k] = v
	}
	if len(cfg.DNS.ZoneResourceIDs) > 0 && settings["AZURE_DNS_ZONE_RESOURCE_IDS"] == "" {
		settings["AZURE_DNS_ZONE_RESOURCE_IDS"] = strings.Join(cfg.DNS.ZoneResourceIDs, ",")
	}

	drv, err := factory(settings)
	if err != nil {
		return nil, fmt.Errorf("create driver %s: %w", cfg.Provider.Driver, err)
	}
	return drv, nil
}

// buildBindingUseCase wires the binding workflow from config and flags.
func buildBindingUseCase(cmd *cobra.Command) (*binding.UseCase, *domainctlcfg.Root, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	drv, err := buildDriver(cfg)
	if err != nil {
		return nil, nil, err
	}
	runs, err := buildRunsRepository(cmd)
	if err != nil {
		return nil, nil, err
	}
	timeout, err := cfg.HealthTimeout()
	if err != nil {
		return nil, nil, err
	}
	return &binding.UseCase{
		Site:     drv,
		Resolver: dnsclient.New(cfg.ResolverAddr()),
		Health:   health.New(timeout),
		Runs:     runs,
	}, cfg, nil
}

// buildProvisionUseCase wires web app provisioning.
func buildProvisionUseCase(cmd *cobra.Command) (*provision.UseCase, *domainctlcfg.Root, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	drv, err := buildDriver(cfg)
	if err != nil {
		return nil, nil, err
	}
	return &provision.UseCase{Provision: drv}, cfg, nil
}
