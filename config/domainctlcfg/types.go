// Package domainctlcfg defines the configuration schema (structs) for
// domainctl.yml. This package is intended for YAML -> struct
// deserialization; loading helpers and validation live alongside.
package domainctlcfg

// DefaultConfigPath is the config file looked up when -f is not given.
const DefaultConfigPath = "domainctl.yml"

// Root is the root structure of domainctl.yml.
type Root struct {
	Version  string   `yaml:"version"`
	Provider Provider `yaml:"provider"`
	Binding  Binding  `yaml:"binding"`
	DNS      DNS      `yaml:"dns"`
	Poll     Poll     `yaml:"poll"`
	Health   Health   `yaml:"health"`
}

// Provider selects and configures the resource provider driver.
type Provider struct {
	Name     string            `yaml:"name"`
	Driver   string            `yaml:"driver"`   // e.g. "appsvc"
	Settings map[string]string `yaml:"settings"` // driver-specific settings
}

// Binding describes the custom domain to bind.
type Binding struct {
	CustomDomain   string `yaml:"custom_domain"`
	SubdomainLabel string `yaml:"subdomain_label,omitempty"` // default: leftmost label of custom_domain
	AppHostname    string `yaml:"app_hostname,omitempty"`    // default: fetched from the provider
	CDNHostname    string `yaml:"cdn_hostname,omitempty"`
	HostSuffix     string `yaml:"host_suffix,omitempty"` // default: .azurewebsites.net
}

// DNS configures the public resolver used for propagation polling and,
// optionally, the Azure-hosted zones verification records may be published
// into.
type DNS struct {
	Resolver        string   `yaml:"resolver,omitempty"` // host[:port], default 8.8.8.8:53
	TTL             uint32   `yaml:"ttl,omitempty"`
	ZoneResourceIDs []string `yaml:"zone_resource_ids,omitempty"`
}

// Poll bounds the propagation and certificate polling sessions.
// Durations use Go syntax ("15s", "30m").
type Poll struct {
	Interval     string `yaml:"interval,omitempty"`
	MaxAttempts  int    `yaml:"max_attempts,omitempty"`
	Deadline     string `yaml:"deadline,omitempty"`
	QueryTimeout string `yaml:"query_timeout,omitempty"`
}

// Health configures the post-binding HTTPS health probe.
type Health struct {
	Path    string `yaml:"path,omitempty"`    // default /health
	Timeout string `yaml:"timeout,omitempty"` // default 10s
}
