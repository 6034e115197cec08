package domainctlcfg

import (
	"fmt"
	"net"
	"time"

	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/growthaccelerator/domainctl/internal/dnsname"
)

const (
	defaultHostSuffix   = ".azurewebsites.net"
	defaultResolver     = "8.8.8.8:53"
	defaultInterval     = 15 * time.Second
	defaultMaxAttempts  = 120
	defaultDeadline     = 30 * time.Minute
	defaultQueryTimeout = 5 * time.Second
	defaultHealthPath   = "/health"
	defaultHealthWait   = 10 * time.Second
)

// Validate checks the configuration for structural problems that would make
// every command fail. Driver-specific settings are validated by the driver
// factory.
func (r *Root) Validate() error {
	if r.Provider.Driver == "" {
		return fmt.Errorf("provider.driver is required")
	}
	if r.Binding.CustomDomain == "" {
		return fmt.Errorf("binding.custom_domain is required")
	}
	if err := dnsname.Validate(r.Binding.CustomDomain); err != nil {
		return fmt.Errorf("binding.custom_domain: %w", err)
	}
	if r.Binding.AppHostname != "" {
		if err := dnsname.Validate(r.Binding.AppHostname); err != nil {
			return fmt.Errorf("binding.app_hostname: %w", err)
		}
	}
	if r.Binding.CDNHostname != "" {
		if err := dnsname.Validate(r.Binding.CDNHostname); err != nil {
			return fmt.Errorf("binding.cdn_hostname: %w", err)
		}
	}
	if _, err := r.PollPolicy(); err != nil {
		return err
	}
	if _, err := r.HealthTimeout(); err != nil {
		return err
	}
	return nil
}

// Request builds the immutable binding request from the configuration.
// The subdomain label defaults to the leftmost label of the custom domain.
func (r *Root) Request() model.DomainBindingRequest {
	label := r.Binding.SubdomainLabel
	if label == "" {
		label, _ = dnsname.FirstLabel(r.Binding.CustomDomain)
	}
	return model.DomainBindingRequest{
		CustomDomain:   dnsname.Normalize(r.Binding.CustomDomain),
		AppHostname:    dnsname.Normalize(r.Binding.AppHostname),
		SubdomainLabel: label,
		CDNHostname:    dnsname.Normalize(r.Binding.CDNHostname),
	}
}

// HostSuffix returns the provider hostname suffix app hostnames must carry.
func (r *Root) HostSuffix() string {
	if r.Binding.HostSuffix != "" {
		return r.Binding.HostSuffix
	}
	return defaultHostSuffix
}

// ResolverAddr returns the public resolver address as host:port.
func (r *Root) ResolverAddr() string {
	addr := r.DNS.Resolver
	if addr == "" {
		addr = defaultResolver
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "53")
	}
	return addr
}

// PollPolicy parses the poll section into a model.PollPolicy, applying
// defaults for omitted fields.
func (r *Root) PollPolicy() (model.PollPolicy, error) {
	p := model.PollPolicy{
		Interval:     defaultInterval,
		MaxAttempts:  defaultMaxAttempts,
		Deadline:     defaultDeadline,
		QueryTimeout: defaultQueryTimeout,
	}
	var err error
	if p.Interval, err = parseDuration("poll.interval", r.Poll.Interval, defaultInterval); err != nil {
		return p, err
	}
	if p.Deadline, err = parseDuration("poll.deadline", r.Poll.Deadline, defaultDeadline); err != nil {
		return p, err
	}
	if p.QueryTimeout, err = parseDuration("poll.query_timeout", r.Poll.QueryTimeout, defaultQueryTimeout); err != nil {
		return p, err
	}
	if r.Poll.MaxAttempts != 0 {
		if r.Poll.MaxAttempts < 0 {
			return p, fmt.Errorf("poll.max_attempts must be positive")
		}
		p.MaxAttempts = r.Poll.MaxAttempts
	}
	if p.QueryTimeout > p.Interval {
		p.QueryTimeout = p.Interval
	}
	return p, nil
}

// HealthPath returns the health probe path.
func (r *Root) HealthPath() string {
	if r.Health.Path != "" {
		return r.Health.Path
	}
	return defaultHealthPath
}

// HealthTimeout parses the health probe timeout.
func (r *Root) HealthTimeout() (time.Duration, error) {
	return parseDuration("health.timeout", r.Health.Timeout, defaultHealthWait)
}

func parseDuration(field, value string, def time.Duration) (time.Duration, error) {
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return d, nil
}
