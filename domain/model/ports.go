package model

import "context"

// SitePort is the resource provider client for the web app being bound.
// Implementations are expected to retry transient failures internally and
// to treat repeat requests for an already-bound or already-issued resource
// as a no-op.
type SitePort interface {
	// VerificationToken returns the domain verification token for the app,
	// along with the app's provider-assigned hostname.
	VerificationToken(ctx context.Context) (token string, appHostname string, err error)
	// BindCustomDomain registers the custom domain binding. A provider-side
	// conflict surfaces as ErrDomainBinding.
	BindCustomDomain(ctx context.Context, customDomain string) error
	// RequestManagedCertificate requests a managed certificate for the bound
	// domain and returns an opaque handle for status polling.
	RequestManagedCertificate(ctx context.Context, customDomain string) (handle string, err error)
	// CertificateStatus reports issuance progress for a certificate handle.
	CertificateStatus(ctx context.Context, handle string) (CertificateState, error)
	// BindTLS binds the issued certificate to the app's TLS listener for the
	// custom domain.
	BindTLS(ctx context.Context, customDomain, handle string) error
}

// Resolver queries public DNS. A missing record (NXDOMAIN or empty answer)
// is reported as ErrRecordNotFound; any other error is transient.
type Resolver interface {
	Resolve(ctx context.Context, name string, rtype DNSRecordType) ([]string, error)
}

// HealthChecker probes an HTTPS endpoint. A nil error means the endpoint
// answered 2xx within the checker's timeout and, when the response body is
// structured, reported a healthy status.
type HealthChecker interface {
	Check(ctx context.Context, url string) error
}

// ZonePort publishes record sets in an operator-owned hosted DNS zone.
// Only the zone adapter writes DNS; the propagation poller never does.
type ZonePort interface {
	ZoneApply(ctx context.Context, rset DNSRecordSet) error
	ZoneDelete(ctx context.Context, rset DNSRecordSet) error
}

// ProvisionPort creates or updates the hosted web app itself.
type ProvisionPort interface {
	// EnsureWebApp provisions the resource group, hosting plan, and web app
	// if absent, returning the app's provider-assigned hostname.
	EnsureWebApp(ctx context.Context) (appHostname string, err error)
}
