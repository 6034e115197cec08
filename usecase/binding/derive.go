package binding

import (
	"fmt"
	"strings"

	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/growthaccelerator/domainctl/internal/dnsname"
)

// DeriveInput holds parameters for verification record derivation.
type DeriveInput struct {
	Request model.DomainBindingRequest
	Token   string // domain verification token from the resource provider
	// HostSuffix, when set, is the provider suffix the app hostname must
	// carry (e.g. ".azurewebsites.net").
	HostSuffix string
}

// DeriveRecords produces the ordered set of DNS records the operator must
// publish: a TXT ownership proof at asuid.<customDomain>, a CNAME from the
// custom domain to the app hostname, and optionally a CNAME for the cdn
// label when a CDN hostname is configured. Pure function of its inputs.
func DeriveRecords(in DeriveInput) ([]model.VerificationRecord, error) {
	req := in.Request

	domainName := dnsname.Normalize(req.CustomDomain)
	if err := dnsname.Validate(domainName); err != nil {
		return nil, fmt.Errorf("%w: custom domain %q: %v", model.ErrInvalidDomain, req.CustomDomain, err)
	}
	appHostname := dnsname.Normalize(req.AppHostname)
	if err := dnsname.Validate(appHostname); err != nil {
		return nil, fmt.Errorf("%w: app hostname %q: %v", model.ErrInvalidDomain, req.AppHostname, err)
	}
	if !dnsname.HasSuffix(appHostname, in.HostSuffix) {
		return nil, fmt.Errorf("%w: app hostname %q does not end in %q", model.ErrInvalidDomain, req.AppHostname, in.HostSuffix)
	}
	if in.Token == "" {
		return nil, fmt.Errorf("%w: empty verification token", model.ErrInvalidDomain)
	}

	label, apex := dnsname.FirstLabel(domainName)
	if req.SubdomainLabel != "" && req.SubdomainLabel != label {
		return nil, fmt.Errorf("%w: subdomain label %q is not the leftmost label of %q", model.ErrInvalidDomain, req.SubdomainLabel, domainName)
	}

	records := []model.VerificationRecord{
		{Type: model.DNSRecordTypeTXT, Name: "asuid." + domainName, ExpectedValue: in.Token},
		{Type: model.DNSRecordTypeCNAME, Name: domainName, ExpectedValue: appHostname},
	}

	if req.CDNHostname != "" {
		cdnHostname := dnsname.Normalize(req.CDNHostname)
		if err := dnsname.Validate(cdnHostname); err != nil {
			return nil, fmt.Errorf("%w: cdn hostname %q: %v", model.ErrInvalidDomain, req.CDNHostname, err)
		}
		if apex == "" {
			return nil, fmt.Errorf("%w: custom domain %q has no apex for a cdn record", model.ErrInvalidDomain, domainName)
		}
		records = append(records, model.VerificationRecord{
			Type:          model.DNSRecordTypeCNAME,
			Name:          "cdn." + apex,
			ExpectedValue: cdnHostname,
		})
	}

	return records, nil
}

// FormatRecord renders a record in zone-file style for operator output.
func FormatRecord(r model.VerificationRecord) string {
	value := r.ExpectedValue
	if r.Type == model.DNSRecordTypeTXT {
		value = `"` + value + `"`
	}
	return strings.Join([]string{r.Name, string(r.Type), value}, "  ")
}
