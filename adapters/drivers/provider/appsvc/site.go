package appsvc

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/growthaccelerator/domainctl/internal/logging"
)

func (d *driver) webAppsClient() (*armappservice.WebAppsClient, error) {
	client, err := armappservice.NewWebAppsClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create web apps client: %w", err)
	}
	return client, nil
}

func (d *driver) certificatesClient() (*armappservice.CertificatesClient, error) {
	client, err := armappservice.NewCertificatesClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("create certificates client: %w", err)
	}
	return client, nil
}

// VerificationToken fetches the site's custom domain verification ID and its
// default hostname.
func (d *driver) VerificationToken(ctx context.Context) (string, string, error) {
	client, err := d.webAppsClient()
	if err != nil {
		return "", "", err
	}
	resp, err := client.Get(ctx, d.AzureResourceGroupName, d.AppName, nil)
	if err != nil {
		return "", "", fmt.Errorf("get web app %s: %w", d.AppName, err)
	}
	props := resp.Properties
	if props == nil || props.CustomDomainVerificationID == nil || *props.CustomDomainVerificationID == "" {
		return "", "", fmt.Errorf("web app %s has no custom domain verification ID", d.AppName)
	}
	hostname := ""
	if props.DefaultHostName != nil {
		hostname = *props.DefaultHostName
	}
	return *props.CustomDomainVerificationID, hostname, nil
}

// BindCustomDomain registers the host name binding. An existing binding for
// the same domain is treated as success; the ARM API is create-or-update.
func (d *driver) BindCustomDomain(ctx context.Context, customDomain string) error {
	log := logging.FromContext(ctx)

	client, err := d.webAppsClient()
	if err != nil {
		return err
	}

	if _, err := client.GetHostNameBinding(ctx, d.AzureResourceGroupName, d.AppName, customDomain, nil); err == nil {
		log.Info(ctx, "custom domain already bound", "domain", customDomain, "app", d.AppName)
		return nil
	}

	binding := armappservice.HostNameBinding{
		Properties: &armappservice.HostNameBindingProperties{
			SiteName:                    to.Ptr(d.AppName),
			HostNameType:                to.Ptr(armappservice.HostNameTypeVerified),
			CustomHostNameDNSRecordType: to.Ptr(armappservice.CustomHostNameDNSRecordTypeCName),
		},
	}

	log.Info(ctx, "binding custom domain", "domain", customDomain, "app", d.AppName)
	if _, err := client.CreateOrUpdateHostNameBinding(ctx, d.AzureResourceGroupName, d.AppName, customDomain, binding, nil); err != nil {
		if isConflict(err) {
			return fmt.Errorf("%w: %s: %v", model.ErrDomainBinding, customDomain, err)
		}
		return fmt.Errorf("create host name binding for %s: %w", customDomain, err)
	}
	return nil
}

// RequestManagedCertificate creates (or refreshes) a free App Service
// managed certificate for the bound domain and returns its resource name as
// the polling handle.
func (d *driver) RequestManagedCertificate(ctx context.Context, customDomain string) (string, error) {
	log := logging.FromContext(ctx)

	apps, err := d.webAppsClient()
	if err != nil {
		return "", err
	}
	site, err := apps.Get(ctx, d.AzureResourceGroupName, d.AppName, nil)
	if err != nil {
		return "", fmt.Errorf("get web app %s: %w", d.AppName, err)
	}
	if site.Properties == nil || site.Properties.ServerFarmID == nil {
		return "", fmt.Errorf("web app %s has no hosting plan", d.AppName)
	}
	location := d.AzureLocation
	if site.Location != nil {
		location = *site.Location
	}

	certs, err := d.certificatesClient()
	if err != nil {
		return "", err
	}
	name := certificateName(customDomain, d.AppName)

	log.Info(ctx, "requesting managed certificate", "domain", customDomain, "certificate", name)
	_, err = certs.CreateOrUpdate(ctx, d.AzureResourceGroupName, name, armappservice.AppCertificate{
		Location: to.Ptr(location),
		Properties: &armappservice.AppCertificateProperties{
			ServerFarmID:  site.Properties.ServerFarmID,
			CanonicalName: to.Ptr(customDomain),
		},
	}, nil)
	if err != nil && !isAccepted(err) {
		return "", fmt.Errorf("create managed certificate for %s: %w", customDomain, err)
	}
	return name, nil
}

// CertificateStatus reports issuance progress: a certificate resource with a
// thumbprint is issued, a missing or thumbprint-less one is still pending.
func (d *driver) CertificateStatus(ctx context.Context, handle string) (model.CertificateState, error) {
	certs, err := d.certificatesClient()
	if err != nil {
		return model.CertificateStatePending, err
	}
	resp, err := certs.Get(ctx, d.AzureResourceGroupName, handle, nil)
	if err != nil {
		if isNotFound(err) {
			return model.CertificateStatePending, nil
		}
		return model.CertificateStatePending, fmt.Errorf("get certificate %s: %w", handle, err)
	}
	if resp.Properties != nil && resp.Properties.Thumbprint != nil && *resp.Properties.Thumbprint != "" {
		return model.CertificateStateIssued, nil
	}
	return model.CertificateStatePending, nil
}

// BindTLS enables SNI SSL on the host name binding using the issued
// certificate's thumbprint.
func (d *driver) BindTLS(ctx context.Context, customDomain, handle string) error {
	log := logging.FromContext(ctx)

	certs, err := d.certificatesClient()
	if err != nil {
		return err
	}
	cert, err := certs.Get(ctx, d.AzureResourceGroupName, handle, nil)
	if err != nil {
		return fmt.Errorf("get certificate %s: %w", handle, err)
	}
	if cert.Properties == nil || cert.Properties.Thumbprint == nil || *cert.Properties.Thumbprint == "" {
		return fmt.Errorf("certificate %s has no thumbprint yet", handle)
	}

	apps, err := d.webAppsClient()
	if err != nil {
		return err
	}
	binding := armappservice.HostNameBinding{
		Properties: &armappservice.HostNameBindingProperties{
			SiteName:                    to.Ptr(d.AppName),
			HostNameType:                to.Ptr(armappservice.HostNameTypeVerified),
			CustomHostNameDNSRecordType: to.Ptr(armappservice.CustomHostNameDNSRecordTypeCName),
			SSLState:                    to.Ptr(armappservice.SSLStateSniEnabled),
			Thumbprint:                  cert.Properties.Thumbprint,
		},
	}
	log.Info(ctx, "binding tls", "domain", customDomain, "certificate", handle)
	if _, err := apps.CreateOrUpdateHostNameBinding(ctx, d.AzureResourceGroupName, d.AppName, customDomain, binding, nil); err != nil {
		return fmt.Errorf("bind tls for %s: %w", customDomain, err)
	}
	return nil
}

// certificateName derives the certificate resource name the way the Azure
// portal does: domain suffixed with the site name.
func certificateName(customDomain, appName string) string {
	return customDomain + "-" + appName
}

func isConflict(err error) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusConflict || respErr.StatusCode == http.StatusBadRequest
	}
	return false
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// isAccepted treats 202 surfaced as an error value by intermediate layers
// as a successful asynchronous start.
func isAccepted(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusAccepted
}
