package appsvc

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/growthaccelerator/domainctl/internal/logging"
)

// EnsureWebApp provisions the resource group, Linux hosting plan, and web
// app if absent. Every call is a create-or-update so re-runs converge on
// the same resources.
func (d *driver) EnsureWebApp(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)

	if d.AzureLocation == "" {
		return "", fmt.Errorf("provisioning requires AZURE_LOCATION in provider settings")
	}

	rgClient, err := armresources.NewResourceGroupsClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return "", fmt.Errorf("create resource groups client: %w", err)
	}
	log.Info(ctx, "ensuring resource group", "name", d.AzureResourceGroupName, "location", d.AzureLocation)
	if _, err := rgClient.CreateOrUpdate(ctx, d.AzureResourceGroupName, armresources.ResourceGroup{
		Location: to.Ptr(d.AzureLocation),
	}, nil); err != nil {
		return "", fmt.Errorf("create resource group %s: %w", d.AzureResourceGroupName, err)
	}

	plansClient, err := armappservice.NewPlansClient(d.AzureSubscriptionId, d.TokenCredential, nil)
	if err != nil {
		return "", fmt.Errorf("create plans client: %w", err)
	}
	log.Info(ctx, "ensuring app service plan", "name", d.PlanName)
	planPoller, err := plansClient.BeginCreateOrUpdate(ctx, d.AzureResourceGroupName, d.PlanName, armappservice.Plan{
		Location: to.Ptr(d.AzureLocation),
		SKU: &armappservice.SKUDescription{
			Name: to.Ptr("B1"),
			Tier: to.Ptr("Basic"),
		},
		Properties: &armappservice.PlanProperties{
			// Reserved marks the plan as Linux.
			Reserved: to.Ptr(true),
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("create app service plan %s: %w", d.PlanName, err)
	}
	plan, err := planPoller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("wait for app service plan %s: %w", d.PlanName, err)
	}

	apps, err := d.webAppsClient()
	if err != nil {
		return "", err
	}
	log.Info(ctx, "ensuring web app", "name", d.AppName, "runtime", d.RuntimeStack)
	sitePoller, err := apps.BeginCreateOrUpdate(ctx, d.AzureResourceGroupName, d.AppName, armappservice.Site{
		Location: to.Ptr(d.AzureLocation),
		Properties: &armappservice.SiteProperties{
			ServerFarmID: plan.ID,
			HTTPSOnly:    to.Ptr(true),
			SiteConfig: &armappservice.SiteConfig{
				LinuxFxVersion:  to.Ptr(d.RuntimeStack),
				HealthCheckPath: to.Ptr(d.HealthCheckPath),
			},
		},
	}, nil)
	if err != nil {
		return "", fmt.Errorf("create web app %s: %w", d.AppName, err)
	}
	site, err := sitePoller.PollUntilDone(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("wait for web app %s: %w", d.AppName, err)
	}

	hostname := ""
	if site.Properties != nil && site.Properties.DefaultHostName != nil {
		hostname = *site.Properties.DefaultHostName
	}
	if hostname == "" {
		return "", fmt.Errorf("web app %s has no default hostname", d.AppName)
	}
	log.Info(ctx, "web app ready", "name", d.AppName, "hostname", hostname)
	return hostname, nil
}
