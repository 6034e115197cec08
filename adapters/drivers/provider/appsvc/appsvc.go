// Package appsvc implements the resource provider driver for Azure App
// Service: custom domain verification tokens, host name bindings, managed
// certificates, TLS bindings, DNS zone record publication, and web app
// provisioning.
package appsvc

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	providerdrv "github.com/growthaccelerator/domainctl/adapters/drivers/provider"
)

// driver implements the App Service provider driver.
type driver struct {
	TokenCredential        azcore.TokenCredential
	AzureSubscriptionId    string
	AzureLocation          string
	AzureResourceGroupName string
	AppName                string
	PlanName               string
	RuntimeStack           string
	HealthCheckPath        string
	DNSZoneResourceIDs     []string
}

// ID returns the provider identifier.
func (d *driver) ID() string { return "appsvc" }

// init registers the App Service driver.
func init() {
	providerdrv.Register("appsvc", func(settings map[string]string) (providerdrv.Driver, error) {
		get := func(k string) string {
			if settings == nil {
				return ""
			}
			return strings.TrimSpace(settings[k])
		}

		subscriptionID := get("AZURE_SUBSCRIPTION_ID")
		resourceGroup := get("AZURE_RESOURCE_GROUP_NAME")
		appName := get("AZURE_APP_NAME")
		missing := make([]string, 0, 3)
		if subscriptionID == "" {
			missing = append(missing, "AZURE_SUBSCRIPTION_ID")
		}
		if resourceGroup == "" {
			missing = append(missing, "AZURE_RESOURCE_GROUP_NAME")
		}
		if appName == "" {
			missing = append(missing, "AZURE_APP_NAME")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required appsvc settings: %s", strings.Join(missing, ", "))
		}

		authMethod := get("AZURE_AUTH_METHOD")
		if authMethod == "" {
			authMethod = "azure_cli"
		}

		var cred azcore.TokenCredential
		var err error
		switch authMethod {
		case "client_secret":
			tenantID := get("AZURE_TENANT_ID")
			clientID := get("AZURE_CLIENT_ID")
			clientSecret := get("AZURE_CLIENT_SECRET")
			if tenantID == "" || clientID == "" || clientSecret == "" {
				return nil, fmt.Errorf("client_secret auth requires AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_SECRET")
			}
			cred, err = azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
		case "managed_identity":
			clientID := get("AZURE_CLIENT_ID")
			opts := &azidentity.ManagedIdentityCredentialOptions{}
			if clientID != "" {
				opts.ID = azidentity.ClientID(clientID)
			}
			cred, err = azidentity.NewManagedIdentityCredential(opts)
		case "workload_identity":
			tenantID := get("AZURE_TENANT_ID")
			clientID := get("AZURE_CLIENT_ID")
			tokenFile := get("AZURE_FEDERATED_TOKEN_FILE")
			if tenantID == "" || clientID == "" || tokenFile == "" {
				return nil, fmt.Errorf("workload_identity auth requires AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_FEDERATED_TOKEN_FILE")
			}
			cred, err = azidentity.NewWorkloadIdentityCredential(&azidentity.WorkloadIdentityCredentialOptions{
				TenantID:      tenantID,
				ClientID:      clientID,
				TokenFilePath: tokenFile,
			})
		case "azure_cli":
			cred, err = azidentity.NewAzureCLICredential(nil)
		case "azure_developer_cli":
			cred, err = azidentity.NewAzureDeveloperCLICredential(nil)
		default:
			return nil, fmt.Errorf("unsupported AZURE_AUTH_METHOD: %s", authMethod)
		}
		if err != nil {
			return nil, fmt.Errorf("create Azure credential: %w", err)
		}

		planName := get("AZURE_PLAN_NAME")
		if planName == "" {
			planName = appName + "-plan"
		}
		runtimeStack := get("AZURE_RUNTIME_STACK")
		if runtimeStack == "" {
			runtimeStack = "PYTHON|3.11"
		}
		healthCheckPath := get("AZURE_HEALTH_CHECK_PATH")
		if healthCheckPath == "" {
			healthCheckPath = "/health"
		}

		return &driver{
			TokenCredential:        cred,
			AzureSubscriptionId:    subscriptionID,
			AzureLocation:          get("AZURE_LOCATION"),
			AzureResourceGroupName: resourceGroup,
			AppName:                appName,
			PlanName:               planName,
			RuntimeStack:           runtimeStack,
			HealthCheckPath:        healthCheckPath,
			DNSZoneResourceIDs:     splitZoneIDs(get("AZURE_DNS_ZONE_RESOURCE_IDS")),
		}, nil
	})
}

// splitZoneIDs splits a comma or whitespace separated resource ID list.
func splitZoneIDs(raw string) []string {
	var out []string
	for _, id := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}) {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
