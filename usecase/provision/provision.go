// Package provision creates the hosted web app infrastructure a domain
// binding targets.
package provision

import (
	"context"
	"fmt"

	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/growthaccelerator/domainctl/internal/logging"
)

// UseCase provides web app provisioning.
type UseCase struct {
	Provision model.ProvisionPort
}

// CreateInput holds parameters for web app provisioning.
type CreateInput struct{}

// CreateOutput holds the provisioned app's hostname.
type CreateOutput struct {
	AppHostname string `json:"app_hostname"`
}

// Create provisions the web app through the provider and returns its
// assigned hostname. Safe to re-run.
func (u *UseCase) Create(ctx context.Context, _ *CreateInput) (*CreateOutput, error) {
	if u.Provision == nil {
		return nil, fmt.Errorf("no provision port configured")
	}
	log := logging.FromContext(ctx)

	hostname, err := u.Provision.EnsureWebApp(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrProviderUnavailable, err)
	}
	log.Info(ctx, "web app provisioned", "hostname", hostname)
	return &CreateOutput{AppHostname: hostname}, nil
}
