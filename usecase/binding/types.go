// Package binding implements the domain verification and binding workflow:
// deriving the DNS records an operator must publish, polling public DNS
// until they propagate, then binding the domain, requesting a managed
// certificate, binding TLS, and health-checking the result.
package binding

import (
	"github.com/growthaccelerator/domainctl/domain"
	"github.com/growthaccelerator/domainctl/domain/model"
)

// UseCase wires the ports needed for binding workflows. Runs is optional;
// when nil, workflow results are not persisted.
type UseCase struct {
	Site     model.SitePort
	Resolver model.Resolver
	Health   model.HealthChecker
	Runs     domain.BindingRunRepository
}
