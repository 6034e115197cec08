// Package providerdrv hosts the resource provider driver registry. Drivers
// register themselves from init() and are selected by name from the
// provider.driver configuration field.
package providerdrv

import (
	"sort"
	"sync"

	"github.com/growthaccelerator/domainctl/domain/model"
)

// Driver is a resource provider implementation covering the full binding
// surface: verification token, domain binding, certificates, and TLS, plus
// the optional zone publication and provisioning capabilities.
type Driver interface {
	ID() string
	model.SitePort
	model.ZonePort
	model.ProvisionPort
}

// Factory builds a driver from provider-specific settings.
type Factory func(settings map[string]string) (Driver, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register adds a driver factory under the given name. Later registrations
// with the same name replace earlier ones.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[name] = f
}

// GetDriverFactory returns the factory registered under name.
func GetDriverFactory(name string) (Factory, bool) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Names returns the registered driver names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(factories))
	for n := range factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
