package domainctlcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path and returns a deserialized
// Root. It performs no validation beyond YAML decoding; validation is
// handled by Validate.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	return &cfg, nil
}

// Default returns a starter configuration written by `domainctl init`.
func Default() *Root {
	return &Root{
		Version: "v1",
		Provider: Provider{
			Name:   "azure",
			Driver: "appsvc",
			Settings: map[string]string{
				"AZURE_SUBSCRIPTION_ID":     "00000000-0000-0000-0000-000000000000",
				"AZURE_RESOURCE_GROUP_NAME": "my-resource-group",
				"AZURE_LOCATION":            "westeurope",
				"AZURE_APP_NAME":            "my-app",
				"AZURE_AUTH_METHOD":         "azure_cli",
			},
		},
		Binding: Binding{
			CustomDomain: "app.example.com",
		},
		DNS: DNS{
			Resolver: "8.8.8.8:53",
		},
		Poll: Poll{
			Interval:    "15s",
			MaxAttempts: 120,
			Deadline:    "30m",
		},
		Health: Health{
			Path:    "/health",
			Timeout: "10s",
		},
	}
}

// Save writes the configuration as YAML to the given path, refusing to
// overwrite an existing file.
func (r *Root) Save(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file %s", path)
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
