// Package health implements the HTTPS health probe performed after TLS
// binding.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/growthaccelerator/domainctl/domain/model"
)

const maxBodyBytes = 64 << 10

// Checker probes an endpoint once per call with a bounded timeout.
type Checker struct {
	client *http.Client
}

// New returns a checker whose requests time out after the given duration.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Checker{client: &http.Client{Timeout: timeout}}
}

// Check issues a GET and requires a 2xx status. When the body is JSON with
// a status field, that field must read healthy; a plain or empty body passes
// on status code alone.
func (c *Checker) Check(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("health check request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Status == "" {
		return nil
	}
	switch strings.ToLower(payload.Status) {
	case "ok", "healthy", "up", "pass":
		return nil
	}
	return fmt.Errorf("health check reported status %q", payload.Status)
}

var _ model.HealthChecker = (*Checker)(nil)
