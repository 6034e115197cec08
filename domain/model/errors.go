package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidDomain reports malformed input. Fails fast, never retried.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrProviderUnavailable reports a resource provider call that failed
	// after the provider client's own retry budget was exhausted.
	ErrProviderUnavailable = errors.New("resource provider unavailable")
	// ErrDomainBinding reports a provider-side rejection of the domain
	// binding (e.g. already bound elsewhere). Requires operator intervention.
	ErrDomainBinding = errors.New("domain binding rejected")
	// ErrRecordNotFound is returned by resolvers for NXDOMAIN / no answer.
	ErrRecordNotFound = errors.New("dns record not found")
	// ErrCancelled marks a caller-initiated cancellation, distinct from a
	// timeout. Satisfies errors.Is(err, context.Canceled).
	ErrCancelled = fmt.Errorf("cancelled: %w", context.Canceled)
	// ErrRunNotFound is returned by run repositories for unknown IDs.
	ErrRunNotFound = errors.New("binding run not found")
)

// TimeoutError reports that a polling session exhausted its attempt or
// wall-clock budget. It carries the last-known propagation state of every
// record for diagnostics.
type TimeoutError struct {
	States   []*PropagationState
	Attempts int
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	var pending []string
	for _, s := range e.States {
		if !s.Matched {
			pending = append(pending, fmt.Sprintf("%s %s", s.Record.Type, s.Record.Name))
		}
	}
	return fmt.Sprintf("propagation timeout after %d attempts (%s): unmatched records: %s",
		e.Attempts, e.Elapsed.Round(time.Second), strings.Join(pending, ", "))
}
