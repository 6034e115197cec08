// Package dnszone publishes and removes the DNS records a domain binding
// needs in an operator-owned hosted zone. It is the only writer of DNS
// state; the propagation poller in usecase/binding only reads.
package dnszone

import (
	"github.com/growthaccelerator/domainctl/domain/model"
)

// UseCase provides hosted zone record operations.
type UseCase struct {
	Zone model.ZonePort
}

// RecordResult describes the outcome of one record set operation.
type RecordResult struct {
	FQDN    string              `json:"fqdn"`
	Type    model.DNSRecordType `json:"type"`
	Action  string              `json:"action"` // "applied", "deleted", "failed", "planned"
	Message string              `json:"message,omitempty"`
}
