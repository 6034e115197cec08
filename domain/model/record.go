package model

import (
	"strings"
	"time"
)

// DNSRecordType represents provider-agnostic DNS record types.
type DNSRecordType string

const (
	DNSRecordTypeA     DNSRecordType = "A"
	DNSRecordTypeCNAME DNSRecordType = "CNAME"
	DNSRecordTypeTXT   DNSRecordType = "TXT"
)

// VerificationRecord is a single DNS record the operator must publish to
// prove domain ownership or route traffic. Immutable once derived.
type VerificationRecord struct {
	Type          DNSRecordType `json:"type"`
	Name          string        `json:"name"` // absolute FQDN, no trailing dot
	ExpectedValue string        `json:"expected_value"`
}

// PropagationState tracks what the public resolver last returned for one
// verification record. One instance per record, updated every poll round.
type PropagationState struct {
	Record        VerificationRecord `json:"record"`
	ObservedValue string             `json:"observed_value,omitempty"`
	Matched       bool               `json:"matched"`
	LastCheckedAt time.Time          `json:"last_checked_at"`
	Attempts      int                `json:"attempts"`
}

// DNSRecordSet describes a record set to publish in a hosted DNS zone.
// Empty RData indicates deletion.
type DNSRecordSet struct {
	FQDN  string
	Type  DNSRecordType
	TTL   uint32 // seconds; provider default when zero
	RData []string
}

// Matches reports whether an observed value satisfies the record's expected
// value. CNAME targets compare case-insensitively with trailing dots
// stripped; TXT values compare exactly after trimming whitespace and
// surrounding quotes.
func (r VerificationRecord) Matches(observed string) bool {
	switch r.Type {
	case DNSRecordTypeCNAME:
		return strings.EqualFold(normalizeTarget(observed), normalizeTarget(r.ExpectedValue))
	default:
		return normalizeText(observed) == normalizeText(r.ExpectedValue)
	}
}

func normalizeTarget(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), ".")
}

func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}
