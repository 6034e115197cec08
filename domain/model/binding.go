package model

import "time"

// DomainBindingRequest is the immutable input of one binding workflow
// invocation. CDNHostname is optional; when set an additional CNAME record
// for the cdn label is derived.
type DomainBindingRequest struct {
	CustomDomain   string `json:"custom_domain"`
	AppHostname    string `json:"app_hostname"`
	SubdomainLabel string `json:"subdomain_label"`
	CDNHostname    string `json:"cdn_hostname,omitempty"`
}

// BindingState names a position in the binding workflow.
type BindingState string

const (
	StateCreated              BindingState = "Created"
	StateTokenRequested       BindingState = "TokenRequested"
	StateAwaitingPropagation  BindingState = "AwaitingPropagation"
	StateVerified             BindingState = "Verified"
	StateCertificateRequested BindingState = "CertificateRequested"
	StateCertificateIssued    BindingState = "CertificateIssued"
	StateTLSBound             BindingState = "TlsBound"
	StateHealthChecked        BindingState = "HealthChecked"
	StateComplete             BindingState = "Complete"
	StateFailed               BindingState = "Failed"
)

// StateTransition records one forward step of the workflow.
type StateTransition struct {
	State BindingState `json:"state"`
	At    time.Time    `json:"at"`
}

// BindingResult is the terminal artifact of a binding workflow. Records
// always carries the last observed propagation state of every DNS record
// checked so the operator can diagnose without re-running dig by hand.
type BindingResult struct {
	DomainVerified    bool                `json:"domain_verified"`
	CertificateIssued bool                `json:"certificate_issued"`
	TLSBound          bool                `json:"tls_bound"`
	HealthCheckPassed bool                `json:"health_check_passed"`
	FailureReason     string              `json:"failure_reason,omitempty"`
	Records           []*PropagationState `json:"records,omitempty"`
}

// BindingRun is the persisted record of one workflow invocation.
type BindingRun struct {
	ID           string
	CustomDomain string
	AppHostname  string
	State        BindingState
	Transitions  []StateTransition
	Result       *BindingResult
	StartedAt    time.Time
	FinishedAt   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CertificateState reports managed certificate issuance progress.
type CertificateState string

const (
	CertificateStatePending CertificateState = "pending"
	CertificateStateIssued  CertificateState = "issued"
	CertificateStateFailed  CertificateState = "failed"
)

// PollPolicy bounds a polling session. Both MaxAttempts and Deadline apply;
// whichever is exhausted first terminates the session. Zero values disable
// the corresponding bound, but at least one must be set.
type PollPolicy struct {
	Interval     time.Duration
	MaxAttempts  int
	Deadline     time.Duration
	QueryTimeout time.Duration // per-query bound, kept shorter than Interval
}
