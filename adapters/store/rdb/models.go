package rdb

import "time"

// BindingRunRecord is the RDB persistence model for domain BindingRun.
// Transitions and Records hold JSON-encoded slices so one row captures the
// full diagnostic state of a run.
// Table name: binding_runs
type BindingRunRecord struct {
	ID                string    `gorm:"primaryKey;type:text;not null"`
	CustomDomain      string    `gorm:"type:text;not null;index"`
	AppHostname       string    `gorm:"type:text"`
	State             string    `gorm:"type:text;not null"`
	DomainVerified    bool      `gorm:"not null"`
	CertificateIssued bool      `gorm:"not null"`
	TLSBound          bool      `gorm:"not null"`
	HealthCheckPassed bool      `gorm:"not null"`
	FailureReason     string    `gorm:"type:text"`
	Transitions       string    `gorm:"type:text"` // JSON encoded []model.StateTransition
	Records           string    `gorm:"type:text"` // JSON encoded []*model.PropagationState
	StartedAt         time.Time `gorm:"not null"`
	FinishedAt        time.Time
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (BindingRunRecord) TableName() string { return "binding_runs" }
