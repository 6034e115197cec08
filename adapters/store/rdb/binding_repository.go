package rdb

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/growthaccelerator/domainctl/domain"
	"github.com/growthaccelerator/domainctl/domain/model"
	"gorm.io/gorm"
)

type BindingRunRepository struct{ db *gorm.DB }

func NewBindingRunRepository(db *gorm.DB) *BindingRunRepository {
	return &BindingRunRepository{db: db}
}

func runToRecord(run *model.BindingRun) *BindingRunRecord {
	rec := &BindingRunRecord{
		ID:           run.ID,
		CustomDomain: run.CustomDomain,
		AppHostname:  run.AppHostname,
		State:        string(run.State),
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
		CreatedAt:    run.CreatedAt,
		UpdatedAt:    run.UpdatedAt,
	}
	if run.Result != nil {
		rec.DomainVerified = run.Result.DomainVerified
		rec.CertificateIssued = run.Result.CertificateIssued
		rec.TLSBound = run.Result.TLSBound
		rec.HealthCheckPassed = run.Result.HealthCheckPassed
		rec.FailureReason = run.Result.FailureReason
		if b, err := json.Marshal(run.Result.Records); err == nil {
			rec.Records = string(b)
		}
	}
	if b, err := json.Marshal(run.Transitions); err == nil {
		rec.Transitions = string(b)
	}
	return rec
}

func runToModel(rec *BindingRunRecord) *model.BindingRun {
	run := &model.BindingRun{
		ID:           rec.ID,
		CustomDomain: rec.CustomDomain,
		AppHostname:  rec.AppHostname,
		State:        model.BindingState(rec.State),
		StartedAt:    rec.StartedAt,
		FinishedAt:   rec.FinishedAt,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		Result: &model.BindingResult{
			DomainVerified:    rec.DomainVerified,
			CertificateIssued: rec.CertificateIssued,
			TLSBound:          rec.TLSBound,
			HealthCheckPassed: rec.HealthCheckPassed,
			FailureReason:     rec.FailureReason,
		},
	}
	if rec.Records != "" {
		_ = json.Unmarshal([]byte(rec.Records), &run.Result.Records)
	}
	if rec.Transitions != "" {
		_ = json.Unmarshal([]byte(rec.Transitions), &run.Transitions)
	}
	return run
}

func (r *BindingRunRepository) Create(ctx context.Context, run *model.BindingRun) error {
	rec := runToRecord(run)
	if rec.ID == "" {
		rec.ID = "run-" + uuid.NewString()
		run.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *BindingRunRepository) Get(ctx context.Context, id string) (*model.BindingRun, error) {
	var rec BindingRunRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, model.ErrRunNotFound
		}
		return nil, err
	}
	return runToModel(&rec), nil
}

func (r *BindingRunRepository) List(ctx context.Context, limit int) ([]*model.BindingRun, error) {
	q := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []BindingRunRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.BindingRun, 0, len(recs))
	for i := range recs {
		out = append(out, runToModel(&recs[i]))
	}
	return out, nil
}

var _ domain.BindingRunRepository = (*BindingRunRepository)(nil)
