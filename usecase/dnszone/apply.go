package dnszone

import (
	"context"
	"fmt"

	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/growthaccelerator/domainctl/internal/logging"
	"github.com/growthaccelerator/domainctl/usecase/binding"
)

// ApplyInput holds parameters for publishing binding records.
type ApplyInput struct {
	Request    model.DomainBindingRequest `json:"request"`
	Token      string                     `json:"token"`       // verification token for the TXT record
	HostSuffix string                     `json:"host_suffix"` // provider hostname suffix
	TTL        uint32                     `json:"ttl,omitempty"`
	Strict     bool                       `json:"strict,omitempty"`
	DryRun     bool                       `json:"dry_run,omitempty"`
}

// ApplyOutput holds the result of record publication.
type ApplyOutput struct {
	Applied []RecordResult `json:"applied"`
}

// Apply derives the binding's verification records and upserts them in the
// hosted zone. With DryRun the records are only planned. With Strict the
// first failed upsert aborts; otherwise failures are collected per record.
func (u *UseCase) Apply(ctx context.Context, in *ApplyInput) (*ApplyOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if u.Zone == nil {
		return nil, fmt.Errorf("no zone port configured")
	}
	log := logging.FromContext(ctx)

	records, err := binding.DeriveRecords(binding.DeriveInput{
		Request:    in.Request,
		Token:      in.Token,
		HostSuffix: in.HostSuffix,
	})
	if err != nil {
		return nil, err
	}

	out := &ApplyOutput{}
	for _, rec := range records {
		rset := recordSet(rec, in.TTL)
		if in.DryRun {
			out.Applied = append(out.Applied, RecordResult{
				FQDN:    rset.FQDN,
				Type:    rset.Type,
				Action:  "planned",
				Message: fmt.Sprintf("would upsert %v", rset.RData),
			})
			continue
		}
		if err := u.Zone.ZoneApply(ctx, rset); err != nil {
			if in.Strict {
				return nil, fmt.Errorf("apply %s record %s: %w", rset.Type, rset.FQDN, err)
			}
			log.Warn(ctx, "record apply failed", "fqdn", rset.FQDN, "type", rset.Type, "err", err)
			out.Applied = append(out.Applied, RecordResult{
				FQDN:    rset.FQDN,
				Type:    rset.Type,
				Action:  "failed",
				Message: err.Error(),
			})
			continue
		}
		log.Info(ctx, "record applied", "fqdn", rset.FQDN, "type", rset.Type)
		out.Applied = append(out.Applied, RecordResult{
			FQDN:   rset.FQDN,
			Type:   rset.Type,
			Action: "applied",
		})
	}
	return out, nil
}

// recordSet converts a verification record to a publishable record set.
func recordSet(rec model.VerificationRecord, ttl uint32) model.DNSRecordSet {
	return model.DNSRecordSet{
		FQDN:  rec.Name,
		Type:  rec.Type,
		TTL:   ttl,
		RData: []string{rec.ExpectedValue},
	}
}
