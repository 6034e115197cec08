package dnszone

import (
	"context"
	"fmt"

	"github.com/growthaccelerator/domainctl/internal/logging"
	"github.com/growthaccelerator/domainctl/usecase/binding"
)

// DestroyOutput holds the result of record removal.
type DestroyOutput struct {
	Deleted []RecordResult `json:"deleted"`
}

// Destroy removes the binding's verification records from the hosted zone.
func (u *UseCase) Destroy(ctx context.Context, in *ApplyInput) (*DestroyOutput, error) {
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

	out := &DestroyOutput{}
	for _, rec := range records {
		rset := recordSet(rec, in.TTL)
		if in.DryRun {
			out.Deleted = append(out.Deleted, RecordResult{
				FQDN:   rset.FQDN,
				Type:   rset.Type,
				Action: "planned",
			})
			continue
		}
		if err := u.Zone.ZoneDelete(ctx, rset); err != nil {
			if in.Strict {
				return nil, fmt.Errorf("delete %s record %s: %w", rset.Type, rset.FQDN, err)
			}
			log.Warn(ctx, "record delete failed", "fqdn", rset.FQDN, "type", rset.Type, "err", err)
			out.Deleted = append(out.Deleted, RecordResult{
				FQDN:    rset.FQDN,
				Type:    rset.Type,
				Action:  "failed",
				Message: err.Error(),
			})
			continue
		}
		log.Info(ctx, "record deleted", "fqdn", rset.FQDN, "type", rset.Type)
		out.Deleted = append(out.Deleted, RecordResult{
			FQDN:   rset.FQDN,
			Type:   rset.Type,
			Action: "deleted",
		})
	}
	return out, nil
}
