package binding

import (
	"context"
	"errors"

	"github.com/growthaccelerator/domainctl/domain/model"
)

// CheckInput holds parameters for a DNS configuration check that never
// touches the resource provider's binding state.
type CheckInput struct {
	Request    model.DomainBindingRequest
	Token      string // operator-supplied; fetched from the provider when empty
	HostSuffix string
	Policy     model.PollPolicy
	// Monitor polls under Policy until convergence or budget exhaustion;
	// otherwise a single round is performed.
	Monitor bool
}

// CheckOutput reports the observed state of every required record.
type CheckOutput struct {
	Records   []model.VerificationRecord
	States    []*model.PropagationState
	Converged bool
}

// Check derives the required records and inspects public DNS for them,
// one-shot or in monitor mode.
func (u *UseCase) Check(ctx context.Context, in CheckInput) (*CheckOutput, error) {
	req := in.Request
	token := in.Token
	if token == "" || req.AppHostname == "" {
		t, appHostname, err := u.Site.VerificationToken(ctx)
		if err != nil {
			return nil, err
		}
		if token == "" {
			token = t
		}
		if req.AppHostname == "" {
			req.AppHostname = appHostname
		}
	}

	records, err := DeriveRecords(DeriveInput{Request: req, Token: token, HostSuffix: in.HostSuffix})
	if err != nil {
		return nil, err
	}

	poller := &Poller{Resolver: u.Resolver, Policy: in.Policy}
	if !in.Monitor {
		states, ok := poller.Check(ctx, records)
		return &CheckOutput{Records: records, States: states, Converged: ok}, nil
	}

	states, err := poller.Wait(ctx, records)
	out := &CheckOutput{Records: records, States: states, Converged: err == nil}
	if err != nil {
		// Timeout is a report, not a failure, in monitor mode; propagation
		// may simply still be in progress.
		var te *model.TimeoutError
		if !errors.As(err, &te) {
			return out, err
		}
	}
	return out, nil
}
