package binding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/growthaccelerator/domainctl/internal/logging"
)

// RunInput holds parameters for a full binding workflow invocation.
type RunInput struct {
	Request    model.DomainBindingRequest
	Policy     model.PollPolicy
	HostSuffix string
	// HealthURL is probed after TLS binding. Empty skips the probe and
	// records the health check as failed with a reason.
	HealthURL string
}

// RunOutput holds the workflow result and the persisted run record.
type RunOutput struct {
	Result *model.BindingResult
	Run    *model.BindingRun
}

// Run executes the binding workflow as a strict forward-only state machine:
//
//	Created -> TokenRequested -> AwaitingPropagation -> Verified ->
//	CertificateRequested -> CertificateIssued -> TlsBound ->
//	HealthChecked -> Complete
//
// Failures before Verified abort and are returned as errors. Failures at or
// after Verified are captured into the BindingResult and the workflow still
// reaches Complete, since a bound domain with a pending certificate is
// actionable information, not a rollback candidate.
func (u *UseCase) Run(ctx context.Context, in RunInput) (*RunOutput, error) {
	log := logging.FromContext(ctx).With("domain", in.Request.CustomDomain)

	run := &model.BindingRun{
		CustomDomain: in.Request.CustomDomain,
		AppHostname:  in.Request.AppHostname,
		StartedAt:    time.Now(),
	}
	advance := func(s model.BindingState) {
		run.State = s
		run.Transitions = append(run.Transitions, model.StateTransition{State: s, At: time.Now()})
		log.Info(ctx, "binding state", "state", string(s))
	}
	fail := func(reason string, states []*model.PropagationState, err error) (*RunOutput, error) {
		run.State = model.StateFailed
		run.Transitions = append(run.Transitions, model.StateTransition{State: model.StateFailed, At: time.Now()})
		run.Result = &model.BindingResult{FailureReason: reason, Records: states}
		run.FinishedAt = time.Now()
		u.persist(ctx, run)
		log.Error(ctx, "binding failed", "reason", reason, "err", err.Error())
		return nil, err
	}

	advance(model.StateCreated)

	// Created -> TokenRequested
	token, appHostname, err := u.Site.VerificationToken(ctx)
	if err != nil {
		return fail("verification-token", nil, fmt.Errorf("%w: fetch verification token: %v", model.ErrProviderUnavailable, err))
	}
	req := in.Request
	if req.AppHostname == "" {
		req.AppHostname = appHostname
		run.AppHostname = appHostname
	}
	advance(model.StateTokenRequested)

	records, err := DeriveRecords(DeriveInput{Request: req, Token: token, HostSuffix: in.HostSuffix})
	if err != nil {
		return fail("invalid-request", nil, err)
	}
	for _, r := range records {
		log.Info(ctx, "required dns record", "name", r.Name, "type", string(r.Type), "value", r.ExpectedValue)
	}

	// TokenRequested -> AwaitingPropagation
	advance(model.StateAwaitingPropagation)
	poller := &Poller{Resolver: u.Resolver, Policy: in.Policy}
	states, err := poller.Wait(ctx, records)
	if err != nil {
		var te *model.TimeoutError
		if errors.As(err, &te) {
			return fail("dns-propagation-timeout", states, err)
		}
		if errors.Is(err, model.ErrCancelled) {
			return fail("cancelled", states, err)
		}
		return fail("dns-propagation", states, err)
	}

	// AwaitingPropagation -> Verified
	if err := u.Site.BindCustomDomain(ctx, req.CustomDomain); err != nil {
		if errors.Is(err, model.ErrDomainBinding) {
			return fail("domain-binding-rejected", states, err)
		}
		return fail("domain-binding", states, fmt.Errorf("%w: bind custom domain: %v", model.ErrProviderUnavailable, err))
	}
	advance(model.StateVerified)

	// Past Verified every failure is recorded, never escalated.
	result := &model.BindingResult{DomainVerified: true, Records: states}
	u.finishSecure(ctx, in, req, run, result, advance)

	advance(model.StateComplete)
	run.Result = result
	run.FinishedAt = time.Now()
	u.persist(ctx, run)
	return &RunOutput{Result: result, Run: run}, nil
}

// finishSecure drives the certificate, TLS, and health check stages,
// capturing the first failure into result.FailureReason and skipping the
// stages that depend on it.
func (u *UseCase) finishSecure(ctx context.Context, in RunInput, req model.DomainBindingRequest, run *model.BindingRun, result *model.BindingResult, advance func(model.BindingState)) {
	log := logging.FromContext(ctx).With("domain", req.CustomDomain)

	// Verified -> CertificateRequested
	advance(model.StateCertificateRequested)
	handle, err := u.Site.RequestManagedCertificate(ctx, req.CustomDomain)
	if err != nil {
		result.FailureReason = fmt.Sprintf("request managed certificate: %s", err)
		return
	}

	// CertificateRequested -> CertificateIssued (provider-side issuance is
	// asynchronous; poll with the same interval/deadline discipline as DNS
	// propagation)
	if err := u.waitCertificate(ctx, handle, in.Policy); err != nil {
		result.FailureReason = err.Error()
		return
	}
	result.CertificateIssued = true
	advance(model.StateCertificateIssued)

	// CertificateIssued -> TlsBound
	if err := u.Site.BindTLS(ctx, req.CustomDomain, handle); err != nil {
		result.FailureReason = fmt.Sprintf("bind tls: %s", err)
		return
	}
	result.TLSBound = true
	advance(model.StateTLSBound)

	// TlsBound -> HealthChecked. A failed probe does not roll back TLS
	// binding; the app may simply still be starting.
	if in.HealthURL == "" {
		result.FailureReason = "health check skipped: no endpoint configured"
	} else if err := u.Health.Check(ctx, in.HealthURL); err != nil {
		result.FailureReason = err.Error()
		log.Warn(ctx, "health check failed", "url", in.HealthURL, "err", err.Error())
	} else {
		result.HealthCheckPassed = true
	}
	advance(model.StateHealthChecked)
}

// waitCertificate polls certificate issuance status under the poll policy.
func (u *UseCase) waitCertificate(ctx context.Context, handle string, policy model.PollPolicy) error {
	log := logging.FromContext(ctx)
	start := time.Now()
	var deadline time.Time
	if policy.Deadline > 0 {
		deadline = start.Add(policy.Deadline)
	}

	attempts := 0
	for {
		if ctx.Err() != nil {
			return fmt.Errorf("certificate issuance: %s", model.ErrCancelled)
		}
		attempts++
		state, err := u.Site.CertificateStatus(ctx, handle)
		if err != nil {
			log.Debug(ctx, "certificate status check failed", "handle", handle, "err", err.Error())
		}
		switch state {
		case model.CertificateStateIssued:
			return nil
		case model.CertificateStateFailed:
			return fmt.Errorf("certificate issuance failed for %s", handle)
		}

		if policy.MaxAttempts > 0 && attempts >= policy.MaxAttempts {
			return fmt.Errorf("certificate-issuance-timeout after %d attempts", attempts)
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return fmt.Errorf("certificate-issuance-timeout after %s", time.Since(start).Round(time.Second))
		}

		timer := time.NewTimer(policy.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("certificate issuance: %s", model.ErrCancelled)
		case <-timer.C:
		}
	}
}

func (u *UseCase) persist(ctx context.Context, run *model.BindingRun) {
	if u.Runs == nil {
		return
	}
	if err := u.Runs.Create(ctx, run); err != nil {
		logging.FromContext(ctx).Warn(ctx, "persist binding run", "err", err.Error())
	}
}
