package binding

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/growthaccelerator/domainctl/adapters/store/memory"
	"github.com/growthaccelerator/domainctl/domain/model"
)

type fakeSite struct {
	token       string
	appHostname string
	tokenErr    error

	bindErr       error
	certErr       error
	certStates    []model.CertificateState
	certStateIdx  int
	tlsErr        error
	boundDomains  []string
	tlsBoundCerts []string
}

func (s *fakeSite) VerificationToken(context.Context) (string, string, error) {
	if s.tokenErr != nil {
		return "", "", s.tokenErr
	}
	return s.token, s.appHostname, nil
}

func (s *fakeSite) BindCustomDomain(_ context.Context, domain string) error {
	if s.bindErr != nil {
		return s.bindErr
	}
	s.boundDomains = append(s.boundDomains, domain)
	return nil
}

func (s *fakeSite) RequestManagedCertificate(_ context.Context, domain string) (string, error) {
	if s.certErr != nil {
		return "", s.certErr
	}
	return "cert-" + domain, nil
}

func (s *fakeSite) CertificateStatus(context.Context, string) (model.CertificateState, error) {
	if len(s.certStates) == 0 {
		return model.CertificateStateIssued, nil
	}
	i := s.certStateIdx
	if i >= len(s.certStates) {
		i = len(s.certStates) - 1
	}
	s.certStateIdx++
	return s.certStates[i], nil
}

func (s *fakeSite) BindTLS(_ context.Context, domain, handle string) error {
	if s.tlsErr != nil {
		return s.tlsErr
	}
	s.tlsBoundCerts = append(s.tlsBoundCerts, handle)
	return nil
}

type fakeHealth struct{ err error }

func (h *fakeHealth) Check(context.Context, string) error { return h.err }

func matchingResolver(token, appHostname string, domain string) *fakeResolver {
	r := newFakeResolver()
	r.set("asuid."+domain, fakeAnswer{values: []string{token}})
	r.set(domain, fakeAnswer{values: []string{appHostname}})
	return r
}

func testPolicy() model.PollPolicy {
	return model.PollPolicy{Interval: time.Millisecond, MaxAttempts: 5, QueryTimeout: time.Second}
}

func testRequest() model.DomainBindingRequest {
	return model.DomainBindingRequest{
		CustomDomain: "app.example.com",
		AppHostname:  "myapp.cloudhost.net",
	}
}

func TestRunSuccess(t *testing.T) {
	site := &fakeSite{token: "verify-abc123", appHostname: "myapp.cloudhost.net"}
	runs := memory.NewBindingRunRepository()
	u := &UseCase{
		Site:     site,
		Resolver: matchingResolver("verify-abc123", "myapp.cloudhost.net", "app.example.com"),
		Health:   &fakeHealth{},
		Runs:     runs,
	}

	out, err := u.Run(context.Background(), RunInput{
		Request:   testRequest(),
		Policy:    testPolicy(),
		HealthURL: "https://app.example.com/health",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	res := out.Result
	if !res.DomainVerified || !res.CertificateIssued || !res.TLSBound || !res.HealthCheckPassed {
		t.Errorf("Result = %+v, want all stages passed", res)
	}
	if res.FailureReason != "" {
		t.Errorf("FailureReason = %q, want empty", res.FailureReason)
	}
	if len(res.Records) != 2 {
		t.Errorf("Records = %d entries, want 2", len(res.Records))
	}
	if out.Run.State != model.StateComplete {
		t.Errorf("final state = %s, want Complete", out.Run.State)
	}

	// Persisted.
	list, err := runs.List(context.Background(), 0)
	if err != nil || len(list) != 1 {
		t.Errorf("List() = %v, %v, want one persisted run", list, err)
	}
}

func TestRunStateMonotonicity(t *testing.T) {
	site := &fakeSite{token: "verify-abc123", appHostname: "myapp.cloudhost.net"}
	u := &UseCase{
		Site:     site,
		Resolver: matchingResolver("verify-abc123", "myapp.cloudhost.net", "app.example.com"),
		Health:   &fakeHealth{},
	}

	out, err := u.Run(context.Background(), RunInput{
		Request:   testRequest(),
		Policy:    testPolicy(),
		HealthURL: "https://app.example.com/health",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []model.BindingState{
		model.StateCreated,
		model.StateTokenRequested,
		model.StateAwaitingPropagation,
		model.StateVerified,
		model.StateCertificateRequested,
		model.StateCertificateIssued,
		model.StateTLSBound,
		model.StateHealthChecked,
		model.StateComplete,
	}
	if len(out.Run.Transitions) != len(want) {
		t.Fatalf("transitions = %d, want %d: %+v", len(out.Run.Transitions), len(want), out.Run.Transitions)
	}
	seen := map[model.BindingState]bool{}
	for i, tr := range out.Run.Transitions {
		if tr.State != want[i] {
			t.Errorf("transition %d = %s, want %s", i, tr.State, want[i])
		}
		if seen[tr.State] {
			t.Errorf("state %s visited twice", tr.State)
		}
		seen[tr.State] = true
	}
}

func TestRunHealthCheckFailureStillCompletes(t *testing.T) {
	site := &fakeSite{token: "verify-abc123", appHostname: "myapp.cloudhost.net"}
	u := &UseCase{
		Site:     site,
		Resolver: matchingResolver("verify-abc123", "myapp.cloudhost.net", "app.example.com"),
		Health:   &fakeHealth{err: fmt.Errorf("health check returned 503")},
	}

	out, err := u.Run(context.Background(), RunInput{
		Request:   testRequest(),
		Policy:    testPolicy(),
		HealthURL: "https://app.example.com/health",
	})
	if err != nil {
		t.Fatalf("Run() error = %v, failures after Verified must not escalate", err)
	}

	res := out.Result
	if !res.DomainVerified || !res.CertificateIssued || !res.TLSBound {
		t.Errorf("Result = %+v, want domain/cert/tls recorded as succeeded", res)
	}
	if res.HealthCheckPassed {
		t.Error("HealthCheckPassed = true, want false")
	}
	if res.FailureReason != "health check returned 503" {
		t.Errorf("FailureReason = %q", res.FailureReason)
	}
	if out.Run.State != model.StateComplete {
		t.Errorf("final state = %s, want Complete", out.Run.State)
	}
}

func TestRunTokenFailureAborts(t *testing.T) {
	site := &fakeSite{tokenErr: fmt.Errorf("503 upstream")}
	u := &UseCase{Site: site, Resolver: newFakeResolver(), Health: &fakeHealth{}}

	_, err := u.Run(context.Background(), RunInput{Request: testRequest(), Policy: testPolicy()})
	if !errors.Is(err, model.ErrProviderUnavailable) {
		t.Errorf("Run() error = %v, want ErrProviderUnavailable", err)
	}
}

func TestRunPropagationTimeoutAborts(t *testing.T) {
	site := &fakeSite{token: "verify-abc123", appHostname: "myapp.cloudhost.net"}
	runs := memory.NewBindingRunRepository()
	u := &UseCase{Site: site, Resolver: newFakeResolver(), Health: &fakeHealth{}, Runs: runs}

	_, err := u.Run(context.Background(), RunInput{
		Request: testRequest(),
		Policy:  model.PollPolicy{Interval: time.Millisecond, MaxAttempts: 2},
	})
	var te *model.TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("Run() error = %v, want *model.TimeoutError", err)
	}
	// Diagnostic state for every record must be attached.
	if len(te.States) != 2 {
		t.Errorf("TimeoutError.States = %d entries, want 2", len(te.States))
	}
	if len(site.boundDomains) != 0 {
		t.Error("domain must not be bound after a propagation timeout")
	}

	// The failed run is persisted with its reason.
	list, _ := runs.List(context.Background(), 0)
	if len(list) != 1 || list[0].State != model.StateFailed {
		t.Errorf("persisted runs = %+v, want one Failed run", list)
	}
	if list[0].Result == nil || list[0].Result.FailureReason != "dns-propagation-timeout" {
		t.Errorf("persisted failure reason = %+v", list[0].Result)
	}
}

func TestRunBindingConflictAborts(t *testing.T) {
	site := &fakeSite{
		token:       "verify-abc123",
		appHostname: "myapp.cloudhost.net",
		bindErr:     fmt.Errorf("%w: hostname already bound to another site", model.ErrDomainBinding),
	}
	u := &UseCase{
		Site:     site,
		Resolver: matchingResolver("verify-abc123", "myapp.cloudhost.net", "app.example.com"),
		Health:   &fakeHealth{},
	}

	_, err := u.Run(context.Background(), RunInput{Request: testRequest(), Policy: testPolicy()})
	if !errors.Is(err, model.ErrDomainBinding) {
		t.Errorf("Run() error = %v, want ErrDomainBinding", err)
	}
}

func TestRunCertificateFailureRecorded(t *testing.T) {
	site := &fakeSite{
		token:       "verify-abc123",
		appHostname: "myapp.cloudhost.net",
		certStates:  []model.CertificateState{model.CertificateStatePending, model.CertificateStateFailed},
	}
	u := &UseCase{
		Site:     site,
		Resolver: matchingResolver("verify-abc123", "myapp.cloudhost.net", "app.example.com"),
		Health:   &fakeHealth{},
	}

	out, err := u.Run(context.Background(), RunInput{
		Request:   testRequest(),
		Policy:    testPolicy(),
		HealthURL: "https://app.example.com/health",
	})
	if err != nil {
		t.Fatalf("Run() error = %v, certificate failure must be recorded not escalated", err)
	}
	res := out.Result
	if !res.DomainVerified {
		t.Error("DomainVerified = false, want true")
	}
	if res.CertificateIssued || res.TLSBound || res.HealthCheckPassed {
		t.Errorf("Result = %+v, want cert/tls/health not reached", res)
	}
	if res.FailureReason == "" {
		t.Error("FailureReason must carry the certificate failure")
	}
	if len(site.tlsBoundCerts) != 0 {
		t.Error("TLS must not be bound when issuance failed")
	}
}

func TestRunCertificateIssuedAfterPending(t *testing.T) {
	site := &fakeSite{
		token:       "verify-abc123",
		appHostname: "myapp.cloudhost.net",
		certStates: []model.CertificateState{
			model.CertificateStatePending,
			model.CertificateStatePending,
			model.CertificateStateIssued,
		},
	}
	u := &UseCase{
		Site:     site,
		Resolver: matchingResolver("verify-abc123", "myapp.cloudhost.net", "app.example.com"),
		Health:   &fakeHealth{},
	}

	out, err := u.Run(context.Background(), RunInput{
		Request:   testRequest(),
		Policy:    testPolicy(),
		HealthURL: "https://app.example.com/health",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !out.Result.CertificateIssued || !out.Result.TLSBound {
		t.Errorf("Result = %+v, want certificate issued after pending polls", out.Result)
	}
}

func TestRunUsesProviderHostnameWhenUnset(t *testing.T) {
	site := &fakeSite{token: "verify-abc123", appHostname: "ga-staffing.azurewebsites.net"}
	u := &UseCase{
		Site:     site,
		Resolver: matchingResolver("verify-abc123", "ga-staffing.azurewebsites.net", "app.example.com"),
		Health:   &fakeHealth{},
	}

	out, err := u.Run(context.Background(), RunInput{
		Request:   model.DomainBindingRequest{CustomDomain: "app.example.com"},
		Policy:    testPolicy(),
		HealthURL: "https://app.example.com/health",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.Run.AppHostname != "ga-staffing.azurewebsites.net" {
		t.Errorf("AppHostname = %q, want provider default", out.Run.AppHostname)
	}
}
