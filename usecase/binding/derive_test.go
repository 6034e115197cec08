package binding

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/growthaccelerator/domainctl/domain/model"
)

func TestDeriveRecords(t *testing.T) {
	in := DeriveInput{
		Request: model.DomainBindingRequest{
			CustomDomain:   "app.example.com",
			AppHostname:    "myapp.cloudhost.net",
			SubdomainLabel: "app",
		},
		Token: "verify-abc123",
	}

	got, err := DeriveRecords(in)
	if err != nil {
		t.Fatalf("DeriveRecords() error = %v", err)
	}

	want := []model.VerificationRecord{
		{Type: model.DNSRecordTypeTXT, Name: "asuid.app.example.com", ExpectedValue: "verify-abc123"},
		{Type: model.DNSRecordTypeCNAME, Name: "app.example.com", ExpectedValue: "myapp.cloudhost.net"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeriveRecords() = %+v, want %+v", got, want)
	}

	// Pure and deterministic: identical inputs yield identical sequences.
	again, err := DeriveRecords(in)
	if err != nil {
		t.Fatalf("DeriveRecords() second call error = %v", err)
	}
	if !reflect.DeepEqual(got, again) {
		t.Errorf("DeriveRecords() not deterministic: %+v vs %+v", got, again)
	}
}

func TestDeriveRecordsCDN(t *testing.T) {
	got, err := DeriveRecords(DeriveInput{
		Request: model.DomainBindingRequest{
			CustomDomain: "app.example.com",
			AppHostname:  "myapp.cloudhost.net",
			CDNHostname:  "myapp.cdn-endpoint.net",
		},
		Token: "verify-abc123",
	})
	if err != nil {
		t.Fatalf("DeriveRecords() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("DeriveRecords() returned %d records, want 3", len(got))
	}
	cdn := got[2]
	if cdn.Type != model.DNSRecordTypeCNAME || cdn.Name != "cdn.example.com" || cdn.ExpectedValue != "myapp.cdn-endpoint.net" {
		t.Errorf("cdn record = %+v", cdn)
	}
}

func TestDeriveRecordsSuffixCheck(t *testing.T) {
	_, err := DeriveRecords(DeriveInput{
		Request: model.DomainBindingRequest{
			CustomDomain: "app.example.com",
			AppHostname:  "myapp.cloudhost.net",
		},
		Token:      "verify-abc123",
		HostSuffix: ".azurewebsites.net",
	})
	if !errors.Is(err, model.ErrInvalidDomain) {
		t.Errorf("DeriveRecords() error = %v, want ErrInvalidDomain", err)
	}

	_, err = DeriveRecords(DeriveInput{
		Request: model.DomainBindingRequest{
			CustomDomain: "app.example.com",
			AppHostname:  "myapp.azurewebsites.net",
		},
		Token:      "verify-abc123",
		HostSuffix: ".azurewebsites.net",
	})
	if err != nil {
		t.Errorf("DeriveRecords() error = %v, want nil", err)
	}
}

func TestDeriveRecordsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DeriveInput)
	}{
		{name: "empty custom domain", mutate: func(in *DeriveInput) { in.Request.CustomDomain = "" }},
		{name: "underscore in domain", mutate: func(in *DeriveInput) { in.Request.CustomDomain = "bad_app.example.com" }},
		{name: "space in domain", mutate: func(in *DeriveInput) { in.Request.CustomDomain = "bad app.example.com" }},
		{name: "label too long", mutate: func(in *DeriveInput) { in.Request.CustomDomain = strings.Repeat("a", 64) + ".example.com" }},
		{name: "malformed app hostname", mutate: func(in *DeriveInput) { in.Request.AppHostname = "-bad.cloudhost.net" }},
		{name: "empty token", mutate: func(in *DeriveInput) { in.Token = "" }},
		{name: "label mismatch", mutate: func(in *DeriveInput) { in.Request.SubdomainLabel = "www" }},
		{name: "bad cdn hostname", mutate: func(in *DeriveInput) { in.Request.CDNHostname = "cdn host.example.net" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DeriveInput{
				Request: model.DomainBindingRequest{
					CustomDomain: "app.example.com",
					AppHostname:  "myapp.cloudhost.net",
				},
				Token: "verify-abc123",
			}
			tt.mutate(&in)
			_, err := DeriveRecords(in)
			if !errors.Is(err, model.ErrInvalidDomain) {
				t.Errorf("DeriveRecords() error = %v, want ErrInvalidDomain", err)
			}
		})
	}
}

func TestDeriveRecordsUppercaseAccepted(t *testing.T) {
	got, err := DeriveRecords(DeriveInput{
		Request: model.DomainBindingRequest{
			CustomDomain: "APP.EXAMPLE.COM",
			AppHostname:  "MyApp.CloudHost.NET",
		},
		Token: "verify-abc123",
	})
	if err != nil {
		t.Fatalf("DeriveRecords() error = %v", err)
	}
	if got[0].Name != "asuid.app.example.com" {
		t.Errorf("TXT name = %q, want normalized lowercase", got[0].Name)
	}
	if got[1].ExpectedValue != "myapp.cloudhost.net" {
		t.Errorf("CNAME value = %q, want normalized lowercase", got[1].ExpectedValue)
	}
}

func TestFormatRecord(t *testing.T) {
	txt := model.VerificationRecord{Type: model.DNSRecordTypeTXT, Name: "asuid.app.example.com", ExpectedValue: "verify-abc123"}
	if got := FormatRecord(txt); got != `asuid.app.example.com  TXT  "verify-abc123"` {
		t.Errorf("FormatRecord(TXT) = %q", got)
	}
	cname := model.VerificationRecord{Type: model.DNSRecordTypeCNAME, Name: "app.example.com", ExpectedValue: "myapp.cloudhost.net"}
	if got := FormatRecord(cname); got != "app.example.com  CNAME  myapp.cloudhost.net" {
		t.Errorf("FormatRecord(CNAME) = %q", got)
	}
}
