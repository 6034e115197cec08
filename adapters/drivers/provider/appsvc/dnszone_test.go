package appsvc

import (
	"testing"

	"github.com/growthaccelerator/domainctl/domain/model"
)

func TestParseDNSZoneID(t *testing.T) {
	tests := []struct {
		name       string
		resourceID string
		wantName   string
		wantErr    bool
	}{
		{
			name:       "valid zone ID",
			resourceID: "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/my-rg/providers/Microsoft.Network/dnszones/example.com",
			wantName:   "example.com",
			wantErr:    false,
		},
		{
			name:       "valid zone ID with subdomain",
			resourceID: "/subscriptions/11111111-1111-1111-1111-111111111111/resourceGroups/prod-rg/providers/Microsoft.Network/dnszones/app.example.com",
			wantName:   "app.example.com",
			wantErr:    false,
		},
		{
			name:       "invalid zone ID - too short",
			resourceID: "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/my-rg",
			wantErr:    true,
		},
		{
			name:       "invalid zone ID - wrong provider",
			resourceID: "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/my-rg/providers/Microsoft.Compute/dnszones/example.com",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDNSZoneID(tt.resourceID)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDNSZoneID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if got.Name != tt.wantName {
					t.Errorf("parseDNSZoneID() name = %v, want %v", got.Name, tt.wantName)
				}
				if got.ResourceID != tt.resourceID {
					t.Errorf("parseDNSZoneID() id = %v, want %v", got.ResourceID, tt.resourceID)
				}
			}
		})
	}
}

func TestSelectDNSZone(t *testing.T) {
	zones := []*dnsZoneInfo{
		{
			ResourceID: "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Network/dnszones/example.com",
			Name:       "example.com",
		},
		{
			ResourceID: "/subscriptions/sub1/resourceGroups/rg2/providers/Microsoft.Network/dnszones/app.example.com",
			Name:       "app.example.com",
		},
		{
			ResourceID: "/subscriptions/sub1/resourceGroups/rg3/providers/Microsoft.Network/dnszones/other.net",
			Name:       "other.net",
		},
	}

	tests := []struct {
		name     string
		fqdn     string
		wantZone string
		wantErr  bool
	}{
		{
			name:     "longest match wins",
			fqdn:     "www.app.example.com",
			wantZone: "app.example.com",
		},
		{
			name:     "apex match",
			fqdn:     "example.com",
			wantZone: "example.com",
		},
		{
			name:     "trailing dot normalized",
			fqdn:     "asuid.app.example.com.",
			wantZone: "app.example.com",
		},
		{
			name:     "different zone",
			fqdn:     "svc.other.net",
			wantZone: "other.net",
		},
		{
			name:    "no match",
			fqdn:    "app.unrelated.org",
			wantErr: true,
		},
		{
			name:    "suffix must be label aligned",
			fqdn:    "badexample.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectDNSZone(tt.fqdn, zones)
			if (err != nil) != tt.wantErr {
				t.Errorf("selectDNSZone() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.Name != tt.wantZone {
				t.Errorf("selectDNSZone() = %v, want %v", got.Name, tt.wantZone)
			}
		})
	}

	t.Run("no zones configured", func(t *testing.T) {
		if _, err := selectDNSZone("app.example.com", nil); err == nil {
			t.Error("selectDNSZone() expected error for empty zone list")
		}
	})
}

func TestDNSRecordSetName(t *testing.T) {
	tests := []struct {
		name     string
		fqdn     string
		zoneName string
		want     string
	}{
		{name: "subdomain", fqdn: "app.example.com", zoneName: "example.com", want: "app"},
		{name: "multi-label subdomain", fqdn: "asuid.app.example.com", zoneName: "example.com", want: "asuid.app"},
		{name: "apex", fqdn: "example.com", zoneName: "example.com", want: "@"},
		{name: "trailing dots", fqdn: "cdn.example.com.", zoneName: "example.com.", want: "cdn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dnsRecordSetName(tt.fqdn, tt.zoneName); got != tt.want {
				t.Errorf("dnsRecordSetName(%q, %q) = %q, want %q", tt.fqdn, tt.zoneName, got, tt.want)
			}
		})
	}
}

func TestNormalizeDNSRecordSet(t *testing.T) {
	tests := []struct {
		name    string
		rset    model.DNSRecordSet
		wantTTL uint32
		wantErr bool
	}{
		{
			name:    "defaults TTL",
			rset:    model.DNSRecordSet{FQDN: "app.example.com", Type: model.DNSRecordTypeCNAME, RData: []string{"myapp.azurewebsites.net"}},
			wantTTL: defaultDNSRecordTTL,
		},
		{
			name:    "keeps explicit TTL",
			rset:    model.DNSRecordSet{FQDN: "asuid.app.example.com", Type: model.DNSRecordTypeTXT, TTL: 60, RData: []string{"token"}},
			wantTTL: 60,
		},
		{
			name:    "missing FQDN",
			rset:    model.DNSRecordSet{Type: model.DNSRecordTypeA},
			wantErr: true,
		},
		{
			name:    "unsupported type",
			rset:    model.DNSRecordSet{FQDN: "app.example.com", Type: model.DNSRecordType("MX")},
			wantErr: true,
		},
		{
			name:    "CNAME with multiple targets",
			rset:    model.DNSRecordSet{FQDN: "app.example.com", Type: model.DNSRecordTypeCNAME, RData: []string{"a.example.net", "b.example.net"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rset := tt.rset
			err := normalizeDNSRecordSet(&rset)
			if (err != nil) != tt.wantErr {
				t.Errorf("normalizeDNSRecordSet() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && rset.TTL != tt.wantTTL {
				t.Errorf("normalizeDNSRecordSet() TTL = %d, want %d", rset.TTL, tt.wantTTL)
			}
		})
	}
}

func TestSplitZoneIDs(t *testing.T) {
	got := splitZoneIDs(" /sub/a , /sub/b\n/sub/c\t")
	want := []string{"/sub/a", "/sub/b", "/sub/c"}
	if len(got) != len(want) {
		t.Fatalf("splitZoneIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitZoneIDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if out := splitZoneIDs(""); out != nil {
		t.Errorf("splitZoneIDs(\"\") = %v, want nil", out)
	}
}

func TestCertificateName(t *testing.T) {
	if got := certificateName("app.example.com", "myapp"); got != "app.example.com-myapp" {
		t.Errorf("certificateName() = %q", got)
	}
}
