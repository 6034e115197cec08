package appsvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/growthaccelerator/domainctl/internal/logging"
)

// Default TTL for DNS records when not specified (5 minutes)
const defaultDNSRecordTTL = 300

// dnsZoneInfo represents parsed Azure DNS Zone resource information.
type dnsZoneInfo struct {
	ResourceID string // Full resource ID
	Name       string // Zone name (e.g., "example.com")
}

// parseDNSZoneID parses an Azure DNS Zone resource ID.
// Expected format: /subscriptions/{sub}/resourceGroups/{rg}/providers/Microsoft.Network/dnszones/{zone}
func parseDNSZoneID(resourceID string) (*dnsZoneInfo, error) {
	rid, err := arm.ParseResourceID(resourceID)
	if err != nil {
		return nil, fmt.Errorf("parse DNS zone resource ID: %w", err)
	}
	if !strings.EqualFold(rid.ResourceType.Namespace, "Microsoft.Network") ||
		!strings.EqualFold(rid.ResourceType.Type, "dnszones") {
		return nil, fmt.Errorf("invalid resource type for DNS zone: expected Microsoft.Network/dnszones, got %s/%s",
			rid.ResourceType.Namespace, rid.ResourceType.Type)
	}
	return &dnsZoneInfo{ResourceID: resourceID, Name: rid.Name}, nil
}

// collectDNSZones parses the configured zone resource IDs.
func (d *driver) collectDNSZones() ([]*dnsZoneInfo, error) {
	zones := make([]*dnsZoneInfo, 0, len(d.DNSZoneResourceIDs))
	for _, id := range d.DNSZoneResourceIDs {
		info, err := parseDNSZoneID(id)
		if err != nil {
			return nil, err
		}
		zones = append(zones, info)
	}
	return zones, nil
}

// selectDNSZone picks the zone whose name is the longest suffix match for
// the FQDN.
func selectDNSZone(fqdn string, zones []*dnsZoneInfo) (*dnsZoneInfo, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("no DNS zones configured in provider settings AZURE_DNS_ZONE_RESOURCE_IDS")
	}

	fqdn = strings.TrimSuffix(fqdn, ".")

	var bestMatch *dnsZoneInfo
	bestMatchLen := 0
	for _, z := range zones {
		zoneName := strings.TrimSuffix(z.Name, ".")
		if fqdn == zoneName || strings.HasSuffix(fqdn, "."+zoneName) {
			if len(zoneName) > bestMatchLen {
				bestMatch = z
				bestMatchLen = len(zoneName)
			}
		}
	}
	if bestMatch == nil {
		return nil, fmt.Errorf("no matching DNS zone found for FQDN %s", fqdn)
	}
	return bestMatch, nil
}

// normalizeDNSRecordSet validates and normalizes the input record set.
func normalizeDNSRecordSet(rset *model.DNSRecordSet) error {
	if rset.FQDN == "" {
		return fmt.Errorf("FQDN is required")
	}
	rset.FQDN = strings.TrimSuffix(rset.FQDN, ".")

	switch rset.Type {
	case model.DNSRecordTypeA, model.DNSRecordTypeCNAME, model.DNSRecordTypeTXT:
	default:
		return fmt.Errorf("unsupported DNS record type: %s", rset.Type)
	}

	if rset.Type == model.DNSRecordTypeCNAME && len(rset.RData) > 1 {
		return fmt.Errorf("CNAME record must have exactly one RData entry, got %d", len(rset.RData))
	}

	if rset.TTL == 0 {
		rset.TTL = defaultDNSRecordTTL
	}
	return nil
}

// dnsRecordSetName converts an FQDN to a zone-relative record set name.
// APEX records are represented as "@".
func dnsRecordSetName(fqdn string, zoneName string) string {
	fqdn = strings.TrimSuffix(fqdn, ".")
	zoneName = strings.TrimSuffix(zoneName, ".")

	if fqdn == zoneName {
		return "@"
	}
	if strings.HasSuffix(fqdn, "."+zoneName) {
		return strings.TrimSuffix(fqdn, "."+zoneName)
	}
	// Fallback: should not happen if zone selection is correct
	return fqdn
}

// ZoneApply creates or updates a record set in the matching hosted zone.
func (d *driver) ZoneApply(ctx context.Context, rset model.DNSRecordSet) error {
	log := logging.FromContext(ctx)

	if err := normalizeDNSRecordSet(&rset); err != nil {
		return err
	}
	zones, err := d.collectDNSZones()
	if err != nil {
		return err
	}
	zone, err := selectDNSZone(rset.FQDN, zones)
	if err != nil {
		return err
	}

	rid, err := arm.ParseResourceID(zone.ResourceID)
	if err != nil {
		return fmt.Errorf("parse zone resource ID: %w", err)
	}
	client, err := armdns.NewRecordSetsClient(rid.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("create DNS record sets client: %w", err)
	}

	relName := dnsRecordSetName(rset.FQDN, zone.Name)
	recordType := armdns.RecordType(rset.Type)
	ttl := int64(rset.TTL)

	properties := armdns.RecordSetProperties{TTL: &ttl}
	switch rset.Type {
	case model.DNSRecordTypeA:
		aRecords := make([]*armdns.ARecord, 0, len(rset.RData))
		for _, ip := range rset.RData {
			aRecords = append(aRecords, &armdns.ARecord{IPv4Address: &ip})
		}
		properties.ARecords = aRecords
	case model.DNSRecordTypeCNAME:
		if len(rset.RData) > 0 {
			properties.CnameRecord = &armdns.CnameRecord{Cname: &rset.RData[0]}
		}
	case model.DNSRecordTypeTXT:
		txtRecords := make([]*armdns.TxtRecord, 0, len(rset.RData))
		for _, v := range rset.RData {
			value := v
			txtRecords = append(txtRecords, &armdns.TxtRecord{Value: []*string{&value}})
		}
		properties.TxtRecords = txtRecords
	}

	log.Info(ctx, "upserting DNS record",
		"zone_resource_id", zone.ResourceID,
		"record_name", relName,
		"type", rset.Type,
		"ttl", rset.TTL,
		"rdata", rset.RData,
	)

	if _, err := client.CreateOrUpdate(ctx, rid.ResourceGroupName, zone.Name, relName, recordType, armdns.RecordSet{Properties: &properties}, nil); err != nil {
		return fmt.Errorf("create/update DNS record: %w", err)
	}
	return nil
}

// ZoneDelete removes a record set from the matching hosted zone.
func (d *driver) ZoneDelete(ctx context.Context, rset model.DNSRecordSet) error {
	log := logging.FromContext(ctx)

	if err := normalizeDNSRecordSet(&rset); err != nil {
		return err
	}
	zones, err := d.collectDNSZones()
	if err != nil {
		return err
	}
	zone, err := selectDNSZone(rset.FQDN, zones)
	if err != nil {
		return err
	}

	rid, err := arm.ParseResourceID(zone.ResourceID)
	if err != nil {
		return fmt.Errorf("parse zone resource ID: %w", err)
	}
	client, err := armdns.NewRecordSetsClient(rid.SubscriptionID, d.TokenCredential, nil)
	if err != nil {
		return fmt.Errorf("create DNS record sets client: %w", err)
	}

	relName := dnsRecordSetName(rset.FQDN, zone.Name)
	recordType := armdns.RecordType(rset.Type)

	log.Info(ctx, "deleting DNS record",
		"zone_resource_id", zone.ResourceID,
		"record_name", relName,
		"type", rset.Type,
	)

	if _, err := client.Delete(ctx, rid.ResourceGroupName, zone.Name, relName, recordType, nil); err != nil {
		return fmt.Errorf("delete DNS record: %w", err)
	}
	return nil
}
