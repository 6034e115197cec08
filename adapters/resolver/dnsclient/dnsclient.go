// Package dnsclient implements the resolver port against a configurable
// public DNS upstream. Propagation must be observed from a public vantage
// point, so queries go straight to the upstream instead of the system
// resolver, which may sit behind split-horizon DNS.
package dnsclient

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/growthaccelerator/domainctl/domain/model"
	"github.com/miekg/dns"
)

// Client queries a single DNS upstream over UDP with TCP fallback on
// truncation.
type Client struct {
	server string
	udp    *dns.Client
	tcp    *dns.Client
}

// New returns a client for the given upstream address. A missing port
// defaults to 53.
func New(server string) *Client {
	if server == "" {
		server = "8.8.8.8:53"
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &Client{
		server: server,
		udp:    &dns.Client{},
		tcp:    &dns.Client{Net: "tcp"},
	}
}

// Server returns the upstream address queries are sent to.
func (c *Client) Server() string { return c.server }

// Resolve queries the upstream for the record and returns its values in
// presentation format. NXDOMAIN and empty answers map to
// model.ErrRecordNotFound; transport errors are returned as-is and treated
// as transient by callers.
func (c *Client) Resolve(ctx context.Context, name string, rtype model.DNSRecordType) ([]string, error) {
	qtype, err := queryType(rtype)
	if err != nil {
		return nil, err
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	m.RecursionDesired = true

	resp, _, err := c.udp.ExchangeContext(ctx, m, c.server)
	if err != nil {
		return nil, fmt.Errorf("query %s %s: %w", rtype, name, err)
	}
	if resp.Truncated {
		resp, _, err = c.tcp.ExchangeContext(ctx, m, c.server)
		if err != nil {
			return nil, fmt.Errorf("query %s %s over tcp: %w", rtype, name, err)
		}
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, fmt.Errorf("%w: %s %s", model.ErrRecordNotFound, rtype, name)
	default:
		return nil, fmt.Errorf("query %s %s: rcode %s", rtype, name, dns.RcodeToString[resp.Rcode])
	}

	values := extractValues(resp.Answer, qtype)
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s %s", model.ErrRecordNotFound, rtype, name)
	}
	return values, nil
}

func queryType(rtype model.DNSRecordType) (uint16, error) {
	switch rtype {
	case model.DNSRecordTypeTXT:
		return dns.TypeTXT, nil
	case model.DNSRecordTypeCNAME:
		return dns.TypeCNAME, nil
	case model.DNSRecordTypeA:
		return dns.TypeA, nil
	default:
		return 0, fmt.Errorf("unsupported record type: %s", rtype)
	}
}

// extractValues collects answer RDATA for the queried type. TXT character
// strings are concatenated per RFC 7208 semantics; CNAME targets keep their
// absolute form for the caller to normalize.
func extractValues(answers []dns.RR, qtype uint16) []string {
	var values []string
	for _, rr := range answers {
		switch v := rr.(type) {
		case *dns.TXT:
			if qtype == dns.TypeTXT {
				values = append(values, strings.Join(v.Txt, ""))
			}
		case *dns.CNAME:
			if qtype == dns.TypeCNAME {
				values = append(values, v.Target)
			}
		case *dns.A:
			if qtype == dns.TypeA {
				values = append(values, v.A.String())
			}
		}
	}
	return values
}

var _ model.Resolver = (*Client)(nil)
