package domain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

type WhoisError struct {
	Domain string
	Err    error
	Server string
}

func (e *WhoisError) Error() string {
	return fmt.Sprintf("whois lookup failed for %s via %s: %v", e.Domain, e.Server, e.Err)
}

func (e *WhoisError) Unwrap() error { return e.Err }

// WhoisServers defines fallback servers for different TLDs. TLDs missing here
// are looked up through IANA, which refers us to the authoritative server.
var WhoisServers = map[string][]string{
	"com":     {"whois.verisign-grs.com"},
	"net":     {"whois.verisign-grs.com"},
	"org":     {"whois.pir.org"},
	"info":    {"whois.nic.info"},
	"biz":     {"whois.nic.biz"},
	"io":      {"whois.nic.io"},
	"dev":     {"whois.nic.google"},
	"app":     {"whois.nic.google"},
	"co.uk":   {"whois.nic.uk"},
	"uk":      {"whois.nic.uk"},
	"de":      {"whois.denic.de"},
	"default": {"whois.iana.org"},
}

const maxWhoisResponse = 1 << 20

// errNoRegistrationData means the server answered with neither registration
// fields nor a "not found" notice, typically a rate limit or refusal message.
var errNoRegistrationData = errors.New("response holds no registration data")

// WhoisClient speaks the port-43 WHOIS protocol.
type WhoisClient struct {
	Timeout time.Duration
	Port    string
	Servers map[string][]string
}

// NewWhoisClient returns a client using WhoisServers and the standard port.
func NewWhoisClient(timeout time.Duration) *WhoisClient {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &WhoisClient{
		Timeout: timeout,
		Port:    "43",
		Servers: WhoisServers,
	}
}

// Lookup performs WHOIS lookup with fallback servers.
func (c *WhoisClient) Lookup(ctx context.Context, domain string) (*Registration, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, fmt.Errorf("domain cannot be empty")
	}

	servers := c.serversFor(domain)

	var lastErr error
	for _, server := range servers {
		result, err := c.query(ctx, domain, server, true)
		if err != nil {
			lastErr = &WhoisError{Domain: domain, Err: err, Server: server}
			continue
		}
		return result, nil
	}

	return nil, lastErr
}

// serversFor picks the server list for the public suffix of domain, then for
// its last label, then the default.
func (c *WhoisClient) serversFor(domain string) []string {
	suffix, _ := publicsuffix.PublicSuffix(domain)
	if servers := c.Servers[suffix]; len(servers) > 0 {
		return servers
	}
	if i := strings.LastIndex(domain, "."); i >= 0 {
		if servers := c.Servers[domain[i+1:]]; len(servers) > 0 {
			return servers
		}
	}
	return c.Servers["default"]
}

// query asks server about domain and, when allowed, follows a single
// "refer:" line to the authoritative server.
func (c *WhoisClient) query(ctx context.Context, domain, server string, followReferral bool) (*Registration, error) {
	rawData, err := c.exchange(ctx, domain, server)
	if err != nil {
		return nil, err
	}

	if followReferral {
		if refer := findReferral(rawData); refer != "" && !strings.EqualFold(refer, server) {
			return c.query(ctx, domain, refer, false)
		}
	}

	info := parseWhoisResponse(domain, rawData, server)
	if !info.Found && !containsNotFoundMarker(rawData) {
		return nil, errNoRegistrationData
	}
	info.QueryTime = time.Now()
	return info, nil
}

// exchange performs the actual WHOIS query.
func (c *WhoisClient) exchange(ctx context.Context, domain, server string) (string, error) {
	dialer := &net.Dialer{Timeout: c.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(server, c.Port))
	if err != nil {
		return "", fmt.Errorf("connection failed: %w", err)
	}
	defer conn.Close()

	// Set deadline for the entire operation
	deadline := time.Now().Add(c.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	conn.SetDeadline(deadline)

	if _, err := conn.Write([]byte(domain + "\r\n")); err != nil {
		return "", fmt.Errorf("write failed: %w", err)
	}

	var response strings.Builder
	scanner := bufio.NewScanner(io.LimitReader(conn, maxWhoisResponse))
	for scanner.Scan() {
		response.WriteString(scanner.Text() + "\n")
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read failed: %w", err)
	}

	rawData := response.String()
	if strings.TrimSpace(rawData) == "" {
		return "", fmt.Errorf("empty response from server")
	}
	return rawData, nil
}

var (
	referPattern = regexp.MustCompile(`(?i)^(?:refer|whois):\s*(\S+)`)

	// Common patterns for different WHOIS formats
	whoisPatterns = map[string]*regexp.Regexp{
		"registrar":       regexp.MustCompile(`(?i)^(?:sponsoring )?registrar(?: name)?:\s*(.+)$`),
		"registrar_id":    regexp.MustCompile(`(?i)^(?:sponsoring )?registrar iana id:\s*(.+)$`),
		"abuse_email":     regexp.MustCompile(`(?i)^registrar abuse contact email:\s*(.+)$`),
		"reseller":        regexp.MustCompile(`(?i)^reseller(?: name)?:\s*(.+)$`),
		"creation_date":   regexp.MustCompile(`(?i)^(?:creation date|created(?: on)?|registered(?: on)?|registration time|domain registration date):\s*(.+)$`),
		"expiration_date": regexp.MustCompile(`(?i)^(?:registry expiry date|registrar registration expiration date|expir(?:y|ation) date|expires(?: on)?|expiration time|paid-till):\s*(.+)$`),
		"updated_date":    regexp.MustCompile(`(?i)^(?:updated date|last updated(?: on)?|last modified|modified|changed):\s*(.+)$`),
		"name_server":     regexp.MustCompile(`(?i)^(?:name servers?|nserver|nameservers?):\s*(\S+)`),
		"status":          regexp.MustCompile(`(?i)^(?:domain )?status:\s*(\S+)`),
	}

	notFoundMarkers = []string{
		"no match for",
		"not found",
		"no data found",
		"no entries found",
		"no object found",
		"status: free",
		"status: available",
		"is available for registration",
	}
)

func findReferral(rawData string) string {
	for _, line := range strings.Split(rawData, "\n") {
		if match := referPattern.FindStringSubmatch(strings.TrimSpace(line)); len(match) > 1 {
			return strings.ToLower(match[1])
		}
	}
	return ""
}

// parseWhoisResponse extracts structured data from raw WHOIS response
func parseWhoisResponse(domain, rawData, server string) *Registration {
	info := &Registration{
		Domain: domain,
		Source: SourceWhois,
		Server: server,
	}

	var registrar Registrar

	for _, line := range strings.Split(rawData, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">>>") {
			continue
		}

		if match := whoisPatterns["registrar_id"].FindStringSubmatch(line); len(match) > 1 {
			registrar.ID = strings.TrimSpace(match[1])
			continue
		}

		if match := whoisPatterns["registrar"].FindStringSubmatch(line); len(match) > 1 && registrar.Name == "" {
			registrar.Name = strings.TrimSpace(match[1])
		}

		if match := whoisPatterns["abuse_email"].FindStringSubmatch(line); len(match) > 1 {
			registrar.Email = strings.TrimSpace(match[1])
		}

		if match := whoisPatterns["reseller"].FindStringSubmatch(line); len(match) > 1 {
			registrar.Reseller = strings.TrimSpace(match[1])
		}

		if match := whoisPatterns["creation_date"].FindStringSubmatch(line); len(match) > 1 && info.Created == nil {
			info.Created = parseDate(match[1])
		}

		if match := whoisPatterns["expiration_date"].FindStringSubmatch(line); len(match) > 1 && info.Expires == nil {
			info.Expires = parseDate(match[1])
		}

		if match := whoisPatterns["updated_date"].FindStringSubmatch(line); len(match) > 1 && info.Updated == nil {
			info.Updated = parseDate(match[1])
		}

		if match := whoisPatterns["name_server"].FindStringSubmatch(line); len(match) > 1 {
			ns := strings.TrimSuffix(strings.ToLower(match[1]), ".")
			info.NameServers = append(info.NameServers, ns)
		}

		if match := whoisPatterns["status"].FindStringSubmatch(line); len(match) > 1 {
			info.Status = append(info.Status, match[1])
		}
	}

	info.NameServers = removeDuplicates(info.NameServers)
	info.Status = removeDuplicates(info.Status)

	if registrar.Name != "" || registrar.ID != "" {
		info.Registrar = &registrar
	}

	info.Found = info.Registrar != nil || info.Created != nil || len(info.NameServers) > 0

	return info
}

func containsNotFoundMarker(rawData string) bool {
	lower := strings.ToLower(rawData)
	for _, marker := range notFoundMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Common WHOIS date formats
var whoisDateFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",        // RFC3339 UTC
	"2006-01-02T15:04:05",         // RFC3339 without zone
	"2006-01-02 15:04:05 MST",     // Some ccTLDs
	"2006-01-02 15:04:05",         // MySQL datetime
	"2006-01-02",                  // Date only
	"02-Jan-2006 15:04:05 MST",    // Some registrars
	"02-Jan-2006",                 // Some registrars
	"2-Jan-2006",                  // Some registrars
	"January 02 2006",             // Some registrars
	"2006/01/02",                  // Some registrars
	"2006.01.02",                  // Some registrars
	"02.01.2006",                  // Some registrars
	"Mon Jan 2 15:04:05 MST 2006", // Some registrars
}

// parseDate attempts to parse various date formats found in WHOIS data.
// It returns nil when no layout matches.
func parseDate(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)

	for _, format := range whoisDateFormats {
		if date, err := time.Parse(format, dateStr); err == nil {
			utc := date.UTC()
			return &utc
		}
	}

	return nil
}
