// Package lookup validates batch WHOIS requests and fans them out to a resolver.
package lookup

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationErrorKind classifies why a domain list was rejected.
type ValidationErrorKind int

const (
	// MissingParameter means the domain parameter was not sent at all.
	MissingParameter ValidationErrorKind = iota + 1
	// NoValidDomains means the parameter was sent but held no tokens.
	NoValidDomains
	// InvalidFormat means at least one token is not a domain name.
	InvalidFormat
)

// ValidationError is returned by ParseDomains. Offending lists every token
// that failed the grammar, in input order.
type ValidationError struct {
	Kind      ValidationErrorKind
	Offending []string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingParameter:
		return "domain parameter is required"
	case NoValidDomains:
		return "no domains given"
	default:
		return fmt.Sprintf("invalid domain format: %s", strings.Join(e.Offending, ", "))
	}
}

// Labels are alphanumeric with interior hyphens, 1-63 characters; the TLD is
// letters only and at least two long.
var domainPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,63}$`)

// IsValidDomain reports whether s matches the accepted domain grammar.
func IsValidDomain(s string) bool {
	return domainPattern.MatchString(s)
}

// ParseDomains splits a comma-separated domain list, trims each entry and drops
// empty ones. present distinguishes an absent parameter from an empty one.
func ParseDomains(raw string, present bool) ([]string, error) {
	if !present {
		return nil, &ValidationError{Kind: MissingParameter}
	}

	var domains []string
	for _, part := range strings.Split(raw, ",") {
		if d := strings.TrimSpace(part); d != "" {
			domains = append(domains, d)
		}
	}

	if len(domains) == 0 {
		return nil, &ValidationError{Kind: NoValidDomains}
	}

	var invalid []string
	for _, d := range domains {
		if !IsValidDomain(d) {
			invalid = append(invalid, d)
		}
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{Kind: InvalidFormat, Offending: invalid}
	}

	return domains, nil
}
