package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source names the protocol a Registration was obtained over.
type Source string

const (
	SourceRDAP  Source = "rdap"
	SourceWhois Source = "whois"
)

// Registrar describes the sponsoring registrar of a domain.
type Registrar struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Reseller string `json:"reseller,omitempty"`
}

// Registration is the registry-side view of a domain as reported by RDAP or
// WHOIS. Dates the registry did not report are nil.
type Registration struct {
	Domain      string     `json:"domain"`
	Found       bool       `json:"found"`
	Registrar   *Registrar `json:"registrar,omitempty"`
	Status      []string   `json:"status,omitempty"`
	NameServers []string   `json:"name_servers,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	Updated     *time.Time `json:"updated,omitempty"`
	Expires     *time.Time `json:"expires,omitempty"`
	Source      Source     `json:"source"`
	Server      string     `json:"server,omitempty"`
	QueryTime   time.Time  `json:"query_time"`
}

// LookupError is returned by ChainResolver when every protocol failed.
type LookupError struct {
	Domain string
	RDAP   error
	Whois  error
}

func (e *LookupError) Error() string {
	var parts []string
	if e.RDAP != nil {
		parts = append(parts, "rdap: "+e.RDAP.Error())
	}
	if e.Whois != nil {
		parts = append(parts, "whois: "+e.Whois.Error())
	}
	return fmt.Sprintf("lookup failed for %s (%s)", e.Domain, strings.Join(parts, "; "))
}

func (e *LookupError) Unwrap() []error {
	var errs []error
	if e.RDAP != nil {
		errs = append(errs, e.RDAP)
	}
	if e.Whois != nil {
		errs = append(errs, e.Whois)
	}
	return errs
}

// removeDuplicates removes duplicate strings from slice, keeping first occurrences.
func removeDuplicates(slice []string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, item := range slice {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}
