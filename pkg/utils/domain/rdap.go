package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/openrdap/rdap"
	"github.com/openrdap/rdap/bootstrap"
)

const ianaRegistrarIDType = "IANA Registrar ID"

// RDAPClient looks domains up over RDAP, locating the registry server through
// the IANA bootstrap registry unless BaseURL pins one.
type RDAPClient struct {
	httpClient *http.Client
	userAgent  string
	// BaseURL, when set, is queried directly and bootstrap is skipped.
	BaseURL *url.URL

	// bootstrap caches the IANA registry between lookups. It is not safe for
	// concurrent use, so every call goes through mu.
	mu        sync.Mutex
	bootstrap *bootstrap.Client
}

// NewRDAPClient returns an RDAP client that issues requests with httpClient.
func NewRDAPClient(httpClient *http.Client, userAgent string) *RDAPClient {
	return &RDAPClient{
		httpClient: httpClient,
		userAgent:  userAgent,
		bootstrap:  &bootstrap.Client{HTTP: httpClient},
	}
}

// Lookup queries RDAP for domain. A registry answering "not found" yields a
// Registration with Found false and no error.
func (c *RDAPClient) Lookup(ctx context.Context, domain string) (*Registration, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, fmt.Errorf("domain cannot be empty")
	}

	servers, err := c.serversFor(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("rdap bootstrap for %s: %w", domain, err)
	}

	client := &rdap.Client{HTTP: c.httpClient, UserAgent: c.userAgent}
	req := rdap.NewDomainRequest(domain).WithContext(ctx)

	var lastErr error
	for _, server := range servers {
		resp, err := client.Do(req.WithServer(server))
		if err != nil {
			var clientErr *rdap.ClientError
			if errors.As(err, &clientErr) && clientErr.Type == rdap.ObjectDoesNotExist {
				return &Registration{
					Domain:    domain,
					Found:     false,
					Source:    SourceRDAP,
					Server:    server.Host,
					QueryTime: time.Now(),
				}, nil
			}
			lastErr = err
			continue
		}

		d, ok := resp.Object.(*rdap.Domain)
		if !ok {
			lastErr = fmt.Errorf("unexpected response object %T", resp.Object)
			continue
		}

		reg := registrationFromRDAP(domain, d)
		reg.Server = server.Host
		return reg, nil
	}

	return nil, fmt.Errorf("rdap query for %s: %w", domain, lastErr)
}

// serversFor returns the RDAP base URLs to try for domain.
func (c *RDAPClient) serversFor(ctx context.Context, domain string) ([]*url.URL, error) {
	if c.BaseURL != nil {
		return []*url.URL{c.BaseURL}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bootstrap == nil {
		c.bootstrap = &bootstrap.Client{HTTP: c.httpClient}
	}
	question := (&bootstrap.Question{RegistryType: bootstrap.DNS, Query: domain}).WithContext(ctx)
	answer, err := c.bootstrap.Lookup(question)
	if err != nil {
		return nil, err
	}
	if len(answer.URLs) == 0 {
		return nil, fmt.Errorf("no rdap server for %s", domain)
	}
	return answer.URLs, nil
}

// registrationFromRDAP maps an RDAP domain object onto a Registration.
func registrationFromRDAP(domain string, d *rdap.Domain) *Registration {
	reg := &Registration{
		Domain:    domain,
		Found:     true,
		Source:    SourceRDAP,
		QueryTime: time.Now(),
	}

	for _, s := range d.Status {
		reg.Status = append(reg.Status, eppStatus(s))
	}
	reg.Status = removeDuplicates(reg.Status)

	for _, ns := range d.Nameservers {
		if ns.LDHName == "" {
			continue
		}
		reg.NameServers = append(reg.NameServers, strings.TrimSuffix(strings.ToLower(ns.LDHName), "."))
	}
	reg.NameServers = removeDuplicates(reg.NameServers)

	for _, ev := range d.Events {
		date := parseDate(ev.Date)
		if date == nil {
			continue
		}
		switch strings.ToLower(ev.Action) {
		case "registration":
			reg.Created = date
		case "last changed":
			reg.Updated = date
		case "expiration":
			reg.Expires = date
		}
	}

	reg.Registrar = registrarFromEntities(d.Entities)
	return reg
}

func registrarFromEntities(entities []rdap.Entity) *Registrar {
	var registrar *Registrar
	reseller := ""

	for i := range entities {
		e := &entities[i]
		switch {
		case hasRole(e.Roles, "registrar") && registrar == nil:
			registrar = &Registrar{ID: e.Handle}
			for _, id := range e.PublicIDs {
				if strings.EqualFold(id.Type, ianaRegistrarIDType) {
					registrar.ID = id.Identifier
				}
			}
			if e.VCard != nil {
				registrar.Name = e.VCard.Name()
				registrar.Email = e.VCard.Email()
			}
			for j := range e.Entities {
				abuse := &e.Entities[j]
				if hasRole(abuse.Roles, "abuse") && abuse.VCard != nil && abuse.VCard.Email() != "" {
					registrar.Email = abuse.VCard.Email()
				}
			}
		case hasRole(e.Roles, "reseller") && e.VCard != nil:
			reseller = e.VCard.Name()
		}
	}

	if registrar != nil {
		registrar.Reseller = reseller
	}
	return registrar
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

// eppStatus turns an RDAP status ("client transfer prohibited") into its EPP
// status code form ("clientTransferProhibited").
func eppStatus(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i := 1; i < len(words); i++ {
		words[i] = strings.ToUpper(words[i][:1]) + words[i][1:]
	}
	return strings.Join(words, "")
}
