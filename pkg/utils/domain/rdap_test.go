package domain

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const exampleRDAP = `{
  "objectClassName": "domain",
  "ldhName": "EXAMPLE.COM",
  "status": ["client delete prohibited", "client transfer prohibited", "client update prohibited"],
  "events": [
    {"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"},
    {"eventAction": "expiration", "eventDate": "2025-08-13T04:00:00Z"},
    {"eventAction": "last changed", "eventDate": "2024-08-14T07:01:34Z"},
    {"eventAction": "last update of RDAP database", "eventDate": "2026-03-01T12:00:00Z"}
  ],
  "nameservers": [
    {"objectClassName": "nameserver", "ldhName": "A.IANA-SERVERS.NET"},
    {"objectClassName": "nameserver", "ldhName": "B.IANA-SERVERS.NET"}
  ],
  "entities": [
    {
      "objectClassName": "entity",
      "handle": "376",
      "roles": ["registrar"],
      "publicIds": [{"type": "IANA Registrar ID", "identifier": "376"}],
      "vcardArray": ["vcard", [
        ["version", {}, "text", "4.0"],
        ["fn", {}, "text", "RESERVED-Internet Assigned Numbers Authority"]
      ]],
      "entities": [
        {
          "objectClassName": "entity",
          "roles": ["abuse"],
          "vcardArray": ["vcard", [
            ["version", {}, "text", "4.0"],
            ["fn", {}, "text", ""],
            ["email", {}, "text", "abuse@iana.org"]
          ]]
        }
      ]
    }
  ]
}`

func newRDAPTestServer(t *testing.T) *RDAPClient {
	t.Helper()
	srv := newRDAPRegistry(t)

	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	c := NewRDAPClient(srv.Client(), "whois-api-test")
	c.BaseURL = base
	return c
}

func newRDAPRegistry(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/domain/example.com") {
			w.Header().Set("Content-Type", "application/rdap+json")
			w.Write([]byte(exampleRDAP))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRDAPClient_Lookup(t *testing.T) {
	c := newRDAPTestServer(t)

	reg, err := c.Lookup(context.Background(), "Example.com")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if !reg.Found || reg.Source != SourceRDAP {
		t.Errorf("found/source: got %v %q", reg.Found, reg.Source)
	}

	wantStatus := []string{"clientDeleteProhibited", "clientTransferProhibited", "clientUpdateProhibited"}
	if !reflect.DeepEqual(reg.Status, wantStatus) {
		t.Errorf("status: got %v, want %v", reg.Status, wantStatus)
	}
	wantNS := []string{"a.iana-servers.net", "b.iana-servers.net"}
	if !reflect.DeepEqual(reg.NameServers, wantNS) {
		t.Errorf("name servers: got %v, want %v", reg.NameServers, wantNS)
	}

	wantRegistrar := &Registrar{ID: "376", Name: "RESERVED-Internet Assigned Numbers Authority", Email: "abuse@iana.org"}
	if !reflect.DeepEqual(reg.Registrar, wantRegistrar) {
		t.Errorf("registrar: got %+v, want %+v", reg.Registrar, wantRegistrar)
	}

	if reg.Created == nil || !reg.Created.Equal(time.Date(1995, 8, 14, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("created: got %v", reg.Created)
	}
	if reg.Updated == nil || !reg.Updated.Equal(time.Date(2024, 8, 14, 7, 1, 34, 0, time.UTC)) {
		t.Errorf("updated: got %v", reg.Updated)
	}
	if reg.Expires == nil || !reg.Expires.Equal(time.Date(2025, 8, 13, 4, 0, 0, 0, time.UTC)) {
		t.Errorf("expires: got %v", reg.Expires)
	}
}

func TestRDAPClient_notFound(t *testing.T) {
	c := newRDAPTestServer(t)

	reg, err := c.Lookup(context.Background(), "missing.com")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if reg.Found {
		t.Errorf("expected Found to be false")
	}
	if reg.Registrar != nil || reg.Created != nil {
		t.Errorf("unexpected data: %+v", reg)
	}
}

func TestEPPStatus(t *testing.T) {
	cases := map[string]string{
		"active":                     "active",
		"client transfer prohibited": "clientTransferProhibited",
		"Server Delete Prohibited":   "serverDeleteProhibited",
		"pending  delete":            "pendingDelete",
	}
	for in, want := range cases {
		if got := eppStatus(in); got != want {
			t.Errorf("eppStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRDAPClient_bootstrapsOnce(t *testing.T) {
	registry := newRDAPTestServer(t).BaseURL

	var fetches atomic.Int32
	iana := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dns.json" {
			http.NotFound(w, r)
			return
		}
		fetches.Add(1)
		fmt.Fprintf(w, `{"version":"1.0","publication":"2026-03-01T00:00:00Z","services":[[["com"],[%q]]]}`, registry.String())
	}))
	t.Cleanup(iana.Close)

	c := NewRDAPClient(http.DefaultClient, "whois-api-test")
	c.bootstrap.BaseURL, _ = url.Parse(iana.URL + "/")

	domains := []string{"example.com", "missing.com", "example.com", "other.com"}
	var wg sync.WaitGroup
	errs := make([]error, len(domains))
	for i, d := range domains {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.Lookup(context.Background(), d)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("%s: %v", domains[i], err)
		}
	}
	if got := fetches.Load(); got != 1 {
		t.Errorf("bootstrap registry fetched %d times, want 1", got)
	}

	reg, err := c.Lookup(context.Background(), "example.com")
	if err != nil || !reg.Found || reg.Server != registry.Host {
		t.Errorf("bootstrapped lookup: got %+v, %v", reg, err)
	}
}

func TestRDAPClient_noBootstrapMatch(t *testing.T) {
	iana := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":"1.0","services":[[["net"],["https://rdap.example.net/"]]]}`))
	}))
	t.Cleanup(iana.Close)

	c := NewRDAPClient(http.DefaultClient, "whois-api-test")
	c.bootstrap.BaseURL, _ = url.Parse(iana.URL + "/")

	if _, err := c.Lookup(context.Background(), "example.zzzz"); err == nil {
		t.Errorf("expected an error when no registry serves the TLD")
	}
}
