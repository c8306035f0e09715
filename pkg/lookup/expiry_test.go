package lookup_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/vit0-9/whois_api/models"
	"github.com/vit0-9/whois_api/pkg/lookup"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func expiringIn(days int) models.LookupResult {
	return models.LookupResult{Record: &models.DomainRecord{
		Found: true,
		Ts: models.Timestamps{
			Expires: fixedNow.AddDate(0, 0, days).Format("2006-01-02T15:04:05.000Z"),
		},
	}}
}

func TestDaysUntil(t *testing.T) {
	days, ok := lookup.DaysUntil(fixedNow.AddDate(0, 0, 45).Format(time.RFC3339), fixedNow)
	if !ok || days != 45 {
		t.Errorf("got (%d, %v), want (45, true)", days, ok)
	}
	if _, ok := lookup.DaysUntil("", fixedNow); ok {
		t.Errorf("empty input should not parse")
	}
	if _, ok := lookup.DaysUntil("next tuesday", fixedNow); ok {
		t.Errorf("garbage input should not parse")
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		in   models.LookupResult
		want lookup.ExpirationStatus
	}{
		{"expired", expiringIn(-3), lookup.ExpirationCritical},
		{"soon", expiringIn(10), lookup.ExpirationCritical},
		{"critical boundary", expiringIn(30), lookup.ExpirationCritical},
		{"warning", expiringIn(45), lookup.ExpirationWarning},
		{"warning boundary", expiringIn(60), lookup.ExpirationWarning},
		{"safe", expiringIn(200), lookup.ExpirationSafe},
		{"no expiry", models.LookupResult{Record: &models.DomainRecord{Found: true}}, lookup.ExpirationUnknown},
		{"failed", models.LookupResult{Error: "boom"}, lookup.ExpirationUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := lookup.StatusFor(tc.in, fixedNow); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseSortBy(t *testing.T) {
	for in, want := range map[string]lookup.SortBy{
		"domain":      lookup.SortByDomain,
		"expiresasc":  lookup.SortByExpiresAsc,
		"ExpiresDesc": lookup.SortByExpiresDesc,
	} {
		got, err := lookup.ParseSortBy(in)
		if err != nil || got != want {
			t.Errorf("ParseSortBy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := lookup.ParseSortBy("random"); err == nil {
		t.Errorf("expected an error for an unknown order")
	}
}

func TestSortedDomains(t *testing.T) {
	resp := models.BatchResponse{
		"late.com":    expiringIn(300),
		"early.com":   expiringIn(5),
		"middle.com":  expiringIn(90),
		"noexp.com":   {Record: &models.DomainRecord{Found: true}},
		"failed.com":  {Error: "timeout"},
		"alsoear.com": expiringIn(5),
	}

	cases := []struct {
		by   lookup.SortBy
		want []string
	}{
		{lookup.SortByDomain, []string{"alsoear.com", "early.com", "late.com", "middle.com", "noexp.com", "failed.com"}},
		{lookup.SortByExpiresAsc, []string{"alsoear.com", "early.com", "middle.com", "late.com", "noexp.com", "failed.com"}},
		{lookup.SortByExpiresDesc, []string{"late.com", "middle.com", "alsoear.com", "early.com", "noexp.com", "failed.com"}},
	}
	for _, tc := range cases {
		if got := lookup.SortedDomains(resp, tc.by); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.by, got, tc.want)
		}
	}
}
