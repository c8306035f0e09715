package lookup

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vit0-9/whois_api/models"
)

// ExpirationStatus buckets a domain by how soon it expires.
type ExpirationStatus string

const (
	ExpirationCritical ExpirationStatus = "critical"
	ExpirationWarning  ExpirationStatus = "warning"
	ExpirationSafe     ExpirationStatus = "safe"
	ExpirationUnknown  ExpirationStatus = "unknown"
)

// Expiration thresholds in days.
const (
	CriticalDays = 30
	WarningDays  = 60
)

// DaysUntil returns whole days from now until the ISO-8601 timestamp expires.
// ok is false when expires is empty or unparsable.
func DaysUntil(expires string, now time.Time) (days int, ok bool) {
	if expires == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339Nano, expires)
	if err != nil {
		return 0, false
	}
	return int(t.Sub(now).Hours() / 24), true
}

// StatusFor classifies a lookup result by its expiry date.
func StatusFor(r models.LookupResult, now time.Time) ExpirationStatus {
	if !r.Succeeded() {
		return ExpirationUnknown
	}
	days, ok := DaysUntil(r.Record.Ts.Expires, now)
	switch {
	case !ok:
		return ExpirationUnknown
	case days <= CriticalDays:
		return ExpirationCritical
	case days <= WarningDays:
		return ExpirationWarning
	default:
		return ExpirationSafe
	}
}

// SortBy orders batch results for display.
type SortBy string

const (
	SortByDomain      SortBy = "domain"
	SortByExpiresAsc  SortBy = "expiresAsc"
	SortByExpiresDesc SortBy = "expiresDesc"
)

// ParseSortBy accepts the sort names case-insensitively.
func ParseSortBy(s string) (SortBy, error) {
	for _, v := range []SortBy{SortByDomain, SortByExpiresAsc, SortByExpiresDesc} {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown sort order %q", s)
}

// SortedDomains returns the keys of resp in the requested order. Failed
// lookups come after successful ones and results without an expiry date come
// after those with one; ties fall back to domain order.
func SortedDomains(resp models.BatchResponse, by SortBy) []string {
	keys := make([]string, 0, len(resp))
	for k := range resp {
		keys = append(keys, k)
	}

	expiry := func(k string) (time.Time, bool) {
		r := resp[k]
		if !r.Succeeded() || r.Record.Ts.Expires == "" {
			return time.Time{}, false
		}
		t, err := time.Parse(time.RFC3339Nano, r.Record.Ts.Expires)
		return t, err == nil
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		okA, okB := resp[a].Succeeded(), resp[b].Succeeded()
		if okA != okB {
			return okA
		}
		if by == SortByDomain {
			return a < b
		}
		ta, hasA := expiry(a)
		tb, hasB := expiry(b)
		if hasA != hasB {
			return hasA
		}
		if hasA && !ta.Equal(tb) {
			if by == SortByExpiresDesc {
				return ta.After(tb)
			}
			return ta.Before(tb)
		}
		return a < b
	})
	return keys
}
