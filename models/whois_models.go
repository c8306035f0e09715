// File: models/whois_models.go
package models

// RegistrarInfo identifies the registrar a domain is registered through.
type RegistrarInfo struct {
	ID       string `json:"id" example:"292"`
	Name     string `json:"name" example:"MarkMonitor Inc."`
	Email    string `json:"email,omitempty" example:"abusecomplaints@markmonitor.com"`
	Reseller string `json:"reseller,omitempty"`
}

// Timestamps holds the registration dates as ISO-8601 strings.
// A date the registry did not report is left out of the JSON entirely.
type Timestamps struct {
	Created string `json:"created,omitempty" example:"1997-09-15T04:00:00.000Z"`
	Updated string `json:"updated,omitempty" example:"2019-09-09T15:39:04.000Z"`
	Expires string `json:"expires,omitempty" example:"2028-09-14T04:00:00.000Z"`
}

// DomainRecord is the success shape of a per-domain lookup.
type DomainRecord struct {
	Found       bool           `json:"found" example:"true"`
	Registrar   *RegistrarInfo `json:"registrar,omitempty"`
	Status      []string       `json:"status"`
	Nameservers []string       `json:"nameservers"`
	Ts          Timestamps     `json:"ts"`
}

// LookupResult is either a DomainRecord or an error message, never both.
// See custom_types.go for its JSON encoding.
type LookupResult struct {
	Record *DomainRecord `swaggerignore:"true"`
	Error  string        `json:"error,omitempty"`
}

// Succeeded reports whether the lookup produced a record.
func (r LookupResult) Succeeded() bool {
	return r.Error == "" && r.Record != nil
}

// BatchResponse maps each requested domain, as submitted, to its outcome.
type BatchResponse map[string]LookupResult
