package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/vit0-9/whois_api/models"
	"github.com/vit0-9/whois_api/pkg/lookup"
)

func sampleResults(now time.Time) models.BatchResponse {
	return models.BatchResponse{
		"example.com": {Record: &models.DomainRecord{
			Found:       true,
			Registrar:   &models.RegistrarInfo{ID: "376", Name: "IANA"},
			Status:      []string{},
			Nameservers: []string{},
			Ts:          models.Timestamps{Expires: now.AddDate(0, 0, 20).Format("2006-01-02T15:04:05.000Z")},
		}},
		"broken.com": {Error: "registry unreachable"},
	}
}

func TestPrintLookupText(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	results := sampleResults(now)

	var buf bytes.Buffer
	if err := printLookupText(&buf, results, lookup.SortedDomains(results, lookup.SortByDomain), now); err != nil {
		t.Fatalf("printLookupText() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "DOMAIN") {
		t.Errorf("header: %q", lines[0])
	}
	for _, want := range []string{"example.com", "IANA", "2026-03-21", "20", "critical"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
	if !strings.HasPrefix(lines[2], "broken.com") || !strings.Contains(lines[2], "registry unreachable") {
		t.Errorf("failed row: %q", lines[2])
	}
}

func TestPrintLookupJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printLookupJSON(&buf, sampleResults(time.Now())); err != nil {
		t.Fatalf("printLookupJSON() error: %v", err)
	}
	var got map[string]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["broken.com"]["error"] != "registry unreachable" || got["example.com"]["found"] != true {
		t.Errorf("unexpected output: %v", got)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "whoisctl dev" {
		t.Errorf("got %q", got)
	}
}

func TestLookupCommand_rejectsBadInput(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"lookup", "not_a_domain"})
	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "not_a_domain") {
		t.Errorf("expected a validation error naming the token, got %v", err)
	}
}
