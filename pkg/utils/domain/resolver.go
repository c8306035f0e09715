package domain

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vit0-9/whois_api/pkg/utils"
)

// Lookuper is a single-protocol lookup.
type Lookuper interface {
	Lookup(ctx context.Context, domain string) (*Registration, error)
}

// ResolverConfig configures the default RDAP + WHOIS resolver.
type ResolverConfig struct {
	HTTPTimeout   time.Duration
	WhoisTimeout  time.Duration
	WhoisFallback bool
	UserAgent     string
}

// ChainResolver asks RDAP first and falls back to WHOIS when RDAP fails.
// A definitive "not found" from RDAP is an answer, not a failure.
type ChainResolver struct {
	rdap   Lookuper
	whois  Lookuper
	logger *zap.Logger
}

// NewChainResolver builds a resolver from explicit lookupers. whois may be nil
// to disable the fallback.
func NewChainResolver(rdap, whois Lookuper, logger *zap.Logger) *ChainResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChainResolver{rdap: rdap, whois: whois, logger: logger}
}

// NewResolver wires the production RDAP and WHOIS clients.
func NewResolver(cfg ResolverConfig, logger *zap.Logger) *ChainResolver {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = utils.DefaultUserAgent
	}

	rdapClient := NewRDAPClient(utils.NewHTTPClient(cfg.HTTPTimeout), userAgent)

	var whoisClient Lookuper
	if cfg.WhoisFallback {
		whoisClient = NewWhoisClient(cfg.WhoisTimeout)
	}
	return NewChainResolver(rdapClient, whoisClient, logger)
}

// Resolve implements lookup.Resolver.
func (r *ChainResolver) Resolve(ctx context.Context, domain string) (*Registration, error) {
	reg, rdapErr := r.rdap.Lookup(ctx, domain)
	if rdapErr == nil {
		return reg, nil
	}

	if r.whois == nil {
		return nil, &LookupError{Domain: domain, RDAP: rdapErr}
	}

	r.logger.Debug("rdap lookup failed, falling back to whois",
		zap.String("domain", domain),
		zap.Error(rdapErr),
	)

	reg, whoisErr := r.whois.Lookup(ctx, domain)
	if whoisErr != nil {
		return nil, &LookupError{Domain: domain, RDAP: rdapErr, Whois: whoisErr}
	}
	return reg, nil
}
