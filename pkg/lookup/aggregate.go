package lookup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vit0-9/whois_api/models"
	"github.com/vit0-9/whois_api/pkg/utils/domain"
)

// ErrNoResolver is returned by ResolveAll when the aggregator has no resolver.
var ErrNoResolver = errors.New("lookup: no resolver configured")

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

// Resolver performs a registry lookup for one domain.
type Resolver interface {
	Resolve(ctx context.Context, name string) (*domain.Registration, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, name string) (*domain.Registration, error)

func (f ResolverFunc) Resolve(ctx context.Context, name string) (*domain.Registration, error) {
	return f(ctx, name)
}

// MetricsRecordFunc is an optional callback invoked once per settled lookup.
type MetricsRecordFunc func(success bool, elapsed time.Duration)

// Config holds aggregator configuration.
type Config struct {
	// MaxConcurrency bounds in-flight lookups per batch. 0 means unbounded.
	MaxConcurrency int
}

// Aggregator resolves a batch of domains concurrently. One domain failing
// never affects the others.
type Aggregator struct {
	resolver  Resolver
	cfg       Config
	onMetrics MetricsRecordFunc
	logger    *zap.Logger
}

// NewAggregator creates an Aggregator backed by resolver. A nil logger
// discards output.
func NewAggregator(resolver Resolver, cfg Config, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{resolver: resolver, cfg: cfg, logger: logger}
}

// SetMetricsRecord configures the metrics recording callback.
func (a *Aggregator) SetMetricsRecord(fn MetricsRecordFunc) {
	a.onMetrics = fn
}

// ResolveAll looks up every distinct domain once and waits for all of them to
// settle. The result is keyed by the domain string exactly as given.
func (a *Aggregator) ResolveAll(ctx context.Context, domains []string) (models.BatchResponse, error) {
	if a == nil || a.resolver == nil {
		return nil, ErrNoResolver
	}

	unique := dedupe(domains)
	results := make([]models.LookupResult, len(unique))

	// Tasks never return an error, so Wait joins all of them.
	var g errgroup.Group
	if a.cfg.MaxConcurrency > 0 {
		g.SetLimit(a.cfg.MaxConcurrency)
	}
	for i, d := range unique {
		g.Go(func() error {
			results[i] = a.resolveOne(ctx, d)
			return nil
		})
	}
	_ = g.Wait()

	resp := make(models.BatchResponse, len(unique))
	for i, d := range unique {
		resp[d] = results[i]
	}
	return resp, nil
}

// resolveOne runs a single lookup, converting errors and panics into an
// error entry.
func (a *Aggregator) resolveOne(ctx context.Context, d string) (result models.LookupResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("resolver panicked", zap.String("domain", d), zap.Any("panic", r))
			result = models.LookupResult{Error: fmt.Sprintf("lookup failed: %v", r)}
		}
		if a.onMetrics != nil {
			a.onMetrics(result.Succeeded(), time.Since(start))
		}
	}()

	reg, err := a.resolver.Resolve(ctx, d)
	if err != nil {
		a.logger.Warn("domain lookup failed", zap.String("domain", d), zap.Error(err))
		return models.LookupResult{Error: err.Error()}
	}
	if reg == nil {
		a.logger.Warn("resolver returned no result", zap.String("domain", d))
		return models.LookupResult{Error: "resolver returned no result"}
	}
	return models.LookupResult{Record: ToRecord(reg)}
}

// ToRecord reshapes a registration into the API record. Absent dates stay
// absent; nothing is defaulted apart from empty lists.
func ToRecord(reg *domain.Registration) *models.DomainRecord {
	rec := &models.DomainRecord{
		Found:       reg.Found,
		Status:      nonNil(reg.Status),
		Nameservers: nonNil(reg.NameServers),
		Ts: models.Timestamps{
			Created: formatISO(reg.Created),
			Updated: formatISO(reg.Updated),
			Expires: formatISO(reg.Expires),
		},
	}
	if reg.Registrar != nil {
		rec.Registrar = &models.RegistrarInfo{
			ID:       reg.Registrar.ID,
			Name:     reg.Registrar.Name,
			Email:    reg.Registrar.Email,
			Reseller: reg.Registrar.Reseller,
		}
	}
	return rec
}

func formatISO(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// dedupe drops repeated domains, keeping the first occurrence.
func dedupe(domains []string) []string {
	seen := make(map[string]struct{}, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
