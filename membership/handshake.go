package membership

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lanternclub/membergate/billing"
	"github.com/lanternclub/membergate/pkg/logger"
)

// Handshake result sources.
const (
	SourceStore            = "store"
	SourceProviderFallback = "provider_fallback"
)

// HandshakeResult is the outcome of a post-purchase handshake. When Matched
// is false the other fields are zero.
type HandshakeResult struct {
	Matched bool
	Source  string
	Claims  Claims
}

// ResolverConfig holds handshake settings.
type ResolverConfig struct {
	FallbackTimeout time.Duration `env:"HANDSHAKE_FALLBACK_TIMEOUT" envDefault:"5s"`
}

// Resolver turns an order reference into session claims. It checks the
// subscriber store first and falls back to a live provider verification when
// the authoritative webhook has not landed yet. Every failure path resolves
// to "not matched"; the handshake never grants access it cannot verify.
type Resolver struct {
	store    Store
	provider billing.Provider
	tiers    *TierCatalog
	log      *slog.Logger
	timeout  time.Duration
}

// NewResolver wires a handshake resolver. The provider is optional; without
// one the store is the only source of truth.
func NewResolver(store Store, provider billing.Provider, tiers *TierCatalog, log *slog.Logger, cfg ResolverConfig) *Resolver {
	if tiers == nil {
		tiers = DefaultTierCatalog()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.FallbackTimeout <= 0 {
		cfg.FallbackTimeout = 5 * time.Second
	}
	return &Resolver{store: store, provider: provider, tiers: tiers, log: log, timeout: cfg.FallbackTimeout}
}

// Resolve matches an order reference against the store, then the provider.
func (r *Resolver) Resolve(ctx context.Context, orderID string) HandshakeResult {
	if orderID == "" {
		return HandshakeResult{}
	}

	record, err := r.store.FindByOrderID(ctx, orderID)
	switch {
	case err == nil:
		if !record.IsActive() {
			return HandshakeResult{}
		}
		return HandshakeResult{
			Matched: true,
			Source:  SourceStore,
			Claims:  r.claimsFor(record),
		}
	case errors.Is(err, ErrSubscriberNotFound):
		// Webhook may not have arrived yet; ask the provider directly.
	default:
		r.log.ErrorContext(ctx, "handshake store lookup failed",
			logger.OrderID(orderID), logger.Error(err))
	}

	return r.resolveViaProvider(ctx, orderID)
}

// resolveViaProvider verifies the order with the billing provider under a
// bounded timeout. The resolver never writes to the store; the webhook
// ingestion path stays the single writer per record, and the session issued
// here carries the baseline tier until the authoritative event lands.
func (r *Resolver) resolveViaProvider(ctx context.Context, orderID string) HandshakeResult {
	if r.provider == nil {
		return HandshakeResult{}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	order, err := r.provider.VerifyOrder(ctx, orderID)
	if err != nil {
		if !errors.Is(err, billing.ErrOrderNotFound) {
			r.log.WarnContext(ctx, "provider fallback failed, handshake fails closed",
				logger.OrderID(orderID), logger.Error(err))
		}
		return HandshakeResult{}
	}
	if !order.Valid {
		return HandshakeResult{}
	}

	record := SubscriberRecord{
		ID:             SubscriberID(order.Email),
		Email:          NormalizeEmail(order.Email),
		Name:           order.Name,
		Status:         StatusActive,
		MembershipTier: r.tiers.Baseline().ID,
	}

	return HandshakeResult{
		Matched: true,
		Source:  SourceProviderFallback,
		Claims:  r.claimsFor(&record),
	}
}

func (r *Resolver) claimsFor(record *SubscriberRecord) Claims {
	claims := Claims{
		FirstName: record.FirstName(),
		Cohort:    r.tiers.CohortFor(record.MembershipTier),
		Status:    record.Status,
	}
	claims.Subject = record.ID.String()
	return claims
}
