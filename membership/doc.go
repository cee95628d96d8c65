// Package membership implements subscription access control for a members
// only content site: webhook ingestion from the billing provider, the
// subscriber store, the post-purchase handshake, signed member sessions,
// and the HTTP access gate.
//
// # Ingestion
//
// The billing provider is the source of truth for membership state. Its
// webhook deliveries are verified against the raw request body, normalized
// into provider agnostic SubscriptionEvents, and applied to the store:
//
//	ingestor, err := membership.NewIngestor(store, sender, log, cfg)
//	err = ingestor.Ingest(ctx, rawBody, signature, eventType)
//
// Subscriber ids are derived deterministically from the normalized email
// address, so redelivered and out of order events converge on one record
// per person without any delivery bookkeeping.
//
// # Handshake
//
// After checkout the buyer lands on the site with only an order reference.
// The Resolver matches it against the store and, when the webhook has not
// arrived yet, falls back to a live provider verification:
//
//	result := resolver.Resolve(ctx, orderID)
//	if result.Matched {
//		err = sessions.Issue(w, result.Claims)
//	}
//
// Every failure path resolves to not matched. The handshake never grants
// access it cannot verify.
//
// # Sessions and the gate
//
// Member sessions are stateless signed cookies carrying only what page
// rendering needs (first name, cohort, status). The Gate middleware guards
// configured path prefixes and redirects anonymous or lapsed visitors to
// the paywall; the Members facade answers "who is this" for handlers and
// templates.
package membership
