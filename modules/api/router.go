package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router builds the membership API router. Mount it under /api; the access
// gate protects the /me subtree by path prefix. Optional middlewares wrap
// only the handshake route, which takes unauthenticated guesses at order
// references and is the one worth throttling.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(gate.Middleware)
//	r.Mount("/api", api.Router(svc, ratelimit.Middleware(limiter, nil, log)))
func Router(s *Service, handshakeMiddlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/webhooks/subscription", s.respond(s.handleWebhook))
	r.With(handshakeMiddlewares...).Post("/handshake", s.respond(s.handleHandshake))
	r.Post("/logout", s.respond(s.handleLogout))

	r.Route("/me", func(me chi.Router) {
		me.Get("/", s.respond(s.handleMe))
		me.Post("/saved-items", s.respond(s.handleSaveItem))
		me.Delete("/saved-items/{ref}", s.respond(s.handleUnsaveItem))
	})

	return r
}
