package api

import (
	"log/slog"
	"net/http"

	"github.com/lanternclub/membergate/core"
	"github.com/lanternclub/membergate/membership"
)

// Service bundles the membership API handlers.
type Service struct {
	ingestor *membership.Ingestor
	resolver *membership.Resolver
	sessions *membership.SessionManager
	members  *membership.Members
	store    membership.Store
	log      *slog.Logger
}

// NewService wires the membership API.
func NewService(
	ingestor *membership.Ingestor,
	resolver *membership.Resolver,
	sessions *membership.SessionManager,
	members *membership.Members,
	store membership.Store,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		ingestor: ingestor,
		resolver: resolver,
		sessions: sessions,
		members:  members,
		store:    store,
		log:      log,
	}
}

// respond adapts a Response-returning handler to http.HandlerFunc. Handlers
// that set cookies write headers through w before returning a Response.
func (s *Service) respond(h func(w http.ResponseWriter, r *http.Request) core.Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r).Render(w, r); err != nil {
			s.log.ErrorContext(r.Context(), "failed to render response", "error", err)
		}
	}
}
