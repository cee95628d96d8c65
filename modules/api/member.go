package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lanternclub/membergate/core"
	"github.com/lanternclub/membergate/membership"
	"github.com/lanternclub/membergate/pkg/logger"
)

type meResponse struct {
	FirstName     string    `json:"first_name,omitempty"`
	Cohort        string    `json:"cohort,omitempty"`
	Status        string    `json:"status"`
	JoinedAt      time.Time `json:"joined_at,omitzero"`
	SavedItemRefs []string  `json:"saved_item_refs"`
}

type saveItemRequest struct {
	Ref string `json:"ref"`
}

// currentSubscriber resolves the session to a subscriber id. The gate has
// already verified the cookie for /me routes; this re-checks anyway so the
// handlers stay safe if mounted without it.
func (s *Service) currentSubscriber(r *http.Request) (membership.Claims, uuid.UUID, error) {
	claims, ok := s.members.Current(r)
	if !ok || !claims.IsActive() {
		return membership.Claims{}, uuid.Nil, core.ErrUnauthorized
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return membership.Claims{}, uuid.Nil, core.ErrUnauthorized
	}
	return claims, id, nil
}

func (s *Service) handleMe(_ http.ResponseWriter, r *http.Request) core.Response {
	claims, id, err := s.currentSubscriber(r)
	if err != nil {
		return core.JSONError(err)
	}

	resp := meResponse{
		FirstName:     claims.FirstName,
		Cohort:        claims.Cohort,
		Status:        string(claims.Status),
		SavedItemRefs: []string{},
	}

	// The store enriches the session view; a missing record still renders
	// what the session carries.
	record, err := s.store.FindByID(r.Context(), id)
	switch {
	case err == nil:
		resp.JoinedAt = record.JoinedAt
		if record.SavedItemRefs != nil {
			resp.SavedItemRefs = record.SavedItemRefs
		}
	case errors.Is(err, membership.ErrSubscriberNotFound):
	default:
		s.log.ErrorContext(r.Context(), "failed to load subscriber profile",
			logger.SubscriberID(id.String()), logger.Error(err))
		return core.JSONError(core.ErrInternalServerError)
	}

	return core.JSON(resp)
}

func (s *Service) handleSaveItem(_ http.ResponseWriter, r *http.Request) core.Response {
	_, id, err := s.currentSubscriber(r)
	if err != nil {
		return core.JSONError(err)
	}

	var req saveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ref == "" {
		return core.JSONError(core.ErrBadRequest)
	}

	return s.renderSavedItems(r, id, s.store.AppendSavedItem(r.Context(), id, req.Ref))
}

func (s *Service) handleUnsaveItem(_ http.ResponseWriter, r *http.Request) core.Response {
	_, id, err := s.currentSubscriber(r)
	if err != nil {
		return core.JSONError(err)
	}

	ref := chi.URLParam(r, "ref")
	if ref == "" {
		return core.JSONError(core.ErrBadRequest)
	}

	return s.renderSavedItems(r, id, s.store.RemoveSavedItem(r.Context(), id, ref))
}

// renderSavedItems finishes a saved-items mutation with the updated list.
func (s *Service) renderSavedItems(r *http.Request, id uuid.UUID, mutErr error) core.Response {
	if mutErr != nil {
		if errors.Is(mutErr, membership.ErrSubscriberNotFound) {
			return core.JSONError(core.ErrNotFound)
		}
		s.log.ErrorContext(r.Context(), "failed to update saved items",
			logger.SubscriberID(id.String()), logger.Error(mutErr))
		return core.JSONError(core.ErrInternalServerError)
	}

	record, err := s.store.FindByID(r.Context(), id)
	if err != nil {
		s.log.ErrorContext(r.Context(), "failed to reload saved items",
			logger.SubscriberID(id.String()), logger.Error(err))
		return core.JSONError(core.ErrInternalServerError)
	}

	refs := record.SavedItemRefs
	if refs == nil {
		refs = []string{}
	}
	return core.JSON(map[string]any{"saved_item_refs": refs})
}

func (s *Service) handleLogout(w http.ResponseWriter, _ *http.Request) core.Response {
	s.members.Logout(w)
	return core.JSON(map[string]any{"logged_out": true})
}
