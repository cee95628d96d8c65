package api

import (
	"encoding/json"
	"net/http"

	"github.com/lanternclub/membergate/core"
	"github.com/lanternclub/membergate/pkg/logger"
)

// An order reference fits in a few bytes; anything larger is garbage.
const maxHandshakeBody = 4 << 10

type handshakeRequest struct {
	OrderID string `json:"order_id"`
}

type handshakeResponse struct {
	Success bool          `json:"success"`
	User    handshakeUser `json:"user"`
}

type handshakeUser struct {
	FirstName string `json:"first_name,omitempty"`
	Cohort    string `json:"cohort,omitempty"`
	Status    string `json:"status"`
}

// handleHandshake exchanges an order reference for a member session. An
// unresolvable order is an authentication failure: 401 with no cookie set,
// never an optimistic admit.
func (s *Service) handleHandshake(w http.ResponseWriter, r *http.Request) core.Response {
	ctx := r.Context()

	var req handshakeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxHandshakeBody)).Decode(&req); err != nil {
		return core.JSONError(core.ErrBadRequest)
	}

	result := s.resolver.Resolve(ctx, req.OrderID)
	if !result.Matched {
		return core.JSONError(core.ErrUnauthorized)
	}

	if err := s.sessions.Issue(w, result.Claims); err != nil {
		s.log.ErrorContext(ctx, "failed to issue member session",
			logger.OrderID(req.OrderID), logger.Error(err))
		return core.JSONError(core.ErrInternalServerError)
	}

	s.log.InfoContext(ctx, "handshake matched",
		logger.OrderID(req.OrderID), logger.Source(result.Source))

	return core.JSONRaw(http.StatusOK, handshakeResponse{
		Success: true,
		User: handshakeUser{
			FirstName: result.Claims.FirstName,
			Cohort:    result.Claims.Cohort,
			Status:    string(result.Claims.Status),
		},
	})
}
