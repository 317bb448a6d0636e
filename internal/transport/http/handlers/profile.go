package http_handlers

import (
	"net/http"

	"github.com/wellbot/wellbot-backend/internal/application/profile"
	"github.com/wellbot/wellbot-backend/internal/domain"
	"github.com/wellbot/wellbot-backend/internal/transport/http/dto"
	"github.com/wellbot/wellbot-backend/internal/transport/http/middleware"
	"github.com/wellbot/wellbot-backend/internal/transport/http/response"
)

type ProfileHandler struct {
	svc *profile.Service
}

func NewProfileHandler(svc *profile.Service) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Get handles GET /profile. Requires the Auth middleware.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	p, err := h.svc.Get(r.Context(), id.UserID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.ProfileView(p))
}

// Put handles PUT /profile as a full replace. Requires the Auth middleware.
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenMissing())
		return
	}

	var req dto.ProfileRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.Upsert(r.Context(), id.UserID, req.AgeGroup, req.Gender, req.Language); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Message(w, "Profile updated successfully")
}
