package http_handlers

import (
	"net/http"

	"github.com/wellbot/wellbot-backend/internal/application/auth"
	"github.com/wellbot/wellbot-backend/internal/logger"
	"github.com/wellbot/wellbot-backend/internal/transport/http/dto"
	"github.com/wellbot/wellbot-backend/internal/transport/http/response"
)

type AccountHandler struct {
	svc *auth.Service
}

func NewAccountHandler(svc *auth.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// Register handles POST /register. It does not log the user in.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Msg("user_registered")

	response.Message(w, "User registered successfully")
}

// Login handles POST /login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.TokenResponse{
		AccessToken: res.Token.Token,
		TokenType:   res.Token.TokenType,
		ExpiresIn:   res.Token.ExpiresIn,
	})
}
