package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"authapi/internal/core"
	"authapi/internal/http/handler/middleware"
	"authapi/internal/http/payload"

	"go.uber.org/zap"
)

var (
	RegisterPath     = "/users"
	AuthRegisterPath = "/auth/users"
	LoginPath        = "/auth/login"
	RefreshPath      = "/auth/refresh"
)

const (
	badCredentials       = "Bad credentials"
	missingAuthorization = "Authorization Header is Missing"
)

type AuthHandler struct {
	logs             *zap.SugaredLogger
	requestValidator RequestValidator
	auth             AuthService
}

func NewAuthHandler(logger *zap.SugaredLogger, requestValidator RequestValidator, authService AuthService) *AuthHandler {
	return &AuthHandler{
		logs:             logger,
		requestValidator: requestValidator,
		auth:             authService,
	}
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	requestId := middleware.RequestIDFromContext(r.Context())

	var req payload.UserRequest
	if err := h.requestValidator.DecodeJSONPayload(r, &req); err != nil {
		respond(h.logs, w, Response{
			Message: "Could not register user",
			Error:   fmt.Errorf("invalid request payload: %w", err).Error(),
		}, http.StatusBadRequest, requestId)
		h.logs.Errorw("failed to decode and validate request payload",
			"error", err,
			"handler", RegisterPath,
			"request_id", requestId)
		return
	}

	registration, err := h.auth.Register(r.Context(), req.ToCredentials())
	if err != nil {
		resp := Response{
			Message: "Could not register user",
		}
		httpCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, core.ErrEmailTaken):
			httpCode = http.StatusConflict
			resp.Message = "User already exists"
			resp.Error = err.Error()
		case errors.Is(err, core.ErrPasswordTooLong):
			httpCode = http.StatusBadRequest
			resp.Error = err.Error()
		default:
			resp.Error = "unexpected error occurred"
		}

		respond(h.logs, w, resp, httpCode, requestId)
		h.logs.Errorw("registration failed",
			"error", err,
			"handler", RegisterPath,
			"request_id", requestId)
		return
	}

	resp := map[string]string{
		"message": fmt.Sprintf("User %s created!", registration.Email),
	}
	if registration.Tokens != nil {
		resp["access_token"] = registration.Tokens.AccessToken
		resp["refresh_token"] = registration.Tokens.RefreshToken
	}

	h.logs.Infow("user created",
		"email", registration.Email,
		"handler", RegisterPath,
		"request_id", requestId)
	respond(h.logs, w, resp, http.StatusCreated, requestId)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestId := middleware.RequestIDFromContext(r.Context())

	var req payload.UserRequest
	if err := h.requestValidator.DecodeJSONPayload(r, &req); err != nil {
		respond(h.logs, w, Response{
			Message: "Could not authenticate",
			Error:   fmt.Errorf("invalid request payload: %w", err).Error(),
		}, http.StatusBadRequest, requestId)
		h.logs.Errorw("failed to decode and validate request payload",
			"error", err,
			"handler", LoginPath,
			"request_id", requestId)
		return
	}

	pair, err := h.auth.Login(r.Context(), req.ToCredentials())
	if err != nil {
		resp := Response{
			Message: "Login failed",
			Error:   "unexpected error occurred",
		}
		httpCode := http.StatusInternalServerError
		// one answer for both cases so callers cannot probe which emails exist
		if errors.Is(err, core.ErrUserNotFound) || errors.Is(err, core.ErrIncorrectPassword) {
			httpCode = http.StatusUnauthorized
			resp = Response{Message: badCredentials}
		}

		respond(h.logs, w, resp, httpCode, requestId)
		h.logs.Errorw("authentication failed",
			"error", err,
			"handler", LoginPath,
			"request_id", requestId)
		return
	}

	resp := map[string]string{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"message":       "Success",
	}
	respond(h.logs, w, resp, http.StatusOK, requestId)
}

func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	requestId := middleware.RequestIDFromContext(r.Context())

	token, ok := bearerToken(r)
	if !ok {
		respond(h.logs, w, Response{
			Message: missingAuthorization,
		}, http.StatusUnauthorized, requestId)
		h.logs.Errorw("missing bearer token",
			"handler", RefreshPath,
			"request_id", requestId)
		return
	}

	access, err := h.auth.Refresh(r.Context(), token)
	if err != nil {
		resp := Response{
			Message: "Could not refresh token",
			Error:   "unexpected error occurred",
		}
		httpCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, core.ErrWrongTokenType):
			httpCode = http.StatusUnauthorized
			resp.Error = err.Error()
		case errors.Is(err, core.ErrInvalidToken):
			httpCode = http.StatusUnauthorized
			resp.Error = core.ErrInvalidToken.Error()
		}

		respond(h.logs, w, resp, httpCode, requestId)
		h.logs.Errorw("token refresh failed",
			"error", err,
			"handler", RefreshPath,
			"request_id", requestId)
		return
	}

	resp := map[string]string{
		"access_token": access,
	}
	respond(h.logs, w, resp, http.StatusOK, requestId)
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
