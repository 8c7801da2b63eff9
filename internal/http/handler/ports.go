package handler

import (
	"context"
	"net/http"

	"authapi/internal/core"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name AuthService . AuthService
type AuthService interface {
	Register(ctx context.Context, msg core.Credentials) (core.Registration, error)
	Login(ctx context.Context, msg core.Credentials) (core.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

//counterfeiter:generate -o fake -fake-name RequestValidator . RequestValidator
type RequestValidator interface {
	DecodeJSONPayload(r *http.Request, object any) error
}

//counterfeiter:generate -o fake -fake-name HealthChecker . HealthChecker
type HealthChecker interface {
	Ping(ctx context.Context) error
}
