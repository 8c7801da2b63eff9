package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"authapi/internal/repository"
	tokenIssuer "authapi/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrIncorrectPassword error = errors.New("incorrect password")
	ErrUserNotFound      error = errors.New("user not found")
	ErrEmailTaken        error = errors.New("email already registered")
	ErrInvalidToken      error = errors.New("invalid token")
	ErrWrongTokenType    error = errors.New("only refresh tokens are allowed")
	ErrPasswordTooLong   error = errors.New("password is longer than 72 bytes")
)

// compared against when the user does not exist so that both failure paths cost a bcrypt round
const dummyPasswordHash = "$2a$10$7PrikY/17DYiRAA6JlaGl.yo26gwhTT53ESuovxGWvWJ4HhvGI/GK"

// Authenticator registers users, checks their credentials and issues JWTs.
type Authenticator struct {
	logs      *zap.SugaredLogger
	repo      Repository
	jwtIssuer JWTIssuer
	opts      Options
}

// NewAuthenticator is a constructor function for the Authenticator type.
func NewAuthenticator(logger *zap.SugaredLogger, repo Repository, jwt JWTIssuer, opts Options) *Authenticator {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Authenticator{
		logs:      logger,
		repo:      repo,
		jwtIssuer: jwt,
		opts:      opts,
	}
}

// Register hashes the password and stores a new user. A duplicate email yields ErrEmailTaken.
func (a *Authenticator) Register(ctx context.Context, msg Credentials) (Registration, error) {
	email := normalizeEmail(msg.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(msg.Password), a.opts.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Registration{}, ErrPasswordTooLong
		}
		return Registration{}, fmt.Errorf("hash password: %w", err)
	}

	user := repository.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := a.repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return Registration{}, ErrEmailTaken
		}
		return Registration{}, fmt.Errorf("create user: %w", err)
	}

	a.logs.Infow("user registered", "user_id", user.ID, "email", user.Email)

	registration := Registration{Email: user.Email}
	if !a.opts.IssueTokensOnRegister {
		return registration, nil
	}

	pair, err := a.issueTokenPair(user.Email)
	if err != nil {
		return Registration{}, err
	}
	registration.Tokens = &pair

	return registration, nil
}

// Login checks the credentials against the stored hash and returns a fresh token pair.
func (a *Authenticator) Login(ctx context.Context, msg Credentials) (TokenPair, error) {
	user, err := a.repo.GetUserByEmail(ctx, normalizeEmail(msg.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(msg.Password))
			return TokenPair{}, ErrUserNotFound
		}
		return TokenPair{}, fmt.Errorf("get user from db: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(msg.Password)); err != nil {
		return TokenPair{}, ErrIncorrectPassword
	}

	return a.issueTokenPair(user.Email)
}

// Refresh validates a refresh token and mints a new access token for the same identity.
func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := a.jwtIssuer.Validate(refreshToken)
	if err != nil {
		return "", fmt.Errorf("validate jwt token: %w: %w", ErrInvalidToken, err)
	}

	if tokenType, _ := claims[tokenIssuer.ClaimType].(string); tokenType != tokenIssuer.TypeRefresh {
		return "", ErrWrongTokenType
	}

	identity, _ := claims[tokenIssuer.ClaimSubject].(string)
	if identity == "" {
		return "", fmt.Errorf("missing subject claim: %w", ErrInvalidToken)
	}

	access, err := a.signToken(identity, tokenIssuer.TypeAccess, a.opts.AccessTokenTTL)
	if err != nil {
		return "", err
	}

	a.logs.Infow("access token refreshed", "email", identity)
	return access, nil
}

func (a *Authenticator) issueTokenPair(identity string) (TokenPair, error) {
	access, err := a.signToken(identity, tokenIssuer.TypeAccess, a.opts.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := a.signToken(identity, tokenIssuer.TypeRefresh, a.opts.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (a *Authenticator) signToken(identity, tokenType string, ttl time.Duration) (string, error) {
	token := a.jwtIssuer.Generate(tokenIssuer.TokenInfo{
		Subject:    identity,
		Type:       tokenType,
		Expiration: ttl,
	})

	signed, err := a.jwtIssuer.Sign(token)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", tokenType, err)
	}

	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
