package core

import "time"

type Credentials struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Registration describes a newly created account. Tokens is nil unless the
// authenticator is configured to log users in on registration.
type Registration struct {
	Email  string
	Tokens *TokenPair
}

type Options struct {
	AccessTokenTTL        time.Duration
	RefreshTokenTTL       time.Duration
	BcryptCost            int
	IssueTokensOnRegister bool
}
