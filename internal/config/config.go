package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"
)

var (
	errEnvVarNotFound error = errors.New("environment variable not found")
	errInvalidValue   error = errors.New("invalid environment variable value")
)

const (
	appEnvEnvKey           = "APP_ENV"
	apiPortEnvKey          = "API_PORT"
	dbDriverEnvKey         = "DB_DRIVER"
	dbConnEnvKey           = "DB_CONNECTION_URL"
	jwtSecretEnvKey        = "JWT_SECRET"
	accessTTLEnvKey        = "ACCESS_TOKEN_TTL"
	refreshTTLEnvKey       = "REFRESH_TOKEN_TTL"
	bcryptCostEnvKey       = "BCRYPT_COST"
	registerTokensEnvKey   = "REGISTER_ISSUES_TOKENS"
	logLevelEnvKey         = "LOG_LEVEL"
	corsOriginsEnvKey      = "CORS_ORIGINS"
	developmentEnv         = "development"
	productionEnv          = "production"
	devJWTSecret           = "dev-only-jwt-secret"
	defaultSQLitePath      = "app.db"
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 30 * 24 * time.Hour
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type App struct {
	Env                  string
	Port                 string
	DBDriver             string
	DBConnectionURL      string
	JWTSecret            string
	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	BcryptCost           int
	RegisterIssuesTokens bool
	LogLevel             zapcore.Level
	CORSOrigins          []string
}

// Development reports whether the app runs with development conveniences enabled.
func (a App) Development() bool {
	return a.Env == developmentEnv
}

// InsecureSecret reports whether the JWT secret is the development fallback.
func (a App) InsecureSecret() bool {
	return a.JWTSecret == devJWTSecret
}

// NewApp reads the configuration from the environment, loading a .env file
// first when one is present.
func NewApp() (App, error) {
	_ = godotenv.Load()

	app := App{
		Env:             getEnv(appEnvEnvKey, productionEnv),
		DBDriver:        getEnv(dbDriverEnvKey, DriverSQLite),
		AccessTokenTTL:  defaultAccessTokenTTL,
		RefreshTokenTTL: defaultRefreshTokenTTL,
		BcryptCost:      bcrypt.DefaultCost,
		LogLevel:        zapcore.InfoLevel,
	}

	if app.Env != developmentEnv && app.Env != productionEnv {
		return App{}, fmt.Errorf("%w: %s=%q", errInvalidValue, appEnvEnvKey, app.Env)
	}

	port, ok := os.LookupEnv(apiPortEnvKey)
	if !ok {
		return App{}, fmt.Errorf("%w: %s", errEnvVarNotFound, apiPortEnvKey)
	}
	app.Port = port

	switch app.DBDriver {
	case DriverSQLite:
		app.DBConnectionURL = getEnv(dbConnEnvKey, defaultSQLitePath)
	case DriverPostgres:
		dbConn, ok := os.LookupEnv(dbConnEnvKey)
		if !ok {
			return App{}, fmt.Errorf("%w: %s", errEnvVarNotFound, dbConnEnvKey)
		}
		app.DBConnectionURL = dbConn
	default:
		return App{}, fmt.Errorf("%w: %s=%q", errInvalidValue, dbDriverEnvKey, app.DBDriver)
	}

	jwtSecret, ok := os.LookupEnv(jwtSecretEnvKey)
	if !ok || jwtSecret == "" {
		if !app.Development() {
			return App{}, fmt.Errorf("%w: %s", errEnvVarNotFound, jwtSecretEnvKey)
		}
		jwtSecret = devJWTSecret
	}
	app.JWTSecret = jwtSecret

	var err error
	if app.AccessTokenTTL, err = durationEnv(accessTTLEnvKey, app.AccessTokenTTL); err != nil {
		return App{}, err
	}
	if app.RefreshTokenTTL, err = durationEnv(refreshTTLEnvKey, app.RefreshTokenTTL); err != nil {
		return App{}, err
	}

	if raw, ok := os.LookupEnv(bcryptCostEnvKey); ok {
		cost, err := strconv.Atoi(raw)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return App{}, fmt.Errorf("%w: %s=%q", errInvalidValue, bcryptCostEnvKey, raw)
		}
		app.BcryptCost = cost
	}

	if raw, ok := os.LookupEnv(registerTokensEnvKey); ok {
		issue, err := strconv.ParseBool(raw)
		if err != nil {
			return App{}, fmt.Errorf("%w: %s=%q", errInvalidValue, registerTokensEnvKey, raw)
		}
		app.RegisterIssuesTokens = issue
	}

	if raw, ok := os.LookupEnv(logLevelEnvKey); ok {
		level, err := zapcore.ParseLevel(raw)
		if err != nil {
			return App{}, fmt.Errorf("%w: %s=%q", errInvalidValue, logLevelEnvKey, raw)
		}
		app.LogLevel = level
	}

	for _, origin := range strings.Split(os.Getenv(corsOriginsEnvKey), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			app.CORSOrigins = append(app.CORSOrigins, trimmed)
		}
	}

	return app, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", errInvalidValue, key, raw)
	}
	return d, nil
}
