// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for PromptPro.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: PROMPTPRO_MONGO_URI, PROMPTPRO_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "promptpro", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "promptpro-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	// Base URL for OAuth callbacks and billing redirects
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks and billing redirects"},

	// Audit logging settings
	{Name: "audit_log_mode", Default: "all", Desc: "Audit event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// Stripe configuration
	{Name: "stripe_secret_key", Default: "", Desc: "Stripe API secret key"},
	{Name: "stripe_webhook_secret", Default: "", Desc: "Stripe webhook signing secret"},
	{Name: "stripe_price_id", Default: "", Desc: "Stripe price ID for the pro subscription"},

	// Usage event retention
	{Name: "usage_retention", Default: "2160h", Desc: "How long usage events are kept (e.g., 2160h for 90 days)"},
	{Name: "usage_retention_sweep", Default: "1h", Desc: "How often the usage retention worker runs"},

	// Database operation timeouts
	{Name: "db_timeout_ping", Default: "2s", Desc: "Timeout for database health checks"},
	{Name: "db_timeout_short", Default: "5s", Desc: "Timeout for single-document reads"},
	{Name: "db_timeout_medium", Default: "10s", Desc: "Timeout for list queries and aggregations"},
	{Name: "db_timeout_long", Default: "30s", Desc: "Timeout for multi-collection writes"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, PROMPTPRO_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "PROMPTPRO", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		SessionKey:       appValues.String("session_key"),
		SessionName:      appValues.String("session_name"),
		SessionDomain:    appValues.String("session_domain"),

		BaseURL: appValues.String("base_url"),

		AuditLogMode: appValues.String("audit_log_mode"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		StripeSecretKey:     appValues.String("stripe_secret_key"),
		StripeWebhookSecret: appValues.String("stripe_webhook_secret"),
		StripePriceID:       appValues.String("stripe_price_id"),

		UsageRetention:      appValues.Duration("usage_retention", 90*24*time.Hour),
		UsageRetentionSweep: appValues.Duration("usage_retention_sweep", time.Hour),

		DBTimeoutPing:   appValues.Duration("db_timeout_ping", 2*time.Second),
		DBTimeoutShort:  appValues.Duration("db_timeout_short", 5*time.Second),
		DBTimeoutMedium: appValues.Duration("db_timeout_medium", 10*time.Second),
		DBTimeoutLong:   appValues.Duration("db_timeout_long", 30*time.Second),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
//
// PromptPro validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and rejects half-configured
// Stripe credentials: a webhook secret without an API key (or the other
// way round) is always a deployment mistake.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	stripeSet := 0
	for _, v := range []string{appCfg.StripeSecretKey, appCfg.StripeWebhookSecret, appCfg.StripePriceID} {
		if v != "" {
			stripeSet++
		}
	}
	if stripeSet != 0 && stripeSet != 3 {
		return fmt.Errorf("stripe configuration is incomplete: set all of stripe_secret_key, stripe_webhook_secret, and stripe_price_id, or none")
	}

	if appCfg.UsageRetention <= 0 {
		return fmt.Errorf("usage_retention must be positive")
	}

	return nil
}
