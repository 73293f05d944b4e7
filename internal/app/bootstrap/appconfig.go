// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: CoreConfig covers
// framework-level settings like ports, TLS, logging, and CORS, while
// everything specific to PromptPro lives here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: promptpro-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for OAuth callbacks and billing redirect targets
	BaseURL string // e.g., "https://promptpro.example.com" or "http://localhost:3000"

	// Audit logging mode: "all" (db+log), "db", "log", or "off"
	AuditLogMode string

	// Google OAuth configuration
	GoogleClientID     string // Google OAuth2 client ID
	GoogleClientSecret string // Google OAuth2 client secret

	// Stripe configuration
	StripeSecretKey     string // API key for outbound Stripe calls
	StripeWebhookSecret string // Signing secret for inbound webhooks
	StripePriceID       string // Price for the pro subscription

	// Usage event retention
	UsageRetention      time.Duration // How long usage events are kept
	UsageRetentionSweep time.Duration // How often the retention worker runs

	// Per-operation database timeouts (zero keeps the built-in default)
	DBTimeoutPing   time.Duration // Health checks
	DBTimeoutShort  time.Duration // Single-document reads
	DBTimeoutMedium time.Duration // List queries and aggregations
	DBTimeoutLong   time.Duration // Multi-collection writes
}
