// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/baudien321/promptpro/internal/app/features/analytics"
	auditlogfeature "github.com/baudien321/promptpro/internal/app/features/auditlog"
	authgooglefeature "github.com/baudien321/promptpro/internal/app/features/authgoogle"
	billingfeature "github.com/baudien321/promptpro/internal/app/features/billing"
	collectionsfeature "github.com/baudien321/promptpro/internal/app/features/collections"
	commentsfeature "github.com/baudien321/promptpro/internal/app/features/comments"
	healthfeature "github.com/baudien321/promptpro/internal/app/features/health"
	loginfeature "github.com/baudien321/promptpro/internal/app/features/login"
	logoutfeature "github.com/baudien321/promptpro/internal/app/features/logout"
	profilefeature "github.com/baudien321/promptpro/internal/app/features/profile"
	promptsfeature "github.com/baudien321/promptpro/internal/app/features/prompts"
	registerfeature "github.com/baudien321/promptpro/internal/app/features/register"
	teamsfeature "github.com/baudien321/promptpro/internal/app/features/teams"
	auditstore "github.com/baudien321/promptpro/internal/app/store/audit"
	collectionstore "github.com/baudien321/promptpro/internal/app/store/collections"
	commentstore "github.com/baudien321/promptpro/internal/app/store/comments"
	promptstore "github.com/baudien321/promptpro/internal/app/store/prompts"
	teamstore "github.com/baudien321/promptpro/internal/app/store/teams"
	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	userstore "github.com/baudien321/promptpro/internal/app/store/users"
	"github.com/baudien321/promptpro/internal/app/system/auditlog"
	"github.com/baudien321/promptpro/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. PromptPro builds its stores
// once, shares them across features, applies session middleware, and
// mounts a feature router per API area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	users := userstore.New(db)
	teams := teamstore.New(db)
	prompts := promptstore.New(db)
	collections := collectionstore.New(db)
	comments := commentstore.New(db)
	usage := usagestore.New(db)
	audits := auditstore.New(db)

	auditLogger := auditlog.New(audits, logger, auditlog.Config{Mode: appCfg.AuditLogMode})

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	registerHandler := registerfeature.NewHandler(users, sessionMgr, auditLogger, logger)
	r.Mount("/register", registerfeature.Routes(registerHandler))

	loginHandler := loginfeature.NewHandler(users, sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	googleHandler := authgooglefeature.NewHandler(users, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, appCfg.SessionKey, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	profileHandler := profilefeature.NewHandler(users, logger)
	r.Mount("/me", profilefeature.Routes(profileHandler, sessionMgr))

	// Teams and membership
	teamsHandler := teamsfeature.NewHandler(teams, users, prompts, auditLogger, logger)
	r.Mount("/teams", teamsfeature.Routes(teamsHandler, sessionMgr))

	// Prompts, with the prompt-scoped comment routes
	commentsHandler := commentsfeature.NewHandler(comments, prompts, teams, auditLogger, logger)
	promptsHandler := promptsfeature.NewHandler(prompts, teams, users, usage, auditLogger, logger)
	r.Mount("/prompts", promptsfeature.Routes(promptsHandler, commentsHandler, sessionMgr))
	r.Mount("/comments", commentsfeature.Routes(commentsHandler, sessionMgr))

	// Collections
	collectionsHandler := collectionsfeature.NewHandler(collections, prompts, logger)
	r.Mount("/collections", collectionsfeature.Routes(collectionsHandler, sessionMgr))

	// Analytics
	analyticsHandler := analyticsfeature.NewHandler(usage, prompts, teams, logger)
	r.Mount("/analytics", analyticsfeature.Routes(analyticsHandler, sessionMgr))

	// Audit trail
	auditHandler := auditlogfeature.NewHandler(audits, teams, logger)
	r.Mount("/audit", auditlogfeature.Routes(auditHandler, sessionMgr))

	// Billing
	billingHandler := billingfeature.NewHandler(teams, auditLogger,
		appCfg.StripeSecretKey, appCfg.StripeWebhookSecret, appCfg.StripePriceID, appCfg.BaseURL, logger)
	r.Mount("/billing", billingfeature.Routes(billingHandler, sessionMgr))

	return r, nil
}
