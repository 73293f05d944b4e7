// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	usagestore "github.com/baudien321/promptpro/internal/app/store/usage"
	"github.com/baudien321/promptpro/internal/app/system/timeouts"
	"github.com/baudien321/promptpro/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// retentionWorker runs for the life of the process; Shutdown stops it.
var retentionWorker *workers.UsageRetention

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// PromptPro uses it to apply the configured database timeouts and start
// the usage event retention worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.DBTimeoutPing,
		Short:  appCfg.DBTimeoutShort,
		Medium: appCfg.DBTimeoutMedium,
		Long:   appCfg.DBTimeoutLong,
	})

	retentionWorker = workers.NewUsageRetention(
		usagestore.New(deps.MongoDatabase),
		logger,
		appCfg.UsageRetentionSweep,
		appCfg.UsageRetention,
	)
	retentionWorker.Start()
	return nil
}
