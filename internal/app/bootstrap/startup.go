// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("askbox starting",
		zap.String("screen_name_suffix", appCfg.ScreenNameSuffix),
		zap.Int("txn_max_attempts", appCfg.TxnMaxAttempts),
		zap.Int64("default_page_size", appCfg.DefaultPageSize))
	return nil
}
