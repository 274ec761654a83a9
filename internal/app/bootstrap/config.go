// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/askbox/internal/app/system/screenname"
)

// appConfigKeys defines the configuration keys for AskBox.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, screen_name_suffix, etc.
//   - Environment variables: ASKBOX_MONGO_URI, ASKBOX_SCREEN_NAME_SUFFIX, etc.
//   - Command-line flags: --mongo_uri, --screen_name_suffix, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "askbox", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "screen_name_suffix", Default: screenname.DefaultSuffix, Desc: "Email suffix stripped to derive screen names"},

	{Name: "txn_max_attempts", Default: 3, Desc: "Max attempts for a transactional write before giving up"},
	{Name: "txn_retry_backoff", Default: "25ms", Desc: "Pause between transaction retry attempts (e.g., 25ms, 1s)"},

	{Name: "default_page_size", Default: 10, Desc: "Default page size for paged message listings"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, ASKBOX_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ASKBOX", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		ScreenNameSuffix: appValues.String("screen_name_suffix"),

		TxnMaxAttempts:  appValues.Int("txn_max_attempts"),
		TxnRetryBackoff: appValues.Duration("txn_retry_backoff", 25*time.Millisecond),

		DefaultPageSize: int64(appValues.Int("default_page_size")),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// AskBox validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and sanity-checks the retry and
// paging settings.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.TxnMaxAttempts < 1 {
		return fmt.Errorf("txn_max_attempts must be at least 1, got %d", appCfg.TxnMaxAttempts)
	}
	if appCfg.TxnRetryBackoff < 0 {
		return fmt.Errorf("txn_retry_backoff must not be negative, got %s", appCfg.TxnRetryBackoff)
	}
	if appCfg.DefaultPageSize < 1 {
		return fmt.Errorf("default_page_size must be at least 1, got %d", appCfg.DefaultPageSize)
	}
	return nil
}
