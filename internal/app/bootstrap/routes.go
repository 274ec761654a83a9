// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	healthfeature "github.com/dalemusser/askbox/internal/app/features/health"
	membersfeature "github.com/dalemusser/askbox/internal/app/features/members"
	messagesfeature "github.com/dalemusser/askbox/internal/app/features/messages"
	memberstore "github.com/dalemusser/askbox/internal/app/store/members"
	messagestore "github.com/dalemusser/askbox/internal/app/store/messages"
	"github.com/dalemusser/askbox/internal/app/system/apierr"
	"github.com/dalemusser/askbox/internal/app/system/txn"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. AskBox builds its two stores from the
// shared Mongo database, wires the fault-to-status error writer, and mounts
// the health, member registry, and message box routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	txnOpts := txn.Options{
		MaxAttempts: appCfg.TxnMaxAttempts,
		Backoff:     appCfg.TxnRetryBackoff,
	}

	members := memberstore.New(deps.AskBoxMongoDatabase, memberstore.Config{
		ScreenNameSuffix: appCfg.ScreenNameSuffix,
		Txn:              txnOpts,
	})
	messages := messagestore.New(deps.AskBoxMongoDatabase, messagestore.Config{
		Txn: txnOpts,
	})

	errWriter := apierr.NewWriter(logger)

	r := chi.NewRouter()

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.AskBoxMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Member registry
	membersHandler := membersfeature.NewHandler(members, errWriter, logger)
	membersfeature.MountRoutes(r, membersHandler)

	// Message boxes
	messagesHandler := messagesfeature.NewHandler(messages, errWriter, logger, appCfg.DefaultPageSize)
	messagesfeature.MountRoutes(r, messagesHandler)

	return r, nil
}
