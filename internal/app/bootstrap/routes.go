// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	healthfeature "github.com/dalemusser/tenanthub/internal/app/features/health"
	orgsfeature "github.com/dalemusser/tenanthub/internal/app/features/orgs"
	"github.com/dalemusser/tenanthub/internal/app/lifecycle"
	"github.com/dalemusser/tenanthub/internal/app/store/adminstore"
	"github.com/dalemusser/tenanthub/internal/app/store/collectionstore"
	"github.com/dalemusser/tenanthub/internal/app/store/organizationstore"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. TenantHub builds its stores from the
// injected Mongo handles, wires them into the lifecycle orchestrator, and
// mounts the organization and health feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.JWTSecret, appCfg.TokenExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	orgs := organizationstore.New(deps.MongoDatabase)
	admins := adminstore.New(deps.MongoDatabase)
	colls := collectionstore.New(deps.MongoDatabase, logger)
	orchestrator := lifecycle.New(orgs, admins, colls, logger)

	loginLimiter := ratelimit.NewLoginLimiter(
		appCfg.LoginIPLimit, appCfg.LoginIPWindow,
		appCfg.LoginEmailLimit, appCfg.LoginEmailWindow)
	authedLimiter := ratelimit.New(appCfg.AuthedRateLimit, appCfg.AuthedRateWindow)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Organization lifecycle API
	orgsHandler := orgsfeature.NewHandler(orchestrator, tokens, loginLimiter, authedLimiter, logger)
	r.Mount("/org", orgsfeature.Routes(orgsHandler))

	return r, nil
}
