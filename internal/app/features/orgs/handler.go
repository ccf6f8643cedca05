// Package orgs exposes the organization lifecycle over HTTP: creation,
// lookup, admin login, rename with data migration, and cascading deletion.
package orgs

import (
	"github.com/dalemusser/tenanthub/internal/app/lifecycle"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/ratelimit"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; every payload here is a handful of
// short strings.
const maxBodyBytes = 1 << 16

// Handler holds dependencies for the organization endpoints.
type Handler struct {
	Lifecycle *lifecycle.Orchestrator
	Tokens    *auth.TokenManager
	Login     *ratelimit.LoginLimiter
	Authed    *ratelimit.Limiter
	Log       *zap.Logger
}

// NewHandler constructs an orgs Handler.
func NewHandler(lc *lifecycle.Orchestrator, tm *auth.TokenManager, login *ratelimit.LoginLimiter, authed *ratelimit.Limiter, logger *zap.Logger) *Handler {
	return &Handler{
		Lifecycle: lc,
		Tokens:    tm,
		Login:     login,
		Authed:    authed,
		Log:       logger,
	}
}
