// internal/app/features/orgs/login.go
package orgs

import (
	"context"
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"github.com/dalemusser/tenanthub/internal/app/system/httpjson"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleLogin handles POST /admin/login. Successful logins return a bearer
// token and reset the caller's email rate-limit window; failures share one
// generic unauthorized response so the endpoint does not reveal which
// accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req, maxBodyBytes); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	if allowed, key := h.Login.Check(r, req.Email); !allowed {
		h.Log.Warn("login rate limit exceeded", zap.String("key", key))
		httpjson.Error(w, h.Log, apperr.RateLimited("too many login attempts, please try again later"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admin, err := h.Lifecycle.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	token, err := h.Tokens.Issue(*admin)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpjson.Error(w, h.Log, apperr.Storage("failed to issue token", err))
		return
	}

	h.Login.ResetEmail(admin.Email)

	httpjson.Write(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.Tokens.Expiry().Seconds()),
	})
}
