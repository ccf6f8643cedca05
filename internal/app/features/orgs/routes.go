// internal/app/features/orgs/routes.go
package orgs

import (
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/httpjson"
	"github.com/go-chi/chi/v5"
)

// Routes mounts all organization routes under the base path
// (typically "/org" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public endpoints
	r.Post("/create", h.HandleCreate)
	r.Get("/get", h.ServeGet)
	r.Post("/admin/login", h.HandleLogin)

	// Bearer-token endpoints
	r.Group(func(pr chi.Router) {
		pr.Use(h.Tokens.RequireAdmin)
		pr.Use(h.limitAuthed)
		pr.Put("/update", h.HandleUpdate)
		pr.Delete("/delete", h.HandleDelete)
	})

	return r
}

// limitAuthed throttles authenticated calls per token subject.
func (h *Handler) limitAuthed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.FromContext(r.Context())
		if !ok {
			httpjson.Error(w, h.Log, apperr.Unauthorized())
			return
		}
		if !h.Authed.Allow(claims.AdminID) {
			httpjson.Error(w, h.Log, apperr.RateLimited("too many requests, please try again later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
