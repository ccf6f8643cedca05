// internal/app/features/orgs/get.go
package orgs

import (
	"context"
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"github.com/dalemusser/tenanthub/internal/app/system/httpjson"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
)

// ServeGet handles GET /get?organization_name=<name>.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("organization_name")
	if name == "" {
		httpjson.Error(w, h.Log, apperr.Validation("organization_name query parameter is required", nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, adminEmail, err := h.Lifecycle.Get(ctx, name)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, toPayload(org, adminEmail))
}
