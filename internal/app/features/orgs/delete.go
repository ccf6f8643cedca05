// internal/app/features/orgs/delete.go
package orgs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/httpjson"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
)

// HandleDelete handles DELETE /delete. It removes the caller's
// organization, its admin accounts and its data collection.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthorized())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	name, err := h.Lifecycle.CascadeDelete(ctx, claims.OrganizationID, claims.AdminID)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, deleteResponse{
		Message: fmt.Sprintf("Organization '%s' deleted successfully", name),
	})
}
