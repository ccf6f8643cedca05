// internal/app/features/orgs/update.go
package orgs

import (
	"context"
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/lifecycle"
	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/httpjson"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
)

// HandleUpdate handles PUT /update for the caller's own organization.
// A rename migrates the organization's collection before the old name is
// released; email and password changes ride in the same request.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthorized())
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req, maxBodyBytes); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	org, adminEmail, err := h.Lifecycle.Update(ctx, claims.OrganizationID, claims.AdminID, lifecycle.UpdateRequest{
		OrganizationName: req.OrganizationName,
		Email:            req.Email,
		Password:         req.Password,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, updateResponse{
		Message:      "Organization updated successfully",
		Organization: toPayload(org, adminEmail),
	})
}
