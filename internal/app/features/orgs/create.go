// internal/app/features/orgs/create.go
package orgs

import (
	"context"
	"net/http"

	"github.com/dalemusser/tenanthub/internal/app/system/httpjson"
	"github.com/dalemusser/tenanthub/internal/app/system/timeouts"
)

// HandleCreate handles POST /create.
//
// On success: 201 and
//
//	{ "message":"Organization created successfully", "organization":{…}, "admin_id":"…" }
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpjson.Decode(r, &req, maxBodyBytes); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	org, admin, err := h.Lifecycle.Create(ctx, req.OrganizationName, req.Email, req.Password)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, createResponse{
		Message:      "Organization created successfully",
		Organization: toPayload(org, admin.Email),
		AdminID:      admin.ID.Hex(),
	})
}
