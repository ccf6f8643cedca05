// internal/app/features/orgs/types.go
package orgs

import (
	"time"

	"github.com/dalemusser/tenanthub/internal/domain/models"
)

// createRequest is the payload for POST /create.
type createRequest struct {
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

// updateRequest is the payload for PUT /update. All fields are optional;
// empty fields are left unchanged.
type updateRequest struct {
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
}

// loginRequest is the payload for POST /admin/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// organizationPayload is the wire form of an organization.
type organizationPayload struct {
	ID               string     `json:"id"`
	OrganizationName string     `json:"organization_name"`
	CollectionName   string     `json:"collection_name"`
	AdminEmail       string     `json:"admin_email"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// createResponse is returned by POST /create.
type createResponse struct {
	Message      string              `json:"message"`
	Organization organizationPayload `json:"organization"`
	AdminID      string              `json:"admin_id"`
}

// updateResponse is returned by PUT /update.
type updateResponse struct {
	Message      string              `json:"message"`
	Organization organizationPayload `json:"organization"`
}

// deleteResponse is returned by DELETE /delete.
type deleteResponse struct {
	Message string `json:"message"`
}

// tokenResponse is returned by POST /admin/login.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// toPayload converts a stored organization to its wire form.
func toPayload(org models.Organization, adminEmail string) organizationPayload {
	p := organizationPayload{
		ID:               org.ID.Hex(),
		OrganizationName: org.Name,
		CollectionName:   org.CollectionName,
		AdminEmail:       adminEmail,
		CreatedAt:        org.CreatedAt,
	}
	if !org.UpdatedAt.IsZero() {
		p.UpdatedAt = &org.UpdatedAt
	}
	return p
}
