// internal/domain/models/admin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin role values.
const (
	RoleAdmin = "admin"
)

// Admin is the single administrator account owned by an organization.
// The one-admin-per-organization rule is enforced at the application layer,
// not by the storage layer.
type Admin struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password_hash" json:"-"`
	OrganizationID primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	LastLogin      *time.Time         `bson:"last_login" json:"last_login,omitempty"`
	IsActive       bool               `bson:"is_active" json:"is_active"`
	Role           string             `bson:"role" json:"role"`
}
