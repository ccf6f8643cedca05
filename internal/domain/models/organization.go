// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization status values.
const (
	StatusActive = "active"
)

// Organization is one tenant. The collection name is always derived from the
// canonical organization name ("org_" + name) and the two fields are only
// ever written together.
//
// AdminID is nil between the organization insert and the admin insert during
// the create workflow, so the admin record never references an organization
// that does not exist yet.
type Organization struct {
	ID             primitive.ObjectID  `bson:"_id" json:"id"`
	Name           string              `bson:"organization_name" json:"organization_name"`
	CollectionName string              `bson:"collection_name" json:"collection_name"`
	AdminID        *primitive.ObjectID `bson:"admin_id" json:"admin_id,omitempty"`
	Status         string              `bson:"status" json:"status"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}
