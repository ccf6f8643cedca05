package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/tenanthub/internal/app/system/authutil"
	"github.com/dalemusser/tenanthub/internal/app/system/orgname"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization inserts a test organization with the given canonical
// name. Returns the created organization with its generated ID.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:             primitive.NewObjectID(),
		Name:           name,
		CollectionName: orgname.CollectionName(name),
		Status:         models.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}

	return org
}

// CreateAdmin inserts a test admin for the given organization and links the
// organization record back to it. The password is stored hashed.
func (f *Fixtures) CreateAdmin(ctx context.Context, org models.Organization, email, password string) models.Admin {
	f.t.Helper()

	hash, err := authutil.HashPassword(password)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	admin := models.Admin{
		ID:             primitive.NewObjectID(),
		Email:          email,
		PasswordHash:   hash,
		OrganizationID: org.ID,
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
		Role:           models.RoleAdmin,
	}

	if _, err := f.db.Collection("admins").InsertOne(ctx, admin); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}

	if _, err := f.db.Collection("organizations").UpdateByID(ctx,
		org.ID, bson.M{"$set": bson.M{"admin_id": admin.ID}}); err != nil {
		f.t.Fatalf("failed to link test admin to organization: %v", err)
	}

	return admin
}
