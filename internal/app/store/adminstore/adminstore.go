// internal/app/store/adminstore/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/tenanthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store owns the admins collection, unique-indexed on email and
// secondary-indexed on organization_id. Lookup misses are a nil record with
// a nil error.
type Store struct {
	c *mongo.Collection
}

// ErrDuplicateAdmin is returned when the unique index on email rejects an
// insert or update.
var ErrDuplicateAdmin = errors.New("an admin with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// Create inserts an admin scoped to the owning organization. The password
// arrives already hashed; this store never sees plaintext.
func (s *Store) Create(ctx context.Context, email, passwordHash string, organizationID primitive.ObjectID) (models.Admin, error) {
	admin := models.Admin{
		ID:             primitive.NewObjectID(),
		Email:          email,
		PasswordHash:   passwordHash,
		OrganizationID: organizationID,
		CreatedAt:      time.Now().UTC(),
		LastLogin:      nil,
		IsActive:       true,
		Role:           models.RoleAdmin,
	}
	if _, err := s.c.InsertOne(ctx, admin); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateAdmin
		}
		return models.Admin{}, err
	}
	return admin, nil
}

// GetByEmail returns the admin with the given email, or nil when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// GetByID returns the admin with the given id, or nil when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByOrganizationID returns the organization's admin, or nil when absent.
// One admin per organization is an application-level rule; this returns the
// single record.
func (s *Store) GetByOrganizationID(ctx context.Context, organizationID primitive.ObjectID) (*models.Admin, error) {
	return s.findOne(ctx, bson.M{"organization_id": organizationID})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.Admin, error) {
	var admin models.Admin
	err := s.c.FindOne(ctx, filter).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdateCredentials replaces the email and/or password hash. Fields left
// nil are never touched; with both nil it is a no-op returning false.
func (s *Store) UpdateCredentials(ctx context.Context, id primitive.ObjectID, email, passwordHash *string) (bool, error) {
	set := bson.M{}
	if email != nil {
		set["email"] = *email
	}
	if passwordHash != nil {
		set["password_hash"] = *passwordHash
	}
	if len(set) == 0 {
		return false, nil
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return false, ErrDuplicateAdmin
		}
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// UpdateLastLogin stamps last_login to now.
func (s *Store) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login": time.Now().UTC()}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes one admin by id, reporting whether a record matched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteByOrganizationID removes every admin owned by the organization and
// returns how many were deleted. Cascade delete uses this so no admin can
// survive its organization.
func (s *Store) DeleteByOrganizationID(ctx context.Context, organizationID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"organization_id": organizationID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Exists reports whether an admin with the email exists.
func (s *Store) Exists(ctx context.Context, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"email": email}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
