// internal/app/store/organizationstore/organizationstore.go
package organizationstore

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

// Store owns the organizations collection. Lookup misses are reported as a
// nil record with a nil error; only storage-layer failures are errors.
type Store struct {
	c *mongo.Collection
}

// ErrDuplicateOrganization is returned when the unique index on
// organization_name rejects an insert or update. The index, not the prior
// existence check, is the authoritative duplicate signal: a race between
// check and insert is always possible.
var ErrDuplicateOrganization = errors.New("an organization with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

// Create inserts an organization with the given canonical name and derived
// collection name. adminID is nil during the create workflow's first step
// and backfilled once the admin record exists.
func (s *Store) Create(ctx context.Context, name, collectionName string, adminID *primitive.ObjectID) (models.Organization, error) {
	now := time.Now().UTC()
	org := models.Organization{
		ID:             primitive.NewObjectID(),
		Name:           name,
		CollectionName: collectionName,
		AdminID:        adminID,
		Status:         models.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.c.InsertOne(ctx, org); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateOrganization
		}
		return models.Organization{}, err
	}
	return org, nil
}

// GetByName returns the organization with the given canonical name, or nil
// when absent.
func (s *Store) GetByName(ctx context.Context, name string) (*models.Organization, error) {
	return s.findOne(ctx, bson.M{"organization_name": name})
}

// GetByID returns the organization with the given id, or nil when absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Organization, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByAdminID returns the organization owned by the given admin, or nil
// when absent.
func (s *Store) GetByAdminID(ctx context.Context, adminID primitive.ObjectID) (*models.Organization, error) {
	return s.findOne(ctx, bson.M{"admin_id": adminID})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, filter).Decode(&org)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Update applies the given fields and stamps updated_at to now. It reports
// whether any field actually changed, which rename uses to detect a lost
// race before deleting the old collection.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return false, ErrDuplicateOrganization
		}
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes the organization by id, reporting whether a record matched.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Exists reports whether an organization with the canonical name exists.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"organization_name": name}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
