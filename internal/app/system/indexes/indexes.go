// internal/app/system/indexes/indexes.go

// Package indexes ensures the collections and indexes the service relies
// on. The unique index on organizations.organization_name and on
// admins.email is what makes check-then-insert races surface as duplicate
// errors instead of corrupting state, so startup fails fast when an index
// cannot be ensured.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll idempotently creates the fixed collections and their indexes.
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	if err := ensureOrganizations(ctx, db, log); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureAdmins(ctx, db, log); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureOrganizations(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	if err := ensureCollection(ctx, db, "organizations", log); err != nil {
		return err
	}
	return ensureIndexSet(ctx, db.Collection("organizations"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "organization_name", Value: 1}},
			Options: options.Index().SetName("uniq_organization_name").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "admin_id", Value: 1}},
			Options: options.Index().SetName("idx_admin_id"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}, log)
}

func ensureAdmins(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	if err := ensureCollection(ctx, db, "admins", log); err != nil {
		return err
	}
	return ensureIndexSet(ctx, db.Collection("admins"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "organization_id", Value: 1}},
			Options: options.Index().SetName("idx_organization_id"),
		},
	}, log)
}

// ensureCollection creates the named collection when missing, tolerating
// a concurrent creation racing this one.
func ensureCollection(ctx context.Context, db *mongo.Database, name string, log *zap.Logger) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExists(err) {
			return nil
		}
		return err
	}
	log.Info("created collection", zap.String("collection", name))
	return nil
}

// ensureIndexSet creates the desired indexes, tolerating re-runs against an
// existing deployment where the same keys already exist.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, indexModels []mongo.IndexModel, log *zap.Logger) error {
	for _, m := range indexModels {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}
		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflict(err) {
				log.Info("index exists under different options",
					zap.String("collection", coll.Name()),
					zap.String("index", name))
				continue
			}
			return err
		}
		log.Info("ensured index",
			zap.String("collection", coll.Name()),
			zap.String("index", name))
	}
	return nil
}

func isNamespaceExists(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 48 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

// Mongo returns IndexOptionsConflict when an index with the same keys
// already exists under a different name or options.
func isOptionsConflict(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}
