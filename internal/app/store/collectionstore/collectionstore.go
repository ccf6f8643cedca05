// internal/app/store/collectionstore/collectionstore.go

// Package collectionstore manages the dynamically provisioned per-tenant
// collections (org_<name>). Each is a schema-free container of documents;
// this store never inspects their content.
package collectionstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrSourceNotFound is returned by Migrate when the source collection does
// not exist.
var ErrSourceNotFound = errors.New("source collection does not exist")

// Store manages tenant collections on a single database handle.
type Store struct {
	db  *mongo.Database
	log *zap.Logger
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{db: db, log: log}
}

// Create provisions the named collection. It returns false without error
// when the collection already exists. The existence check and the create
// are not atomic together, so a concurrent create racing this one is
// tolerated: losing the race reports false, same as the pre-check.
func (s *Store) Create(ctx context.Context, name string) (bool, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	if exists {
		s.log.Warn("collection already exists", zap.String("collection", name))
		return false, nil
	}
	if err := s.db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExists(err) {
			s.log.Warn("collection created concurrently", zap.String("collection", name))
			return false, nil
		}
		return false, err
	}
	s.log.Info("created collection", zap.String("collection", name))
	return true, nil
}

// Delete drops the named collection. It returns false without error when
// the collection does not exist.
func (s *Store) Delete(ctx context.Context, name string) (bool, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return false, err
	}
	if !exists {
		s.log.Warn("collection does not exist", zap.String("collection", name))
		return false, nil
	}
	if err := s.db.Collection(name).Drop(ctx); err != nil {
		return false, err
	}
	s.log.Info("dropped collection", zap.String("collection", name))
	return true, nil
}

// Exists reports whether the named collection exists.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// Migrate copies every document from source into target and returns the
// number inserted. The target is created when absent and is guaranteed to
// exist afterward even when the source holds zero documents; migrating into
// an existing non-empty target appends. Document field content is preserved
// but _id is dropped so the server assigns fresh identities. Migrate never
// deletes the source; that is the caller's explicit, separate step.
func (s *Store) Migrate(ctx context.Context, source, target string) (int64, error) {
	exists, err := s.Exists(ctx, source)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}

	if _, err := s.Create(ctx, target); err != nil {
		return 0, err
	}

	cur, err := s.db.Collection(source).Find(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var docs []any
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return 0, err
		}
		delete(doc, "_id")
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		s.log.Info("no documents to migrate", zap.String("source", source))
		return 0, nil
	}

	res, err := s.db.Collection(target).InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	migrated := int64(len(res.InsertedIDs))
	s.log.Info("migrated documents",
		zap.String("source", source),
		zap.String("target", target),
		zap.Int64("count", migrated))
	return migrated, nil
}

func isNamespaceExists(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 48 {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}
