package collectionstore_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/tenanthub/internal/app/store/collectionstore"
	"github.com/dalemusser/tenanthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestStore_CreateAndExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, "org_acme_corp")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created {
		t.Error("Create should report true for a new collection")
	}

	exists, err := store.Exists(ctx, "org_acme_corp")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("Exists missed the created collection")
	}

	// Creating again is a no-op, not a failure.
	again, err := store.Create(ctx, "org_acme_corp")
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if again {
		t.Error("second Create should report false")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "org_acme_corp"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := store.Delete(ctx, "org_acme_corp")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("Delete should report true")
	}

	exists, err := store.Exists(ctx, "org_acme_corp")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("collection still exists after Delete")
	}

	// Deleting an absent collection reports false without error.
	again, err := store.Delete(ctx, "org_acme_corp")
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if again {
		t.Error("second Delete should report false")
	}
}

func TestStore_Migrate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "org_source"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	docs := []interface{}{
		bson.M{"k": "a"},
		bson.M{"k": "b"},
		bson.M{"k": "c"},
	}
	if _, err := db.Collection("org_source").InsertMany(ctx, docs); err != nil {
		t.Fatalf("seeding source failed: %v", err)
	}

	count, err := store.Migrate(ctx, "org_source", "org_target")
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if count != 3 {
		t.Errorf("migrated count = %d, want 3", count)
	}

	targetCount, err := db.Collection("org_target").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if targetCount != 3 {
		t.Errorf("target document count = %d, want 3", targetCount)
	}

	// Source is never touched by migration.
	sourceCount, err := db.Collection("org_source").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if sourceCount != 3 {
		t.Errorf("source document count = %d, want 3", sourceCount)
	}
}

func TestStore_Migrate_EmptySource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "org_source"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	count, err := store.Migrate(ctx, "org_source", "org_target")
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if count != 0 {
		t.Errorf("migrated count = %d, want 0", count)
	}

	// The target must exist even with nothing to copy.
	exists, err := store.Exists(ctx, "org_target")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("target collection missing after empty migration")
	}
}

func TestStore_Migrate_MissingSource(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Migrate(ctx, "org_ghost", "org_target")
	if !errors.Is(err, collectionstore.ErrSourceNotFound) {
		t.Errorf("Migrate error = %v, want ErrSourceNotFound", err)
	}
}

func TestStore_Migrate_AssignsNewIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collectionstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "org_source"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	res, err := db.Collection("org_source").InsertOne(ctx, bson.M{"k": "a"})
	if err != nil {
		t.Fatalf("seeding source failed: %v", err)
	}

	if _, err := store.Migrate(ctx, "org_source", "org_target"); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	matched, err := db.Collection("org_target").CountDocuments(ctx, bson.M{"_id": res.InsertedID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if matched != 0 {
		t.Error("migrated document kept its source _id")
	}
}
