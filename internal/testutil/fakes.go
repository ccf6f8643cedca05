package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/tenanthub/internal/app/store/adminstore"
	"github.com/dalemusser/tenanthub/internal/app/store/collectionstore"
	"github.com/dalemusser/tenanthub/internal/app/store/organizationstore"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The fake stores mirror the lifecycle store interfaces over in-process
// maps so workflow tests can run without MongoDB. Each fake carries an
// Errs map keyed by method name; a present entry makes that method fail,
// which is how tests force a workflow step to break at a chosen point.

// FakeOrgStore is an in-memory organization store.
type FakeOrgStore struct {
	mu   sync.Mutex
	Orgs map[primitive.ObjectID]models.Organization
	Errs map[string]error
}

// NewFakeOrgStore returns an empty in-memory organization store.
func NewFakeOrgStore() *FakeOrgStore {
	return &FakeOrgStore{
		Orgs: make(map[primitive.ObjectID]models.Organization),
		Errs: make(map[string]error),
	}
}

func (s *FakeOrgStore) Create(ctx context.Context, name, collectionName string, adminID *primitive.ObjectID) (models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Create"]; err != nil {
		return models.Organization{}, err
	}
	for _, o := range s.Orgs {
		if o.Name == name {
			return models.Organization{}, organizationstore.ErrDuplicateOrganization
		}
	}
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
	s.Orgs[org.ID] = org
	return org, nil
}

func (s *FakeOrgStore) GetByName(ctx context.Context, name string) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["GetByName"]; err != nil {
		return nil, err
	}
	for _, o := range s.Orgs {
		if o.Name == name {
			org := o
			return &org, nil
		}
	}
	return nil, nil
}

func (s *FakeOrgStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["GetByID"]; err != nil {
		return nil, err
	}
	o, ok := s.Orgs[id]
	if !ok {
		return nil, nil
	}
	org := o
	return &org, nil
}

func (s *FakeOrgStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Update"]; err != nil {
		return false, err
	}
	o, ok := s.Orgs[id]
	if !ok {
		return false, nil
	}
	if name, ok := fields["organization_name"].(string); ok {
		for otherID, other := range s.Orgs {
			if otherID != id && other.Name == name {
				return false, organizationstore.ErrDuplicateOrganization
			}
		}
		o.Name = name
	}
	if coll, ok := fields["collection_name"].(string); ok {
		o.CollectionName = coll
	}
	if adminID, ok := fields["admin_id"].(primitive.ObjectID); ok {
		o.AdminID = &adminID
	}
	o.UpdatedAt = time.Now().UTC()
	s.Orgs[id] = o
	return true, nil
}

func (s *FakeOrgStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Delete"]; err != nil {
		return false, err
	}
	if _, ok := s.Orgs[id]; !ok {
		return false, nil
	}
	delete(s.Orgs, id)
	return true, nil
}

func (s *FakeOrgStore) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Exists"]; err != nil {
		return false, err
	}
	for _, o := range s.Orgs {
		if o.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// FakeAdminStore is an in-memory admin store.
type FakeAdminStore struct {
	mu     sync.Mutex
	Admins map[primitive.ObjectID]models.Admin
	Errs   map[string]error
}

// NewFakeAdminStore returns an empty in-memory admin store.
func NewFakeAdminStore() *FakeAdminStore {
	return &FakeAdminStore{
		Admins: make(map[primitive.ObjectID]models.Admin),
		Errs:   make(map[string]error),
	}
}

func (s *FakeAdminStore) Create(ctx context.Context, email, passwordHash string, organizationID primitive.ObjectID) (models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Create"]; err != nil {
		return models.Admin{}, err
	}
	for _, a := range s.Admins {
		if a.Email == email {
			return models.Admin{}, adminstore.ErrDuplicateAdmin
		}
	}
	admin := models.Admin{
		ID:             primitive.NewObjectID(),
		Email:          email,
		PasswordHash:   passwordHash,
		OrganizationID: organizationID,
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
		Role:           models.RoleAdmin,
	}
	s.Admins[admin.ID] = admin
	return admin, nil
}

func (s *FakeAdminStore) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["GetByEmail"]; err != nil {
		return nil, err
	}
	for _, a := range s.Admins {
		if a.Email == email {
			admin := a
			return &admin, nil
		}
	}
	return nil, nil
}

func (s *FakeAdminStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["GetByID"]; err != nil {
		return nil, err
	}
	a, ok := s.Admins[id]
	if !ok {
		return nil, nil
	}
	admin := a
	return &admin, nil
}

func (s *FakeAdminStore) UpdateCredentials(ctx context.Context, id primitive.ObjectID, email, passwordHash *string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["UpdateCredentials"]; err != nil {
		return false, err
	}
	a, ok := s.Admins[id]
	if !ok || (email == nil && passwordHash == nil) {
		return false, nil
	}
	if email != nil {
		for otherID, other := range s.Admins {
			if otherID != id && other.Email == *email {
				return false, adminstore.ErrDuplicateAdmin
			}
		}
		a.Email = *email
	}
	if passwordHash != nil {
		a.PasswordHash = *passwordHash
	}
	s.Admins[id] = a
	return true, nil
}

func (s *FakeAdminStore) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["UpdateLastLogin"]; err != nil {
		return false, err
	}
	a, ok := s.Admins[id]
	if !ok {
		return false, nil
	}
	now := time.Now().UTC()
	a.LastLogin = &now
	s.Admins[id] = a
	return true, nil
}

func (s *FakeAdminStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Delete"]; err != nil {
		return false, err
	}
	if _, ok := s.Admins[id]; !ok {
		return false, nil
	}
	delete(s.Admins, id)
	return true, nil
}

func (s *FakeAdminStore) DeleteByOrganizationID(ctx context.Context, organizationID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["DeleteByOrganizationID"]; err != nil {
		return 0, err
	}
	var removed int64
	for id, a := range s.Admins {
		if a.OrganizationID == organizationID {
			delete(s.Admins, id)
			removed++
		}
	}
	return removed, nil
}

// FakeCollectionStore is an in-memory dynamic-collection store. Documents
// are plain bson maps keyed by collection name.
type FakeCollectionStore struct {
	mu          sync.Mutex
	Collections map[string][]bson.M
	Errs        map[string]error
}

// NewFakeCollectionStore returns an empty in-memory collection store.
func NewFakeCollectionStore() *FakeCollectionStore {
	return &FakeCollectionStore{
		Collections: make(map[string][]bson.M),
		Errs:        make(map[string]error),
	}
}

func (s *FakeCollectionStore) Create(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Create"]; err != nil {
		return false, err
	}
	if _, ok := s.Collections[name]; ok {
		return false, nil
	}
	s.Collections[name] = []bson.M{}
	return true, nil
}

func (s *FakeCollectionStore) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Delete"]; err != nil {
		return false, err
	}
	if _, ok := s.Collections[name]; !ok {
		return false, nil
	}
	delete(s.Collections, name)
	return true, nil
}

func (s *FakeCollectionStore) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Exists"]; err != nil {
		return false, err
	}
	_, ok := s.Collections[name]
	return ok, nil
}

func (s *FakeCollectionStore) Migrate(ctx context.Context, source, target string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Errs["Migrate"]; err != nil {
		return 0, err
	}
	docs, ok := s.Collections[source]
	if !ok {
		return 0, fmt.Errorf("collection %s: %w", source, collectionstore.ErrSourceNotFound)
	}
	if _, ok := s.Collections[target]; !ok {
		s.Collections[target] = []bson.M{}
	}
	s.Collections[target] = append(s.Collections[target], docs...)
	return int64(len(docs)), nil
}
