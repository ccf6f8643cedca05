// internal/app/lifecycle/lifecycle.go

// Package lifecycle orchestrates the multi-step workflows that keep an
// organization's three coupled resources consistent: the organization
// record, its admin record, and its dynamic data collection.
//
// The orchestrator holds no persisted state of its own. Each workflow is an
// explicit saga over the three stores: every step that mutates storage
// declares the compensation that undoes it, and on failure the
// compensations of completed steps run in reverse order before the error is
// returned. Two leaks are tolerated: a stray old collection after rename
// metadata has committed, and an already-absent collection during cascade
// delete.
package lifecycle

import (
	"context"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"github.com/dalemusser/tenanthub/internal/app/system/authutil"
	"github.com/dalemusser/tenanthub/internal/app/system/inputval"
	"github.com/dalemusser/tenanthub/internal/app/system/orgname"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OrgStore is the organization-record surface the orchestrator needs.
type OrgStore interface {
	Create(ctx context.Context, name, collectionName string, adminID *primitive.ObjectID) (models.Organization, error)
	GetByName(ctx context.Context, name string) (*models.Organization, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Organization, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	Exists(ctx context.Context, name string) (bool, error)
}

// AdminStore is the credential-record surface the orchestrator needs.
type AdminStore interface {
	Create(ctx context.Context, email, passwordHash string, organizationID primitive.ObjectID) (models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	UpdateCredentials(ctx context.Context, id primitive.ObjectID, email, passwordHash *string) (bool, error)
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteByOrganizationID(ctx context.Context, organizationID primitive.ObjectID) (int64, error)
}

// CollectionStore is the dynamic-collection surface the orchestrator needs.
type CollectionStore interface {
	Create(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) (bool, error)
	Exists(ctx context.Context, name string) (bool, error)
	Migrate(ctx context.Context, source, target string) (int64, error)
}

// Orchestrator composes the three stores into the create, rename, and
// cascade-delete workflows.
type Orchestrator struct {
	orgs   OrgStore
	admins AdminStore
	colls  CollectionStore
	log    *zap.Logger
}

// New builds an Orchestrator over the given stores.
func New(orgs OrgStore, admins AdminStore, colls CollectionStore, log *zap.Logger) *Orchestrator {
	return &Orchestrator{orgs: orgs, admins: admins, colls: colls, log: log}
}

// Get returns the organization with the given (raw) name plus its admin's
// email. The email lookup is best effort: "unknown" when it fails.
func (o *Orchestrator) Get(ctx context.Context, rawName string) (models.Organization, string, error) {
	name, err := orgname.Sanitize(inputval.SanitizeString(rawName, orgname.MaxLength))
	if err != nil {
		return models.Organization{}, "", apperr.Validation(err.Error(), err)
	}
	org, err := o.orgs.GetByName(ctx, name)
	if err != nil {
		return models.Organization{}, "", apperr.Storage("failed to retrieve organization", err)
	}
	if org == nil {
		return models.Organization{}, "", apperr.NotFound("organization '" + name + "' not found")
	}
	return *org, o.adminEmail(ctx, org), nil
}

// Authenticate verifies the credentials and stamps last_login. The returned
// error never reveals whether the email or the password was wrong.
func (o *Orchestrator) Authenticate(ctx context.Context, rawEmail, password string) (*models.Admin, error) {
	email, err := inputval.ValidateEmail(inputval.SanitizeString(rawEmail, inputval.MaxEmailLength))
	if err != nil {
		return nil, apperr.Unauthorized()
	}
	admin, err := o.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Storage("failed to process login", err)
	}
	if admin == nil || !admin.IsActive {
		return nil, apperr.Unauthorized()
	}
	if !authutil.CheckPassword(admin.PasswordHash, password) {
		return nil, apperr.Unauthorized()
	}
	if _, err := o.admins.UpdateLastLogin(ctx, admin.ID); err != nil {
		return nil, apperr.Storage("failed to process login", err)
	}
	return admin, nil
}

// adminEmail resolves the organization's admin email, falling back to
// "unknown" rather than failing the read.
func (o *Orchestrator) adminEmail(ctx context.Context, org *models.Organization) string {
	if org.AdminID == nil {
		return "unknown"
	}
	admin, err := o.admins.GetByID(ctx, *org.AdminID)
	if err != nil || admin == nil {
		if err != nil {
			o.log.Warn("admin email lookup failed",
				zap.String("organization", org.Name),
				zap.Error(err))
		}
		return "unknown"
	}
	return admin.Email
}

// callerIDs parses the identity claims of an authenticated caller. Tokens
// carrying unparseable ids are treated like any other invalid token.
func callerIDs(organizationID, adminID string) (primitive.ObjectID, primitive.ObjectID, error) {
	orgID, err := primitive.ObjectIDFromHex(organizationID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperr.Unauthorized()
	}
	admID, err := primitive.ObjectIDFromHex(adminID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperr.Unauthorized()
	}
	return orgID, admID, nil
}
