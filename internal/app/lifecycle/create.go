// internal/app/lifecycle/create.go
package lifecycle

import (
	"context"
	"errors"

	"github.com/dalemusser/tenanthub/internal/app/store/adminstore"
	"github.com/dalemusser/tenanthub/internal/app/store/organizationstore"
	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"github.com/dalemusser/tenanthub/internal/app/system/authutil"
	"github.com/dalemusser/tenanthub/internal/app/system/inputval"
	"github.com/dalemusser/tenanthub/internal/app/system/orgname"
	"github.com/dalemusser/tenanthub/internal/app/system/saga"
	"github.com/dalemusser/tenanthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Create provisions a new organization: the organization record (inserted
// first with a nil admin id so the admin can never reference a missing
// organization), the admin record, the admin-id backfill, and the dynamic
// collection. Success is reported only after all four side effects have
// completed; any failure compensates the completed steps in reverse order.
func (o *Orchestrator) Create(ctx context.Context, rawName, rawEmail, password string) (models.Organization, models.Admin, error) {
	// Validation happens before any mutation, so failures here need no
	// compensation.
	name, err := orgname.Sanitize(inputval.SanitizeString(rawName, orgname.MaxLength))
	if err != nil {
		return models.Organization{}, models.Admin{}, apperr.Validation(err.Error(), err)
	}
	email, err := inputval.ValidateEmail(inputval.SanitizeString(rawEmail, inputval.MaxEmailLength))
	if err != nil {
		return models.Organization{}, models.Admin{}, apperr.Validation(err.Error(), err)
	}
	if err := inputval.ValidatePassword(password); err != nil {
		return models.Organization{}, models.Admin{}, apperr.Validation(err.Error(), err)
	}

	exists, err := o.orgs.Exists(ctx, name)
	if err != nil {
		return models.Organization{}, models.Admin{}, apperr.Storage("failed to create organization", err)
	}
	if exists {
		return models.Organization{}, models.Admin{}, apperr.DuplicateName(name)
	}

	collectionName := orgname.CollectionName(name)

	hash, err := authutil.HashPassword(password)
	if err != nil {
		return models.Organization{}, models.Admin{}, apperr.Storage("failed to create organization", err)
	}

	var (
		org   models.Organization
		admin models.Admin
	)
	steps := []saga.Step{
		{
			Name: "insert organization",
			Run: func(ctx context.Context) error {
				var err error
				org, err = o.orgs.Create(ctx, name, collectionName, nil)
				if errors.Is(err, organizationstore.ErrDuplicateOrganization) {
					return apperr.DuplicateName(name)
				}
				return err
			},
			Compensate: func(ctx context.Context) error {
				_, err := o.orgs.Delete(ctx, org.ID)
				return err
			},
		},
		{
			Name: "insert admin",
			Run: func(ctx context.Context) error {
				var err error
				admin, err = o.admins.Create(ctx, email, hash, org.ID)
				if errors.Is(err, adminstore.ErrDuplicateAdmin) {
					return apperr.DuplicateEmail()
				}
				return err
			},
			Compensate: func(ctx context.Context) error {
				_, err := o.admins.Delete(ctx, admin.ID)
				return err
			},
		},
		{
			// Undone implicitly: the organization-insert compensation
			// removes the whole record.
			Name: "assign admin to organization",
			Run: func(ctx context.Context) error {
				_, err := o.orgs.Update(ctx, org.ID, bson.M{"admin_id": admin.ID})
				return err
			},
		},
		{
			// Last step, so its compensation can never run; a concurrent
			// create of the same collection name is tolerated (Create
			// reports false rather than failing).
			Name: "create collection",
			Run: func(ctx context.Context) error {
				_, err := o.colls.Create(ctx, collectionName)
				return err
			},
		},
	}

	if err := saga.Run(ctx, o.log, steps); err != nil {
		return models.Organization{}, models.Admin{}, err
	}

	org.AdminID = &admin.ID
	o.log.Info("organization created",
		zap.String("organization", name),
		zap.String("collection", collectionName))
	return org, admin, nil
}
