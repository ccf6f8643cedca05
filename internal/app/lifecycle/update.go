// internal/app/lifecycle/update.go
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

// UpdateRequest carries the optional changes of one update call. Empty
// fields are left untouched.
type UpdateRequest struct {
	OrganizationName string
	Email            string
	Password         string
}

// Update applies a rename (with collection migration) and/or a credential
// change for the caller's organization. The whole request is all-or-nothing:
// a credential failure after a committed rename reapplies the rename's
// compensation, so the caller never observes a half-applied update. The one
// tolerated leak is a stray old collection when its deletion fails after
// the new metadata is already authoritative.
func (o *Orchestrator) Update(ctx context.Context, organizationID, adminID string, req UpdateRequest) (models.Organization, string, error) {
	orgID, admID, err := callerIDs(organizationID, adminID)
	if err != nil {
		return models.Organization{}, "", err
	}

	org, err := o.orgs.GetByID(ctx, orgID)
	if err != nil {
		return models.Organization{}, "", apperr.Storage("failed to update organization", err)
	}
	if org == nil {
		return models.Organization{}, "", apperr.NotFound("organization not found")
	}
	if org.AdminID == nil || *org.AdminID != admID {
		return models.Organization{}, "", apperr.Forbidden("you do not have access to this organization")
	}

	// Snapshot for rollback before anything changes.
	snapshot := *org

	// Validate every requested change up front; validation failures must
	// not leave any mutation behind.
	newName := ""
	if req.OrganizationName != "" {
		newName, err = orgname.Sanitize(inputval.SanitizeString(req.OrganizationName, orgname.MaxLength))
		if err != nil {
			return models.Organization{}, "", apperr.Validation(err.Error(), err)
		}
		if newName == org.Name {
			newName = ""
		}
	}
	if newName != "" {
		taken, err := o.orgs.Exists(ctx, newName)
		if err != nil {
			return models.Organization{}, "", apperr.Storage("failed to update organization", err)
		}
		if taken {
			return models.Organization{}, "", apperr.DuplicateName(newName)
		}
	}

	var newEmail, newHash *string
	if req.Email != "" {
		email, err := inputval.ValidateEmail(inputval.SanitizeString(req.Email, inputval.MaxEmailLength))
		if err != nil {
			return models.Organization{}, "", apperr.Validation(err.Error(), err)
		}
		newEmail = &email
	}
	if req.Password != "" {
		if err := inputval.ValidatePassword(req.Password); err != nil {
			return models.Organization{}, "", apperr.Validation(err.Error(), err)
		}
		hash, err := authutil.HashPassword(req.Password)
		if err != nil {
			return models.Organization{}, "", apperr.Storage("failed to update organization", err)
		}
		newHash = &hash
	}

	var steps []saga.Step
	newCollection := ""
	if newName != "" {
		newCollection = orgname.CollectionName(newName)
		steps = append(steps, o.renameSteps(snapshot, newName, newCollection)...)
	}
	if newEmail != nil || newHash != nil {
		steps = append(steps, saga.Step{
			// Runs after any rename. Its failure reapplies the rename
			// compensations so the update stays all-or-nothing.
			Name: "update admin credentials",
			Run: func(ctx context.Context) error {
				_, err := o.admins.UpdateCredentials(ctx, admID, newEmail, newHash)
				if errors.Is(err, adminstore.ErrDuplicateAdmin) {
					return apperr.DuplicateEmail()
				}
				if err != nil {
					return apperr.Storage("failed to update admin credentials", err)
				}
				return nil
			},
		})
	}

	if err := saga.Run(ctx, o.log, steps); err != nil {
		return models.Organization{}, "", err
	}

	// The new collection and metadata are authoritative now; a failed old
	// collection delete is a cleanup leak, not a correctness violation.
	if newName != "" {
		if _, err := o.colls.Delete(ctx, snapshot.CollectionName); err != nil {
			o.log.Warn("old collection left behind after rename",
				zap.String("collection", snapshot.CollectionName),
				zap.Error(err))
		}
	}

	updated, err := o.orgs.GetByID(ctx, orgID)
	if err != nil || updated == nil {
		return models.Organization{}, "", apperr.Storage("failed to load updated organization", err)
	}
	o.log.Info("organization updated", zap.String("organization", updated.Name))
	return *updated, o.adminEmail(ctx, updated), nil
}

// renameSteps builds the rename sub-workflow: provision the new collection,
// migrate the documents, then commit the metadata. Migration failures
// surface as the conflict class so callers know the data was not lost but
// the rename did not apply.
func (o *Orchestrator) renameSteps(snapshot models.Organization, newName, newCollection string) []saga.Step {
	var provisioned bool
	return []saga.Step{
		{
			Name: "create new collection",
			Run: func(ctx context.Context) error {
				// An already-existing collection is not a failure here;
				// migration appends into it.
				created, err := o.colls.Create(ctx, newCollection)
				if err != nil {
					return apperr.MigrationConflict("failed to provision new collection", err)
				}
				provisioned = created
				return nil
			},
			Compensate: func(ctx context.Context) error {
				// Only drop what this workflow created; a collection that
				// predates the rename is not ours to remove.
				if !provisioned {
					return nil
				}
				_, err := o.colls.Delete(ctx, newCollection)
				return err
			},
		},
		{
			// Undone implicitly: deleting the new collection discards the
			// copied documents, and the source was never touched.
			Name: "migrate documents",
			Run: func(ctx context.Context) error {
				count, err := o.colls.Migrate(ctx, snapshot.CollectionName, newCollection)
				if err != nil {
					return apperr.MigrationConflict("failed to migrate organization data", err)
				}
				o.log.Info("migrated organization data",
					zap.String("source", snapshot.CollectionName),
					zap.String("target", newCollection),
					zap.Int64("documents", count))
				return nil
			},
		},
		{
			Name: "commit organization metadata",
			Run: func(ctx context.Context) error {
				changed, err := o.orgs.Update(ctx, snapshot.ID, bson.M{
					"organization_name": newName,
					"collection_name":   newCollection,
				})
				switch {
				case errors.Is(err, organizationstore.ErrDuplicateOrganization):
					err = apperr.MigrationConflict("organization '"+newName+"' already exists", err)
				case err != nil:
					err = apperr.MigrationConflict("failed to update organization metadata", err)
				case !changed:
					// Lost race: a concurrent writer got here first.
					err = apperr.MigrationConflict("organization metadata update had no effect", nil)
				default:
					return nil
				}
				// A failed commit may still have raced a concurrent writer,
				// and the earlier compensations never touch the record, so
				// the restore runs here before they do.
				if rerr := o.restoreMetadata(context.WithoutCancel(ctx), snapshot); rerr != nil {
					o.log.Error("metadata restore failed",
						zap.String("organization", snapshot.Name),
						zap.Error(rerr))
				}
				return err
			},
			Compensate: func(ctx context.Context) error {
				return o.restoreMetadata(ctx, snapshot)
			},
		},
	}
}

// restoreMetadata writes the snapshot's name and collection name back onto
// the organization record and makes sure the snapshot's collection exists
// again afterwards.
func (o *Orchestrator) restoreMetadata(ctx context.Context, snapshot models.Organization) error {
	var errs []error
	if _, err := o.orgs.Update(ctx, snapshot.ID, bson.M{
		"organization_name": snapshot.Name,
		"collection_name":   snapshot.CollectionName,
	}); err != nil {
		errs = append(errs, err)
	}
	exists, err := o.colls.Exists(ctx, snapshot.CollectionName)
	if err != nil {
		errs = append(errs, err)
	} else if !exists {
		if _, err := o.colls.Create(ctx, snapshot.CollectionName); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
