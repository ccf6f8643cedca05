// internal/app/lifecycle/delete.go
package lifecycle

import (
	"context"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// CascadeDelete removes the caller's organization, its admin accounts and
// its data collection. The collection goes first and tolerantly, since a
// missing collection just means there is nothing left to drop; a failed
// admin delete aborts before the organization record is touched so the
// tenant stays consistent and the call can be retried. Deletion is not
// compensated: a second call for the same organization reports not found.
func (o *Orchestrator) CascadeDelete(ctx context.Context, organizationID, adminID string) (string, error) {
	orgID, admID, err := callerIDs(organizationID, adminID)
	if err != nil {
		return "", err
	}

	org, err := o.orgs.GetByID(ctx, orgID)
	if err != nil {
		return "", apperr.Storage("failed to delete organization", err)
	}
	if org == nil {
		return "", apperr.NotFound("organization not found")
	}
	if org.AdminID == nil || *org.AdminID != admID {
		return "", apperr.Forbidden("you do not have access to this organization")
	}

	if _, err := o.colls.Delete(ctx, org.CollectionName); err != nil {
		o.log.Warn("failed to drop organization collection",
			zap.String("collection", org.CollectionName),
			zap.Error(err))
	}

	removed, err := o.admins.DeleteByOrganizationID(ctx, org.ID)
	if err != nil {
		return "", apperr.Storage("failed to delete organization admins", err)
	}

	deleted, err := o.orgs.Delete(ctx, org.ID)
	if err != nil {
		return "", apperr.Storage("failed to delete organization", err)
	}
	if !deleted {
		return "", apperr.NotFound("organization not found")
	}

	o.log.Info("organization deleted",
		zap.String("organization", org.Name),
		zap.Int64("admins_removed", removed))
	return org.Name, nil
}
