package usecase

import (
	"context"
	"errors"

	"github.com/electrium-mobility/rolesync/pkg/domain/model"
	"github.com/electrium-mobility/rolesync/pkg/utils/errutil"
	"github.com/electrium-mobility/rolesync/pkg/utils/logging"
)

// RunFullSync reconciles every configured role mapping in sequence and
// aggregates the per-mapping results. A single mapping's failure never
// aborts the run; each result is captured independently. Mappings are
// independent, so sequential execution here is a simplicity choice.
func (uc *UseCases) RunFullSync(ctx context.Context, dryRun bool) *model.SyncReport {
	logger := logging.From(ctx)
	mappings := uc.Mappings().AllRoleMappings()

	report := &model.SyncReport{DryRun: dryRun}

	logger.Info("starting full sync", "mappings", len(mappings), "dry_run", dryRun)

	for _, m := range mappings {
		result := model.MappingResult{
			RoleName:  m.RoleName,
			GroupName: m.GroupName,
		}

		outcome, err := uc.Reconcile(ctx, m.RoleName, m.GroupName, dryRun)
		switch {
		case errors.Is(err, ErrRoleNotFound):
			result.Status = model.MappingRoleNotFound
		case err != nil:
			errutil.Handle(ctx, err, "mapping reconciliation failed")
			result.Status = model.MappingFailed
			result.Err = err
		default:
			result.Status = model.MappingSynced
			result.Outcome = outcome
		}

		report.Results = append(report.Results, result)
	}

	logger.Info("full sync finished", "mappings", len(report.Results), "dry_run", dryRun)
	return report
}

// RunFullSyncAndReport runs a full sync and posts the chunked report to
// the chat report channel.
func (uc *UseCases) RunFullSyncAndReport(ctx context.Context, dryRun bool) error {
	report := uc.RunFullSync(ctx, dryRun)
	return uc.chat.PostReport(ctx, RenderReport(report, uc.reportLimit))
}
