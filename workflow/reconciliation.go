// Package workflow holds the delayed reconciliation logic that repairs
// Odoo orphans left behind when a host transaction rolls back after its
// sync hook already pushed to Odoo.
package workflow

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/odoo"
)

// RollbackCleanupReason is stamped on Odoo reversals/cancellations issued
// by the reconciliation processor.
const RollbackCleanupReason = "Care transaction rollback cleanup"

// RetryDelay spaces out retries after a transient Odoo failure during
// cleanup.
const RetryDelay = 10 * time.Second

// JobDeps is the seam ProcessJob works through. Exists answers whether the
// job's target record is present in the host database; Save persists job
// mutations.
type JobDeps struct {
	Exists   func(ctx context.Context, kind, externalId string) (bool, error)
	Odoo     odoo.Caller
	Save     func(ctx context.Context, job *models.ReconciliationJob) error
	Logger   *logrus.Logger
	Settings config.Settings
	Now      func() time.Time
}

// ProcessJob advances a claimed reconciliation job one step.
//
// The check is two-phase: a record missing on the first look is rechecked
// after a short delay before any cleanup, so a slow-committing host
// transaction is not mistaken for a rollback. Only a record missing on
// both checks gets its Odoo counterpart reversed.
func ProcessJob(ctx context.Context, deps JobDeps, job *models.ReconciliationJob) error {
	now := deps.Now()

	exists, err := deps.Exists(ctx, job.TargetKind, job.ExternalId)
	if err != nil {
		return retryOrFail(ctx, deps, job, now, fmt.Errorf("existence check: %w", err), true)
	}

	if exists {
		job.State = models.JobStateReconciledPresent
		job.LastError = ""
		return finish(ctx, deps, job)
	}

	if job.State == models.JobStateScheduled {
		deps.Logger.WithFields(logrus.Fields{
			"target_kind": job.TargetKind,
			"external_id": job.ExternalId,
		}).Warn("record missing on first check, scheduling recheck")
		job.State = models.JobStatePendingRecheck
		job.RunAt = now.Add(deps.Settings.ReconciliationRecheckDelay)
		return finish(ctx, deps, job)
	}

	// Second strike: the host transaction rolled back and the Odoo record
	// is an orphan.
	deps.Logger.WithFields(logrus.Fields{
		"target_kind": job.TargetKind,
		"external_id": job.ExternalId,
	}).Warn("record missing on recheck, cleaning up Odoo orphan")

	if err := cleanupOrphan(ctx, deps, job); err != nil {
		return retryOrFail(ctx, deps, job, now, err, odoo.IsTransient(err))
	}

	job.State = models.JobStateReconciledCleaned
	job.LastError = ""
	return finish(ctx, deps, job)
}

func cleanupOrphan(ctx context.Context, deps JobDeps, job *models.ReconciliationJob) error {
	var endpoint string
	switch job.TargetKind {
	case models.JobTargetInvoice:
		endpoint = "api/account/move/return"
	case models.JobTargetPayment:
		endpoint = "api/account/move/payment/cancel"
	default:
		return fmt.Errorf("unknown reconciliation target kind %q", job.TargetKind)
	}

	payload := map[string]any{
		"x_care_id": job.ExternalId,
		"reason":    RollbackCleanupReason,
	}
	_, err := deps.Odoo.Call(ctx, endpoint, payload, http.MethodPost)
	return err
}

// retryOrFail reschedules a failed step when the failure is retryable and
// the attempt budget allows, and parks the job otherwise.
func retryOrFail(ctx context.Context, deps JobDeps, job *models.ReconciliationJob, now time.Time, cause error, retryable bool) error {
	job.Attempts++
	job.LastError = cause.Error()

	if retryable && job.Attempts < models.JobMaxAttempts {
		job.RunAt = now.Add(RetryDelay)
		deps.Logger.WithFields(logrus.Fields{
			"target_kind": job.TargetKind,
			"external_id": job.ExternalId,
			"attempts":    job.Attempts,
		}).Warn("reconciliation step failed, retrying: " + cause.Error())
		return finish(ctx, deps, job)
	}

	job.State = models.JobStatePermanentlyFailed
	config.LogError(deps.Logger, "workflow", "ProcessJob", "reconciliation permanently failed",
		map[string]any{"target_kind": job.TargetKind, "external_id": job.ExternalId}, cause)
	return finish(ctx, deps, job)
}

func finish(ctx context.Context, deps JobDeps, job *models.ReconciliationJob) error {
	job.LockedAt = nil
	job.LockedBy = ""
	return deps.Save(ctx, job)
}

// GormJobDeps wires JobDeps to the real database.
func GormJobDeps(db *gorm.DB, caller odoo.Caller, settings config.Settings, logger *logrus.Logger) JobDeps {
	return JobDeps{
		Exists: func(ctx context.Context, kind, externalId string) (bool, error) {
			var count int64
			var err error
			switch kind {
			case models.JobTargetInvoice:
				err = db.WithContext(ctx).Model(&models.Invoice{}).
					Where("external_id = ?", externalId).Count(&count).Error
			case models.JobTargetPayment:
				err = db.WithContext(ctx).Model(&models.PaymentReconciliation{}).
					Where("external_id = ?", externalId).Count(&count).Error
			default:
				return false, fmt.Errorf("unknown reconciliation target kind %q", kind)
			}
			return count > 0, err
		},
		Odoo: caller,
		Save: func(ctx context.Context, job *models.ReconciliationJob) error {
			return db.WithContext(ctx).Save(job).Error
		},
		Logger:   logger,
		Settings: settings,
		Now:      time.Now,
	}
}
