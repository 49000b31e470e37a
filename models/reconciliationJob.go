package models

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Reconciliation job lifecycle. A job starts scheduled, moves to
// pending_recheck after a first check finds the Care record missing, and
// terminates in one of the reconciled_* states. Transient Odoo failures
// retry in place; anything else after max attempts parks the job as
// permanently_failed for manual review.
const (
	JobStateScheduled         = "scheduled"
	JobStatePendingRecheck    = "pending_recheck"
	JobStateReconciledPresent = "reconciled_present"
	JobStateReconciledCleaned = "reconciled_cleaned"
	JobStatePermanentlyFailed = "permanently_failed"
)

const (
	JobTargetInvoice = "invoice"
	JobTargetPayment = "payment"
)

const JobMaxAttempts = 3

// ReconciliationJob is a durable record of a pending orphan check. One row
// per synced record; claimed and advanced by the reconciliation processor.
type ReconciliationJob struct {
	ID         uint       `gorm:"primary_key" json:"id"`
	TargetKind string     `gorm:"size:20;not null" json:"target_kind"`
	ExternalId string     `gorm:"size:36;index;not null" json:"external_id"`
	State      string     `gorm:"size:30;index;not null;default:scheduled" json:"state"`
	RunAt      time.Time  `gorm:"index;not null" json:"run_at"`
	Attempts   int        `gorm:"default:0" json:"attempts"`
	LastError  string     `gorm:"type:text" json:"last_error"`
	LockedAt   *time.Time `json:"locked_at"`
	LockedBy   string     `gorm:"size:64" json:"locked_by"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

var (
	baseDBMu sync.RWMutex
	baseDB   *gorm.DB
)

// SetBaseDB registers the non-transactional connection used for
// reconciliation scheduling. Call once at startup, before any sync hook
// can fire.
func SetBaseDB(db *gorm.DB) {
	baseDBMu.Lock()
	defer baseDBMu.Unlock()
	baseDB = db
}

// ScheduleReconciliation enqueues an orphan check for a record about to be
// pushed to Odoo. The insert deliberately bypasses the caller's
// transaction: the job must survive a host rollback, because a rolled-back
// host write with a committed Odoo push is exactly the orphan the
// processor exists to clean up.
//
// Scheduling failures are logged and swallowed: a missed reconciliation
// check must never fail the host operation.
func ScheduleReconciliation(logger *logrus.Logger, kind string, externalId string, delay time.Duration) {
	baseDBMu.RLock()
	db := baseDB
	baseDBMu.RUnlock()
	if db == nil {
		logger.Error("reconciliation scheduling skipped, base db not configured")
		return
	}
	job := ReconciliationJob{
		TargetKind: kind,
		ExternalId: externalId,
		State:      JobStateScheduled,
		RunAt:      time.Now().Add(delay),
	}
	if err := db.Create(&job).Error; err != nil {
		logger.WithFields(logrus.Fields{
			"target_kind": kind,
			"external_id": externalId,
			"error":       err.Error(),
		}).Error("failed to schedule reconciliation job")
	}
}
