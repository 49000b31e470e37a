package main

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/workflow"
)

// ReconciliationProcessor polls for due reconciliation jobs and advances
// them. Claiming uses SKIP LOCKED so several replicas can run safely; the
// Redis lock on top is a best-effort optimization to keep a single active
// runner and must not be required for correctness.
type ReconciliationProcessor struct {
	DB        *gorm.DB
	Logger    *logrus.Logger
	Deps      workflow.JobDeps
	WorkerID  string
	BatchSize int
	Interval  time.Duration
	LockTTL   time.Duration
}

func NewReconciliationProcessor(db *gorm.DB, logger *logrus.Logger, deps workflow.JobDeps) *ReconciliationProcessor {
	return &ReconciliationProcessor{
		DB:        db,
		Logger:    logger,
		Deps:      deps,
		WorkerID:  "reconciler-" + time.Now().Format("20060102-150405.000"),
		BatchSize: 50,
		Interval:  2 * time.Second,
		LockTTL:   30 * time.Second,
	}
}

func (p *ReconciliationProcessor) Run(ctx context.Context) {
	if p == nil || p.DB == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		p.processOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.Interval):
		}
	}
}

func (p *ReconciliationProcessor) processOnce(ctx context.Context) {
	lock := p.obtainRunnerLock(ctx)
	defer func() {
		if lock == nil {
			return
		}
		if err := lock.Release(ctx); err != nil {
			p.Logger.Warn("failed to release reconciliation runner lock: " + err.Error())
		}
	}()

	now := time.Now().UTC()
	staleBefore := now.Add(-p.LockTTL)

	var claimed []models.ReconciliationJob
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Where("state IN ?", []string{models.JobStateScheduled, models.JobStatePendingRecheck}).
			Where("run_at <= ?", now).
			Where("(locked_at IS NULL OR locked_at <= ?)", staleBefore).
			Order("run_at ASC").
			Limit(p.BatchSize).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
		if err := q.Find(&claimed).Error; err != nil {
			return err
		}
		for i := range claimed {
			claimed[i].LockedAt = &now
			claimed[i].LockedBy = p.WorkerID
			if err := tx.Model(&models.ReconciliationJob{}).
				Where("id = ?", claimed[i].ID).
				Updates(map[string]interface{}{
					"locked_at": claimed[i].LockedAt,
					"locked_by": claimed[i].LockedBy,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		config.LogError(p.Logger, "reconciliation_processor.go", "processOnce", "claim batch", nil, err)
		return
	}
	if len(claimed) == 0 {
		return
	}

	for i := range claimed {
		job := &claimed[i]
		if err := workflow.ProcessJob(ctx, p.Deps, job); err != nil {
			config.LogError(p.Logger, "reconciliation_processor.go", "processOnce", "process job",
				map[string]any{"job_id": job.ID, "external_id": job.ExternalId}, err)
		}
	}
}

// obtainRunnerLock is best-effort: SKIP LOCKED already protects against
// double processing, so when Redis is down or the lock is held we proceed
// anyway.
func (p *ReconciliationProcessor) obtainRunnerLock(ctx context.Context) *redislock.Lock {
	locker := config.GetRedisLock()
	if locker == nil {
		return nil
	}
	lock, err := locker.Obtain(ctx, "lock:odoo-reconciliation-runner", p.LockTTL, nil)
	if err == redislock.ErrNotObtained {
		return nil
	}
	if err != nil {
		p.Logger.Warn("error obtaining reconciliation runner lock; proceeding without it: " + err.Error())
		return nil
	}
	return lock
}
