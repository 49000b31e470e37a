package workflow

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/odoo"
)

type fakeOdoo struct {
	calls []fakeCall
	err   error
}

type fakeCall struct {
	endpoint string
	payload  map[string]any
	method   string
}

func (f *fakeOdoo) Call(ctx context.Context, endpoint string, payload map[string]any, method string) (map[string]any, error) {
	f.calls = append(f.calls, fakeCall{endpoint: endpoint, payload: payload, method: method})
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"success": true}, nil
}

type fixture struct {
	deps  JobDeps
	odoo  *fakeOdoo
	saved *models.ReconciliationJob
	now   time.Time
}

func newFixture(t *testing.T, exists bool, existsErr error) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	f := &fixture{
		odoo: &fakeOdoo{},
		now:  time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	f.deps = JobDeps{
		Exists: func(ctx context.Context, kind, externalId string) (bool, error) {
			return exists, existsErr
		},
		Odoo: f.odoo,
		Save: func(ctx context.Context, job *models.ReconciliationJob) error {
			f.saved = job
			return nil
		},
		Logger: logger,
		Settings: config.Settings{
			ReconciliationRecheckDelay: 5 * time.Second,
		},
		Now: func() time.Time { return f.now },
	}
	return f
}

func scheduledJob(kind string) *models.ReconciliationJob {
	return &models.ReconciliationJob{
		ID:         1,
		TargetKind: kind,
		ExternalId: "ext-123",
		State:      models.JobStateScheduled,
	}
}

func TestProcessJobRecordPresent(t *testing.T) {
	f := newFixture(t, true, nil)
	job := scheduledJob(models.JobTargetInvoice)
	job.LastError = "stale error from earlier attempt"
	lockedAt := f.now
	job.LockedAt = &lockedAt
	job.LockedBy = "reconciler-x"

	if err := ProcessJob(context.Background(), f.deps, job); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if job.State != models.JobStateReconciledPresent {
		t.Fatalf("state = %q, want reconciled_present", job.State)
	}
	if job.LastError != "" {
		t.Fatalf("last error not cleared: %q", job.LastError)
	}
	if job.LockedAt != nil || job.LockedBy != "" {
		t.Fatal("lock not released on finish")
	}
	if f.saved == nil {
		t.Fatal("job was not saved")
	}
	if len(f.odoo.calls) != 0 {
		t.Fatalf("no Odoo call expected, got %d", len(f.odoo.calls))
	}
}

func TestProcessJobFirstMissSchedulesRecheck(t *testing.T) {
	f := newFixture(t, false, nil)
	job := scheduledJob(models.JobTargetInvoice)

	if err := ProcessJob(context.Background(), f.deps, job); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if job.State != models.JobStatePendingRecheck {
		t.Fatalf("state = %q, want pending_recheck", job.State)
	}
	want := f.now.Add(f.deps.Settings.ReconciliationRecheckDelay)
	if !job.RunAt.Equal(want) {
		t.Fatalf("run_at = %v, want %v", job.RunAt, want)
	}
	if len(f.odoo.calls) != 0 {
		t.Fatal("cleanup must not run on the first miss")
	}
}

func TestProcessJobSecondMissCleansOrphan(t *testing.T) {
	cases := []struct {
		kind     string
		endpoint string
	}{
		{models.JobTargetInvoice, "api/account/move/return"},
		{models.JobTargetPayment, "api/account/move/payment/cancel"},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			f := newFixture(t, false, nil)
			job := scheduledJob(tc.kind)
			job.State = models.JobStatePendingRecheck

			if err := ProcessJob(context.Background(), f.deps, job); err != nil {
				t.Fatalf("ProcessJob error: %v", err)
			}
			if job.State != models.JobStateReconciledCleaned {
				t.Fatalf("state = %q, want reconciled_cleaned", job.State)
			}
			if len(f.odoo.calls) != 1 {
				t.Fatalf("expected 1 Odoo call, got %d", len(f.odoo.calls))
			}
			call := f.odoo.calls[0]
			if call.endpoint != tc.endpoint {
				t.Fatalf("endpoint = %q, want %q", call.endpoint, tc.endpoint)
			}
			if call.method != http.MethodPost {
				t.Fatalf("method = %q, want POST", call.method)
			}
			if call.payload["x_care_id"] != "ext-123" {
				t.Fatalf("payload x_care_id = %v", call.payload["x_care_id"])
			}
			if call.payload["reason"] != RollbackCleanupReason {
				t.Fatalf("payload reason = %v", call.payload["reason"])
			}
		})
	}
}

func TestProcessJobTransientCleanupFailureRetries(t *testing.T) {
	f := newFixture(t, false, nil)
	f.odoo.err = &odoo.ConnectionError{Message: "dial tcp: refused"}
	job := scheduledJob(models.JobTargetPayment)
	job.State = models.JobStatePendingRecheck

	if err := ProcessJob(context.Background(), f.deps, job); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if job.State != models.JobStatePendingRecheck {
		t.Fatalf("state = %q, want pending_recheck kept for retry", job.State)
	}
	if job.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", job.Attempts)
	}
	if job.LastError == "" {
		t.Fatal("last error not recorded")
	}
	want := f.now.Add(RetryDelay)
	if !job.RunAt.Equal(want) {
		t.Fatalf("run_at = %v, want %v", job.RunAt, want)
	}
}

func TestProcessJobExhaustedRetriesParkJob(t *testing.T) {
	f := newFixture(t, false, nil)
	f.odoo.err = &odoo.ConnectionError{Message: "dial tcp: refused"}
	job := scheduledJob(models.JobTargetInvoice)
	job.State = models.JobStatePendingRecheck
	job.Attempts = models.JobMaxAttempts - 1

	if err := ProcessJob(context.Background(), f.deps, job); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if job.State != models.JobStatePermanentlyFailed {
		t.Fatalf("state = %q, want permanently_failed", job.State)
	}
	if job.Attempts != models.JobMaxAttempts {
		t.Fatalf("attempts = %d, want %d", job.Attempts, models.JobMaxAttempts)
	}
}

func TestProcessJobClientErrorFailsImmediately(t *testing.T) {
	f := newFixture(t, false, nil)
	f.odoo.err = &odoo.ClientError{Message: "invoice not found in odoo"}
	job := scheduledJob(models.JobTargetInvoice)
	job.State = models.JobStatePendingRecheck

	if err := ProcessJob(context.Background(), f.deps, job); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if job.State != models.JobStatePermanentlyFailed {
		t.Fatalf("state = %q, want permanently_failed without retries", job.State)
	}
	if job.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", job.Attempts)
	}
}

func TestProcessJobExistenceCheckErrorRetries(t *testing.T) {
	f := newFixture(t, false, errors.New("db gone away"))
	job := scheduledJob(models.JobTargetInvoice)

	if err := ProcessJob(context.Background(), f.deps, job); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if job.State != models.JobStateScheduled {
		t.Fatalf("state = %q, want scheduled kept for retry", job.State)
	}
	if job.Attempts != 1 {
		t.Fatalf("attempts = %d, want 1", job.Attempts)
	}
	want := f.now.Add(RetryDelay)
	if !job.RunAt.Equal(want) {
		t.Fatalf("run_at = %v, want %v", job.RunAt, want)
	}
}

func TestProcessJobUnknownTargetKind(t *testing.T) {
	f := newFixture(t, false, nil)
	job := scheduledJob("appointment")
	job.State = models.JobStatePendingRecheck

	if err := ProcessJob(context.Background(), f.deps, job); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if job.State != models.JobStatePermanentlyFailed {
		t.Fatalf("state = %q, want permanently_failed", job.State)
	}
	if len(f.odoo.calls) != 0 {
		t.Fatal("unknown kind must not reach Odoo")
	}
}
