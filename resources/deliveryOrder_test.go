package resources

import (
	"context"
	"testing"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

func TestSyncDeliveryOrderSkipsInternalSupplier(t *testing.T) {
	fake := &fakeCaller{}
	settings := config.Settings{InternalSupplierIds: []string{"org-internal"}}
	r := &DeliveryOrderResource{Deps: Deps{Odoo: fake, Settings: settings, Logger: quietLogger()}}

	order := &models.DeliveryOrder{
		ExternalId: "do-1",
		Status:     models.DeliveryOrderStatusCompleted,
		Supplier:   &models.Organization{ExternalId: "org-internal", Name: "Central Store"},
	}
	id, err := r.syncLoadedOrder(context.Background(), nil, order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 0 {
		t.Fatalf("id = %d, want 0", id)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no Odoo calls, got %d", len(fake.calls))
	}
}

func TestSyncDeliveryOrderRequiresSupplier(t *testing.T) {
	fake := &fakeCaller{}
	r := &DeliveryOrderResource{Deps: Deps{Odoo: fake, Logger: quietLogger()}}

	_, err := r.syncLoadedOrder(context.Background(), nil, &models.DeliveryOrder{ExternalId: "do-2"})
	if !utils.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no Odoo calls, got %d", len(fake.calls))
	}
}
