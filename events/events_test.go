package events

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestDispatchRunsExactThenCatchAll(t *testing.T) {
	Reset()
	defer Reset()

	var order []string
	Register(EntityInvoice, AnyStatus, func(tx *gorm.DB, ev Event) error {
		order = append(order, "any")
		return nil
	})
	Register(EntityInvoice, "issued", func(tx *gorm.DB, ev Event) error {
		order = append(order, "exact")
		return nil
	})

	err := Dispatch(nil, Event{Entity: EntityInvoice, Action: ActionUpdated, Status: "issued"})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if len(order) != 2 || order[0] != "exact" || order[1] != "any" {
		t.Fatalf("handler order = %v, want [exact any]", order)
	}
}

func TestDispatchIgnoresOtherEntitiesAndStatuses(t *testing.T) {
	Reset()
	defer Reset()

	called := 0
	Register(EntityUser, AnyStatus, func(tx *gorm.DB, ev Event) error {
		called++
		return nil
	})
	Register(EntityPayment, "active", func(tx *gorm.DB, ev Event) error {
		called++
		return nil
	})

	if err := Dispatch(nil, Event{Entity: EntityInvoice, Status: "issued"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if err := Dispatch(nil, Event{Entity: EntityPayment, Status: "draft"}); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if called != 0 {
		t.Fatalf("called = %d, want 0", called)
	}
}

func TestDispatchStopsOnFirstError(t *testing.T) {
	Reset()
	defer Reset()

	boom := errors.New("sync failed")
	var ran []string
	Register(EntityPayment, "active", func(tx *gorm.DB, ev Event) error {
		ran = append(ran, "first")
		return boom
	})
	Register(EntityPayment, "active", func(tx *gorm.DB, ev Event) error {
		ran = append(ran, "second")
		return nil
	})
	Register(EntityPayment, AnyStatus, func(tx *gorm.DB, ev Event) error {
		ran = append(ran, "catch-all")
		return nil
	})

	err := Dispatch(nil, Event{Entity: EntityPayment, Status: "active"})
	if !errors.Is(err, boom) {
		t.Fatalf("Dispatch error = %v, want %v", err, boom)
	}
	if len(ran) != 1 || ran[0] != "first" {
		t.Fatalf("ran = %v, want only the first handler", ran)
	}
}

func TestDispatchCarriesEventFields(t *testing.T) {
	Reset()
	defer Reset()

	var got Event
	Register(EntityInvoice, AnyStatus, func(tx *gorm.DB, ev Event) error {
		got = ev
		return nil
	})

	record := struct{ Name string }{Name: "inv-1"}
	err := Dispatch(nil, Event{
		Entity:         EntityInvoice,
		Action:         ActionUpdated,
		Status:         "cancelled",
		PreviousStatus: "issued",
		Record:         &record,
	})
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if got.PreviousStatus != "issued" || got.Status != "cancelled" || got.Action != ActionUpdated {
		t.Fatalf("event = %+v", got)
	}
	if got.Record != &record {
		t.Fatal("record pointer not carried through")
	}
}
