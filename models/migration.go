package models

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Patient{},
		&Facility{},
		&FacilityLocation{},
		&FacilityUser{},
		&Organization{},
		&ResourceCategory{},
		&ChargeItemDefinition{},
		&ChargeItem{},
		&Product{},
		&Account{},
		&Invoice{},
		&PaymentReconciliation{},
		&ServiceRequest{},
		&TokenBooking{},
		&MedicationDispense{},
		&DeliveryOrder{},
		&SupplyDelivery{},
		&ReconciliationJob{},
	)
}
