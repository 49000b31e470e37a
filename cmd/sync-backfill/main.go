// Command sync-backfill pushes existing host records to Odoo in bulk.
// The lifecycle hooks only cover writes made while the plugin is running;
// this fills the gap after first install or an Odoo reset.
//
// Usage:
//
//	sync-backfill -resource users
//	sync-backfill -resource products -continue-on-error
//	sync-backfill -resource all -dry-run
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/ohcnetwork/care_odoo_bridge/config"
	"github.com/ohcnetwork/care_odoo_bridge/models"
	"github.com/ohcnetwork/care_odoo_bridge/odoo"
	"github.com/ohcnetwork/care_odoo_bridge/resources"
	"github.com/ohcnetwork/care_odoo_bridge/utils"
)

type syncStats struct {
	total   int
	synced  int
	failed  int
	skipped int
}

func main() {
	resource := flag.String("resource", "", "Resource to sync: users, products, categories, suppliers, or all")
	dryRun := flag.Bool("dry-run", false, "List what would be synced without calling Odoo")
	continueOnError := flag.Bool("continue-on-error", false, "Keep going after individual sync failures")
	batchSize := flag.Int("batch-size", 50, "Records fetched per batch")
	flag.Parse()

	order := []string{"categories", "suppliers", "products", "users"}
	valid := map[string]bool{"users": true, "products": true, "categories": true, "suppliers": true}
	if *resource != "all" && !valid[*resource] {
		fmt.Fprintf(os.Stderr, "unknown resource %q; expected one of users, products, categories, suppliers, all\n", *resource)
		os.Exit(2)
	}

	settings := config.LoadSettings()
	utils.ErrorPanic(settings.Validate())
	logger := config.GetLogger()

	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	utils.ErrorPanic(models.Migrate(db))
	models.SetBaseDB(db)

	deps := resources.Deps{
		Odoo:     odoo.NewConnector(settings, logger),
		Settings: settings,
		Logger:   logger,
	}

	ctx := context.Background()
	selected := order
	if *resource != "all" {
		selected = []string{*resource}
	}

	exitCode := 0
	for _, name := range selected {
		var stats syncStats
		var err error
		switch name {
		case "users":
			stats, err = syncUsers(ctx, db, deps, *dryRun, *continueOnError, *batchSize)
		case "products":
			stats, err = syncProducts(ctx, db, deps, *dryRun, *continueOnError, *batchSize)
		case "categories":
			stats, err = syncCategories(ctx, db, deps, *dryRun, *continueOnError, *batchSize)
		case "suppliers":
			stats, err = syncSuppliers(ctx, db, deps, *dryRun, *continueOnError, *batchSize)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: aborted: %v\n", name, err)
			exitCode = 1
			continue
		}
		fmt.Printf("%s: total=%d synced=%d failed=%d skipped=%d\n",
			name, stats.total, stats.synced, stats.failed, stats.skipped)
		if stats.failed > 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// forEachBatch pages through a query so a large backfill does not load the
// whole table.
func forEachBatch[T any](db *gorm.DB, batchSize int, fn func(items []T) error) error {
	var items []T
	return db.FindInBatches(&items, batchSize, func(tx *gorm.DB, batch int) error {
		return fn(items)
	}).Error
}

func syncUsers(ctx context.Context, db *gorm.DB, deps resources.Deps, dryRun, continueOnError bool, batchSize int) (syncStats, error) {
	users := &resources.UserResource{Deps: deps}
	var stats syncStats
	err := forEachBatch[models.User](db, batchSize, func(batch []models.User) error {
		for i := range batch {
			stats.total++
			if dryRun {
				fmt.Printf("would sync user %s\n", batch[i].Username)
				stats.skipped++
				continue
			}
			if _, err := users.SyncUser(ctx, &batch[i]); err != nil {
				stats.failed++
				config.LogError(deps.Logger, "sync-backfill", "syncUsers", batch[i].ExternalId, nil, err)
				if !continueOnError {
					return err
				}
				continue
			}
			stats.synced++
		}
		return nil
	})
	return stats, err
}

func syncProducts(ctx context.Context, db *gorm.DB, deps resources.Deps, dryRun, continueOnError bool, batchSize int) (syncStats, error) {
	products := &resources.ProductResource{Deps: deps}
	var stats syncStats
	err := forEachBatch[models.ChargeItemDefinition](db.Preload("Category.Parent"), batchSize, func(batch []models.ChargeItemDefinition) error {
		for i := range batch {
			stats.total++
			if dryRun {
				fmt.Printf("would sync product %s\n", batch[i].Title)
				stats.skipped++
				continue
			}
			if _, err := products.SyncDefinition(ctx, db, &batch[i], ""); err != nil {
				stats.failed++
				config.LogError(deps.Logger, "sync-backfill", "syncProducts", batch[i].ExternalId, nil, err)
				if !continueOnError {
					return err
				}
				continue
			}
			stats.synced++
		}
		return nil
	})
	return stats, err
}

func syncCategories(ctx context.Context, db *gorm.DB, deps resources.Deps, dryRun, continueOnError bool, batchSize int) (syncStats, error) {
	categories := &resources.CategoryResource{Deps: deps}
	var stats syncStats
	// Parents first so the parent chain exists in Odoo before children
	// reference it.
	query := db.Preload("Parent").
		Where("resource_type = ?", models.ResourceCategoryTypeChargeItemDefinition).
		Order("parent_id IS NOT NULL, id ASC")
	err := forEachBatch[models.ResourceCategory](query, batchSize, func(batch []models.ResourceCategory) error {
		for i := range batch {
			stats.total++
			if dryRun {
				fmt.Printf("would sync category %s\n", batch[i].Title)
				stats.skipped++
				continue
			}
			if _, err := categories.SyncCategory(ctx, db, &batch[i]); err != nil {
				stats.failed++
				config.LogError(deps.Logger, "sync-backfill", "syncCategories", batch[i].ExternalId, nil, err)
				if !continueOnError {
					return err
				}
				continue
			}
			stats.synced++
		}
		return nil
	})
	return stats, err
}

func syncSuppliers(ctx context.Context, db *gorm.DB, deps resources.Deps, dryRun, continueOnError bool, batchSize int) (syncStats, error) {
	partners := &resources.PartnerResource{Deps: deps}
	var stats syncStats
	query := db.Where("org_type = ?", models.OrgTypeProductSupplier)
	err := forEachBatch[models.Organization](query, batchSize, func(batch []models.Organization) error {
		for i := range batch {
			stats.total++
			if dryRun {
				fmt.Printf("would sync supplier %s\n", batch[i].Name)
				stats.skipped++
				continue
			}
			if _, err := partners.SyncOrganization(ctx, &batch[i]); err != nil {
				stats.failed++
				config.LogError(deps.Logger, "sync-backfill", "syncSuppliers", batch[i].ExternalId, nil, err)
				if !continueOnError {
					return err
				}
				continue
			}
			stats.synced++
		}
		return nil
	})
	return stats, err
}
