package app

import (
	"fmt"

	"go-procurement/internal/audit"
	"go-procurement/internal/config"
	"go-procurement/internal/costestimate"
	"go-procurement/internal/domain"
	"go-procurement/internal/messaging/kafka"
	"go-procurement/internal/purchaseorder"
	"go-procurement/internal/shared/connection"
	"go-procurement/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const countersDDL = `
CREATE TABLE IF NOT EXISTS counters (
	counter_type VARCHAR(50) PRIMARY KEY,
	last_value   BIGINT NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// foreignKeys are added by name so re-running the migration is a no-op.
var foreignKeys = []struct {
	name, table, column, ref string
}{
	{"fk_purchase_orders_requested_by", "purchase_orders", "requested_by", "users(id)"},
	{"fk_purchase_orders_approved_by", "purchase_orders", "approved_by", "users(id)"},
	{"fk_cost_estimates_purchase_order", "cost_estimates", "purchase_order_id", "purchase_orders(id)"},
	{"fk_cost_estimates_created_by", "cost_estimates", "created_by", "users(id)"},
	{"fk_cost_estimates_approved_by", "cost_estimates", "approved_by", "users(id)"},
	{"fk_line_items_cost_estimate", "cost_estimate_line_items", "cost_estimate_id", "cost_estimates(id)"},
}

// RunMigrate creates the schema and seeds the demo accounts.
func RunMigrate(cfg *config.Config) error {
	logger := zap.L().Named("app.migrate")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := migrateSchema(gormDB); err != nil {
		return err
	}
	logger.Info("schema migrations completed")

	seeded, err := seedUsers(gormDB)
	if err != nil {
		return err
	}
	logger.Info("seed users completed", zap.Int64("inserted", seeded))

	return nil
}

func migrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&purchaseorder.PurchaseOrder{},
		&costestimate.CostEstimate{},
		&costestimate.LineItem{},
		&kafka.OutboxEvent{},
		&audit.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(countersDDL).Error; err != nil {
		return fmt.Errorf("create counters: %w", err)
	}

	for _, fk := range foreignKeys {
		stmt := fmt.Sprintf(`
DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s;
	END IF;
END $$`, fk.name, fk.table, fk.name, fk.column, fk.ref)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add %s: %w", fk.name, err)
		}
	}
	return nil
}

func demoUsers() []user.User {
	return []user.User{
		{Username: "admin", Email: "admin@company.com", FullName: "System Administrator", Role: domain.RoleSuperAdmin, IsActive: true},
		{Username: "bsp_user", Email: "bsp@company.com", FullName: "BSP Manager", Role: domain.RoleBSP, IsActive: true},
		{Username: "dau_user", Email: "dau@company.com", FullName: "DAU Approver", Role: domain.RoleDAU, IsActive: true},
		{Username: "unit_kerja", Email: "unit@company.com", FullName: "Unit Kerja Staff", Role: domain.RoleUnitKerja, IsActive: true},
	}
}

// seedUsers inserts the demo accounts that do not exist yet and reports how
// many were new.
func seedUsers(db *gorm.DB) (int64, error) {
	users := demoUsers()
	res := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(&users)
	return res.RowsAffected, res.Error
}
