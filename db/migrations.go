package db

import (
	"fmt"

	"lexdesk/logger"
	"lexdesk/models"
)

// AllModels lists every table of the schema in dependency order
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Client{},
		&models.Case{},
		&models.Movement{},
		&models.Event{},
		&models.Expense{},
		&models.Fee{},
		&models.Payment{},
		&models.Document{},
	}
}

// Migrate creates the schema idempotently (CREATE TABLE IF NOT EXISTS) and its indexes
func Migrate(g *Gateway) error {
	if g == nil || g.db == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := g.db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(g); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.L().Info("database migrations completed")
	return nil
}

// createIndexes adds the composite indexes the listings rely on
func createIndexes(g *Gateway) error {
	statements := []string{
		`CREATE INDEX IF NOT EXISTS idx_movements_case_date ON movements(case_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_case_date ON expenses(case_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_case_date ON fees(case_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_case_date ON payments(case_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_events_status_starts ON events(status, starts_at)`,
	}
	for _, stmt := range statements {
		if err := g.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
