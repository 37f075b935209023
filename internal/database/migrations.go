package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// indexes backs the sort orders and joins the repositories rely on.
var indexes = []index{
	// Invoice search and dashboard
	{"invoices", "idx_invoices_customer_status", "customer_id, status"},
	{"invoices", "idx_invoices_date_desc", "date DESC"},

	// Listings ordered by creation time
	{"projects", "idx_projects_company_created", "company_id, created_at DESC"},
	{"records", "idx_records_project_created", "project_id, created_at DESC"},
	{"tasks", "idx_tasks_record_created", "record_id, created_at DESC"},
	{"comments", "idx_comments_task_created", "task_id, created_at"},
	{"invitations", "idx_invitations_company_expires", "company_id, expires_at DESC"},

	// Membership lookups
	{"user_roles", "idx_user_roles_user_company", "user_id, company_id"},
	{"customers", "idx_customers_name", "name"},
}

// AddIndexes creates the composite indexes that AutoMigrate does not
// declare. Existing indexes are skipped.
func AddIndexes(db *gorm.DB, log *zap.SugaredLogger) error {
	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			log.Debugw("index already exists", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Infow("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}

// MigrateDatabase runs the schema migration followed by index creation.
func MigrateDatabase(db *gorm.DB, log *zap.SugaredLogger) error {
	if err := Migrate(db, log); err != nil {
		return err
	}
	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}
