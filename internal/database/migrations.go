package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	// The existence check reads pg_indexes; other drivers rely on AutoMigrate's
	// tag-declared indexes alone.
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Class lookup always walks class -> nursery
		{"classes", "idx_classes_nursery_id", "nursery_id"},
		{"nurseries", "idx_nurseries_created_by", "created_by"},
		{"nurseries", "idx_nurseries_organization_id", "organization_id"},

		// Chat
		{"messages", "idx_messages_conversation_id", "conversation_id"},
		{"messages", "idx_messages_sender_id", "sender_id"},
		{"chat_members", "idx_chat_members_user_id", "user_id"},

		// Tenant-scoped listings
		{"children", "idx_children_organization_id", "organization_id"},
		{"parents", "idx_parents_organization_id", "organization_id"},
		{"teachers", "idx_teachers_organization_id", "organization_id"},
		{"payments", "idx_payments_child_id", "child_id"},
		{"payments", "idx_payments_status", "status"},
		{"events", "idx_events_starts_at", "starts_at"},
		{"notifications", "idx_notifications_user_id", "user_id"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
