package database

import (
	"context"
	"fmt"

	"callreport-api/models"

	"gorm.io/gorm"
)

const maxRecent = 500

// Journal persists finished lookups.
type Journal struct {
	db *gorm.DB
}

func NewJournal(db *gorm.DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Record(ctx context.Context, lookup *models.Lookup) error {
	if err := j.db.WithContext(ctx).Create(lookup).Error; err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	return nil
}

// Recent returns up to limit lookups, newest first. Status filters when set.
func (j *Journal) Recent(ctx context.Context, limit int, status string) ([]models.Lookup, error) {
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}

	query := j.db.WithContext(ctx).Model(&models.Lookup{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var lookups []models.Lookup
	err := query.Order("created_at DESC").Limit(limit).Find(&lookups).Error
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}

	return lookups, nil
}
