package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Create inserts a new run record.
func (r *GormRunRepository) Create(ctx context.Context, run *RunRecord) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to create run record: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *GormRunRepository) List(ctx context.Context, limit int) ([]*RunRecord, error) {
	var runs []*RunRecord
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list run records: %w", err)
	}
	return runs, nil
}

// Get retrieves a single run by ID.
func (r *GormRunRepository) Get(ctx context.Context, id int64) (*RunRecord, error) {
	var run RunRecord
	err := r.db.WithContext(ctx).First(&run, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run record not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get run record: %w", err)
	}
	return &run, nil
}
