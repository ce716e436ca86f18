// Package repo implements the data persistence layer for submissions,
// backed by GORM. This file provides a small aggregate query used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-form-backend/internal/domain"
)

// SubmissionsStats returns aggregate metadata for the submissions table: the
// total number of rows and the maximum UpdatedAt timestamp among them.
//
// It executes two lightweight queries. When the table is empty, the returned
// count is 0 and maxUpdatedAt is nil. Field updates bump UpdatedAt, so the
// pair (count, maxUpdatedAt) changes whenever the list result would change.
func SubmissionsStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Submission{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
