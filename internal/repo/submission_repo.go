// Package repo implements the data persistence layer for submissions,
// backed by GORM. This file provides repository functions for the
// Submission model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. No operation spans more than one
// statement apart from the update read-back, so each call holds a pooled
// connection only as long as a single statement runs.
//
// Error semantics:
//   - When a submission is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-form-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateSubmission inserts a new row with the given field values. The store
// assigns the integer primary key; CreatedAt is set to UTC now.
//
// On success, it returns the persisted Submission including the assigned ID.
// On failure, it returns a DB error.
func CreateSubmission(ctx context.Context, db *gorm.DB, username, email, phone string) (*domain.Submission, error) {
	s := &domain.Submission{
		Username:  username,
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// ListSubmissions returns all rows ordered by creation time descending
// (most recent first). The secondary id ordering keeps rows created within
// the same timestamp tick in reverse insertion order. It returns an empty
// slice when the table is empty. On DB error, it returns the error.
func ListSubmissions(ctx context.Context, db *gorm.DB) ([]domain.Submission, error) {
	out := []domain.Submission{}
	err := db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// GetSubmission fetches a single row by ID. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetSubmission(ctx context.Context, db *gorm.DB, id uint) (*domain.Submission, error) {
	var s domain.Submission
	if err := db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSubmission overwrites username, email, and phone of the row
// identified by id, leaving ID and CreatedAt untouched. If no row matches,
// it returns ErrNotFound and performs no write. On success, the updated
// record is read back and returned.
func UpdateSubmission(ctx context.Context, db *gorm.DB, id uint, username, email, phone string) (*domain.Submission, error) {
	res := db.WithContext(ctx).
		Model(&domain.Submission{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"username": username,
			"email":    email,
			"phone":    phone,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return GetSubmission(ctx, db, id)
}

// DeleteSubmission permanently removes the row identified by id. If no row
// matches, it returns ErrNotFound. The delete is physical; there is no
// soft-delete marker to resurrect from, so a second delete on the same id
// reports ErrNotFound.
func DeleteSubmission(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Submission{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
