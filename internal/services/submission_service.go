// Package services – SubmissionService
//
// This file implements the SubmissionService, which manages the lifecycle of
// form submissions. It enforces the presence invariant (username, email, and
// phone must all be non-blank before any write), coordinates repository
// operations, and maps persistence errors onto service-level sentinels so
// handlers can translate them to HTTP results consistently.
//
// There is no state machine here beyond validate → execute per call; each
// operation executes a single statement against the store.
package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-form-backend/internal/domain"
)

// tracerName identifies manual spans opened by this service. Field values
// (username, email, phone) are contact data and never become span attributes;
// only row ids and counts do.
const tracerName = "services/SubmissionService"

// SubmissionRepo defines the repository contract required by
// SubmissionService. Implementations are responsible for persistence of
// submission rows.
type SubmissionRepo interface {
	// CreateSubmission inserts a new row; the store assigns id and created_at.
	CreateSubmission(ctx context.Context, db *gorm.DB, username, email, phone string) (*domain.Submission, error)

	// ListSubmissions returns all rows ordered by creation time descending.
	ListSubmissions(ctx context.Context, db *gorm.DB) ([]domain.Submission, error)

	// UpdateSubmission overwrites the three mutable fields of an existing row.
	UpdateSubmission(ctx context.Context, db *gorm.DB, id uint, username, email, phone string) (*domain.Submission, error)

	// DeleteSubmission permanently removes a row.
	DeleteSubmission(ctx context.Context, db *gorm.DB, id uint) error
}

// SubmissionService provides create, list, update, and delete operations on
// submissions. It owns no state of its own; the DB handle carries the shared
// connection pool.
type SubmissionService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the submission repository used by this service.
	Repo SubmissionRepo
}

// NewSubmissionService constructs a SubmissionService bound to db and r.
func NewSubmissionService(db *gorm.DB, r SubmissionRepo) *SubmissionService {
	return &SubmissionService{DB: db, Repo: r}
}

// Create validates field presence and inserts a new submission. Fields are
// trimmed before the check; a blank field yields ErrMissingFields with no
// write performed.
func (s *SubmissionService) Create(ctx context.Context, username, email, phone string) (*domain.Submission, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Create")
	defer span.End()

	username, email, phone = trim3(username, email, phone)
	if username == "" || email == "" || phone == "" {
		return nil, ErrMissingFields
	}
	sub, err := s.Repo.CreateSubmission(ctx, s.DB, username, email, phone)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("submission.id", int64(sub.ID)))
	return sub, nil
}

// List returns all submissions, most recent first. An empty table yields an
// empty slice, not an error.
func (s *SubmissionService) List(ctx context.Context) ([]domain.Submission, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "List")
	defer span.End()

	items, err := s.Repo.ListSubmissions(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("submission.count", len(items)))
	return items, nil
}

// Update applies the same presence validation as Create, then overwrites
// username, email, and phone of the row identified by id. A missing row
// yields ErrSubmissionNotFound; id and created_at are never modified.
func (s *SubmissionService) Update(ctx context.Context, id uint, username, email, phone string) (*domain.Submission, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Update",
		trace.WithAttributes(attribute.Int64("submission.id", int64(id))),
	)
	defer span.End()

	username, email, phone = trim3(username, email, phone)
	if username == "" || email == "" || phone == "" {
		return nil, ErrMissingFields
	}
	sub, err := s.Repo.UpdateSubmission(ctx, s.DB, id, username, email, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}

// Delete permanently removes the row identified by id. A missing row yields
// ErrSubmissionNotFound; a repeated delete on the same id therefore fails
// the same way.
func (s *SubmissionService) Delete(ctx context.Context, id uint) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "Delete",
		trace.WithAttributes(attribute.Int64("submission.id", int64(id))),
	)
	defer span.End()

	if err := s.Repo.DeleteSubmission(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}
	return nil
}

// trim3 trims surrounding whitespace from the three form fields.
func trim3(a, b, c string) (string, string, string) {
	return strings.TrimSpace(a), strings.TrimSpace(b), strings.TrimSpace(c)
}
