// Submission HTTP handlers.
//
// This file exposes the REST endpoints for the submission resource:
//   - GET    /submissions      (list, newest first, weak ETag support)
//   - POST   /submissions      (create)
//   - PUT    /submissions/{id} (overwrite the three form fields)
//   - DELETE /submissions/{id} (permanent removal)
//
// Handlers are transport-thin: they validate input, call the application
// service, and translate service errors into HTTP results. Storage failures
// surface as opaque messages; the underlying error is logged server-side only.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tbourn/go-form-backend/internal/domain"
	"github.com/tbourn/go-form-backend/internal/repo"
	"github.com/tbourn/go-form-backend/internal/services"
)

// SubmissionService defines the operations consumed by the HTTP handlers.
//
// Implementations must be safe for concurrent use and must honor the provided
// context for cancellation and timeouts.
type SubmissionService interface {
	// Create validates presence of the three fields and inserts a row.
	Create(ctx context.Context, username, email, phone string) (*domain.Submission, error)
	// List returns all submissions ordered by creation time descending.
	List(ctx context.Context) ([]domain.Submission, error)
	// Update overwrites username/email/phone of an existing row.
	Update(ctx context.Context, id uint, username, email, phone string) (*domain.Submission, error)
	// Delete permanently removes a row.
	Delete(ctx context.Context, id uint) error
}

// Handlers groups the HTTP endpoints for the submission resource.
type Handlers struct {
	svc SubmissionService
}

// New constructs a Handlers instance bound to the given service.
func New(svc SubmissionService) *Handlers {
	return &Handlers{svc: svc}
}

// SubmissionRequest is the JSON payload shared by create and update. All
// three fields are required; presence is enforced by the service so that
// missing-field responses use the canonical message rather than a binding
// error string.
type SubmissionRequest struct {
	Username string `json:"username" example:"john_doe"`
	Email    string `json:"email"    example:"john.doe@example.com"`
	Phone    string `json:"phone"    example:"(123) 456-7890"`
}

// parseID extracts the :id path parameter as an unsigned integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ListSubmissions godoc
// @ID          listSubmissions
// @Summary     List submissions
// @Description Returns every stored submission ordered by creation time descending. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Submissions
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  domain.Submission
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Storage failure"
// @Router      /submissions [get]
func (h *Handlers) ListSubmissions(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.svc.(*services.SubmissionService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.SubmissionsStats(ctx, db)
		if err == nil {
			// Nanosecond precision: an update landing in the same second as
			// the previous max updated_at must still change the tag.
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"submissions:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.svc.List(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "Error fetching submissions", err)
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateSubmission godoc
// @ID          createSubmission
// @Summary     Create a submission
// @Description Inserts a new submission; the store assigns id and created_at.
// @Tags        Submissions
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SubmissionRequest  true  "Submission payload"
//
// @Success     201  {object} domain.Submission
// @Failure     400  {object} handlers.ErrorResponse "Missing field or malformed body"
// @Failure     500  {object} handlers.ErrorResponse "Storage failure"
// @Router      /submissions [post]
func (h *Handlers) CreateSubmission(c *gin.Context) {
	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", nil)
		return
	}

	sub, err := h.svc.Create(c.Request.Context(), req.Username, req.Email, req.Phone)
	if err != nil {
		switch err {
		case services.ErrMissingFields:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "All fields are required.", nil)
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "Error saving submission", err)
		}
		return
	}
	ok(c, http.StatusCreated, sub)
}

// UpdateSubmission godoc
// @ID          updateSubmission
// @Summary     Update a submission
// @Description Overwrites username, email, and phone of an existing submission. id and created_at are immutable.
// @Tags        Submissions
// @Accept      json
// @Produce     json
//
// @Param       id    path  int                         true  "Submission ID"
// @Param       body  body  handlers.SubmissionRequest  true  "Replacement field values"
//
// @Success     200  {object} domain.Submission
// @Failure     400  {object} handlers.ErrorResponse "Missing field or bad id"
// @Failure     404  {object} handlers.ErrorResponse "No row with that id"
// @Failure     500  {object} handlers.ErrorResponse "Storage failure"
// @Router      /submissions/{id} [put]
func (h *Handlers) UpdateSubmission(c *gin.Context) {
	id, idOK := parseID(c)
	if !idOK {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "submission id must be an integer", nil)
		return
	}

	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", nil)
		return
	}

	sub, err := h.svc.Update(c.Request.Context(), id, req.Username, req.Email, req.Phone)
	if err != nil {
		switch err {
		case services.ErrMissingFields:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "All fields are required for update.", nil)
		case services.ErrSubmissionNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("Submission with id %d not found.", id), nil)
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, "Error updating submission", err)
		}
		return
	}
	ok(c, http.StatusOK, sub)
}

// DeleteSubmission godoc
// @ID          deleteSubmission
// @Summary     Delete a submission
// @Description Permanently removes a submission. Deleting the same id twice yields 404 on the second call.
// @Tags        Submissions
// @Produce     json
//
// @Param       id  path  int  true  "Submission ID"
//
// @Success     200  {object} handlers.MessageResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad id"
// @Failure     404  {object} handlers.ErrorResponse "No row with that id"
// @Failure     500  {object} handlers.ErrorResponse "Storage failure"
// @Router      /submissions/{id} [delete]
func (h *Handlers) DeleteSubmission(c *gin.Context) {
	id, idOK := parseID(c)
	if !idOK {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "submission id must be an integer", nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		switch err {
		case services.ErrSubmissionNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("Submission with id %d not found.", id), nil)
		default:
			fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, "Error deleting submission", err)
		}
		return
	}
	ok(c, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Submission with id %d successfully deleted.", id),
	})
}
