package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-form-backend/internal/domain"
	"github.com/tbourn/go-form-backend/internal/services"
)

func init() { gin.SetMode(gin.TestMode) }

// stubService scripts the service layer per test.
type stubService struct {
	createFn func(ctx context.Context, username, email, phone string) (*domain.Submission, error)
	listFn   func(ctx context.Context) ([]domain.Submission, error)
	updateFn func(ctx context.Context, id uint, username, email, phone string) (*domain.Submission, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubService) Create(ctx context.Context, username, email, phone string) (*domain.Submission, error) {
	return s.createFn(ctx, username, email, phone)
}

func (s *stubService) List(ctx context.Context) ([]domain.Submission, error) {
	return s.listFn(ctx)
}

func (s *stubService) Update(ctx context.Context, id uint, username, email, phone string) (*domain.Submission, error) {
	return s.updateFn(ctx, id, username, email, phone)
}

func (s *stubService) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func newTestRouter(svc SubmissionService) *gin.Engine {
	r := gin.New()
	h := New(svc)
	r.GET("/submissions", h.ListSubmissions)
	r.POST("/submissions", h.CreateSubmission)
	r.PUT("/submissions/:id", h.UpdateSubmission)
	r.DELETE("/submissions/:id", h.DeleteSubmission)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error envelope: %v (body=%s)", err, w.Body.String())
	}
	return e
}

func TestListSubmissions_OK(t *testing.T) {
	svc := &stubService{
		listFn: func(context.Context) ([]domain.Submission, error) {
			return []domain.Submission{{ID: 2, Username: "b"}, {ID: 1, Username: "a"}}, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/submissions", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body=%s)", w.Code, w.Body.String())
	}
	var got []domain.Submission
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("unexpected body: %#v", got)
	}
}

func TestListSubmissions_EmptyIsJSONArray(t *testing.T) {
	svc := &stubService{
		listFn: func(context.Context) ([]domain.Submission, error) {
			return []domain.Submission{}, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/submissions", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestListSubmissions_StorageError(t *testing.T) {
	svc := &stubService{
		listFn: func(context.Context) ([]domain.Submission, error) {
			return nil, errors.New("disk is sad")
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/submissions", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	e := decodeEnvelope(t, w)
	if e.Message != "Error fetching submissions" || e.Code != ErrCodeListFailed {
		t.Fatalf("unexpected envelope: %+v", e)
	}
	if strings.Contains(w.Body.String(), "disk is sad") {
		t.Fatalf("internal error leaked to client: %s", w.Body.String())
	}
}

func TestCreateSubmission_Created(t *testing.T) {
	svc := &stubService{
		createFn: func(_ context.Context, username, email, phone string) (*domain.Submission, error) {
			return &domain.Submission{ID: 1, Username: username, Email: email, Phone: phone}, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/submissions",
		`{"username":"alice","email":"a@x.com","phone":"1234567"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body=%s)", w.Code, w.Body.String())
	}
	var got domain.Submission
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 1 || got.Username != "alice" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestCreateSubmission_MalformedJSON(t *testing.T) {
	svc := &stubService{
		createFn: func(context.Context, string, string, string) (*domain.Submission, error) {
			t.Fatal("service must not be called for malformed JSON")
			return nil, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/submissions", `{"username":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "invalid JSON body" {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestCreateSubmission_MissingFields(t *testing.T) {
	svc := &stubService{
		createFn: func(context.Context, string, string, string) (*domain.Submission, error) {
			return nil, services.ErrMissingFields
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/submissions",
		`{"username":"alice","email":"a@x.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "All fields are required." {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestCreateSubmission_StorageError(t *testing.T) {
	svc := &stubService{
		createFn: func(context.Context, string, string, string) (*domain.Submission, error) {
			return nil, errors.New("insert failed")
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/submissions",
		`{"username":"alice","email":"a@x.com","phone":"1234567"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "Error saving submission" {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestUpdateSubmission_BadID(t *testing.T) {
	svc := &stubService{
		updateFn: func(context.Context, uint, string, string, string) (*domain.Submission, error) {
			t.Fatal("service must not be called for a non-integer id")
			return nil, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPut, "/submissions/abc",
		`{"username":"alice","email":"a@x.com","phone":"1234567"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "submission id must be an integer" {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestUpdateSubmission_MissingFields(t *testing.T) {
	svc := &stubService{
		updateFn: func(context.Context, uint, string, string, string) (*domain.Submission, error) {
			return nil, services.ErrMissingFields
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPut, "/submissions/7",
		`{"username":"alice","email":"a@x.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	// Update uses its own wording, distinct from the create message.
	if e := decodeEnvelope(t, w); e.Message != "All fields are required for update." {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestUpdateSubmission_NotFound(t *testing.T) {
	svc := &stubService{
		updateFn: func(context.Context, uint, string, string, string) (*domain.Submission, error) {
			return nil, services.ErrSubmissionNotFound
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPut, "/submissions/42",
		`{"username":"alice","email":"a@x.com","phone":"1234567"}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "Submission with id 42 not found." {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestUpdateSubmission_OK(t *testing.T) {
	svc := &stubService{
		updateFn: func(_ context.Context, id uint, username, email, phone string) (*domain.Submission, error) {
			return &domain.Submission{ID: id, Username: username, Email: email, Phone: phone}, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPut, "/submissions/7",
		`{"username":"bob","email":"b@x.com","phone":"7654321"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body=%s)", w.Code, w.Body.String())
	}
	var got domain.Submission
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 7 || got.Username != "bob" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestUpdateSubmission_StorageError(t *testing.T) {
	svc := &stubService{
		updateFn: func(context.Context, uint, string, string, string) (*domain.Submission, error) {
			return nil, errors.New("write failed")
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPut, "/submissions/7",
		`{"username":"bob","email":"b@x.com","phone":"7654321"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "Error updating submission" {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestDeleteSubmission_OK(t *testing.T) {
	svc := &stubService{
		deleteFn: func(_ context.Context, id uint) error {
			if id != 7 {
				t.Fatalf("unexpected id %d", id)
			}
			return nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodDelete, "/submissions/7", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Message != "Submission with id 7 successfully deleted." {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestDeleteSubmission_NotFound(t *testing.T) {
	svc := &stubService{
		deleteFn: func(context.Context, uint) error {
			return services.ErrSubmissionNotFound
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodDelete, "/submissions/999", "")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "Submission with id 999 not found." {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestDeleteSubmission_BadID(t *testing.T) {
	svc := &stubService{
		deleteFn: func(context.Context, uint) error {
			t.Fatal("service must not be called for a non-integer id")
			return nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodDelete, "/submissions/not-a-number", "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestDeleteSubmission_StorageError(t *testing.T) {
	svc := &stubService{
		deleteFn: func(context.Context, uint) error {
			return errors.New("delete failed")
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodDelete, "/submissions/7", "")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if e := decodeEnvelope(t, w); e.Message != "Error deleting submission" {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}
