package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestList_DecodesSubmissions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/submissions" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":2,"username":"b","email":"b@x.com","phone":"2222222","created_at":"2025-06-01T10:00:00Z"},{"id":1,"username":"a","email":"a@x.com","phone":"1111111","created_at":"2025-06-01T09:00:00Z"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", nil) // trailing slash tolerated
	got, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].Username != "a" {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestCreate_SendsJSONAndDecodesRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var in SubmissionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if in.Username != "alice" {
			t.Errorf("unexpected payload: %+v", in)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"username":"alice","email":"a@x.com","phone":"1234567","created_at":"2025-06-01T09:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	sub, err := c.Create(context.Background(), SubmissionInput{Username: "alice", Email: "a@x.com", Phone: "1234567"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.ID != 1 || sub.Username != "alice" {
		t.Fatalf("unexpected record: %+v", sub)
	}
}

func TestUpdate_TargetsIDPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/submissions/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"username":"bob","email":"b@x.com","phone":"7654321","created_at":"2025-06-01T09:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	sub, err := c.Update(context.Background(), 7, SubmissionInput{Username: "bob", Email: "b@x.com", Phone: "7654321"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if sub.ID != 7 || sub.Username != "bob" {
		t.Fatalf("unexpected record: %+v", sub)
	}
}

func TestDelete_ReturnsConfirmationMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/submissions/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Submission with id 7 successfully deleted."}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	msg, err := c.Delete(context.Background(), 7)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if msg != "Submission with id 7 successfully deleted." {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestErrorEnvelopeMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"request_id":"x","code":"not_found","message":"Submission with id 42 not found."}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	_, err := c.Update(context.Background(), 42, SubmissionInput{Username: "a", Email: "a@x.com", Phone: "1234567"})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "Submission with id 42 not found." {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestNonJSONErrorFallsBackToStatusMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream exploded</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	_, err := c.List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "HTTP error! status: 502" {
		t.Fatalf("unexpected fallback message: %q", apiErr.Message)
	}
}

func TestJSONErrorWithoutMessageFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api", nil)
	_, err := c.List(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.Message != "HTTP error! status: 500" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}
