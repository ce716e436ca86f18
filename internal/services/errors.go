// Package services defines the business logic for submissions. This file
// centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages and HTTP status codes is performed at the
// handler layer.
package services

import "errors"

var (
	// ErrMissingFields is returned when a create or update request omits one
	// of username, email, or phone (or supplies it blank). It is detected
	// before any write, so no partial effect is possible.
	ErrMissingFields = errors.New("all fields are required")

	// ErrSubmissionNotFound indicates that the id named by an update or
	// delete request has no matching row.
	ErrSubmissionNotFound = errors.New("submission not found")
)
