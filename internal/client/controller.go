// Package client implements the record-service client. This file contains
// the Controller: the process-wide UI state machine behind the terminal
// frontend. It owns the current submission list, the loading flag, the last
// error message, the create form, and the at-most-one submission open for
// editing.
//
// Execution is single-threaded and cooperative: each user action issues one
// request and the frontend disables further actions until it resolves (the
// inflight guard backs that up). List refreshes carry a monotonically
// increasing token so a slow, superseded refresh can never overwrite the
// result of a newer one.
package client

import (
	"context"
	"fmt"
	"regexp"
)

// phoneRE is the loose client-side phone check: digits, parentheses, dashes,
// and spaces, at least 7 characters. The server does not enforce a format.
var phoneRE = regexp.MustCompile(`^[0-9()\-\s]{7,}$`)

// API is the service surface the controller drives. *Client satisfies it;
// tests substitute stubs.
type API interface {
	List(ctx context.Context) ([]Submission, error)
	Create(ctx context.Context, in SubmissionInput) (*Submission, error)
	Update(ctx context.Context, id uint, in SubmissionInput) (*Submission, error)
	Delete(ctx context.Context, id uint) (string, error)
}

// Confirmer asks the user a yes/no question before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// View is an immutable snapshot of the controller state for rendering.
//
// Rendering rule: Loading with an empty list shows a loading indicator;
// idle with an empty list shows the empty-state message; otherwise one row
// per submission with edit/delete actions, disabled while Busy.
type View struct {
	Submissions []Submission
	Loading     bool
	Busy        bool
	Err         string
	Editing     *Submission
	Form        SubmissionInput
	EditForm    SubmissionInput
}

// Controller holds the client-side UI state and translates user actions into
// API calls. It is not safe for concurrent use; the frontend drives it from
// a single goroutine.
type Controller struct {
	api       API
	confirmer Confirmer

	submissions []Submission
	loading     bool
	inflight    bool
	errMsg      string
	editing     *Submission

	form     SubmissionInput
	editForm SubmissionInput

	// listToken invalidates superseded refreshes: only the response whose
	// token still matches may replace the list.
	listToken uint64
}

// NewController constructs a Controller bound to api and confirmer.
func NewController(api API, confirmer Confirmer) *Controller {
	return &Controller{api: api, confirmer: confirmer}
}

// Snapshot returns the current state for rendering.
func (c *Controller) Snapshot() View {
	v := View{
		Submissions: c.submissions,
		Loading:     c.loading,
		Busy:        c.inflight,
		Err:         c.errMsg,
		Form:        c.form,
		EditForm:    c.editForm,
	}
	if c.editing != nil {
		cp := *c.editing
		v.Editing = &cp
	}
	return v
}

// SetForm replaces the create-form fields.
func (c *Controller) SetForm(in SubmissionInput) { c.form = in }

// SetEditForm replaces the edit-form fields.
func (c *Controller) SetEditForm(in SubmissionInput) { c.editForm = in }

// Load refreshes the submission list. A response belonging to a superseded
// refresh is discarded so the most recently issued request always wins. On
// failure the server message (or a status fallback) is surfaced and the
// previous list is kept.
func (c *Controller) Load(ctx context.Context) {
	c.loading = true
	c.errMsg = ""
	c.listToken++
	token := c.listToken

	items, err := c.api.List(ctx)

	if token != c.listToken {
		// A newer refresh was issued while this one was in flight.
		return
	}
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.submissions = items
}

// SubmitNew creates a submission from the create form. The phone field is
// checked client-side against the loose pattern before any request is sent.
// Success clears the form; failure surfaces the message and leaves the form
// intact so the user can correct and resubmit.
func (c *Controller) SubmitNew(ctx context.Context) {
	if c.inflight {
		return
	}
	in := c.form
	if in.Username == "" || in.Email == "" || in.Phone == "" {
		c.errMsg = "Please fill out all fields."
		return
	}
	if !phoneRE.MatchString(in.Phone) {
		c.errMsg = "Phone must be at least 7 characters of digits, spaces, dashes, or parentheses."
		return
	}

	c.inflight = true
	c.errMsg = ""
	_, err := c.api.Create(ctx, in)
	c.inflight = false
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.form = SubmissionInput{}
	c.Load(ctx)
}

// RequestDelete asks for confirmation naming the target id, then deletes the
// submission and refreshes the list. Declining the confirmation is a no-op.
func (c *Controller) RequestDelete(ctx context.Context, id uint) {
	if c.inflight {
		return
	}
	if !c.confirmer.Confirm(fmt.Sprintf("Are you sure you want to delete submission #%d?", id)) {
		return
	}

	c.inflight = true
	c.errMsg = ""
	_, err := c.api.Delete(ctx, id)
	c.inflight = false
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.Load(ctx)
}

// OpenEdit selects the submission with the given id as the edit target and
// pre-fills the edit form with its current field values. It reports whether
// a matching row was found in the current list.
func (c *Controller) OpenEdit(id uint) bool {
	for i := range c.submissions {
		if c.submissions[i].ID == id {
			cp := c.submissions[i]
			c.editing = &cp
			c.editForm = SubmissionInput{
				Username: cp.Username,
				Email:    cp.Email,
				Phone:    cp.Phone,
			}
			return true
		}
	}
	return false
}

// SubmitEdit updates the submission currently open for editing with the edit
// form's fields. Success clears the edit target and refreshes the list;
// failure surfaces the message and leaves the edit form open.
func (c *Controller) SubmitEdit(ctx context.Context) {
	if c.inflight || c.editing == nil {
		return
	}
	in := c.editForm
	if in.Username == "" || in.Email == "" || in.Phone == "" {
		c.errMsg = "Please fill out all fields."
		return
	}
	if !phoneRE.MatchString(in.Phone) {
		c.errMsg = "Phone must be at least 7 characters of digits, spaces, dashes, or parentheses."
		return
	}

	c.inflight = true
	c.errMsg = ""
	_, err := c.api.Update(ctx, c.editing.ID, in)
	c.inflight = false
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.editing = nil
	c.editForm = SubmissionInput{}
	c.Load(ctx)
}

// CancelEdit clears the edit target without calling the service.
func (c *Controller) CancelEdit() {
	c.editing = nil
	c.editForm = SubmissionInput{}
}
