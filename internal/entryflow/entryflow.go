// Package entryflow models the create/edit form for expenses and incomes as
// an immutable state value. Every transition returns a new State and leaves
// the receiver unchanged.
package entryflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kukkaro/internal/client"
)

// ErrIllegalTransition is returned when a transition is not allowed in the current phase.
var ErrIllegalTransition = errors.New("illegal entry flow transition")

// Phase is the lifecycle stage of the form.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpen
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseOpen:
		return "open"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Mode tells whether the form creates a new row or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Draft holds the form fields. Amount is kept as typed so a decimal comma survives.
type Draft struct {
	Kind       client.Kind
	Name       string
	Amount     string
	CategoryID uint
	Date       time.Time
}

// Missing lists the required fields that are empty.
func (d Draft) Missing() []string {
	var missing []string
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(d.Amount) == "" {
		missing = append(missing, "amount")
	}
	if d.CategoryID == 0 {
		missing = append(missing, "category")
	}
	if d.Date.IsZero() {
		missing = append(missing, "date")
	}
	return missing
}

// Input converts the draft to a create payload.
func (d Draft) Input() client.TransactionInput {
	return client.TransactionInput{
		Name:       strings.TrimSpace(d.Name),
		Amount:     strings.TrimSpace(d.Amount),
		CategoryID: d.CategoryID,
		Date:       d.Date,
	}
}

// Patch converts the draft to an update payload carrying every field.
func (d Draft) Patch() client.TransactionPatch {
	in := d.Input()
	return client.TransactionPatch{
		Name:       &in.Name,
		Amount:     &in.Amount,
		CategoryID: &in.CategoryID,
		Date:       &in.Date,
	}
}

// State is the form state. The zero value is closed.
type State struct {
	phase   Phase
	mode    Mode
	editID  uint
	draft   Draft
	message string
}

// Phase returns the current phase.
func (s State) Phase() Phase { return s.phase }

// Mode returns whether the form creates or edits.
func (s State) Mode() Mode { return s.mode }

// EditID returns the ID of the edited row; zero in create mode.
func (s State) EditID() uint { return s.editID }

// Draft returns the current form fields.
func (s State) Draft() Draft { return s.draft }

// Message returns the inline error shown after a failed submit.
func (s State) Message() string { return s.message }

func (s State) illegal(action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrIllegalTransition, action, s.phase)
}

// OpenCreate opens an empty form for a new row dated date.
func (s State) OpenCreate(kind client.Kind, date time.Time) (State, error) {
	if s.phase != PhaseClosed {
		return s, s.illegal("open")
	}
	return State{
		phase: PhaseOpen,
		mode:  ModeCreate,
		draft: Draft{Kind: kind, Date: date},
	}, nil
}

// OpenEdit opens the form prefilled from an existing row.
func (s State) OpenEdit(kind client.Kind, txn client.Transaction) (State, error) {
	if s.phase != PhaseClosed {
		return s, s.illegal("open")
	}
	return State{
		phase:  PhaseOpen,
		mode:   ModeEdit,
		editID: txn.ID,
		draft: Draft{
			Kind:       kind,
			Name:       txn.Name,
			Amount:     fmt.Sprintf("%.2f", txn.Amount),
			CategoryID: txn.CategoryID,
			Date:       txn.Date,
		},
	}, nil
}

// Update replaces the form fields. The kind of an open form cannot change.
func (s State) Update(draft Draft) (State, error) {
	if s.phase != PhaseOpen {
		return s, s.illegal("edit")
	}
	draft.Kind = s.draft.Kind
	next := s
	next.draft = draft
	return next, nil
}

// Submit moves an open form to submitting. Missing fields keep the form open
// with an inline message instead.
func (s State) Submit() (State, error) {
	if s.phase != PhaseOpen {
		return s, s.illegal("submit")
	}
	next := s
	if missing := s.draft.Missing(); len(missing) > 0 {
		next.message = "Missing required fields: " + strings.Join(missing, ", ")
		return next, nil
	}
	next.phase = PhaseSubmitting
	next.message = ""
	return next, nil
}

// Succeed closes the form after the server accepted the submit. The caller reloads.
func (s State) Succeed() (State, error) {
	if s.phase != PhaseSubmitting {
		return s, s.illegal("complete")
	}
	return State{}, nil
}

// Fail reopens the form with the server's message, keeping the edits.
func (s State) Fail(message string) (State, error) {
	if s.phase != PhaseSubmitting {
		return s, s.illegal("fail")
	}
	next := s
	next.phase = PhaseOpen
	next.message = message
	return next, nil
}

// Cancel closes an open form and discards its edits.
func (s State) Cancel() (State, error) {
	if s.phase != PhaseOpen {
		return s, s.illegal("cancel")
	}
	return State{}, nil
}

// Saver performs the write of a submitted form.
type Saver interface {
	CreateTransaction(ctx context.Context, kind client.Kind, in client.TransactionInput) (*client.Transaction, error)
	UpdateTransaction(ctx context.Context, kind client.Kind, id uint, patch client.TransactionPatch) (*client.Transaction, error)
}

// Save submits an open form through saver. On success the returned state is
// closed; on failure it is open again with the error as its message, and the
// error is returned too. A form left open by missing fields is returned with
// a nil row and a nil error.
func Save(ctx context.Context, s State, saver Saver) (State, *client.Transaction, error) {
	submitting, err := s.Submit()
	if err != nil || submitting.phase != PhaseSubmitting {
		return submitting, nil, err
	}

	draft := submitting.draft
	var saved *client.Transaction
	if submitting.mode == ModeEdit {
		saved, err = saver.UpdateTransaction(ctx, draft.Kind, submitting.editID, draft.Patch())
	} else {
		saved, err = saver.CreateTransaction(ctx, draft.Kind, draft.Input())
	}
	if err != nil {
		failed, ferr := submitting.Fail(failureMessage(err))
		if ferr != nil {
			return submitting, nil, ferr
		}
		return failed, nil, err
	}

	closed, err := submitting.Succeed()
	return closed, saved, err
}

func failureMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
