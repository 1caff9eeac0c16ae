// Package adminview holds the state behind the admin registrations table.
package adminview

import (
	"context"
	"errors"

	"github.com/oaiiae/hackathon-signup/datastores"
)

var ErrNotEditing = errors.New("adminview: no row is being edited")

// Editor lets one row at a time be edited through a draft copy.
// The store is only written by [Editor.Save]. An Editor is not safe for
// concurrent use.
type Editor struct {
	Store datastores.RegistrationsStore

	draft *datastores.Registration
}

// Begin loads the registration into a fresh draft, dropping any previous one.
func (e *Editor) Begin(ctx context.Context, id datastores.RegistrationID) error {
	r, err := e.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	e.draft = r
	return nil
}

// Editing returns the ID of the row being edited, if any.
func (e *Editor) Editing() (datastores.RegistrationID, bool) {
	if e.draft == nil {
		return datastores.RegistrationID{}, false
	}
	return e.draft.ID, true
}

// Edit applies fn to the draft.
func (e *Editor) Edit(fn func(draft *datastores.Registration)) error {
	if e.draft == nil {
		return ErrNotEditing
	}
	id := e.draft.ID
	fn(e.draft)
	e.draft.ID = id
	return nil
}

// Save writes the draft back and returns to viewing.
// On error the draft is kept so the save can be retried.
func (e *Editor) Save(ctx context.Context) (*datastores.Registration, error) {
	if e.draft == nil {
		return nil, ErrNotEditing
	}
	if err := e.Store.Replace(ctx, e.draft.ID, e.draft); err != nil {
		return nil, err
	}
	saved := e.draft
	e.draft = nil
	return saved, nil
}

// Cancel discards the draft.
func (e *Editor) Cancel() { e.draft = nil }
