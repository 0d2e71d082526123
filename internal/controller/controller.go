// Package controller translates registry events (register, delete, delete
// all, search) into record store operations and list renders.
//
// A Controller holds no state of its own. Every operation is a function of
// the stored collection, the form contents and the event payload, and runs
// to completion before returning. Blocking decisions go through the injected
// dialog.Dialog so that callers can supply a terminal prompt, a scripted
// answer taken from an RPC request, or a test double.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/registrar/internal/dialog"
	"github.com/mmynk/registrar/internal/models"
	"github.com/mmynk/registrar/internal/records"
	"github.com/mmynk/registrar/internal/storage"
	"github.com/mmynk/registrar/internal/view"
)

// User-facing messages.
const (
	MsgRegistered       = "User registered successfully!"
	MsgSaveFailed       = "Could not save: the local storage is full."
	MsgConfirmDelete    = "Are you sure you want to delete this user?"
	MsgAlreadyEmpty     = "The list is already empty."
	MsgConfirmDeleteAll = "WARNING: this will permanently delete ALL registrations. Continue?"
	MsgDeletedAll       = "All data has been deleted."
)

// Form is the input surface the controller reads from.
type Form interface {
	Name() string
	Email() string
	SearchTerm() string
	// Reset clears the name and email inputs and returns focus to name.
	Reset()
}

// Observer receives operation outcomes. metrics.Metrics implements it.
type Observer interface {
	Observe(operation, outcome string)
	SetRecords(n int)
}

// Operation outcomes passed to Observer.
const (
	OutcomeOK       = "ok"
	OutcomeDeclined = "declined"
	OutcomeNoop     = "noop"
	OutcomeError    = "error"
)

// Controller wires one form, one list view and one dialog to a record store.
type Controller struct {
	store    *records.Store
	form     Form
	list     view.ListView
	dialog   dialog.Dialog
	now      func() time.Time
	validate func(name, email string) error
	observer Observer
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now as the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithValidation enables ValidateRegistration on Register.
func WithValidation() Option {
	return func(c *Controller) { c.validate = ValidateRegistration }
}

// WithObserver reports every operation outcome to o.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// New creates a Controller. All collaborators are required.
func New(store *records.Store, form Form, list view.ListView, d dialog.Dialog, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		form:   form,
		list:   list,
		dialog: d,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize renders the stored collection. Call it once on startup.
func (c *Controller) Initialize(ctx context.Context) error {
	_, err := c.Render(ctx)
	return err
}

// Render shows the full stored collection and returns it.
func (c *Controller) Render(ctx context.Context) ([]models.Record, error) {
	all, err := c.load(ctx)
	if err != nil {
		c.observe("list", OutcomeError)
		return nil, err
	}
	c.Show(all)
	c.observe("list", OutcomeOK)
	return all, nil
}

// Show renders exactly the given records and never touches the store.
func (c *Controller) Show(recs []models.Record) {
	view.Render(c.list, recs)
}

// Register appends a record built from the form contents.
// On a failed save the user is notified and the form and list are left as
// they were.
func (c *Controller) Register(ctx context.Context) (models.Record, error) {
	name, email := c.form.Name(), c.form.Email()

	if c.validate != nil {
		if err := c.validate(name, email); err != nil {
			c.dialog.Alert(validationMessage(err))
			c.observe("register", OutcomeDeclined)
			return models.Record{}, err
		}
	}

	record := models.NewRecord(name, email, c.now())

	all, err := c.load(ctx)
	if err != nil {
		c.observe("register", OutcomeError)
		return models.Record{}, err
	}
	all = append(all, record)

	if err := c.store.SaveAll(ctx, all); err != nil {
		slog.Error("Register failed", "email", email, "error", err)
		c.notifySaveFailure(err)
		c.observe("register", OutcomeError)
		return models.Record{}, err
	}
	c.setRecords(len(all))

	c.form.Reset()
	c.Show(all)
	slog.Info("Record registered", "email", email, "count", len(all))
	c.dialog.Alert(MsgRegistered)
	c.observe("register", OutcomeOK)
	return record, nil
}

// DeleteOne removes every record whose email equals email, after
// confirmation. It returns how many records were removed. If a search term
// is active the filtered view is re-applied after the full render.
func (c *Controller) DeleteOne(ctx context.Context, email string) (int, error) {
	if !c.dialog.Confirm(MsgConfirmDelete) {
		c.observe("delete", OutcomeDeclined)
		return 0, nil
	}

	all, err := c.load(ctx)
	if err != nil {
		c.observe("delete", OutcomeError)
		return 0, err
	}
	kept, removed := records.WithoutEmail(all, email)

	if err := c.store.SaveAll(ctx, kept); err != nil {
		slog.Error("Delete failed", "email", email, "error", err)
		c.notifySaveFailure(err)
		c.observe("delete", OutcomeError)
		return 0, err
	}
	c.setRecords(len(kept))

	c.Show(kept)
	slog.Info("Records deleted", "email", email, "removed", removed)
	c.observe("delete", OutcomeOK)

	if term := c.form.SearchTerm(); term != "" {
		if _, err := c.search(ctx, term); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// DeleteAll removes the collection key after confirmation. It reports
// whether anything was deleted. An already empty collection only produces a
// notice and leaves storage untouched.
func (c *Controller) DeleteAll(ctx context.Context) (bool, error) {
	all, err := c.load(ctx)
	if err != nil {
		c.observe("delete_all", OutcomeError)
		return false, err
	}
	if len(all) == 0 {
		c.dialog.Alert(MsgAlreadyEmpty)
		c.observe("delete_all", OutcomeNoop)
		return false, nil
	}

	if !c.dialog.Confirm(MsgConfirmDeleteAll) {
		c.observe("delete_all", OutcomeDeclined)
		return false, nil
	}

	if err := c.store.Clear(ctx); err != nil {
		slog.Error("Delete all failed", "error", err)
		c.observe("delete_all", OutcomeError)
		return false, err
	}
	c.setRecords(0)

	c.Show(nil)
	slog.Info("All records deleted", "removed", len(all))
	c.dialog.Alert(MsgDeletedAll)
	c.observe("delete_all", OutcomeOK)
	return true, nil
}

// Search renders the records whose name or email contains term,
// case-insensitively, and returns them. The store is not modified.
func (c *Controller) Search(ctx context.Context, term string) ([]models.Record, error) {
	matched, err := c.search(ctx, term)
	if err != nil {
		c.observe("search", OutcomeError)
		return nil, err
	}
	c.observe("search", OutcomeOK)
	return matched, nil
}

func (c *Controller) search(ctx context.Context, term string) ([]models.Record, error) {
	all, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	matched := records.Filter(all, term)
	c.Show(matched)
	return matched, nil
}

func (c *Controller) load(ctx context.Context) ([]models.Record, error) {
	all, err := c.store.LoadAll(ctx)
	if err != nil {
		slog.Error("Load failed", "key", c.store.Key(), "error", err)
		return nil, err
	}
	c.setRecords(len(all))
	return all, nil
}

func (c *Controller) notifySaveFailure(err error) {
	if errors.Is(err, storage.ErrQuotaExceeded) {
		c.dialog.Alert(MsgSaveFailed)
		return
	}
	c.dialog.Alert(fmt.Sprintf("Could not save: %v", err))
}

func (c *Controller) observe(operation, outcome string) {
	if c.observer != nil {
		c.observer.Observe(operation, outcome)
	}
}

func (c *Controller) setRecords(n int) {
	if c.observer != nil {
		c.observer.SetRecords(n)
	}
}
