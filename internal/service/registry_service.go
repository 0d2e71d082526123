package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"connectrpc.com/connect"
	"github.com/mmynk/registrar/internal/controller"
	"github.com/mmynk/registrar/internal/dialog"
	"github.com/mmynk/registrar/internal/middleware"
	"github.com/mmynk/registrar/internal/models"
	"github.com/mmynk/registrar/internal/records"
	"github.com/mmynk/registrar/internal/storage"
	"github.com/mmynk/registrar/internal/view"
	"github.com/mmynk/registrar/pkg/api"
)

var _ api.RegistryServiceHandler = (*RegistryService)(nil)

// RegistryService implements the registry RPCs. Each call drives one
// controller event whose form is the request, whose list is a recorder and
// whose dialog answers with the request's confirmation flag.
type RegistryService struct {
	auth  *AuthService
	store *records.Store
	opts  []controller.Option

	// mu serializes controller events so each read-modify-write of the
	// collection runs alone.
	mu sync.Mutex
}

// NewRegistryService creates a RegistryService over store. opts are passed to
// every controller it builds. auth may be nil when login is disabled.
func NewRegistryService(store *records.Store, auth *AuthService, opts ...controller.Option) *RegistryService {
	return &RegistryService{
		auth:  auth,
		store: store,
		opts:  opts,
	}
}

// event is the per-call controller with its recording collaborators.
type event struct {
	ctl    *controller.Controller
	list   *view.Recorder
	dialog *dialog.Scripted
}

func (s *RegistryService) newEvent(form *controller.Fields, confirmed bool) *event {
	e := &event{
		list:   &view.Recorder{},
		dialog: dialog.NewScripted(confirmed),
	}
	e.ctl = controller.New(s.store, form, e.list, e.dialog, s.opts...)
	return e
}

// ListRecords renders the full collection.
func (s *RegistryService) ListRecords(ctx context.Context, req *connect.Request[api.ListRecordsRequest]) (*connect.Response[api.ListRecordsResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEvent(&controller.Fields{}, false)
	all, err := e.ctl.Render(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("ListRecords successful", "count", len(all))

	return connect.NewResponse(&api.ListRecordsResponse{
		Records: toAPIRecords(all),
		Items:   toAPIItems(e.list.Items()),
	}), nil
}

// RegisterRecord appends a record.
func (s *RegistryService) RegisterRecord(ctx context.Context, req *connect.Request[api.RegisterRecordRequest]) (*connect.Response[api.RegisterRecordResponse], error) {
	slog.Info("RegisterRecord request received",
		"email", req.Msg.Email,
		"subject", middleware.GetSubject(ctx),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEvent(&controller.Fields{NameValue: req.Msg.Name, EmailValue: req.Msg.Email}, true)
	record, err := e.ctl.Register(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RegisterRecordResponse{
		Record:  toAPIRecord(record),
		Items:   toAPIItems(e.list.Items()),
		Notices: e.dialog.Alerts(),
	}), nil
}

// DeleteRecord removes every record with the given email when confirmed.
func (s *RegistryService) DeleteRecord(ctx context.Context, req *connect.Request[api.DeleteRecordRequest]) (*connect.Response[api.DeleteRecordResponse], error) {
	slog.Info("DeleteRecord request received",
		"email", req.Msg.Email,
		"confirmed", req.Msg.Confirmed,
		"subject", middleware.GetSubject(ctx),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEvent(&controller.Fields{SearchValue: req.Msg.SearchTerm}, req.Msg.Confirmed)
	removed, err := e.ctl.DeleteOne(ctx, req.Msg.Email)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteRecordResponse{
		Removed: int32(removed),
		Items:   toAPIItems(e.list.Items()),
		Notices: e.dialog.Alerts(),
	}), nil
}

// DeleteAllRecords removes the collection when confirmed.
func (s *RegistryService) DeleteAllRecords(ctx context.Context, req *connect.Request[api.DeleteAllRecordsRequest]) (*connect.Response[api.DeleteAllRecordsResponse], error) {
	slog.Info("DeleteAllRecords request received",
		"confirmed", req.Msg.Confirmed,
		"subject", middleware.GetSubject(ctx),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEvent(&controller.Fields{}, req.Msg.Confirmed)
	deleted, err := e.ctl.DeleteAll(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteAllRecordsResponse{
		Deleted: deleted,
		Items:   toAPIItems(e.list.Items()),
		Notices: e.dialog.Alerts(),
	}), nil
}

// SearchRecords filters the collection by a case-insensitive substring.
func (s *RegistryService) SearchRecords(ctx context.Context, req *connect.Request[api.SearchRecordsRequest]) (*connect.Response[api.SearchRecordsResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.newEvent(&controller.Fields{SearchValue: req.Msg.Term}, false)
	matched, err := e.ctl.Search(ctx, req.Msg.Term)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("SearchRecords successful", "term", req.Msg.Term, "matches", len(matched))

	return connect.NewResponse(&api.SearchRecordsResponse{
		Records: toAPIRecords(matched),
		Items:   toAPIItems(e.list.Items()),
	}), nil
}

// Login delegates to the AuthService. Without one, login is unavailable.
func (s *RegistryService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	if s.auth == nil {
		return nil, connect.NewError(connect.CodeUnimplemented, errors.New("login is disabled"))
	}
	return s.auth.Login(ctx, req)
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrQuotaExceeded):
		return connect.NewError(connect.CodeResourceExhausted, err)
	case errors.Is(err, controller.ErrInvalidName), errors.Is(err, controller.ErrInvalidEmail):
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func toAPIRecord(r models.Record) api.Record {
	return api.Record{Name: r.Name, Email: r.Email, Timestamp: r.Timestamp}
}

func toAPIRecords(recs []models.Record) []api.Record {
	out := make([]api.Record, len(recs))
	for i, r := range recs {
		out[i] = toAPIRecord(r)
	}
	return out
}

func toAPIItems(items []view.Item) []api.ListItem {
	out := make([]api.ListItem, len(items))
	for i, it := range items {
		out[i] = api.ListItem{
			Placeholder: it.Placeholder,
			Text:        it.Text,
			Timestamp:   it.Timestamp,
			Name:        it.Name,
			Email:       it.Email,
			DeleteKey:   it.DeleteKey,
		}
	}
	return out
}
