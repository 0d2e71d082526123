package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/bytedance/sonic"
)

// RegistryServiceName is the fully-qualified name of the registry service.
const RegistryServiceName = "registrar.v1.RegistryService"

// Procedure paths of the registry service.
const (
	ListRecordsProcedure      = "/registrar.v1.RegistryService/ListRecords"
	RegisterRecordProcedure   = "/registrar.v1.RegistryService/RegisterRecord"
	DeleteRecordProcedure     = "/registrar.v1.RegistryService/DeleteRecord"
	DeleteAllRecordsProcedure = "/registrar.v1.RegistryService/DeleteAllRecords"
	SearchRecordsProcedure    = "/registrar.v1.RegistryService/SearchRecords"
	LoginProcedure            = "/registrar.v1.RegistryService/Login"
)

// Codec encodes messages as JSON with sonic. Its value is the codec name
// Connect matches against the request Content-Type.
type Codec string

// Codec names for application/json with and without a charset parameter.
const (
	JSONCodec        Codec = "json"
	JSONCharsetCodec Codec = "json; charset=utf-8"
)

var _ connect.Codec = JSONCodec

func (c Codec) Name() string { return string(c) }

func (Codec) Marshal(v any) ([]byte, error) {
	return sonic.ConfigStd.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return sonic.ConfigStd.Unmarshal(data, v)
}

// RegistryServiceHandler is implemented by the registry service.
type RegistryServiceHandler interface {
	ListRecords(context.Context, *connect.Request[ListRecordsRequest]) (*connect.Response[ListRecordsResponse], error)
	RegisterRecord(context.Context, *connect.Request[RegisterRecordRequest]) (*connect.Response[RegisterRecordResponse], error)
	DeleteRecord(context.Context, *connect.Request[DeleteRecordRequest]) (*connect.Response[DeleteRecordResponse], error)
	DeleteAllRecords(context.Context, *connect.Request[DeleteAllRecordsRequest]) (*connect.Response[DeleteAllRecordsResponse], error)
	SearchRecords(context.Context, *connect.Request[SearchRecordsRequest]) (*connect.Response[SearchRecordsResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewRegistryServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewRegistryServiceHandler(svc RegistryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(JSONCodec),
		connect.WithCodec(JSONCharsetCodec),
	}, opts...)

	handlers := map[string]http.Handler{
		ListRecordsProcedure:      connect.NewUnaryHandler(ListRecordsProcedure, svc.ListRecords, opts...),
		RegisterRecordProcedure:   connect.NewUnaryHandler(RegisterRecordProcedure, svc.RegisterRecord, opts...),
		DeleteRecordProcedure:     connect.NewUnaryHandler(DeleteRecordProcedure, svc.DeleteRecord, opts...),
		DeleteAllRecordsProcedure: connect.NewUnaryHandler(DeleteAllRecordsProcedure, svc.DeleteAllRecords, opts...),
		SearchRecordsProcedure:    connect.NewUnaryHandler(SearchRecordsProcedure, svc.SearchRecords, opts...),
		LoginProcedure:            connect.NewUnaryHandler(LoginProcedure, svc.Login, opts...),
	}

	return "/" + RegistryServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// RegistryServiceClient calls the registry service over Connect.
type RegistryServiceClient struct {
	listRecords      *connect.Client[ListRecordsRequest, ListRecordsResponse]
	registerRecord   *connect.Client[RegisterRecordRequest, RegisterRecordResponse]
	deleteRecord     *connect.Client[DeleteRecordRequest, DeleteRecordResponse]
	deleteAllRecords *connect.Client[DeleteAllRecordsRequest, DeleteAllRecordsResponse]
	searchRecords    *connect.Client[SearchRecordsRequest, SearchRecordsResponse]
	login            *connect.Client[LoginRequest, LoginResponse]
}

// NewRegistryServiceClient constructs a client for the service at baseURL,
// for example http://localhost:8080.
func NewRegistryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RegistryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec)}, opts...)

	return &RegistryServiceClient{
		listRecords:      connect.NewClient[ListRecordsRequest, ListRecordsResponse](httpClient, baseURL+ListRecordsProcedure, opts...),
		registerRecord:   connect.NewClient[RegisterRecordRequest, RegisterRecordResponse](httpClient, baseURL+RegisterRecordProcedure, opts...),
		deleteRecord:     connect.NewClient[DeleteRecordRequest, DeleteRecordResponse](httpClient, baseURL+DeleteRecordProcedure, opts...),
		deleteAllRecords: connect.NewClient[DeleteAllRecordsRequest, DeleteAllRecordsResponse](httpClient, baseURL+DeleteAllRecordsProcedure, opts...),
		searchRecords:    connect.NewClient[SearchRecordsRequest, SearchRecordsResponse](httpClient, baseURL+SearchRecordsProcedure, opts...),
		login:            connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+LoginProcedure, opts...),
	}
}

func (c *RegistryServiceClient) ListRecords(ctx context.Context, req *connect.Request[ListRecordsRequest]) (*connect.Response[ListRecordsResponse], error) {
	return c.listRecords.CallUnary(ctx, req)
}

func (c *RegistryServiceClient) RegisterRecord(ctx context.Context, req *connect.Request[RegisterRecordRequest]) (*connect.Response[RegisterRecordResponse], error) {
	return c.registerRecord.CallUnary(ctx, req)
}

func (c *RegistryServiceClient) DeleteRecord(ctx context.Context, req *connect.Request[DeleteRecordRequest]) (*connect.Response[DeleteRecordResponse], error) {
	return c.deleteRecord.CallUnary(ctx, req)
}

func (c *RegistryServiceClient) DeleteAllRecords(ctx context.Context, req *connect.Request[DeleteAllRecordsRequest]) (*connect.Response[DeleteAllRecordsResponse], error) {
	return c.deleteAllRecords.CallUnary(ctx, req)
}

func (c *RegistryServiceClient) SearchRecords(ctx context.Context, req *connect.Request[SearchRecordsRequest]) (*connect.Response[SearchRecordsResponse], error) {
	return c.searchRecords.CallUnary(ctx, req)
}

func (c *RegistryServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}
