// Package client is the HTTP data service for the car catalog API.
//
// A DataService keeps the result of the last list and category fetches so UI
// code can poll Snapshot, and fires subscribers whenever those lists change.
// Every method also returns its own result, so callers never have to read the
// shared state to learn how a call went.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"carcatalog/internal/auth"
	"carcatalog/internal/model"
)

// DefaultPageSize is the server's page size; the client only sends
// pageSize when its own differs.
const DefaultPageSize = 3

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Config configures a DataService.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8080/api/.
	BaseURL string
	// HTTPClient defaults to an OpenTelemetry-instrumented client with a 30s timeout.
	HTTPClient *http.Client
	// Tokens supplies the bearer token; nil sends no Authorization header.
	Tokens   auth.TokenSource
	PageSize int
	Logger   *slog.Logger
}

// State is the last fetched data plus the outcome of the most recent call.
type State struct {
	CarList      []model.Car
	Categories   []model.Category
	TotalPages   int
	CurrentPage  int
	Success      bool
	ErrorMessage string
}

// DataService talks to the catalog API. It is safe for concurrent use.
type DataService struct {
	base     string
	http     *http.Client
	tokens   auth.TokenSource
	pageSize int
	logger   *slog.Logger

	mu    sync.RWMutex
	state State

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New validates cfg and builds a DataService.
func New(cfg Config) (*DataService, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &DataService{
		base:     u.String(),
		http:     hc,
		tokens:   cfg.Tokens,
		pageSize: pageSize,
		logger:   logger.With("component", "data_service"),
		state:    State{Success: true},
		subs:     make(map[int]func()),
	}, nil
}

// Snapshot returns a copy of the current state.
func (s *DataService) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.CarList = append([]model.Car(nil), s.state.CarList...)
	st.Categories = append([]model.Category(nil), s.state.Categories...)
	return st
}

// Subscribe registers fn to run after CarList or Categories change.
// fn runs on the goroutine that made the call. The returned func unsubscribes.
func (s *DataService) Subscribe(fn func()) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *DataService) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// ListURL builds the list endpoint for category (may be empty) and pageNo.
func (s *DataService) ListURL(category string, pageNo int) string {
	var b strings.Builder
	b.WriteString(s.base)
	b.WriteString("Car/")
	if category != "" {
		b.WriteString(url.PathEscape(category))
		b.WriteString("/")
	}
	if pageNo > 1 {
		b.WriteString(strconv.Itoa(pageNo))
	}
	if s.pageSize != DefaultPageSize {
		b.WriteString("?pageSize=")
		b.WriteString(strconv.Itoa(s.pageSize))
	}
	return b.String()
}

// GetCarList fetches one page of cars and replaces CarList, TotalPages and
// CurrentPage. On failure the previous CarList is kept.
func (s *DataService) GetCarList(ctx context.Context, category string, pageNo int) (model.ListModel[model.Car], error) {
	var env model.ResponseData[model.ListModel[model.Car]]
	err := s.do(ctx, http.MethodGet, s.ListURL(category, pageNo), nil, &env)
	if err == nil && !env.Success {
		err = &APIError{Message: env.ErrorMessage}
	}
	if err != nil {
		s.fail("car_list_failed", err)
		return model.ListModel[model.Car]{}, err
	}

	s.mu.Lock()
	s.state.CarList = env.Data.Items
	s.state.TotalPages = env.Data.TotalPages
	s.state.CurrentPage = env.Data.CurrentPage
	s.state.Success = true
	s.state.ErrorMessage = ""
	s.mu.Unlock()

	s.notify()
	return env.Data, nil
}

// GetCarByID fetches a single car.
func (s *DataService) GetCarByID(ctx context.Context, id int) (*model.Car, error) {
	var env model.ResponseData[*model.Car]
	err := s.do(ctx, http.MethodGet, s.base+"Car/car"+strconv.Itoa(id), nil, &env)
	if err == nil && (!env.Success || env.Data == nil) {
		err = &APIError{Message: env.ErrorMessage}
	}
	if err != nil {
		s.fail("car_get_failed", err, "car_id", id)
		return nil, err
	}
	s.succeed()
	return env.Data, nil
}

// GetCategoryList fetches every category and replaces Categories.
func (s *DataService) GetCategoryList(ctx context.Context) ([]model.Category, error) {
	var env model.ResponseData[[]model.Category]
	err := s.do(ctx, http.MethodGet, s.base+"Category/", nil, &env)
	if err == nil && !env.Success {
		err = &APIError{Message: env.ErrorMessage}
	}
	if err != nil {
		s.fail("category_list_failed", err)
		return nil, err
	}

	s.mu.Lock()
	s.state.Categories = env.Data
	s.state.Success = true
	s.state.ErrorMessage = ""
	s.mu.Unlock()

	s.notify()
	return env.Data, nil
}

// CreateCar posts a new car and returns it with its assigned id.
func (s *DataService) CreateCar(ctx context.Context, car model.Car) (*model.Car, error) {
	var created model.Car
	if err := s.do(ctx, http.MethodPost, s.base+"Car", car, &created); err != nil {
		s.fail("car_create_failed", err)
		return nil, err
	}
	s.succeed()
	return &created, nil
}

// UpdateCar replaces the editable fields of car id.
func (s *DataService) UpdateCar(ctx context.Context, id int, car model.Car) error {
	var env model.ResponseData[model.Car]
	err := s.do(ctx, http.MethodPut, s.base+"Car/"+strconv.Itoa(id), car, &env)
	if err == nil && !env.Success {
		err = &APIError{Message: env.ErrorMessage}
	}
	if err != nil {
		s.fail("car_update_failed", err, "car_id", id)
		return err
	}
	s.succeed()
	return nil
}

// DeleteCar removes car id.
func (s *DataService) DeleteCar(ctx context.Context, id int) error {
	if err := s.do(ctx, http.MethodDelete, s.base+"Car/"+strconv.Itoa(id), nil, nil); err != nil {
		s.fail("car_delete_failed", err, "car_id", id)
		return err
	}
	s.succeed()
	return nil
}

func (s *DataService) succeed() {
	s.mu.Lock()
	s.state.Success = true
	s.state.ErrorMessage = ""
	s.mu.Unlock()
}

func (s *DataService) fail(msg string, err error, attrs ...any) {
	s.logger.Error(msg, append(attrs, "error", err)...)

	s.mu.Lock()
	s.state.Success = false
	s.state.ErrorMessage = err.Error()
	s.mu.Unlock()
}

// do sends one request and decodes a 2xx body into out (skipped when out is nil).
func (s *DataService) do(ctx context.Context, method, target string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.tokens != nil {
		tok, err := s.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("acquire token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok.Value)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			if inv, ok := s.tokens.(interface{ Invalidate() }); ok {
				inv.Invalidate()
			}
		}
		se := &StatusError{StatusCode: resp.StatusCode}
		var env model.ResponseData[json.RawMessage]
		if json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&env) == nil {
			se.Message = env.ErrorMessage
		}
		return se
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrDecode)
		}
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
