package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carcatalog/internal/model"
	"carcatalog/internal/service"
	serviceMocks "carcatalog/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalogApp(cars *serviceMocks.MockCarService, cats *serviceMocks.MockCategoryService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	RegisterRoutes(app, nil, cars, cats)
	return app
}

func decodeEnvelope[T any](t *testing.T, r io.Reader) model.ResponseData[T] {
	t.Helper()
	var body model.ResponseData[T]
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "cars_seen_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	app := fiber.New()
	app.Get("/metrics", Metrics(reg))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "cars_seen_total 1")
}

func TestListCars(t *testing.T) {
	page := service.CarListResult{
		Success: true,
		Data: model.ListModel[model.Car]{
			Items:       []model.Car{{ID: 1, Name: "Civic"}},
			TotalPages:  4,
			CurrentPage: 2,
		},
	}

	tests := []struct {
		name         string
		target       string
		wantCategory string
		wantPage     int
		wantSize     int
	}{
		{name: "root", target: "/api/Car", wantPage: 1},
		{name: "page only", target: "/api/Car/2", wantPage: 2},
		{name: "category only", target: "/api/Car/SUV", wantCategory: "suv", wantPage: 1},
		{name: "category and page", target: "/api/Car/sedan/3?pageSize=5", wantCategory: "sedan", wantPage: 3, wantSize: 5},
		{name: "lowercase route", target: "/api/car/4", wantPage: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockCarService)
			app := newCatalogApp(mockSvc, nil)
			mockSvc.On("GetCarList", mock.Anything, tt.wantCategory, tt.wantPage, tt.wantSize).Return(page).Once()

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			body := decodeEnvelope[model.ListModel[model.Car]](t, resp.Body)
			assert.True(t, body.Success)
			assert.Equal(t, 4, body.Data.TotalPages)
			assert.Len(t, body.Data.Items, 1)
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("category outlives the request", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCarService)
		app := newCatalogApp(mockSvc, nil)

		var seen []string
		mockSvc.On("GetCarList", mock.Anything, mock.Anything, 1, 0).
			Run(func(args mock.Arguments) { seen = append(seen, args.String(1)) }).
			Return(page)

		for _, target := range []string{"/api/Car/sedan", "/api/Car/xxxxx"} {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}

		assert.Equal(t, []string{"sedan", "xxxxx"}, seen)
	})

	t.Run("invalid pageSize", func(t *testing.T) {
		app := newCatalogApp(new(serviceMocks.MockCarService), nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/Car?pageSize=abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeEnvelope[any](t, resp.Body)
		assert.False(t, body.Success)
		assert.Equal(t, "invalid pageSize", body.ErrorMessage)
	})

	t.Run("service failure", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCarService)
		app := newCatalogApp(mockSvc, nil)
		mockSvc.On("GetCarList", mock.Anything, "", 1, 0).
			Return(model.Fail[model.ListModel[model.Car]]("failed to load cars")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/Car", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeEnvelope[model.ListModel[model.Car]](t, resp.Body)
		assert.False(t, body.Success)
		assert.Equal(t, "failed to load cars", body.ErrorMessage)
	})
}

func TestGetCar(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCarService)
		app := newCatalogApp(mockSvc, nil)
		mockSvc.On("GetCarByID", mock.Anything, 5).Return(model.OK(&model.Car{ID: 5, Name: "Civic"})).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/Car/car5", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeEnvelope[model.Car](t, resp.Body)
		assert.True(t, body.Success)
		assert.Equal(t, 5, body.Data.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCarService)
		app := newCatalogApp(mockSvc, nil)
		mockSvc.On("GetCarByID", mock.Anything, 9).Return(model.Fail[*model.Car]("car with id 9 not found")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/Car/car9", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeEnvelope[*model.Car](t, resp.Body)
		assert.False(t, body.Success)
		assert.Nil(t, body.Data)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateCar(t *testing.T) {
	t.Run("success returns bare car", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCarService)
		app := newCatalogApp(mockSvc, nil)
		in := model.Car{Name: "Camry", Price: 27000, CategoryID: 1}
		mockSvc.On("CreateCar", mock.Anything, in).Return(model.OK(&model.Car{ID: 11, Name: "Camry", Price: 27000, CategoryID: 1})).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/Car", `{"name":"Camry","price":27000,"categoryId":1}`))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var car model.Car
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&car))
		assert.Equal(t, 11, car.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCarService)
		app := newCatalogApp(mockSvc, nil)
		mockSvc.On("CreateCar", mock.Anything, mock.Anything).Return(model.Fail[*model.Car]("validation failed: name is required")).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/Car", `{"price":1,"categoryId":1}`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeEnvelope[any](t, resp.Body)
		assert.Equal(t, "validation failed: name is required", body.ErrorMessage)
	})

	t.Run("malformed body", func(t *testing.T) {
		app := newCatalogApp(new(serviceMocks.MockCarService), nil)

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/Car", `{"name":`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeEnvelope[any](t, resp.Body)
		assert.Equal(t, "invalid request body", body.ErrorMessage)
	})
}

func TestUpdateCar(t *testing.T) {
	in := model.Car{Name: "Camry", Price: 28000, CategoryID: 1}
	payload := `{"name":"Camry","price":28000,"categoryId":1}`

	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
		wantMsg    string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "not found", svcErr: fmt.Errorf("%w: id 5", service.ErrNotFound), wantStatus: http.StatusNotFound, wantMsg: "car not found: id 5"},
		{name: "validation", svcErr: fmt.Errorf("%w: name is required", service.ErrValidation), wantStatus: http.StatusBadRequest, wantMsg: "validation failed: name is required"},
		{name: "internal", svcErr: errors.New("update car: connection reset"), wantStatus: http.StatusInternalServerError, wantMsg: "failed to update car"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockCarService)
			app := newCatalogApp(mockSvc, nil)
			mockSvc.On("UpdateCar", mock.Anything, 5, in).Return(tt.svcErr).Once()

			resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/Car/5", payload))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeEnvelope[model.Car](t, resp.Body)
			if tt.svcErr == nil {
				assert.True(t, body.Success)
				assert.Equal(t, 5, body.Data.ID)
				assert.Equal(t, "Camry", body.Data.Name)
			} else {
				assert.False(t, body.Success)
				assert.Equal(t, tt.wantMsg, body.ErrorMessage)
			}
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		app := newCatalogApp(new(serviceMocks.MockCarService), nil)

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/Car/5", `[]`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteCar(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusNoContent},
		{name: "not found", svcErr: fmt.Errorf("%w: id 3", service.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "service error", svcErr: errors.New("delete error"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockCarService)
			app := newCatalogApp(mockSvc, nil)
			mockSvc.On("DeleteCar", mock.Anything, 3).Return(tt.svcErr).Once()

			resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/Car/3", nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.svcErr != nil {
				body := decodeEnvelope[any](t, resp.Body)
				assert.False(t, body.Success)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestUploadCarImage(t *testing.T) {
	multipartBody := func() (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "front.png")
		part.Write([]byte("png-bytes"))
		writer.Close()
		return body, writer.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCarService)
		app := newCatalogApp(mockSvc, nil)
		mockSvc.On("SaveImage", mock.Anything, 2, mock.Anything, "front.png", mock.Anything, int64(9)).
			Return("http://minio/cars/x.png", nil).Once()

		body, ct := multipartBody()
		req := httptest.NewRequest(http.MethodPost, "/api/Car/2", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		env := decodeEnvelope[string](t, resp.Body)
		assert.Equal(t, "http://minio/cars/x.png", env.Data)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		app := newCatalogApp(new(serviceMocks.MockCarService), nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/api/Car/2", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		env := decodeEnvelope[any](t, resp.Body)
		assert.Equal(t, "file is required", env.ErrorMessage)
	})

	for name, tc := range map[string]struct {
		err    error
		status int
	}{
		"car not found":    {err: fmt.Errorf("%w: id 2", service.ErrNotFound), status: http.StatusNotFound},
		"storage disabled": {err: service.ErrNoStorage, status: http.StatusServiceUnavailable},
		"not an image":     {err: fmt.Errorf("%w: unsupported content type", service.ErrValidation), status: http.StatusBadRequest},
		"storage failure":  {err: errors.New("upload to storage: timeout"), status: http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockCarService)
			app := newCatalogApp(mockSvc, nil)
			mockSvc.On("SaveImage", mock.Anything, 2, mock.Anything, "front.png", mock.Anything, mock.Anything).
				Return("", tc.err).Once()

			body, ct := multipartBody()
			req := httptest.NewRequest(http.MethodPost, "/api/Car/2", body)
			req.Header.Set("Content-Type", ct)
			resp, _ := app.Test(req)

			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestListCategories(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCategoryService)
		app := newCatalogApp(nil, mockSvc)
		mockSvc.On("GetCategoryList", mock.Anything).Return(model.OK([]model.Category{{ID: 1, Name: "Sedans", NormalizedName: "sedan"}})).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/Category", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		env := decodeEnvelope[[]model.Category](t, resp.Body)
		require.Len(t, env.Data, 1)
		assert.Equal(t, "sedan", env.Data[0].NormalizedName)
	})

	t.Run("failure", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockCategoryService)
		app := newCatalogApp(nil, mockSvc)
		mockSvc.On("GetCategoryList", mock.Anything).Return(model.Fail[[]model.Category]("failed to load categories")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/Category", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestRouting(t *testing.T) {
	app := newCatalogApp(new(serviceMocks.MockCarService), new(serviceMocks.MockCategoryService))

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/health", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})

	t.Run("non-numeric detail id falls through to the category list", func(t *testing.T) {
		cars := new(serviceMocks.MockCarService)
		app := newCatalogApp(cars, nil)
		cars.On("GetCarList", mock.Anything, "car5x", 1, 0).
			Return(model.OK(model.ListModel[model.Car]{Items: []model.Car{}, CurrentPage: 1})).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/Car/car5x", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		cars.AssertExpectations(t)
		cars.AssertNotCalled(t, "GetCarByID", mock.Anything, mock.Anything)
	})

	t.Run("api middleware runs", func(t *testing.T) {
		guarded := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		RegisterRoutes(guarded, nil, nil, nil, func(c *fiber.Ctx) error {
			return writeFail(c, fiber.StatusUnauthorized, "missing bearer token")
		})

		resp, _ := guarded.Test(httptest.NewRequest(http.MethodGet, "/api/Car", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
