package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/gocatalog/internal/catalog"
	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/result"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of the ProductService interface
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetProducts(ctx context.Context) result.Response[[]catalog.Product] {
	args := m.Called(ctx)
	return args.Get(0).(result.Response[[]catalog.Product])
}

func (m *MockProductService) GetProduct(ctx context.Context, id string) result.Response[*catalog.Product] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Response[*catalog.Product])
}

func (m *MockProductService) CreateProduct(ctx context.Context, in catalog.ProductInput) result.Response[*catalog.Product] {
	args := m.Called(ctx, in)
	return args.Get(0).(result.Response[*catalog.Product])
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) result.Response[*catalog.Product] {
	args := m.Called(ctx, id, in)
	return args.Get(0).(result.Response[*catalog.Product])
}

func (m *MockProductService) RemoveProduct(ctx context.Context, id string) result.Response[int] {
	args := m.Called(ctx, id)
	return args.Get(0).(result.Response[int])
}

func (m *MockProductService) LoadProducts(ctx context.Context, mode service.LoadMode) result.Response[[]catalog.Product] {
	args := m.Called(ctx, mode)
	return args.Get(0).(result.Response[[]catalog.Product])
}

func (m *MockProductService) SaveProducts(ctx context.Context) result.Response[bool] {
	args := m.Called(ctx)
	return args.Get(0).(result.Response[bool])
}

var testProduct = catalog.Product{
	ID:           "p-1",
	Title:        "Jacket",
	Price:        decimal.RequireFromString("29.99"),
	Category:     catalog.Category{Name: "Clothes"},
	Manufacturer: catalog.Manufacturer{Name: "Acme"},
}

const testProductJSON = `{"id":"p-1","title":"Jacket","price":"29.99","category":{"name":"Clothes"},"manufacturer":{"name":"Acme"}}`

func newTestRouter(svc service.ProductService) *chi.Mux {
	mux := chi.NewRouter()
	NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(mux)
	return mux
}

func Test_Handler_FindAll(t *testing.T) {
	testCases := []struct {
		name         string
		response     result.Response[[]catalog.Product]
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - products found",
			response:     result.OK([]catalog.Product{testProduct}, "Products retrieved successfully."),
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"message":"Products retrieved successfully.","result":[` + testProductJSON + `]}`,
		},
		{
			name:         "Success - empty list",
			response:     result.OK([]catalog.Product{}, "No products in list."),
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"message":"No products in list.","result":[]}`,
		},
		{
			name:         "Error - unexpected failure",
			response:     result.Fail[[]catalog.Product](perrors.ErrUnexpected, "An unexpected error occurred: boom"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"message":"An unexpected error occurred: boom","result":null}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			svc.On("GetProducts", mock.Anything).Return(tc.response)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			rr := httptest.NewRecorder()
			// when
			newTestRouter(svc).ServeHTTP(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func Test_Handler_FindByID(t *testing.T) {
	testCases := []struct {
		name         string
		response     result.Response[*catalog.Product]
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			response:     result.OK(&testProduct, "Product retrieved successfully."),
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"message":"Product retrieved successfully.","result":` + testProductJSON + `}`,
		},
		{
			name:         "Error - product not found",
			response:     result.Fail[*catalog.Product](perrors.ErrProductNotFound, "Could not find product."),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"success":false,"message":"Could not find product.","result":null}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			svc.On("GetProduct", mock.Anything, "p-1").Return(tc.response)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/p-1", nil)
			rr := httptest.NewRecorder()
			// when
			newTestRouter(svc).ServeHTTP(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func Test_Handler_Create(t *testing.T) {
	jacketInput := catalog.ProductInput{Title: "Jacket", Price: decimal.RequireFromString("29.99"), Category: "Clothes", Manufacturer: "Acme"}
	testCases := []struct {
		name         string
		body         string
		response     *result.Response[*catalog.Product]
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			body:         `{"title":"Jacket","price":29.99,"category":"Clothes","manufacturer":"Acme"}`,
			response:     ptr(result.OK(&testProduct, "Product was created successfully.")),
			expectedCode: http.StatusCreated,
			expectedBody: `{"success":true,"message":"Product was created successfully.","result":` + testProductJSON + `}`,
		},
		{
			name:         "Success - price as string",
			body:         `{"title":"Jacket","price":"29.99","category":"Clothes","manufacturer":"Acme"}`,
			response:     ptr(result.OK(&testProduct, "Product was created successfully.")),
			expectedCode: http.StatusCreated,
			expectedBody: `{"success":true,"message":"Product was created successfully.","result":` + testProductJSON + `}`,
		},
		{
			name: "Error - validation failure",
			body: `{"title":"Jacket","price":29.99,"category":"Clothes","manufacturer":"Acme"}`,
			response: ptr(result.Fail[*catalog.Product](
				&catalog.ValidationError{Field: "Title", Rule: "notblank", Message: "Product title cannot be empty or whitespace."},
				"Product title cannot be empty or whitespace.")),
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"message":"Product title cannot be empty or whitespace.","validation_errors":{"Title":"failed on rule: notblank"}}`,
		},
		{
			name:         "Error - duplicate title",
			body:         `{"title":"Jacket","price":29.99,"category":"Clothes","manufacturer":"Acme"}`,
			response:     ptr(result.Fail[*catalog.Product](perrors.ErrDuplicateTitle, "A product with the same name already exists.")),
			expectedCode: http.StatusConflict,
			expectedBody: `{"success":false,"message":"A product with the same name already exists.","result":null}`,
		},
		{
			name: "Error - created but not saved",
			body: `{"title":"Jacket","price":29.99,"category":"Clothes","manufacturer":"Acme"}`,
			response: ptr(result.Partial(&testProduct, fmt.Errorf("%w: disk full", perrors.ErrPersistence),
				"Product was created successfully. But saving to file failed: Error when trying to save file: disk full")),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"message":"Product was created successfully. But saving to file failed: Error when trying to save file: disk full","result":` + testProductJSON + `}`,
		},
		{
			name:         "Error - malformed body",
			body:         `{"title":`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"message":"Invalid request body"}`,
		},
		{
			name:         "Error - unknown field",
			body:         `{"name":"Jacket"}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"message":"Invalid request body"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			if tc.response != nil {
				svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(in catalog.ProductInput) bool {
					return in.Title == jacketInput.Title && in.Price.Equal(jacketInput.Price) &&
						in.Category == jacketInput.Category && in.Manufacturer == jacketInput.Manufacturer
				})).Return(*tc.response)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			// when
			newTestRouter(svc).ServeHTTP(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func Test_Handler_Update(t *testing.T) {
	testCases := []struct {
		name         string
		response     result.Response[*catalog.Product]
		expectedCode int
	}{
		{name: "Success - updated", response: result.OK(&testProduct, "Product was updated."), expectedCode: http.StatusOK},
		{name: "Error - not found", response: result.Fail[*catalog.Product](perrors.ErrProductNotFound, "Could not find product to update."), expectedCode: http.StatusNotFound},
		{name: "Error - duplicate", response: result.Fail[*catalog.Product](perrors.ErrDuplicateTitle, "A product with the same name already exists."), expectedCode: http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			svc.On("UpdateProduct", mock.Anything, "p-1", mock.AnythingOfType("catalog.ProductInput")).Return(tc.response)
			body := `{"title":"Jacket","price":"29.99","category":"Clothes","manufacturer":"Acme"}`
			req := httptest.NewRequest(http.MethodPut, "/api/v1/products/p-1", strings.NewReader(body))
			rr := httptest.NewRecorder()
			// when
			newTestRouter(svc).ServeHTTP(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.response.Message)
			svc.AssertExpectations(t)
		})
	}
}

func Test_Handler_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		response     result.Response[int]
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - removed",
			response:     result.OK(2, "Product was removed."),
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"message":"Product was removed.","result":2}`,
		},
		{
			name:         "Error - not found",
			response:     result.Fail[int](perrors.ErrProductNotFound, "Could not find product to remove."),
			expectedCode: http.StatusNotFound,
			expectedBody: `{"success":false,"message":"Could not find product to remove.","result":0}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			svc.On("RemoveProduct", mock.Anything, "p-1").Return(tc.response)
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/p-1", nil)
			rr := httptest.NewRecorder()
			// when
			newTestRouter(svc).ServeHTTP(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func Test_Handler_Load(t *testing.T) {
	testCases := []struct {
		name         string
		url          string
		mode         service.LoadMode
		response     *result.Response[[]catalog.Product]
		expectedCode int
	}{
		{
			name:         "Success - default merge",
			url:          "/api/v1/products/load",
			mode:         service.LoadMerge,
			response:     ptr(result.OK([]catalog.Product{testProduct}, "Products loaded successfully from file.")),
			expectedCode: http.StatusOK,
		},
		{
			name:         "Success - replace",
			url:          "/api/v1/products/load?mode=replace",
			mode:         service.LoadReplace,
			response:     ptr(result.OK([]catalog.Product{testProduct}, "Products loaded successfully from file.")),
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - invalid file",
			url:          "/api/v1/products/load",
			mode:         service.LoadMerge,
			response:     ptr(result.Fail[[]catalog.Product](perrors.ErrInvalidFile, "Product has an invalid negative price. File load aborted.")),
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Error - unknown mode",
			url:          "/api/v1/products/load?mode=append",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			svc := new(MockProductService)
			if tc.response != nil {
				svc.On("LoadProducts", mock.Anything, tc.mode).Return(*tc.response)
			}
			req := httptest.NewRequest(http.MethodPost, tc.url, nil)
			rr := httptest.NewRecorder()
			// when
			newTestRouter(svc).ServeHTTP(rr, req)
			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.response != nil {
				assert.Contains(t, rr.Body.String(), tc.response.Message)
			}
			svc.AssertExpectations(t)
		})
	}
}

func Test_Handler_Save(t *testing.T) {
	// given
	svc := new(MockProductService)
	svc.On("SaveProducts", mock.Anything).Return(result.OK(true, "Products saved to file successfully.")).Once()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/save", nil)
	rr := httptest.NewRecorder()
	// when
	newTestRouter(svc).ServeHTTP(rr, req)
	// then
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"Products saved to file successfully.","result":true}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func Test_Handler_HealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()

	newTestRouter(new(MockProductService)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func Test_statusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("wrapped: %w", perrors.ErrProductNotFound)))
	assert.Equal(t, http.StatusBadRequest, statusFor(perrors.ErrInvalidArgument))
	assert.Equal(t, http.StatusBadRequest, statusFor(&catalog.ValidationError{}))
	assert.Equal(t, http.StatusConflict, statusFor(perrors.ErrDuplicateTitle))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(perrors.ErrInvalidFile))
	assert.Equal(t, http.StatusInternalServerError, statusFor(perrors.ErrPersistence))
	assert.Equal(t, http.StatusInternalServerError, statusFor(nil))
}

func ptr[T any](v T) *T {
	return &v
}
