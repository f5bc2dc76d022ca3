// Package rest provides HTTP handlers for catalog operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/catalog"
	perrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/result"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/pkg/web"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Post("/load", h.Load)
		r.Post("/save", h.Save)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// FindAll retrieves the list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to find all products")
	res := h.service.GetProducts(r.Context())
	if !res.Success {
		respondFailure(w, r, h.logger, res)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(res.Result))
	web.RespondJSON(w, h.logger, http.StatusOK, res)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	res := h.service.GetProduct(r.Context(), id)
	if !res.Success {
		respondFailure(w, r, h.logger, res)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, res)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := web.DecodeJSON(r, &in); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "Title", in.Title)
	res := h.service.CreateProduct(r.Context(), in)
	if !res.Success {
		respondFailure(w, r, h.logger, res)
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", res.Result.ID, "Title", res.Result.Title)
	web.RespondJSON(w, h.logger, http.StatusCreated, res)
}

// Update replaces the editable fields of a product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	var in catalog.ProductInput
	if err := web.DecodeJSON(r, &in); err != nil {
		h.logger.WarnContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	res := h.service.UpdateProduct(r.Context(), id, in)
	if !res.Success {
		respondFailure(w, r, h.logger, res)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", id)
	web.RespondJSON(w, h.logger, http.StatusOK, res)
}

// DeleteByID removes every product with the given ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	res := h.service.RemoveProduct(r.Context(), id)
	if !res.Success {
		respondFailure(w, r, h.logger, res)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id, "count", res.Result)
	web.RespondJSON(w, h.logger, http.StatusOK, res)
}

// Load reads the product file into the catalog.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	mode, ok := web.ParseEnum(r, w, h.logger, "mode", string(service.LoadMerge),
		string(service.LoadMerge), string(service.LoadReplace))
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to load products", "mode", mode)
	res := h.service.LoadProducts(r.Context(), service.LoadMode(mode))
	if !res.Success {
		respondFailure(w, r, h.logger, res)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, res)
}

// Save writes the catalog to the product file.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received request to save products")
	res := h.service.SaveProducts(r.Context())
	if !res.Success {
		respondFailure(w, r, h.logger, res)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, res)
}

// HealthCheck reports that the service is up.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	web.RespondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ok"})
}

// respondFailure writes a failed response with the status matching its cause.
// Validation failures also list the failed rule per field.
func respondFailure[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, res result.Response[T]) {
	status := statusFor(res.Err)
	var vErr *catalog.ValidationError
	if errors.As(res.Err, &vErr) {
		logger.WarnContext(r.Context(), "Validation errors occurred", "field", vErr.Field, "rule", vErr.Rule)
		web.RespondJSON(w, logger, status, map[string]any{
			"success":           false,
			"message":           res.Message,
			"validation_errors": map[string]string{vErr.Field: "failed on rule: " + vErr.Rule},
		})
		return
	}
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Catalog operation failed", "message", res.Message, "error", res.Err)
	} else {
		logger.WarnContext(r.Context(), "Catalog operation rejected", "message", res.Message, "error", res.Err)
	}
	web.RespondJSON(w, logger, status, res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, perrors.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, perrors.ErrValidation), errors.Is(err, perrors.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, perrors.ErrDuplicateTitle):
		return http.StatusConflict
	case errors.Is(err, perrors.ErrInvalidFile):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
