// Package app wires the catalog components together for the binaries and the end-to-end tests.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/internal/transport/rest"
	"github.com/abgdnv/gocatalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// CatalogServiceName is the name the catalog reports through the gRPC health service.
const CatalogServiceName = "catalog.v1.ProductCatalog"

type Dependencies struct {
	ProductService service.ProductService
	Health         *health.Server
	Logger         *slog.Logger
}

// SetupDependencies builds the catalog on an in-memory store persisted to the file at storagePath.
func SetupDependencies(storagePath string, logger *slog.Logger) *Dependencies {
	files := service.NewFileService(store.NewFileRepository(storagePath), logger)
	pService := service.NewService(store.NewInMemoryStore(), files, logger)

	return &Dependencies{
		ProductService: pService,
		Health:         health.NewServer(),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the router and routes of the catalog.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes of the catalog.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server of the catalog.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps))
}

// SetupGrpcServer initializes the gRPC server with the health service of the catalog.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	healthRegisterFunc := server.HealthRegistration(deps.Health, deps.Logger, CatalogServiceName)
	return server.NewGRPCServer(reflectionEnabled, healthRegisterFunc)
}
