package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func testDeps(t *testing.T) *Dependencies {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SetupDependencies(filepath.Join(t.TempDir(), "products.json"), logger)
}

func Test_SetupHttpHandler(t *testing.T) {
	handler := SetupHttpHandler(testDeps(t))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"No products in list.","result":[]}`, rr.Body.String())
}

func Test_SetupHttpServer(t *testing.T) {
	var cfg config.Config
	cfg.HTTPServer.Port = 9090
	cfg.HTTPServer.Timeout.Read = time.Second

	srv := SetupHttpServer(testDeps(t), &cfg)

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadTimeout)
	assert.NotNil(t, srv.Handler)
}

func Test_SetupGrpcServer(t *testing.T) {
	// given
	deps := testDeps(t)
	// when
	srv := SetupGrpcServer(deps, false)
	// then
	_, ok := srv.GetServiceInfo()[healthpb.Health_ServiceDesc.ServiceName]
	assert.True(t, ok)
	resp, err := deps.Health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: CatalogServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
