package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fueleu/internal/voyage"
)

type VoyageHandlerSuite struct {
	suite.Suite
	router chi.Router
	store  *voyage.InMemoryStore
}

func (s *VoyageHandlerSuite) SetupTest() {
	s.store = voyage.NewInMemoryStore()
	require.NoError(s.T(), voyage.Seed(context.Background(), s.store))

	svc, err := voyage.New(s.store)
	require.NoError(s.T(), err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(svc, logger).Register(s.router)
}

func TestVoyageHandlerSuite(t *testing.T) {
	suite.Run(t, new(VoyageHandlerSuite))
}

func (s *VoyageHandlerSuite) TestListRoutes() {
	req := httptest.NewRequest(http.MethodGet, "/routes", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "application/json", w.Header().Get("Content-Type"))

	var records []voyage.Record
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(s.T(), records, len(voyage.SeedRecords))
	assert.Equal(s.T(), "R001", records[0].ID)
}

func (s *VoyageHandlerSuite) TestSetBaseline() {
	req := httptest.NewRequest(http.MethodPost, "/routes/R002/baseline", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var record voyage.Record
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(s.T(), "R002", record.ID)
	assert.True(s.T(), record.IsBaseline)

	// The previous baseline was demoted.
	old, err := s.store.Get(context.Background(), "R001")
	require.NoError(s.T(), err)
	assert.False(s.T(), old.IsBaseline)
}

func (s *VoyageHandlerSuite) TestSetBaselineUnknownRecord() {
	req := httptest.NewRequest(http.MethodPost, "/routes/R999/baseline", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "not_found", resp["error"])
}

func (s *VoyageHandlerSuite) TestComparison() {
	req := httptest.NewRequest(http.MethodGet, "/routes/comparison", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var result voyage.ComparisonResult
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(s.T(), "R001", result.Baseline.ID)
	assert.Len(s.T(), result.Rows, len(voyage.SeedRecords)-1)

	for _, row := range result.Rows {
		assert.NotEqual(s.T(), "R001", row.ID)
		assert.Equal(s.T(), 91.0, row.BaselineIntensity)
	}
}

func (s *VoyageHandlerSuite) TestComparisonWithoutBaseline() {
	store := voyage.NewInMemoryStore()
	require.NoError(s.T(), store.Create(context.Background(), voyage.Record{ID: "R001", GHGIntensity: 90}))
	svc, err := voyage.New(store)
	require.NoError(s.T(), err)

	router := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(router)

	req := httptest.NewRequest(http.MethodGet, "/routes/comparison", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "bad_request", resp["error"])
	assert.Equal(s.T(), "no baseline defined", resp["message"])
}
