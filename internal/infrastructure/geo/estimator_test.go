package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freshline/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEstimator(t *testing.T, handler http.HandlerFunc) *Estimator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewEstimator(Config{
		GeocodeURL: server.URL,
		RoadFactor: 1.4,
		// Indore city centre
		OriginLat: 22.7196,
		OriginLng: 75.8577,
	}, zap.NewNop())
}

func TestEstimator_EstimateKm(t *testing.T) {
	est := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "14 MG Road, Indore", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		// Roughly 10km north of the origin
		w.Write([]byte(`[{"lat":"22.8095","lon":"75.8577"}]`))
	})

	km, err := est.EstimateKm(context.Background(), "14 MG Road, Indore")
	require.NoError(t, err)

	// ~10km great-circle * 1.4 road factor
	f, _ := km.Float64()
	assert.InDelta(t, 14.0, f, 0.2)
}

func TestEstimator_AddressNotFound(t *testing.T) {
	est := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := est.EstimateKm(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, shared.ErrAddressNotFound)
}

func TestEstimator_EmptyAddress(t *testing.T) {
	est := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("geocoder must not be called for an empty address")
	})

	_, err := est.EstimateKm(context.Background(), "")
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "VALIDATION_ERROR", derr.Code)
}

func TestEstimator_UpstreamFailure(t *testing.T) {
	est := newTestEstimator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := est.EstimateKm(context.Background(), "14 MG Road, Indore")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, shared.ErrAddressNotFound)
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	assert.InDelta(t, 0, haversineKm(22.7196, 75.8577, 22.7196, 75.8577), 1e-9)
}
