package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/freshline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxResponseSize caps the geocoder response body (1MB)
const maxResponseSize = 1 * 1024 * 1024

const earthRadiusKm = 6371.0

// Config holds the distance estimator settings
type Config struct {
	// GeocodeURL is a Nominatim-compatible search endpoint
	GeocodeURL string
	Timeout    time.Duration
	// RoadFactor scales the great-circle distance to approximate the
	// road distance. 1.4 is a reasonable urban default.
	RoadFactor float64
	OriginLat  float64
	OriginLng  float64
}

// Estimator resolves a free-text address to an approximate delivery
// distance in kilometres from the configured origin.
type Estimator struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewEstimator creates a distance estimator
func NewEstimator(config Config, logger *zap.Logger) *Estimator {
	if config.RoadFactor <= 0 {
		config.RoadFactor = 1.4
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	return &Estimator{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// geocodeResult is one hit from a Nominatim-style search response
type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// EstimateKm geocodes the address and returns the road-scaled
// great-circle distance from the origin, rounded to two decimals.
// An address the geocoder cannot resolve is a typed error, never 0 km.
func (e *Estimator) EstimateKm(ctx context.Context, address string) (decimal.Decimal, error) {
	if address == "" {
		return decimal.Zero, shared.NewDomainError("VALIDATION_ERROR", "Address is required")
	}

	lat, lng, err := e.geocode(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}

	km := haversineKm(e.config.OriginLat, e.config.OriginLng, lat, lng) * e.config.RoadFactor

	e.logger.Debug("distance estimated",
		zap.String("address", address),
		zap.Float64("km", km),
	)

	return decimal.NewFromFloat(km).Round(2), nil
}

func (e *Estimator) geocode(ctx context.Context, address string) (float64, float64, error) {
	values := url.Values{}
	values.Set("q", address)
	values.Set("format", "json")
	values.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.config.GeocodeURL+"?"+values.Encode(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "freshline-backend")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode call: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, 0, fmt.Errorf("geocode response: %w", err)
	}

	var results []geocodeResult
	if err := json.Unmarshal(body, &results); err != nil {
		return 0, 0, fmt.Errorf("geocode response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, shared.ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode response: bad latitude %q", results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode response: bad longitude %q", results[0].Lon)
	}
	return lat, lng, nil
}

// haversineKm is the great-circle distance between two coordinates
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
