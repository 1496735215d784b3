package visitor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxResponseSize caps the geolocation response body (64KB)
const maxResponseSize = 64 * 1024

// VisitModel is the persistence shape of one recorded visit
type VisitModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	IP        string    `gorm:"type:varchar(45);index"`
	UserAgent string    `gorm:"type:varchar(512)"`
	Path      string    `gorm:"type:varchar(255)"`
	Location  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

// TableName specifies the table name for VisitModel
func (VisitModel) TableName() string {
	return "visitor_logs"
}

// Config holds the visitor recorder settings
type Config struct {
	// LookupURL is an ip-api style endpoint; the IP is appended as a
	// path segment. Empty disables location lookup.
	LookupURL string
	Timeout   time.Duration
}

// Recorder writes one row per visitor session. Recording is strictly
// fire-and-forget: every failure is swallowed and logged at debug so a
// broken lookup service can never affect request handling.
type Recorder struct {
	db         *gorm.DB
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRecorder creates a visitor recorder
func NewRecorder(db *gorm.DB, config Config, logger *zap.Logger) *Recorder {
	if config.Timeout <= 0 {
		config.Timeout = 3 * time.Second
	}
	return &Recorder{
		db:         db,
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// Record stores a visit. Intended to run on its own goroutine; the
// caller never observes an error.
func (r *Recorder) Record(ctx context.Context, ip, userAgent, path string) {
	visit := VisitModel{
		ID:        uuid.New(),
		IP:        ip,
		UserAgent: userAgent,
		Path:      path,
		Location:  r.lookupLocation(ctx, ip),
		CreatedAt: time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(&visit).Error; err != nil {
		r.logger.Debug("visitor log write failed", zap.Error(err))
	}
}

// locationResponse is the subset of an ip-api lookup we keep
type locationResponse struct {
	Status  string `json:"status"`
	City    string `json:"city"`
	Region  string `json:"regionName"`
	Country string `json:"country"`
}

func (r *Recorder) lookupLocation(ctx context.Context, ip string) string {
	if r.config.LookupURL == "" || ip == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.config.LookupURL+"/"+ip, nil)
	if err != nil {
		return ""
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Debug("visitor location lookup failed", zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Debug("visitor location lookup failed",
			zap.Int("status", resp.StatusCode))
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return ""
	}

	var loc locationResponse
	if err := json.Unmarshal(body, &loc); err != nil || loc.Status != "success" {
		return ""
	}

	return fmt.Sprintf("%s, %s, %s", loc.City, loc.Region, loc.Country)
}
