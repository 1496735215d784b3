package visitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupVisitorTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&VisitModel{}))
	return db
}

func TestRecorder_Record(t *testing.T) {
	db := setupVisitorTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/103.48.198.1", r.URL.Path)
		w.Write([]byte(`{"status":"success","city":"Indore","regionName":"Madhya Pradesh","country":"India"}`))
	}))
	defer server.Close()

	r := NewRecorder(db, Config{LookupURL: server.URL}, zap.NewNop())
	r.Record(context.Background(), "103.48.198.1", "Mozilla/5.0", "/api/v1/orders")

	var visits []VisitModel
	require.NoError(t, db.Find(&visits).Error)
	require.Len(t, visits, 1)
	assert.Equal(t, "103.48.198.1", visits[0].IP)
	assert.Equal(t, "Indore, Madhya Pradesh, India", visits[0].Location)
}

func TestRecorder_Record_LookupDisabled(t *testing.T) {
	db := setupVisitorTestDB(t)

	r := NewRecorder(db, Config{}, zap.NewNop())
	r.Record(context.Background(), "10.0.0.1", "curl/8.0", "/")

	var visits []VisitModel
	require.NoError(t, db.Find(&visits).Error)
	require.Len(t, visits, 1)
	assert.Empty(t, visits[0].Location)
}

func TestRecorder_Record_LookupFailureIsSwallowed(t *testing.T) {
	db := setupVisitorTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	r := NewRecorder(db, Config{LookupURL: server.URL}, zap.NewNop())
	assert.NotPanics(t, func() {
		r.Record(context.Background(), "10.0.0.1", "curl/8.0", "/")
	})

	var count int64
	require.NoError(t, db.Model(&VisitModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
