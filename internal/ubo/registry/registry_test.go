package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "00000001", NormalizeID("1"))
	assert.Equal(t, "01234567", NormalizeID("1234567"))
	assert.Equal(t, "12345678", NormalizeID("12345678"))
	assert.Equal(t, "12345678", NormalizeID("ico: 12345678"))
}

func inMemoryCache(t *testing.T) *Cache {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ares_vr_cache").WillReturnResult(sqlmock.NewResult(0, 0))

	cache, err := NewCache(sqlx.NewDb(db, "postgres"))
	require.NoError(t, err)

	// Subsequent Get/Put calls are backed by a no-row/always-insert stub so
	// the client-level tests only exercise HTTP behavior.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT ico, payload, fetched_at FROM ares_vr_cache").
		WillReturnRows(sqlmock.NewRows([]string{"ico", "payload", "fetched_at"}))
	mock.ExpectExec("INSERT INTO ares_vr_cache").WillReturnResult(sqlmock.NewResult(1, 1))
	for i := 0; i < 16; i++ {
		mock.ExpectQuery("SELECT ico, payload, fetched_at FROM ares_vr_cache").
			WillReturnRows(sqlmock.NewRows([]string{"ico", "payload", "fetched_at"}))
		mock.ExpectExec("INSERT INTO ares_vr_cache").WillReturnResult(sqlmock.NewResult(1, 1))
	}
	return cache
}

func TestClient_GetByID_CachesAfterFirstSuccess(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"icoId":"00000001","zaznamy":[]}`))
	}))
	defer srv.Close()

	cache := inMemoryCache(t)
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MinDelayBetweenRequests = 0
	client := NewClient(cfg, cache)

	payload, err := client.GetByID(context.Background(), "1", false)
	require.NoError(t, err)
	assert.Equal(t, "00000001", payload.ID())
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestClient_GetByID_CachesDefinitiveAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := inMemoryCache(t)
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MinDelayBetweenRequests = 0
	client := NewClient(cfg, cache)

	payload, err := client.GetByID(context.Background(), "00000002", false)
	require.NoError(t, err)
	assert.Equal(t, "HTTP 404", payload.Error)
}

func TestClient_GetByID_RetriesOn5xxThenFails(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := inMemoryCache(t)
	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.MinDelayBetweenRequests = 0
	cfg.MaxRetries = 2
	cfg.BackoffBase = time.Millisecond
	cfg.BackoffCap = 2 * time.Millisecond
	client := NewClient(cfg, cache)

	_, err := client.GetByID(context.Background(), "00000003", false)
	require.Error(t, err)
	var unreachable *RegistryUnreachableError
	assert.ErrorAs(t, err, &unreachable)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}
