package registry

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockCache(t *testing.T) (*Cache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS ares_vr_cache").WillReturnResult(sqlmock.NewResult(0, 0))

	sqlxDB := sqlx.NewDb(db, "postgres")
	cache, err := NewCache(sqlxDB)
	require.NoError(t, err)
	return cache, mock
}

func TestCache_GetMiss(t *testing.T) {
	cache, mock := newMockCache(t)

	mock.ExpectQuery("SELECT ico, payload, fetched_at FROM ares_vr_cache").
		WithArgs("00000001").
		WillReturnRows(sqlmock.NewRows([]string{"ico", "payload", "fetched_at"}))

	payload, ok, err := cache.Get(context.Background(), "00000001")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetHit(t *testing.T) {
	cache, mock := newMockCache(t)

	rows := sqlmock.NewRows([]string{"ico", "payload", "fetched_at"}).
		AddRow("00000001", `{"icoId":"00000001","zaznamy":[]}`, "2026-01-01T00:00:00Z")
	mock.ExpectQuery("SELECT ico, payload, fetched_at FROM ares_vr_cache").
		WithArgs("00000001").
		WillReturnRows(rows)

	payload, ok, err := cache.Get(context.Background(), "00000001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "00000001", payload.ID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Put(t *testing.T) {
	cache, mock := newMockCache(t)

	mock.ExpectExec("INSERT INTO ares_vr_cache").
		WithArgs("00000001", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := cache.Put(context.Background(), "00000001", &Payload{IcoID: "00000001"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_Delete(t *testing.T) {
	cache, mock := newMockCache(t)

	mock.ExpectExec("DELETE FROM ares_vr_cache").
		WithArgs("00000001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := cache.Delete(context.Background(), "00000001")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayload_ObchodniJmenoOf(t *testing.T) {
	p := &Payload{Zaznamy: []Record{
		{ObchodniJmeno: []NameEntry{
			{Hodnota: "Old Name s.r.o.", DatumVymazu: "2020-01-01"},
			{Hodnota: "Current Name s.r.o."},
		}},
	}}
	assert.Equal(t, "Current Name s.r.o.", p.ObchodniJmenoOf())
	assert.Equal(t, "", (&Payload{}).ObchodniJmenoOf())
}
