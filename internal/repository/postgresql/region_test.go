package postgresql

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionRepository_ListAll(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewRegionRepository(db)

	mock.ExpectQuery("SELECT id, name, latitude, longitude FROM regions ORDER BY id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "latitude", "longitude"}).
			AddRow(int64(1), "Kota Jakarta Pusat", -6.1865, 106.8341).
			AddRow(int64(2), "Kota Bandung", -6.9147, 107.6098))

	got, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Kota Bandung", got[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegionRepository_ListAll_Error(t *testing.T) {
	mock, db := newMockDB(t)
	repo := NewRegionRepository(db)

	mock.ExpectQuery("FROM regions").WillReturnError(errors.New("connection reset"))

	_, err := repo.ListAll(context.Background())
	assert.Error(t, err)
}
