package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGormNurseryRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNurseryRepository(db)

	// Soft delete touching zero rows reports not found
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "nurseries" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormNurseryRepository_FindOwned_ScopesToOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNurseryRepository(db)

	rows := sqlmock.NewRows([]string{"id", "organization_id", "created_by", "name"}).
		AddRow(7, 3, 5, "Sakura")
	mock.ExpectQuery(`SELECT \* FROM "nurseries" WHERE id = \$1 AND created_by = \$2 AND organization_id = \$3`).
		WithArgs(uint64(7), uint64(5), uint64(3), 1).
		WillReturnRows(rows)

	orgID := uint64(3)
	nursery, err := repo.FindOwned(7, 5, &orgID)
	require.NoError(t, err)
	require.Equal(t, uint64(7), nursery.ID)
	require.Equal(t, "Sakura", nursery.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormNurseryRepository_ListOwned_PagesInSQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNurseryRepository(db)

	// Counting and paging both happen in the database
	mock.ExpectQuery(`SELECT count\(\*\) FROM "nurseries" WHERE created_by = \$1`).
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "nurseries" WHERE created_by = \$1 .+ ORDER BY id LIMIT \$2 OFFSET \$3`).
		WithArgs(uint64(5), 2, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_by", "name"}).
			AddRow(9, 5, "Ume"))

	nurseries, total, err := repo.ListOwned(5, nil, 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, nurseries, 1)
	require.Equal(t, "Ume", nurseries[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormNurseryRepository_FindOwned_MissRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewNurseryRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "nurseries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindOwned(7, 5, nil)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
