package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockWarehouseRepository creates a GormWarehouseRepository with a mocked SQL connection
func newMockWarehouseRepository(t *testing.T) (*GormWarehouseRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormWarehouseRepository(gormDB), mock, mockDB
}

func TestGormWarehouseRepository_FindByID(t *testing.T) {
	t.Run("finds existing warehouse", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "status"}).
			AddRow(warehouseID, "WH-MAIN", "Main Warehouse", "active")

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(warehouseID, 1).
			WillReturnRows(rows)

		warehouse, err := repo.FindByID(context.Background(), warehouseID)

		assert.NoError(t, err)
		require.NotNil(t, warehouse)
		assert.Equal(t, warehouseID, warehouse.ID)
		assert.Equal(t, "WH-MAIN", warehouse.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing warehouse", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		warehouse, err := repo.FindByID(context.Background(), warehouseID)

		assert.Nil(t, warehouse)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_FindByCode(t *testing.T) {
	t.Run("uppercases the code before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		warehouseID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "status"}).
			AddRow(warehouseID, "WH-MAIN", "Main Warehouse", "active")

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("WH-MAIN", 1).
			WillReturnRows(rows)

		warehouse, err := repo.FindByCode(context.Background(), "wh-main")

		assert.NoError(t, err)
		require.NotNil(t, warehouse)
		assert.Equal(t, "WH-MAIN", warehouse.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for unknown code", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("WH-GHOST", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		warehouse, err := repo.FindByCode(context.Background(), "WH-GHOST")

		assert.Nil(t, warehouse)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_FindAll(t *testing.T) {
	t.Run("applies status filter and pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "code", "name", "status"}).
			AddRow(uuid.New(), "WH-EAST", "East Warehouse", "active").
			AddRow(uuid.New(), "WH-MAIN", "Main Warehouse", "active")

		mock.ExpectQuery(`SELECT \* FROM "warehouses" WHERE status = \$1 ORDER BY name asc LIMIT .*`).
			WithArgs("active", 20).
			WillReturnRows(rows)

		filter := shared.Filter{
			Page:     1,
			PageSize: 20,
			Filters:  map[string]interface{}{"status": "active"},
		}

		warehouses, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Len(t, warehouses, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falls back to name ordering for unknown sort field", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "warehouses" ORDER BY name asc`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "status"}))

		filter := shared.Filter{OrderBy: "capacity; DROP TABLE warehouses"}

		warehouses, err := repo.FindAll(context.Background(), filter)

		assert.NoError(t, err)
		assert.Empty(t, warehouses)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormWarehouseRepository_Count(t *testing.T) {
	t.Run("counts matching warehouses", func(t *testing.T) {
		repo, mock, mockDB := newMockWarehouseRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "warehouses" WHERE status = \$1`).
			WithArgs("active").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), shared.Filter{
			Filters: map[string]interface{}{"status": "active"},
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
