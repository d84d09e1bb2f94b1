package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbatlle/motormercat/internal/model"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testVehicle(slug string) *model.Vehicle {
	return &model.Vehicle{
		Slug:             slug,
		ID:               "4217",
		TipusVehicle:     model.KindCar,
		MarcaCotxe:       "bmw",
		ModelsCotxe:      "serie-3",
		TipusCombustible: "diesel",
		ColorVehicle:     "negre",
		TitolAnunci:      "BMW 320d 2020",
		Preu:             25000,
		Quilometratge:    80000,
		AnyFabricacio:    2020,
		Actiu:            true,
		ExtresCotxe:      []string{"sostre-solar", "llantes-d-aliatge"},
		GaleriaVehicle:   []string{"https://img.example.com/a.jpg"},
		DataCreacio:      time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:           model.VehicleStatus,
	}
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("creates database and directories", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		require.NotNil(t, store)
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewSQLiteStorage("")
		assert.Error(t, err)
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))
}
