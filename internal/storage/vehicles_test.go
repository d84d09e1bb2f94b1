package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbatlle/motormercat/internal/model"
	"github.com/mbatlle/motormercat/internal/service"
)

func TestUpsertVehicle(t *testing.T) {
	ctx := context.Background()

	t.Run("insert then read back", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		vehicle := testVehicle("bmw-320d-2020")
		require.NoError(t, store.UpsertVehicle(ctx, vehicle))

		got, err := store.GetVehicleBySlug(ctx, "bmw-320d-2020")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "bmw", got.MarcaCotxe)
		assert.Equal(t, 25000.0, got.Preu)
		assert.Equal(t, []string{"sostre-solar", "llantes-d-aliatge"}, got.ExtresCotxe)
		assert.Equal(t, []string{"https://img.example.com/a.jpg"}, got.GaleriaVehicle)
		assert.Equal(t, model.VehicleStatus, got.Status)
		assert.False(t, got.NeedsSync)
	})

	t.Run("second upsert updates in place", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		vehicle := testVehicle("bmw-320d-2020")
		require.NoError(t, store.UpsertVehicle(ctx, vehicle))

		vehicle.Preu = 23500
		vehicle.Venut = true
		require.NoError(t, store.UpsertVehicle(ctx, vehicle))

		count, err := store.CountVehicles(ctx, service.VehicleFilter{})
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		got, err := store.GetVehicleBySlug(ctx, "bmw-320d-2020")
		require.NoError(t, err)
		assert.Equal(t, 23500.0, got.Preu)
		assert.True(t, got.Venut)
	})

	t.Run("missing slug is rejected", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		err := store.UpsertVehicle(ctx, &model.Vehicle{})
		assert.ErrorIs(t, err, ErrInvalidVehicle)
	})

	t.Run("unknown slug lookup returns nil", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		got, err := store.GetVehicleBySlug(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCountVehicles(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	car := testVehicle("bmw-320d-2020")
	require.NoError(t, store.UpsertVehicle(ctx, car))

	soldCar := testVehicle("seat-leon-2018")
	soldCar.MarcaCotxe = "seat"
	soldCar.Venut = true
	require.NoError(t, store.UpsertVehicle(ctx, soldCar))

	moto := testVehicle("honda-cb500-2021")
	moto.TipusVehicle = model.KindMoto
	moto.MarcaCotxe = ""
	moto.MarcaMoto = "honda"
	require.NoError(t, store.UpsertVehicle(ctx, moto))

	t.Run("total", func(t *testing.T) {
		count, err := store.CountVehicles(ctx, service.VehicleFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("by kind", func(t *testing.T) {
		count, err := store.CountVehicles(ctx, service.VehicleFilter{Kind: model.KindCar})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("sold only", func(t *testing.T) {
		sold := true
		count, err := store.CountVehicles(ctx, service.VehicleFilter{Sold: &sold})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("grouped by kind", func(t *testing.T) {
		counts, err := store.CountVehiclesByKind(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.KindCount{
			{Kind: model.KindCar, Count: 2},
			{Kind: model.KindMoto, Count: 1},
		}, counts)
	})
}
