package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mbatlle/motormercat/internal/model"
	"github.com/mbatlle/motormercat/internal/service"
)

// vehicleColumns is the column list shared by reads and writes. Order matters:
// scanVehicle and UpsertVehicle both follow it.
const vehicleColumns = `slug, external_id, tipus_vehicle, marca_cotxe, marca_moto,
	models_cotxe, models_moto, estat_vehicle, tipus_combustible, tipus_propulsor,
	tipus_canvi, carrosseria_cotxe, carrosseria_moto, carrosseria_caravana,
	color_vehicle, tipus_tapisseria, color_tapisseria, titol_anunci, descripcio_anunci,
	preu, quilometratge, any_fabricacio, destacat, preu_antic, preu_mensual, preu_diari,
	actiu, venut, aire_acondicionat, vehicle_fumador, llibre_manteniment,
	revisions_oficials, impost_deduible, vehicle_a_canvi, extres_cotxe, extres_moto,
	extres_autocaravana, galeria_vehicle, data_creacio, status, needs_sync`

// GetVehicleBySlug returns the vehicle with the given slug, or nil when absent.
func (s *SQLiteStorage) GetVehicleBySlug(ctx context.Context, slug string) (*model.Vehicle, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(slug, "slug"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM vehicles WHERE slug = ?", vehicleColumns)
	row := s.db.QueryRowContext(ctx, query, slug)

	vehicle, err := scanVehicle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle: %w", err)
	}

	return vehicle, nil
}

// UpsertVehicle inserts the vehicle or, when the slug already exists, replaces
// every field with the incoming values. Re-importing the same slug never
// creates a duplicate row.
func (s *SQLiteStorage) UpsertVehicle(ctx context.Context, v *model.Vehicle) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateVehicle(v); err != nil {
		return err
	}

	extresCotxe := encodeStrings(v.ExtresCotxe)
	extresMoto := encodeStrings(v.ExtresMoto)
	extresAutocaravana := encodeStrings(v.ExtresAutocaravana)
	galeria := encodeStrings(v.GaleriaVehicle)

	query := fmt.Sprintf(`
		INSERT INTO vehicles (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			external_id = excluded.external_id,
			tipus_vehicle = excluded.tipus_vehicle,
			marca_cotxe = excluded.marca_cotxe,
			marca_moto = excluded.marca_moto,
			models_cotxe = excluded.models_cotxe,
			models_moto = excluded.models_moto,
			estat_vehicle = excluded.estat_vehicle,
			tipus_combustible = excluded.tipus_combustible,
			tipus_propulsor = excluded.tipus_propulsor,
			tipus_canvi = excluded.tipus_canvi,
			carrosseria_cotxe = excluded.carrosseria_cotxe,
			carrosseria_moto = excluded.carrosseria_moto,
			carrosseria_caravana = excluded.carrosseria_caravana,
			color_vehicle = excluded.color_vehicle,
			tipus_tapisseria = excluded.tipus_tapisseria,
			color_tapisseria = excluded.color_tapisseria,
			titol_anunci = excluded.titol_anunci,
			descripcio_anunci = excluded.descripcio_anunci,
			preu = excluded.preu,
			quilometratge = excluded.quilometratge,
			any_fabricacio = excluded.any_fabricacio,
			destacat = excluded.destacat,
			preu_antic = excluded.preu_antic,
			preu_mensual = excluded.preu_mensual,
			preu_diari = excluded.preu_diari,
			actiu = excluded.actiu,
			venut = excluded.venut,
			aire_acondicionat = excluded.aire_acondicionat,
			vehicle_fumador = excluded.vehicle_fumador,
			llibre_manteniment = excluded.llibre_manteniment,
			revisions_oficials = excluded.revisions_oficials,
			impost_deduible = excluded.impost_deduible,
			vehicle_a_canvi = excluded.vehicle_a_canvi,
			extres_cotxe = excluded.extres_cotxe,
			extres_moto = excluded.extres_moto,
			extres_autocaravana = excluded.extres_autocaravana,
			galeria_vehicle = excluded.galeria_vehicle,
			data_creacio = excluded.data_creacio,
			status = excluded.status,
			needs_sync = excluded.needs_sync,
			updated_at = CURRENT_TIMESTAMP`, vehicleColumns)

	_, err := s.db.ExecContext(ctx, query,
		v.Slug, v.ID, v.TipusVehicle, v.MarcaCotxe, v.MarcaMoto,
		v.ModelsCotxe, v.ModelsMoto, v.EstatVehicle, v.TipusCombustible, v.TipusPropulsor,
		v.TipusCanvi, v.CarrosseriaCotxe, v.CarrosseriaMoto, v.CarrosseriaCaravana,
		v.ColorVehicle, v.TipusTapisseria, v.ColorTapisseria, v.TitolAnunci, v.DescripcioAnunci,
		v.Preu, v.Quilometratge, v.AnyFabricacio, v.Destacat, v.PreuAntic, v.PreuMensual, v.PreuDiari,
		v.Actiu, v.Venut, v.AireAcondicionat, v.VehicleFumador, v.LlibreManteniment,
		v.RevisionsOficials, v.ImpostDeduible, v.VehicleACanvi, extresCotxe, extresMoto,
		extresAutocaravana, galeria, v.DataCreacio, v.Status, v.NeedsSync,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert vehicle %q: %w", v.Slug, err)
	}

	return nil
}

// CountVehicles counts vehicles matching the filter; a zero-value filter
// counts everything.
func (s *SQLiteStorage) CountVehicles(ctx context.Context, filter service.VehicleFilter) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	query := "SELECT COUNT(*) FROM vehicles WHERE 1=1"
	args := []any{}

	if filter.Kind != "" {
		query += " AND tipus_vehicle = ?"
		args = append(args, filter.Kind)
	}
	if filter.Sold != nil {
		query += " AND venut = ?"
		args = append(args, *filter.Sold)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	return count, nil
}

// CountVehiclesByKind returns per-vehicle-kind totals, highest count first.
func (s *SQLiteStorage) CountVehiclesByKind(ctx context.Context) ([]model.KindCount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT tipus_vehicle, COUNT(*)
		FROM vehicles
		GROUP BY tipus_vehicle
		ORDER BY COUNT(*) DESC, tipus_vehicle`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to group vehicles by kind: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []model.KindCount
	for rows.Next() {
		var kc model.KindCount
		if err := rows.Scan(&kc.Kind, &kc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan kind count: %w", err)
		}
		counts = append(counts, kc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kind counts: %w", err)
	}

	slog.Debug("grouped vehicles by kind", "kinds", len(counts))
	return counts, nil
}

// scanner abstracts sql.Row and sql.Rows for scanVehicle.
type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row scanner) (*model.Vehicle, error) {
	var (
		v              model.Vehicle
		extresCotxe    sql.NullString
		extresMoto     sql.NullString
		extresCaravana sql.NullString
		galeria        sql.NullString
		dataCreacio    sql.NullTime
	)

	err := row.Scan(
		&v.Slug, &v.ID, &v.TipusVehicle, &v.MarcaCotxe, &v.MarcaMoto,
		&v.ModelsCotxe, &v.ModelsMoto, &v.EstatVehicle, &v.TipusCombustible, &v.TipusPropulsor,
		&v.TipusCanvi, &v.CarrosseriaCotxe, &v.CarrosseriaMoto, &v.CarrosseriaCaravana,
		&v.ColorVehicle, &v.TipusTapisseria, &v.ColorTapisseria, &v.TitolAnunci, &v.DescripcioAnunci,
		&v.Preu, &v.Quilometratge, &v.AnyFabricacio, &v.Destacat, &v.PreuAntic, &v.PreuMensual, &v.PreuDiari,
		&v.Actiu, &v.Venut, &v.AireAcondicionat, &v.VehicleFumador, &v.LlibreManteniment,
		&v.RevisionsOficials, &v.ImpostDeduible, &v.VehicleACanvi, &extresCotxe, &extresMoto,
		&extresCaravana, &galeria, &dataCreacio, &v.Status, &v.NeedsSync,
	)
	if err != nil {
		return nil, err
	}

	v.ExtresCotxe = decodeStrings(extresCotxe)
	v.ExtresMoto = decodeStrings(extresMoto)
	v.ExtresAutocaravana = decodeStrings(extresCaravana)
	v.GaleriaVehicle = decodeStrings(galeria)
	if dataCreacio.Valid {
		v.DataCreacio = dataCreacio.Time
	} else {
		v.DataCreacio = time.Time{}
	}

	return &v, nil
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

func decodeStrings(value sql.NullString) []string {
	if !value.Valid || value.String == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(value.String), &values); err != nil {
		return []string{}
	}
	return values
}
