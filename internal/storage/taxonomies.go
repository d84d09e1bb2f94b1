package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mattn/go-sqlite3"
	"github.com/mbatlle/motormercat/internal/common"
	"github.com/mbatlle/motormercat/internal/model"
)

// brandTaxonomyForKind maps a vehicle kind to its brand taxonomy.
func brandTaxonomyForKind(kind string) (string, error) {
	switch kind {
	case model.KindCar:
		return model.TaxonomyCarBrands, nil
	case model.KindMoto:
		return model.TaxonomyMotoBrands, nil
	default:
		return "", fmt.Errorf("%w: no brand taxonomy for kind %q", common.ErrUnknownTaxonomy, kind)
	}
}

// bodyTaxonomyForKind maps a vehicle kind to its body-type taxonomy.
func bodyTaxonomyForKind(kind string) (string, error) {
	switch kind {
	case model.KindCar:
		return model.TaxonomyBodyCar, nil
	case model.KindMoto:
		return model.TaxonomyBodyMoto, nil
	case model.KindCaravan:
		return model.TaxonomyBodyCaravan, nil
	default:
		return "", fmt.Errorf("%w: no body taxonomy for kind %q", common.ErrUnknownTaxonomy, kind)
	}
}

// ListBrands returns the brand slugs whitelisted for the given vehicle kind.
func (s *SQLiteStorage) ListBrands(ctx context.Context, kind string) ([]string, error) {
	taxonomy, err := brandTaxonomyForKind(kind)
	if err != nil {
		return nil, err
	}
	return s.listTaxonomySlugs(ctx, taxonomy)
}

// ListFuelTypes returns the whitelisted fuel type slugs.
func (s *SQLiteStorage) ListFuelTypes(ctx context.Context) ([]string, error) {
	return s.listTaxonomySlugs(ctx, model.TaxonomyFuelTypes)
}

// ListVehicleStates returns the whitelisted vehicle state slugs.
func (s *SQLiteStorage) ListVehicleStates(ctx context.Context) ([]string, error) {
	return s.listTaxonomySlugs(ctx, model.TaxonomyVehicleStates)
}

// ListTransmissionTypes returns the whitelisted transmission slugs.
func (s *SQLiteStorage) ListTransmissionTypes(ctx context.Context) ([]string, error) {
	return s.listTaxonomySlugs(ctx, model.TaxonomyTransmissions)
}

// ListPropulsionTypes returns the whitelisted propulsion slugs.
func (s *SQLiteStorage) ListPropulsionTypes(ctx context.Context) ([]string, error) {
	return s.listTaxonomySlugs(ctx, model.TaxonomyPropulsions)
}

// ListBodyTypes returns the body type slugs whitelisted for the given vehicle kind.
func (s *SQLiteStorage) ListBodyTypes(ctx context.Context, kind string) ([]string, error) {
	taxonomy, err := bodyTaxonomyForKind(kind)
	if err != nil {
		return nil, err
	}
	return s.listTaxonomySlugs(ctx, taxonomy)
}

// ListExteriorColors returns the whitelisted exterior color slugs.
func (s *SQLiteStorage) ListExteriorColors(ctx context.Context) ([]string, error) {
	return s.listTaxonomySlugs(ctx, model.TaxonomyExteriorColors)
}

// ListUpholsteryTypes returns the whitelisted upholstery type slugs.
func (s *SQLiteStorage) ListUpholsteryTypes(ctx context.Context) ([]string, error) {
	return s.listTaxonomySlugs(ctx, model.TaxonomyUpholsteryTypes)
}

// ListUpholsteryColors returns the whitelisted upholstery color slugs.
func (s *SQLiteStorage) ListUpholsteryColors(ctx context.Context) ([]string, error) {
	return s.listTaxonomySlugs(ctx, model.TaxonomyUpholsteryColors)
}

func (s *SQLiteStorage) listTaxonomySlugs(ctx context.Context, taxonomy string) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT slug
		FROM taxonomies
		WHERE taxonomy = ?
		ORDER BY slug`

	rows, err := s.db.QueryContext(ctx, query, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxonomy %q: %w", taxonomy, err)
	}
	defer func() { _ = rows.Close() }()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan taxonomy slug: %w", err)
		}
		slugs = append(slugs, slug)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating taxonomy %q: %w", taxonomy, err)
	}

	return slugs, nil
}

// ListTaxonomy returns every entry of the named taxonomy, for the admin
// curation commands.
func (s *SQLiteStorage) ListTaxonomy(ctx context.Context, taxonomy string) ([]model.TaxonomyEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(taxonomy, "taxonomy"); err != nil {
		return nil, err
	}
	if !slices.Contains(model.AllTaxonomies, taxonomy) {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownTaxonomy, taxonomy)
	}

	query := `
		SELECT taxonomy, slug, label, created_at
		FROM taxonomies
		WHERE taxonomy = ?
		ORDER BY slug`

	rows, err := s.db.QueryContext(ctx, query, taxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxonomy %q: %w", taxonomy, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.TaxonomyEntry
	for rows.Next() {
		var entry model.TaxonomyEntry
		if err := rows.Scan(&entry.Taxonomy, &entry.Slug, &entry.Label, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan taxonomy entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating taxonomy %q: %w", taxonomy, err)
	}

	slog.Debug("retrieved taxonomy entries", "taxonomy", taxonomy, "count", len(entries))
	return entries, nil
}

// AddTaxonomyEntry adds one (slug, label) pair to the named taxonomy. This is
// the admin curation surface; the sync pipeline itself never calls it.
func (s *SQLiteStorage) AddTaxonomyEntry(ctx context.Context, taxonomy, slug, label string) (*model.TaxonomyEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(taxonomy, "taxonomy"); err != nil {
		return nil, err
	}
	if err := validateString(slug, "slug"); err != nil {
		return nil, err
	}
	if !slices.Contains(model.AllTaxonomies, taxonomy) {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownTaxonomy, taxonomy)
	}

	query := `
		INSERT INTO taxonomies (taxonomy, slug, label)
		VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, taxonomy, slug, label); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return nil, fmt.Errorf("%w: %s/%s", common.ErrDuplicateEntry, taxonomy, slug)
		}
		return nil, fmt.Errorf("failed to add taxonomy entry: %w", err)
	}

	entry := &model.TaxonomyEntry{
		Taxonomy: taxonomy,
		Slug:     slug,
		Label:    label,
	}

	slog.Info("added taxonomy entry", "taxonomy", taxonomy, "slug", slug)
	return entry, nil
}
