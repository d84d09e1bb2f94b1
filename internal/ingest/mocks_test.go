package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbatlle/motormercat/internal/model"
	"github.com/mbatlle/motormercat/internal/service"
)

// mockStorage is an in-memory service.Storage for engine tests.
type mockStorage struct {
	vehicles    map[string]model.Vehicle
	taxonomies  map[string][]string
	upsertErrs  map[string]error
	taxonomyErr error
	upsertCalls int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		vehicles:   make(map[string]model.Vehicle),
		taxonomies: make(map[string][]string),
		upsertErrs: make(map[string]error),
	}
}

func (m *mockStorage) GetVehicleBySlug(_ context.Context, slug string) (*model.Vehicle, error) {
	v, ok := m.vehicles[slug]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *mockStorage) UpsertVehicle(_ context.Context, v *model.Vehicle) error {
	m.upsertCalls++
	if err, ok := m.upsertErrs[v.Slug]; ok {
		return err
	}
	m.vehicles[v.Slug] = *v
	return nil
}

func (m *mockStorage) CountVehicles(_ context.Context, filter service.VehicleFilter) (int, error) {
	count := 0
	for _, v := range m.vehicles {
		if filter.Kind != "" && v.TipusVehicle != filter.Kind {
			continue
		}
		if filter.Sold != nil && v.Venut != *filter.Sold {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockStorage) CountVehiclesByKind(_ context.Context) ([]model.KindCount, error) {
	byKind := make(map[string]int)
	for _, v := range m.vehicles {
		byKind[v.TipusVehicle]++
	}
	counts := make([]model.KindCount, 0, len(byKind))
	for kind, count := range byKind {
		counts = append(counts, model.KindCount{Kind: kind, Count: count})
	}
	return counts, nil
}

func (m *mockStorage) listSlugs(taxonomy string) ([]string, error) {
	if m.taxonomyErr != nil {
		return nil, m.taxonomyErr
	}
	return m.taxonomies[taxonomy], nil
}

func (m *mockStorage) ListBrands(_ context.Context, kind string) ([]string, error) {
	switch kind {
	case model.KindCar:
		return m.listSlugs(model.TaxonomyCarBrands)
	case model.KindMoto:
		return m.listSlugs(model.TaxonomyMotoBrands)
	default:
		return nil, fmt.Errorf("no brand taxonomy for kind %q", kind)
	}
}

func (m *mockStorage) ListFuelTypes(_ context.Context) ([]string, error) {
	return m.listSlugs(model.TaxonomyFuelTypes)
}

func (m *mockStorage) ListVehicleStates(_ context.Context) ([]string, error) {
	return m.listSlugs(model.TaxonomyVehicleStates)
}

func (m *mockStorage) ListTransmissionTypes(_ context.Context) ([]string, error) {
	return m.listSlugs(model.TaxonomyTransmissions)
}

func (m *mockStorage) ListPropulsionTypes(_ context.Context) ([]string, error) {
	return m.listSlugs(model.TaxonomyPropulsions)
}

func (m *mockStorage) ListBodyTypes(_ context.Context, kind string) ([]string, error) {
	switch kind {
	case model.KindCar:
		return m.listSlugs(model.TaxonomyBodyCar)
	case model.KindMoto:
		return m.listSlugs(model.TaxonomyBodyMoto)
	case model.KindCaravan:
		return m.listSlugs(model.TaxonomyBodyCaravan)
	default:
		return nil, fmt.Errorf("no body taxonomy for kind %q", kind)
	}
}

func (m *mockStorage) ListExteriorColors(_ context.Context) ([]string, error) {
	return m.listSlugs(model.TaxonomyExteriorColors)
}

func (m *mockStorage) ListUpholsteryTypes(_ context.Context) ([]string, error) {
	return m.listSlugs(model.TaxonomyUpholsteryTypes)
}

func (m *mockStorage) ListUpholsteryColors(_ context.Context) ([]string, error) {
	return m.listSlugs(model.TaxonomyUpholsteryColors)
}

func (m *mockStorage) ListTaxonomy(_ context.Context, taxonomy string) ([]model.TaxonomyEntry, error) {
	var entries []model.TaxonomyEntry
	for _, slug := range m.taxonomies[taxonomy] {
		entries = append(entries, model.TaxonomyEntry{Taxonomy: taxonomy, Slug: slug, CreatedAt: time.Now()})
	}
	return entries, nil
}

func (m *mockStorage) AddTaxonomyEntry(_ context.Context, taxonomy, slug, label string) (*model.TaxonomyEntry, error) {
	m.taxonomies[taxonomy] = append(m.taxonomies[taxonomy], slug)
	return &model.TaxonomyEntry{Taxonomy: taxonomy, Slug: slug, Label: label}, nil
}

func (m *mockStorage) Migrate(_ context.Context) error { return nil }

func (m *mockStorage) Close() error { return nil }

// mockSource serves canned pages per partition.
type mockSource struct {
	unsoldPages [][]model.ExternalRecord
	soldPages   [][]model.ExternalRecord
	unsoldErr   error
	soldErr     error
	fetchCalls  int
}

var errSourceDown = errors.New("source down")

func (m *mockSource) FetchPage(_ context.Context, sold bool, page int) ([]model.ExternalRecord, error) {
	m.fetchCalls++
	if sold {
		if m.soldErr != nil {
			return nil, m.soldErr
		}
		return pageAt(m.soldPages, page), nil
	}
	if m.unsoldErr != nil {
		return nil, m.unsoldErr
	}
	return pageAt(m.unsoldPages, page), nil
}

func pageAt(pages [][]model.ExternalRecord, page int) []model.ExternalRecord {
	if page < 1 || page > len(pages) {
		return nil
	}
	return pages[page-1]
}
