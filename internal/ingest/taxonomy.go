package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mbatlle/motormercat/internal/common"
	"github.com/mbatlle/motormercat/internal/model"
	"github.com/mbatlle/motormercat/internal/service"
)

// TaxonomySets holds the full whitelist of every controlled taxonomy, loaded
// once per run. It is read-only for the rest of the pipeline: validating
// against partially loaded sets would misreport every value as unknown, so a
// failed load aborts the run instead.
type TaxonomySets struct {
	sets map[string]map[string]struct{}
}

// LoadTaxonomySets reads every taxonomy from storage into O(1)-membership sets.
func LoadTaxonomySets(ctx context.Context, store service.Storage) (*TaxonomySets, error) {
	loaders := []struct {
		load     func(context.Context) ([]string, error)
		taxonomy string
	}{
		{func(ctx context.Context) ([]string, error) { return store.ListBrands(ctx, model.KindCar) }, model.TaxonomyCarBrands},
		{func(ctx context.Context) ([]string, error) { return store.ListBrands(ctx, model.KindMoto) }, model.TaxonomyMotoBrands},
		{store.ListFuelTypes, model.TaxonomyFuelTypes},
		{store.ListVehicleStates, model.TaxonomyVehicleStates},
		{store.ListTransmissionTypes, model.TaxonomyTransmissions},
		{store.ListPropulsionTypes, model.TaxonomyPropulsions},
		{func(ctx context.Context) ([]string, error) { return store.ListBodyTypes(ctx, model.KindCar) }, model.TaxonomyBodyCar},
		{func(ctx context.Context) ([]string, error) { return store.ListBodyTypes(ctx, model.KindMoto) }, model.TaxonomyBodyMoto},
		{func(ctx context.Context) ([]string, error) { return store.ListBodyTypes(ctx, model.KindCaravan) }, model.TaxonomyBodyCaravan},
		{store.ListExteriorColors, model.TaxonomyExteriorColors},
		{store.ListUpholsteryTypes, model.TaxonomyUpholsteryTypes},
		{store.ListUpholsteryColors, model.TaxonomyUpholsteryColors},
	}

	sets := make(map[string]map[string]struct{}, len(loaders))
	for _, loader := range loaders {
		slugs, err := loader.load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", common.ErrTaxonomyLoad, loader.taxonomy, err)
		}

		set := make(map[string]struct{}, len(slugs))
		for _, slug := range slugs {
			set[slug] = struct{}{}
		}
		sets[loader.taxonomy] = set

		slog.Debug("loaded taxonomy", "taxonomy", loader.taxonomy, "entries", len(set))
	}

	return &TaxonomySets{sets: sets}, nil
}

// Contains reports whether the slug is whitelisted in the named taxonomy.
func (t *TaxonomySets) Contains(taxonomy, slug string) bool {
	set, ok := t.sets[taxonomy]
	if !ok {
		return false
	}
	_, ok = set[slug]
	return ok
}
