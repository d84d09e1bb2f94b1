package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbatlle/motormercat/internal/model"
)

func testTaxonomySets(entries map[string][]string) *TaxonomySets {
	sets := make(map[string]map[string]struct{}, len(model.AllTaxonomies))
	for _, taxonomy := range model.AllTaxonomies {
		sets[taxonomy] = make(map[string]struct{})
	}
	for taxonomy, slugs := range entries {
		for _, slug := range slugs {
			sets[taxonomy][slug] = struct{}{}
		}
	}
	return &TaxonomySets{sets: sets}
}

func TestValidateField(t *testing.T) {
	validator := NewValidator(testTaxonomySets(map[string][]string{
		model.TaxonomyCarBrands: {"bmw", "seat"},
		model.TaxonomyFuelTypes: {"diesel", "gasolina"},
	}))

	t.Run("known value is valid", func(t *testing.T) {
		assert.Nil(t, validator.ValidateField("marcaCotxe", "bmw"))
	})

	t.Run("empty value is valid", func(t *testing.T) {
		assert.Nil(t, validator.ValidateField("marcaCotxe", ""))
	})

	t.Run("field without taxonomy is valid", func(t *testing.T) {
		assert.Nil(t, validator.ValidateField("titolAnunci", "whatever"))
	})

	t.Run("unknown value produces a finding", func(t *testing.T) {
		finding := validator.ValidateField("tipusCombustible", "hidrogen")
		require.NotNil(t, finding)
		assert.Equal(t, "tipusCombustible", finding.Field)
		assert.Equal(t, "hidrogen", finding.Value)
		assert.Equal(t, model.TaxonomyFuelTypes, finding.Taxonomy)
	})
}

func TestValidateRecord(t *testing.T) {
	validator := NewValidator(testTaxonomySets(map[string][]string{
		model.TaxonomyCarBrands:      {"bmw"},
		model.TaxonomyFuelTypes:      {"diesel"},
		model.TaxonomyExteriorColors: {"negre"},
	}))

	t.Run("fully whitelisted record has no findings", func(t *testing.T) {
		findings := validator.ValidateRecord(model.Vehicle{
			MarcaCotxe:       "bmw",
			TipusCombustible: "diesel",
			ColorVehicle:     "negre",
		})
		assert.Empty(t, findings)
	})

	t.Run("every unknown field is reported", func(t *testing.T) {
		findings := validator.ValidateRecord(model.Vehicle{
			MarcaCotxe:       "acme-motors",
			TipusCombustible: "diesel",
			ColorVehicle:     "rosa-fosforescent",
		})
		require.Len(t, findings, 2)
		assert.Equal(t, "marcaCotxe", findings[0].Field)
		assert.Equal(t, "colorVehicle", findings[1].Field)
	})
}

func TestUnknownValueAccumulation(t *testing.T) {
	t.Run("repeats across records collapse to one entry", func(t *testing.T) {
		validator := NewValidator(testTaxonomySets(nil))

		for range 3 {
			validator.ValidateRecord(model.Vehicle{MarcaCotxe: "acme-motors"})
		}

		unknown := validator.UnknownValues()
		assert.Equal(t, []string{"acme-motors"}, unknown[model.TaxonomyCarBrands])
	})

	t.Run("values are sorted per taxonomy", func(t *testing.T) {
		validator := NewValidator(testTaxonomySets(nil))

		validator.ValidateField("marcaCotxe", "zundapp")
		validator.ValidateField("marcaCotxe", "acme-motors")
		validator.ValidateField("tipusCombustible", "hidrogen")

		unknown := validator.UnknownValues()
		assert.Equal(t, []string{"acme-motors", "zundapp"}, unknown[model.TaxonomyCarBrands])
		assert.Equal(t, []string{"hidrogen"}, unknown[model.TaxonomyFuelTypes])
	})

	t.Run("clean validator reports nothing", func(t *testing.T) {
		validator := NewValidator(testTaxonomySets(map[string][]string{
			model.TaxonomyCarBrands: {"bmw"},
		}))
		validator.ValidateField("marcaCotxe", "bmw")

		assert.Empty(t, validator.UnknownValues())
	})
}
