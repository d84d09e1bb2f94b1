package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbatlle/motormercat/internal/model"
)

func TestBuildReport(t *testing.T) {
	t.Run("clean run", func(t *testing.T) {
		validator := NewValidator(testTaxonomySets(map[string][]string{
			model.TaxonomyCarBrands: {"bmw"},
		}))
		validator.ValidateField("marcaCotxe", "bmw")

		report := BuildReport(validator)

		assert.False(t, report.HasNewValues)
		assert.Empty(t, report.NewValues)
	})

	t.Run("unknown values grouped by taxonomy", func(t *testing.T) {
		validator := NewValidator(testTaxonomySets(nil))
		validator.ValidateField("marcaCotxe", "acme-motors")
		validator.ValidateField("marcaCotxe", "acme-motors")
		validator.ValidateField("tipusCombustible", "hidrogen")

		report := BuildReport(validator)

		assert.True(t, report.HasNewValues)
		assert.Equal(t, []string{"acme-motors"}, report.NewValues[model.TaxonomyCarBrands])
		assert.Equal(t, []string{"hidrogen"}, report.NewValues[model.TaxonomyFuelTypes])
	})
}

func TestRenderReport(t *testing.T) {
	t.Run("clean report says reconciled", func(t *testing.T) {
		out := RenderReport(model.ValidationReport{})
		assert.Contains(t, out, "reconciled")
	})

	t.Run("unknown values are listed under their taxonomy", func(t *testing.T) {
		out := RenderReport(model.ValidationReport{
			HasNewValues: true,
			NewValues: map[string][]string{
				model.TaxonomyCarBrands: {"acme-motors", "zundapp"},
				model.TaxonomyFuelTypes: {"hidrogen"},
			},
		})

		assert.Contains(t, out, model.TaxonomyCarBrands)
		assert.Contains(t, out, "acme-motors")
		assert.Contains(t, out, "zundapp")
		assert.Contains(t, out, model.TaxonomyFuelTypes)
		assert.Contains(t, out, "hidrogen")
	})
}
