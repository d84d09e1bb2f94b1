package ingest

import (
	"sort"

	"github.com/mbatlle/motormercat/internal/model"
)

// validatedFields maps each participating classification field to its
// taxonomy, in the order ValidateRecord checks them. Fields not listed here
// are trivially valid.
var validatedFields = []struct {
	Field    string
	Taxonomy string
}{
	{"marcaCotxe", model.TaxonomyCarBrands},
	{"marcaMoto", model.TaxonomyMotoBrands},
	{"tipusCombustible", model.TaxonomyFuelTypes},
	{"estatVehicle", model.TaxonomyVehicleStates},
	{"tipusCanvi", model.TaxonomyTransmissions},
	{"tipusPropulsor", model.TaxonomyPropulsions},
	{"carrosseriaCotxe", model.TaxonomyBodyCar},
	{"carrosseriaMoto", model.TaxonomyBodyMoto},
	{"carrosseriaCaravana", model.TaxonomyBodyCaravan},
	{"colorVehicle", model.TaxonomyExteriorColors},
	{"tipusTapisseria", model.TaxonomyUpholsteryTypes},
	{"colorTapisseria", model.TaxonomyUpholsteryColors},
}

// Validator checks normalized classification values against the loaded
// taxonomy whitelists and accumulates every unknown value it sees. It is
// constructed fresh for each run, so the accumulator never leaks across runs.
// Validation is purely observational: it never blocks or mutates a record.
type Validator struct {
	sets    *TaxonomySets
	unknown map[string]map[string]struct{}
}

// NewValidator creates a validator over the given taxonomy sets with an empty
// unknown-value accumulator.
func NewValidator(sets *TaxonomySets) *Validator {
	return &Validator{
		sets:    sets,
		unknown: make(map[string]map[string]struct{}),
	}
}

// ValidateField checks one field value. It returns a finding when the value is
// non-empty and absent from its taxonomy, and nil otherwise. Empty values and
// fields without a taxonomy are always valid.
func (v *Validator) ValidateField(field, value string) *model.Finding {
	if value == "" {
		return nil
	}

	taxonomy := ""
	for _, vf := range validatedFields {
		if vf.Field == field {
			taxonomy = vf.Taxonomy
			break
		}
	}
	if taxonomy == "" {
		return nil
	}

	if v.sets.Contains(taxonomy, value) {
		return nil
	}

	v.record(taxonomy, value)
	return &model.Finding{Field: field, Value: value, Taxonomy: taxonomy}
}

// ValidateRecord runs ValidateField across every participating field of the
// vehicle. An empty result means the record fully matches current taxonomies.
func (v *Validator) ValidateRecord(vehicle model.Vehicle) []model.Finding {
	values := map[string]string{
		"marcaCotxe":          vehicle.MarcaCotxe,
		"marcaMoto":           vehicle.MarcaMoto,
		"tipusCombustible":    vehicle.TipusCombustible,
		"estatVehicle":        vehicle.EstatVehicle,
		"tipusCanvi":          vehicle.TipusCanvi,
		"tipusPropulsor":      vehicle.TipusPropulsor,
		"carrosseriaCotxe":    vehicle.CarrosseriaCotxe,
		"carrosseriaMoto":     vehicle.CarrosseriaMoto,
		"carrosseriaCaravana": vehicle.CarrosseriaCaravana,
		"colorVehicle":        vehicle.ColorVehicle,
		"tipusTapisseria":     vehicle.TipusTapisseria,
		"colorTapisseria":     vehicle.ColorTapisseria,
	}

	var findings []model.Finding
	for _, vf := range validatedFields {
		if finding := v.ValidateField(vf.Field, values[vf.Field]); finding != nil {
			findings = append(findings, *finding)
		}
	}
	return findings
}

// UnknownValues returns the accumulated unknown values per taxonomy, sorted
// and deduplicated. Taxonomies without unknowns are omitted.
func (v *Validator) UnknownValues() map[string][]string {
	out := make(map[string][]string, len(v.unknown))
	for taxonomy, set := range v.unknown {
		values := make([]string, 0, len(set))
		for value := range set {
			values = append(values, value)
		}
		sort.Strings(values)
		out[taxonomy] = values
	}
	return out
}

func (v *Validator) record(taxonomy, value string) {
	set, ok := v.unknown[taxonomy]
	if !ok {
		set = make(map[string]struct{})
		v.unknown[taxonomy] = set
	}
	set[value] = struct{}{}
}
