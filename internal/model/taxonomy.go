package model

import "time"

// Taxonomy names. Each identifies one admin-curated whitelist of valid
// classification slugs.
const (
	TaxonomyCarBrands        = "marques-cotxe"
	TaxonomyMotoBrands       = "marques-moto"
	TaxonomyFuelTypes        = "tipus-combustible"
	TaxonomyVehicleStates    = "estat-vehicle"
	TaxonomyTransmissions    = "tipus-canvi"
	TaxonomyPropulsions      = "tipus-propulsor"
	TaxonomyBodyCar          = "carrosseria-cotxe"
	TaxonomyBodyMoto         = "carrosseria-moto"
	TaxonomyBodyCaravan      = "carrosseria-caravana"
	TaxonomyExteriorColors   = "color-exterior"
	TaxonomyUpholsteryTypes  = "tipus-tapisseria"
	TaxonomyUpholsteryColors = "color-tapisseria"
)

// AllTaxonomies lists every taxonomy the validator checks against.
var AllTaxonomies = []string{
	TaxonomyCarBrands,
	TaxonomyMotoBrands,
	TaxonomyFuelTypes,
	TaxonomyVehicleStates,
	TaxonomyTransmissions,
	TaxonomyPropulsions,
	TaxonomyBodyCar,
	TaxonomyBodyMoto,
	TaxonomyBodyCaravan,
	TaxonomyExteriorColors,
	TaxonomyUpholsteryTypes,
	TaxonomyUpholsteryColors,
}

// TaxonomyEntry is one (slug, label) pair belonging to a named taxonomy.
// Entries are created by the admin curation surface; the ingestion pipeline
// only ever reads them.
type TaxonomyEntry struct {
	CreatedAt time.Time
	Taxonomy  string
	Slug      string
	Label     string
}
