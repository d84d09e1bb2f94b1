// Package model defines the core domain types shared across the application.
package model

import "time"

// VehicleStatus is the publication status assigned to every imported vehicle.
const VehicleStatus = "publish"

// Vehicle kinds used to partition brand and body taxonomies.
const (
	KindCar     = "cotxe"
	KindMoto    = "moto"
	KindCaravan = "autocaravana"
)

// ExternalRecord is the raw, schema-less payload received from the source
// system. Attribute names follow the source's own convention and the value
// types are whatever JSON decoding produced; nothing about its shape is
// contractually fixed.
type ExternalRecord map[string]any

// Vehicle is the canonical catalog entity, keyed by Slug. Classification
// fields hold normalized slugs (or empty), never raw display text.
type Vehicle struct {
	Slug string `json:"slug"`
	ID   string `json:"idAnunci"`

	TipusVehicle        string `json:"tipusVehicle"`
	MarcaCotxe          string `json:"marcaCotxe"`
	MarcaMoto           string `json:"marcaMoto"`
	ModelsCotxe         string `json:"modelsCotxe"`
	ModelsMoto          string `json:"modelsMoto"`
	EstatVehicle        string `json:"estatVehicle"`
	TipusCombustible    string `json:"tipusCombustible"`
	TipusPropulsor      string `json:"tipusPropulsor"`
	TipusCanvi          string `json:"tipusCanvi"`
	CarrosseriaCotxe    string `json:"carrosseriaCotxe"`
	CarrosseriaMoto     string `json:"carrosseriaMoto"`
	CarrosseriaCaravana string `json:"carrosseriaCaravana"`
	ColorVehicle        string `json:"colorVehicle"`
	TipusTapisseria     string `json:"tipusTapisseria"`
	ColorTapisseria     string `json:"colorTapisseria"`

	TitolAnunci      string `json:"titolAnunci"`
	DescripcioAnunci string `json:"descripcioAnunci"`

	Preu          float64 `json:"preu"`
	Quilometratge int     `json:"quilometratge"`
	AnyFabricacio int     `json:"anyFabricacio"`
	Destacat      int     `json:"destacat"`

	// Legacy price fields are display strings, never numbers.
	PreuAntic   string `json:"preuAntic"`
	PreuMensual string `json:"preuMensual"`
	PreuDiari   string `json:"preuDiari"`

	Actiu             bool `json:"actiu"`
	Venut             bool `json:"venut"`
	AireAcondicionat  bool `json:"aireAcondicionat"`
	VehicleFumador    bool `json:"vehicleFumador"`
	LlibreManteniment bool `json:"llibreManteniment"`
	RevisionsOficials bool `json:"revisionsOficials"`
	ImpostDeduible    bool `json:"impostDeduible"`
	VehicleACanvi     bool `json:"vehicleACanvi"`

	ExtresCotxe        []string `json:"extresCotxe"`
	ExtresMoto         []string `json:"extresMoto"`
	ExtresAutocaravana []string `json:"extresAutocaravana"`
	GaleriaVehicle     []string `json:"galeriaVehicle"`

	DataCreacio time.Time `json:"dataCreacio"`

	Status    string `json:"status"`
	NeedsSync bool   `json:"needsSync"`
}
