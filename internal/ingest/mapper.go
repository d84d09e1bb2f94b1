package ingest

import "github.com/mbatlle/motormercat/internal/model"

// fieldTranslations maps the source system's kebab-case attribute names to the
// internal schema's camelCase names. Keys absent from the table are dropped,
// which keeps the mapper forward compatible with source-side additions.
//
// Both brand spellings observed on the source map to the same internal key;
// when one record carries both, whichever the map iteration visits last wins.
var fieldTranslations = map[string]string{
	"id":   "idAnunci",
	"slug": "slug",

	"titol-anunci":      "titolAnunci",
	"descripcio-anunci": "descripcioAnunci",

	"tipus-vehicle":        "tipusVehicle",
	"marca-cotxe":          "marcaCotxe",
	"marques-cotxe":        "marcaCotxe",
	"marca-moto":           "marcaMoto",
	"marques-de-moto":      "marcaMoto",
	"models-cotxe":         "modelsCotxe",
	"models-moto":          "modelsMoto",
	"estat-vehicle":        "estatVehicle",
	"tipus-combustible":    "tipusCombustible",
	"tipus-propulsor":      "tipusPropulsor",
	"tipus-canvi":          "tipusCanvi",
	"carrosseria-cotxe":    "carrosseriaCotxe",
	"carrosseria-moto":     "carrosseriaMoto",
	"carrosseria-caravana": "carrosseriaCaravana",
	"color-vehicle":        "colorVehicle",
	"tipus-tapisseria":     "tipusTapisseria",
	"color-tapisseria":     "colorTapisseria",

	"preu":         "preu",
	"preu-antic":   "preuAntic",
	"preu-mensual": "preuMensual",
	"preu-diari":   "preuDiari",

	"quilometratge":   "quilometratge",
	"any":             "anyFabricacio",
	"anunci-destacat": "destacat",

	"anunci-actiu":       "actiu",
	"venut":              "venut",
	"aire-acondicionat":  "aireAcondicionat",
	"vehicle-fumador":    "vehicleFumador",
	"llibre-manteniment": "llibreManteniment",
	"revisions-oficials": "revisionsOficials",
	"impostos-deduibles": "impostDeduible",
	"vehicle-a-canvi":    "vehicleACanvi",

	"extres-cotxe":        "extresCotxe",
	"extres-moto":         "extresMoto",
	"extres-autocaravana": "extresAutocaravana",
	"galeria-vehicle":     "galeriaVehicle",

	"data-creacio": "dataCreacio",
}

// MapFields projects a raw source record onto internal attribute names.
// Unrecognized keys are dropped silently. No coercion happens here.
func MapFields(raw model.ExternalRecord) map[string]any {
	mapped := make(map[string]any, len(raw))
	for sourceKey, value := range raw {
		internalKey, ok := fieldTranslations[sourceKey]
		if !ok {
			continue
		}
		mapped[internalKey] = value
	}
	return mapped
}
