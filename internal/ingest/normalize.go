package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mbatlle/motormercat/internal/model"
)

// slugFields are the classification attributes whose values get slugified.
var slugFields = []string{
	"marcaCotxe", "marcaMoto", "modelsCotxe", "modelsMoto",
	"estatVehicle", "tipusCombustible", "tipusPropulsor", "tipusCanvi",
	"carrosseriaCotxe", "carrosseriaMoto", "carrosseriaCaravana",
	"colorVehicle", "tipusTapisseria", "colorTapisseria",
}

// dateLayouts are tried in order when parsing the creation date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize deterministically shapes a mapped record into a Vehicle. Every
// rule degrades to a safe default instead of failing: one malformed field must
// never lose an otherwise valid record.
func Normalize(mapped map[string]any) model.Vehicle {
	v := model.Vehicle{
		Slug: Slugify(toString(mapped["slug"])),
		ID:   toString(mapped["idAnunci"]),

		TipusVehicle: strings.ToLower(strings.TrimSpace(toString(mapped["tipusVehicle"]))),

		TitolAnunci:      strings.TrimSpace(toString(mapped["titolAnunci"])),
		DescripcioAnunci: toString(mapped["descripcioAnunci"]),

		Preu:          toPrice(mapped["preu"]),
		Quilometratge: toInt(mapped["quilometratge"]),
		AnyFabricacio: toInt(mapped["anyFabricacio"]),
		Destacat:      toInt(mapped["destacat"]),

		PreuAntic:   toPriceString(mapped["preuAntic"]),
		PreuMensual: toPriceString(mapped["preuMensual"]),
		PreuDiari:   toPriceString(mapped["preuDiari"]),

		Actiu:             toBool(mapped["actiu"]),
		Venut:             toBool(mapped["venut"]),
		AireAcondicionat:  toBool(mapped["aireAcondicionat"]),
		VehicleFumador:    toBool(mapped["vehicleFumador"]),
		LlibreManteniment: toBool(mapped["llibreManteniment"]),
		RevisionsOficials: toBool(mapped["revisionsOficials"]),
		ImpostDeduible:    toBool(mapped["impostDeduible"]),
		VehicleACanvi:     toBool(mapped["vehicleACanvi"]),

		ExtresCotxe:        slugifyAll(toStrings(mapped["extresCotxe"])),
		ExtresMoto:         slugifyAll(toStrings(mapped["extresMoto"])),
		ExtresAutocaravana: slugifyAll(toStrings(mapped["extresAutocaravana"])),
		GaleriaVehicle:     toStrings(mapped["galeriaVehicle"]),

		DataCreacio: toDate(mapped["dataCreacio"]),

		Status:    model.VehicleStatus,
		NeedsSync: false,
	}

	setSlugField(&v, mapped)

	// Best-effort brand inference for cars without a mapped brand: the first
	// title token still goes through validation like any other value.
	if v.TipusVehicle == model.KindCar && v.MarcaCotxe == "" && v.TitolAnunci != "" {
		if fields := strings.Fields(v.TitolAnunci); len(fields) > 0 {
			v.MarcaCotxe = Slugify(fields[0])
		}
	}

	return v
}

// setSlugField writes the slugified classification values onto the vehicle.
func setSlugField(v *model.Vehicle, mapped map[string]any) {
	targets := map[string]*string{
		"marcaCotxe":          &v.MarcaCotxe,
		"marcaMoto":           &v.MarcaMoto,
		"modelsCotxe":         &v.ModelsCotxe,
		"modelsMoto":          &v.ModelsMoto,
		"estatVehicle":        &v.EstatVehicle,
		"tipusCombustible":    &v.TipusCombustible,
		"tipusPropulsor":      &v.TipusPropulsor,
		"tipusCanvi":          &v.TipusCanvi,
		"carrosseriaCotxe":    &v.CarrosseriaCotxe,
		"carrosseriaMoto":     &v.CarrosseriaMoto,
		"carrosseriaCaravana": &v.CarrosseriaCaravana,
		"colorVehicle":        &v.ColorVehicle,
		"tipusTapisseria":     &v.TipusTapisseria,
		"colorTapisseria":     &v.ColorTapisseria,
	}

	for _, field := range slugFields {
		raw, ok := mapped[field]
		if !ok {
			continue
		}
		value := strings.TrimSpace(toString(raw))
		if value == "" {
			continue
		}
		*targets[field] = Slugify(value)
	}
}

func slugifyAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, Slugify(value))
	}
	return out
}

// toString renders scalars as strings; numeric identifiers lose any trailing
// ".0" the JSON decoder introduced.
func toString(value any) string {
	switch t := value.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// toPrice parses the main price as a float; anything unparseable is 0.
func toPrice(value any) float64 {
	switch t := value.(type) {
	case float64:
		if t < 0 {
			return 0
		}
		return t
	case int:
		if t < 0 {
			return 0
		}
		return float64(t)
	case json.Number:
		return toPrice(t.String())
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || parsed < 0 {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// toPriceString keeps legacy price fields as display strings, empty when the
// source value is absent or empty. They are never numbers.
func toPriceString(value any) string {
	s := strings.TrimSpace(toString(value))
	return s
}

// toInt parses an integer; unparseable or absent values become 0.
func toInt(value any) int {
	switch t := value.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case json.Number:
		parsed, err := t.Int64()
		if err != nil {
			return 0
		}
		return int(parsed)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// toBool accepts true, "true" and "1" as truthy; everything else, including
// absence, is false.
func toBool(value any) bool {
	switch t := value.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	default:
		return false
	}
}

// toStrings coerces array fields: arrays pass through, strings are attempted
// as JSON-encoded arrays, anything else is empty.
func toStrings(value any) []string {
	switch t := value.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, toString(item))
		}
		return out
	case string:
		var out []string
		if err := json.Unmarshal([]byte(t), &out); err != nil {
			return []string{}
		}
		return out
	default:
		return []string{}
	}
}

// toDate parses the creation date, defaulting to the processing instant.
func toDate(value any) time.Time {
	s := strings.TrimSpace(toString(value))
	if s != "" {
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed
			}
		}
	}
	return time.Now()
}
