package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mbatlle/motormercat/internal/cli"
	"github.com/mbatlle/motormercat/internal/model"
)

// BuildReport converts the validator's accumulated unknown values into a
// structured report. It recommends nothing and fixes nothing: resolving an
// unknown value is an explicit curation decision.
func BuildReport(v *Validator) model.ValidationReport {
	newValues := v.UnknownValues()
	return model.ValidationReport{
		NewValues:    newValues,
		HasNewValues: len(newValues) > 0,
	}
}

// RenderReport renders the validation report for console consumption.
func RenderReport(report model.ValidationReport) string {
	if !report.HasNewValues {
		return cli.FormatSuccess("All classification values reconciled against current taxonomies")
	}

	taxonomies := make([]string, 0, len(report.NewValues))
	for taxonomy := range report.NewValues {
		taxonomies = append(taxonomies, taxonomy)
	}
	sort.Strings(taxonomies)

	var b strings.Builder
	b.WriteString(cli.FormatWarning("Unknown classification values found"))
	b.WriteString("\n")
	for _, taxonomy := range taxonomies {
		values := report.NewValues[taxonomy]
		b.WriteString(fmt.Sprintf("\n%s (%d)\n", cli.TableHeaderStyle.Render(taxonomy), len(values)))
		for _, value := range values {
			b.WriteString(fmt.Sprintf("  - %s\n", value))
		}
	}
	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("Add entries with 'motormercat taxonomies add' or correct the source data."))

	return b.String()
}
