package model

import "time"

// Finding records one classification value that failed taxonomy validation.
type Finding struct {
	Field    string
	Value    string
	Taxonomy string
}

// ValidationReport summarizes every unknown classification value seen in one
// sync run, grouped by taxonomy. Values within each taxonomy are sorted and
// deduplicated.
type ValidationReport struct {
	NewValues    map[string][]string
	HasNewValues bool
}

// PartitionOutcome tallies what happened to one source partition's records.
type PartitionOutcome struct {
	Imported int
	Updated  int
	Failed   int
	Findings int
}

// Add accumulates another outcome into this one.
func (o *PartitionOutcome) Add(other PartitionOutcome) {
	o.Imported += other.Imported
	o.Updated += other.Updated
	o.Failed += other.Failed
	o.Findings += other.Findings
}

// KindCount is a per-vehicle-kind aggregate used in the run summary.
type KindCount struct {
	Kind  string
	Count int
}

// SyncSummary is the complete result of one sync run: per-run totals,
// catalog aggregates, and the validation report.
type SyncSummary struct {
	Report        ValidationReport
	ByKind        []KindCount
	Totals        PartitionOutcome
	TotalVehicles int
	SoldCount     int
	UnsoldCount   int
	Duration      time.Duration
}
