// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/mbatlle/motormercat/internal/model"
)

// VehicleFilter defines filtering options for vehicle count queries.
type VehicleFilter struct {
	Kind string
	Sold *bool
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Vehicle operations
	GetVehicleBySlug(ctx context.Context, slug string) (*model.Vehicle, error)
	UpsertVehicle(ctx context.Context, vehicle *model.Vehicle) error
	CountVehicles(ctx context.Context, filter VehicleFilter) (int, error)
	CountVehiclesByKind(ctx context.Context) ([]model.KindCount, error)

	// Taxonomy reads (the ingestion pipeline never writes these)
	ListBrands(ctx context.Context, kind string) ([]string, error)
	ListFuelTypes(ctx context.Context) ([]string, error)
	ListVehicleStates(ctx context.Context) ([]string, error)
	ListTransmissionTypes(ctx context.Context) ([]string, error)
	ListPropulsionTypes(ctx context.Context) ([]string, error)
	ListBodyTypes(ctx context.Context, kind string) ([]string, error)
	ListExteriorColors(ctx context.Context) ([]string, error)
	ListUpholsteryTypes(ctx context.Context) ([]string, error)
	ListUpholsteryColors(ctx context.Context) ([]string, error)

	// Taxonomy curation (admin surface, outside the sync path)
	ListTaxonomy(ctx context.Context, taxonomy string) ([]model.TaxonomyEntry, error)
	AddTaxonomyEntry(ctx context.Context, taxonomy, slug, label string) (*model.TaxonomyEntry, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// VehicleSource fetches pages of raw records from the external source system.
type VehicleSource interface {
	FetchPage(ctx context.Context, sold bool, page int) ([]model.ExternalRecord, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
