// Package storage provides the data persistence layer for the motormercat catalog.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mbatlle/motormercat/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidVehicle = errors.New("invalid vehicle")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateVehicle validates a single vehicle before persisting it.
func validateVehicle(v *model.Vehicle) error {
	if v == nil {
		return fmt.Errorf("%w: vehicle", ErrNilParameter)
	}
	if v.Slug == "" {
		return fmt.Errorf("%w: missing slug", ErrInvalidVehicle)
	}
	if v.Preu < 0 {
		return fmt.Errorf("%w: negative price", ErrInvalidVehicle)
	}
	return nil
}
