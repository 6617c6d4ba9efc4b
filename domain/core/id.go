package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// DatasetVersion identifies one loaded dataset. Every reload mints a new
	// version, which is what derived-view caches key on.
	DatasetVersion ID

	// IndicatorCode is the stable key of an external-finance metric
	// (e.g. "DT.DOD.DECT.CD"). Used verbatim, never normalized.
	IndicatorCode string
)

// String conversions for domain IDs
func (v DatasetVersion) String() string { return ID(v).String() }
func (c IndicatorCode) String() string  { return string(c) }

// NewDatasetVersion mints a fresh dataset version
func NewDatasetVersion() DatasetVersion {
	return DatasetVersion(NewID())
}

// ParseIndicatorCode parses a string into IndicatorCode
func ParseIndicatorCode(s string) (IndicatorCode, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("indicator code cannot be empty")
	}
	return IndicatorCode(s), nil
}
