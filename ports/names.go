package ports

import "extfin/domain/core"

// NameResolver maps indicator codes to human-readable display names.
// Resolve is total: unknown codes resolve to themselves, never an error.
type NameResolver interface {
	Resolve(code core.IndicatorCode) string
	Known() int
}
