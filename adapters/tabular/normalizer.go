package tabular

import (
	"log"
	"strings"

	"extfin/adapters/tabular/coercer"
	"extfin/domain/core"
	"extfin/domain/series"
)

// Normalizer turns a raw table of unknown column names into a validated
// dataset, or fails with a series.SchemaError naming what is missing.
type Normalizer struct {
	coercer *coercer.NumericCoercer
}

// NewNormalizer creates a normalizer with the default numeric coercer.
func NewNormalizer() *Normalizer {
	return &Normalizer{coercer: coercer.New()}
}

// Normalize resolves column aliases, validates the canonical schema, coerces
// period and value, and drops rows where either fails coercion. Indicator
// codes are used verbatim. Extra columns are ignored. Row order is preserved
// minus dropped rows.
func (n *Normalizer) Normalize(table *series.RawTable) (*series.Dataset, error) {
	columns := resolveAliases(table.Columns)

	var missing []string
	idx := make(map[string]int, 3)
	for _, canonical := range []string{series.ColumnPeriod, series.ColumnCode, series.ColumnValue} {
		found := -1
		for i, c := range columns {
			if c == canonical {
				found = i
				break
			}
		}
		if found < 0 {
			missing = append(missing, canonical)
			continue
		}
		idx[canonical] = found
	}
	if len(missing) > 0 {
		return nil, &series.SchemaError{Missing: missing, Found: table.Columns}
	}

	periodIdx, codeIdx, valueIdx := idx[series.ColumnPeriod], idx[series.ColumnCode], idx[series.ColumnValue]

	obs := make([]series.Observation, 0, len(table.Rows))
	dropped := 0
	for _, row := range table.Rows {
		if periodIdx >= len(row) || codeIdx >= len(row) || valueIdx >= len(row) {
			dropped++
			continue
		}
		period, ok := n.coercer.CoerceInt(row[periodIdx])
		if !ok {
			dropped++
			continue
		}
		value, ok := n.coercer.Coerce(row[valueIdx])
		if !ok {
			dropped++
			continue
		}
		code := strings.TrimSpace(row[codeIdx])
		obs = append(obs, series.Observation{
			Period: period,
			Code:   core.IndicatorCode(code),
			Value:  value,
		})
	}

	if dropped > 0 {
		log.Printf("[Normalizer] dropped %d of %d rows with non-numeric period or value", dropped, len(table.Rows))
	}
	return series.NewDataset(obs, dropped), nil
}

// resolveAliases renames known header variants to their canonical names.
// At most one rename happens per canonical column; if the canonical name is
// already present, its aliases are left untouched.
func resolveAliases(columns []string) []string {
	out := append([]string(nil), columns...)

	present := make(map[string]bool, len(out))
	for _, c := range out {
		present[c] = true
	}

	for _, alias := range series.SchemaAliases {
		if present[alias.Canonical] {
			continue
		}
		for _, alt := range alias.Aliases {
			if renamed := renameFirst(out, alt, alias.Canonical); renamed {
				present[alias.Canonical] = true
				break
			}
		}
	}
	return out
}

func renameFirst(columns []string, from, to string) bool {
	for i, c := range columns {
		if c == from {
			columns[i] = to
			return true
		}
	}
	return false
}
