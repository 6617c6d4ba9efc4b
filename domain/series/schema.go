package series

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical column names every input table must resolve to.
const (
	ColumnPeriod = "refPeriod"
	ColumnCode   = "Indicator Code"
	ColumnValue  = "Value"
)

// ColumnAlias pairs a canonical column with the known header variants that
// may stand in for it. Aliases are evaluated in order and at most one rename
// happens per canonical column.
type ColumnAlias struct {
	Canonical string
	Aliases   []string
}

// SchemaAliases is the fixed, ordered alias table. Order matters: the first
// alias found in the input wins.
var SchemaAliases = []ColumnAlias{
	{Canonical: ColumnPeriod, Aliases: []string{"Year", "year", "RefPeriod", "refperiod"}},
	{Canonical: ColumnCode, Aliases: []string{"Indicator_Code", "IndicatorCode", "indicator_code"}},
	{Canonical: ColumnValue, Aliases: []string{"value", "VAL", "Amount"}},
}

// RawTable is a loosely-structured input table: a header row plus string
// cells, exactly as a CSV or spreadsheet reader produced them.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a column by exact name, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// SchemaError reports canonical columns still missing after alias
// resolution. No partial dataset is produced alongside it.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("missing required columns: %s (found: %s)",
		strings.Join(missing, ", "), strings.Join(e.Found, ", "))
}

// IsSchemaError reports whether err is a SchemaError.
func IsSchemaError(err error) bool {
	_, ok := err.(*SchemaError)
	return ok
}
