package names

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"

	"extfin/domain/core"
)

// Mapping file columns.
const (
	columnCode = "Indicator Code"
	columnName = "Friendly Name"
)

// fallbackNames covers the handful of codes the dashboard recommends by
// default, for installs without a mapping file.
var fallbackNames = map[core.IndicatorCode]string{
	"DT.DOD.DECT.CD":    "External debt stocks, total (current US$)",
	"DT.DOD.DSTC.CD":    "Short-term external debt (current US$)",
	"DT.DOD.DSTC.IR.ZS": "Short-term debt (% of total reserves)",
	"DT.TDS.DECT.GN.ZS": "Total debt service (% of GNI)",
	"DT.TDS.DECT.EX.ZS": "Total debt service (% of exports)",
	"FI.RES.TOTL.CD":    "Total reserves including gold (current US$)",
	"BX.KLT.DINV.CD.WD": "Foreign direct investment, net inflows (current US$)",
}

// Resolver maps indicator codes to display names. Immutable once built;
// Resolve is total and never fails: unknown codes resolve to themselves.
type Resolver struct {
	names map[core.IndicatorCode]string
}

// Load builds a resolver from the mapping file at path. A missing file is
// not an error: the built-in fallback map is used instead. A present but
// malformed file is an error, since silently ignoring it would hide a
// misconfigured install.
func Load(path string) (*Resolver, error) {
	if path == "" {
		return newFallback(), nil
	}
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Printf("[Names] mapping file %s not found, using built-in fallback (%d codes)", path, len(fallbackNames))
		return newFallback(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open mapping file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("mapping file %s is empty", path)
	}

	codeIdx, nameIdx := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case columnCode:
			codeIdx = i
		case columnName:
			nameIdx = i
		}
	}
	if codeIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("mapping file %s must have %q and %q columns", path, columnCode, columnName)
	}

	names := make(map[core.IndicatorCode]string, len(rows)-1)
	for _, row := range rows[1:] {
		if codeIdx >= len(row) || nameIdx >= len(row) {
			continue
		}
		code := strings.TrimSpace(row[codeIdx])
		name := strings.TrimSpace(row[nameIdx])
		if code == "" || name == "" {
			continue
		}
		names[core.IndicatorCode(code)] = name
	}

	log.Printf("[Names] loaded %d friendly names from %s", len(names), path)
	return &Resolver{names: names}, nil
}

// NewResolver builds a resolver directly from a mapping table.
func NewResolver(names map[core.IndicatorCode]string) *Resolver {
	copied := make(map[core.IndicatorCode]string, len(names))
	for k, v := range names {
		copied[k] = v
	}
	return &Resolver{names: copied}
}

func newFallback() *Resolver {
	return NewResolver(fallbackNames)
}

// Resolve returns the display name for a code, or the code itself when no
// mapping exists.
func (r *Resolver) Resolve(code core.IndicatorCode) string {
	if name, ok := r.names[code]; ok {
		return name
	}
	return string(code)
}

// Known returns how many codes have an explicit mapping.
func (r *Resolver) Known() int {
	return len(r.names)
}
