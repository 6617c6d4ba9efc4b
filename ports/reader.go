package ports

import "extfin/domain/series"

// TableReader supplies raw tabular input for normalization. Implementations
// read CSV files, Excel sheets, or uploaded request bodies.
type TableReader interface {
	// ReadTable produces the header row plus string cells, untyped.
	ReadTable() (*series.RawTable, error)
}
