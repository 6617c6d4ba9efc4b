package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"extfin/domain/core"
	"extfin/domain/series"
)

// GeneratorConfig configures the synthetic indicator data generator
type GeneratorConfig struct {
	StartYear int     `json:"start_year"`
	EndYear   int     `json:"end_year"`
	NoiseStd  float64 `json:"noise_std"`
	GapRate   float64 `json:"gap_rate"` // chance a (year, code) observation is missing
	Seed      int64   `json:"seed"`
}

// DefaultConfig returns sensible defaults for demo data generation
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartYear: 2000,
		EndYear:   2023,
		NoiseStd:  0.03,
		GapRate:   0.05,
		Seed:      42,
	}
}

// indicatorProfile describes one synthetic indicator's trajectory
type indicatorProfile struct {
	code   core.IndicatorCode
	base   float64
	growth float64 // annual multiplicative growth
}

var profiles = []indicatorProfile{
	{code: "DT.DOD.DECT.CD", base: 2.0e10, growth: 1.06},
	{code: "DT.DOD.DSTC.CD", base: 4.5e9, growth: 1.04},
	{code: "DT.DOD.DSTC.IR.ZS", base: 35, growth: 1.02},
	{code: "DT.TDS.DECT.GN.ZS", base: 6, growth: 1.01},
	{code: "FI.RES.TOTL.CD", base: 1.2e10, growth: 1.03},
}

// DataGenerator produces a synthetic external-finance dataset with known
// trends, usable by tests and the CLI demo mode.
type DataGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewDataGenerator creates a generator with the given config
func NewDataGenerator(config GeneratorConfig) *DataGenerator {
	return &DataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateDataset generates a normalized dataset directly.
func (g *DataGenerator) GenerateDataset() *series.Dataset {
	var obs []series.Observation
	for _, p := range profiles {
		value := p.base
		for year := g.config.StartYear; year <= g.config.EndYear; year++ {
			value *= p.growth * (1 + g.rng.NormFloat64()*g.config.NoiseStd)
			if g.rng.Float64() < g.config.GapRate {
				continue
			}
			obs = append(obs, series.Observation{
				Period: year,
				Code:   p.code,
				Value:  math.Round(value*100) / 100,
			})
		}
	}
	return series.NewDataset(obs, 0)
}

// GenerateCSV renders the synthetic dataset as CSV text with canonical
// headers, for exercising the full read-normalize path.
func (g *DataGenerator) GenerateCSV() string {
	ds := g.GenerateDataset()
	var b strings.Builder
	b.WriteString("refPeriod,Indicator Code,Value\n")
	for _, o := range ds.Observations {
		fmt.Fprintf(&b, "%d,%s,%g\n", o.Period, o.Code, o.Value)
	}
	return b.String()
}

// Codes returns the indicator codes the generator emits.
func Codes() []core.IndicatorCode {
	out := make([]core.IndicatorCode, len(profiles))
	for i, p := range profiles {
		out[i] = p.code
	}
	return out
}
