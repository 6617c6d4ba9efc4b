package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"extfin/adapters/names"
	"extfin/adapters/stats/metrics"
	"extfin/adapters/tabular"
	"extfin/app"
	"extfin/domain/core"
	"extfin/domain/series"
	"extfin/internal"
	"extfin/internal/testkit"
	"extfin/ports"
)

// Inspect a dataset from the command line: normalize it, print the summary,
// and optionally one derived view. Useful for sanity-checking a CSV before
// pointing the dashboard at it.
func main() {
	var (
		file    = flag.String("file", "External Debt Dataset.csv", "CSV or XLSX dataset to inspect")
		mapping = flag.String("mapping", "debt_code_mapping.csv", "optional friendly-name mapping CSV")
		demo    = flag.Bool("demo", false, "use generated demo data instead of a file")
		ratio   = flag.String("ratio", "", "print a ratio series, as NUM/DEN codes")
		window  = flag.Int("window", 5, "rolling correlation window for -corr")
		corr    = flag.String("corr", "", "print a rolling correlation, as CODEA/CODEB")
	)
	flag.Parse()

	logger := internal.NewDefaultLogger()
	resolver, err := names.Load(*mapping)
	if err != nil {
		log.Fatalf("mapping error: %v", err)
	}

	dashboard := app.NewDashboardService(resolver, logger)

	var reader ports.TableReader
	if *demo {
		reader = demoReader{}
	} else {
		reader = tabular.NewDataReader(*file)
	}
	if err := dashboard.LoadDataset(reader); err != nil {
		log.Fatalf("load failed: %v", err)
	}

	summary, err := dashboard.Summary()
	if err != nil {
		log.Fatalf("summary failed: %v", err)
	}

	fmt.Printf("dataset: %d observations, %d dropped, years %d-%d\n",
		summary.Rows, summary.DroppedRows, summary.MinPeriod, summary.MaxPeriod)
	for _, ind := range summary.Indicators {
		fmt.Printf("  %-22s %-55s n=%-4d mean=%.4g\n", ind.Code, ind.Label, ind.Stats.Count, ind.Stats.Mean)
	}

	fullRange := series.PeriodRange{From: summary.MinPeriod, To: summary.MaxPeriod}

	if *ratio != "" {
		num, den, ok := splitPair(*ratio)
		if !ok {
			log.Fatalf("-ratio wants NUM/DEN, got %q", *ratio)
		}
		points, err := dashboard.RatioSeries(fullRange, num, den)
		if err != nil {
			log.Fatalf("ratio failed: %v", err)
		}
		printPoints(fmt.Sprintf("ratio %s / %s", num, den), points)
	}

	if *corr != "" {
		a, b, ok := splitPair(*corr)
		if !ok {
			log.Fatalf("-corr wants CODEA/CODEB, got %q", *corr)
		}
		points, err := dashboard.RollingCorrelation(fullRange, a, b, *window)
		if err != nil {
			log.Fatalf("correlation failed: %v", err)
		}
		printPoints(fmt.Sprintf("rolling %d-year correlation %s vs %s", *window, a, b), points)
	}
}

type demoReader struct{}

func (demoReader) ReadTable() (*series.RawTable, error) {
	csv := testkit.NewDataGenerator(testkit.DefaultConfig()).GenerateCSV()
	return tabular.ParseCSV(strings.NewReader(csv))
}

func splitPair(raw string) (core.IndicatorCode, core.IndicatorCode, bool) {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return core.IndicatorCode(parts[0]), core.IndicatorCode(parts[1]), true
}

func printPoints(title string, points []metrics.SeriesPoint) {
	fmt.Println(title + ":")
	if len(points) == 0 {
		fmt.Println("  (empty — not enough joint data)")
		return
	}
	for _, p := range points {
		fmt.Printf("  %d  %g\n", p.Period, float64(p.Value))
	}
}
