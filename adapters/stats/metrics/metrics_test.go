package metrics

import (
	"math"
	"testing"

	"extfin/domain/core"
	"extfin/domain/series"
)

func dataset(obs ...series.Observation) *series.Dataset {
	return series.NewDataset(obs, 0)
}

func obs(period int, code core.IndicatorCode, value float64) series.Observation {
	return series.Observation{Period: period, Code: code, Value: value}
}

func TestIndexSeries_BaseYearEquals100(t *testing.T) {
	ds := dataset(
		obs(2019, "DT.DOD.DECT.CD", 1000),
		obs(2020, "DT.DOD.DECT.CD", 1100),
	)

	got := IndexSeries(ds, []core.IndicatorCode{"DT.DOD.DECT.CD"}, 2019)

	if got.Len() != 2 {
		t.Fatalf("expected 2 indexed observations, got %d", got.Len())
	}
	if got.Observations[0].Value != 100.0 {
		t.Errorf("base year should index to exactly 100, got %v", got.Observations[0].Value)
	}
	if math.Abs(got.Observations[1].Value-110.0) > 1e-9 {
		t.Errorf("2020 should index to 110, got %v", got.Observations[1].Value)
	}
}

func TestIndexSeries_AbsentBaseYearYieldsEmpty(t *testing.T) {
	ds := dataset(obs(2019, "A", 1000), obs(2020, "A", 1100))

	got := IndexSeries(ds, []core.IndicatorCode{"A"}, 1990)

	if !got.IsEmpty() {
		t.Fatalf("expected empty result for absent base year, got %d rows", got.Len())
	}
}

func TestIndexSeries_CodeWithoutBaseValueExcluded(t *testing.T) {
	ds := dataset(
		obs(2019, "A", 1000),
		obs(2020, "A", 1100),
		obs(2020, "B", 7), // B has no 2019 observation
	)

	got := IndexSeries(ds, []core.IndicatorCode{"A", "B"}, 2019)

	for _, o := range got.Observations {
		if o.Code == "B" {
			t.Errorf("code without base value must be excluded, found %+v", o)
		}
	}
	if got.Len() != 2 {
		t.Errorf("expected 2 rows for A only, got %d", got.Len())
	}
}

func TestRatioSeries_IdenticalCodesEqualOne(t *testing.T) {
	ds := dataset(obs(2019, "A", 3), obs(2020, "A", 7))

	got := RatioSeries(ds, "A", "A")

	if len(got) != 2 {
		t.Fatalf("expected 2 ratio points, got %d", len(got))
	}
	for _, p := range got {
		if float64(p.Value) != 1.0 {
			t.Errorf("ratio of a code to itself should be 1, got %v at %d", p.Value, p.Period)
		}
	}
}

func TestRatioSeries_DivisionByZeroPropagates(t *testing.T) {
	ds := dataset(
		obs(2019, "NUM", 5),
		obs(2019, "DEN", 0),
	)

	got := RatioSeries(ds, "NUM", "DEN")

	if len(got) != 1 {
		t.Fatalf("expected 1 ratio point, got %d", len(got))
	}
	if !math.IsInf(float64(got[0].Value), 1) {
		t.Errorf("5/0 must propagate as +Inf, got %v", got[0].Value)
	}
}

func TestRatioSeries_InnerJoin(t *testing.T) {
	ds := dataset(
		obs(2019, "NUM", 10),
		obs(2019, "DEN", 5),
		obs(2020, "NUM", 12), // no DEN in 2020
	)

	got := RatioSeries(ds, "NUM", "DEN")

	if len(got) != 1 || got[0].Period != 2019 {
		t.Fatalf("expected only the joint 2019 point, got %+v", got)
	}
	if float64(got[0].Value) != 2.0 {
		t.Errorf("expected ratio 2.0, got %v", got[0].Value)
	}
}

func TestRollingCorrelation_InsufficientDataYieldsEmpty(t *testing.T) {
	ds := dataset(
		obs(2019, "A", 1), obs(2019, "B", 2),
		obs(2020, "A", 2), obs(2020, "B", 4),
	)

	got := RollingCorrelation(ds, "A", "B", 3)

	if len(got) != 0 {
		t.Fatalf("2 joint periods with window 3 must yield empty, got %d points", len(got))
	}
}

func TestRollingCorrelation_ExactWindowYieldsOnePoint(t *testing.T) {
	ds := dataset(
		obs(2019, "A", 1), obs(2019, "B", 2),
		obs(2020, "A", 2), obs(2020, "B", 4),
		obs(2021, "A", 3), obs(2021, "B", 6),
	)

	got := RollingCorrelation(ds, "A", "B", 3)

	if len(got) != 1 {
		t.Fatalf("exactly window joint periods must yield one point, got %d", len(got))
	}
	if got[0].Period != 2021 {
		t.Errorf("the point should be labeled with the window's last period, got %d", got[0].Period)
	}
	if math.Abs(float64(got[0].Value)-1.0) > 1e-9 {
		t.Errorf("perfectly linear series should correlate at 1.0, got %v", got[0].Value)
	}
}

func TestRollingCorrelation_WindowBelowTwoDegradesToEmpty(t *testing.T) {
	ds := dataset(
		obs(2019, "A", 1), obs(2019, "B", 2),
		obs(2020, "A", 2), obs(2020, "B", 4),
	)

	for _, window := range []int{1, 0, -3} {
		if got := RollingCorrelation(ds, "A", "B", window); len(got) != 0 {
			t.Errorf("window %d must degrade to empty, got %d points", window, len(got))
		}
	}
}

func TestRollingCorrelation_SlidesAcrossPeriods(t *testing.T) {
	ds := dataset(
		obs(2019, "A", 1), obs(2019, "B", 1),
		obs(2020, "A", 2), obs(2020, "B", 2),
		obs(2021, "A", 3), obs(2021, "B", 3),
		obs(2022, "A", 4), obs(2022, "B", 2), // relationship breaks
	)

	got := RollingCorrelation(ds, "A", "B", 3)

	if len(got) != 2 {
		t.Fatalf("4 joint periods with window 3 should yield 2 points, got %d", len(got))
	}
	if got[0].Period != 2021 || got[1].Period != 2022 {
		t.Errorf("points should be labeled 2021 and 2022, got %d and %d", got[0].Period, got[1].Period)
	}
	if float64(got[1].Value) >= float64(got[0].Value) {
		t.Errorf("correlation should drop once the relationship breaks: %v then %v", got[0].Value, got[1].Value)
	}
}

func TestScatterSeries_OLSRecoversLine(t *testing.T) {
	// y = 2x + 1, exactly
	ds := dataset(
		obs(2019, "X", 1), obs(2019, "Y", 3),
		obs(2020, "X", 2), obs(2020, "Y", 5),
		obs(2021, "X", 3), obs(2021, "Y", 7),
	)

	got := ScatterSeries(ds, "X", "Y")

	if len(got.Points) != 3 {
		t.Fatalf("expected 3 joint points, got %d", len(got.Points))
	}
	if got.Fit == nil {
		t.Fatal("expected an OLS fit")
	}
	if math.Abs(float64(got.Fit.Beta)-2.0) > 1e-9 {
		t.Errorf("slope should be 2, got %v", got.Fit.Beta)
	}
	if math.Abs(float64(got.Fit.Alpha)-1.0) > 1e-9 {
		t.Errorf("intercept should be 1, got %v", got.Fit.Alpha)
	}
	if math.Abs(float64(got.Fit.RSquared)-1.0) > 1e-9 {
		t.Errorf("exact line should have R²=1, got %v", got.Fit.RSquared)
	}
}

func TestScatterSeries_SinglePointHasNoFit(t *testing.T) {
	ds := dataset(obs(2019, "X", 1), obs(2019, "Y", 3))

	got := ScatterSeries(ds, "X", "Y")

	if len(got.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(got.Points))
	}
	if got.Fit != nil {
		t.Error("a single point cannot carry an OLS fit")
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize([]float64{1, 2, 3, 4, 5})

	if got.Count != 5 {
		t.Errorf("count: want 5, got %d", got.Count)
	}
	if got.Mean != 3 {
		t.Errorf("mean: want 3, got %v", got.Mean)
	}
	if got.Median != 3 {
		t.Errorf("median: want 3, got %v", got.Median)
	}
	if got.Min != 1 || got.Max != 5 {
		t.Errorf("bounds: want [1,5], got [%v,%v]", got.Min, got.Max)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	if got.Count != 0 {
		t.Errorf("empty input should summarize to zero count, got %d", got.Count)
	}
}

func TestFloat_MarshalJSON(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{math.NaN(), `"NaN"`},
		{math.Inf(1), `"+Inf"`},
		{math.Inf(-1), `"-Inf"`},
	}
	for _, tc := range cases {
		got, err := Float(tc.in).MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %v: %v", tc.in, err)
		}
		if string(got) != tc.want {
			t.Errorf("marshal %v: want %s, got %s", tc.in, tc.want, got)
		}
	}
}
