package table

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/housing/pkg/errors"
	"github.com/YuminosukeSato/housing/pkg/log"
)

const housingCSV = `longitude,latitude,total_rooms,median_income,median_house_value,ocean_proximity
-114.31,34.19,5612.0,1.4936,66900.0,INLAND
-114.47,34.40,7650.0,1.8200,80100.0,INLAND
-114.56,33.69,720.0,1.6509,85700.0,INLAND
-122.23,37.88,880.0,8.3252,500001.0,NEAR BAY
-122.22,37.86,7099.0,8.3014,358500.0,NEAR BAY
`

func loadHousing(t *testing.T) *Table {
	t.Helper()
	r := &CSVReader{}
	tbl, err := r.ReadFrom(strings.NewReader(housingCSV), "housing.csv")
	require.NoError(t, err)
	return tbl
}

func TestCSVReader_ReadFrom(t *testing.T) {
	tbl := loadHousing(t)

	assert.Equal(t, 5, tbl.Nrow())
	assert.Equal(t, 6, tbl.Ncol())
	assert.Equal(t, []string{"longitude", "latitude", "total_rooms", "median_income", "median_house_value", "ocean_proximity"}, tbl.Names())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, tbl.Keys())

	typ, err := tbl.Type("median_income")
	require.NoError(t, err)
	assert.Equal(t, series.Float, typ)

	typ, err = tbl.Type("ocean_proximity")
	require.NoError(t, err)
	assert.Equal(t, series.String, typ)
}

func TestCSVReader_Separator(t *testing.T) {
	r := &CSVReader{Separator: ';'}
	tbl, err := r.ReadFrom(strings.NewReader("a;b\n1.5;2.5\n3.5;4.5\n"), "semi.csv")
	require.NoError(t, err)

	col, err := tbl.Column("b")
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, 4.5}, col.Values())
}

func TestCSVReader_Read(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "california_housing.csv")
	require.NoError(t, os.WriteFile(path, []byte(housingCSV), 0o600))

	logger, _ := log.NewTestLogger(log.LevelDebug)
	r := &CSVReader{Logger: logger}
	tbl, err := r.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.Nrow())

	assert.True(t, logger.ContainsMessage("table loaded"))
	assert.True(t, logger.ContainsField(log.SamplesKey, 5.0))
	assert.True(t, logger.ContainsField(log.PathKey, path))
}

func TestCSVReader_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"header only", "a,b\n"},
		{"ragged row", "a,b\n1,2\n3,4,5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &CSVReader{}
			_, err := r.ReadFrom(strings.NewReader(tt.content), "bad.csv")
			require.Error(t, err)

			var parseErr *errors.ParseError
			require.True(t, errors.As(err, &parseErr), "got %T: %v", err, err)
			assert.Equal(t, "bad.csv", parseErr.Path)
		})
	}

	t.Run("absent file", func(t *testing.T) {
		r := &CSVReader{}
		missing := filepath.Join(t.TempDir(), "nope.csv")
		_, err := r.Read(missing)
		require.Error(t, err)

		var parseErr *errors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestTable_Column(t *testing.T) {
	tbl := loadHousing(t)

	col, err := tbl.Column("median_income")
	require.NoError(t, err)
	assert.Equal(t, "median_income", col.Name())
	assert.Equal(t, 5, col.Len())
	assert.InDelta(t, 8.3252, col.At(3), 1e-12)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, col.Keys())
	assert.False(t, col.HasNaN())

	_, err = tbl.Column("households")
	var colErr *errors.ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "households", colErr.Column)

	_, err = tbl.Column("ocean_proximity")
	require.True(t, errors.As(err, &colErr))
	assert.Contains(t, colErr.Reason, "not numeric")
}

func TestTable_ColumnIntConversion(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(func(error) {})

	r := &CSVReader{}
	tbl, err := r.ReadFrom(strings.NewReader("x,y\n1,2\n2,4\n3,6\n"), "ints.csv")
	require.NoError(t, err)

	col, err := tbl.Column("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, col.Values())

	require.NotEmpty(t, warnings)
	var conv *errors.DataConversionWarning
	require.True(t, errors.As(warnings[0], &conv))
	assert.Equal(t, "x", conv.Column)
}

func TestTable_Require(t *testing.T) {
	tbl := loadHousing(t)

	assert.NoError(t, tbl.Require("total_rooms", "median_house_value", "median_income"))

	err := tbl.Require("median_income", "households")
	var colErr *errors.ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, "households", colErr.Column)

	assert.Error(t, tbl.Require("ocean_proximity"))
}

func TestTable_FilterLess(t *testing.T) {
	tbl := loadHousing(t)

	filtered := tbl.Filter(Less("median_house_value", 500000))

	// フィルタは行数を増やさず、条件を満たさない行を残さない
	assert.LessOrEqual(t, filtered.Nrow(), tbl.Nrow())
	assert.Equal(t, []int{0, 1, 2, 4}, filtered.Keys())

	values, err := filtered.Column("median_house_value")
	require.NoError(t, err)
	for _, v := range values.Values() {
		assert.Less(t, v, 500000.0)
	}
	assert.Equal(t, []int{0, 1, 2, 4}, values.Keys())

	// 元のテーブルは変化しない
	assert.Equal(t, 5, tbl.Nrow())
}

func TestTable_FilterPredicateProperties(t *testing.T) {
	tbl := loadHousing(t)

	preds := map[string]RowPredicate{
		"keep all":       func(Row) bool { return true },
		"keep none":      func(Row) bool { return false },
		"even keys":      func(r Row) bool { return r.Key()%2 == 0 },
		"income above 2": func(r Row) bool { return r.Float("median_income") > 2 },
		"missing column": func(r Row) bool { return r.Float("households") < 1 },
		"string column":  func(r Row) bool { return r.Float("ocean_proximity") < 1 },
	}

	for name, pred := range preds {
		t.Run(name, func(t *testing.T) {
			filtered := tbl.Filter(pred)
			assert.LessOrEqual(t, filtered.Nrow(), tbl.Nrow())

			// 残った行は全て述語を満たす
			again := filtered.Filter(pred)
			assert.Equal(t, filtered.Keys(), again.Keys())
		})
	}

	assert.Equal(t, 0, tbl.Filter(preds["missing column"]).Nrow())
	assert.Equal(t, []int{3, 4}, tbl.Filter(preds["income above 2"]).Keys())
}

func TestTable_FilterChained(t *testing.T) {
	tbl := loadHousing(t)

	first := tbl.Filter(Less("median_house_value", 500000))
	second := first.Filter(func(r Row) bool { return r.Float("total_rooms") > 1000 })

	assert.Equal(t, []int{0, 1, 4}, second.Keys())
	assert.Equal(t, []int{0, 1, 2, 4}, first.Keys())
}

func TestTable_Where(t *testing.T) {
	tbl := loadHousing(t)

	filtered, err := tbl.Where("median_house_value", series.Less, 500000)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 4}, filtered.Keys())

	narrowed, err := filtered.Where("median_income", series.Greater, 1.7)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4}, narrowed.Keys())

	_, err = tbl.Where("households", series.Less, 1)
	var colErr *errors.ColumnError
	assert.True(t, errors.As(err, &colErr))
}

func TestTable_WhereIntColumnFractionalLimit(t *testing.T) {
	tbl, err := (&CSVReader{}).ReadFrom(strings.NewReader("x\n1\n2\n3\n"), "ints.csv")
	require.NoError(t, err)
	typ, err := tbl.Type("x")
	require.NoError(t, err)
	require.Equal(t, series.Int, typ)

	tests := []struct {
		name       string
		comparator series.Comparator
		value      float64
		want       []int
	}{
		{"less keeps 2 < 2.5", series.Less, 2.5, []int{0, 1}},
		{"greater keeps 3 > 2.5", series.Greater, 2.5, []int{2}},
		{"less on whole limit", series.Less, 2, []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Where("x", tt.comparator, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Keys())
		})
	}

	viaWhere, err := tbl.Where("x", series.Less, 2.5)
	require.NoError(t, err)
	assert.Equal(t, tbl.Filter(Less("x", 2.5)).Keys(), viaWhere.Keys())
}

func TestTable_Scale(t *testing.T) {
	tbl := loadHousing(t)
	view := tbl.Filter(Less("median_house_value", 500000))

	before, err := view.Column("median_income")
	require.NoError(t, err)

	require.NoError(t, view.Scale("median_house_value", 1000))

	scaled, err := view.Column("median_house_value")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{66.9, 80.1, 85.7, 358.5}, scaled.Values(), 1e-9)

	// 他の列は変化しない
	after, err := view.Column("median_income")
	require.NoError(t, err)
	assert.Equal(t, before.Values(), after.Values())

	// 親テーブルも変化しない
	parent, err := tbl.Column("median_house_value")
	require.NoError(t, err)
	assert.InDelta(t, 66900.0, parent.At(0), 1e-9)
}

func TestTable_ScaleRoundTrip(t *testing.T) {
	tbl := loadHousing(t)
	original, err := tbl.Column("total_rooms")
	require.NoError(t, err)

	d := 7.0
	require.NoError(t, tbl.Scale("total_rooms", d))
	require.NoError(t, tbl.Scale("total_rooms", 1/d))

	got, err := tbl.Column("total_rooms")
	require.NoError(t, err)
	for i, v := range original.Values() {
		assert.InDelta(t, v, got.At(i), 1e-9*math.Max(1, math.Abs(v)))
	}
}

func TestTable_ScaleErrors(t *testing.T) {
	tbl := loadHousing(t)

	err := tbl.Scale("median_house_value", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDivideByZero))

	var colErr *errors.ColumnError
	assert.True(t, errors.As(tbl.Scale("ocean_proximity", 10), &colErr))
	assert.True(t, errors.As(tbl.Scale("households", 10), &colErr))
}

func TestSeries(t *testing.T) {
	s, err := NewSeries("label", nil, []float64{2, 4, 6})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, s.Keys())

	require.NoError(t, s.Div(2))
	assert.Equal(t, []float64{1, 2, 3}, s.Values())

	assert.True(t, errors.Is(s.Div(0), errors.ErrDivideByZero))

	values := s.Values()
	values[0] = 100
	assert.Equal(t, 1.0, s.At(0), "Values must return a copy")

	_, err = NewSeries("bad", []int{0}, []float64{1, 2})
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))

	withNaN, err := NewSeries("nan", nil, []float64{1, math.NaN()})
	require.NoError(t, err)
	assert.True(t, withNaN.HasNaN())
}

func TestTable_Describe(t *testing.T) {
	tbl := loadHousing(t).Filter(Less("median_house_value", 500000))

	summaries := tbl.Describe()
	require.Len(t, summaries, 6)

	rooms := summaries[2]
	assert.Equal(t, "total_rooms", rooms.Name)
	assert.Equal(t, 4, rooms.Count)
	assert.InDelta(t, 720.0, rooms.Min, 1e-9)
	assert.InDelta(t, 7650.0, rooms.Max, 1e-9)
	assert.InDelta(t, (5612.0+7650.0+720.0+7099.0)/4, rooms.Mean, 1e-9)

	ocean := summaries[5]
	assert.Equal(t, series.String, ocean.Type)
	assert.Equal(t, 4, ocean.Count)
	assert.True(t, math.IsNaN(ocean.Mean))
}
