package table

import (
	"io"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/YuminosukeSato/housing/pkg/errors"
	"github.com/YuminosukeSato/housing/pkg/log"
)

// CSVReader loads delimited files with a header row. Column types are
// inferred from content (int, float, bool, string).
type CSVReader struct {
	// Separator is the field delimiter. Zero means ','.
	Separator rune
	// Logger receives load diagnostics. nil means log.GetLogger().
	Logger log.Logger
}

func (r *CSVReader) logger() log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.GetLogger()
}

// Read opens path and parses it. Missing, empty or ragged files fail with
// a *errors.ParseError.
func (r *CSVReader) Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewParseError(path, err)
	}
	defer f.Close()
	return r.ReadFrom(f, path)
}

// ReadFrom parses delimited content from in. name is used in errors and logs.
func (r *CSVReader) ReadFrom(in io.Reader, name string) (*Table, error) {
	start := time.Now()
	sep := r.Separator
	if sep == 0 {
		sep = ','
	}

	df := dataframe.ReadCSV(in,
		dataframe.WithDelimiter(sep),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Err != nil {
		return nil, errors.NewParseError(name, df.Err)
	}
	if df.Nrow() == 0 {
		return nil, errors.NewParseError(name, errors.ErrEmptyData)
	}

	r.logger().Debug("table loaded",
		log.ComponentKey, "table",
		log.OperationKey, log.OperationLoad,
		log.PathKey, name,
		log.SamplesKey, df.Nrow(),
		log.FeaturesKey, df.Ncol(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return newTable(df), nil
}
