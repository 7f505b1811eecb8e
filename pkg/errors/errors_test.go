package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "ClosedForm.Fit",
			kind:     "zero variance feature",
			err:      ErrZeroVariance,
			wantMsg:  "housing: ClosedForm.Fit: zero variance feature: zero variance",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "NormalEquations.Fit",
			kind:     "not solvable",
			err:      nil,
			wantMsg:  "housing: NormalEquations.Fit: not solvable",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースの存在確認
			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestModelErrorUnwrapsSentinel(t *testing.T) {
	err := NewModelError("ClosedForm.Fit", "zero variance feature", ErrZeroVariance)
	if !Is(err, ErrZeroVariance) {
		t.Error("Expected Is(err, ErrZeroVariance) to be true")
	}
	if Is(err, ErrSingularMatrix) {
		t.Error("Expected Is(err, ErrSingularMatrix) to be false")
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("ClosedForm.Fit", 5, 4, 0)

	want := "housing: ClosedForm.Fit: dimension mismatch on axis 0 (rows). Expected 5, got 4"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
	if dimErr.Expected != 5 || dimErr.Got != 4 {
		t.Errorf("unexpected fields: %+v", dimErr)
	}
}

func TestNewParseError(t *testing.T) {
	cause := fmt.Errorf("record on line 3: wrong number of fields")
	err := NewParseError("Data/california_housing.csv", cause)

	want := "housing: parse Data/california_housing.csv: record on line 3: wrong number of fields"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var parseErr *ParseError
	if !As(err, &parseErr) {
		t.Fatal("Error should be castable to *ParseError")
	}
	if parseErr.Path != "Data/california_housing.csv" {
		t.Errorf("Path = %q", parseErr.Path)
	}
	if !Is(err, cause) {
		t.Error("ParseError should unwrap to its cause")
	}
}

func TestNewColumnError(t *testing.T) {
	err := NewColumnError("Table.Column", "median_income", "not found")

	want := `housing: Table.Column: column "median_income" not found`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var colErr *ColumnError
	if !As(err, &colErr) {
		t.Error("Error should be castable to *ColumnError")
	}
}

func TestNewValueError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		message string
		wantMsg string
	}{
		{
			name:    "too few samples",
			op:      "ClosedForm.Fit",
			message: "need at least 2 samples, got 1",
			wantMsg: "housing: ClosedForm.Fit: need at least 2 samples, got 1",
		},
		{
			name:    "empty vector",
			op:      "MSE",
			message: "empty vector",
			wantMsg: "housing: MSE: empty vector",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValueError(tt.op, tt.message)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			var valErr *ValueError
			if !As(err, &valErr) {
				t.Error("Error should be castable to *ValueError")
			}
		})
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("divisor", "must not be zero", 0.0)
	want := "housing: validation failed for parameter 'divisor': must not be zero (got: 0)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWarningsMessages(t *testing.T) {
	conv := NewDataConversionWarning("total_rooms", "int", "float", "numeric column read as float64")
	if !strings.Contains(conv.Error(), `column "total_rooms" converted from int to float`) {
		t.Errorf("unexpected message: %s", conv.Error())
	}

	undef := NewUndefinedMetricWarning("R2Score", "labels with zero variance", 0)
	want := "'R2Score' is ill-defined and being set to 0.000000 due to labels with zero variance."
	if undef.Error() != want {
		t.Errorf("Error() = %v, want %v", undef.Error(), want)
	}
}

func TestWarnRouting(t *testing.T) {
	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	defer SetWarningHandler(nil)

	Warn(NewUndefinedMetricWarning("R2Score", "constant labels", 0))
	if len(got) != 1 {
		t.Fatalf("expected 1 warning through handler, got %d", len(got))
	}

	var viaZerolog []error
	SetZerologWarnFunc(func(w error) { viaZerolog = append(viaZerolog, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewDataConversionWarning("a", "int", "float", "test"))
	if len(viaZerolog) != 1 {
		t.Fatalf("expected zerolog func to take precedence, got %d", len(viaZerolog))
	}
	if len(got) != 1 {
		t.Errorf("handler should not be called when zerolog func is set, got %d", len(got))
	}
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrap(ErrDivideByZero, "in Table.Scale")

	if !Is(wrapped, ErrDivideByZero) {
		t.Error("Expected Is(wrapped, ErrDivideByZero) to be true")
	}

	if !strings.Contains(wrapped.Error(), "in Table.Scale") {
		t.Error("Expected wrapped error to contain wrapping message")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s: expected %d, got %d", "Evaluate", 10, 0)

	if !Is(wrapped, ErrEmptyData) {
		t.Error("Expected Is(wrapped, ErrEmptyData) to be true")
	}

	expectedMsg := "in Evaluate: expected 10, got 0"
	if !strings.Contains(wrapped.Error(), expectedMsg) {
		t.Errorf("Expected wrapped error to contain %q", expectedMsg)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"finite", []float64{1, 2, 3}, false},
		{"empty", nil, false},
		{"nan", []float64{1, math.NaN()}, true},
		{"inf", []float64{math.Inf(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckNumericalStability("test", tt.values)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckNumericalStability() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var numErr *NumericalInstabilityError
				if !As(err, &numErr) {
					t.Error("Error should be castable to *NumericalInstabilityError")
				}
			}
		})
	}

	if err := CheckScalar("slope", math.NaN()); err == nil {
		t.Error("CheckScalar(NaN) should fail")
	}
	if err := CheckScalar("slope", 2.0); err != nil {
		t.Errorf("CheckScalar(2) = %v", err)
	}
}

func TestMarkKeepsTypeAndIdentity(t *testing.T) {
	err := Mark(NewValidationError("divisor", "must not be zero", 0.0), ErrDivideByZero)

	if !Is(err, ErrDivideByZero) {
		t.Error("Expected Is(err, ErrDivideByZero) to be true")
	}
	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Marked error should still be castable to *ValidationError")
	}
}
