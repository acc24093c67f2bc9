package statcheck

import (
	"math"
	"strconv"
	"strings"

	"gostatcheck/domain/record"
)

const (
	// MinDecimalPlaces is the precision floor: "6.1" is read as "6.10".
	MinDecimalPlaces = 2

	// UpperBoundGuard makes the window's upper edge open so a value exactly
	// halfway between two rounding steps is not counted twice. It is an
	// approximation and is not verified at high decimal precision.
	UpperBoundGuard = 1e-10
)

// DecimalPlaces counts the digits after the decimal point as written,
// trailing zeros included. Exponent notation is expanded first, so "1e-05"
// has five. Text that is not a number has zero.
func DecimalPlaces(text string) int {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, "eE") {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0
		}
		text = strconv.FormatFloat(v, 'f', -1, 64)
	}
	i := strings.IndexByte(text, '.')
	if i < 0 {
		return 0
	}
	return len(text) - i - 1
}

// Precision is DecimalPlaces with the two-digit floor applied.
func Precision(text string) int {
	return max(DecimalPlaces(text), MinDecimalPlaces)
}

// Tolerance is half of one unit in the last reported decimal place.
func Tolerance(decimals int) float64 {
	return 0.5 * math.Pow(10, -float64(decimals))
}

// ToleranceWindow returns the interval of true values that round to the
// literal: [v - tol, v + tol - UpperBoundGuard]. ok is false when the
// literal is not numeric.
func ToleranceWindow(lit record.Literal) (lower, upper float64, ok bool) {
	v, ok := lit.Float64()
	if !ok {
		return 0, 0, false
	}
	tol := Tolerance(Precision(lit.Text))
	return v - tol, v + tol - UpperBoundGuard, true
}
