package core

import (
	"errors"
	"fmt"
)

// Record-scoped errors. None of them abort a batch; a record that hits one
// is reported as uncomputable.
var (
	// Uncomputable errors
	ErrUncomputable             = errors.New("p-value cannot be recomputed")
	ErrMissingDegreesOfFreedom  = fmt.Errorf("%w: missing degrees of freedom", ErrUncomputable)
	ErrInvalidDegreesOfFreedom  = fmt.Errorf("%w: degrees of freedom must be positive", ErrUncomputable)
	ErrUnsupportedTestType      = fmt.Errorf("%w: unsupported test type", ErrUncomputable)
	ErrUnparseableReportedValue = fmt.Errorf("%w: reported p-value is not numeric", ErrUncomputable)
	ErrUnparseableTestValue     = fmt.Errorf("%w: test value is not numeric", ErrUncomputable)
	ErrInvalidTail              = fmt.Errorf("%w: tail must be one or two", ErrUncomputable)
	ErrNonFiniteProbability     = fmt.Errorf("%w: distribution returned a non-finite probability", ErrUncomputable)

	// Filter errors
	ErrIncompleteRecord = errors.New("record is missing test value or reported p-value")
)

// NewMissingDFError names the degree of freedom a test type needed.
func NewMissingDFError(testType, which string) error {
	return fmt.Errorf("%w: %s-test requires %s", ErrMissingDegreesOfFreedom, testType, which)
}

// NewUnsupportedTestTypeError names the rejected test type.
func NewUnsupportedTestTypeError(testType string) error {
	return fmt.Errorf("%w %q", ErrUnsupportedTestType, testType)
}

// NewInvalidTailError names the rejected tail value.
func NewInvalidTailError(tail string) error {
	return fmt.Errorf("%w, got %q", ErrInvalidTail, tail)
}

func IsUncomputable(err error) bool {
	return errors.Is(err, ErrUncomputable)
}

func IsMissingDegreesOfFreedom(err error) bool {
	return errors.Is(err, ErrMissingDegreesOfFreedom)
}
