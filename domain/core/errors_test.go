package core

import (
	"errors"
	"strings"
	"testing"
)

func TestUncomputableErrorsShareRoot(t *testing.T) {
	errs := []error{
		ErrMissingDegreesOfFreedom,
		ErrInvalidDegreesOfFreedom,
		ErrUnsupportedTestType,
		ErrUnparseableReportedValue,
		ErrUnparseableTestValue,
		ErrInvalidTail,
		ErrNonFiniteProbability,
		NewMissingDFError("t", "df1"),
		NewUnsupportedTestTypeError("q"),
		NewInvalidTailError("three"),
	}
	for _, err := range errs {
		if !IsUncomputable(err) {
			t.Errorf("expected %v to be uncomputable", err)
		}
	}
	if IsUncomputable(ErrIncompleteRecord) {
		t.Error("incomplete records are filtered, not uncomputable")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := NewMissingDFError("f", "df2")
	if !IsMissingDegreesOfFreedom(err) {
		t.Errorf("expected missing-df error, got %v", err)
	}
	if !strings.Contains(err.Error(), "f-test requires df2") {
		t.Errorf("unexpected message %q", err.Error())
	}

	err = NewUnsupportedTestTypeError("B")
	if !errors.Is(err, ErrUnsupportedTestType) || !strings.Contains(err.Error(), `"B"`) {
		t.Errorf("unexpected unsupported-type error %v", err)
	}
}
