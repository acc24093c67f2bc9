// Package testkit holds reported-test fixtures shared by package tests.
package testkit

import (
	"gostatcheck/domain/record"
)

// Fixture is a reported test with the row the checker must produce for it.
type Fixture struct {
	Name       string
	Source     string // the sentence the record was extracted from
	Record     record.TestRecord
	Consistent string // expected verdict text, "" when the record is dropped
}

// TTest25 is t(25) = 2.10, p = .05; the two-tailed p is about .0459.
func TTest25() record.TestRecord {
	return record.TestRecord{
		TestType:       record.TypeT,
		DF1:            record.Int(25),
		TestValue:      record.Lit("2.10"),
		Operator:       record.OpEqual,
		ReportedPValue: record.Lit("0.05"),
		Tail:           record.TailTwo,
	}
}

// FTest1x25 is F(1, 25) = 11.36, p = .002.
func FTest1x25() record.TestRecord {
	return record.TestRecord{
		TestType:       record.TypeF,
		DF1:            record.Int(1),
		DF2:            record.Int(25),
		TestValue:      record.Lit("11.36"),
		Operator:       record.OpEqual,
		ReportedPValue: record.Lit("0.002"),
	}
}

// Chi2Test97 is χ²(97) = 80.12, p = .893.
func Chi2Test97() record.TestRecord {
	return record.TestRecord{
		TestType:       record.TypeChi2,
		DF1:            record.Int(97),
		TestValue:      record.Lit("80.12"),
		Operator:       record.OpEqual,
		ReportedPValue: record.Lit("0.893"),
	}
}

// IncompleteFTest is F(1, 3184) = 2.20 with no p-value at all.
func IncompleteFTest() record.TestRecord {
	return record.TestRecord{
		TestType:  record.TypeF,
		DF1:       record.Int(1),
		DF2:       record.Int(3184),
		TestValue: record.Lit("2.20"),
	}
}

// CorrelationWithoutDF is r = -.02, p = .001.
func CorrelationWithoutDF() record.TestRecord {
	return record.TestRecord{
		TestType:       record.TypeR,
		TestValue:      record.Lit("-0.02"),
		Operator:       record.OpEqual,
		ReportedPValue: record.Lit("0.001"),
	}
}

// ZeroPValue is t(20) = 1.80, p = 0.
func ZeroPValue() record.TestRecord {
	return record.TestRecord{
		TestType:       record.TypeT,
		DF1:            record.Int(20),
		TestValue:      record.Lit("1.80"),
		Operator:       record.OpEqual,
		ReportedPValue: record.Lit("0"),
		Tail:           record.TailTwo,
	}
}

// OneTailedT30 is t(30) = 1.70, p = .05, which only fits a one-tailed reading.
func OneTailedT30() record.TestRecord {
	return record.TestRecord{
		TestType:       record.TypeT,
		DF1:            record.Int(30),
		TestValue:      record.Lit("1.70"),
		Operator:       record.OpEqual,
		ReportedPValue: record.Lit("0.05"),
	}
}

// HuynhFeldtF is F(2, 40) = 4.50, ε = .5, p = .047, consistent only after
// scaling the dof to (1, 20).
func HuynhFeldtF() record.TestRecord {
	return record.TestRecord{
		TestType:       record.TypeF,
		DF1:            record.Int(2),
		DF2:            record.Int(40),
		TestValue:      record.Lit("4.50"),
		Operator:       record.OpEqual,
		ReportedPValue: record.Lit("0.047"),
		Epsilon:        record.Ptr(0.5),
	}
}

// NotSignificantT is t(25) = 2.10, ns.
func NotSignificantT() record.TestRecord {
	rec := TTest25()
	rec.ReportedPValue = record.Lit(record.NotSignificantText)
	return rec
}

// ZTestLess is z = 1.96, p < .05.
func ZTestLess() record.TestRecord {
	return record.TestRecord{
		TestType:       record.TypeZ,
		TestValue:      record.Lit("1.96"),
		Operator:       record.OpLess,
		ReportedPValue: record.Lit("0.05"),
	}
}

// Scenarios are the reference checks at alpha = .05, in document order.
func Scenarios() []Fixture {
	return []Fixture{
		{Name: "t-test within rounding", Source: "t(25) = 2.10, p = .05", Record: TTest25(), Consistent: "Yes"},
		{Name: "f-test", Source: `"F"(1, 25) = 11.36, MSE = .040, p = .002`, Record: FTest1x25(), Consistent: "Yes"},
		{Name: "chi-square", Source: "𝜒2 (df =97)=80.12, p=.893", Record: Chi2Test97(), Consistent: "Yes"},
		{Name: "incomplete f-test", Source: "F(1, 3184) = 2.20", Record: IncompleteFTest()},
		{Name: "correlation without df", Source: "r = -.02, p = .001", Record: CorrelationWithoutDF(), Consistent: "Cannot determine"},
		{Name: "exact zero", Source: "t(20) = 1.80, p = 0", Record: ZeroPValue(), Consistent: "No"},
	}
}

// Records returns the scenario records in order.
func Records() []record.TestRecord {
	fixtures := Scenarios()
	records := make([]record.TestRecord, len(fixtures))
	for i, f := range fixtures {
		records[i] = f.Record
	}
	return records
}
