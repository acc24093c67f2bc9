package statcheck

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"gostatcheck/domain/core"
	"gostatcheck/domain/record"
)

// DegreesOfFreedom are the parameters of a record's reference distribution,
// after any sphericity correction.
type DegreesOfFreedom struct {
	DF1 float64
	DF2 float64
}

// ResolveDegreesOfFreedom checks the record carries the degrees of freedom
// its family needs and scales f-test dof by epsilon when the Huynh-Feldt
// correction applies. z needs none.
func ResolveDegreesOfFreedom(rec record.TestRecord) (DegreesOfFreedom, error) {
	var dof DegreesOfFreedom
	switch rec.TestType {
	case record.TypeZ:
		return dof, nil
	case record.TypeR, record.TypeT, record.TypeChi2:
		if rec.DF1 == nil {
			return dof, core.NewMissingDFError(string(rec.TestType), "df1")
		}
	case record.TypeF:
		if rec.DF1 == nil {
			return dof, core.NewMissingDFError(string(rec.TestType), "df1")
		}
		if rec.DF2 == nil {
			return dof, core.NewMissingDFError(string(rec.TestType), "df2")
		}
	default:
		return dof, core.NewUnsupportedTestTypeError(string(rec.TestType))
	}

	df1, ok := rec.DF1.Float64()
	if !ok || df1 <= 0 {
		return dof, core.ErrInvalidDegreesOfFreedom
	}
	dof.DF1 = df1

	if rec.TestType == record.TypeF {
		df2, ok := rec.DF2.Float64()
		if !ok || df2 <= 0 {
			return dof, core.ErrInvalidDegreesOfFreedom
		}
		dof.DF2 = df2
		if eps, ok := rec.HuynhFeldt(); ok {
			dof.DF1 *= eps
			dof.DF2 *= eps
			if dof.DF1 <= 0 || dof.DF2 <= 0 {
				return dof, core.ErrInvalidDegreesOfFreedom
			}
		}
	}
	return dof, nil
}

// UpperTail returns the one-tailed upper-tail probability of x under the
// family's reference distribution. Symmetric families are evaluated at |x|.
func UpperTail(testType record.TestType, dof DegreesOfFreedom, x float64) (float64, error) {
	var p float64
	switch testType {
	case record.TypeR:
		t := math.Abs(CorrelationToT(x, dof.DF1))
		if math.IsInf(t, 1) {
			return 0, nil
		}
		p = studentsT(dof.DF1).Survival(t)
	case record.TypeT:
		p = studentsT(dof.DF1).Survival(math.Abs(x))
	case record.TypeF:
		// F and chi2 have no mass below zero; the incomplete beta would
		// reject the negative argument a lower window edge can produce.
		if x <= 0 {
			return 1, nil
		}
		p = distuv.F{D1: dof.DF1, D2: dof.DF2}.Survival(x)
	case record.TypeChi2:
		if x <= 0 {
			return 1, nil
		}
		p = distuv.ChiSquared{K: dof.DF1}.Survival(x)
	case record.TypeZ:
		p = distuv.UnitNormal.Survival(math.Abs(x))
	default:
		return 0, core.NewUnsupportedTestTypeError(string(testType))
	}
	if math.IsNaN(p) {
		return 0, core.ErrNonFiniteProbability
	}
	return p, nil
}

// CorrelationToT converts a correlation coefficient to its t statistic,
// t = r·√df / √(1−r²). |r| ≥ 1 maps to an infinite statistic.
func CorrelationToT(r, df float64) float64 {
	rest := 1 - r*r
	if rest <= 0 {
		return math.Copysign(math.Inf(1), r)
	}
	return r * math.Sqrt(df) / math.Sqrt(rest)
}

func studentsT(df float64) distuv.StudentsT {
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
}
