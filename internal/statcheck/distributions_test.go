package statcheck

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostatcheck/domain/core"
	"gostatcheck/domain/record"
)

// Reference values computed independently from the regularized incomplete
// beta and gamma functions.
func TestUpperTail_ReferenceValues(t *testing.T) {
	tests := []struct {
		name     string
		testType record.TestType
		dof      DegreesOfFreedom
		x        float64
		want     float64
	}{
		{"t(25) lower edge", record.TypeT, DegreesOfFreedom{DF1: 25}, 2.095, 0.04646442562860406 / 2},
		{"t(25) negative statistic", record.TypeT, DegreesOfFreedom{DF1: 25}, -2.095, 0.04646442562860406 / 2},
		{"t(20)", record.TypeT, DegreesOfFreedom{DF1: 20}, 1.795, 0.043891192668874535},
		{"f(1, 25)", record.TypeF, DegreesOfFreedom{DF1: 1, DF2: 25}, 11.355, 0.002444194959393468},
		{"f(1, 20)", record.TypeF, DegreesOfFreedom{DF1: 1, DF2: 20}, 4.495, 0.04669420677601825},
		{"chi2(97)", record.TypeChi2, DegreesOfFreedom{DF1: 97}, 80.115, 0.8929061649350598},
		{"chi2(2)", record.TypeChi2, DegreesOfFreedom{DF1: 2}, 2.095, 0.3508136879512651},
		{"z", record.TypeZ, DegreesOfFreedom{}, 1.955, 0.05058307027046026 / 2},
		{"z negative", record.TypeZ, DegreesOfFreedom{}, -1.955, 0.05058307027046026 / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := UpperTail(tt.testType, tt.dof, tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, p, 1e-9)
		})
	}
}

func TestUpperTail_Correlation(t *testing.T) {
	tStat := CorrelationToT(0.295, 25)
	assert.InDelta(t, 0.295*5/math.Sqrt(1-0.295*0.295), tStat, 1e-12)

	p, err := UpperTail(record.TypeR, DegreesOfFreedom{DF1: 25}, 0.295)
	require.NoError(t, err)
	assert.InDelta(t, 0.13522642846808042/2, p, 1e-9)

	p, err = UpperTail(record.TypeR, DegreesOfFreedom{DF1: 25}, -0.295)
	require.NoError(t, err)
	assert.InDelta(t, 0.13522642846808042/2, p, 1e-9, "symmetric in r")

	assert.True(t, math.IsInf(CorrelationToT(1.0, 10), 1))
	assert.True(t, math.IsInf(CorrelationToT(-1.2, 10), -1))
	p, err = UpperTail(record.TypeR, DegreesOfFreedom{DF1: 10}, 1.004)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestUpperTail_NonPositiveStatistic(t *testing.T) {
	p, err := UpperTail(record.TypeF, DegreesOfFreedom{DF1: 1, DF2: 10}, -0.005)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	p, err = UpperTail(record.TypeChi2, DegreesOfFreedom{DF1: 3}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestUpperTail_UnsupportedType(t *testing.T) {
	_, err := UpperTail("B", DegreesOfFreedom{DF1: 3}, 1)
	assert.ErrorIs(t, err, core.ErrUnsupportedTestType)
}

func TestResolveDegreesOfFreedom(t *testing.T) {
	tests := []struct {
		name    string
		rec     record.TestRecord
		want    DegreesOfFreedom
		wantErr error
	}{
		{"z needs none", record.TestRecord{TestType: record.TypeZ}, DegreesOfFreedom{}, nil},
		{"t", record.TestRecord{TestType: record.TypeT, DF1: record.Int(25)}, DegreesOfFreedom{DF1: 25}, nil},
		{"t missing df1", record.TestRecord{TestType: record.TypeT}, DegreesOfFreedom{}, core.ErrMissingDegreesOfFreedom},
		{"r missing df1", record.TestRecord{TestType: record.TypeR}, DegreesOfFreedom{}, core.ErrMissingDegreesOfFreedom},
		{"chi2 missing df1", record.TestRecord{TestType: record.TypeChi2}, DegreesOfFreedom{}, core.ErrMissingDegreesOfFreedom},
		{"f missing df2", record.TestRecord{TestType: record.TypeF, DF1: record.Int(1)}, DegreesOfFreedom{}, core.ErrMissingDegreesOfFreedom},
		{"f", record.TestRecord{TestType: record.TypeF, DF1: record.Int(1), DF2: record.Int(25)}, DegreesOfFreedom{DF1: 1, DF2: 25}, nil},
		{
			"f with epsilon",
			record.TestRecord{TestType: record.TypeF, DF1: record.Int(2), DF2: record.Int(40), Epsilon: record.Ptr(0.5)},
			DegreesOfFreedom{DF1: 1, DF2: 20}, nil,
		},
		{
			"f with float dof ignores epsilon",
			record.TestRecord{TestType: record.TypeF, DF1: record.Lit("2.0"), DF2: record.Int(40), Epsilon: record.Ptr(0.5)},
			DegreesOfFreedom{DF1: 2, DF2: 40}, nil,
		},
		{"zero dof", record.TestRecord{TestType: record.TypeChi2, DF1: record.Int(0)}, DegreesOfFreedom{}, core.ErrInvalidDegreesOfFreedom},
		{"non-numeric dof", record.TestRecord{TestType: record.TypeT, DF1: record.Lit("n/a")}, DegreesOfFreedom{}, core.ErrInvalidDegreesOfFreedom},
		{"unsupported", record.TestRecord{TestType: "rho", DF1: record.Int(10)}, DegreesOfFreedom{}, core.ErrUnsupportedTestType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dof, err := ResolveDegreesOfFreedom(tt.rec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, core.IsUncomputable(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dof)
		})
	}
}
